package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/medisync/claims-api/pkg/errors"
)

// Response is the common failure envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func NewErrorResponse(message string) Response {
	return Response{Success: false, Message: message}
}

// RespondError converts a service error into the structured JSON
// failure the clients expect. Auth failures carry their HTTP status;
// not-found style failures stay 200 with success:false, matching the
// dashboard contract. Anything unexpected is reported as a store
// fault, prefixed for context, never an opaque 500.
func RespondError(c *gin.Context, err error, prefix string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrUnauthorized:
			c.JSON(http.StatusUnauthorized, NewErrorResponse(appErr.Message))
			return
		case apperrors.ErrForbidden:
			c.JSON(http.StatusForbidden, NewErrorResponse(appErr.Message))
			return
		case apperrors.ErrNotFound:
			c.JSON(http.StatusOK, NewErrorResponse(appErr.Message))
			return
		}
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse(fmt.Sprintf("%s: %v", prefix, err)))
}
