package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medisync/claims-api/internal/handler"
	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/service/auth"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/hospital-login", h.login(model.RoleHospital))
	r.POST("/patient-login", h.login(model.RolePatient))
	r.POST("/insurance-login", h.login(model.RoleInsurance))
}

func (h *Handler) login(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("username and password are required"))
			return
		}

		resp, err := h.service.Login(c.Request.Context(), role, &req)
		if err != nil {
			handler.RespondError(c, err, "Login error")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
