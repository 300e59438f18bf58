package insurer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medisync/claims-api/internal/handler"
	"github.com/medisync/claims-api/internal/middleware"
	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/service/query"
)

type Handler struct {
	query *query.Service
	auth  *middleware.AuthMiddleware
}

func NewHandler(querySvc *query.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{query: querySvc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	insurance := r.Group("", h.auth.Authenticate(), h.auth.RequireRole(model.RoleInsurance))
	{
		insurance.GET("/insurance-details", h.Details)
		insurance.GET("/analytics", h.Analytics)
	}
}

func (h *Handler) Details(c *gin.Context) {
	insuranceName := c.Query("insurance_name")

	claims, err := h.query.InsurerClaims(c.Request.Context(), insuranceName)
	if err != nil {
		handler.RespondError(c, err, "Error fetching insurance details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"insurance_name": insuranceName,
		"claims":         claims,
	})
}

func (h *Handler) Analytics(c *gin.Context) {
	insuranceName := c.Query("insurance_name")

	result, err := h.query.Analytics(c.Request.Context(), insuranceName)
	if err != nil {
		handler.RespondError(c, err, "Error fetching analytics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"insurance_name":        insuranceName,
		"claims":                result.Claims,
		"severity_distribution": result.SeverityDistribution,
	})
}
