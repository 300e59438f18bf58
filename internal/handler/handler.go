package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the liveness and introspection endpoints.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Test reports the storage collections this service knows about.
func (h *Handler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Test endpoint works",
		"collections": []string{
			"hospital",
			"patient",
			"insurance",
			"patient_claims",
			"hospital_claims",
			"analytics",
		},
	})
}
