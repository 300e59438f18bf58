package hospital

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medisync/claims-api/internal/handler"
	"github.com/medisync/claims-api/internal/middleware"
	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
	"github.com/medisync/claims-api/internal/service/intake"
	"github.com/medisync/claims-api/internal/service/query"
)

type Handler struct {
	intake     *intake.Service
	query      *query.Service
	outboxRepo repository.OutboxRepository
	auth       *middleware.AuthMiddleware
}

func NewHandler(intakeSvc *intake.Service, querySvc *query.Service, outboxRepo repository.OutboxRepository, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		intake:     intakeSvc,
		query:      querySvc,
		outboxRepo: outboxRepo,
		auth:       auth,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/hospital-claim", h.auth.Authenticate(), h.SubmitClaim)
	r.GET("/hospital-details", h.auth.AuthenticateOptional(), h.Dashboard)
	r.DELETE("/hospital-claim/:claimId", h.auth.Authenticate(), h.DeleteClaim)
}

func (h *Handler) SubmitClaim(c *gin.Context) {
	claimData, attachments := handler.ParseClaimForm(c)

	resp, err := h.intake.SubmitHospitalClaim(c.Request.Context(), claimData, attachments, c.GetString(middleware.ContextSubjectID))
	if err != nil {
		handler.RespondError(c, err, "Error submitting hospital claim")
		return
	}

	if resp.Success {
		h.emitEvent(c, model.EventClaimSubmitted, resp.ClaimID)
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard accepts either an explicit hospitalid query parameter or a
// bearer token resolved to the caller's hospital; the parameter wins.
func (h *Handler) Dashboard(c *gin.Context) {
	var (
		claims []model.HospitalDashboardClaim
		err    error
	)

	if hospitalID := c.Query("hospitalid"); hospitalID != "" {
		claims, err = h.query.HospitalDashboard(c.Request.Context(), hospitalID)
	} else {
		subjectID := c.GetString(middleware.ContextSubjectID)
		if subjectID == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Invalid or expired token"))
			return
		}
		claims, err = h.query.HospitalDashboardForSubject(c.Request.Context(), subjectID)
	}
	if err != nil {
		handler.RespondError(c, err, "Error fetching hospital details")
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

func (h *Handler) DeleteClaim(c *gin.Context) {
	claimID := c.Param("claimId")
	subjectID := c.GetString(middleware.ContextSubjectID)

	if err := h.query.DeleteHospitalClaim(c.Request.Context(), claimID, subjectID); err != nil {
		handler.RespondError(c, err, "Error deleting claim")
		return
	}

	h.emitEvent(c, model.EventClaimDeleted, claimID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Claim %s deleted successfully", claimID),
	})
}

func (h *Handler) emitEvent(c *gin.Context, eventType, claimID string) {
	payload, err := json.Marshal(gin.H{"claimId": claimID, "source": model.ClaimSourceHospital})
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal claim event")
		return
	}
	event := &model.OutboxEvent{EventType: eventType, Payload: payload}
	if err := h.outboxRepo.Create(c.Request.Context(), event); err != nil {
		log.Warn().Err(err).Str("claim_id", claimID).Msg("failed to create outbox event")
	}
}
