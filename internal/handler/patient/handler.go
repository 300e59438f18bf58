package patient

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medisync/claims-api/internal/handler"
	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
	"github.com/medisync/claims-api/internal/service/intake"
	"github.com/medisync/claims-api/internal/service/query"
)

type Handler struct {
	intake     *intake.Service
	query      *query.Service
	outboxRepo repository.OutboxRepository
}

func NewHandler(intakeSvc *intake.Service, querySvc *query.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		intake:     intakeSvc,
		query:      querySvc,
		outboxRepo: outboxRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/patient-claim", h.SubmitClaim)
	r.GET("/patient-claims/:patientId", h.ListClaims)
	r.GET("/patient-details", h.Dashboard)
}

func (h *Handler) SubmitClaim(c *gin.Context) {
	claimData, attachments := handler.ParseClaimForm(c)

	resp, err := h.intake.SubmitPatientClaim(c.Request.Context(), claimData, attachments)
	if err != nil {
		handler.RespondError(c, err, "Error submitting claim")
		return
	}

	if resp.Success {
		h.emitEvent(c, model.EventClaimSubmitted, resp.ClaimID)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListClaims(c *gin.Context) {
	claims, err := h.query.PatientClaims(c.Request.Context(), c.Param("patientId"))
	if err != nil {
		handler.RespondError(c, err, "Error fetching patient claims")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "claims": claims})
}

func (h *Handler) Dashboard(c *gin.Context) {
	claims, err := h.query.PatientDashboard(c.Request.Context(), c.Query("patient_id"))
	if err != nil {
		handler.RespondError(c, err, "Error fetching patient details")
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

func (h *Handler) emitEvent(c *gin.Context, eventType, claimID string) {
	payload, err := json.Marshal(gin.H{"claimId": claimID, "source": model.ClaimSourcePatient})
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal claim event")
		return
	}
	event := &model.OutboxEvent{EventType: eventType, Payload: payload}
	if err := h.outboxRepo.Create(c.Request.Context(), event); err != nil {
		log.Warn().Err(err).Str("claim_id", claimID).Msg("failed to create outbox event")
	}
}
