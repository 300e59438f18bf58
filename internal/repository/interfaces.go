package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medisync/claims-api/internal/model"
)

// Listing caps. Claim listings are bounded at 100 rows, analytics at
// 1000, to keep result sets bounded.
const (
	ClaimListLimit     = 100
	AnalyticsListLimit = 1000
)

type (
	// PatientClaimRepository stores patient-submitted claims.
	PatientClaimRepository interface {
		Insert(ctx context.Context, claim *model.ClaimRecord) error
		ListByPatient(ctx context.Context, patientID string) ([]*model.ClaimRecord, error)
		ListByProvider(ctx context.Context, provider string) ([]*model.ClaimRecord, error)
		CountByOwnerAndPrefix(ctx context.Context, patientID, prefix string) (int, error)
	}

	// HospitalClaimRepository stores hospital-submitted claims. DeleteOne
	// removes at most one claim and only when both claimID and the
	// hospital business identifier match, so cross-tenant deletion is
	// impossible by construction.
	HospitalClaimRepository interface {
		Insert(ctx context.Context, claim *model.ClaimRecord) error
		ListByHospital(ctx context.Context, hospitalID string) ([]*model.ClaimRecord, error)
		ListByProvider(ctx context.Context, provider string) ([]*model.ClaimRecord, error)
		CountByOwnerAndPrefix(ctx context.Context, hospitalID, prefix string) (int, error)
		DeleteOne(ctx context.Context, claimID, hospitalID string) (int64, error)
	}

	// AccountRepository looks up per-role user records. Accounts are
	// provisioned out of band; this service only reads them.
	AccountRepository interface {
		FindByUsername(ctx context.Context, role model.Role, username string) (*model.Account, error)
		GetHospital(ctx context.Context, id uuid.UUID) (*model.Account, error)
	}

	// AnalyticsRepository reads fraud-screening results. The write path
	// is external.
	AnalyticsRepository interface {
		ListByProvider(ctx context.Context, provider string) ([]*model.AnalyticsRecord, error)
		SeverityDistribution(ctx context.Context, provider string) ([]model.SeverityCount, error)
	}

	// OutboxRepository stores claim lifecycle events for asynchronous
	// publication.
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	}
)
