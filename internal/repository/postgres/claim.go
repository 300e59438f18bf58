package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
)

// claimStore backs both claim tables. Claims are stored as JSON
// documents with extracted columns for the indexed lookup fields, so
// the loosely-shaped payload survives round trips intact.
type claimStore struct {
	db          *sqlx.DB
	table       string
	ownerColumn string
}

type patientClaimRepository struct{ claimStore }

type hospitalClaimRepository struct{ claimStore }

func NewPatientClaimRepository(db *sqlx.DB) repository.PatientClaimRepository {
	return &patientClaimRepository{claimStore{db: db, table: "patient_claims", ownerColumn: "patient_id"}}
}

func NewHospitalClaimRepository(db *sqlx.DB) repository.HospitalClaimRepository {
	return &hospitalClaimRepository{claimStore{db: db, table: "hospital_claims", ownerColumn: "hospital_id"}}
}

func (s *claimStore) Insert(ctx context.Context, claim *model.ClaimRecord) error {
	payload, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("failed to marshal claim: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (claim_id, patient_id, hospital_id, insurance_provider, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, s.table)

	_, err = s.db.ExecContext(ctx, query,
		claim.ClaimID,
		claim.PatientID,
		claim.HospitalID,
		claim.InsuranceProvider,
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert claim: %w", err)
	}
	return nil
}

func (s *claimStore) listWhere(ctx context.Context, column, value string, limit int) ([]*model.ClaimRecord, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE %s = $1 LIMIT %d`, s.table, column, limit)

	var payloads [][]byte
	if err := s.db.SelectContext(ctx, &payloads, query, value); err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}

	claims := make([]*model.ClaimRecord, 0, len(payloads))
	for _, p := range payloads {
		var claim model.ClaimRecord
		if err := json.Unmarshal(p, &claim); err != nil {
			// Malformed documents must not fail the whole listing.
			continue
		}
		claims = append(claims, &claim)
	}
	return claims, nil
}

func (s *claimStore) ListByProvider(ctx context.Context, provider string) ([]*model.ClaimRecord, error) {
	return s.listWhere(ctx, "insurance_provider", provider, repository.ClaimListLimit)
}

func (s *claimStore) CountByOwnerAndPrefix(ctx context.Context, owner, prefix string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE %s = $1 AND claim_id LIKE $2 || '%%'
	`, s.table, s.ownerColumn)

	var count int
	if err := s.db.GetContext(ctx, &count, query, owner, prefix); err != nil {
		return 0, fmt.Errorf("failed to count claims: %w", err)
	}
	return count, nil
}

func (r *patientClaimRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.ClaimRecord, error) {
	return r.listWhere(ctx, "patient_id", patientID, repository.ClaimListLimit)
}

func (r *hospitalClaimRepository) ListByHospital(ctx context.Context, hospitalID string) ([]*model.ClaimRecord, error) {
	return r.listWhere(ctx, "hospital_id", hospitalID, repository.ClaimListLimit)
}

func (r *hospitalClaimRepository) DeleteOne(ctx context.Context, claimID, hospitalID string) (int64, error) {
	// Both identifiers must match; at most one row goes.
	query := `
		DELETE FROM hospital_claims
		WHERE id IN (
			SELECT id FROM hospital_claims WHERE claim_id = $1 AND hospital_id = $2 LIMIT 1
		)
	`
	res, err := r.db.ExecContext(ctx, query, claimID, hospitalID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete claim: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}
	return deleted, nil
}
