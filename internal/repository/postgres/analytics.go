package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
)

type analyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) ListByProvider(ctx context.Context, provider string) ([]*model.AnalyticsRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, insurance_provider, severity, details
		FROM analytics WHERE insurance_provider = $1 LIMIT %d
	`, repository.AnalyticsListLimit)

	var records []*model.AnalyticsRecord
	if err := r.db.SelectContext(ctx, &records, query, provider); err != nil {
		return nil, fmt.Errorf("failed to list analytics: %w", err)
	}
	return records, nil
}

func (r *analyticsRepository) SeverityDistribution(ctx context.Context, provider string) ([]model.SeverityCount, error) {
	query := `
		SELECT severity, COUNT(*) AS count
		FROM analytics
		WHERE insurance_provider = $1
		GROUP BY severity
		ORDER BY severity ASC
	`

	var counts []model.SeverityCount
	if err := r.db.SelectContext(ctx, &counts, query, provider); err != nil {
		return nil, fmt.Errorf("failed to aggregate severity distribution: %w", err)
	}
	return counts, nil
}
