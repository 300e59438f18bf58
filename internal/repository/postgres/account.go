package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
)

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Per-role account tables. Column sets differ, so each role gets its
// own select list with the unused fields defaulted.
var accountQueries = map[model.Role]string{
	model.RoleHospital: `
		SELECT id, username, password_hash, name, hospital_id, location, '' AS provider, created_at
		FROM hospitals WHERE username = $1`,
	model.RolePatient: `
		SELECT id, username, password_hash, name, '' AS hospital_id, '' AS location, '' AS provider, created_at
		FROM patients WHERE username = $1`,
	model.RoleInsurance: `
		SELECT id, username, password_hash, name, '' AS hospital_id, '' AS location, provider, created_at
		FROM insurance_companies WHERE username = $1`,
}

func (r *accountRepository) FindByUsername(ctx context.Context, role model.Role, username string) (*model.Account, error) {
	query, ok := accountQueries[role]
	if !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find %s account: %w", role, err)
	}
	return &account, nil
}

func (r *accountRepository) GetHospital(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, username, password_hash, name, hospital_id, location, '' AS provider, created_at
		FROM hospitals WHERE id = $1`

	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get hospital account: %w", err)
	}
	return &account, nil
}
