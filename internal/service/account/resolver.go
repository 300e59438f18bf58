package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
	apperrors "github.com/medisync/claims-api/pkg/errors"
)

const (
	resolverCacheTTL     = 5 * time.Minute
	resolverCacheCleanup = 10 * time.Minute
)

// Resolver maps a verified token subject to its hospital account.
// Lookups are cached briefly since every hospital submission, dashboard
// read and delete repeats the same resolution.
type Resolver struct {
	repo  repository.AccountRepository
	cache *cache.Cache
}

func NewResolver(repo repository.AccountRepository) *Resolver {
	return &Resolver{
		repo:  repo,
		cache: cache.New(resolverCacheTTL, resolverCacheCleanup),
	}
}

// ResolveHospital returns the hospital account for a token subject.
// The account's HospitalID (the business identifier, e.g. HOSP1) is
// what claim ownership is keyed on, never the row key.
func (r *Resolver) ResolveHospital(ctx context.Context, subjectID string) (*model.Account, error) {
	if cached, ok := r.cache.Get(subjectID); ok {
		return cached.(*model.Account), nil
	}

	id, err := uuid.Parse(subjectID)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid token or hospital not found")
	}

	acct, err := r.repo.GetHospital(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("Hospital not found")
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	r.cache.Set(subjectID, acct, cache.DefaultExpiration)
	return acct, nil
}
