package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
	"github.com/medisync/claims-api/pkg/auth"
	"github.com/medisync/claims-api/pkg/logger"
	"github.com/medisync/claims-api/pkg/security"
)

// Service authenticates the three user roles against their account
// collections and issues bearer tokens.
type Service struct {
	accounts repository.AccountRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	logger   *logger.Logger
}

func NewService(accounts repository.AccountRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher, logger *logger.Logger) *Service {
	return &Service{
		accounts: accounts,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		logger:   logger,
	}
}

// Login verifies credentials for a role and returns a signed token plus
// the sanitized account. Lookup and password failures come back as an
// unsuccessful response, not an error; only store faults are errors.
func (s *Service) Login(ctx context.Context, role model.Role, req *model.LoginRequest) (*model.LoginResponse, error) {
	account, err := s.accounts.FindByUsername(ctx, role, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return &model.LoginResponse{Success: false, Message: "User not found"}, nil
		}
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		s.logger.Warn("password verification failed", "username", req.Username, "role", string(role))
		return &model.LoginResponse{Success: false, Message: "Invalid password"}, nil
	}

	token, err := s.jwtSvc.GenerateToken(account.ID.String(), string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    model.SanitizedUser(account, role),
		Token:   token,
	}, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.TokenClaims, error) {
	return s.jwtSvc.ValidateToken(token)
}
