package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medisync/claims-api/internal/model"
	pkgauth "github.com/medisync/claims-api/pkg/auth"
	"github.com/medisync/claims-api/pkg/logger"
	"github.com/medisync/claims-api/pkg/security"
)

type fakeAccountRepo struct {
	accounts map[string]*model.Account
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, role model.Role, username string) (*model.Account, error) {
	acct, ok := f.accounts[string(role)+"/"+username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return acct, nil
}

func (f *fakeAccountRepo) GetHospital(_ context.Context, _ uuid.UUID) (*model.Account, error) {
	return nil, model.ErrUserNotFound
}

func newTestService(t *testing.T, accounts *fakeAccountRepo) *Service {
	t.Helper()
	l := logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	return NewService(accounts, jwtSvc, security.NewBcryptHasher(bcrypt.MinCost), l)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.NewBcryptHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)
	return hash
}

func TestLogin(t *testing.T) {
	id := uuid.New()
	accounts := &fakeAccountRepo{accounts: map[string]*model.Account{
		"hospital/cityhospital": {
			ID:           id,
			Username:     "cityhospital",
			PasswordHash: hashPassword(t, "s3cret"),
			Name:         "City General",
			HospitalID:   "HOSP1",
			Location:     "Springfield",
		},
	}}
	svc := newTestService(t, accounts)

	resp, err := svc.Login(context.Background(), model.RoleHospital, &model.LoginRequest{
		Username: "cityhospital",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)

	require.NotNil(t, resp.User)
	assert.Equal(t, id.String(), resp.User.ID)
	assert.Equal(t, model.RoleHospital, resp.User.Role)
	assert.Equal(t, "HOSP1", resp.User.HospitalID)
}

func TestLogin_UserNotFound(t *testing.T) {
	svc := newTestService(t, &fakeAccountRepo{})

	resp, err := svc.Login(context.Background(), model.RolePatient, &model.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "User not found", resp.Message)
	assert.Nil(t, resp.User)
	assert.Empty(t, resp.Token)
}

func TestLogin_InvalidPassword(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[string]*model.Account{
		"patient/jdoe": {
			ID:           uuid.New(),
			Username:     "jdoe",
			PasswordHash: hashPassword(t, "right"),
		},
	}}
	svc := newTestService(t, accounts)

	resp, err := svc.Login(context.Background(), model.RolePatient, &model.LoginRequest{
		Username: "jdoe",
		Password: "wrong",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid password", resp.Message)
	assert.Empty(t, resp.Token)
}

func TestLogin_RoleScopedLookup(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[string]*model.Account{
		"patient/jdoe": {
			ID:           uuid.New(),
			Username:     "jdoe",
			PasswordHash: hashPassword(t, "s3cret"),
		},
	}}
	svc := newTestService(t, accounts)

	// same username against a different role's collection misses
	resp, err := svc.Login(context.Background(), model.RoleInsurance, &model.LoginRequest{
		Username: "jdoe",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "User not found", resp.Message)
}
