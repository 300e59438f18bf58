package query

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/service/account"
	apperrors "github.com/medisync/claims-api/pkg/errors"
	"github.com/medisync/claims-api/pkg/logger"
)

type fakeClaimStore struct {
	records []*model.ClaimRecord
}

func (f *fakeClaimStore) Insert(_ context.Context, claim *model.ClaimRecord) error {
	f.records = append(f.records, claim)
	return nil
}

func (f *fakeClaimStore) ListByPatient(_ context.Context, patientID string) ([]*model.ClaimRecord, error) {
	var out []*model.ClaimRecord
	for _, r := range f.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeClaimStore) ListByHospital(_ context.Context, hospitalID string) ([]*model.ClaimRecord, error) {
	var out []*model.ClaimRecord
	for _, r := range f.records {
		if r.HospitalID == hospitalID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeClaimStore) ListByProvider(_ context.Context, provider string) ([]*model.ClaimRecord, error) {
	var out []*model.ClaimRecord
	for _, r := range f.records {
		if r.InsuranceProvider == provider {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeClaimStore) CountByOwnerAndPrefix(_ context.Context, _, prefix string) (int, error) {
	count := 0
	for _, r := range f.records {
		if strings.HasPrefix(r.ClaimID, prefix) {
			count++
		}
	}
	return count, nil
}

func (f *fakeClaimStore) DeleteOne(_ context.Context, claimID, hospitalID string) (int64, error) {
	for i, r := range f.records {
		if r.ClaimID == claimID && r.HospitalID == hospitalID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeAccountRepo struct {
	hospitals map[uuid.UUID]*model.Account
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, _ model.Role, _ string) (*model.Account, error) {
	return nil, model.ErrUserNotFound
}

func (f *fakeAccountRepo) GetHospital(_ context.Context, id uuid.UUID) (*model.Account, error) {
	acct, ok := f.hospitals[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return acct, nil
}

type fakeAnalyticsRepo struct {
	records []*model.AnalyticsRecord
	counts  []model.SeverityCount
}

func (f *fakeAnalyticsRepo) ListByProvider(_ context.Context, provider string) ([]*model.AnalyticsRecord, error) {
	var out []*model.AnalyticsRecord
	for _, r := range f.records {
		if r.InsuranceProvider == provider {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) SeverityDistribution(_ context.Context, _ string) ([]model.SeverityCount, error) {
	return f.counts, nil
}

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})
}

func newTestService(patients, hospitals *fakeClaimStore, analytics *fakeAnalyticsRepo, accounts *fakeAccountRepo) *Service {
	if analytics == nil {
		analytics = &fakeAnalyticsRepo{}
	}
	if accounts == nil {
		accounts = &fakeAccountRepo{}
	}
	return NewService(patients, hospitals, analytics, account.NewResolver(accounts), testLogger())
}

func TestPatientDashboard(t *testing.T) {
	patients := &fakeClaimStore{records: []*model.ClaimRecord{
		{
			ClaimID:           "PAT10003152024",
			PatientID:         "PAT100",
			PatientName:       "John Doe",
			TreatmentDate:     "2024-03-10",
			InsuranceProvider: "Aetna Health Insurance",
			ProcedureName:     "Ankle rehab",
			TreatmentProvided: "Physiotherapy",
			ClaimAmount:       "1500",
			Status:            model.ClaimStatusPending,
			HospitalName:      "City General",
			Diagnosis:         "Sprained ankle",
		},
		{
			ClaimID:           "PAT10003162024",
			PatientID:         "PAT100",
			TreatmentProvided: "Checkup",
			Status:            model.ClaimStatusApproved,
		},
	}}
	svc := newTestService(patients, &fakeClaimStore{}, nil, nil)

	claims, err := svc.PatientDashboard(context.Background(), "PAT100")
	require.NoError(t, err)
	require.Len(t, claims, 2)

	first := claims[0]
	assert.Equal(t, "2024-03-10", first.Date)
	assert.Equal(t, "Aetna Health Insurance", first.Provider)
	assert.Equal(t, "Ankle rehab", first.Service)
	assert.Equal(t, "$1500", first.Amount)
	assert.Equal(t, model.ClaimStatusPending, first.Status)
	assert.Equal(t, "PAT10003152024", first.ClaimNumber)
	assert.Equal(t, "City General", first.HospitalName)
	assert.Equal(t, "Sprained ankle", first.Diagnosis)

	// no procedure name falls back to treatment, no amount shows $0
	second := claims[1]
	assert.Equal(t, "Checkup", second.Service)
	assert.Equal(t, "$0", second.Amount)
}

func TestPatientDashboard_NoClaims(t *testing.T) {
	svc := newTestService(&fakeClaimStore{}, &fakeClaimStore{}, nil, nil)

	_, err := svc.PatientDashboard(context.Background(), "PAT404")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	assert.Equal(t, "Patient not found", err.Error())
}

func TestHospitalDashboard(t *testing.T) {
	hospitals := &fakeClaimStore{records: []*model.ClaimRecord{
		{
			ClaimID:     "HOSP103152024",
			HospitalID:  "HOSP1",
			PatientName: "John Doe",
			ClaimAmount: "1500",
			Status:      model.ClaimStatusPending,
			SubmittedAt: "2024-03-15T10:30:00Z",
		},
		{
			ClaimID:     "HOSP1031520242",
			HospitalID:  "HOSP1",
			PatientName: "Jane Roe",
			ClaimAmount: "200",
			Status:      model.ClaimStatusApproved,
			SubmittedAt: "2024-03-15T11:00:00Z",
		},
		// malformed row without a claim id is skipped
		{HospitalID: "HOSP1"},
	}}
	svc := newTestService(&fakeClaimStore{}, hospitals, nil, nil)

	claims, err := svc.HospitalDashboard(context.Background(), "HOSP1")
	require.NoError(t, err)
	require.Len(t, claims, 2)

	assert.Equal(t, "HOSP103152024", claims[0].ID)
	assert.Equal(t, "2024-03-15", claims[0].SubmissionDate)
	assert.Equal(t, "$1500", claims[0].Amount)
	assert.Equal(t, "In Progress", claims[0].Status)

	assert.Equal(t, model.ClaimStatusApproved, claims[1].Status)
}

func TestHospitalDashboardForSubject(t *testing.T) {
	subjectID := uuid.New()
	accounts := &fakeAccountRepo{hospitals: map[uuid.UUID]*model.Account{
		subjectID: {ID: subjectID, HospitalID: "HOSP1"},
	}}
	hospitals := &fakeClaimStore{records: []*model.ClaimRecord{
		{ClaimID: "HOSP103152024", HospitalID: "HOSP1", SubmittedAt: "2024-03-15T10:30:00Z"},
		{ClaimID: "HOSP203152024", HospitalID: "HOSP2", SubmittedAt: "2024-03-15T10:30:00Z"},
	}}
	svc := newTestService(&fakeClaimStore{}, hospitals, nil, accounts)

	claims, err := svc.HospitalDashboardForSubject(context.Background(), subjectID.String())
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "HOSP103152024", claims[0].ID)
}

func TestDeleteHospitalClaim(t *testing.T) {
	subjectID := uuid.New()
	accounts := &fakeAccountRepo{hospitals: map[uuid.UUID]*model.Account{
		subjectID: {ID: subjectID, HospitalID: "HOSP1"},
	}}
	hospitals := &fakeClaimStore{records: []*model.ClaimRecord{
		{ClaimID: "HOSP103152024", HospitalID: "HOSP1"},
	}}
	svc := newTestService(&fakeClaimStore{}, hospitals, nil, accounts)

	err := svc.DeleteHospitalClaim(context.Background(), "HOSP103152024", subjectID.String())
	require.NoError(t, err)
	assert.Empty(t, hospitals.records)
}

func TestDeleteHospitalClaim_OtherHospital(t *testing.T) {
	subjectID := uuid.New()
	accounts := &fakeAccountRepo{hospitals: map[uuid.UUID]*model.Account{
		subjectID: {ID: subjectID, HospitalID: "HOSP2"},
	}}
	hospitals := &fakeClaimStore{records: []*model.ClaimRecord{
		{ClaimID: "HOSP103152024", HospitalID: "HOSP1"},
	}}
	svc := newTestService(&fakeClaimStore{}, hospitals, nil, accounts)

	err := svc.DeleteHospitalClaim(context.Background(), "HOSP103152024", subjectID.String())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	assert.Equal(t, "Claim not found or not authorized to delete", err.Error())
	assert.Len(t, hospitals.records, 1)
}

func TestInsurerClaims(t *testing.T) {
	provider := "Aetna Health Insurance"
	patients := &fakeClaimStore{records: []*model.ClaimRecord{
		{ClaimID: "PAT10003142024", PatientName: "John Doe", InsuranceProvider: provider, SubmittedAt: "2024-03-14T09:00:00Z", Status: model.ClaimStatusPending},
		{ClaimID: "PAT20003102024", InsuranceProvider: "Other Insurance", SubmittedAt: "2024-03-10T09:00:00Z"},
	}}
	hospitals := &fakeClaimStore{records: []*model.ClaimRecord{
		{ClaimID: "HOSP103162024", PatientName: "Jane Roe", HospitalID: "HOSP1", InsuranceProvider: provider, SubmittedAt: "2024-03-16T09:00:00Z", Status: model.ClaimStatusApproved},
	}}
	svc := newTestService(patients, hospitals, nil, nil)

	claims, err := svc.InsurerClaims(context.Background(), provider)
	require.NoError(t, err)
	require.Len(t, claims, 2)

	// newest first, each row tagged with its collection
	assert.Equal(t, "HOSP103162024", claims[0].ClaimID)
	assert.Equal(t, model.ClaimSourceHospital, claims[0].Source)
	assert.Equal(t, "2024-03-16", claims[0].SubmissionDate)

	assert.Equal(t, "PAT10003142024", claims[1].ClaimID)
	assert.Equal(t, model.ClaimSourcePatient, claims[1].Source)
	assert.Equal(t, "In Progress", claims[1].Status)
}

func TestAnalytics(t *testing.T) {
	provider := "Aetna Health Insurance"
	analytics := &fakeAnalyticsRepo{
		records: []*model.AnalyticsRecord{
			{ID: "a1", InsuranceProvider: provider, Severity: "high"},
			{ID: "a2", InsuranceProvider: provider, Severity: "low"},
		},
		counts: []model.SeverityCount{
			{Severity: "high", Count: 1},
			{Severity: "low", Count: 1},
		},
	}
	svc := newTestService(&fakeClaimStore{}, &fakeClaimStore{}, analytics, nil)

	result, err := svc.Analytics(context.Background(), provider)
	require.NoError(t, err)
	assert.Len(t, result.Claims, 2)
	assert.Equal(t, map[string]int{"high": 1, "low": 1}, result.SeverityDistribution)
}
