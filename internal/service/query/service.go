package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
	"github.com/medisync/claims-api/internal/service/account"
	apperrors "github.com/medisync/claims-api/pkg/errors"
	"github.com/medisync/claims-api/pkg/logger"
)

// Service reads and reshapes claims for the role-specific dashboards.
// It never mutates data except for the explicit hospital delete.
type Service struct {
	patientClaims  repository.PatientClaimRepository
	hospitalClaims repository.HospitalClaimRepository
	analytics      repository.AnalyticsRepository
	hospitals      *account.Resolver
	logger         *logger.Logger
}

func NewService(
	patientClaims repository.PatientClaimRepository,
	hospitalClaims repository.HospitalClaimRepository,
	analytics repository.AnalyticsRepository,
	hospitals *account.Resolver,
	logger *logger.Logger,
) *Service {
	return &Service{
		patientClaims:  patientClaims,
		hospitalClaims: hospitalClaims,
		analytics:      analytics,
		hospitals:      hospitals,
		logger:         logger,
	}
}

// PatientClaims returns a patient's claims in their raw stored shape.
func (s *Service) PatientClaims(ctx context.Context, patientID string) ([]*model.ClaimRecord, error) {
	claims, err := s.patientClaims.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	return claims, nil
}

// PatientDashboard reshapes a patient's claims for the dashboard. Zero
// claims is reported as "Patient not found" — unknown patients and
// patients without claims are indistinguishable here.
func (s *Service) PatientDashboard(ctx context.Context, patientID string) ([]model.PatientDashboardClaim, error) {
	claims, err := s.patientClaims.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if len(claims) == 0 {
		return nil, apperrors.NotFound("Patient not found")
	}

	formatted := make([]model.PatientDashboardClaim, 0, len(claims))
	for _, c := range claims {
		service := c.ProcedureName
		if service == "" {
			service = c.TreatmentProvided
		}
		formatted = append(formatted, model.PatientDashboardClaim{
			Date:         c.TreatmentDate,
			Provider:     c.InsuranceProvider,
			Service:      service,
			Amount:       formatAmount(c.ClaimAmount),
			Status:       c.Status,
			ClaimNumber:  c.ClaimID,
			HospitalName: c.HospitalName,
			Diagnosis:    c.Diagnosis,
		})
	}
	return formatted, nil
}

// HospitalDashboard reshapes a hospital's claims, keyed by the business
// identifier. Malformed records are skipped with a warning rather than
// failing the whole response.
func (s *Service) HospitalDashboard(ctx context.Context, hospitalID string) ([]model.HospitalDashboardClaim, error) {
	claims, err := s.hospitalClaims.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	formatted := make([]model.HospitalDashboardClaim, 0, len(claims))
	for _, c := range claims {
		if c == nil || c.ClaimID == "" {
			s.logger.Warn("skipping malformed hospital claim", "hospital_id", hospitalID)
			continue
		}
		formatted = append(formatted, model.HospitalDashboardClaim{
			ID:             c.ClaimID,
			PatientName:    c.PatientName,
			SubmissionDate: NormalizeSubmissionDate(c.SubmittedAt),
			Amount:         formatAmount(c.ClaimAmount),
			Status:         displayStatus(c.Status),
		})
	}
	return formatted, nil
}

// HospitalDashboardForSubject resolves the token subject and returns
// that hospital's dashboard.
func (s *Service) HospitalDashboardForSubject(ctx context.Context, subjectID string) ([]model.HospitalDashboardClaim, error) {
	hospital, err := s.hospitals.ResolveHospital(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.HospitalDashboard(ctx, hospital.HospitalID)
}

// DeleteHospitalClaim deletes a claim owned by the caller's hospital.
// The compound (claimID, hospitalID) filter makes cross-tenant deletes
// impossible; zero rows means not found or not authorized.
func (s *Service) DeleteHospitalClaim(ctx context.Context, claimID, subjectID string) error {
	hospital, err := s.hospitals.ResolveHospital(ctx, subjectID)
	if err != nil {
		return err
	}

	deleted, err := s.hospitalClaims.DeleteOne(ctx, claimID, hospital.HospitalID)
	if err != nil {
		return apperrors.StoreUnavailable(err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Claim not found or not authorized to delete")
	}

	s.logger.Info("hospital claim deleted", "claim_id", claimID, "hospital_id", hospital.HospitalID)
	return nil
}

// InsurerClaims unions both claim collections for a provider, tags each
// row with its source and sorts by normalized submission date, newest
// first.
func (s *Service) InsurerClaims(ctx context.Context, provider string) ([]model.InsurerClaimView, error) {
	patientClaims, err := s.patientClaims.ListByProvider(ctx, provider)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	hospitalClaims, err := s.hospitalClaims.ListByProvider(ctx, provider)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	all := make([]model.InsurerClaimView, 0, len(patientClaims)+len(hospitalClaims))
	for _, c := range patientClaims {
		all = append(all, insurerView(c, model.ClaimSourcePatient))
	}
	for _, c := range hospitalClaims {
		all = append(all, insurerView(c, model.ClaimSourceHospital))
	}

	// Normalized dates sort correctly as strings; ties stay stable.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].SubmissionDate > all[j].SubmissionDate
	})
	return all, nil
}

// AnalyticsResult bundles the raw analytics rows with their severity
// distribution.
type AnalyticsResult struct {
	Claims               []*model.AnalyticsRecord
	SeverityDistribution map[string]int
}

// Analytics returns the fraud-screening records for a provider plus a
// severity distribution grouped ascending by severity key.
func (s *Service) Analytics(ctx context.Context, provider string) (*AnalyticsResult, error) {
	records, err := s.analytics.ListByProvider(ctx, provider)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	counts, err := s.analytics.SeverityDistribution(ctx, provider)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	distribution := make(map[string]int, len(counts))
	for _, c := range counts {
		distribution[c.Severity] = c.Count
	}

	return &AnalyticsResult{
		Claims:               records,
		SeverityDistribution: distribution,
	}, nil
}

func insurerView(c *model.ClaimRecord, source string) model.InsurerClaimView {
	return model.InsurerClaimView{
		ClaimID:        c.ClaimID,
		PatientName:    c.PatientName,
		SubmissionDate: NormalizeSubmissionDate(c.SubmittedAt),
		Amount:         formatAmount(c.ClaimAmount),
		Status:         displayStatus(c.Status),
		Source:         source,
	}
}

func formatAmount(amount string) string {
	if amount == "" {
		amount = "0"
	}
	return fmt.Sprintf("$%s", amount)
}

// displayStatus aliases "pending" to the UI's "In Progress".
func displayStatus(status string) string {
	if status == "" || status == model.ClaimStatusPending {
		return "In Progress"
	}
	return status
}
