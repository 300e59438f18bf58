package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/internal/repository"
	"github.com/medisync/claims-api/internal/service/account"
	"github.com/medisync/claims-api/pkg/logger"
)

const (
	maxAttachmentBytes = 500 * 1024
	claimIDDateFormat  = "01022006" // MMDDYYYY
)

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"text/plain":      {},
}

// claimCounter is the slice of the claim store both tables share for
// claim-ID sequencing.
type claimCounter interface {
	CountByOwnerAndPrefix(ctx context.Context, owner, prefix string) (int, error)
}

// Service validates and persists claim submissions and assigns
// human-readable claim identifiers.
type Service struct {
	patientClaims  repository.PatientClaimRepository
	hospitalClaims repository.HospitalClaimRepository
	hospitals      *account.Resolver
	logger         *logger.Logger
	validate       *validator.Validate
	now            func() time.Time
}

func NewService(
	patientClaims repository.PatientClaimRepository,
	hospitalClaims repository.HospitalClaimRepository,
	hospitals *account.Resolver,
	logger *logger.Logger,
) *Service {
	v := validator.New()
	// required-but-blank counts as missing
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		patientClaims:  patientClaims,
		hospitalClaims: hospitalClaims,
		hospitals:      hospitals,
		logger:         logger,
		validate:       v,
		now:            time.Now,
	}
}

// SubmitPatientClaim validates and persists a patient-submitted claim.
// Validation failures come back as an unsuccessful ClaimResponse; only
// store faults are errors.
func (s *Service) SubmitPatientClaim(ctx context.Context, claimJSON string, attachments []model.Attachment) (*model.ClaimResponse, error) {
	sub, failed := s.parseAndValidate(claimJSON, attachments)
	if failed != nil {
		return failed, nil
	}

	now := s.now().UTC()
	claimID, err := s.generateClaimID(ctx, s.patientClaims, sub.PatientID, now)
	if err != nil {
		return nil, err
	}

	record := recordFromSubmission(sub, attachments, claimID, now)
	if err := s.patientClaims.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("patient claim submitted", "claim_id", claimID, "patient_id", sub.PatientID)
	return &model.ClaimResponse{
		Success: true,
		Message: "Claim submitted successfully",
		ClaimID: claimID,
	}, nil
}

// SubmitHospitalClaim resolves the token subject to a hospital account
// and persists a hospital-submitted claim. The hospital's business
// identifier, not its row key, prefixes the claim ID.
func (s *Service) SubmitHospitalClaim(ctx context.Context, claimJSON string, attachments []model.Attachment, subjectID string) (*model.ClaimResponse, error) {
	hospital, err := s.hospitals.ResolveHospital(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	sub, failed := s.parseAndValidate(claimJSON, attachments)
	if failed != nil {
		return failed, nil
	}

	now := s.now().UTC()
	claimID, err := s.generateClaimID(ctx, s.hospitalClaims, hospital.HospitalID, now)
	if err != nil {
		return nil, err
	}

	record := recordFromSubmission(sub, attachments, claimID, now)
	record.HospitalID = hospital.HospitalID
	record.HospitalObjectID = hospital.ID.String()
	if err := s.hospitalClaims.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("hospital claim submitted", "claim_id", claimID, "hospital_id", hospital.HospitalID)
	return &model.ClaimResponse{
		Success: true,
		Message: "Hospital claim submitted successfully",
		ClaimID: claimID,
	}, nil
}

// parseAndValidate parses the raw claim body and checks the required
// fields and attachments. A non-nil response is the failure to return
// to the client.
func (s *Service) parseAndValidate(claimJSON string, attachments []model.Attachment) (*model.ClaimSubmission, *model.ClaimResponse) {
	var sub model.ClaimSubmission
	if err := json.Unmarshal([]byte(claimJSON), &sub); err != nil {
		return nil, &model.ClaimResponse{
			Success: false,
			Message: "Invalid JSON data in claimData",
		}
	}

	if err := s.validate.Struct(&sub); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, &model.ClaimResponse{Success: false, Message: "Validation error"}
		}
		fieldErrors := make(map[string]string, len(errs))
		for _, fe := range errs {
			fieldErrors[fe.Field()] = fmt.Sprintf("%s is required", fe.Field())
		}
		return nil, &model.ClaimResponse{
			Success: false,
			Message: "Validation error",
			Errors:  fieldErrors,
		}
	}

	if failed := validateAttachments(attachments); failed != nil {
		return nil, failed
	}
	return &sub, nil
}

// validateAttachments checks size then content type, short-circuiting
// on the first violation. Nothing is persisted when any file fails.
func validateAttachments(attachments []model.Attachment) *model.ClaimResponse {
	for _, a := range attachments {
		if a.SizeBytes > maxAttachmentBytes {
			return &model.ClaimResponse{
				Success: false,
				Message: fmt.Sprintf("File %s exceeds 500KB limit", a.Filename),
			}
		}
	}
	for _, a := range attachments {
		if _, ok := allowedContentTypes[a.ContentType]; !ok {
			return &model.ClaimResponse{
				Success: false,
				Message: fmt.Sprintf("File %s has invalid type. Only PDF, JPG, PNG, and TXT files are allowed", a.Filename),
			}
		}
	}
	return nil
}

// generateClaimID builds owner+MMDDYYYY and suffixes a sequence number
// when the owner already has claims that day. Count-then-insert:
// concurrent same-owner submissions may mint a duplicate suffix.
func (s *Service) generateClaimID(ctx context.Context, counter claimCounter, owner string, now time.Time) (string, error) {
	base := owner + now.Format(claimIDDateFormat)
	count, err := counter.CountByOwnerAndPrefix(ctx, owner, base)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s%d", base, count+1), nil
}

func recordFromSubmission(sub *model.ClaimSubmission, attachments []model.Attachment, claimID string, now time.Time) *model.ClaimRecord {
	docs := make([]model.DocumentInfo, 0, len(attachments))
	for _, a := range attachments {
		docs = append(docs, model.DocumentInfo{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeBytes,
			UploadedAt:  now.Format(time.RFC3339),
		})
	}

	return &model.ClaimRecord{
		ClaimID:               claimID,
		PatientName:           sub.PatientName,
		PatientID:             sub.PatientID,
		DateOfBirth:           sub.DateOfBirth,
		PhoneNumber:           sub.PhoneNumber,
		PolicyNumber:          sub.PolicyNumber,
		InsuranceProvider:     sub.InsuranceProvider,
		ClaimAmount:           sub.ClaimAmount,
		TreatmentDate:         sub.TreatmentDate,
		TreatmentProvided:     sub.TreatmentProvided,
		Diagnosis:             sub.Diagnosis,
		HospitalName:          sub.HospitalName,
		HospitalLocation:      sub.HospitalLocation,
		ProcedureName:         sub.ProcedureName,
		DoctorNotes:           sub.DoctorNotes,
		PatientMedicalHistory: sub.PatientMedicalHistory,
		ItemizedBill:          sub.ItemizedBill,
		InsuranceStartDate:    sub.InsuranceStartDate,
		Documents:             docs,
		Status:                model.ClaimStatusPending,
		SubmittedAt:           now.Format(time.RFC3339),
	}
}
