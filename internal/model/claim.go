package model

// Claim status lifecycle. Transitions past "pending" are driven by an
// external review workflow, not by this service.
const (
	ClaimStatusPending    = "pending"
	ClaimStatusInProgress = "in-progress"
	ClaimStatusApproved   = "approved"
	ClaimStatusRejected   = "rejected"
)

// DocumentInfo is the stored metadata for a claim attachment. The file
// content itself lives in external storage.
type DocumentInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size"`
	UploadedAt  string `json:"uploaded_at"`
}

// ClaimRecord is a claim document as persisted. Patient and hospital
// claims share the same shape; HospitalID and HospitalObjectID are set
// only on hospital submissions.
type ClaimRecord struct {
	ClaimID               string         `json:"claimId"`
	PatientName           string         `json:"patientName"`
	PatientID             string         `json:"patientId"`
	DateOfBirth           string         `json:"dateOfBirth"`
	PhoneNumber           string         `json:"phoneNumber"`
	PolicyNumber          string         `json:"policyNumber"`
	InsuranceProvider     string         `json:"insuranceProvider"`
	ClaimAmount           string         `json:"claimAmount"`
	TreatmentDate         string         `json:"treatmentDate"`
	TreatmentProvided     string         `json:"treatmentProvided"`
	Diagnosis             string         `json:"diagnosis"`
	HospitalName          string         `json:"hospitalName"`
	HospitalLocation      string         `json:"hospitalLocation"`
	ProcedureName         string         `json:"procedureName"`
	DoctorNotes           string         `json:"doctorNotes"`
	PatientMedicalHistory string         `json:"patientMedicalHistory"`
	ItemizedBill          string         `json:"itemizedBill"`
	InsuranceStartDate    string         `json:"insuranceStartDate"`
	Documents             []DocumentInfo `json:"documents"`
	Status                string         `json:"status"`
	SubmittedAt           string         `json:"submittedAt"`
	HospitalID            string         `json:"hospitalId,omitempty"`
	HospitalObjectID      string         `json:"hospitalObjectId,omitempty"`
}

// ClaimSubmission is the client-supplied claim body. Every field is
// required and must be non-blank; violations are collected per field.
type ClaimSubmission struct {
	PatientName           string `json:"patientName" validate:"notblank"`
	PatientID             string `json:"patientId" validate:"notblank"`
	DateOfBirth           string `json:"dateOfBirth" validate:"notblank"`
	PhoneNumber           string `json:"phoneNumber" validate:"notblank"`
	PolicyNumber          string `json:"policyNumber" validate:"notblank"`
	InsuranceProvider     string `json:"insuranceProvider" validate:"notblank"`
	ClaimAmount           string `json:"claimAmount" validate:"notblank"`
	TreatmentDate         string `json:"treatmentDate" validate:"notblank"`
	TreatmentProvided     string `json:"treatmentProvided" validate:"notblank"`
	Diagnosis             string `json:"diagnosis" validate:"notblank"`
	HospitalName          string `json:"hospitalName" validate:"notblank"`
	HospitalLocation      string `json:"hospitalLocation" validate:"notblank"`
	ProcedureName         string `json:"procedureName" validate:"notblank"`
	DoctorNotes           string `json:"doctorNotes" validate:"notblank"`
	PatientMedicalHistory string `json:"patientMedicalHistory" validate:"notblank"`
	ItemizedBill          string `json:"itemizedBill" validate:"notblank"`
	InsuranceStartDate    string `json:"insuranceStartDate" validate:"notblank"`
}

// Attachment is the metadata of an uploaded file as seen at intake,
// before it is accepted into a claim.
type Attachment struct {
	Filename    string
	ContentType string
	SizeBytes   int64
}

// ClaimResponse is the intake result returned to the client.
type ClaimResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	ClaimID string            `json:"claimId,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
