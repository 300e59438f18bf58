package model

// PatientDashboardClaim is the display projection of a claim for the
// patient dashboard.
type PatientDashboardClaim struct {
	Date         string `json:"date"`
	Provider     string `json:"provider"`
	Service      string `json:"service"`
	Amount       string `json:"amount"`
	Status       string `json:"status"`
	ClaimNumber  string `json:"claimNumber"`
	HospitalName string `json:"hospitalName"`
	Diagnosis    string `json:"diagnosis"`
}

// HospitalDashboardClaim is the display projection for the hospital
// dashboard. Status shows "In Progress" in place of "pending".
type HospitalDashboardClaim struct {
	ID             string `json:"id"`
	PatientName    string `json:"patientName"`
	SubmissionDate string `json:"submissionDate"`
	Amount         string `json:"amount"`
	Status         string `json:"status"`
}

// InsurerClaimView is one row of the insurer view: claims from both
// the patient and hospital collections, tagged with their source.
type InsurerClaimView struct {
	ClaimID        string `json:"claimId"`
	PatientName    string `json:"patientName"`
	SubmissionDate string `json:"submissionDate"`
	Amount         string `json:"amount"`
	Status         string `json:"status"`
	Source         string `json:"source"`
}

// Insurer view source tags.
const (
	ClaimSourcePatient  = "patient"
	ClaimSourceHospital = "hospital"
)
