package model

import "encoding/json"

// AnalyticsRecord is a fraud-screening result keyed by insurance
// provider. The write path is external; this service only reads.
type AnalyticsRecord struct {
	ID                string          `json:"id" db:"id"`
	InsuranceProvider string          `json:"insuranceProvider" db:"insurance_provider"`
	Severity          string          `json:"severity" db:"severity"`
	Details           json.RawMessage `json:"details,omitempty" db:"details"`
}

// SeverityCount is one bucket of the severity distribution, ordered
// ascending by severity key.
type SeverityCount struct {
	Severity string `json:"severity" db:"severity"`
	Count    int    `json:"count" db:"count"`
}
