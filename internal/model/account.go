package model

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which account collection a user belongs to.
type Role string

const (
	RoleHospital  Role = "hospital"
	RolePatient   Role = "patient"
	RoleInsurance Role = "insurance"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHospital, RolePatient, RoleInsurance:
		return true
	}
	return false
}

// Account is a per-role user record. HospitalID and Location are set
// only for hospital accounts, Provider only for insurance accounts.
// HospitalID is the business identifier (e.g. HOSP1), distinct from
// the row key ID.
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	HospitalID   string    `json:"hospitalid,omitempty" db:"hospital_id"`
	Location     string    `json:"location,omitempty" db:"location"`
	Provider     string    `json:"provider,omitempty" db:"provider"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LoginUser is the sanitized account projection returned on login:
// password hash stripped, role injected, id as a portable string.
type LoginUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	HospitalID string `json:"hospitalid,omitempty"`
	Location   string `json:"location,omitempty"`
	Provider   string `json:"provider,omitempty"`
}

// SanitizedUser builds the login projection for an account.
func SanitizedUser(a *Account, role Role) *LoginUser {
	return &LoginUser{
		ID:         a.ID.String(),
		Username:   a.Username,
		Name:       a.Name,
		Role:       role,
		HospitalID: a.HospitalID,
		Location:   a.Location,
		Provider:   a.Provider,
	}
}
