package domain

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents the authenticated portal user's profile.
type Patient struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	DateOfBirth string     `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Address     string     `json:"address,omitempty"`
	InsuranceNo string     `json:"insurance_number,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// FullName joins first and last name for display.
func (p Patient) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
