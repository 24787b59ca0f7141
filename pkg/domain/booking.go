package domain

import (
	"time"

	"github.com/google/uuid"
)

// Slot statuses as reported by the backend.
const (
	SlotStatusOpen      = "open"
	SlotStatusBooked    = "booked"
	SlotStatusCancelled = "cancelled"
)

// Slot is a bookable appointment slot on the clinic calendar.
// An open slot has no patient attached; once booked it doubles as the
// patient's appointment record.
type Slot struct {
	ID         uuid.UUID  `json:"id"`
	DoctorName string     `json:"doctor_name"`
	Specialty  string     `json:"specialty,omitempty"`
	Location   string     `json:"location,omitempty"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     time.Time  `json:"ends_at"`
	Status     string     `json:"status"` // "open", "booked", "cancelled"
	Reference  string     `json:"reference,omitempty"`
	BookedAt   *time.Time `json:"booked_at,omitempty"`
}

// Upcoming returns true if the slot starts after now.
func (s Slot) Upcoming(now time.Time) bool {
	return s.StartsAt.After(now)
}
