package domain

import (
	"time"

	"github.com/google/uuid"
)

// Treatment categories used by the history views for badges and filtering.
var TreatmentCategories = []string{
	"consultation",
	"lab-result",
	"prescription",
	"imaging",
	"vaccination",
	"surgery",
	"therapy",
	"other",
}

// Treatment is one entry in the patient's treatment record.
type Treatment struct {
	ID          uuid.UUID `json:"id"`
	Reference   string    `json:"reference,omitempty"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	DoctorName  string    `json:"doctor_name"`
	Department  string    `json:"department,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Details     string    `json:"details,omitempty"`
	Medications []string  `json:"medications,omitempty"`
	TreatedAt   time.Time `json:"treated_at"`
}

var treatmentCategorySet = func() map[string]bool {
	m := make(map[string]bool, len(TreatmentCategories))
	for _, c := range TreatmentCategories {
		m[c] = true
	}
	return m
}()

// ValidCategory returns true if the given category is a known treatment category.
func ValidCategory(c string) bool {
	return treatmentCategorySet[c]
}
