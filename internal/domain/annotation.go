// Package domain defines the core types shared across the grievance service.
package domain

import "time"

// Urgency is the heuristic severity label assigned to a complaint.
type Urgency string

// Urgency levels, ordered Medium < High < Critical.
const (
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// Rank returns the ordering position of the urgency level.
// Used to assert monotonicity, not for persistence.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 1
	case UrgencyCritical:
		return 2
	default:
		return 0
	}
}

// Credibility score bounds.
const (
	MinCredibility = 30
	MaxCredibility = 100
)

// TrainingExample is one labeled row of the training dataset.
type TrainingExample struct {
	Text     string `json:"complaint_text"`
	Category string `json:"category"`
}

// ComplaintAnnotation is the structured result of analyzing a complaint.
// Immutable once created; appended to the submission store and never
// updated in place.
type ComplaintAnnotation struct {
	ComplaintText string    `db:"complaint_text" json:"complaint_text"`
	Category      string    `db:"category"       json:"category"`
	Urgency       Urgency   `db:"urgency"        json:"urgency"`
	Credibility   int       `db:"credibility"    json:"credibility"`
	Area          string    `db:"area"           json:"area"`
	SubmittedAt   time.Time `db:"submitted_at"   json:"submitted_at,omitempty"`
}

// SubmissionColumns are the columns every submission store must carry.
// A store missing any of them is rejected as invalid.
var SubmissionColumns = []string{"complaint_text", "category", "urgency", "credibility", "area"}
