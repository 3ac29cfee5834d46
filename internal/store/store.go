// Package store persists accepted complaint submissions and computes the
// aggregate view the official dashboard reads.
//
// SubmissionStore is the swappable capability: a flat CSV file for
// single-node deployments, SQLite or PostgreSQL (via sqlx) for anything
// shared. Backends only append and read; records are never updated.
package store

import (
	"context"

	"github.com/grievancesense/grievancesense/internal/domain"
)

// SubmissionStore is an append-only log of complaint annotations.
type SubmissionStore interface {
	// Append adds one accepted submission to the log.
	Append(ctx context.Context, annotation *domain.ComplaintAnnotation) error
	// ReadAll returns every submission in insertion order.
	ReadAll(ctx context.Context) ([]domain.ComplaintAnnotation, error)
	// Close releases any underlying resources.
	Close() error
}

// Summary is the aggregated dashboard view over all submissions.
type Summary struct {
	Total      int                    `json:"total"`
	ByUrgency  map[domain.Urgency]int `json:"by_urgency"`
	ByCategory map[string]int         `json:"by_category"`
	ByArea     map[string]int         `json:"by_area"`
	// Critical lists the submissions needing immediate attention.
	Critical []domain.ComplaintAnnotation `json:"critical"`
}

// Summarize computes the dashboard aggregates over the submissions.
func Summarize(submissions []domain.ComplaintAnnotation) *Summary {
	s := &Summary{
		Total:      len(submissions),
		ByUrgency:  make(map[domain.Urgency]int),
		ByCategory: make(map[string]int),
		ByArea:     make(map[string]int),
		Critical:   make([]domain.ComplaintAnnotation, 0),
	}

	for _, sub := range submissions {
		s.ByUrgency[sub.Urgency]++
		if sub.Category != "" {
			s.ByCategory[sub.Category]++
		}
		if sub.Area != "" {
			s.ByArea[sub.Area]++
		}
		if sub.Urgency == domain.UrgencyCritical {
			s.Critical = append(s.Critical, sub)
		}
	}

	return s
}
