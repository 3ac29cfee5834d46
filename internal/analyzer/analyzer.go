// Package analyzer orchestrates complaint analysis: category prediction via
// the trained classifier artifact combined with the urgency and credibility
// heuristics.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/grievancesense/grievancesense/internal/domain"
	"github.com/grievancesense/grievancesense/internal/logging"
	"github.com/grievancesense/grievancesense/internal/model"
	"github.com/grievancesense/grievancesense/internal/scoring"
	"github.com/grievancesense/grievancesense/internal/telemetry"
)

// Analyzer combines the classifier artifact with the heuristic scorers.
// The artifact is an explicitly injected, read-only handle shared by every
// call; the Analyzer never mutates it, so concurrent Analyze calls are safe.
type Analyzer struct {
	artifact    *model.Artifact
	urgency     *scoring.UrgencyScorer
	credibility *scoring.CredibilityScorer
	telemetry   *telemetry.Provider
	logger      logging.Logger
}

// New creates an analyzer. telemetryProvider may be nil for callers that do
// not export metrics (tests, the trainer CLI).
func New(
	artifact *model.Artifact,
	urgency *scoring.UrgencyScorer,
	credibility *scoring.CredibilityScorer,
	telemetryProvider *telemetry.Provider,
	logger logging.Logger,
) *Analyzer {
	return &Analyzer{
		artifact:    artifact,
		urgency:     urgency,
		credibility: credibility,
		telemetry:   telemetryProvider,
		logger:      logger,
	}
}

// Analyze classifies the complaint text and annotates it with urgency,
// credibility and the caller-chosen area tag. Blank text fails with
// domain.ErrInvalidInput before any scoring runs.
func (a *Analyzer) Analyze(ctx context.Context, text, area string) (*domain.ComplaintAnnotation, error) {
	start := time.Now()

	if a.telemetry != nil {
		var span trace.Span
		ctx, span = a.telemetry.Tracer.Start(ctx, "analyzer.Analyze")
		defer span.End()
	}

	if strings.TrimSpace(text) == "" {
		a.recordFailure("empty_input")
		return nil, domain.ErrInvalidInput
	}

	category, err := a.artifact.Predict(text)
	if err != nil {
		a.recordFailure("predict")
		return nil, fmt.Errorf("predict category: %w", err)
	}

	annotation := &domain.ComplaintAnnotation{
		ComplaintText: text,
		Category:      category,
		Urgency:       a.urgency.Score(text),
		Credibility:   a.credibility.Score(text),
		Area:          area,
		SubmittedAt:   time.Now().UTC(),
	}

	a.recordSuccess(annotation, time.Since(start))

	a.logger.Debug("complaint analyzed",
		logging.String("category", annotation.Category),
		logging.String("urgency", string(annotation.Urgency)),
		logging.Int("credibility", annotation.Credibility),
		logging.String("area", annotation.Area),
	)

	return annotation, nil
}

// Categories returns the category labels the underlying artifact predicts.
func (a *Analyzer) Categories() []string {
	return a.artifact.Categories()
}

func (a *Analyzer) recordSuccess(annotation *domain.ComplaintAnnotation, elapsed time.Duration) {
	if a.telemetry == nil {
		return
	}
	m := a.telemetry.Metrics
	m.AnalysesTotal.WithLabelValues(annotation.Category).Inc()
	m.UrgencyTotal.WithLabelValues(string(annotation.Urgency)).Inc()
	m.CredibilityScore.Observe(float64(annotation.Credibility))
	m.AnalyzeDuration.Observe(elapsed.Seconds())
}

func (a *Analyzer) recordFailure(reason string) {
	if a.telemetry == nil {
		return
	}
	a.telemetry.Metrics.AnalysesFailed.WithLabelValues(reason).Inc()
}
