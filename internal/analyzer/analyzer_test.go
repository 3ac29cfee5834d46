package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grievancesense/grievancesense/internal/domain"
	"github.com/grievancesense/grievancesense/internal/logging"
	"github.com/grievancesense/grievancesense/internal/model"
	"github.com/grievancesense/grievancesense/internal/scoring"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()

	examples := []domain.TrainingExample{
		{Text: "no water supply since morning", Category: "Water Supply"},
		{Text: "water pipe leaking on main road", Category: "Water Supply"},
		{Text: "drinking water is muddy and smells", Category: "Water Supply"},
		{Text: "garbage not collected for days", Category: "Sanitation"},
		{Text: "garbage dump overflowing near school", Category: "Sanitation"},
		{Text: "open drain full of trash", Category: "Sanitation"},
	}
	artifact, err := model.Train(examples, logging.NewNop())
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	return New(
		artifact,
		scoring.NewUrgencyScorer(nil),
		scoring.NewCredibilityScorer(scoring.CredibilityConfig{}),
		nil,
		logging.NewNop(),
	)
}

func TestAnalyzer_Analyze(t *testing.T) {
	a := newTestAnalyzer(t)

	before := time.Now().UTC()
	annotation, err := a.Analyze(context.Background(), "Water pipe leaking near the school, no water for days", "Ward 12")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if annotation.Category != "Water Supply" {
		t.Errorf("got category %s, want Water Supply", annotation.Category)
	}
	// "no water" and "days" both match, so two distinct urgency keywords.
	if annotation.Urgency != domain.UrgencyHigh {
		t.Errorf("got urgency %s, want High", annotation.Urgency)
	}
	if annotation.Credibility < domain.MinCredibility || annotation.Credibility > domain.MaxCredibility {
		t.Errorf("credibility %d outside [%d,%d]", annotation.Credibility, domain.MinCredibility, domain.MaxCredibility)
	}
	if annotation.Area != "Ward 12" {
		t.Errorf("got area %q, want Ward 12", annotation.Area)
	}
	if annotation.SubmittedAt.Before(before) {
		t.Errorf("submitted_at %v predates the call", annotation.SubmittedAt)
	}
}

func TestAnalyzer_AnalyzeBlankText(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := a.Analyze(context.Background(), text, "")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("analyze %q: expected ErrInvalidInput, got %v", text, err)
		}
	}
}

func TestAnalyzer_Categories(t *testing.T) {
	a := newTestAnalyzer(t)

	got := a.Categories()
	want := []string{"Sanitation", "Water Supply"}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBatchAnalyzer_ResultsInRequestOrder(t *testing.T) {
	a := newTestAnalyzer(t)
	b := NewBatchAnalyzer(a, 4, logging.NewNop())

	requests := []BatchRequest{
		{ComplaintText: "no water supply at all", Area: "Ward 1"},
		{ComplaintText: "garbage everywhere on the street", Area: "Ward 2"},
		{ComplaintText: ""},
		{ComplaintText: "water is muddy and garbage floating in it", Area: "Ward 3"},
	}

	results := b.Analyze(context.Background(), requests)
	if len(results) != len(requests) {
		t.Fatalf("got %d results, want %d", len(results), len(requests))
	}

	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
	}
	if results[0].Err != nil || results[0].Annotation.Area != "Ward 1" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if !errors.Is(results[2].Err, domain.ErrInvalidInput) {
		t.Errorf("blank item should fail with ErrInvalidInput, got %v", results[2].Err)
	}
	if results[3].Err != nil || results[3].Annotation == nil {
		t.Errorf("failure of one item must not abort the rest: %+v", results[3])
	}
}

func TestBatchAnalyzer_LargeBatch(t *testing.T) {
	a := newTestAnalyzer(t)
	b := NewBatchAnalyzer(a, 8, logging.NewNop())

	requests := make([]BatchRequest, 100)
	for i := range requests {
		if i%2 == 0 {
			requests[i] = BatchRequest{ComplaintText: "no water supply in our lane"}
		} else {
			requests[i] = BatchRequest{ComplaintText: "garbage dump near the school"}
		}
	}

	results := b.Analyze(context.Background(), requests)
	if len(results) != 100 {
		t.Fatalf("got %d results, want 100", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("item %d failed: %v", i, r.Err)
		}
		want := "Water Supply"
		if i%2 == 1 {
			want = "Sanitation"
		}
		if r.Annotation.Category != want {
			t.Errorf("item %d: got category %s, want %s", i, r.Annotation.Category, want)
		}
	}
}

func TestBatchAnalyzer_EmptyBatch(t *testing.T) {
	a := newTestAnalyzer(t)
	b := NewBatchAnalyzer(a, 2, logging.NewNop())

	results := b.Analyze(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestBatchAnalyzer_CancelledContext(t *testing.T) {
	a := newTestAnalyzer(t)
	b := NewBatchAnalyzer(a, 2, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	requests := []BatchRequest{
		{ComplaintText: "no water supply"},
		{ComplaintText: "garbage everywhere"},
	}
	results := b.Analyze(ctx, requests)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Err == nil {
			t.Errorf("item %d: expected cancellation error", i)
		}
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(1, 1, logging.NewNop())

	if !rl.Allow() {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow() {
		t.Error("second immediate request should be limited at 1 rps with burst 1")
	}
}
