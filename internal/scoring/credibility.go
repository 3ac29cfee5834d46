package scoring

import (
	"strings"

	"github.com/grievancesense/grievancesense/internal/domain"
)

// Credibility scoring weights.
const (
	credibilityBase    = 50
	longTextBoost      = 15
	mediumTextBoost    = 5
	longTextWordCount  = 15
	mediumTextWords    = 8
	timeCueBoost       = 10
	contextCueBoost    = 10
	negativeCuePenalty = 10
)

// Default cue word lists for credibility scoring. Membership is an exact
// token comparison against the whitespace-split, lowercased text.
var (
	DefaultTimeWords = []string{
		"day", "days", "hour", "hours", "week", "weeks",
		"month", "months", "year", "years",
	}
	DefaultContextWords = []string{
		"area", "road", "street", "hospital", "locality", "school",
	}
	// DefaultNegativeWords includes the two-word phrase "very bad", which
	// can never equal a single whitespace-split token. The entry is kept
	// verbatim from the deployed rule set: downstream score expectations
	// were calibrated against it, so it stays inert rather than being
	// turned into a phrase match.
	DefaultNegativeWords = []string{
		"worst", "useless", "terrible", "very bad", "hate",
	}
)

// CredibilityConfig carries the cue word lists for the credibility scorer.
type CredibilityConfig struct {
	TimeWords     []string
	ContextWords  []string
	NegativeWords []string
}

// CredibilityScorer computes a heuristic trust score in
// [domain.MinCredibility, domain.MaxCredibility] from text length,
// temporal and locational cues, and negative-sentiment words.
// Pure and deterministic; safe for concurrent callers.
type CredibilityScorer struct {
	timeWords     map[string]struct{}
	contextWords  map[string]struct{}
	negativeWords map[string]struct{}
}

// NewCredibilityScorer builds a scorer from cfg; empty lists fall back to
// the defaults.
func NewCredibilityScorer(cfg CredibilityConfig) *CredibilityScorer {
	if len(cfg.TimeWords) == 0 {
		cfg.TimeWords = DefaultTimeWords
	}
	if len(cfg.ContextWords) == 0 {
		cfg.ContextWords = DefaultContextWords
	}
	if len(cfg.NegativeWords) == 0 {
		cfg.NegativeWords = DefaultNegativeWords
	}
	return &CredibilityScorer{
		timeWords:     toSet(cfg.TimeWords),
		contextWords:  toSet(cfg.ContextWords),
		negativeWords: toSet(cfg.NegativeWords),
	}
}

// Score computes the credibility of text. The four adjustments are
// independent and additive; clamping happens last.
func (s *CredibilityScorer) Score(text string) int {
	score := credibilityBase
	words := strings.Fields(strings.ToLower(text))

	switch {
	case len(words) > longTextWordCount:
		score += longTextBoost
	case len(words) > mediumTextWords:
		score += mediumTextBoost
	}

	if anyWordIn(words, s.timeWords) {
		score += timeCueBoost
	}
	if anyWordIn(words, s.contextWords) {
		score += contextCueBoost
	}
	if anyWordIn(words, s.negativeWords) {
		score -= negativeCuePenalty
	}

	if score < domain.MinCredibility {
		return domain.MinCredibility
	}
	if score > domain.MaxCredibility {
		return domain.MaxCredibility
	}
	return score
}

func anyWordIn(words []string, set map[string]struct{}) bool {
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
