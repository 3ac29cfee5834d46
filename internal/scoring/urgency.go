// Package scoring implements the deterministic heuristic scorers that
// annotate each complaint: an urgency level from keyword presence and a
// credibility score from text length and lexical cues.
//
// Both scorers are pure functions of the input text; the word lists are
// injected configuration, overridable for tests and deployments.
package scoring

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/grievancesense/grievancesense/internal/domain"
)

// Urgency thresholds on the count of distinct keywords present.
const (
	criticalKeywordCount = 3
	highKeywordCount     = 2
)

// DefaultUrgencyKeywords are the substrings whose presence raises urgency.
var DefaultUrgencyKeywords = []string{
	"days", "accident", "sick", "emergency", "no water", "not working",
}

// UrgencyScorer assigns an urgency level from case-insensitive substring
// matches against a fixed keyword set. Each keyword counts once however
// often it repeats. The matcher is built once and shared; scoring is safe
// for concurrent callers.
type UrgencyScorer struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

// NewUrgencyScorer builds a scorer over the given keywords. Keywords are
// matched lowercase; an empty slice falls back to the defaults.
func NewUrgencyScorer(keywords []string) *UrgencyScorer {
	if len(keywords) == 0 {
		keywords = DefaultUrgencyKeywords
	}
	normalized := make([]string, len(keywords))
	for i, kw := range keywords {
		normalized[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	return &UrgencyScorer{
		keywords: normalized,
		matcher:  ahocorasick.NewStringMatcher(normalized),
	}
}

// Score maps the number of distinct keywords present in text to an urgency
// level: three or more is Critical, exactly two is High, otherwise Medium.
// Zero and one keyword rank identically on purpose.
func (s *UrgencyScorer) Score(text string) domain.Urgency {
	hits := s.matcher.Match([]byte(strings.ToLower(text)))

	switch {
	case len(hits) >= criticalKeywordCount:
		return domain.UrgencyCritical
	case len(hits) == highKeywordCount:
		return domain.UrgencyHigh
	default:
		return domain.UrgencyMedium
	}
}

// MatchCount returns the number of distinct keywords present in text.
func (s *UrgencyScorer) MatchCount(text string) int {
	return len(s.matcher.Match([]byte(strings.ToLower(text))))
}
