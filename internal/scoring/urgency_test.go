package scoring

import (
	"strings"
	"testing"

	"github.com/grievancesense/grievancesense/internal/domain"
)

func TestUrgencyScorer_Critical_ThreeKeywords(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	// Matches "no water", "days" and "emergency".
	got := scorer.Score("There is no water and it has been 3 days, an emergency!")
	if got != domain.UrgencyCritical {
		t.Errorf("expected Critical, got %s", got)
	}
}

func TestUrgencyScorer_Medium_SingleKeyword(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	// Matches "not working" only; a single keyword still ranks Medium.
	got := scorer.Score("My road is not working properly")
	if got != domain.UrgencyMedium {
		t.Errorf("expected Medium, got %s", got)
	}
}

func TestUrgencyScorer_High_TwoKeywords(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	got := scorer.Score("The streetlight is not working and someone got sick")
	if got != domain.UrgencyHigh {
		t.Errorf("expected High, got %s", got)
	}
}

func TestUrgencyScorer_Medium_NoKeywords(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	got := scorer.Score("The park gate is rusty")
	if got != domain.UrgencyMedium {
		t.Errorf("expected Medium, got %s", got)
	}
}

func TestUrgencyScorer_CaseInsensitive(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	upper := scorer.Score("EMERGENCY! NO WATER FOR DAYS")
	lower := scorer.Score("emergency! no water for days")
	if upper != lower || upper != domain.UrgencyCritical {
		t.Errorf("expected Critical for both cases, got %s and %s", upper, lower)
	}
}

func TestUrgencyScorer_KeywordCountedOnceDespiteRepetition(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	// "days" repeated three times is still a single keyword match.
	got := scorer.Score("days and days and days of waiting")
	if got != domain.UrgencyMedium {
		t.Errorf("expected Medium for one distinct keyword, got %s", got)
	}
	if count := scorer.MatchCount("days and days and days of waiting"); count != 1 {
		t.Errorf("expected match count 1, got %d", count)
	}
}

func TestUrgencyScorer_MonotoneInDistinctKeywords(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	text := "The drainage near my house smells awful"
	prev := scorer.Score(text).Rank()

	for _, kw := range []string{"sick", "accident", "emergency", "no water"} {
		text += " " + kw
		rank := scorer.Score(text).Rank()
		if rank < prev {
			t.Fatalf("urgency regressed from rank %d to %d after appending %q", prev, rank, kw)
		}
		prev = rank
	}

	if final := scorer.Score(text); final != domain.UrgencyCritical {
		t.Errorf("expected Critical with all keywords appended, got %s", final)
	}
}

func TestUrgencyScorer_Deterministic(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	text := "accident on the road, people are sick"
	first := scorer.Score(text)
	for range 10 {
		if got := scorer.Score(text); got != first {
			t.Fatalf("urgency not deterministic: got %s then %s", first, got)
		}
	}
}

func TestUrgencyScorer_CustomKeywords(t *testing.T) {
	scorer := NewUrgencyScorer([]string{"flood", "fire", "collapse"})

	if got := scorer.Score("A fire broke out after the flood and the wall collapse"); got != domain.UrgencyCritical {
		t.Errorf("expected Critical with custom keywords, got %s", got)
	}
	// Default keywords no longer apply.
	if got := scorer.Score("no water for days, an emergency"); got != domain.UrgencyMedium {
		t.Errorf("expected Medium when custom keywords replace defaults, got %s", got)
	}
}

func TestUrgencyScorer_SubstringSemantics(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	// "days" matches inside "holidays": keyword presence is a substring
	// membership test, not a word-boundary match.
	if count := scorer.MatchCount("happy holidays"); count != 1 {
		t.Errorf("expected substring match inside larger word, got count %d", count)
	}
}

func TestUrgencyScorer_LongTextStaysLinear(t *testing.T) {
	scorer := NewUrgencyScorer(nil)

	long := strings.Repeat("the pipeline has burst and flooded everything ", 500)
	if got := scorer.Score(long); got != domain.UrgencyMedium {
		t.Errorf("expected Medium for keyword-free text, got %s", got)
	}
}
