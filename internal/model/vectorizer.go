// Package model implements the grievance text classification pipeline:
// a TF-IDF vectorizer over a frozen vocabulary paired with a multinomial
// naive Bayes classifier, trained offline and loaded read-only at inference.
package model

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gonum.org/v1/gonum/floats"
)

// tokenPattern keeps alphanumeric runs of at least two characters.
// Single characters carry no signal for category prediction.
var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9]+`)

// Vectorizer converts raw text into a TF-IDF weighted feature vector using
// a vocabulary frozen at fit time. Tokens unseen during fit are ignored at
// transform time, never an error.
//
// Exported fields are the serialized state; the stop word set is fixed and
// not part of the artifact.
type Vectorizer struct {
	// Vocabulary maps token to feature index.
	Vocabulary map[string]int
	// IDF holds the inverse document frequency per feature index.
	IDF []float64
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{Vocabulary: make(map[string]int)}
}

// Fit builds the vocabulary and IDF weights from the training corpus.
// English stop words are excluded from the vocabulary. Calling Fit again
// replaces the previous state entirely.
func (v *Vectorizer) Fit(docs []string) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, stop := englishStopWords[tok]; stop {
				continue
			}
			seen[tok] = struct{}{}
		}
		for tok := range seen {
			df[tok]++
		}
	}

	// Sorted vocabulary keeps feature indices deterministic across runs.
	terms := make([]string, 0, len(df))
	for tok := range df {
		terms = append(terms, tok)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, tok := range terms {
		v.Vocabulary[tok] = i
		// Smoothed IDF: behaves as if every term were seen in one extra
		// document, so no weight is ever zero or infinite.
		v.IDF[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}
}

// Transform maps text to an L2-normalized TF-IDF vector over the frozen
// vocabulary. Unknown tokens contribute nothing.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, tok := range Tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx] += v.IDF[idx]
		}
	}

	if nrm := floats.Norm(vec, 2); nrm > 0 {
		floats.Scale(1/nrm, vec)
	}
	return vec
}

// NumFeatures returns the size of the frozen vocabulary.
func (v *Vectorizer) NumFeatures() int {
	return len(v.IDF)
}

// Tokenize lowercases text, strips diacritics and splits it into
// alphanumeric tokens of at least two characters.
func Tokenize(text string) []string {
	normalized := normalizeText(text)
	return tokenPattern.FindAllString(normalized, -1)
}

// normalizeText lowercases and removes combining marks so accented input
// matches its plain-ASCII form.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
