package model

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grievancesense/grievancesense/internal/domain"
)

// Artifact pairs the fitted vectorizer with the fitted classifier.
// The model's feature space always matches the vectorizer's vocabulary;
// Load rejects any artifact where that invariant does not hold.
//
// An Artifact is created once by training, persisted, and afterwards
// treated as read-only. Concurrent Predict calls are safe.
type Artifact struct {
	Vectorizer *Vectorizer
	Model      *MultinomialNB
}

// Predict vectorizes text with the frozen vocabulary and returns the most
// probable category. Blank text fails fast with domain.ErrInvalidInput
// rather than vectorizing an empty string.
func (a *Artifact) Predict(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrInvalidInput
	}
	return a.Model.Predict(a.Vectorizer.Transform(text))
}

// PredictProba is Predict with per-category probability estimates.
func (a *Artifact) PredictProba(text string) (string, map[string]float64, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil, domain.ErrInvalidInput
	}
	return a.Model.PredictProba(a.Vectorizer.Transform(text))
}

// Categories returns the category labels the artifact can predict.
func (a *Artifact) Categories() []string {
	return a.Model.Classes
}

// Save serializes the artifact to path, atomically overwriting any prior
// artifact. The write goes to a temp file in the same directory followed by
// a rename, so a concurrent loader never observes a partial artifact.
// Failures wrap domain.ErrPersist.
func (a *Artifact) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", domain.ErrPersist, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", domain.ErrPersist, err)
	}
	tmpName := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(a); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: encode artifact: %w", domain.ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %w", domain.ErrPersist, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename into place: %w", domain.ErrPersist, err)
	}

	return nil
}

// Load deserializes an artifact from path and validates its shape.
// A missing, unreadable or structurally incompatible file wraps
// domain.ErrArtifactLoad; a partially-initialized artifact is never
// returned.
func Load(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrArtifactLoad, path, err)
	}
	defer f.Close()

	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrArtifactLoad, path, err)
	}

	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrArtifactLoad, path, err)
	}
	return &a, nil
}

// validate checks the structural invariants between vectorizer and model.
func (a *Artifact) validate() error {
	if a.Vectorizer == nil || a.Model == nil {
		return fmt.Errorf("artifact is missing vectorizer or model")
	}
	if len(a.Model.Classes) == 0 {
		return fmt.Errorf("artifact model has no classes")
	}
	if len(a.Model.Classes) != len(a.Model.ClassLogPrior) ||
		len(a.Model.Classes) != len(a.Model.FeatureLogProb) {
		return fmt.Errorf("artifact model state is inconsistent")
	}
	if len(a.Vectorizer.Vocabulary) != len(a.Vectorizer.IDF) {
		return fmt.Errorf("artifact vectorizer state is inconsistent")
	}
	if a.Model.NumFeatures() != a.Vectorizer.NumFeatures() {
		return fmt.Errorf("model feature space (%d) does not match vocabulary (%d)",
			a.Model.NumFeatures(), a.Vectorizer.NumFeatures())
	}
	return nil
}
