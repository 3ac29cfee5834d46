package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grievancesense/grievancesense/internal/domain"
	"github.com/grievancesense/grievancesense/internal/logging"
)

func trainTestArtifact(t *testing.T) *Artifact {
	t.Helper()

	examples := []domain.TrainingExample{
		{Text: "no water supply since morning", Category: "Water Supply"},
		{Text: "water pipe leaking on main road", Category: "Water Supply"},
		{Text: "drinking water is muddy and smells", Category: "Water Supply"},
		{Text: "garbage not collected for days", Category: "Sanitation"},
		{Text: "garbage dump overflowing near school", Category: "Sanitation"},
		{Text: "open drain full of trash", Category: "Sanitation"},
		{Text: "street light not working at night", Category: "Electricity"},
		{Text: "power cut every evening in our area", Category: "Electricity"},
		{Text: "transformer sparking near the market", Category: "Electricity"},
	}

	artifact, err := Train(examples, logging.NewNop())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	return artifact
}

func TestArtifact_SaveLoadRoundTrip(t *testing.T) {
	artifact := trainTestArtifact(t)
	path := filepath.Join(t.TempDir(), "model.gob")

	if err := artifact.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	texts := []string{
		"water leaking from the pipe",
		"trash everywhere on the street",
		"no power since last night",
		"garbage and muddy water near school",
	}
	for _, text := range texts {
		want, err := artifact.Predict(text)
		if err != nil {
			t.Fatalf("predict before save %q: %v", text, err)
		}
		got, err := loaded.Predict(text)
		if err != nil {
			t.Fatalf("predict after load %q: %v", text, err)
		}
		if got != want {
			t.Errorf("predict %q diverged after reload: got %s, want %s", text, got, want)
		}
	}
}

func TestArtifact_SaveCreatesParentDirectories(t *testing.T) {
	artifact := trainTestArtifact(t)
	path := filepath.Join(t.TempDir(), "nested", "deeper", "model.gob")

	if err := artifact.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved artifact missing: %v", err)
	}
}

func TestArtifact_SaveOverwritesExisting(t *testing.T) {
	artifact := trainTestArtifact(t)
	path := filepath.Join(t.TempDir(), "model.gob")

	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := artifact.Save(path); err != nil {
		t.Fatalf("save over existing: %v", err)
	}

	if _, err := Load(path); err != nil {
		t.Fatalf("load after overwrite: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gob"))
	if !errors.Is(err, domain.ErrArtifactLoad) {
		t.Errorf("expected ErrArtifactLoad, got %v", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	if err := os.WriteFile(path, []byte("this is not a gob stream"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, domain.ErrArtifactLoad) {
		t.Errorf("expected ErrArtifactLoad, got %v", err)
	}
}

func TestLoad_InconsistentArtifact(t *testing.T) {
	artifact := trainTestArtifact(t)
	// Break the invariant between vocabulary and model feature space.
	artifact.Vectorizer.Vocabulary = map[string]int{"only": 0}
	artifact.Vectorizer.IDF = []float64{1}

	path := filepath.Join(t.TempDir(), "model.gob")
	if err := artifact.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, domain.ErrArtifactLoad) {
		t.Errorf("expected ErrArtifactLoad for inconsistent artifact, got %v", err)
	}
}

func TestArtifact_PredictBlankText(t *testing.T) {
	artifact := trainTestArtifact(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := artifact.Predict(text); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("predict %q: expected ErrInvalidInput, got %v", text, err)
		}
		if _, _, err := artifact.PredictProba(text); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("predict proba %q: expected ErrInvalidInput, got %v", text, err)
		}
	}
}

func TestTrain_EmptyDataset(t *testing.T) {
	_, err := Train(nil, logging.NewNop())
	if !errors.Is(err, domain.ErrDataLoad) {
		t.Errorf("expected ErrDataLoad, got %v", err)
	}
}

func TestTrain_SingleCategorySucceeds(t *testing.T) {
	examples := []domain.TrainingExample{
		{Text: "no water supply", Category: "Water Supply"},
		{Text: "water pipe leaking", Category: "Water Supply"},
	}

	artifact, err := Train(examples, logging.NewNop())
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	got, err := artifact.Predict("anything at all")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got != "Water Supply" {
		t.Errorf("got %s, want Water Supply", got)
	}
}
