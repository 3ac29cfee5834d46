package model

import (
	"math"
	"testing"
)

func fitSmallClassifier(t *testing.T) (*Vectorizer, *MultinomialNB) {
	t.Helper()

	docs := []string{
		"no water supply in the tap",
		"water pipe burst and leaking",
		"drinking water is muddy",
		"garbage not collected from street",
		"garbage dump overflowing near street",
		"trash piling up everywhere",
	}
	labels := []string{
		"Water Supply", "Water Supply", "Water Supply",
		"Sanitation", "Sanitation", "Sanitation",
	}

	v := NewVectorizer()
	v.Fit(docs)

	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}

	nb := NewMultinomialNB()
	if err := nb.Fit(vectors, labels); err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	return v, nb
}

func TestMultinomialNB_PredictsTrainingCategories(t *testing.T) {
	v, nb := fitSmallClassifier(t)

	cases := map[string]string{
		"water is leaking again":       "Water Supply",
		"street full of garbage":       "Sanitation",
		"the tap has no water supply":  "Water Supply",
		"trash and garbage everywhere": "Sanitation",
	}
	for text, want := range cases {
		got, err := nb.Predict(v.Transform(text))
		if err != nil {
			t.Fatalf("predict %q: %v", text, err)
		}
		if got != want {
			t.Errorf("predict %q: got %s, want %s", text, got, want)
		}
	}
}

func TestMultinomialNB_ClassesSorted(t *testing.T) {
	_, nb := fitSmallClassifier(t)

	for i := 1; i < len(nb.Classes); i++ {
		if nb.Classes[i-1] >= nb.Classes[i] {
			t.Fatalf("classes not sorted: %v", nb.Classes)
		}
	}
}

func TestMultinomialNB_ProbabilitiesSumToOne(t *testing.T) {
	v, nb := fitSmallClassifier(t)

	_, probs, err := nb.PredictProba(v.Transform("water everywhere on the street"))
	if err != nil {
		t.Fatalf("predict proba: %v", err)
	}

	var total float64
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("probability %f out of [0,1]", p)
		}
		total += p
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("probabilities sum to %f, want 1", total)
	}
}

func TestMultinomialNB_ZeroVectorFallsBackToPrior(t *testing.T) {
	docs := []string{"water pipe", "water tank", "garbage dump"}
	labels := []string{"Water Supply", "Water Supply", "Sanitation"}

	v := NewVectorizer()
	v.Fit(docs)
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}

	nb := NewMultinomialNB()
	if err := nb.Fit(vectors, labels); err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	// A vector of unseen tokens carries no evidence; the majority class
	// prior decides.
	got, err := nb.Predict(v.Transform("completely unrelated complaint"))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got != "Water Supply" {
		t.Errorf("expected prior to decide for zero vector, got %s", got)
	}
}

func TestMultinomialNB_SingleCategoryDegeneratesToConstant(t *testing.T) {
	docs := []string{"water pipe", "water tank", "no water"}
	labels := []string{"Water Supply", "Water Supply", "Water Supply"}

	v := NewVectorizer()
	v.Fit(docs)
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}

	nb := NewMultinomialNB()
	if err := nb.Fit(vectors, labels); err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	for _, text := range []string{"garbage", "street light", "anything"} {
		got, err := nb.Predict(v.Transform(text))
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if got != "Water Supply" {
			t.Errorf("single-category model should be constant, got %s", got)
		}
	}
}

func TestMultinomialNB_FitRejectsMismatchedInput(t *testing.T) {
	nb := NewMultinomialNB()
	if err := nb.Fit([][]float64{{1, 0}}, []string{"a", "b"}); err == nil {
		t.Error("expected error for mismatched rows and labels")
	}
	if err := nb.Fit(nil, nil); err == nil {
		t.Error("expected error for empty training set")
	}
}

func TestMultinomialNB_PredictRejectsWrongWidth(t *testing.T) {
	_, nb := fitSmallClassifier(t)

	if _, err := nb.Predict([]float64{1, 2, 3}); err == nil {
		t.Error("expected error for vector width mismatch")
	}
}

func TestMultinomialNB_PredictUnfitted(t *testing.T) {
	nb := NewMultinomialNB()
	if _, err := nb.Predict([]float64{}); err == nil {
		t.Error("expected error predicting with unfitted classifier")
	}
}
