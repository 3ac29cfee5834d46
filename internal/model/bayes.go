package model

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// defaultAlpha is the additive smoothing applied during fitting so unseen
// token/category combinations never collapse to zero probability.
const defaultAlpha = 1.0

// MultinomialNB is a multinomial naive Bayes classifier over non-negative
// feature vectors. State is immutable after Fit; concurrent Predict calls
// are safe.
type MultinomialNB struct {
	// Classes holds the category labels in sorted order. Ties during
	// prediction resolve to the first label in this order.
	Classes []string
	// ClassLogPrior holds the log prior probability per class.
	ClassLogPrior []float64
	// FeatureLogProb holds log class-conditional feature probabilities,
	// indexed [class][feature].
	FeatureLogProb [][]float64
	// Alpha is the additive smoothing used at fit time.
	Alpha float64
}

// NewMultinomialNB creates an unfitted classifier with default smoothing.
func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{Alpha: defaultAlpha}
}

// Fit estimates class priors and per-class feature probabilities from the
// vectorized training set. Rows of x must all have the same length and
// align with y.
func (m *MultinomialNB) Fit(x [][]float64, y []string) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("fit: need matching feature rows and labels, got %d and %d", len(x), len(y))
	}
	numFeatures := len(x[0])
	if m.Alpha <= 0 {
		m.Alpha = defaultAlpha
	}

	classSet := make(map[string]int)
	for _, label := range y {
		classSet[label]++
	}
	classes := make([]string, 0, len(classSet))
	for label := range classSet {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	classIdx := make(map[string]int, len(classes))
	for i, label := range classes {
		classIdx[label] = i
	}

	featureCount := make([][]float64, len(classes))
	for i := range featureCount {
		featureCount[i] = make([]float64, numFeatures)
	}

	total := float64(len(y))
	logPrior := make([]float64, len(classes))
	for i, label := range classes {
		logPrior[i] = math.Log(float64(classSet[label]) / total)
	}

	for row, vec := range x {
		if len(vec) != numFeatures {
			return fmt.Errorf("fit: row %d has %d features, want %d", row, len(vec), numFeatures)
		}
		floats.Add(featureCount[classIdx[y[row]]], vec)
	}

	logProb := make([][]float64, len(classes))
	for i := range classes {
		smoothedTotal := floats.Sum(featureCount[i]) + m.Alpha*float64(numFeatures)
		logProb[i] = make([]float64, numFeatures)
		for j, count := range featureCount[i] {
			logProb[i][j] = math.Log((count + m.Alpha) / smoothedTotal)
		}
	}

	m.Classes = classes
	m.ClassLogPrior = logPrior
	m.FeatureLogProb = logProb
	return nil
}

// Predict returns the most probable class for the feature vector.
func (m *MultinomialNB) Predict(vec []float64) (string, error) {
	scores, err := m.jointLogLikelihood(vec)
	if err != nil {
		return "", err
	}
	return m.Classes[floats.MaxIdx(scores)], nil
}

// PredictProba returns per-class probability estimates alongside the most
// probable class.
func (m *MultinomialNB) PredictProba(vec []float64) (string, map[string]float64, error) {
	scores, err := m.jointLogLikelihood(vec)
	if err != nil {
		return "", nil, err
	}

	logTotal := floats.LogSumExp(scores)
	probs := make(map[string]float64, len(m.Classes))
	for i, class := range m.Classes {
		probs[class] = math.Exp(scores[i] - logTotal)
	}
	return m.Classes[floats.MaxIdx(scores)], probs, nil
}

// jointLogLikelihood computes the unnormalized log posterior per class.
func (m *MultinomialNB) jointLogLikelihood(vec []float64) ([]float64, error) {
	if len(m.Classes) == 0 {
		return nil, fmt.Errorf("predict: classifier is not fitted")
	}
	numFeatures := len(m.FeatureLogProb[0])
	if len(vec) != numFeatures {
		return nil, fmt.Errorf("predict: vector has %d features, want %d", len(vec), numFeatures)
	}

	scores := make([]float64, len(m.Classes))
	for i := range m.Classes {
		scores[i] = m.ClassLogPrior[i] + floats.Dot(m.FeatureLogProb[i], vec)
	}
	return scores, nil
}

// NumFeatures returns the size of the learned feature space, or zero when
// the classifier is unfitted.
func (m *MultinomialNB) NumFeatures() int {
	if len(m.FeatureLogProb) == 0 {
		return 0
	}
	return len(m.FeatureLogProb[0])
}
