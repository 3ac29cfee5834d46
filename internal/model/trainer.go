package model

import (
	"fmt"

	"github.com/grievancesense/grievancesense/internal/domain"
	"github.com/grievancesense/grievancesense/internal/logging"
)

// Train fits a TF-IDF vectorizer and a multinomial naive Bayes classifier
// over the labeled examples and returns the paired artifact.
//
// A single-category dataset still trains, degenerating to a constant
// predictor; it is logged as a warning rather than rejected so small pilots
// can bootstrap with partial data.
func Train(examples []domain.TrainingExample, log logging.Logger) (*Artifact, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: no training examples", domain.ErrDataLoad)
	}

	docs := make([]string, len(examples))
	labels := make([]string, len(examples))
	for i, ex := range examples {
		docs[i] = ex.Text
		labels[i] = ex.Category
	}

	vectorizer := NewVectorizer()
	vectorizer.Fit(docs)

	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = vectorizer.Transform(doc)
	}

	nb := NewMultinomialNB()
	if err := nb.Fit(vectors, labels); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataLoad, err)
	}

	if len(nb.Classes) < 2 {
		log.Warn("training data has a single category, predictions will be constant",
			logging.Int("examples", len(examples)))
	}

	log.Info("classifier trained",
		logging.Int("examples", len(examples)),
		logging.Int("categories", len(nb.Classes)),
		logging.Int("vocabulary", vectorizer.NumFeatures()),
	)

	return &Artifact{Vectorizer: vectorizer, Model: nb}, nil
}
