// Package model provides relevance classifiers for screening simulation.
// A classifier is refit from scratch on the full labeled set each iteration
// and scores the remaining unlabeled items.
package model

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
)

// Training errors. Both abort a run: continuing without a usable model
// would make every later selection meaningless.
var (
	// ErrEmptyTrainingSet means Train was called with no labeled items.
	ErrEmptyTrainingSet = errors.New("model: empty training set")

	// ErrSingleClass means the labeled set holds only one class and the
	// classifier needs both to fit.
	ErrSingleClass = errors.New("model: training set contains a single class")
)

// Classifier scores items by relevance. Higher scores indicate higher
// likelihood of relevance.
type Classifier interface {
	// Train refits the classifier on the full labeled set.
	// Returns ErrEmptyTrainingSet or ErrSingleClass on degenerate input.
	Train(labeled []dataset.Item) error

	// Score returns one relevance score per item, in input order.
	// Scores are in [0, 1]. Must only be called after a successful Train.
	Score(items []dataset.Item) []float64

	// Name returns the classifier identifier for logging.
	Name() string
}

// New returns a classifier by name. The rng seeds any stochastic parts of
// training so identical labeled sets produce identical scores.
func New(name string, rng *rand.Rand) (Classifier, error) {
	switch name {
	case "logistic", "logreg":
		return NewLogisticRegression(rng), nil
	case "naive-bayes", "nb":
		return NewGaussianNB(), nil
	default:
		return nil, fmt.Errorf("model: unknown classifier %q", name)
	}
}

// hasBothClasses reports whether the labeled set holds at least one
// relevant and one irrelevant item.
func hasBothClasses(labeled []dataset.Item) bool {
	var pos, neg bool
	for _, item := range labeled {
		if item.Relevant {
			pos = true
		} else {
			neg = true
		}
		if pos && neg {
			return true
		}
	}
	return false
}
