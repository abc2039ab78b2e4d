package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
)

// LogisticRegression is a binary relevance classifier fit by stochastic
// gradient descent. Requires both classes in the training set.
type LogisticRegression struct {
	// LearningRate is the SGD step size.
	LearningRate float64
	// Epochs is the number of full passes over the labeled set.
	Epochs int
	// L2 is the ridge penalty applied to the weights.
	L2 float64

	weights []float64
	bias    float64
	rng     *rand.Rand
}

// NewLogisticRegression creates a classifier with default hyperparameters.
// The rng drives epoch shuffling, so a fixed seed gives a reproducible fit.
func NewLogisticRegression(rng *rand.Rand) *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 0.1,
		Epochs:       200,
		L2:           1e-4,
		rng:          rng,
	}
}

func (m *LogisticRegression) Name() string { return "logistic" }

// Train refits weights from scratch on the full labeled set.
func (m *LogisticRegression) Train(labeled []dataset.Item) error {
	if len(labeled) == 0 {
		return ErrEmptyTrainingSet
	}
	if !hasBothClasses(labeled) {
		return ErrSingleClass
	}

	dim := len(labeled[0].Features)
	m.weights = make([]float64, dim)
	m.bias = 0

	order := make([]int, len(labeled))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < m.Epochs; epoch++ {
		if m.rng != nil {
			m.rng.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
		}
		for _, idx := range order {
			item := labeled[idx]
			y := 0.0
			if item.Relevant {
				y = 1.0
			}
			p := sigmoid(floats.Dot(m.weights, item.Features) + m.bias)
			grad := p - y

			// w -= lr * (grad * x + l2 * w)
			for j, x := range item.Features {
				m.weights[j] -= m.LearningRate * (grad*x + m.L2*m.weights[j])
			}
			m.bias -= m.LearningRate * grad
		}
	}

	return nil
}

// Score returns the predicted probability of relevance for each item.
func (m *LogisticRegression) Score(items []dataset.Item) []float64 {
	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = sigmoid(floats.Dot(m.weights, item.Features) + m.bias)
	}
	return scores
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
