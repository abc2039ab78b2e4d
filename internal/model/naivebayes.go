package model

import (
	"math"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
)

// varianceFloor keeps per-feature variances away from zero so constant
// features don't blow up the log-likelihood.
const varianceFloor = 1e-9

// GaussianNB is a Gaussian naive Bayes relevance classifier.
// Unlike logistic regression it tolerates a single-class labeled set:
// the missing class keeps a vanishing prior and never wins.
type GaussianNB struct {
	classes [2]nbClass // 0 = irrelevant, 1 = relevant
	dim     int
}

type nbClass struct {
	logPrior float64
	mean     []float64
	variance []float64
	count    int
}

// NewGaussianNB creates an untrained Gaussian naive Bayes classifier.
func NewGaussianNB() *GaussianNB { return &GaussianNB{} }

func (m *GaussianNB) Name() string { return "naive-bayes" }

// Train estimates per-class feature means and variances.
func (m *GaussianNB) Train(labeled []dataset.Item) error {
	if len(labeled) == 0 {
		return ErrEmptyTrainingSet
	}
	m.dim = len(labeled[0].Features)

	for c := range m.classes {
		m.classes[c] = nbClass{
			mean:     make([]float64, m.dim),
			variance: make([]float64, m.dim),
		}
	}

	for _, item := range labeled {
		c := 0
		if item.Relevant {
			c = 1
		}
		m.classes[c].count++
		for j, x := range item.Features {
			m.classes[c].mean[j] += x
		}
	}

	total := float64(len(labeled))
	for c := range m.classes {
		cls := &m.classes[c]
		if cls.count == 0 {
			// Absent class: vanishing prior, neutral likelihood
			cls.logPrior = math.Inf(-1)
			for j := range cls.variance {
				cls.variance[j] = 1.0
			}
			continue
		}
		cls.logPrior = math.Log(float64(cls.count) / total)
		for j := range cls.mean {
			cls.mean[j] /= float64(cls.count)
		}
	}

	for _, item := range labeled {
		c := 0
		if item.Relevant {
			c = 1
		}
		cls := &m.classes[c]
		for j, x := range item.Features {
			d := x - cls.mean[j]
			cls.variance[j] += d * d
		}
	}
	for c := range m.classes {
		cls := &m.classes[c]
		if cls.count == 0 {
			continue
		}
		for j := range cls.variance {
			cls.variance[j] /= float64(cls.count)
			if cls.variance[j] < varianceFloor {
				cls.variance[j] = varianceFloor
			}
		}
	}

	return nil
}

// Score returns the posterior probability of relevance for each item.
func (m *GaussianNB) Score(items []dataset.Item) []float64 {
	scores := make([]float64, len(items))
	for i, item := range items {
		logPos := m.logJoint(1, item.Features)
		logNeg := m.logJoint(0, item.Features)
		scores[i] = posteriorFromLogs(logPos, logNeg)
	}
	return scores
}

// logJoint returns log P(class) + log P(features | class).
func (m *GaussianNB) logJoint(c int, features []float64) float64 {
	cls := &m.classes[c]
	if math.IsInf(cls.logPrior, -1) {
		return math.Inf(-1)
	}
	sum := cls.logPrior
	for j, x := range features {
		v := cls.variance[j]
		d := x - cls.mean[j]
		sum += -0.5*math.Log(2*math.Pi*v) - d*d/(2*v)
	}
	return sum
}

// posteriorFromLogs converts two log-joints into P(relevant) stably.
func posteriorFromLogs(logPos, logNeg float64) float64 {
	if math.IsInf(logPos, -1) {
		return 0.0
	}
	if math.IsInf(logNeg, -1) {
		return 1.0
	}
	// 1 / (1 + exp(logNeg - logPos))
	return sigmoid(logPos - logNeg)
}
