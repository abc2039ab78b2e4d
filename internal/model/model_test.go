package model

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
)

// separable returns a trivially separable labeled set: relevant items
// sit at +1, irrelevant at -1.
func separable() []dataset.Item {
	return []dataset.Item{
		{ID: 0, Features: []float64{1.0, 1.2}, Relevant: true},
		{ID: 1, Features: []float64{0.8, 1.1}, Relevant: true},
		{ID: 2, Features: []float64{-1.0, -0.9}, Relevant: false},
		{ID: 3, Features: []float64{-1.2, -1.1}, Relevant: false},
	}
}

func TestLogisticRejectsDegenerateSets(t *testing.T) {
	m := NewLogisticRegression(rand.New(rand.NewSource(1)))

	if err := m.Train(nil); !errors.Is(err, ErrEmptyTrainingSet) {
		t.Errorf("expected ErrEmptyTrainingSet, got %v", err)
	}

	oneClass := []dataset.Item{
		{Features: []float64{1}, Relevant: true},
		{Features: []float64{2}, Relevant: true},
	}
	if err := m.Train(oneClass); !errors.Is(err, ErrSingleClass) {
		t.Errorf("expected ErrSingleClass, got %v", err)
	}
}

func TestLogisticLearnsSeparableData(t *testing.T) {
	m := NewLogisticRegression(rand.New(rand.NewSource(1)))
	if err := m.Train(separable()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	scores := m.Score([]dataset.Item{
		{Features: []float64{1.5, 1.5}},
		{Features: []float64{-1.5, -1.5}},
	})
	if scores[0] <= 0.5 {
		t.Errorf("relevant-side item scored %f, want > 0.5", scores[0])
	}
	if scores[1] >= 0.5 {
		t.Errorf("irrelevant-side item scored %f, want < 0.5", scores[1])
	}
}

func TestLogisticDeterministicUnderSeed(t *testing.T) {
	test := []dataset.Item{{Features: []float64{0.3, -0.2}}}

	a := NewLogisticRegression(rand.New(rand.NewSource(7)))
	b := NewLogisticRegression(rand.New(rand.NewSource(7)))
	if err := a.Train(separable()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if err := b.Train(separable()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if sa, sb := a.Score(test)[0], b.Score(test)[0]; sa != sb {
		t.Errorf("same seed produced different scores: %v vs %v", sa, sb)
	}
}

func TestGaussianNBLearnsSeparableData(t *testing.T) {
	m := NewGaussianNB()
	if err := m.Train(separable()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	scores := m.Score([]dataset.Item{
		{Features: []float64{1.0, 1.0}},
		{Features: []float64{-1.0, -1.0}},
	})
	if scores[0] <= scores[1] {
		t.Errorf("relevant-side item (%f) should outscore irrelevant-side (%f)", scores[0], scores[1])
	}
}

func TestGaussianNBToleratesSingleClass(t *testing.T) {
	m := NewGaussianNB()

	if err := m.Train(nil); !errors.Is(err, ErrEmptyTrainingSet) {
		t.Errorf("expected ErrEmptyTrainingSet, got %v", err)
	}

	allIrrelevant := []dataset.Item{
		{Features: []float64{0.1}, Relevant: false},
		{Features: []float64{0.2}, Relevant: false},
	}
	if err := m.Train(allIrrelevant); err != nil {
		t.Fatalf("single-class Train failed: %v", err)
	}
	if score := m.Score([]dataset.Item{{Features: []float64{0.15}}})[0]; score != 0.0 {
		t.Errorf("with no relevant examples score should be 0, got %f", score)
	}
}

func TestNewUnknownClassifier(t *testing.T) {
	if _, err := New("perceptron", rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for unknown classifier name")
	}
}
