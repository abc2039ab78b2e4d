package learner

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
	"github.com/5H5KN5/active-learning-simulator/internal/evaluate"
	"github.com/5H5KN5/active-learning-simulator/internal/model"
	"github.com/5H5KN5/active-learning-simulator/internal/selection"
	"github.com/5H5KN5/active-learning-simulator/internal/stopping"
)

// neverStop keeps the loop running until the pool empties or max_iter hits.
type neverStop struct{}

func (neverStop) Observe(int, int) stopping.Decision { return stopping.Continue }
func (neverStop) Name() string                       { return "never" }

// failingClassifier always fails training.
type failingClassifier struct{ err error }

func (f failingClassifier) Train([]dataset.Item) error  { return f.err }
func (f failingClassifier) Score([]dataset.Item) []float64 { return nil }
func (f failingClassifier) Name() string                { return "failing" }

func newLearner(ds dataset.Dataset, c model.Classifier, st stopping.Stopper, batchSize, maxIter int, seed int64) *ActiveLearner {
	rng := rand.New(rand.NewSource(seed))
	if c == nil {
		c = model.NewGaussianNB()
	}
	return New(c, selection.NewRelevanceSelector(rng), st, evaluate.NewEvaluator(ds), batchSize, maxIter)
}

func TestEndToEndScreening(t *testing.T) {
	// 100 items, 10 relevant, batch_proportion 0.1 -> batch size 11.
	// The pool empties within ceil(100/11) = 10 iterations, so with
	// max_iter 1000 the run can never end on the iteration limit.
	ds := dataset.Synthetic("e2e", 100, 10, 4, 7)

	batchSize, err := selection.BatchSize(0.1, ds.Size())
	if err != nil {
		t.Fatal(err)
	}
	if batchSize != 11 {
		t.Fatalf("batch size = %d, want 11", batchSize)
	}

	stopper := stopping.NewRecallStopper(ds.Size(), 0.95, 0.95)
	al := newLearner(ds, nil, stopper, batchSize, 1000, 7)

	res, err := al.Train(ds)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if res.Reason == ReasonIterationLimit {
		t.Errorf("run must not end on iteration limit, got %s after %d iterations",
			res.Reason, res.Iterations)
	}
	if res.Iterations > 10 {
		t.Errorf("run took %d iterations, pool empties in 10", res.Iterations)
	}
	if len(res.Snapshots) != res.Iterations {
		t.Errorf("expected one snapshot per iteration: %d vs %d", len(res.Snapshots), res.Iterations)
	}

	// Recall non-decreasing, work save non-increasing
	for i := 1; i < len(res.Snapshots); i++ {
		if res.Snapshots[i].Recall < res.Snapshots[i-1].Recall {
			t.Errorf("recall decreased at iteration %d: %v -> %v",
				i, res.Snapshots[i-1].Recall, res.Snapshots[i].Recall)
		}
		if res.Snapshots[i].WorkSave > res.Snapshots[i-1].WorkSave {
			t.Errorf("work save increased at iteration %d: %v -> %v",
				i, res.Snapshots[i-1].WorkSave, res.Snapshots[i].WorkSave)
		}
	}

	if res.Reason == ReasonPoolExhausted && res.FinalRecall() != 1.0 {
		t.Errorf("exhausted pool must have recall 1.0, got %v", res.FinalRecall())
	}
}

func TestPoolExhaustionTerminal(t *testing.T) {
	ds := dataset.Synthetic("exhaust", 30, 3, 2, 11)
	al := newLearner(ds, nil, neverStop{}, 7, 1000, 11)

	res, err := al.Train(ds)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if res.Reason != ReasonPoolExhausted {
		t.Errorf("reason = %s, want %s", res.Reason, ReasonPoolExhausted)
	}
	if res.FinalRecall() != 1.0 {
		t.Errorf("final recall = %v, want 1.0 on exhaustion", res.FinalRecall())
	}
	if res.Screened != ds.Size() {
		t.Errorf("screened = %d, want %d", res.Screened, ds.Size())
	}
}

func TestIterationLimitTerminal(t *testing.T) {
	ds := dataset.Synthetic("limit", 100, 10, 2, 3)
	al := newLearner(ds, nil, neverStop{}, 5, 2, 3)

	res, err := al.Train(ds)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if res.Reason != ReasonIterationLimit {
		t.Errorf("reason = %s, want %s", res.Reason, ReasonIterationLimit)
	}
	if res.Iterations != 2 {
		t.Errorf("iterations = %d, want 2", res.Iterations)
	}
	if res.Screened != 10 {
		t.Errorf("screened = %d, want 10", res.Screened)
	}
}

func TestDeterministicTrace(t *testing.T) {
	ds := dataset.Synthetic("seeded", 80, 8, 3, 21)

	run := func() RunResult {
		stopper := stopping.NewRecallStopper(ds.Size(), 0.95, 0.95)
		al := newLearner(ds, nil, stopper, 9, 1000, 21)
		res, err := al.Train(ds)
		if err != nil {
			t.Fatalf("Train failed: %v", err)
		}
		return res
	}

	a, b := run(), run()
	if a.Reason != b.Reason || a.Iterations != b.Iterations || a.Screened != b.Screened {
		t.Fatalf("runs diverged: %+v vs %+v", a, b)
	}
	for i := range a.Snapshots {
		if a.Snapshots[i] != b.Snapshots[i] {
			t.Errorf("snapshot %d diverged: %+v vs %+v", i, a.Snapshots[i], b.Snapshots[i])
		}
	}
}

func TestTrainingErrorAbortsRun(t *testing.T) {
	ds := dataset.Synthetic("abort", 20, 2, 2, 5)
	al := newLearner(ds, failingClassifier{err: model.ErrSingleClass}, neverStop{}, 5, 100, 5)

	_, err := al.Train(ds)
	if !errors.Is(err, model.ErrSingleClass) {
		t.Errorf("expected wrapped ErrSingleClass, got %v", err)
	}
}

func TestTerminalReasonStrings(t *testing.T) {
	if ReasonStoppingRule.String() != "stopping rule" ||
		ReasonPoolExhausted.String() != "pool exhausted" ||
		ReasonIterationLimit.String() != "iteration limit" {
		t.Error("terminal reason strings changed; stored results depend on them")
	}
}
