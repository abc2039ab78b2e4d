// Package learner drives one active-learning run: select a batch, reveal
// its labels, retrain the classifier, record metrics, and check the
// stopping rule, repeating until the rule fires, the pool empties, or the
// iteration ceiling is reached.
package learner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
	"github.com/5H5KN5/active-learning-simulator/internal/evaluate"
	"github.com/5H5KN5/active-learning-simulator/internal/logging"
	"github.com/5H5KN5/active-learning-simulator/internal/model"
	"github.com/5H5KN5/active-learning-simulator/internal/selection"
	"github.com/5H5KN5/active-learning-simulator/internal/stopping"
)

// TerminalReason records why a run ended.
type TerminalReason int

const (
	// ReasonStoppingRule: the stopper signalled confident early stopping.
	ReasonStoppingRule TerminalReason = iota
	// ReasonPoolExhausted: every item was screened; recall is 1.0 by
	// construction. A normal terminal state, not an error.
	ReasonPoolExhausted
	// ReasonIterationLimit: the max_iter ceiling was hit first.
	ReasonIterationLimit
)

func (r TerminalReason) String() string {
	switch r {
	case ReasonStoppingRule:
		return "stopping rule"
	case ReasonPoolExhausted:
		return "pool exhausted"
	case ReasonIterationLimit:
		return "iteration limit"
	default:
		return "unknown"
	}
}

// RunResult is the outcome of one complete run.
type RunResult struct {
	ID            string
	Dataset       string
	Reason        TerminalReason
	Snapshots     []evaluate.MetricsSnapshot
	Iterations    int
	Screened      int
	RelevantFound int
	BatchSize     int
}

// FinalRecall returns the last snapshot's recall, or 0 with no snapshots.
func (r RunResult) FinalRecall() float64 {
	if len(r.Snapshots) == 0 {
		return 0
	}
	return r.Snapshots[len(r.Snapshots)-1].Recall
}

// FinalWorkSave returns the last snapshot's work-save, or 0 with no snapshots.
func (r RunResult) FinalWorkSave() float64 {
	if len(r.Snapshots) == 0 {
		return 0
	}
	return r.Snapshots[len(r.Snapshots)-1].WorkSave
}

// ActiveLearner orchestrates one run. Each run needs fresh component
// instances; nothing is shared across runs.
type ActiveLearner struct {
	classifier model.Classifier
	selector   selection.Selector
	stopper    stopping.Stopper
	evaluator  *evaluate.Evaluator
	batchSize  int
	maxIter    int
}

// New creates an ActiveLearner. batchSize must already be resolved via
// selection.BatchSize; maxIter bounds the run deterministically.
func New(c model.Classifier, s selection.Selector, st stopping.Stopper, ev *evaluate.Evaluator, batchSize, maxIter int) *ActiveLearner {
	return &ActiveLearner{
		classifier: c,
		selector:   s,
		stopper:    st,
		evaluator:  ev,
		batchSize:  batchSize,
		maxIter:    maxIter,
	}
}

// Train runs the full loop over the dataset. It returns an error only for
// training failures; pool exhaustion and the iteration ceiling are normal
// terminal states reported in the result.
func (al *ActiveLearner) Train(ds dataset.Dataset) (RunResult, error) {
	pool := dataset.NewPool(ds.Size())

	result := RunResult{
		ID:        uuid.NewString(),
		Dataset:   ds.Name,
		BatchSize: al.batchSize,
	}

	var scores []float64
	relevantFound := 0
	reason := ReasonStoppingRule

	iter := 0
	for {
		if pool.UnlabeledCount() == 0 {
			reason = ReasonPoolExhausted
			break
		}
		if iter >= al.maxIter {
			reason = ReasonIterationLimit
			break
		}

		// Selecting
		batch := al.selector.Select(pool, scores, al.batchSize)
		if len(batch) == 0 {
			reason = ReasonPoolExhausted
			break
		}

		// Labeling: the oracle reveals ground truth for the batch only
		batchRelevant := 0
		for _, id := range batch {
			if ds.Items[id].Relevant {
				batchRelevant++
			}
		}
		if err := pool.MarkLabeled(batch); err != nil {
			return RunResult{}, fmt.Errorf("learner: selector returned bad batch: %w", err)
		}
		relevantFound += batchRelevant

		// Training: refit on the full labeled set so far
		if err := al.classifier.Train(itemsByID(ds, pool.Labeled())); err != nil {
			return RunResult{}, fmt.Errorf("learner: training failed at iteration %d: %w", iter, err)
		}
		if unlabeled := pool.Unlabeled(); len(unlabeled) > 0 {
			scores = al.classifier.Score(itemsByID(ds, unlabeled))
		} else {
			scores = nil
		}

		// Evaluating
		snap := al.evaluator.Record(iter, pool.LabeledCount(), relevantFound)
		logging.Debug("iteration complete",
			"dataset", ds.Name,
			"iteration", iter,
			"screened", pool.LabeledCount(),
			"relevant", relevantFound,
			"recall", snap.Recall,
			"workSave", snap.WorkSave)

		// Checking. The stopper always sees the batch, but exhaustion
		// takes precedence: an empty pool means full recall by
		// construction, not a confident early stop.
		decision := al.stopper.Observe(len(batch), batchRelevant)
		iter++
		if pool.UnlabeledCount() == 0 {
			reason = ReasonPoolExhausted
			break
		}
		if decision == stopping.Stop {
			reason = ReasonStoppingRule
			break
		}
	}

	result.Reason = reason
	result.Snapshots = al.evaluator.History()
	result.Iterations = iter
	result.Screened = pool.LabeledCount()
	result.RelevantFound = relevantFound

	logging.Info("run complete",
		"dataset", ds.Name,
		"reason", reason.String(),
		"iterations", iter,
		"screened", result.Screened,
		"recall", result.FinalRecall(),
		"workSave", result.FinalWorkSave())

	return result, nil
}

// itemsByID gathers dataset items for the given IDs, preserving order.
func itemsByID(ds dataset.Dataset, ids []int) []dataset.Item {
	items := make([]dataset.Item, len(ids))
	for i, id := range ids {
		items[i] = ds.Items[id]
	}
	return items
}
