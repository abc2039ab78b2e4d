// Package evaluate tracks recall and work-save over a run. The evaluator
// alone holds ground truth (the dataset's total relevant count); it exists
// for offline assessment and its output never feeds a stopping decision.
package evaluate

import "github.com/5H5KN5/active-learning-simulator/internal/dataset"

// MetricsSnapshot is one iteration's metrics.
// Recall is non-decreasing and WorkSave non-increasing across a run.
type MetricsSnapshot struct {
	Iteration int     `json:"iteration"`
	Recall    float64 `json:"recall"`
	WorkSave  float64 `json:"work_save"`
}

// Evaluator appends one MetricsSnapshot per iteration.
// Read-only to every other component.
type Evaluator struct {
	n             int
	totalRelevant int
	history       []MetricsSnapshot
}

// NewEvaluator creates an evaluator for one run over the given dataset.
// The dataset supplies the ground-truth relevant count.
func NewEvaluator(ds dataset.Dataset) *Evaluator {
	return &Evaluator{
		n:             ds.Size(),
		totalRelevant: ds.RelevantCount(),
	}
}

// Record computes and appends the snapshot for one iteration.
// With zero relevant items in the dataset, recall is defined as 1.0:
// there is nothing left to find.
func (e *Evaluator) Record(iteration, labeled, relevantFound int) MetricsSnapshot {
	recall := 1.0
	if e.totalRelevant > 0 {
		recall = float64(relevantFound) / float64(e.totalRelevant)
	}
	workSave := 1.0 - float64(labeled)/float64(e.n)

	snap := MetricsSnapshot{
		Iteration: iteration,
		Recall:    recall,
		WorkSave:  workSave,
	}
	e.history = append(e.history, snap)
	return snap
}

// History returns the full ordered snapshot history as a copy.
func (e *Evaluator) History() []MetricsSnapshot {
	out := make([]MetricsSnapshot, len(e.history))
	copy(out, e.history)
	return out
}

// Final returns the last snapshot, or false if nothing was recorded.
func (e *Evaluator) Final() (MetricsSnapshot, bool) {
	if len(e.history) == 0 {
		return MetricsSnapshot{}, false
	}
	return e.history[len(e.history)-1], true
}
