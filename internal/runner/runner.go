// Package runner executes a simulation across many datasets. Runs are
// independent — each gets its own pool, classifier, selector, stopper and
// evaluator — so they execute in parallel, and one run's failure never
// aborts its siblings.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/5H5KN5/active-learning-simulator/internal/config"
	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
	"github.com/5H5KN5/active-learning-simulator/internal/evaluate"
	"github.com/5H5KN5/active-learning-simulator/internal/learner"
	"github.com/5H5KN5/active-learning-simulator/internal/logging"
	"github.com/5H5KN5/active-learning-simulator/internal/model"
	"github.com/5H5KN5/active-learning-simulator/internal/selection"
	"github.com/5H5KN5/active-learning-simulator/internal/stopping"
	"github.com/5H5KN5/active-learning-simulator/internal/store"
)

// Event notifies a listener of run progress.
type Event struct {
	Dataset string
	Done    bool
	Outcome *Outcome // set when Done
}

// Outcome is one dataset's result: either a completed run or its error.
type Outcome struct {
	Dataset string
	Result  learner.RunResult
	Err     error
}

// Runner executes runs for one resolved configuration.
type Runner struct {
	cfg    *config.Config
	store  *store.Store // optional: nil disables persistence
	notify func(Event)  // optional progress listener
}

// New creates a Runner. store and notify may be nil.
func New(cfg *config.Config, st *store.Store, notify func(Event)) *Runner {
	return &Runner{cfg: cfg, store: st, notify: notify}
}

// Run executes one run per dataset, at most MaxParallelRuns at a time.
// The returned slice is ordered like datasets. Run errors are carried in
// the outcomes; the returned error reports context cancellation only.
func (r *Runner) Run(ctx context.Context, datasets []dataset.Dataset) ([]Outcome, error) {
	outcomes := make([]Outcome, len(datasets))

	cfgJSON, err := json.Marshal(r.cfg)
	if err != nil {
		return nil, fmt.Errorf("runner: encode config: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxParallelRuns)

	for i, ds := range datasets {
		i, ds := i, ds
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.emit(Event{Dataset: ds.Name})

			out := Outcome{Dataset: ds.Name}
			out.Result, out.Err = r.runOne(ds)

			if out.Err == nil && r.store != nil {
				if err := r.store.SaveRun(out.Result, r.cfg.Classifier, r.cfg.Selector, r.cfg.Stopper, string(cfgJSON)); err != nil {
					logging.Error("failed to persist run", "dataset", ds.Name, "error", err)
				}
			}
			if out.Err != nil {
				logging.Error("run failed", "dataset", ds.Name, "error", out.Err)
			}

			outcomes[i] = out
			r.emit(Event{Dataset: ds.Name, Done: true, Outcome: &outcomes[i]})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// runOne assembles fresh components and executes a single run.
func (r *Runner) runOne(ds dataset.Dataset) (learner.RunResult, error) {
	batchSize, err := selection.BatchSize(r.cfg.BatchProportion, ds.Size())
	if err != nil {
		return learner.RunResult{}, err
	}

	// Every run gets its own seeded source so runs reproduce the same
	// trace regardless of sibling scheduling.
	rng := rand.New(rand.NewSource(r.cfg.Seed))

	classifier, err := model.New(r.cfg.Classifier, rng)
	if err != nil {
		return learner.RunResult{}, err
	}
	selector, err := selection.New(r.cfg.Selector, rng)
	if err != nil {
		return learner.RunResult{}, err
	}
	stopper, err := stopping.New(r.cfg.Stopper, stopping.Params{
		N:                ds.Size(),
		Confidence:       r.cfg.Confidence,
		TargetRecall:     r.cfg.TargetRecall,
		WindowProportion: r.cfg.StopperWindow,
	})
	if err != nil {
		return learner.RunResult{}, err
	}
	evaluator := evaluate.NewEvaluator(ds)

	al := learner.New(classifier, selector, stopper, evaluator, batchSize, r.cfg.MaxIter)
	return al.Train(ds)
}

// Finals extracts the final snapshot of each successful outcome, for
// cross-run aggregation.
func Finals(outcomes []Outcome) []evaluate.MetricsSnapshot {
	var finals []evaluate.MetricsSnapshot
	for _, out := range outcomes {
		if out.Err != nil || len(out.Result.Snapshots) == 0 {
			continue
		}
		finals = append(finals, out.Result.Snapshots[len(out.Result.Snapshots)-1])
	}
	return finals
}

func (r *Runner) emit(ev Event) {
	if r.notify != nil {
		r.notify(ev)
	}
}
