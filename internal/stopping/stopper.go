// Package stopping decides when enough of the pool has been screened.
// Stoppers see only counts — dataset size, items screened, relevant items
// found — never ground truth, so their decisions are reproducible in a
// real deployment where total relevance is unknown.
package stopping

import "fmt"

// Decision is the stopper's per-iteration verdict.
type Decision int

const (
	// Continue means more screening is needed.
	Continue Decision = iota
	// Stop means the stopping criterion has been met. Terminal: a stopper
	// never moves back to Continue within a run.
	Stop
)

func (d Decision) String() string {
	if d == Stop {
		return "stop"
	}
	return "continue"
}

// Stopper is a two-state machine evaluated once per iteration, after the
// batch's labels are revealed.
type Stopper interface {
	// Observe feeds the latest batch (items screened, relevant among
	// them) and returns the current decision. Once Stop is returned,
	// every later call returns Stop.
	Observe(batchScreened, batchRelevant int) Decision

	// Name returns the rule identifier for logging.
	Name() string
}

// Params configures a stopper for one run.
type Params struct {
	// N is the total dataset size.
	N int
	// Confidence is the required probability that the target recall has
	// been reached, e.g. 0.95.
	Confidence float64
	// TargetRecall is the recall level the statistical rule certifies.
	TargetRecall float64
	// WindowProportion sizes the consecutive-irrelevant window as a
	// fraction of N.
	WindowProportion float64
}

// New returns a stopper by name.
func New(name string, p Params) (Stopper, error) {
	switch name {
	case "hypergeometric", "statistical":
		return NewRecallStopper(p.N, p.Confidence, p.TargetRecall), nil
	case "consecutive":
		return NewConsecutiveStopper(p.N, p.WindowProportion), nil
	default:
		return nil, fmt.Errorf("stopping: unknown stopper %q", name)
	}
}
