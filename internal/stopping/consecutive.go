package stopping

import "math"

// ConsecutiveStopper is the heuristic rule: stop once a run of consecutive
// screened items has produced no relevant hits. The window scales with the
// dataset, floor(proportion*N)+1, mirroring the batch-size policy.
type ConsecutiveStopper struct {
	window   int
	streak   int
	decision Decision
}

// NewConsecutiveStopper creates the rule for a dataset of n items.
// windowProportion <= 0 defaults to 0.05.
func NewConsecutiveStopper(n int, windowProportion float64) *ConsecutiveStopper {
	if windowProportion <= 0 || windowProportion > 1 {
		windowProportion = 0.05
	}
	return &ConsecutiveStopper{
		window: int(math.Floor(windowProportion*float64(n))) + 1,
	}
}

func (s *ConsecutiveStopper) Name() string { return "consecutive" }

// Observe folds in one batch. A batch with any relevant item resets the
// streak; the batch granularity means the streak is a lower bound on the
// true consecutive-irrelevant run.
func (s *ConsecutiveStopper) Observe(batchScreened, batchRelevant int) Decision {
	if s.decision == Stop {
		return Stop
	}

	if batchRelevant > 0 {
		s.streak = 0
		return Continue
	}

	s.streak += batchScreened
	if s.streak >= s.window {
		s.decision = Stop
		return Stop
	}
	return Continue
}
