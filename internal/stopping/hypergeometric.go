package stopping

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// RecallStopper is the statistical stopping rule. It treats screening as
// sampling without replacement and stops once the hypothesis "true recall
// is still below the target" can be rejected at the configured confidence.
//
// After each batch it sets K = floor(found/target)+1, the smallest total
// relevant count that would put recall below target. For every earlier
// checkpoint it computes the hypergeometric probability of having found as
// few new relevant items as observed since then, were K relevant items
// really present. When the smallest such probability drops below
// 1-confidence the null is rejected and the rule stops.
type RecallStopper struct {
	n            int
	confidence   float64
	targetRecall float64

	screened int
	relevant int
	// checkpoints holds cumulative (screened, relevant) after each
	// iteration; index 0 is the (0, 0) run start.
	checkpoints []checkpoint
	decision    Decision
}

type checkpoint struct {
	screened int
	relevant int
}

// NewRecallStopper creates the hypergeometric rule for a dataset of n
// items. targetRecall <= 0 defaults to 0.95.
func NewRecallStopper(n int, confidence, targetRecall float64) *RecallStopper {
	if targetRecall <= 0 || targetRecall > 1 {
		targetRecall = 0.95
	}
	return &RecallStopper{
		n:            n,
		confidence:   confidence,
		targetRecall: targetRecall,
		checkpoints:  []checkpoint{{0, 0}},
	}
}

func (s *RecallStopper) Name() string { return "hypergeometric" }

// Observe folds in one batch and re-evaluates the rule.
func (s *RecallStopper) Observe(batchScreened, batchRelevant int) Decision {
	if s.decision == Stop {
		return Stop
	}

	s.screened += batchScreened
	s.relevant += batchRelevant

	// Nothing screened yet: no evidence either way.
	if s.screened == 0 {
		return Continue
	}

	if s.pValue() < 1.0-s.confidence {
		s.decision = Stop
		return Stop
	}

	s.checkpoints = append(s.checkpoints, checkpoint{s.screened, s.relevant})
	return Continue
}

// pValue is the probability of the observed find rate under the null
// hypothesis that recall is still below target, minimized over windows
// starting at each past checkpoint.
func (s *RecallStopper) pValue() float64 {
	kTarget := int(float64(s.relevant)/s.targetRecall) + 1
	if kTarget > s.n {
		kTarget = s.n
	}

	minP := 1.0
	for _, cp := range s.checkpoints {
		found := s.relevant - cp.relevant
		drawn := s.screened - cp.screened
		remaining := s.n - cp.screened
		missing := kTarget - cp.relevant
		if missing < 0 {
			missing = 0
		}
		p := hypergeomCDF(found, remaining, missing, drawn)
		if p < minP {
			minP = p
		}
	}
	return minP
}

// hypergeomCDF returns P(X <= k) for X ~ Hypergeometric(N, K, n): the
// number of successes in n draws without replacement from a population of
// N holding K successes.
func hypergeomCDF(k, N, K, n int) float64 {
	if N <= 0 || n <= 0 {
		return 1.0
	}
	upper := K
	if n < upper {
		upper = n
	}
	if k >= upper {
		return 1.0
	}
	lower := n - (N - K)
	if lower < 0 {
		lower = 0
	}

	logDenom := combin.LogGeneralizedBinomial(float64(N), float64(n))
	sum := 0.0
	for i := lower; i <= k; i++ {
		logP := combin.LogGeneralizedBinomial(float64(K), float64(i)) +
			combin.LogGeneralizedBinomial(float64(N-K), float64(n-i)) -
			logDenom
		sum += math.Exp(logP)
	}
	if sum > 1.0 {
		sum = 1.0
	}
	return sum
}
