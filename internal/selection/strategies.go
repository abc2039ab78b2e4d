package selection

import (
	"math"
	"math/rand"
	"sort"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
)

// RelevanceSelector screens the highest-scored items first: greedy
// exploitation of the model's current relevance estimates.
type RelevanceSelector struct {
	rng *rand.Rand
}

// NewRelevanceSelector creates a highest-score-first selector.
func NewRelevanceSelector(rng *rand.Rand) *RelevanceSelector {
	return &RelevanceSelector{rng: rng}
}

func (s *RelevanceSelector) Name() string { return "relevance" }

func (s *RelevanceSelector) Select(pool *dataset.Pool, scores []float64, batchSize int) []int {
	if scores == nil {
		return randomBatch(pool, batchSize, s.rng)
	}
	return topByKey(pool, scores, batchSize, func(score float64) float64 {
		return score
	})
}

// UncertaintySelector screens the items the model is least sure about:
// scores closest to 0.5 first.
type UncertaintySelector struct {
	rng *rand.Rand
}

// NewUncertaintySelector creates an uncertainty-sampling selector.
func NewUncertaintySelector(rng *rand.Rand) *UncertaintySelector {
	return &UncertaintySelector{rng: rng}
}

func (s *UncertaintySelector) Name() string { return "uncertainty" }

func (s *UncertaintySelector) Select(pool *dataset.Pool, scores []float64, batchSize int) []int {
	if scores == nil {
		return randomBatch(pool, batchSize, s.rng)
	}
	return topByKey(pool, scores, batchSize, func(score float64) float64 {
		return -math.Abs(score - 0.5)
	})
}

// RandomSelector screens a uniform random sample each iteration; the
// baseline strategy, equivalent to unassisted screening order.
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector creates a uniform random selector.
func NewRandomSelector(rng *rand.Rand) *RandomSelector {
	return &RandomSelector{rng: rng}
}

func (s *RandomSelector) Name() string { return "random" }

func (s *RandomSelector) Select(pool *dataset.Pool, scores []float64, batchSize int) []int {
	return randomBatch(pool, batchSize, s.rng)
}

// topByKey returns the batchSize unlabeled items with the highest key
// values. The sort is stable so score ties keep pool order, which keeps
// runs reproducible.
func topByKey(pool *dataset.Pool, scores []float64, batchSize int, key func(float64) float64) []int {
	unlabeled := pool.Unlabeled()
	n := clamp(batchSize, len(unlabeled))
	if n == 0 {
		return nil
	}

	idx := make([]int, len(unlabeled))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return key(scores[idx[a]]) > key(scores[idx[b]])
	})

	batch := make([]int, n)
	for i := 0; i < n; i++ {
		batch[i] = unlabeled[idx[i]]
	}
	return batch
}
