// Package selection picks which unlabeled items to screen next.
// Strategies consume the model's relevance scores; on the first iteration,
// before any model exists, every strategy falls back to a random sample.
package selection

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
)

// ErrInvalidBatchSize means the batch proportion cannot yield a positive
// batch size for the dataset.
var ErrInvalidBatchSize = errors.New("selection: invalid batch size")

// Selector chooses the next batch of unlabeled items to screen.
type Selector interface {
	// Select returns up to batchSize unlabeled item IDs. The scores slice
	// is aligned with pool.Unlabeled() order; nil scores means no model
	// has been trained yet and the selector must use its initialization
	// rule. An empty pool yields an empty batch, never an error.
	Select(pool *dataset.Pool, scores []float64, batchSize int) []int

	// Name returns the strategy identifier for logging.
	Name() string
}

// New returns a selector by name. The rng drives the random strategy and
// every strategy's cold-start sample.
func New(name string, rng *rand.Rand) (Selector, error) {
	switch name {
	case "relevance", "greedy":
		return NewRelevanceSelector(rng), nil
	case "uncertainty":
		return NewUncertaintySelector(rng), nil
	case "random":
		return NewRandomSelector(rng), nil
	default:
		return nil, fmt.Errorf("selection: unknown selector %q", name)
	}
}

// BatchSize resolves the per-run batch size: floor(proportion*N) + 1.
// Computed once per run from the full dataset size, so batches scale with
// the dataset while always holding at least one item.
func BatchSize(proportion float64, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: dataset size %d", ErrInvalidBatchSize, n)
	}
	if proportion <= 0 || proportion > 1 {
		return 0, fmt.Errorf("%w: batch proportion %v not in (0, 1]", ErrInvalidBatchSize, proportion)
	}
	return int(math.Floor(proportion*float64(n))) + 1, nil
}

// clamp limits the batch size to the remaining unlabeled count.
func clamp(batchSize, unlabeled int) int {
	if batchSize > unlabeled {
		return unlabeled
	}
	return batchSize
}

// randomBatch draws n distinct unlabeled items, used both by the random
// strategy and as the cold-start rule for score-driven strategies.
func randomBatch(pool *dataset.Pool, n int, rng *rand.Rand) []int {
	unlabeled := pool.Unlabeled()
	n = clamp(n, len(unlabeled))
	if n == 0 {
		return nil
	}
	perm := rng.Perm(len(unlabeled))
	batch := make([]int, n)
	for i := 0; i < n; i++ {
		batch[i] = unlabeled[perm[i]]
	}
	return batch
}
