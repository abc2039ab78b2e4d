package dataset

import "fmt"

// Pool partitions item IDs into labeled and unlabeled sets.
// Invariants: the sets are disjoint, together they cover every item,
// labeled only grows and unlabeled only shrinks. The labeled set keeps
// insertion order so a model retrains on a stable sequence.
type Pool struct {
	labeled   []int
	isLabeled []bool
}

// NewPool creates a pool over item IDs 0..n-1, all unlabeled.
func NewPool(n int) *Pool {
	return &Pool{
		labeled:   make([]int, 0, n),
		isLabeled: make([]bool, n),
	}
}

// Size returns the total number of items.
func (p *Pool) Size() int { return len(p.isLabeled) }

// LabeledCount returns the number of labeled items.
func (p *Pool) LabeledCount() int { return len(p.labeled) }

// UnlabeledCount returns the number of unlabeled items.
func (p *Pool) UnlabeledCount() int { return len(p.isLabeled) - len(p.labeled) }

// IsLabeled reports whether the item has been labeled.
func (p *Pool) IsLabeled(id int) bool {
	return id >= 0 && id < len(p.isLabeled) && p.isLabeled[id]
}

// Labeled returns labeled item IDs in insertion order.
// The returned slice is a copy.
func (p *Pool) Labeled() []int {
	out := make([]int, len(p.labeled))
	copy(out, p.labeled)
	return out
}

// Unlabeled returns unlabeled item IDs in ascending ID order.
func (p *Pool) Unlabeled() []int {
	out := make([]int, 0, p.UnlabeledCount())
	for id, labeled := range p.isLabeled {
		if !labeled {
			out = append(out, id)
		}
	}
	return out
}

// MarkLabeled moves the given items from unlabeled to labeled.
// Returns an error if any item is out of range or already labeled,
// leaving the pool unchanged in that case.
func (p *Pool) MarkLabeled(ids []int) error {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(p.isLabeled) {
			return fmt.Errorf("pool: item %d out of range [0,%d)", id, len(p.isLabeled))
		}
		if p.isLabeled[id] || seen[id] {
			return fmt.Errorf("pool: item %d already labeled", id)
		}
		seen[id] = true
	}
	for _, id := range ids {
		p.isLabeled[id] = true
		p.labeled = append(p.labeled, id)
	}
	return nil
}
