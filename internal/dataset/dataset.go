// Package dataset holds the screening pool: items with feature vectors and
// ground-truth relevance labels, partitioned into labeled and unlabeled sets.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Item is a single screenable document: a feature vector plus its
// ground-truth relevance label. Immutable once created; the label is
// consulted only when the item is selected for screening.
type Item struct {
	ID       int
	Features []float64
	Relevant bool
}

// Dataset is an ordered collection of items, already vectorized.
// The simulator performs no feature extraction of its own.
type Dataset struct {
	Name  string
	Items []Item
}

// Size returns the number of items N.
func (d Dataset) Size() int { return len(d.Items) }

// RelevantCount returns the total number of relevant items.
// Ground truth: only the evaluator may consume this.
func (d Dataset) RelevantCount() int {
	count := 0
	for _, item := range d.Items {
		if item.Relevant {
			count++
		}
	}
	return count
}

// LoadCSV reads a vectorized dataset from a CSV file.
// Each row is: label,f1,f2,...,fk where label is 0 or 1.
// A non-numeric first row is treated as a header and skipped.
func LoadCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return Dataset{}, fmt.Errorf("dataset %s is empty", path)
	}

	// Skip a header row if the first field doesn't parse as a number
	if _, err := strconv.ParseFloat(records[0][0], 64); err != nil {
		records = records[1:]
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds := Dataset{Name: name, Items: make([]Item, 0, len(records))}

	for i, rec := range records {
		if len(rec) < 2 {
			return Dataset{}, fmt.Errorf("dataset %s row %d: need label and at least one feature", path, i+1)
		}
		label, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return Dataset{}, fmt.Errorf("dataset %s row %d: bad label %q: %w", path, i+1, rec[0], err)
		}
		features := make([]float64, len(rec)-1)
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("dataset %s row %d: bad feature %q: %w", path, i+1, field, err)
			}
			features[j] = v
		}
		ds.Items = append(ds.Items, Item{
			ID:       i,
			Features: features,
			Relevant: label != 0,
		})
	}

	return ds, nil
}

// SaveCSV writes the dataset in the LoadCSV format, with a header row.
func SaveCSV(ds Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	dim := 0
	if len(ds.Items) > 0 {
		dim = len(ds.Items[0].Features)
	}
	header := make([]string, dim+1)
	header[0] = "label"
	for j := 0; j < dim; j++ {
		header[j+1] = fmt.Sprintf("f%d", j+1)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, dim+1)
	for _, item := range ds.Items {
		row[0] = "0"
		if item.Relevant {
			row[0] = "1"
		}
		for j, v := range item.Features {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Synthetic generates a seeded dataset of n items with the given number of
// relevant items. Relevant and irrelevant items are drawn from offset
// Gaussian clouds, so the classes are separable but overlapping.
// Item order is shuffled so relevant items are scattered through the pool.
func Synthetic(name string, n, relevant, dim int, seed int64) Dataset {
	if relevant > n {
		relevant = n
	}
	if dim < 1 {
		dim = 2
	}
	rng := rand.New(rand.NewSource(seed))

	items := make([]Item, n)
	for i := range items {
		isRelevant := i < relevant
		center := -1.0
		if isRelevant {
			center = 1.0
		}
		features := make([]float64, dim)
		for j := range features {
			features[j] = center + rng.NormFloat64()*0.75
		}
		items[i] = Item{Features: features, Relevant: isRelevant}
	}

	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	for i := range items {
		items[i].ID = i
	}

	return Dataset{Name: name, Items: items}
}
