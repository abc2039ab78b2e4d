package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
)

func runSynth() {
	fs := flag.NewFlagSet("synth", flag.ExitOnError)
	n := fs.Int("n", 500, "Number of items")
	relevant := fs.Int("relevant", 50, "Number of relevant items")
	dim := fs.Int("dim", 4, "Feature dimension")
	seed := fs.Int64("seed", 0, "Generator seed")
	out := fs.String("o", "synthetic.csv", "Output CSV path")
	fs.Parse(os.Args[1:])

	if *relevant > *n {
		fatal(fmt.Errorf("relevant count %d exceeds dataset size %d", *relevant, *n))
	}

	ds := dataset.Synthetic("synthetic", *n, *relevant, *dim, *seed)
	if err := dataset.SaveCSV(ds, *out); err != nil {
		fatal(err)
	}

	fmt.Printf("wrote %d items (%d relevant, %d features) to %s\n", *n, *relevant, *dim, *out)
}
