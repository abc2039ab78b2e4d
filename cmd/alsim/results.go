package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/5H5KN5/active-learning-simulator/internal/config"
	"github.com/5H5KN5/active-learning-simulator/internal/report"
	"github.com/5H5KN5/active-learning-simulator/internal/store"
)

func runResults() {
	fs := flag.NewFlagSet("results", flag.ExitOnError)
	dbPath := fs.String("db", config.DefaultDBPath(), "Results database path")
	limit := fs.Int("limit", 50, "Maximum runs to list")
	history := fs.String("history", "", "Print the metric history of the given run ID")
	fs.Parse(os.Args[1:])

	st, err := store.Open(*dbPath)
	if err != nil {
		fatal(fmt.Errorf("open results database: %w", err))
	}
	defer st.Close()

	if *history != "" {
		snaps, err := st.GetSnapshots(*history)
		if err != nil {
			fatal(err)
		}
		if len(snaps) == 0 {
			fmt.Fprintf(os.Stderr, "alsim: no snapshots for run %s\n", *history)
			os.Exit(1)
		}
		fmt.Printf("%5s %8s %10s\n", "ITER", "RECALL", "WORK SAVE")
		for _, snap := range snaps {
			fmt.Printf("%5d %8.3f %10.3f\n", snap.Iteration, snap.Recall, snap.WorkSave)
		}
		return
	}

	records, err := st.GetRuns(*limit)
	if err != nil {
		fatal(err)
	}
	fmt.Print(report.Records(records))
}
