package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/5H5KN5/active-learning-simulator/internal/config"
	"github.com/5H5KN5/active-learning-simulator/internal/dataset"
	"github.com/5H5KN5/active-learning-simulator/internal/evaluate"
	"github.com/5H5KN5/active-learning-simulator/internal/logging"
	"github.com/5H5KN5/active-learning-simulator/internal/report"
	"github.com/5H5KN5/active-learning-simulator/internal/runner"
	"github.com/5H5KN5/active-learning-simulator/internal/store"
	"github.com/5H5KN5/active-learning-simulator/internal/ui"
)

func runRun() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: "+config.DefaultPath()+" if present)")
	dbPath := fs.String("db", "", "Results database path (overrides config; \"off\" disables persistence)")
	demo := fs.Int("demo", 0, "Run over N synthetic demo datasets instead of CSV files")
	noUI := fs.Bool("no-ui", false, "Disable the live progress view")
	verbose := fs.Bool("v", false, "Verbose logging (with -no-ui)")
	fs.Parse(os.Args[1:])

	cfg := loadConfig(*configPath)
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	switch *dbPath {
	case "":
	case "off":
		cfg.DBPath = ""
	default:
		cfg.DBPath = *dbPath
	}

	datasets, err := loadDatasets(fs.Args(), *demo, cfg.Seed)
	if err != nil {
		fatal(err)
	}
	if len(datasets) == 0 {
		fatal(fmt.Errorf("no datasets: pass CSV files or -demo N"))
	}

	var st *store.Store
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			fatal(fmt.Errorf("create data directory: %w", err))
		}
		st, err = store.Open(cfg.DBPath)
		if err != nil {
			fatal(fmt.Errorf("open results database: %w", err))
		}
		defer st.Close()
	}

	var outcomes []runner.Outcome
	if *noUI {
		logging.InitConsole(*verbose)
		r := runner.New(cfg, st, nil)
		outcomes, err = r.Run(context.Background(), datasets)
	} else {
		// Log to file so run output doesn't interleave with the view
		if err := logging.Init(); err != nil {
			logging.InitConsole(*verbose)
		}
		defer logging.Close()
		outcomes, err = runWithProgress(cfg, st, datasets)
	}
	if err != nil {
		fatal(err)
	}

	fmt.Print(report.Outcomes(outcomes))
	if finals := runner.Finals(outcomes); len(finals) > 1 {
		fmt.Print(report.Summary(evaluate.Aggregate(finals)))
	}

	for _, out := range outcomes {
		if out.Err != nil {
			os.Exit(1)
		}
	}
}

// runWithProgress executes the runner behind a live progress view.
func runWithProgress(cfg *config.Config, st *store.Store, datasets []dataset.Dataset) ([]runner.Outcome, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(ui.NewProgress(len(datasets)))

	notify := func(ev runner.Event) {
		if !ev.Done {
			p.Send(ui.RunStarted{Dataset: ev.Dataset})
			return
		}
		msg := ui.RunFinished{Dataset: ev.Dataset, Err: ev.Outcome.Err}
		if ev.Outcome.Err == nil {
			res := ev.Outcome.Result
			msg.Reason = res.Reason.String()
			msg.Recall = res.FinalRecall()
			msg.WorkSave = res.FinalWorkSave()
		}
		p.Send(msg)
	}

	r := runner.New(cfg, st, notify)

	var outcomes []runner.Outcome
	var runErr error
	done := make(chan struct{})
	go func() {
		outcomes, runErr = r.Run(ctx, datasets)
		close(done)
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	if m, ok := final.(ui.Progress); ok && m.Aborted() {
		// In-flight runs finish; queued runs are skipped
		cancel()
		<-done
		return nil, fmt.Errorf("aborted")
	}
	<-done
	return outcomes, runErr
}

// loadConfig resolves the run configuration: explicit path, then the
// default location, then built-in defaults.
func loadConfig(path string) *config.Config {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			fatal(err)
		}
		return cfg
	}
	if _, err := os.Stat(config.DefaultPath()); err == nil {
		cfg, err := config.Load(config.DefaultPath())
		if err != nil {
			fatal(err)
		}
		return cfg
	}
	return config.DefaultConfig()
}

// loadDatasets reads CSV datasets, or generates demo datasets when asked.
func loadDatasets(paths []string, demo int, seed int64) ([]dataset.Dataset, error) {
	if demo > 0 {
		datasets := make([]dataset.Dataset, demo)
		for i := range datasets {
			name := fmt.Sprintf("demo-%d", i+1)
			datasets[i] = dataset.Synthetic(name, 500, 50, 4, seed+int64(i))
		}
		return datasets, nil
	}

	var datasets []dataset.Dataset
	for _, path := range paths {
		ds, err := dataset.LoadCSV(path)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "alsim: %v\n", err)
	os.Exit(1)
}
