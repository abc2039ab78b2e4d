// Package config holds the resolved simulation parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persistent simulation configuration. The core loop never
// reads files or environment variables itself; everything it needs arrives
// pre-resolved from here.
type Config struct {
	// Classifier is the model variant: "logistic" or "naive-bayes".
	Classifier string `json:"classifier"`
	// Selector is the batch strategy: "relevance", "uncertainty" or "random".
	Selector string `json:"selector"`
	// Stopper is the stopping rule: "hypergeometric" or "consecutive".
	Stopper string `json:"stopper"`

	// BatchProportion sets batch size as floor(proportion*N)+1.
	BatchProportion float64 `json:"batch_proportion"`
	// Confidence is the stopping rule's required confidence level.
	Confidence float64 `json:"confidence"`
	// TargetRecall is the recall level the statistical rule certifies.
	TargetRecall float64 `json:"target_recall"`
	// StopperWindow sizes the consecutive rule's window as a fraction of N.
	StopperWindow float64 `json:"stopper_window"`

	// MaxIter is the deterministic forced-termination bound per run.
	MaxIter int `json:"max_iter"`
	// Seed drives every pseudo-random source; runs with the same seed and
	// dataset reproduce the same trace.
	Seed int64 `json:"seed"`

	// MaxParallelRuns bounds concurrent runs across datasets.
	MaxParallelRuns int `json:"max_parallel_runs"`
	// DBPath is the SQLite results database; empty disables persistence.
	DBPath string `json:"db_path"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Classifier:      "logistic",
		Selector:        "relevance",
		Stopper:         "hypergeometric",
		BatchProportion: 0.03,
		Confidence:      0.95,
		TargetRecall:    0.95,
		StopperWindow:   0.05,
		MaxIter:         1000,
		Seed:            0,
		MaxParallelRuns: 4,
		DBPath:          DefaultDBPath(),
	}
}

// DefaultPath returns the path to the config file
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "alsim.json"
	}
	return filepath.Join(homeDir, ".alsim", "config.json")
}

// DefaultDBPath returns the default results database path
func DefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "alsim.db"
	}
	return filepath.Join(homeDir, ".alsim", "results.db")
}

// Load reads the config from the given path, filling in defaults for any
// missing fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks field ranges before a simulation starts.
func (c *Config) Validate() error {
	if c.BatchProportion <= 0 || c.BatchProportion > 1 {
		return fmt.Errorf("config: batch_proportion %v not in (0, 1]", c.BatchProportion)
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return fmt.Errorf("config: confidence %v not in (0, 1)", c.Confidence)
	}
	if c.TargetRecall <= 0 || c.TargetRecall > 1 {
		return fmt.Errorf("config: target_recall %v not in (0, 1]", c.TargetRecall)
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("config: max_iter must be positive, got %d", c.MaxIter)
	}
	if c.MaxParallelRuns <= 0 {
		return fmt.Errorf("config: max_parallel_runs must be positive, got %d", c.MaxParallelRuns)
	}
	return nil
}
