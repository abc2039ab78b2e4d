package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestValidateRejectsBadRanges(t *testing.T) {
	mutations := []func(*Config){
		func(c *Config) { c.BatchProportion = 0 },
		func(c *Config) { c.BatchProportion = 1.5 },
		func(c *Config) { c.Confidence = 0 },
		func(c *Config) { c.Confidence = 1 },
		func(c *Config) { c.TargetRecall = 0 },
		func(c *Config) { c.MaxIter = 0 },
		func(c *Config) { c.MaxParallelRuns = 0 },
	}
	for i, mutate := range mutations {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("mutation %d should fail validation", i)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Classifier = "naive-bayes"
	cfg.BatchProportion = 0.1
	cfg.Seed = 42

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Classifier != "naive-bayes" || loaded.BatchProportion != 0.1 || loaded.Seed != 42 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"seed": 9}`), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Seed != 9 {
		t.Errorf("seed = %d, want 9", loaded.Seed)
	}
	if loaded.Classifier != DefaultConfig().Classifier {
		t.Errorf("missing fields should default, got classifier %q", loaded.Classifier)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}
