package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	_, err := Load("/nonexistent/path/sortbench.yaml")
	if err == nil {
		t.Fatal("expected error for nonexistent path")
	}
	// Load with empty path uses default search (may use defaults if no config file)
	cfg, _ := Load("")
	if len(cfg.Dataset.Sizes) != 3 || cfg.Dataset.Sizes[2] != 1000 {
		t.Errorf("default sizes: got %v", cfg.Dataset.Sizes)
	}
	if len(cfg.Benchmark.Algorithms) != 5 {
		t.Errorf("default algorithms: got %v", cfg.Benchmark.Algorithms)
	}
	if cfg.Benchmark.BinaryTarget != 350000 {
		t.Errorf("default binary_target: got %v", cfg.Benchmark.BinaryTarget)
	}
	if cfg.Benchmark.MinMaxKey != "prix_m2" {
		t.Errorf("default minmax_key: got %s", cfg.Benchmark.MinMaxKey)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default log level: got %s", cfg.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	content := `
dataset:
  path: "biens.csv"
  sizes: [10, 0, 20]
benchmark:
  algorithms: [merge, heap]
  sort_keys: [surface]
  seed: 7
  binary_key: surface
  binary_target: 80
  predicates:
    - "commune = LYON"
storage:
  enabled: false
  path: "out/runs.db"
log:
  level: debug
  format: json
  filename: "logs/sortbench.log"
  max_size: 16
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dataset.Path != "biens.csv" {
		t.Errorf("path: got %s", cfg.Dataset.Path)
	}
	if len(cfg.Dataset.Sizes) != 2 || cfg.Dataset.Sizes[0] != 10 || cfg.Dataset.Sizes[1] != 20 {
		t.Errorf("sizes: got %v", cfg.Dataset.Sizes)
	}
	if len(cfg.Benchmark.Algorithms) != 2 || cfg.Benchmark.Algorithms[1] != "heap" {
		t.Errorf("algorithms: got %v", cfg.Benchmark.Algorithms)
	}
	if cfg.Benchmark.Seed != 7 {
		t.Errorf("seed: got %d", cfg.Benchmark.Seed)
	}
	if cfg.Benchmark.BinaryTarget != 80 {
		t.Errorf("binary_target: got %v", cfg.Benchmark.BinaryTarget)
	}
	if len(cfg.Benchmark.Predicates) != 1 {
		t.Errorf("predicates: got %v", cfg.Benchmark.Predicates)
	}
	if cfg.Storage.Enabled {
		t.Errorf("storage.enabled: expected false")
	}
	if cfg.Log.Format != "json" || cfg.Log.MaxSize != 16 {
		t.Errorf("log: got %+v", cfg.Log)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dataset: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected yaml error")
	}
}
