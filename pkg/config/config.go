package config

import (
	"os"

	"sortbench/pkg/logutil"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Dataset   DatasetConfig     `yaml:"dataset"`
	Benchmark BenchmarkConfig   `yaml:"benchmark"`
	Storage   StorageConfig     `yaml:"storage"`
	Log       logutil.LogConfig `yaml:"log"`
}

type DatasetConfig struct {
	Path         string `yaml:"path"`          // CSV source; empty means generate
	Sizes        []int  `yaml:"sizes"`         // record counts per batch run
	GenerateSeed uint64 `yaml:"generate_seed"` // used when Path is empty or missing
}

type BenchmarkConfig struct {
	Algorithms     []string `yaml:"algorithms"`
	SortKeys       []string `yaml:"sort_keys"`
	Seed           uint64   `yaml:"seed"` // quicksort pivot source
	BinaryKey      string   `yaml:"binary_key"`
	BinaryTarget   float64  `yaml:"binary_target"`
	PositionKey    string   `yaml:"position_key"`
	PositionTarget float64  `yaml:"position_target"`
	MinMaxKey      string   `yaml:"minmax_key"`
	Predicates     []string `yaml:"predicates"`
}

type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:         "transactions_immobilieres.csv",
			Sizes:        []int{100, 500, 1000},
			GenerateSeed: 42,
		},
		Benchmark: BenchmarkConfig{
			Algorithms:     []string{"selection", "insertion", "merge", "quick", "heap"},
			SortKeys:       []string{"prix", "surface"},
			Seed:           1,
			BinaryKey:      "prix",
			BinaryTarget:   350000,
			PositionKey:    "prix",
			PositionTarget: 350000,
			MinMaxKey:      "prix_m2",
			Predicates: []string{
				"type_local = Maison AND commune = PARIS",
				"type_local = Appartement AND nb_pieces = 3",
			},
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "sortbench_data/results.db",
		},
		Log: logutil.LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		for _, p := range []string{"configs/sortbench.yaml", "sortbench.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return cfg, err
				}
				applyDefaults(cfg)
				return cfg, nil
			}
		}
		applyDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()

	sizes := cfg.Dataset.Sizes[:0]
	for _, n := range cfg.Dataset.Sizes {
		if n > 0 {
			sizes = append(sizes, n)
		}
	}
	cfg.Dataset.Sizes = sizes
	if len(cfg.Dataset.Sizes) == 0 {
		cfg.Dataset.Sizes = def.Dataset.Sizes
	}
	if len(cfg.Benchmark.Algorithms) == 0 {
		cfg.Benchmark.Algorithms = def.Benchmark.Algorithms
	}
	if len(cfg.Benchmark.SortKeys) == 0 {
		cfg.Benchmark.SortKeys = def.Benchmark.SortKeys
	}
	if cfg.Benchmark.BinaryKey == "" {
		cfg.Benchmark.BinaryKey = def.Benchmark.BinaryKey
	}
	if cfg.Benchmark.PositionKey == "" {
		cfg.Benchmark.PositionKey = cfg.Benchmark.BinaryKey
	}
	if cfg.Benchmark.MinMaxKey == "" {
		cfg.Benchmark.MinMaxKey = def.Benchmark.MinMaxKey
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}
