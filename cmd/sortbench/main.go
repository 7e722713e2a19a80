package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sortbench/pkg/bench"
	"sortbench/pkg/common"
	"sortbench/pkg/config"
	"sortbench/pkg/dataset"
	"sortbench/pkg/logutil"
	"sortbench/pkg/sorting"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sortbench",
	Short: "Instrumented sorting and searching benchmark",
	Long: `sortbench runs selection, insertion, merge, quick and heap sort plus
linear, binary and min/max search over real-estate listings, counting every
key comparison and element movement and validating every sorted output.

Listings come from the configured CSV export, or are generated when the file
is missing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if verbose {
			cfg.Log.Level = zapcore.DebugLevel.String()
		}
		logger, err = logutil.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/sortbench.yaml or sortbench.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(runCmd, sortCmd, searchCmd, stabilityCmd, historyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSource reads the configured CSV, falling back to generated listings
// when the file does not exist.
func loadSource() bench.Source {
	path := cfg.Dataset.Path
	return func(n int) (common.Dataset, error) {
		if path != "" {
			ds, err := dataset.Load(path, n)
			if err == nil {
				logger.Debug("dataset loaded", zap.String("path", path), zap.Int("records", len(ds)))
				return ds, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			logger.Warn("dataset not found, generating listings", zap.String("path", path))
		}
		return dataset.Generate(n, cfg.Dataset.GenerateSeed), nil
	}
}

// newRunner builds a runner from the config; adjust, when set, overrides
// options taken from flags.
func newRunner(adjust func(*bench.Options)) (*bench.Runner, error) {
	opts, err := bench.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(&opts)
	}
	engine := sorting.NewEngine(sorting.NewPicker(cfg.Benchmark.Seed))
	return bench.NewRunner(opts, engine, nil, nil, logger), nil
}
