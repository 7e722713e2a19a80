package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sortbench/pkg/bench"
	"sortbench/pkg/report"
	"sortbench/pkg/sorting"
	"sortbench/pkg/storage"
)

var runOut string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sort and search batteries for every configured size",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := bench.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}

		var store storage.ResultStore
		if cfg.Storage.Enabled {
			s, err := storage.NewSQLiteStore(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer s.Close()
			store = s
		}

		engine := sorting.NewEngine(sorting.NewPicker(cfg.Benchmark.Seed))
		runner := bench.NewRunner(opts, engine, nil, store, logger)

		sum, err := runner.Run(cmd.Context(), loadSource())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if runOut != "" {
			f, err := os.Create(runOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = io.MultiWriter(w, f)
		}
		if err := writeSummary(w, sum); err != nil {
			return err
		}

		stats, err := runner.Stats().Summary()
		if err != nil {
			return err
		}
		logger.Info("batch finished",
			zap.String("batch", sum.Batch),
			zap.Float64("sort_runs", stats.SortRuns),
			zap.Float64("search_runs", stats.SearchRuns),
			zap.Uint64("validation_failures", stats.Failures))
		if stats.Failures > 0 {
			return fmt.Errorf("%d runs failed validation", stats.Failures)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "also write the report to this file")
}

func writeSummary(w io.Writer, sum *bench.Summary) error {
	fmt.Fprintf(w, "batch %s\n\n", sum.Batch)
	if err := report.WriteRuns(w, sum.Results); err != nil {
		return err
	}
	for _, h := range sum.Heats() {
		lb := sum.Leaderboards[h]
		fmt.Fprintf(w, "\nfastest sorts (n=%d, key=%s)\n", h.Size, h.Key)
		if err := report.WriteLeaderboard(w, lb, lb.Len()); err != nil {
			return err
		}
	}
	if len(sum.Complexity) > 0 {
		fmt.Fprintln(w, "\ngrowth")
		return report.WriteComplexity(w, sum.Complexity)
	}
	return nil
}
