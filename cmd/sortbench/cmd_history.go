package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sortbench/pkg/bench"
	"sortbench/pkg/storage"
)

var historyBatch string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored batches, or replay one with --batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		w := cmd.OutOrStdout()
		if historyBatch == "" {
			batches, err := store.Batches()
			if err != nil {
				return err
			}
			if len(batches) == 0 {
				fmt.Fprintf(w, "no batches in %s\n", cfg.Storage.Path)
				return nil
			}
			for _, b := range batches {
				fmt.Fprintln(w, b)
			}
			return nil
		}

		results, err := store.LoadBatch(historyBatch)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("batch %s not found", historyBatch)
		}
		logger.Debug("batch loaded", zap.String("batch", historyBatch), zap.Int("results", len(results)))

		sum := &bench.Summary{
			Batch:        historyBatch,
			Results:      results,
			Leaderboards: bench.Rank(results),
			Complexity:   bench.Complexity(results),
		}
		return writeSummary(w, sum)
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyBatch, "batch", "b", "", "batch id to replay")
}
