package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortbench/pkg/common"
	"sortbench/pkg/report"
	"sortbench/pkg/sorting"
)

var (
	sortAlgo string
	sortKey  string
	sortSize int
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort one dataset with one algorithm and validate the output",
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := sorting.ParseAlgorithm(sortAlgo)
		if err != nil {
			return err
		}
		ds, err := loadSource()(sortSize)
		if err != nil {
			return err
		}

		runner, err := newRunner(nil)
		if err != nil {
			return err
		}
		res, err := runner.SortOnce(alg, ds, sortKey)
		if err != nil {
			return err
		}
		if err := report.WriteRuns(cmd.OutOrStdout(), []*common.RunResult{res}); err != nil {
			return err
		}
		if !res.Valid {
			return fmt.Errorf("validation failed: %s", res.Message)
		}
		return nil
	},
}

func init() {
	sortCmd.Flags().StringVarP(&sortAlgo, "algo", "a", "merge", "selection, insertion, merge, quick or heap")
	sortCmd.Flags().StringVarP(&sortKey, "key", "k", "prix", "field to sort on")
	sortCmd.Flags().IntVarP(&sortSize, "size", "n", 1000, "number of records")
}
