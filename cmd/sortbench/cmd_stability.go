package main

import (
	"github.com/spf13/cobra"

	"sortbench/pkg/dataset"
	"sortbench/pkg/report"
)

var stabilityCmd = &cobra.Command{
	Use:   "stability",
	Short: "Show which algorithms keep equal prices in input order",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(nil)
		if err != nil {
			return err
		}
		rows, err := runner.Stability(dataset.Stability(), "prix", "type")
		if err != nil {
			return err
		}
		return report.WriteStability(cmd.OutOrStdout(), rows)
	},
}
