package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sortbench/pkg/bench"
	"sortbench/pkg/common"
	"sortbench/pkg/query"
	"sortbench/pkg/report"
	"sortbench/pkg/search"
)

var (
	searchKind   string
	searchKey    string
	searchTarget float64
	searchWhere  string
	searchSize   int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search over a dataset",
	Long: `Run one search over a dataset.

  linear    count records matching --where
  position  first index whose --key equals --target
  binary    merge sort on --key, then binary search for --target
  minmax    smallest and largest --key in one pass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := search.ParseKind(searchKind)
		if err != nil {
			return err
		}
		ds, err := loadSource()(searchSize)
		if err != nil {
			return err
		}

		var filter *query.Filter
		if kind == search.KindLinear {
			if searchWhere == "" {
				return fmt.Errorf("linear search needs --where")
			}
			if filter, err = query.Parse(searchWhere); err != nil {
				return err
			}
		}

		runner, err := newRunner(func(opts *bench.Options) {
			switch kind {
			case search.KindLinear:
				opts.Predicates = []*query.Filter{filter}
			case search.KindPosition:
				opts.PositionKey, opts.PositionTarget = searchKey, searchTarget
			case search.KindBinary:
				opts.BinaryKey, opts.BinaryTarget = searchKey, searchTarget
			case search.KindMinMax:
				opts.MinMaxKey = searchKey
			}
		})
		if err != nil {
			return err
		}

		res := runner.SearchOnce(kind, ds)
		if err := report.WriteRuns(cmd.OutOrStdout(), []*common.RunResult{res}); err != nil {
			return err
		}
		if !res.Valid {
			return fmt.Errorf("search refused: %s", res.Message)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "t", "linear", kindNames())
	searchCmd.Flags().StringVarP(&searchKey, "key", "k", "prix", "field to search on")
	searchCmd.Flags().Float64Var(&searchTarget, "target", 350000, "value to look for")
	searchCmd.Flags().StringVarP(&searchWhere, "where", "w", "", `filter for linear search, e.g. "type_local = Maison AND commune = PARIS"`)
	searchCmd.Flags().IntVarP(&searchSize, "size", "n", 1000, "number of records")
}

func kindNames() string {
	var names []string
	for _, k := range search.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
