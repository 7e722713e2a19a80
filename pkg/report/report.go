// Package report renders run results as plain text.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"sortbench/pkg/analysis"
	"sortbench/pkg/common"
)

// WriteRuns prints one line per run.
func WriteRuns(w io.Writer, results []*common.RunResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tALGORITHM\tKEY\tN\tTIME(s)\tCOMPARISONS\tMOVEMENTS\tOUTCOME\tVALID")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.6f\t%d\t%s\t%s\t%s\n",
			r.Kind, r.Algorithm, r.Key, r.Size, r.Elapsed.Seconds(), r.Comparisons,
			movements(r), r.Outcome, verdict(r))
	}
	return tw.Flush()
}

func movements(r *common.RunResult) string {
	if r.Movement == common.MovementNone {
		return "-"
	}
	return fmt.Sprintf("%d %s", r.Movements, r.Movement)
}

func verdict(r *common.RunResult) string {
	if r.Valid {
		return "ok"
	}
	return "FAIL: " + r.Message
}

// WriteLeaderboard prints the n fastest runs of lb.
func WriteLeaderboard(w io.Writer, lb *Leaderboard, n int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tALGORITHM\tKEY\tN\tTIME(s)\tCOMPARISONS")
	for i, r := range lb.Top(n) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.6f\t%d\n", i+1, r.Algorithm, r.Key, r.Size, r.Elapsed.Seconds(), r.Comparisons)
	}
	return tw.Flush()
}

// ComplexityRow is the best growth class found for one algorithm.
type ComplexityRow struct {
	Algorithm string
	Fit       analysis.ClassFit
	Points    []analysis.Point
}

func WriteComplexity(w io.Writer, rows []ComplexityRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tBEST FIT\tR2\tSLOPE\tOBSERVED/THEORY")
	for _, row := range rows {
		ratio := "-"
		if len(row.Points) > 0 {
			last := row.Points[len(row.Points)-1]
			ratio = fmt.Sprintf("%.3f", analysis.Ratio(last.Comparisons, last.N, row.Fit.Class))
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%s\n", row.Algorithm, row.Fit.Class, row.Fit.R2, row.Fit.Slope, ratio)
	}
	return tw.Flush()
}

// StabilityRow records the order a sort left equal-key records in. Declared
// is the guarantee the algorithm makes; Stable is what this input showed.
type StabilityRow struct {
	Algorithm string
	Order     []string
	Declared  bool
	Stable    bool
}

func WriteStability(w io.Writer, rows []StabilityRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tORDER\tSTABLE\tGUARANTEED")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%v\t%s\t%s\n", row.Algorithm, row.Order, yesNo(row.Stable), yesNo(row.Declared))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
