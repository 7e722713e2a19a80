package monitor

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RunStats exports per-algorithm counters for sort and search runs. Each
// instance registers on its own registry so runs never share totals.
type RunStats struct {
	reg *prometheus.Registry

	sortRuns        *prometheus.CounterVec
	sortComparisons *prometheus.CounterVec
	sortMovements   *prometheus.CounterVec
	sortDuration    *prometheus.HistogramVec

	searchRuns        *prometheus.CounterVec
	searchComparisons *prometheus.CounterVec

	validations *prometheus.CounterVec

	failures uint64
}

func NewRunStats(reg *prometheus.Registry) *RunStats {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &RunStats{
		reg: reg,
		sortRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortbench_sort_runs_total",
			Help: "Sort runs by algorithm",
		}, []string{"algorithm"}),
		sortComparisons: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortbench_sort_comparisons_total",
			Help: "Key comparisons made by sort runs",
		}, []string{"algorithm"}),
		sortMovements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortbench_sort_movements_total",
			Help: "Exchanges or shifts made by sort runs",
		}, []string{"algorithm", "kind"}),
		sortDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sortbench_sort_duration_seconds",
			Help:    "Sort run duration",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"algorithm"}),
		searchRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortbench_search_runs_total",
			Help: "Search runs by kind and outcome",
		}, []string{"kind", "outcome"}),
		searchComparisons: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortbench_search_comparisons_total",
			Help: "Comparisons made by search runs",
		}, []string{"kind"}),
		validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortbench_validations_total",
			Help: "Validator verdicts",
		}, []string{"result"}),
	}
}

func (s *RunStats) Registry() *prometheus.Registry {
	return s.reg
}

func (s *RunStats) RecordSort(algorithm string, comparisons, movements int64, movementKind string, elapsed time.Duration) {
	s.sortRuns.WithLabelValues(algorithm).Inc()
	s.sortComparisons.WithLabelValues(algorithm).Add(float64(comparisons))
	if movementKind != "none" {
		s.sortMovements.WithLabelValues(algorithm, movementKind).Add(float64(movements))
	}
	s.sortDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

func (s *RunStats) RecordSearch(kind, outcome string, comparisons int64) {
	s.searchRuns.WithLabelValues(kind, outcome).Inc()
	s.searchComparisons.WithLabelValues(kind).Add(float64(comparisons))
}

func (s *RunStats) RecordValidation(ok bool) {
	if ok {
		s.validations.WithLabelValues("pass").Inc()
		return
	}
	atomic.AddUint64(&s.failures, 1)
	s.validations.WithLabelValues("fail").Inc()
}

func (s *RunStats) Failures() uint64 {
	return atomic.LoadUint64(&s.failures)
}

// Summary totals over all label values.
type Summary struct {
	SortRuns          float64
	SortComparisons   float64
	SearchRuns        float64
	SearchComparisons float64
	Validations       float64
	Failures          uint64
}

func (s *RunStats) Summary() (Summary, error) {
	mfs, err := s.reg.Gather()
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Failures: s.Failures()}
	for _, mf := range mfs {
		var total float64
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
		}
		switch mf.GetName() {
		case "sortbench_sort_runs_total":
			sum.SortRuns = total
		case "sortbench_sort_comparisons_total":
			sum.SortComparisons = total
		case "sortbench_search_runs_total":
			sum.SearchRuns = total
		case "sortbench_search_comparisons_total":
			sum.SearchComparisons = total
		case "sortbench_validations_total":
			sum.Validations = total
		}
	}
	return sum, nil
}
