// Package bench drives sort and search batteries over datasets of growing
// size, validates every sort, and hands results to the stats, storage and
// report collaborators.
package bench

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sortbench/pkg/analysis"
	"sortbench/pkg/common"
	"sortbench/pkg/config"
	"sortbench/pkg/monitor"
	"sortbench/pkg/query"
	"sortbench/pkg/report"
	"sortbench/pkg/search"
	"sortbench/pkg/sorting"
	"sortbench/pkg/storage"
	"sortbench/pkg/validate"
)

type Options struct {
	Algorithms     []sorting.Algorithm
	SortKeys       []string
	Sizes          []int
	BinaryKey      string
	BinaryTarget   float64
	PositionKey    string
	PositionTarget float64
	MinMaxKey      string
	Predicates     []*query.Filter
}

// OptionsFromConfig resolves algorithm names and parses predicate filters.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := Options{
		SortKeys:       cfg.Benchmark.SortKeys,
		Sizes:          cfg.Dataset.Sizes,
		BinaryKey:      cfg.Benchmark.BinaryKey,
		BinaryTarget:   cfg.Benchmark.BinaryTarget,
		PositionKey:    cfg.Benchmark.PositionKey,
		PositionTarget: cfg.Benchmark.PositionTarget,
		MinMaxKey:      cfg.Benchmark.MinMaxKey,
	}
	for _, name := range cfg.Benchmark.Algorithms {
		alg, err := sorting.ParseAlgorithm(name)
		if err != nil {
			return opts, err
		}
		opts.Algorithms = append(opts.Algorithms, alg)
	}
	for _, p := range cfg.Benchmark.Predicates {
		f, err := query.Parse(p)
		if err != nil {
			return opts, fmt.Errorf("predicate %q: %w", p, err)
		}
		opts.Predicates = append(opts.Predicates, f)
	}
	return opts, nil
}

// Source yields a dataset of at most n records.
type Source func(n int) (common.Dataset, error)

type Runner struct {
	opts   Options
	engine *sorting.Engine
	stats  *monitor.RunStats
	store  storage.ResultStore
	logger *zap.Logger
}

// NewRunner wires the collaborators. stats, store and logger may be nil.
func NewRunner(opts Options, engine *sorting.Engine, stats *monitor.RunStats, store storage.ResultStore, logger *zap.Logger) *Runner {
	if engine == nil {
		engine = sorting.NewEngine(nil)
	}
	if stats == nil {
		stats = monitor.NewRunStats(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{opts: opts, engine: engine, stats: stats, store: store, logger: logger}
}

func (r *Runner) Stats() *monitor.RunStats {
	return r.stats
}

// Heat is one race: every algorithm sorting the same dataset on one key.
type Heat struct {
	Size int
	Key  string
}

// Summary is everything one Run produced.
type Summary struct {
	Batch        string
	Results      []*common.RunResult
	Leaderboards map[Heat]*report.Leaderboard
	Complexity   []report.ComplexityRow
}

// Heats lists the summary's races by size, then key.
func (s *Summary) Heats() []Heat {
	heats := make([]Heat, 0, len(s.Leaderboards))
	for h := range s.Leaderboards {
		heats = append(heats, h)
	}
	sort.Slice(heats, func(i, j int) bool {
		if heats[i].Size != heats[j].Size {
			return heats[i].Size < heats[j].Size
		}
		return heats[i].Key < heats[j].Key
	})
	return heats
}

// Rank builds one leaderboard per heat from the sort results, so
// algorithms only ever compete on the same records and key.
func Rank(results []*common.RunResult) map[Heat]*report.Leaderboard {
	boards := make(map[Heat]*report.Leaderboard)
	for _, res := range results {
		if res.Kind != "sort" {
			continue
		}
		h := Heat{Size: res.Size, Key: res.Key}
		lb, ok := boards[h]
		if !ok {
			lb = report.NewLeaderboard(8)
			boards[h] = lb
		}
		lb.Add(res)
	}
	return boards
}

// Run executes both batteries for every configured size. ctx is checked
// between sizes and between runs; a started run always completes.
func (r *Runner) Run(ctx context.Context, source Source) (*Summary, error) {
	sum := &Summary{Batch: uuid.NewString()}
	log := r.logger.With(zap.String("batch", sum.Batch))

	for _, size := range r.opts.Sizes {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		ds, err := source(size)
		if err != nil {
			return sum, fmt.Errorf("load %d records: %w", size, err)
		}
		if len(ds) < size {
			log.Warn("dataset smaller than requested", zap.Int("requested", size), zap.Int("loaded", len(ds)))
		}
		log.Info("running batteries", zap.Int("size", len(ds)))

		sorts, err := r.sortBattery(ctx, ds)
		if err != nil {
			return sum, err
		}
		searches, err := r.searchBattery(ctx, ds)
		if err != nil {
			return sum, err
		}

		sum.Results = append(sum.Results, sorts...)
		sum.Results = append(sum.Results, searches...)
	}

	now := time.Now()
	for _, res := range sum.Results {
		res.Batch = sum.Batch
		res.CreatedAt = now
	}
	sum.Leaderboards = Rank(sum.Results)
	sum.Complexity = Complexity(sum.Results)

	if r.store != nil {
		if err := r.store.BatchWrite(sum.Results); err != nil {
			return sum, fmt.Errorf("store batch %s: %w", sum.Batch, err)
		}
		log.Info("batch stored", zap.Int("results", len(sum.Results)))
	}
	return sum, nil
}

// SortBattery runs every configured algorithm on every sort key.
func (r *Runner) SortBattery(ds common.Dataset) []*common.RunResult {
	res, _ := r.sortBattery(context.Background(), ds)
	return res
}

func (r *Runner) sortBattery(ctx context.Context, ds common.Dataset) ([]*common.RunResult, error) {
	var results []*common.RunResult
	for _, key := range r.opts.SortKeys {
		for _, alg := range r.opts.Algorithms {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			res, err := r.SortOnce(alg, ds, key)
			if err != nil {
				return results, err
			}
			results = append(results, res)
		}
	}
	return results, nil
}

// SortOnce runs one algorithm, validates its output and records it.
func (r *Runner) SortOnce(alg sorting.Algorithm, ds common.Dataset, key string) (*common.RunResult, error) {
	m, err := r.engine.Sort(alg, ds, key)
	if err != nil {
		return nil, err
	}
	ok, msg := validate.Sort(ds, m.Data, key)

	r.stats.RecordSort(string(alg), m.Comparisons, m.Movements, m.Movement.String(), m.Elapsed)
	r.stats.RecordValidation(ok)

	res := &common.RunResult{
		ID:          uuid.NewString(),
		Kind:        "sort",
		Algorithm:   string(alg),
		Key:         key,
		Size:        len(ds),
		Comparisons: m.Comparisons,
		Movements:   m.Movements,
		Movement:    m.Movement,
		Elapsed:     m.Elapsed,
		Outcome:     fmt.Sprintf("%d records", len(m.Data)),
		Valid:       ok,
		Message:     msg,
	}
	if !ok {
		r.logger.Error("sort output rejected", zap.Stringer("run", res), zap.String("reason", msg))
	} else {
		r.logger.Debug("sort", zap.Stringer("run", res), zap.Int("size", res.Size),
			zap.Int64("comparisons", m.Comparisons), zap.Duration("elapsed", m.Elapsed))
	}
	return res, nil
}

// SearchBattery counts every predicate, looks up the positional target,
// binary searches a merge-sorted copy and scans for the extrema.
func (r *Runner) SearchBattery(ds common.Dataset) []*common.RunResult {
	res, _ := r.searchBattery(context.Background(), ds)
	return res
}

func (r *Runner) searchBattery(ctx context.Context, ds common.Dataset) ([]*common.RunResult, error) {
	var results []*common.RunResult
	steps := []func() *common.RunResult{
		func() *common.RunResult { return r.positionRun(ds) },
		func() *common.RunResult { return r.binaryRun(ds) },
		func() *common.RunResult { return r.minMaxRun(ds) },
	}
	for _, f := range r.opts.Predicates {
		steps = append(steps, func() *common.RunResult { return r.countRun(ds, f) })
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, step())
	}
	return results, nil
}

// SearchOnce runs a single search of the given kind. Linear search uses the
// first configured predicate.
func (r *Runner) SearchOnce(kind search.Kind, ds common.Dataset) *common.RunResult {
	switch kind {
	case search.KindLinear:
		if len(r.opts.Predicates) == 0 {
			res := searchResult(kind, "", len(ds))
			res.Valid, res.Outcome, res.Message = false, "skipped", "no predicate configured"
			return res
		}
		return r.countRun(ds, r.opts.Predicates[0])
	case search.KindPosition:
		return r.positionRun(ds)
	case search.KindBinary:
		return r.binaryRun(ds)
	default:
		return r.minMaxRun(ds)
	}
}

func searchResult(kind search.Kind, key string, size int) *common.RunResult {
	return &common.RunResult{
		ID:        uuid.NewString(),
		Kind:      "search",
		Algorithm: string(kind),
		Key:       key,
		Size:      size,
		Valid:     true,
	}
}

func (r *Runner) countRun(ds common.Dataset, f *query.Filter) *common.RunResult {
	m := search.Count(ds, f.Predicate())
	res := searchResult(search.KindLinear, f.String(), len(ds))
	res.Comparisons, res.Elapsed = m.Comparisons, m.Elapsed
	res.Outcome = fmt.Sprintf("count=%d", m.Count)
	r.stats.RecordSearch(string(search.KindLinear), "count", m.Comparisons)
	r.logger.Debug("linear count", zap.String("filter", f.String()), zap.Int("count", m.Count))
	return res
}

func (r *Runner) positionRun(ds common.Dataset) *common.RunResult {
	m := search.Position(ds, r.opts.PositionKey, r.opts.PositionTarget)
	res := searchResult(search.KindPosition, r.opts.PositionKey, len(ds))
	res.Comparisons, res.Elapsed = m.Comparisons, m.Elapsed
	res.Outcome = positionOutcome(m)
	r.stats.RecordSearch(string(search.KindPosition), foundLabel(m), m.Comparisons)
	return res
}

// binaryRun sorts a copy with merge sort first and refuses to search when
// the copy fails the precondition check.
func (r *Runner) binaryRun(ds common.Dataset) *common.RunResult {
	key := r.opts.BinaryKey
	res := searchResult(search.KindBinary, key, len(ds))

	pre, err := r.engine.Sort(sorting.AlgMerge, ds, key)
	if err != nil {
		res.Valid, res.Message, res.Outcome = false, err.Error(), "skipped"
		return res
	}
	ok, msg := validate.PreSorted(pre.Data, key)
	r.stats.RecordValidation(ok)
	if !ok {
		r.logger.Error("binary search precondition failed", zap.String("key", key), zap.String("reason", msg))
		res.Valid, res.Message, res.Outcome = false, msg, "skipped"
		return res
	}

	m := search.Binary(pre.Data, key, r.opts.BinaryTarget)
	res.Comparisons, res.Elapsed = m.Comparisons, m.Elapsed
	res.Outcome = positionOutcome(m)
	res.Message = fmt.Sprintf("pre-sort: %d comparisons", pre.Comparisons)
	r.stats.RecordSearch(string(search.KindBinary), foundLabel(m), m.Comparisons)
	return res
}

func (r *Runner) minMaxRun(ds common.Dataset) *common.RunResult {
	m := search.MinMax(ds, r.opts.MinMaxKey)
	res := searchResult(search.KindMinMax, r.opts.MinMaxKey, len(ds))
	res.Comparisons, res.Elapsed = m.Comparisons, m.Elapsed
	if m.OK {
		res.Outcome = fmt.Sprintf("min=%g max=%g", m.Min, m.Max)
	} else {
		res.Outcome = "empty"
	}
	r.stats.RecordSearch(string(search.KindMinMax), "range", m.Comparisons)
	return res
}

func positionOutcome(m common.PositionMetrics) string {
	if !m.Found() {
		return "not found"
	}
	return fmt.Sprintf("index=%d", m.Index)
}

func foundLabel(m common.PositionMetrics) string {
	if m.Found() {
		return "found"
	}
	return "missing"
}

// Complexity fits each algorithm's sort comparisons against the growth
// classes. Algorithms seen at fewer than two sizes are left out.
func Complexity(results []*common.RunResult) []report.ComplexityRow {
	points := make(map[string][]analysis.Point)
	var order []string
	for _, res := range results {
		if res.Kind != "sort" {
			continue
		}
		if _, seen := points[res.Algorithm]; !seen {
			order = append(order, res.Algorithm)
		}
		points[res.Algorithm] = append(points[res.Algorithm], analysis.Point{N: res.Size, Comparisons: res.Comparisons})
	}

	var rows []report.ComplexityRow
	for _, alg := range order {
		best, ok := analysis.Best(points[alg])
		if !ok {
			continue
		}
		rows = append(rows, report.ComplexityRow{Algorithm: alg, Fit: best, Points: points[alg]})
	}
	return rows
}

// Stability sorts ds with every configured algorithm and reports whether
// records with equal keys kept their input order. label names the field
// printed for each record.
func (r *Runner) Stability(ds common.Dataset, key, label string) ([]report.StabilityRow, error) {
	pos := make(map[*common.Record]int, len(ds))
	for i, rec := range ds {
		pos[rec] = i
	}
	num := common.KeyOf(key)

	var rows []report.StabilityRow
	for _, alg := range r.opts.Algorithms {
		m, err := r.engine.Sort(alg, ds, key)
		if err != nil {
			return rows, err
		}
		row := report.StabilityRow{Algorithm: string(alg), Declared: sorting.Stable(alg), Stable: true}
		for i, rec := range m.Data {
			row.Order = append(row.Order, rec.String(label))
			if i > 0 && num(m.Data[i-1]) == num(rec) && pos[m.Data[i-1]] > pos[rec] {
				row.Stable = false
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
