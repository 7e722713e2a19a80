package common

import "time"

// NotFound is the index reported by positional searches that miss.
const NotFound = -1

type MovementKind int

const (
	MovementNone MovementKind = iota
	MovementExchange
	MovementShift
)

func (k MovementKind) String() string {
	switch k {
	case MovementExchange:
		return "exchanges"
	case MovementShift:
		return "shifts"
	default:
		return "none"
	}
}

// SortMetrics is the result of one sort run. Data is a fresh slice; the
// input dataset is never reordered.
type SortMetrics struct {
	Data        Dataset
	Comparisons int64
	Movements   int64
	Movement    MovementKind
	Elapsed     time.Duration
}

type PositionMetrics struct {
	Index       int
	Comparisons int64
	Elapsed     time.Duration
}

func (m PositionMetrics) Found() bool {
	return m.Index != NotFound
}

type CountMetrics struct {
	Count       int
	Comparisons int64
	Elapsed     time.Duration
}

// RangeMetrics holds the extrema of a min/max scan. OK is false for an
// empty dataset.
type RangeMetrics struct {
	Min         float64
	Max         float64
	OK          bool
	Comparisons int64
	Elapsed     time.Duration
}

// RunResult is one line of harness output, ready for reporting or storage.
type RunResult struct {
	ID          string
	Batch       string
	Kind        string // "sort" or "search"
	Algorithm   string
	Key         string
	Size        int
	Comparisons int64
	Movements   int64
	Movement    MovementKind
	Elapsed     time.Duration
	Outcome     string
	Valid       bool
	Message     string
	CreatedAt   time.Time
}

func (r *RunResult) String() string {
	return r.Kind + "/" + r.Algorithm + "[" + r.Key + "]"
}
