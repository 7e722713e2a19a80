// Package search implements instrumented linear, binary and min/max scans.
// Every function reports how many key comparisons it evaluated.
package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sortbench/pkg/common"
)

var ErrUnknownKind = errors.New("search: unknown kind")

type Kind string

const (
	KindLinear   Kind = "linear"
	KindPosition Kind = "position"
	KindBinary   Kind = "binary"
	KindMinMax   Kind = "minmax"
)

func Kinds() []Kind {
	return []Kind{KindLinear, KindPosition, KindBinary, KindMinMax}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Count scans the whole dataset and counts records matching pred. Each
// predicate evaluation is one comparison. A nil pred matches nothing and
// evaluates nothing.
func Count(ds common.Dataset, pred common.Predicate) common.CountMetrics {
	if pred == nil {
		return common.CountMetrics{}
	}
	start := time.Now()
	var found int
	var comps int64
	for _, r := range ds {
		comps++
		if pred(r) {
			found++
		}
	}
	return common.CountMetrics{Count: found, Comparisons: comps, Elapsed: time.Since(start)}
}

// Position returns the index of the first record whose key equals target,
// or common.NotFound.
func Position(ds common.Dataset, key string, target float64) common.PositionMetrics {
	start := time.Now()
	num := common.KeyOf(key)
	var comps int64
	for i, r := range ds {
		comps++
		if num(r) == target {
			return common.PositionMetrics{Index: i, Comparisons: comps, Elapsed: time.Since(start)}
		}
	}
	return common.PositionMetrics{Index: common.NotFound, Comparisons: comps, Elapsed: time.Since(start)}
}

// Binary searches a dataset sorted ascending by key. The order is a
// precondition and is not checked here; callers gate with
// validate.PreSorted. With duplicate keys any matching index may come back.
func Binary(sorted common.Dataset, key string, target float64) common.PositionMetrics {
	start := time.Now()
	num := common.KeyOf(key)
	var comps int64

	lo, hi := 0, len(sorted)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		v := num(sorted[mid])
		comps++
		switch {
		case v == target:
			return common.PositionMetrics{Index: mid, Comparisons: comps, Elapsed: time.Since(start)}
		case v < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return common.PositionMetrics{Index: common.NotFound, Comparisons: comps, Elapsed: time.Since(start)}
}

// MinMax finds both extrema in one pass. The first record seeds min and
// max for free; every later record costs exactly two comparisons.
func MinMax(ds common.Dataset, key string) common.RangeMetrics {
	if len(ds) == 0 {
		return common.RangeMetrics{}
	}
	num := common.KeyOf(key)
	lo := num(ds[0])
	hi := lo
	var comps int64

	start := time.Now()
	for _, r := range ds[1:] {
		v := num(r)
		comps++
		if v < lo {
			lo = v
		}
		comps++
		if v > hi {
			hi = v
		}
	}
	return common.RangeMetrics{Min: lo, Max: hi, OK: true, Comparisons: comps, Elapsed: time.Since(start)}
}
