package sorting

import (
	"errors"
	"fmt"
	"strings"

	"sortbench/pkg/common"
)

var ErrUnknownAlgorithm = errors.New("sorting: unknown algorithm")

type Algorithm string

const (
	AlgSelection Algorithm = "selection"
	AlgInsertion Algorithm = "insertion"
	AlgMerge     Algorithm = "merge"
	AlgQuick     Algorithm = "quick"
	AlgHeap      Algorithm = "heap"
)

// Algorithms lists every sort in a fixed order, slowest family first.
func Algorithms() []Algorithm {
	return []Algorithm{AlgSelection, AlgInsertion, AlgMerge, AlgQuick, AlgHeap}
}

func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Stable reports whether alg preserves the order of equal keys.
func Stable(alg Algorithm) bool {
	return alg == AlgMerge
}

// Engine dispatches by algorithm name and owns the quicksort pivot source.
type Engine struct {
	picker Picker
}

func NewEngine(p Picker) *Engine {
	if p == nil {
		p = NewPicker(1)
	}
	return &Engine{picker: p}
}

func (e *Engine) Sort(alg Algorithm, ds common.Dataset, key string) (common.SortMetrics, error) {
	switch alg {
	case AlgSelection:
		return Selection(ds, key), nil
	case AlgInsertion:
		return Insertion(ds, key), nil
	case AlgMerge:
		return Merge(ds, key), nil
	case AlgQuick:
		return Quick(ds, key, e.picker), nil
	case AlgHeap:
		return Heap(ds, key), nil
	default:
		return common.SortMetrics{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}
