package sorting

import (
	"time"

	"sortbench/pkg/common"
)

// Selection sorts a copy of ds by key. It always performs n(n-1)/2
// comparisons and at most one exchange per outer pass.
func Selection(ds common.Dataset, key string) common.SortMetrics {
	out := ds.Clone()
	if len(out) < 2 {
		return common.SortMetrics{Data: out, Movement: common.MovementExchange}
	}

	num := common.KeyOf(key)
	var c Counter
	start := time.Now()

	n := len(out)
	for i := 0; i < n-1; i++ {
		minIdx := i
		minVal := num(out[i])
		for j := i + 1; j < n; j++ {
			c.compare()
			if v := num(out[j]); v < minVal {
				minIdx, minVal = j, v
			}
		}
		if minIdx != i {
			c.swap(out, i, minIdx)
		}
	}

	return common.SortMetrics{
		Data:        out,
		Comparisons: c.Comparisons,
		Movements:   c.Movements,
		Movement:    common.MovementExchange,
		Elapsed:     time.Since(start),
	}
}

// Insertion sorts a copy of ds by key. Every probe of the inward scan is
// one comparison; each element moved one slot right is one shift.
func Insertion(ds common.Dataset, key string) common.SortMetrics {
	out := ds.Clone()
	if len(out) < 2 {
		return common.SortMetrics{Data: out, Movement: common.MovementShift}
	}

	num := common.KeyOf(key)
	var c Counter
	start := time.Now()

	for i := 1; i < len(out); i++ {
		pivot := out[i]
		pv := num(pivot)
		j := i - 1
		for j >= 0 {
			c.compare()
			if num(out[j]) <= pv {
				break
			}
			out[j+1] = out[j]
			c.move()
			j--
		}
		out[j+1] = pivot
	}

	return common.SortMetrics{
		Data:        out,
		Comparisons: c.Comparisons,
		Movements:   c.Movements,
		Movement:    common.MovementShift,
		Elapsed:     time.Since(start),
	}
}
