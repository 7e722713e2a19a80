package sorting

import (
	"time"

	"sortbench/pkg/common"
)

// Quick is a randomized Lomuto quicksort. The pivot drawn from p is first
// swapped to the end of the range so the scan never compares it with
// itself. That isolation swap is always counted.
func Quick(ds common.Dataset, key string, p Picker) common.SortMetrics {
	out := ds.Clone()
	if len(out) < 2 {
		return common.SortMetrics{Data: out, Movement: common.MovementExchange}
	}
	if p == nil {
		p = HighPicker{}
	}

	num := common.KeyOf(key)
	var c Counter
	start := time.Now()

	quickSort(out, 0, len(out)-1, num, p, &c)

	return common.SortMetrics{
		Data:        out,
		Comparisons: c.Comparisons,
		Movements:   c.Movements,
		Movement:    common.MovementExchange,
		Elapsed:     time.Since(start),
	}
}

// quickSort recurses into the smaller side and loops over the larger one,
// so stack depth stays O(log n) whatever the pivots.
func quickSort(data common.Dataset, lo, hi int, num common.KeyFunc, p Picker, c *Counter) {
	for lo < hi {
		mid := partition(data, lo, hi, num, p, c)
		if mid-lo < hi-mid {
			quickSort(data, lo, mid-1, num, p, c)
			lo = mid + 1
		} else {
			quickSort(data, mid+1, hi, num, p, c)
			hi = mid - 1
		}
	}
}

func partition(data common.Dataset, lo, hi int, num common.KeyFunc, p Picker, c *Counter) int {
	pick := p.Pick(lo, hi)
	if pick < lo || pick > hi {
		pick = hi
	}
	data[pick], data[hi] = data[hi], data[pick]
	c.move()

	pivot := num(data[hi])
	i := lo - 1
	for j := lo; j < hi; j++ {
		c.compare()
		if num(data[j]) <= pivot {
			i++
			if i != j {
				c.swap(data, i, j)
			}
		}
	}
	if i+1 != hi {
		c.swap(data, i+1, hi)
	}
	return i + 1
}
