package sorting

import (
	"time"

	"sortbench/pkg/common"
)

// Merge is a stable top-down merge sort. Only comparisons are reported:
// every level moves every element, so a movement count says nothing.
func Merge(ds common.Dataset, key string) common.SortMetrics {
	out := ds.Clone()
	if len(out) < 2 {
		return common.SortMetrics{Data: out, Movement: common.MovementNone}
	}

	num := common.KeyOf(key)
	var c Counter
	start := time.Now()

	buf := make(common.Dataset, len(out))
	mergeSort(out, buf, num, &c)

	return common.SortMetrics{
		Data:        out,
		Comparisons: c.Comparisons,
		Movement:    common.MovementNone,
		Elapsed:     time.Since(start),
	}
}

// mergeSort sorts data in place using buf (same length) as scratch.
func mergeSort(data, buf common.Dataset, num common.KeyFunc, c *Counter) {
	if len(data) < 2 {
		return
	}
	m := len(data) / 2
	mergeSort(data[:m], buf[:m], num, c)
	mergeSort(data[m:], buf[m:], num, c)

	copy(buf, data)
	left, right := buf[:m], buf[m:]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		c.compare()
		// <= keeps the left element first on ties.
		if num(left[i]) <= num(right[j]) {
			data[k] = left[i]
			i++
		} else {
			data[k] = right[j]
			j++
		}
		k++
	}
	k += copy(data[k:], left[i:])
	copy(data[k:], right[j:])
}
