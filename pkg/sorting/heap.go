package sorting

import (
	"time"

	"sortbench/pkg/common"
)

// Heap sorts a copy of ds with a binary max-heap. Every child looked at
// during sift-down costs one comparison; sift swaps and root extractions
// are exchanges.
func Heap(ds common.Dataset, key string) common.SortMetrics {
	out := ds.Clone()
	if len(out) < 2 {
		return common.SortMetrics{Data: out, Movement: common.MovementExchange}
	}

	num := common.KeyOf(key)
	var c Counter
	start := time.Now()

	n := len(out)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(out, i, n, num, &c)
	}
	for end := n - 1; end > 0; end-- {
		c.swap(out, 0, end)
		siftDown(out, 0, end, num, &c)
	}

	return common.SortMetrics{
		Data:        out,
		Comparisons: c.Comparisons,
		Movements:   c.Movements,
		Movement:    common.MovementExchange,
		Elapsed:     time.Since(start),
	}
}

// siftDown restores the heap property below root within data[:n].
func siftDown(data common.Dataset, root, n int, num common.KeyFunc, c *Counter) {
	for {
		largest := root
		left := 2*root + 1
		right := left + 1

		if left < n {
			c.compare()
			if num(data[left]) > num(data[largest]) {
				largest = left
			}
		}
		if right < n {
			c.compare()
			if num(data[right]) > num(data[largest]) {
				largest = right
			}
		}
		if largest == root {
			return
		}
		c.swap(data, root, largest)
		root = largest
	}
}
