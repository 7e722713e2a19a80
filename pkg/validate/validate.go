// Package validate checks sort results after the fact. Each check is a pure
// predicate returning a verdict and a human readable diagnostic.
package validate

import (
	"fmt"

	"sortbench/pkg/common"
)

// Sorted reports whether ds is non-decreasing under the numeric projection
// of key.
func Sorted(ds common.Dataset, key string) (bool, string) {
	num := common.KeyOf(key)
	for i := 1; i < len(ds); i++ {
		prev, cur := num(ds[i-1]), num(ds[i])
		if prev > cur {
			return false, fmt.Sprintf("not sorted on %q: position %d (%g) > position %d (%g)", key, i-1, prev, i, cur)
		}
	}
	return true, fmt.Sprintf("sorted on %q (%d records)", key, len(ds))
}

// PreSorted is the gate binary search callers run before trusting a result.
// Same check as Sorted, worded for the precondition.
func PreSorted(ds common.Dataset, key string) (bool, string) {
	if ok, msg := Sorted(ds, key); !ok {
		return false, "binary search precondition violated: " + msg
	}
	return true, fmt.Sprintf("ready for binary search on %q", key)
}

// Permutation reports whether out holds exactly the records of in, by
// identity, with the same multiplicities.
func Permutation(in, out common.Dataset) (bool, string) {
	counts := make(map[*common.Record]int, len(in))
	for _, r := range in {
		counts[r]++
	}
	var fabricated int
	for _, r := range out {
		if _, ok := counts[r]; !ok {
			fabricated++
			continue
		}
		counts[r]--
	}

	var missing, duplicated int
	for _, c := range counts {
		switch {
		case c > 0:
			missing += c
		case c < 0:
			duplicated -= c
		}
	}

	if missing == 0 && duplicated == 0 && fabricated == 0 {
		return true, fmt.Sprintf("permutation of %d records", len(in))
	}
	return false, fmt.Sprintf("not a permutation: %d missing, %d duplicated, %d unknown (in=%d out=%d)",
		missing, duplicated, fabricated, len(in), len(out))
}

// Sort runs both post-sort checks; the first failure wins.
func Sort(in, out common.Dataset, key string) (bool, string) {
	if ok, msg := Permutation(in, out); !ok {
		return false, msg
	}
	if ok, msg := Sorted(out, key); !ok {
		return false, msg
	}
	return true, fmt.Sprintf("valid sort of %d records on %q", len(out), key)
}
