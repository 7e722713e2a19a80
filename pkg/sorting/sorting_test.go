package sorting

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sortbench/pkg/common"
)

func makeDataset(keys ...float64) common.Dataset {
	ds := make(common.Dataset, len(keys))
	for i, k := range keys {
		ds[i] = common.FromMap(map[string]any{"k": k, "id": i})
	}
	return ds
}

func randomDataset(n int, seed uint64, spread int) common.Dataset {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = float64(rng.IntN(spread))
	}
	return makeDataset(keys...)
}

func keysOf(ds common.Dataset) []float64 {
	out := make([]float64, len(ds))
	for i, r := range ds {
		out[i] = common.Numeric(r, "k")
	}
	return out
}

func isSorted(ds common.Dataset) bool {
	for i := 1; i < len(ds); i++ {
		if common.Numeric(ds[i-1], "k") > common.Numeric(ds[i], "k") {
			return false
		}
	}
	return true
}

func samePermutation(in, out common.Dataset) bool {
	if len(in) != len(out) {
		return false
	}
	seen := make(map[*common.Record]int, len(in))
	for _, r := range in {
		seen[r]++
	}
	for _, r := range out {
		seen[r]--
		if seen[r] < 0 {
			return false
		}
	}
	return true
}

type sortCase struct {
	name string
	fn   func(common.Dataset, string) common.SortMetrics
}

func allSorts(seed uint64) []sortCase {
	return []sortCase{
		{"selection", Selection},
		{"insertion", Insertion},
		{"merge", Merge},
		{"quick", func(ds common.Dataset, key string) common.SortMetrics {
			return Quick(ds, key, NewPicker(seed))
		}},
		{"heap", Heap},
	}
}

func TestAllSortsFourRecords(t *testing.T) {
	for _, sc := range allSorts(7) {
		t.Run(sc.name, func(t *testing.T) {
			ds := makeDataset(300, 150, 450, 200)
			m := sc.fn(ds, "k")
			if diff := cmp.Diff([]float64{150, 200, 300, 450}, keysOf(m.Data)); diff != "" {
				t.Fatalf("sorted keys mismatch (-want +got):\n%s", diff)
			}
			assert.Greater(t, m.Comparisons, int64(0))
			assert.GreaterOrEqual(t, m.Elapsed.Nanoseconds(), int64(0))
		})
	}

	m := Selection(makeDataset(300, 150, 450, 200), "k")
	assert.Equal(t, int64(6), m.Comparisons)
}

func TestSortsDoNotMutateInput(t *testing.T) {
	for _, sc := range allSorts(3) {
		ds := randomDataset(50, 11, 20)
		before := ds.Clone()
		sc.fn(ds, "k")
		for i := range ds {
			require.Same(t, before[i], ds[i], "%s reordered its input at %d", sc.name, i)
		}
	}
}

func TestSortsDegenerateInputs(t *testing.T) {
	for _, sc := range allSorts(1) {
		for _, ds := range []common.Dataset{nil, {}, makeDataset(5)} {
			m := sc.fn(ds, "k")
			assert.Equal(t, len(ds), len(m.Data), sc.name)
			assert.Zero(t, m.Comparisons, sc.name)
			assert.Zero(t, m.Movements, sc.name)
			assert.Zero(t, m.Elapsed, sc.name)
		}
	}
}

func TestSortInvariantsOnRandomData(t *testing.T) {
	for _, n := range []int{2, 3, 10, 64, 257} {
		for seed := uint64(1); seed <= 4; seed++ {
			// spread < n forces duplicates
			ds := randomDataset(n, seed, n/2+1)
			for _, sc := range allSorts(seed) {
				m := sc.fn(ds, "k")
				require.True(t, isSorted(m.Data), "%s n=%d seed=%d not sorted", sc.name, n, seed)
				require.True(t, samePermutation(ds, m.Data), "%s n=%d seed=%d not a permutation", sc.name, n, seed)

				again := sc.fn(m.Data, "k")
				require.Equal(t, keysOf(m.Data), keysOf(again.Data), "%s not idempotent", sc.name)
			}
		}
	}
}

func TestIdempotenceKeepsIdentityForInPlaceStableOnSorted(t *testing.T) {
	ds := randomDataset(40, 5, 6)
	for _, fn := range []func(common.Dataset, string) common.SortMetrics{Selection, Insertion, Merge} {
		once := fn(ds, "k")
		twice := fn(once.Data, "k")
		for i := range once.Data {
			require.Same(t, once.Data[i], twice.Data[i])
		}
	}
}

func TestSelectionComparisonCountIsExact(t *testing.T) {
	for n := 0; n <= 40; n++ {
		ds := randomDataset(n, uint64(n)+1, 1000)
		m := Selection(ds, "k")
		assert.Equal(t, int64(n*(n-1)/2), m.Comparisons, "n=%d", n)
		assert.LessOrEqual(t, m.Movements, int64(max(n-1, 0)))
	}
}

func TestInsertionBestAndWorstCase(t *testing.T) {
	const n = 20
	asc := make([]float64, n)
	desc := make([]float64, n)
	for i := 0; i < n; i++ {
		asc[i] = float64(i)
		desc[i] = float64(n - i)
	}

	best := Insertion(makeDataset(asc...), "k")
	assert.Equal(t, int64(n-1), best.Comparisons)
	assert.Zero(t, best.Movements)

	worst := Insertion(makeDataset(desc...), "k")
	assert.Equal(t, int64(n*(n-1)/2), worst.Comparisons)
	assert.Equal(t, int64(n*(n-1)/2), worst.Movements)
	assert.Equal(t, common.MovementShift, worst.Movement)
}

func TestMergeComparisonBound(t *testing.T) {
	for _, n := range []int{2, 5, 16, 100, 1000} {
		m := Merge(randomDataset(n, 9, 1<<20), "k")
		bound := int64(n) * int64(math.Ceil(math.Log2(float64(n))))
		assert.LessOrEqual(t, m.Comparisons, bound, "n=%d", n)
		assert.Zero(t, m.Movements)
		assert.Equal(t, common.MovementNone, m.Movement)
	}

	// Already sorted: each merge stops after exhausting the left half.
	m := Merge(makeDataset(1, 2, 3, 4, 5, 6, 7, 8), "k")
	assert.Equal(t, int64(12), m.Comparisons)
}

func TestMergeIsStable(t *testing.T) {
	ds := makeDataset(2, 1, 2, 1, 2, 1)
	m := Merge(ds, "k")
	var ids []string
	for _, r := range m.Data {
		ids = append(ids, r.String("id"))
	}
	assert.Equal(t, []string{"1", "3", "5", "0", "2", "4"}, ids)
}

func TestQuickCountsWithHighPivot(t *testing.T) {
	m := Quick(makeDataset(300, 150, 450, 200), "k", HighPicker{})
	assert.Equal(t, []float64{150, 200, 300, 450}, keysOf(m.Data))
	assert.Equal(t, int64(4), m.Comparisons)
	// two isolation swaps, one Lomuto swap, two pivot placements
	assert.Equal(t, int64(5), m.Movements)
}

func TestQuickIsReproducibleForASeed(t *testing.T) {
	ds := randomDataset(300, 21, 50)
	a := Quick(ds, "k", NewPicker(99))
	b := Quick(ds, "k", NewPicker(99))
	assert.Equal(t, a.Comparisons, b.Comparisons)
	assert.Equal(t, a.Movements, b.Movements)
	for i := range a.Data {
		require.Same(t, a.Data[i], b.Data[i])
	}
}

type scriptedPicker struct {
	picks []int
	calls int
}

func (p *scriptedPicker) Pick(lo, hi int) int {
	v := p.picks[p.calls%len(p.picks)]
	p.calls++
	return v
}

func TestQuickIgnoresOutOfRangePicks(t *testing.T) {
	p := &scriptedPicker{picks: []int{-5, 1000}}
	m := Quick(randomDataset(30, 4, 10), "k", p)
	assert.True(t, isSorted(m.Data))
	assert.Greater(t, p.calls, 0)
}

func TestQuickHandlesAdversarialInput(t *testing.T) {
	// Sorted input with a hi pivot is quicksort's worst case; the loop on
	// the larger side keeps recursion shallow.
	const n = 3000
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = float64(i)
	}
	m := Quick(makeDataset(keys...), "k", HighPicker{})
	assert.True(t, isSorted(m.Data))
	assert.Equal(t, int64(n*(n-1)/2), m.Comparisons)
}

func TestHeapComparisonBound(t *testing.T) {
	for _, n := range []int{2, 7, 64, 1000} {
		m := Heap(randomDataset(n, 13, 1<<20), "k")
		logN := int64(math.Ceil(math.Log2(float64(n))))
		assert.LessOrEqual(t, m.Comparisons, 2*int64(n)*(logN+1), "n=%d", n)
		assert.Greater(t, m.Movements, int64(0), "n=%d", n)
	}
}

func TestSortsUseFallbackForMalformedKeys(t *testing.T) {
	ds := common.Dataset{
		common.FromMap(map[string]any{"k": "12"}),
		common.FromMap(map[string]any{"k": "n/a"}),
		common.FromMap(map[string]any{"k": -3}),
		common.FromMap(map[string]any{"other": 1}),
	}
	for _, sc := range allSorts(2) {
		m := sc.fn(ds, "k")
		assert.Equal(t, []float64{-3, 0, 0, 12}, keysOf(m.Data), sc.name)
	}
}

func TestEngine(t *testing.T) {
	e := NewEngine(NewPicker(5))
	ds := makeDataset(3, 1, 2)
	for _, alg := range Algorithms() {
		m, err := e.Sort(alg, ds, "k")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, keysOf(m.Data), string(alg))
	}

	_, err := e.Sort("bogo", ds, "k")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))

	alg, err := ParseAlgorithm(" Heap ")
	require.NoError(t, err)
	assert.Equal(t, AlgHeap, alg)
	_, err = ParseAlgorithm("bubble")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	assert.True(t, Stable(AlgMerge))
	assert.False(t, Stable(AlgQuick))
}
