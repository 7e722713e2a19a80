package search

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sortbench/pkg/common"
)

func makeDataset(keys ...float64) common.Dataset {
	ds := make(common.Dataset, len(keys))
	for i, k := range keys {
		ds[i] = common.FromMap(map[string]any{"k": k})
	}
	return ds
}

var listings = common.Dataset{
	common.FromMap(map[string]any{"prix": 150, "type_local": "Appartement", "commune": "PARIS", "nb_pieces": "2"}),
	common.FromMap(map[string]any{"prix": 200, "type_local": "Maison", "commune": "PARIS", "nb_pieces": "3"}),
	common.FromMap(map[string]any{"prix": 300, "type_local": "Appartement", "commune": "LYON", "nb_pieces": "3"}),
	common.FromMap(map[string]any{"prix": 350, "type_local": "Appartement", "commune": "PARIS", "nb_pieces": "3"}),
}

func TestCountScansEverything(t *testing.T) {
	m := Count(listings, func(r *common.Record) bool { return r.String("commune") == "PARIS" })
	assert.Equal(t, 3, m.Count)
	assert.Equal(t, int64(4), m.Comparisons)

	m = Count(listings, func(r *common.Record) bool {
		return r.String("type_local") == "Maison" && r.String("commune") == "PARIS"
	})
	assert.Equal(t, 1, m.Count)
	assert.Equal(t, int64(4), m.Comparisons)

	m = Count(nil, func(*common.Record) bool { return true })
	assert.Zero(t, m.Count)
	assert.Zero(t, m.Comparisons)
}

func TestCountNilPredicateMatchesNothing(t *testing.T) {
	var pred common.Predicate
	assert.NotPanics(t, func() {
		m := Count(listings, pred)
		assert.Zero(t, m.Count)
		assert.Zero(t, m.Comparisons)
	})
}

func TestPosition(t *testing.T) {
	ds := makeDataset(5, 1, 9, 1)
	m := Position(ds, "k", 1)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, int64(2), m.Comparisons)
	assert.True(t, m.Found())

	m = Position(ds, "k", 42)
	assert.Equal(t, common.NotFound, m.Index)
	assert.Equal(t, int64(4), m.Comparisons)
	assert.False(t, m.Found())
}

func TestBinaryScenario(t *testing.T) {
	ds := makeDataset(100, 150, 200, 300, 450)

	m := Binary(ds, "k", 450)
	assert.Equal(t, 4, m.Index)
	assert.LessOrEqual(t, m.Comparisons, int64(3))

	m = Binary(ds, "k", 999)
	assert.Equal(t, common.NotFound, m.Index)

	m = Binary(nil, "k", 1)
	assert.Equal(t, common.NotFound, m.Index)
	assert.Zero(t, m.Comparisons)
}

func TestBinaryFindsEveryPresentKey(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for n := 1; n <= 80; n++ {
		keys := make([]float64, n)
		acc := 0.0
		for i := range keys {
			acc += float64(rng.IntN(3)) // steps of 0 create duplicates
			keys[i] = acc
		}
		ds := makeDataset(keys...)
		for _, target := range keys {
			m := Binary(ds, "k", target)
			require.True(t, m.Found(), "n=%d target=%v", n, target)
			require.Equal(t, target, common.Numeric(ds[m.Index], "k"))
		}
		assert.False(t, Binary(ds, "k", -1).Found())
		assert.False(t, Binary(ds, "k", acc+0.5).Found())
	}
}

// Binary search trusts its caller: on unsorted input it may miss a key
// that is present.
func TestBinaryOnUnsortedInputMayMiss(t *testing.T) {
	ds := makeDataset(450, 300, 200, 150, 100)
	m := Binary(ds, "k", 450)
	assert.False(t, m.Found())
}

func TestMinMax(t *testing.T) {
	m := MinMax(makeDataset(5, 1, 9, 1), "k")
	require.True(t, m.OK)
	assert.Equal(t, 1.0, m.Min)
	assert.Equal(t, 9.0, m.Max)
	assert.Equal(t, int64(6), m.Comparisons)

	m = MinMax(makeDataset(7), "k")
	assert.True(t, m.OK)
	assert.Equal(t, 7.0, m.Min)
	assert.Equal(t, 7.0, m.Max)
	assert.Zero(t, m.Comparisons)

	m = MinMax(nil, "k")
	assert.False(t, m.OK)
	assert.Zero(t, m.Comparisons)
}

func TestMinMaxMatchesExhaustiveScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))
	for n := 1; n < 60; n++ {
		keys := make([]float64, n)
		for i := range keys {
			keys[i] = rng.Float64()*2000 - 1000
		}
		want := [2]float64{keys[0], keys[0]}
		for _, k := range keys {
			want[0] = min(want[0], k)
			want[1] = max(want[1], k)
		}
		m := MinMax(makeDataset(keys...), "k")
		assert.Equal(t, want[0], m.Min)
		assert.Equal(t, want[1], m.Max)
		assert.Equal(t, int64(2*(n-1)), m.Comparisons)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("MinMax")
	require.NoError(t, err)
	assert.Equal(t, KindMinMax, k)

	_, err = ParseKind("ternary")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
