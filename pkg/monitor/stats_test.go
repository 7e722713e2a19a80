package monitor

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSort(t *testing.T) {
	s := NewRunStats(nil)
	s.RecordSort("insertion", 10, 4, "shifts", time.Millisecond)
	s.RecordSort("insertion", 5, 0, "shifts", time.Millisecond)
	s.RecordSort("merge", 12, 0, "none", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.sortRuns.WithLabelValues("insertion")))
	assert.Equal(t, 15.0, testutil.ToFloat64(s.sortComparisons.WithLabelValues("insertion")))
	assert.Equal(t, 4.0, testutil.ToFloat64(s.sortMovements.WithLabelValues("insertion", "shifts")))
	// merge reports no movement series
	assert.Equal(t, 1, testutil.CollectAndCount(s.sortMovements))
}

func TestSummary(t *testing.T) {
	s := NewRunStats(nil)
	s.RecordSort("heap", 100, 40, "exchanges", time.Millisecond)
	s.RecordSort("quick", 80, 30, "exchanges", time.Millisecond)
	s.RecordSearch("binary", "found", 3)
	s.RecordSearch("linear", "count", 100)
	s.RecordValidation(true)
	s.RecordValidation(false)

	sum, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2.0, sum.SortRuns)
	assert.Equal(t, 180.0, sum.SortComparisons)
	assert.Equal(t, 2.0, sum.SearchRuns)
	assert.Equal(t, 103.0, sum.SearchComparisons)
	assert.Equal(t, 2.0, sum.Validations)
	assert.Equal(t, uint64(1), sum.Failures)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRunStats(nil), NewRunStats(nil)
	a.RecordSearch("minmax", "range", 8)
	sum, err := b.Summary()
	require.NoError(t, err)
	assert.Zero(t, sum.SearchRuns)
	assert.NotSame(t, a.Registry(), b.Registry())
}
