package sorting

import (
	"math/rand/v2"

	"sortbench/pkg/common"
)

// Counter accumulates operation counts across the helpers of one run.
// It is passed by pointer; nothing else holds it.
type Counter struct {
	Comparisons int64
	Movements   int64
}

func (c *Counter) compare() {
	c.Comparisons++
}

func (c *Counter) move() {
	c.Movements++
}

// swap exchanges two positions and records one movement.
func (c *Counter) swap(data common.Dataset, i, j int) {
	data[i], data[j] = data[j], data[i]
	c.Movements++
}

// Picker chooses a pivot index in [lo, hi].
type Picker interface {
	Pick(lo, hi int) int
}

type randPicker struct {
	rng *rand.Rand
}

// NewPicker returns a seeded Picker; equal seeds give equal pivot sequences.
func NewPicker(seed uint64) Picker {
	return &randPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

func (p *randPicker) Pick(lo, hi int) int {
	return lo + p.rng.IntN(hi-lo+1)
}

// HighPicker always picks hi, which turns quicksort into plain Lomuto.
type HighPicker struct{}

func (HighPicker) Pick(_, hi int) int {
	return hi
}
