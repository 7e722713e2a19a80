// Package analysis compares observed comparison counts with the growth
// classes the sorting algorithms are expected to follow.
package analysis

import (
	"math"
	"sort"
)

type Class string

const (
	Linear       Class = "n"
	Linearithmic Class = "n log n"
	Quadratic    Class = "n^2"
)

func Classes() []Class {
	return []Class{Linear, Linearithmic, Quadratic}
}

// Theory evaluates the growth function of c at n.
func (c Class) Theory(n int) float64 {
	x := float64(n)
	switch c {
	case Linear:
		return x
	case Linearithmic:
		if n < 2 {
			return 0
		}
		return x * math.Log2(x)
	case Quadratic:
		return x * x
	default:
		return 0
	}
}

// Point is one observation: dataset size and comparisons counted.
type Point struct {
	N           int
	Comparisons int64
}

// ClassFit is the least-squares fit of comparisons against one class.
type ClassFit struct {
	Class     Class
	Slope     float64
	Intercept float64
	R2        float64
}

// Fit regresses comparisons against every growth class and returns the
// fits ordered from best to worst R². Fewer than two distinct sizes give
// no signal and return nil.
func Fit(points []Point) []ClassFit {
	sizes := make(map[int]struct{})
	for _, p := range points {
		sizes[p.N] = struct{}{}
	}
	if len(sizes) < 2 {
		return nil
	}

	fits := make([]ClassFit, 0, len(Classes()))
	for _, c := range Classes() {
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for i, p := range points {
			xs[i] = c.Theory(p.N)
			ys[i] = float64(p.Comparisons)
		}
		lm := NewLinearModel()
		lm.Train(xs, ys)
		fits = append(fits, ClassFit{Class: c, Slope: lm.Slope, Intercept: lm.Intercept, R2: lm.R2()})
	}
	sort.SliceStable(fits, func(i, j int) bool { return fits[i].R2 > fits[j].R2 })
	return fits
}

// Best returns the class that explains points best.
func Best(points []Point) (ClassFit, bool) {
	fits := Fit(points)
	if len(fits) == 0 {
		return ClassFit{}, false
	}
	return fits[0], true
}

// Ratio is observed comparisons over the class's theoretical count.
func Ratio(comparisons int64, n int, c Class) float64 {
	t := c.Theory(n)
	if t == 0 {
		return 0
	}
	return float64(comparisons) / t
}
