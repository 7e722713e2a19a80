package common

import (
	"math"
	"strconv"
	"strings"
)

// KeyFunc projects a record onto the number used for ordering.
type KeyFunc func(r *Record) float64

// KeyOf binds Numeric to a field name.
func KeyOf(key string) KeyFunc {
	return func(r *Record) float64 {
		return Numeric(r, key)
	}
}

// Numeric returns the comparison value of r[key]. Numbers pass through,
// text is parsed as a float. Anything that does not yield a usable number
// (missing field, unparsable text, NaN) collapses to 0.
func Numeric(r *Record, key string) float64 {
	v, ok := r.Get(key)
	if !ok {
		return 0
	}
	if f, ok := v.Float(); ok {
		if math.IsNaN(f) {
			return 0
		}
		return f
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}
