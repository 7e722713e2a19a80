package common

import (
	"fmt"
	"sort"
	"strconv"
)

// Value is a single field of a Record: either a number or raw text.
type Value struct {
	num     float64
	text    string
	numeric bool
}

func Number(f float64) Value {
	return Value{num: f, numeric: true}
}

func Text(s string) Value {
	return Value{text: s}
}

// ValueOf widens Go scalars to a Value. Unknown types are stored as their
// fmt representation.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case string:
		return Text(x)
	default:
		return Text(fmt.Sprint(v))
	}
}

// Float returns the stored number; ok is false for text values.
func (v Value) Float() (float64, bool) {
	return v.num, v.numeric
}

func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// Record is one row of a Dataset. Algorithms only move records around;
// identity is the pointer.
type Record struct {
	fields map[string]Value
}

func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// FromMap builds a Record from loosely typed values, see ValueOf.
func FromMap(m map[string]any) *Record {
	r := &Record{fields: make(map[string]Value, len(m))}
	for k, v := range m {
		r.fields[k] = ValueOf(v)
	}
	return r
}

// Set stores v under name. The zero Record is ready to use.
func (r *Record) Set(name string, v Value) *Record {
	if r.fields == nil {
		r.fields = make(map[string]Value)
	}
	r.fields[name] = v
	return r
}

func (r *Record) Get(name string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.fields[name]
	return v, ok
}

// String returns the textual form of a field, or "" when absent.
func (r *Record) String(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return v.String()
}

// Fields returns the field names in lexical order.
func (r *Record) Fields() []string {
	names := make([]string, 0, len(r.fields))
	for k := range r.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Dataset is an ordered sequence of records.
type Dataset []*Record

func (d Dataset) Len() int {
	return len(d)
}

// Clone copies the slice, not the records.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Predicate selects records for the linear predicate search.
type Predicate func(r *Record) bool
