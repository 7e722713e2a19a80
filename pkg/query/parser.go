package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sortbench/pkg/common"
)

var ErrSyntax = errors.New("query syntax")

// Condition compares one field against a literal. Numeric literals compare
// through the key accessor; anything else compares the field's text.
type Condition struct {
	Field   string
	Op      string
	Value   string
	Num     float64
	Numeric bool
}

// Filter is a conjunction of conditions.
type Filter struct {
	Source     string
	Conditions []Condition
}

var (
	condRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*(=|!=|>=|<=|>|<)\s*(?:"([^"]*)"|'([^']*)'|([^\s"']+))\s*`)
	andRe  = regexp.MustCompile(`(?i)^AND\s+`)
)

// Parse parses filters like:
// "commune = PARIS"
// "type_local = Maison AND commune = PARIS"
// "prix >= 200000 and nb_pieces = 3"
// "commune = 'SAINT DENIS'"
// Quoted literals always compare as text.
func Parse(s string) (*Filter, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return nil, fmt.Errorf("%w: empty filter", ErrSyntax)
	}

	f := &Filter{Source: rest}
	for {
		m := condRe.FindStringSubmatchIndex(rest)
		if m == nil {
			return nil, fmt.Errorf("%w: expected <field> <op> <value> at %q", ErrSyntax, rest)
		}
		c, err := condition(rest, m)
		if err != nil {
			return nil, err
		}
		f.Conditions = append(f.Conditions, c)

		rest = rest[m[1]:]
		if rest == "" {
			return f, nil
		}
		loc := andRe.FindStringIndex(rest)
		if loc == nil {
			return nil, fmt.Errorf("%w: expected AND at %q", ErrSyntax, rest)
		}
		rest = rest[loc[1]:]
	}
}

func condition(s string, m []int) (Condition, error) {
	group := func(i int) (string, bool) {
		if m[2*i] < 0 {
			return "", false
		}
		return s[m[2*i]:m[2*i+1]], true
	}
	field, _ := group(1)
	op, _ := group(2)
	c := Condition{Field: field, Op: op}

	if v, ok := group(3); ok {
		c.Value = v
	} else if v, ok := group(4); ok {
		c.Value = v
	} else {
		c.Value, _ = group(5)
		if n, err := strconv.ParseFloat(c.Value, 64); err == nil {
			c.Num, c.Numeric = n, true
		}
	}

	if !c.Numeric && op != "=" && op != "!=" {
		return c, fmt.Errorf("%w: operator %s needs a numeric value, got %q", ErrSyntax, op, c.Value)
	}
	return c, nil
}

func (c Condition) Match(r *common.Record) bool {
	if !c.Numeric {
		eq := r.String(c.Field) == c.Value
		if c.Op == "!=" {
			return !eq
		}
		return eq
	}
	v := common.Numeric(r, c.Field)
	switch c.Op {
	case "=":
		return v == c.Num
	case "!=":
		return v != c.Num
	case ">":
		return v > c.Num
	case "<":
		return v < c.Num
	case ">=":
		return v >= c.Num
	case "<=":
		return v <= c.Num
	default:
		return false
	}
}

func (f *Filter) Match(r *common.Record) bool {
	for _, c := range f.Conditions {
		if !c.Match(r) {
			return false
		}
	}
	return true
}

// Predicate adapts the filter for linear search.
func (f *Filter) Predicate() common.Predicate {
	return f.Match
}

func (f *Filter) String() string {
	return f.Source
}
