package types

import (
	"math"
	"strconv"
)

// NumberValue represents a Kaffee number (IEEE-754 double)
type NumberValue struct {
	Val float64
}

// NewNumber creates a new NumberValue
func NewNumber(val float64) NumberValue {
	return NumberValue{Val: val}
}

// Type returns the type code for numbers
func (n NumberValue) Type() TypeCode {
	return TYPE_NUMBER
}

// String returns the same text println writes
func (n NumberValue) String() string {
	return FormatNumber(n.Val)
}

// Equal uses float comparison, so NaN is never equal to anything
func (n NumberValue) Equal(other Value) bool {
	o, ok := other.(NumberValue)
	return ok && n.Val == o.Val
}

// IsInteger reports whether the number has no fractional part
func (n NumberValue) IsInteger() bool {
	return !math.IsInf(n.Val, 0) && n.Val == math.Trunc(n.Val)
}

// FormatNumber renders a float without exponent or trailing zeros:
// 11, 0.5, -3.25. Infinities print as inf and -inf.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
