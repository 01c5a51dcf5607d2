package types

import (
	"fmt"
	"strings"
)

// Index identifies a heap slot. Indices are issued in increasing order
// and never reused within a run.
type Index uint64

// String renders the index the way heap dumps show it
func (i Index) String() string {
	return fmt.Sprintf("#%d", uint64(i))
}

// Value is the interface all Kaffee values implement.
// The set of implementations is closed: NumberValue, StrValue, BoolValue,
// NullValue, NativeFuncValue, ObjectValue, ArrayValue and FunctionValue.
type Value interface {
	Type() TypeCode
	String() string   // Literal representation; composites show member indices
	Equal(Value) bool // Shallow equality; composites compare index lists
}

// Null is the single null value
var Null Value = NullValue{}

// indicesEqual compares two index lists element by element
func indicesEqual(a, b []Index) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinIndices(idx []Index) string {
	parts := make([]string, len(idx))
	for i, ix := range idx {
		parts[i] = ix.String()
	}
	return strings.Join(parts, ", ")
}
