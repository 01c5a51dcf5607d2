package types

import "strings"

// ObjectValue is an ordered set of key/value pairs. Keys and values are
// heap indices; each key slot holds a constant String.
type ObjectValue struct {
	Keys []Index
	Vals []Index
}

// NewObject creates an object from parallel key and value index lists
func NewObject(keys, vals []Index) ObjectValue {
	return ObjectValue{Keys: keys, Vals: vals}
}

func (o ObjectValue) Type() TypeCode { return TYPE_OBJECT }

func (o ObjectValue) String() string {
	pairs := make([]string, len(o.Keys))
	for i := range o.Keys {
		pairs[i] = o.Keys[i].String() + ": " + o.Vals[i].String()
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// Equal reports whether both objects hold the same slots in the same order
func (o ObjectValue) Equal(other Value) bool {
	ov, ok := other.(ObjectValue)
	return ok && indicesEqual(o.Keys, ov.Keys) && indicesEqual(o.Vals, ov.Vals)
}

// Len returns the number of entries
func (o ObjectValue) Len() int {
	return len(o.Keys)
}

// Insert returns a copy of the object with one more entry.
// The receiver's index lists are not modified.
func (o ObjectValue) Insert(key, val Index) ObjectValue {
	keys := make([]Index, len(o.Keys), len(o.Keys)+1)
	copy(keys, o.Keys)
	vals := make([]Index, len(o.Vals), len(o.Vals)+1)
	copy(vals, o.Vals)
	return ObjectValue{Keys: append(keys, key), Vals: append(vals, val)}
}

// Members returns every index the object refers to, keys first
func (o ObjectValue) Members() []Index {
	out := make([]Index, 0, len(o.Keys)+len(o.Vals))
	out = append(out, o.Keys...)
	return append(out, o.Vals...)
}

// ArrayValue is an ordered list of element indices
type ArrayValue struct {
	Elems []Index
}

// NewArray creates an array over the given element indices
func NewArray(elems []Index) ArrayValue {
	return ArrayValue{Elems: elems}
}

func (a ArrayValue) Type() TypeCode { return TYPE_ARRAY }

func (a ArrayValue) String() string {
	return "[" + joinIndices(a.Elems) + "]"
}

// Equal reports whether both arrays hold the same slots in the same order
func (a ArrayValue) Equal(other Value) bool {
	ov, ok := other.(ArrayValue)
	return ok && indicesEqual(a.Elems, ov.Elems)
}

// Len returns the number of elements
func (a ArrayValue) Len() int {
	return len(a.Elems)
}

// Append returns a new array with ix added at the end
func (a ArrayValue) Append(ix Index) ArrayValue {
	elems := make([]Index, len(a.Elems), len(a.Elems)+1)
	copy(elems, a.Elems)
	return ArrayValue{Elems: append(elems, ix)}
}

// Members returns the element indices
func (a ArrayValue) Members() []Index {
	return a.Elems
}

// Members returns the heap indices a value refers to directly.
// Scalars and functions refer to none.
func Members(v Value) []Index {
	switch v := v.(type) {
	case ObjectValue:
		return v.Members()
	case ArrayValue:
		return v.Members()
	}
	return nil
}
