package types

// BoolValue represents a Kaffee boolean
type BoolValue struct {
	Val bool
}

// Type returns the type code for booleans
func (b BoolValue) Type() TypeCode {
	return TYPE_BOOL
}

// String returns the literal representation
func (b BoolValue) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Equal checks value equality
func (b BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && b.Val == o.Val
}

// NewBool creates a new BoolValue
func NewBool(val bool) BoolValue {
	return BoolValue{Val: val}
}

// NullValue is the type of null
type NullValue struct{}

func (NullValue) Type() TypeCode { return TYPE_NULL }
func (NullValue) String() string { return "null" }

func (NullValue) Equal(other Value) bool {
	_, ok := other.(NullValue)
	return ok
}
