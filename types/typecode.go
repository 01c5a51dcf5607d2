package types

// TypeCode identifies the variant of a Value
type TypeCode int

const (
	TYPE_NUMBER TypeCode = iota
	TYPE_STR
	TYPE_BOOL
	TYPE_NULL
	TYPE_NATIVE
	TYPE_OBJECT
	TYPE_ARRAY
	TYPE_FUNCTION
)

// String returns the type name as reported by typeof() and in error details
func (t TypeCode) String() string {
	switch t {
	case TYPE_NUMBER:
		return "Number"
	case TYPE_STR:
		return "String"
	case TYPE_BOOL:
		return "Boolean"
	case TYPE_NULL:
		return "Null"
	case TYPE_NATIVE:
		return "NativeFunction"
	case TYPE_OBJECT:
		return "Object"
	case TYPE_ARRAY:
		return "Array"
	case TYPE_FUNCTION:
		return "Function"
	default:
		return "Unknown"
	}
}

// IsComposite reports whether values of this type hold heap indices
func (t TypeCode) IsComposite() bool {
	return t == TYPE_OBJECT || t == TYPE_ARRAY
}

// IsCallable reports whether values of this type can be called
func (t TypeCode) IsCallable() bool {
	return t == TYPE_NATIVE || t == TYPE_FUNCTION
}
