package types

import "kaffee/parser"

// StrValue represents a Kaffee string
type StrValue struct {
	val string
}

// NewStr creates a new string value
func NewStr(s string) StrValue {
	return StrValue{val: s}
}

// String returns the quoted literal, escaped so the lexer reads it back
func (s StrValue) String() string {
	return parser.QuoteString(s.val)
}

// Type returns the type code for strings
func (s StrValue) Type() TypeCode {
	return TYPE_STR
}

// Equal compares two strings byte for byte
func (s StrValue) Equal(other Value) bool {
	if o, ok := other.(StrValue); ok {
		return s.val == o.val
	}
	return false
}

// Value returns the internal string value
func (s StrValue) Value() string {
	return s.val
}

// Len returns the number of characters (runes) in the string
func (s StrValue) Len() int {
	n := 0
	for range s.val {
		n++
	}
	return n
}
