package types

import (
	"errors"
	"fmt"

	"kaffee/parser"
)

// ErrorCode identifies a runtime error kind
type ErrorCode int

const (
	E_NONE ErrorCode = iota

	// syntax
	E_SYNTAX

	// resolution
	E_UNRESOLVED  // UnresolvedIdentifier
	E_DUPDECL     // DuplicateDeclaration
	E_UNKNOWNPROP // UnknownProperty

	// type
	E_TYPE       // InvalidOperatorTypes
	E_COND       // NonBooleanCondition
	E_PROPACCESS // InvalidPropertyAccess
	E_INVIND     // InvalidIndex
	E_RANGE      // IndexOutOfRange
	E_STRINGIFY  // Unstringifyable

	// semantic
	E_CONST      // AssignmentToConstant
	E_DECLTARGET // InvalidDeclarationTarget
	E_INSERT     // InvalidInsertionTarget
	E_ARGS       // ArityMismatch
	E_CALL       // UncallableValue
	E_CONTROL    // ControlOutsideLoop

	// limit
	E_MAXREC // RecursionLimit

	// internal
	E_UNKNOWNREF // UnknownReference
	E_INPUT      // InputError
	E_INTERNAL   // InternalError
)

var errorNames = map[ErrorCode]string{
	E_NONE:        "None",
	E_SYNTAX:      "SyntaxError",
	E_UNRESOLVED:  "UnresolvedIdentifier",
	E_DUPDECL:     "DuplicateDeclaration",
	E_UNKNOWNPROP: "UnknownProperty",
	E_TYPE:        "InvalidOperatorTypes",
	E_COND:        "NonBooleanCondition",
	E_PROPACCESS:  "InvalidPropertyAccess",
	E_INVIND:      "InvalidIndex",
	E_RANGE:       "IndexOutOfRange",
	E_STRINGIFY:   "Unstringifyable",
	E_CONST:       "AssignmentToConstant",
	E_DECLTARGET:  "InvalidDeclarationTarget",
	E_INSERT:      "InvalidInsertionTarget",
	E_ARGS:        "ArityMismatch",
	E_CALL:        "UncallableValue",
	E_CONTROL:     "ControlOutsideLoop",
	E_MAXREC:      "RecursionLimit",
	E_UNKNOWNREF:  "UnknownReference",
	E_INPUT:       "InputError",
	E_INTERNAL:    "InternalError",
}

// String returns the taxonomy name, e.g. DuplicateDeclaration
func (e ErrorCode) String() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// Message returns a human-readable message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_SYNTAX:
		return "Syntax error"
	case E_UNRESOLVED:
		return "Unresolved identifier"
	case E_DUPDECL:
		return "Duplicate declaration"
	case E_UNKNOWNPROP:
		return "Unknown property"
	case E_TYPE:
		return "Invalid operand types"
	case E_COND:
		return "Condition is not a boolean"
	case E_PROPACCESS:
		return "Invalid property access"
	case E_INVIND:
		return "Invalid index"
	case E_RANGE:
		return "Index out of range"
	case E_STRINGIFY:
		return "Value cannot be stringified"
	case E_CONST:
		return "Assignment to constant"
	case E_DECLTARGET:
		return "Invalid declaration target"
	case E_INSERT:
		return "Invalid insertion target"
	case E_ARGS:
		return "Incorrect number of arguments"
	case E_CALL:
		return "Value is not callable"
	case E_CONTROL:
		return "break or continue outside a loop"
	case E_MAXREC:
		return "Too many nested calls"
	case E_UNKNOWNREF:
		return "Unknown heap reference"
	case E_INPUT:
		return "Input error"
	case E_INTERNAL:
		return "Internal error"
	default:
		return "Unknown error"
	}
}

// ErrorFromString converts a taxonomy name like "ArityMismatch" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	for code, name := range errorNames {
		if name == s {
			return code, true
		}
	}
	return E_NONE, false
}

// Category groups error codes for reporting and process exit status
type Category int

const (
	CAT_NONE Category = iota
	CAT_SYNTAX
	CAT_RESOLUTION
	CAT_TYPE
	CAT_SEMANTIC
	CAT_LIMIT
	CAT_INTERNAL
)

func (c Category) String() string {
	switch c {
	case CAT_SYNTAX:
		return "syntax"
	case CAT_RESOLUTION:
		return "resolution"
	case CAT_TYPE:
		return "type"
	case CAT_SEMANTIC:
		return "semantic"
	case CAT_LIMIT:
		return "limit"
	case CAT_INTERNAL:
		return "internal"
	default:
		return "none"
	}
}

// Category returns the group an error code belongs to
func (e ErrorCode) Category() Category {
	switch e {
	case E_NONE:
		return CAT_NONE
	case E_SYNTAX:
		return CAT_SYNTAX
	case E_UNRESOLVED, E_DUPDECL, E_UNKNOWNPROP:
		return CAT_RESOLUTION
	case E_TYPE, E_COND, E_PROPACCESS, E_INVIND, E_RANGE, E_STRINGIFY:
		return CAT_TYPE
	case E_CONST, E_DECLTARGET, E_INSERT, E_ARGS, E_CALL, E_CONTROL:
		return CAT_SEMANTIC
	case E_MAXREC:
		return CAT_LIMIT
	default:
		return CAT_INTERNAL
	}
}

// Error is a runtime error with the source position of the node that raised it
type Error struct {
	Code   ErrorCode
	Pos    parser.Position
	Detail string

	// User function calls the error unwound through, innermost first
	Stack  []Frame
	Elided int

	cause error
}

// NewError creates an error without a position; the evaluator fills it in
func NewError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Pos.Line > 0 {
		msg += " at " + e.Pos.String()
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// At sets the position if none is recorded yet. The innermost node that
// raised the error wins.
func (e *Error) At(pos parser.Position) *Error {
	if e.Pos.Line == 0 {
		e.Pos = pos
	}
	return e
}

// FromSyntaxError wraps a lexer/parser failure as an E_SYNTAX error
func FromSyntaxError(err *parser.SyntaxError) *Error {
	return &Error{Code: E_SYNTAX, Pos: err.Pos, Detail: err.Msg, cause: err}
}

// AsError extracts a *Error from err, wrapping syntax errors and treating
// anything else as an internal failure.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var syn *parser.SyntaxError
	if errors.As(err, &syn) {
		return FromSyntaxError(syn)
	}
	return &Error{Code: E_INTERNAL, Detail: err.Error(), cause: err}
}
