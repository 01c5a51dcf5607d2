package types

import (
	"fmt"

	"kaffee/parser"
)

// FunctionValue is a user-defined function. It captures no environment:
// free names in the body resolve against the scope stack at call time.
type FunctionValue struct {
	Name   string // declared name, empty for function literals
	Params []string
	Body   []parser.Stmt
}

func (f FunctionValue) Type() TypeCode { return TYPE_FUNCTION }

// String renders the function as an anonymous function literal
func (f FunctionValue) String() string {
	return parser.UnparseFunction(f.Params, f.Body)
}

// Equal compares parameter lists and bodies structurally. The name is
// not part of a function's identity.
func (f FunctionValue) Equal(other Value) bool {
	o, ok := other.(FunctionValue)
	if !ok || len(f.Params) != len(o.Params) {
		return false
	}
	for i := range f.Params {
		if f.Params[i] != o.Params[i] {
			return false
		}
	}
	return parser.Unparse(f.Body) == parser.Unparse(o.Body)
}

// DisplayName is the name used in traces and error details
func (f FunctionValue) DisplayName() string {
	if f.Name == "" {
		return "<anonymous>"
	}
	return f.Name
}

// Arity returns the number of parameters
func (f FunctionValue) Arity() int {
	return len(f.Params)
}

// NativeFunc is the host side of a native function. Arguments are fully
// evaluated and their count already checked against the declared arity.
type NativeFunc func(ctx *CallContext, args []Value) Result

// NativeFuncValue is a host-implemented function exposed to programs
type NativeFuncValue struct {
	Name  string
	Arity int
	Fn    NativeFunc
}

func (n NativeFuncValue) Type() TypeCode { return TYPE_NATIVE }

func (n NativeFuncValue) String() string {
	return fmt.Sprintf("<native %s/%d>", n.Name, n.Arity)
}

// Equal compares natives by name only
func (n NativeFuncValue) Equal(other Value) bool {
	o, ok := other.(NativeFuncValue)
	return ok && n.Name == o.Name
}
