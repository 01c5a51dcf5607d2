package types

import (
	"fmt"
	"strings"

	"kaffee/parser"
)

// MaxTracebackFrames caps how many calls an error remembers
const MaxTracebackFrames = 30

// Frame is one user function call an error unwound through
type Frame struct {
	Function string
	Call     parser.Position // position of the call expression
}

// Unwound records that the error propagated out of function name, which
// was called at pos. Frames accumulate innermost first.
func (e *Error) Unwound(name string, pos parser.Position) *Error {
	if len(e.Stack) < MaxTracebackFrames {
		e.Stack = append(e.Stack, Frame{Function: name, Call: pos})
	} else {
		e.Elided++
	}
	return e
}

// Traceback formats the error followed by the calls it left:
//
//	InvalidOperatorTypes at 1:27: cannot apply + to Number and String
//	  in add, called at 2:1
//	(End of traceback)
func (e *Error) Traceback() []string {
	lines := []string{e.Error()}
	for _, f := range e.Stack {
		lines = append(lines, fmt.Sprintf("  in %s, called at %s", f.Function, f.Call))
	}
	if e.Elided > 0 {
		lines = append(lines, fmt.Sprintf("  ... %d more calls", e.Elided))
	}
	return append(lines, "(End of traceback)")
}

// TracebackString returns the traceback as a single string with newlines
func (e *Error) TracebackString() string {
	return strings.Join(e.Traceback(), "\n")
}
