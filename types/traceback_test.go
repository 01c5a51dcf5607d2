package types

import (
	"testing"

	"kaffee/parser"
)

func TestTraceback(t *testing.T) {
	err := NewError(E_TYPE, "cannot apply + to Number and String")
	err.At(parser.Position{Line: 1, Column: 27})
	err.Unwound("add", parser.Position{Line: 2, Column: 1})
	err.Unwound("outer", parser.Position{Line: 5, Column: 3})

	want := "InvalidOperatorTypes at 1:27: cannot apply + to Number and String\n" +
		"  in add, called at 2:1\n" +
		"  in outer, called at 5:3\n" +
		"(End of traceback)"
	if got := err.TracebackString(); got != want {
		t.Errorf("traceback =\n%s\nwant\n%s", got, want)
	}
}

func TestTracebackIsCapped(t *testing.T) {
	err := NewError(E_MAXREC, "too deep")
	for i := 0; i < MaxTracebackFrames+7; i++ {
		err.Unwound("f", parser.Position{Line: 1, Column: 1})
	}
	if len(err.Stack) != MaxTracebackFrames || err.Elided != 7 {
		t.Fatalf("stack = %d frames, elided %d", len(err.Stack), err.Elided)
	}
	lines := err.Traceback()
	if got := lines[len(lines)-2]; got != "  ... 7 more calls" {
		t.Errorf("elision line = %q", got)
	}
}

func TestTracebackWithoutCalls(t *testing.T) {
	lines := NewError(E_UNRESOLVED, "x").Traceback()
	if len(lines) != 2 || lines[1] != "(End of traceback)" {
		t.Errorf("traceback = %q", lines)
	}
}
