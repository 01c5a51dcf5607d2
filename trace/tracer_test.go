package trace

import (
	"bytes"
	"strings"
	"testing"

	"kaffee/types"
)

func TestTracerDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	Init(false, nil, &buf)
	Call("f", []string{"1"}, 0)
	Collect(1, 2)
	if buf.Len() != 0 {
		t.Errorf("disabled tracer wrote %q", buf.String())
	}
	if IsEnabled() {
		t.Error("IsEnabled() = true")
	}
}

func TestTracerEvents(t *testing.T) {
	var buf bytes.Buffer
	Init(true, nil, &buf)
	defer Init(false, nil, nil)

	Call("fib", []string{"3", `"x"`}, 1)
	Return("fib", "2", 1)
	Collect(4, 10)
	Error("fib", types.NewError(types.E_ARGS, "fib takes 1 argument"))

	want := []string{
		`[TRACE]   CALL fib(3, "x")`,
		`[TRACE]   RETURN fib => 2`,
		`[TRACE] GC freed=4 live=10`,
		`[TRACE] EXCEPTION fib ArityMismatch: fib takes 1 argument`,
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(got), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTracerFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(true, []string{"fib*"}, &buf)
	defer Init(false, nil, nil)

	Call("fibonacci", nil, 0)
	Call("main", nil, 0)
	Collect(0, 0)

	out := buf.String()
	if !strings.Contains(out, "CALL fibonacci()") {
		t.Errorf("matching call not traced: %q", out)
	}
	if strings.Contains(out, "main") || strings.Contains(out, "GC") {
		t.Errorf("filtered events traced: %q", out)
	}
}

func TestNilTracerIsSafe(t *testing.T) {
	globalTracer = nil
	Call("f", nil, 0)
	Return("f", "null", 0)
	Collect(0, 0)
	Error("f", types.NewError(types.E_CALL, ""))
}
