package eval

import (
	"bytes"
	"strings"
	"testing"

	"kaffee/gc"
	"kaffee/trace"
	"kaffee/types"
)

func mustRun(t *testing.T, e *Evaluator, code string) types.Value {
	t.Helper()
	v, err := e.EvalProgram(code)
	if err != nil {
		t.Fatalf("%q failed: %v", code, err)
	}
	return v
}

func TestBlockExitReleasesLocals(t *testing.T) {
	e, _ := newTestEvaluator("")
	mustRun(t, e, "let keep = [1, 2]")
	before := e.Heap().Len()

	mustRun(t, e, "{ let tmp = {a: [3, 4]}; let more = [tmp, tmp] }")
	if got := e.Heap().Len(); got != before {
		t.Errorf("live slots after block = %d, want %d", got, before)
	}

	v := mustRun(t, e, "keep")
	if got := e.Heap().Inspect(v); got != "[1, 2]" {
		t.Errorf("keep = %s after collection", got)
	}
}

func TestCallFrameIsCollected(t *testing.T) {
	e, _ := newTestEvaluator("")
	mustRun(t, e, "function f(a, b) { let c = [a, b, {d: a}]; return null }")
	before := e.Heap().Len()

	mustRun(t, e, "f(1, 2)")
	if got := e.Heap().Len(); got != before {
		t.Errorf("live slots after call = %d, want %d", got, before)
	}
}

func TestReturnedCompositeSurvivesFramePop(t *testing.T) {
	e, _ := newTestEvaluator("")
	v := mustRun(t, e, "function mk() { let local = [1, [2, 3]]; return local }\nlet r = mk()\nr[1][1]")
	if !v.Equal(types.NewNumber(3)) {
		t.Errorf("r[1][1] = %s, want 3", v)
	}
}

func TestInFlightValuesArePinned(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "call arguments",
			code: "pair(mk(), mk())",
			want: "4",
		},
		{
			name: "left operand",
			code: "let same = [1, 2] == mk()\nsame",
			want: "true",
		},
		{
			name: "literal under construction",
			code: "let o = {a: [1], b: mk(), c: [mk()]}\no",
			want: "{a: [1], b: [1, 2], c: [[1, 2]]}",
		},
		{
			name: "indexed container",
			code: "let a = [10, 20]\nlet v = a[mk()[0]]\nv",
			want: "20",
		},
		{
			name: "assigned value",
			code: "let o = {}\no[stringify(mk()[1])] = [5]\no",
			want: `{"2": [5]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEvaluator("")
			// mk runs a block, and so a collection, before returning
			mustRun(t, e, `
function mk() { { let junk = [0] }; return [1, 2] }
function pair(a, b) { return a[1] + b[1] }`)
			v := mustRun(t, e, tt.code)
			if got := e.Heap().Inspect(v); got != tt.want {
				t.Errorf("value = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestShallowCollectionDangles(t *testing.T) {
	code := "let keep = null\n{ let t = [[[5]]]; keep = t[0] }\nkeep[0][0]"

	opts := DefaultOptions()
	opts.Out = &bytes.Buffer{}
	e := NewEvaluator(opts)
	v := mustRun(t, e, code)
	if !v.Equal(types.NewNumber(5)) {
		t.Errorf("transitive: keep[0][0] = %s, want 5", v)
	}

	opts.GCMode = gc.Shallow
	e = NewEvaluator(opts)
	_, err := e.EvalProgram(code)
	if errCode(err) != types.E_UNKNOWNREF {
		t.Errorf("shallow: error = %v, want UnknownReference", err)
	}
	if types.E_UNKNOWNREF.Category() != types.CAT_INTERNAL {
		t.Error("UnknownReference should be an internal error")
	}
}

func TestCollectionsCounted(t *testing.T) {
	e, _ := newTestEvaluator("")
	mustRun(t, e, "function f() { { } }\nf()")
	// inner block, function body block, call return, end of run
	if got := e.Collector().Totals().Collections; got != 4 {
		t.Errorf("collections = %d, want 4", got)
	}
}

func TestCallsAreTraced(t *testing.T) {
	var buf bytes.Buffer
	trace.Init(true, []string{"fib"}, &buf)
	defer trace.Init(false, nil, nil)

	e, _ := newTestEvaluator("")
	mustRun(t, e, "function fib(n) { if n < 2 return n; return fib(n - 1) + fib(n - 2) }\nfib(2)")

	out := buf.String()
	for _, want := range []string{
		"[TRACE] CALL fib(2)\n",
		"[TRACE]   CALL fib(1)\n",
		"[TRACE]   RETURN fib => 0\n",
		"[TRACE] RETURN fib => 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GC") {
		t.Errorf("collections should be filtered out:\n%s", out)
	}
}
