package eval

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"kaffee/types"
)

// newTestEvaluator returns an evaluator that reads input and captures output
func newTestEvaluator(input string) (*Evaluator, *bytes.Buffer) {
	var out bytes.Buffer
	opts := DefaultOptions()
	opts.Out = &out
	opts.In = strings.NewReader(input)
	return NewEvaluator(opts), &out
}

// run evaluates code on a fresh evaluator and renders the program value
func run(t *testing.T, code string) (string, string, error) {
	t.Helper()
	e, out := newTestEvaluator("")
	v, err := e.EvalProgram(code)
	if err != nil {
		return "", out.String(), err
	}
	return e.Heap().Inspect(v), out.String(), nil
}

func errCode(err error) types.ErrorCode {
	var rtErr *types.Error
	if errors.As(err, &rtErr) {
		return rtErr.Code
	}
	return types.E_NONE
}

func TestEvalExpressions(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"42", "42"},
		{"3.5", "3.5"},
		{`"hello"`, `"hello"`},
		{"true", "true"},
		{"null", "null"},
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"10 - 4 - 3", "3"},
		{"7 / 2", "3.5"},
		{"7 % 3", "1"},
		{"-7 % 3", "-1"},
		{"2 ** 3 ** 2", "512"},
		{"-2 ** 2", "4"},
		{"1 / 0", "inf"},
		{"-1 / 0", "-inf"},
		{"0 / 0", "NaN"},
		{"0 / 0 == 0 / 0", "false"},
		{`"a" + "b"`, `"ab"`},
		{"1 < 2", "true"},
		{"2 <= 2", "true"},
		{"1 > 2", "false"},
		{"3 >= 4", "false"},
		{"!true", "false"},
		{"1 == 1", "true"},
		{`1 == "1"`, "false"},
		{"null == null", "true"},
		{"null != false", "true"},
		{"[1, 2] == [1, 2]", "true"},
		{"[1, 2] == [2, 1]", "false"},
		{"{a: 1, b: 2} == {b: 2, a: 1}", "true"},
		{"{a: 1} == {a: 1, b: 2}", "false"},
		{"{a: [1, {b: 2}]} == {a: [1, {b: 2}]}", "true"},
		{"true && false", "false"},
		{"false || true", "true"},
		{"false && false", "false"},
		{"true || true", "true"},
		{"[1, [2, 3]]", "[1, [2, 3]]"},
		{`{a: 1, "b c": "d"}`, `{a: 1, "b c": "d"}`},
		{"[1, 2, 3][1]", "2"},
		{"{a: {b: 5}}.a.b", "5"},
		{`{a: 1}["a"]`, "1"},
		{"function (a, b) { return a }", "<function <anonymous>/2>"},
		{"println == println", "true"},
		{"println == len", "false"},
		{"function (a) { return a } == function (a) { return a }", "true"},
		{"function (a) { return a } == function (b) { return b }", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, _, err := run(t, "let result = "+tt.expr+"\nresult")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("%s = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want types.ErrorCode
	}{
		{"syntax", "let = 1", types.E_SYNTAX},
		{"unresolved read", "y", types.E_UNRESOLVED},
		{"unresolved assign", "y = 1", types.E_UNRESOLVED},
		{"duplicate", "let x = 1; let x = 2", types.E_DUPDECL},
		{"duplicate native", "let println = 1", types.E_DUPDECL},
		{"missing key", "let o = {}; o.a", types.E_UNKNOWNPROP},
		{"add mismatch", `1 + "a"`, types.E_TYPE},
		{"subtract strings", `"a" - "b"`, types.E_TYPE},
		{"compare strings", `"a" < "b"`, types.E_TYPE},
		{"negate string", `-"a"`, types.E_TYPE},
		{"not number", "!1", types.E_TYPE},
		{"and left", "1 && true", types.E_TYPE},
		{"and right", "true && 1", types.E_TYPE},
		{"or right", "false || null", types.E_TYPE},
		{"and decided by left", "false && 1", types.E_TYPE},
		{"or decided by left", `true || "x"`, types.E_TYPE},
		{"and right unresolved", "false && undefined", types.E_UNRESOLVED},
		{"if condition", "if 1 { }", types.E_COND},
		{"while condition", "while null { }", types.E_COND},
		{"member of number", "let x = 1; x.a", types.E_PROPACCESS},
		{"index of string", `"abc"[0]`, types.E_PROPACCESS},
		{"fractional index", "let a = [1]; a[0.5]", types.E_INVIND},
		{"string index on array", `let a = [1]; a["k"]`, types.E_INVIND},
		{"number key on object", "let o = {a: 1}; o[0]", types.E_INVIND},
		{"index past end", "let a = [1]; a[1]", types.E_RANGE},
		{"negative index", "let a = [1]; a[-1]", types.E_RANGE},
		{"stringify null", "println(null)", types.E_STRINGIFY},
		{"stringify array", "stringify([1])", types.E_STRINGIFY},
		{"assign const", "const c = 1; c = 2", types.E_CONST},
		{"assign function", "function f() {}; f = 1", types.E_CONST},
		{"declare member", "let a.b = 1", types.E_DECLTARGET},
		{"insert through missing", "let o = {}; o.a.b = 1", types.E_INSERT},
		{"grow array", "let a = [1]; a[1] = 2", types.E_INSERT},
		{"insert into temporary", "let f = function () { return {} }; f().x = 1", types.E_INSERT},
		{"arity native", "println()", types.E_ARGS},
		{"arity user", "function f(a) {}; f(1, 2)", types.E_ARGS},
		{"call number", "let n = 1; n()", types.E_CALL},
		{"call null", "null()", types.E_CALL},
		{"break at top level", "break", types.E_CONTROL},
		{"continue at top level", "continue", types.E_CONTROL},
		{"break out of function", "function f() { break }; while true { f() }", types.E_CONTROL},
		{"len of number", "len(1)", types.E_TYPE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.code)
			if err == nil {
				t.Fatalf("expected %s, got no error", tt.want)
			}
			if got := errCode(err); got != tt.want {
				t.Errorf("error = %v (%s), want %s", err, got, tt.want)
			}
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, _, err := run(t, "let x = 1\n\nlet y = x.a")
	var rtErr *types.Error
	if !errors.As(err, &rtErr) {
		t.Fatalf("error = %v, want *types.Error", err)
	}
	if rtErr.Pos.Line != 3 {
		t.Errorf("error line = %d, want 3", rtErr.Pos.Line)
	}
	if rtErr.Code.Category() != types.CAT_TYPE {
		t.Errorf("category = %s, want type", rtErr.Code.Category())
	}
}

func TestNativeFunctions(t *testing.T) {
	e, out := newTestEvaluator("first line\nsecond\n")
	code := `
let line = input()
println(line)
println(stringify(1.5) + "!")
println(len("four"))
println(typeof(println))
println(typeof({}))
let a = []
a = append(a, 1)
a = append(a, "x")
a`
	v, err := e.EvalProgram(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Heap().Inspect(v); got != `[1, "x"]` {
		t.Errorf("value = %s", got)
	}
	want := "first line\n1.5!\n4\nNativeFunction\nObject\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestAppendLeavesOriginal(t *testing.T) {
	got, _, err := run(t, "let a = [1]\nlet b = append(a, 2)\nlet lens = [len(a), len(b)]\nlens")
	if err != nil {
		t.Fatal(err)
	}
	if got != "[1, 2]" {
		t.Errorf("lengths = %s, want [1, 2]", got)
	}
}

func TestGCStatsNative(t *testing.T) {
	got, _, err := run(t, "{ let junk = [1, 2, 3] }\nlet s = gc_stats()\nlet checks = [typeof(s.live), s.collections > 0, s.freed >= 4]\nchecks")
	if err != nil {
		t.Fatal(err)
	}
	if got != `["Number", true, true]` {
		t.Errorf("gc_stats checks = %s", got)
	}
}

func TestLookup(t *testing.T) {
	e, _ := newTestEvaluator("")
	if _, err := e.EvalProgram("let x = 3 + 4 * 2"); err != nil {
		t.Fatal(err)
	}
	v, ok := e.Lookup("x")
	if !ok || !v.Equal(types.NewNumber(11)) {
		t.Errorf("x = %v, want 11", v)
	}
	if _, ok := e.Lookup("nope"); ok {
		t.Error("Lookup found an undeclared name")
	}
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	e, _ := newTestEvaluator("")
	if _, err := e.EvalProgram("let count = 1"); err != nil {
		t.Fatal(err)
	}

	// A failed run unwinds its frames but keeps globals
	_, err := e.EvalProgram("{ let inner = 1; count = count + 1; undefined }")
	if errCode(err) != types.E_UNRESOLVED {
		t.Fatalf("error = %v, want UnresolvedIdentifier", err)
	}
	if e.Scopes().Depth() != 1 {
		t.Errorf("depth after error = %d, want 1", e.Scopes().Depth())
	}
	if _, err := e.EvalProgram("inner"); errCode(err) != types.E_UNRESOLVED {
		t.Errorf("block binding leaked: %v", err)
	}

	v, err := e.EvalProgram("count")
	if err != nil || !v.Equal(types.NewNumber(2)) {
		t.Errorf("count = %v, %v, want 2", v, err)
	}
}

func TestErrorTraceback(t *testing.T) {
	_, _, err := run(t, "function inner(x) { return x + \"s\" }\nfunction outer() { return inner(1) }\nlet r = outer()")
	var rtErr *types.Error
	if !errors.As(err, &rtErr) {
		t.Fatalf("error = %v, want *types.Error", err)
	}
	if len(rtErr.Stack) != 2 {
		t.Fatalf("stack = %+v, want 2 frames", rtErr.Stack)
	}
	if rtErr.Stack[0].Function != "inner" || rtErr.Stack[0].Call.Line != 2 {
		t.Errorf("innermost frame = %+v", rtErr.Stack[0])
	}
	if rtErr.Stack[1].Function != "outer" || rtErr.Stack[1].Call.Line != 3 {
		t.Errorf("outer frame = %+v", rtErr.Stack[1])
	}
	if rtErr.Pos.Line != 1 {
		t.Errorf("error raised at %s, want line 1", rtErr.Pos)
	}
}

func TestLogicalOperandsAlwaysEvaluated(t *testing.T) {
	got, _, err := run(t, "let n = 0\nfunction bump() { n = n + 1; return true }\nlet a = false && bump()\nlet b = true || bump()\nn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2" {
		t.Errorf("bump ran %s times, want 2", got)
	}
}
