package types

import (
	"math"
	"testing"

	"kaffee/parser"
)

func TestTypeCodes(t *testing.T) {
	tests := []struct {
		val  Value
		name string
	}{
		{NewNumber(1), "Number"},
		{NewStr("s"), "String"},
		{NewBool(true), "Boolean"},
		{Null, "Null"},
		{NativeFuncValue{Name: "len", Arity: 1}, "NativeFunction"},
		{NewObject(nil, nil), "Object"},
		{NewArray(nil), "Array"},
		{FunctionValue{}, "Function"},
	}

	for _, tt := range tests {
		if got := tt.val.Type().String(); got != tt.name {
			t.Errorf("%T: type name %q, want %q", tt.val, got, tt.name)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{11, "11"},
		{0, "0"},
		{-3.25, "-3.25"},
		{0.1, "0.1"},
		{1e21, "1000000000000000000000"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScalarEquality(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{NewNumber(1), NewNumber(1), true},
		{NewNumber(1), NewNumber(2), false},
		{NewNumber(math.NaN()), NewNumber(math.NaN()), false},
		{NewStr("a"), NewStr("a"), true},
		{NewStr("a"), NewStr("A"), false},
		{NewBool(true), NewBool(true), true},
		{NewBool(true), NewBool(false), false},
		{Null, Null, true},
		{Null, NewBool(false), false},
		{NewNumber(0), NewBool(false), false},
		{NewStr("1"), NewNumber(1), false},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s == %s: got %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNativeEqualityByName(t *testing.T) {
	a := NativeFuncValue{Name: "len", Arity: 1}
	b := NativeFuncValue{Name: "len", Arity: 2}
	c := NativeFuncValue{Name: "println", Arity: 1}
	if !a.Equal(b) {
		t.Error("natives with the same name should be equal")
	}
	if a.Equal(c) {
		t.Error("natives with different names should differ")
	}
}

func TestFunctionEquality(t *testing.T) {
	fn := func(src string) FunctionValue {
		stmts, err := parser.Parse(src)
		if err != nil {
			t.Fatal(err)
		}
		f := stmts[0].(*parser.FunctionStmt)
		return FunctionValue{Name: f.Name, Params: f.Params, Body: f.Body}
	}

	a := fn("function f(x) { return x + 1 }")
	b := fn("function g(x) {\n  return x+1;\n}")
	c := fn("function f(y) { return y + 1 }")
	d := fn("function f(x) { return x + 2 }")

	if !a.Equal(b) {
		t.Error("same params and body should be equal regardless of name and layout")
	}
	if a.Equal(c) {
		t.Error("different parameter names should differ")
	}
	if a.Equal(d) {
		t.Error("different bodies should differ")
	}
	if got := a.String(); got != "function(x) {\n  return x + 1;\n}" {
		t.Errorf("String() = %q", got)
	}
	if (FunctionValue{}).DisplayName() != "<anonymous>" {
		t.Error("unnamed function should display as <anonymous>")
	}
}

func TestCompositeCopies(t *testing.T) {
	obj := NewObject([]Index{1}, []Index{2})
	grown := obj.Insert(3, 4)
	if obj.Len() != 1 || grown.Len() != 2 {
		t.Fatalf("Insert modified receiver: %s -> %s", obj, grown)
	}
	if got := grown.String(); got != "{#1: #2, #3: #4}" {
		t.Errorf("object String() = %q", got)
	}
	if got := Members(grown); len(got) != 4 || got[0] != 1 || got[2] != 2 {
		t.Errorf("object members = %v, want keys then values", got)
	}

	arr := NewArray([]Index{5, 6})
	longer := arr.Append(7)
	if arr.Len() != 2 || longer.Len() != 3 {
		t.Fatalf("Append modified receiver: %s -> %s", arr, longer)
	}
	if got := longer.String(); got != "[#5, #6, #7]" {
		t.Errorf("array String() = %q", got)
	}
	if !arr.Equal(NewArray([]Index{5, 6})) || arr.Equal(longer) {
		t.Error("array equality should compare index lists")
	}
	if Members(NewNumber(1)) != nil {
		t.Error("scalars have no members")
	}
}

func TestStrLenCountsRunes(t *testing.T) {
	if n := NewStr("héllo").Len(); n != 5 {
		t.Errorf("Len() = %d, want 5", n)
	}
	if got := NewStr("a\"b").String(); got != `"a\"b"` {
		t.Errorf("String() = %q", got)
	}
}
