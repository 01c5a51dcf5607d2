package types

import (
	"errors"
	"fmt"
	"testing"

	"kaffee/parser"
)

func TestErrorCodeNames(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		name     string
		category Category
	}{
		{E_SYNTAX, "SyntaxError", CAT_SYNTAX},
		{E_UNRESOLVED, "UnresolvedIdentifier", CAT_RESOLUTION},
		{E_DUPDECL, "DuplicateDeclaration", CAT_RESOLUTION},
		{E_UNKNOWNPROP, "UnknownProperty", CAT_RESOLUTION},
		{E_TYPE, "InvalidOperatorTypes", CAT_TYPE},
		{E_COND, "NonBooleanCondition", CAT_TYPE},
		{E_PROPACCESS, "InvalidPropertyAccess", CAT_TYPE},
		{E_INVIND, "InvalidIndex", CAT_TYPE},
		{E_RANGE, "IndexOutOfRange", CAT_TYPE},
		{E_STRINGIFY, "Unstringifyable", CAT_TYPE},
		{E_CONST, "AssignmentToConstant", CAT_SEMANTIC},
		{E_DECLTARGET, "InvalidDeclarationTarget", CAT_SEMANTIC},
		{E_INSERT, "InvalidInsertionTarget", CAT_SEMANTIC},
		{E_ARGS, "ArityMismatch", CAT_SEMANTIC},
		{E_CALL, "UncallableValue", CAT_SEMANTIC},
		{E_CONTROL, "ControlOutsideLoop", CAT_SEMANTIC},
		{E_MAXREC, "RecursionLimit", CAT_LIMIT},
		{E_UNKNOWNREF, "UnknownReference", CAT_INTERNAL},
		{E_INPUT, "InputError", CAT_INTERNAL},
		{E_INTERNAL, "InternalError", CAT_INTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.code.String(), tt.name)
			}
			if tt.code.Category() != tt.category {
				t.Errorf("Category() = %s, want %s", tt.code.Category(), tt.category)
			}
			code, ok := ErrorFromString(tt.name)
			if !ok || code != tt.code {
				t.Errorf("ErrorFromString(%q) = %v, %v", tt.name, code, ok)
			}
			if tt.code.Message() == "Unknown error" {
				t.Errorf("%s has no message", tt.name)
			}
		})
	}

	if _, ok := ErrorFromString("E_NOPE"); ok {
		t.Error("ErrorFromString accepted an unknown name")
	}
}

func TestErrorFormatting(t *testing.T) {
	err := NewError(E_DUPDECL, "%s is already declared in this scope", "x")
	if got := err.Error(); got != "DuplicateDeclaration: x is already declared in this scope" {
		t.Errorf("unpositioned error = %q", got)
	}

	err.At(parser.Position{Line: 3, Column: 5})
	err.At(parser.Position{Line: 9, Column: 9})
	if got := err.Error(); got != "DuplicateDeclaration at 3:5: x is already declared in this scope" {
		t.Errorf("positioned error = %q", got)
	}
}

func TestAsError(t *testing.T) {
	if AsError(nil) != nil {
		t.Error("AsError(nil) should be nil")
	}

	rt := NewError(E_CONST, "x")
	wrapped := fmt.Errorf("running: %w", rt)
	if got := AsError(wrapped); got != rt {
		t.Errorf("AsError did not unwrap runtime error: %v", got)
	}

	_, synErr := parser.Parse("let = 1")
	got := AsError(synErr)
	if got.Code != E_SYNTAX || got.Pos.Line != 1 {
		t.Errorf("syntax error converted to %v", got)
	}
	var syn *parser.SyntaxError
	if !errors.As(got, &syn) {
		t.Error("converted syntax error should unwrap to *parser.SyntaxError")
	}

	if got := AsError(errors.New("boom")); got.Code != E_INTERNAL {
		t.Errorf("plain error converted to %s, want InternalError", got.Code)
	}
}
