package types

import "testing"

func TestResultConstructors(t *testing.T) {
	t.Run("Ok", func(t *testing.T) {
		r := Ok(NewNumber(42))
		if !r.IsNormal() {
			t.Error("Ok() should create normal result")
		}
		if !r.Val.Equal(NewNumber(42)) {
			t.Errorf("Expected value 42, got %v", r.Val)
		}
	})

	t.Run("Fail", func(t *testing.T) {
		r := Fail(E_TYPE, "cannot add %s and %s", TYPE_NUMBER, TYPE_STR)
		if !r.IsError() {
			t.Error("Fail() should create error result")
		}
		if r.Err.Code != E_TYPE {
			t.Errorf("Expected E_TYPE, got %v", r.Err.Code)
		}
		if r.Err.Detail != "cannot add Number and String" {
			t.Errorf("unexpected detail %q", r.Err.Detail)
		}
	})

	t.Run("Return", func(t *testing.T) {
		r := Return(NewStr("x"))
		if !r.IsReturn() {
			t.Error("Return() should create return result")
		}
		if !r.Val.Equal(NewStr("x")) {
			t.Errorf("Expected value \"x\", got %v", r.Val)
		}
	})

	t.Run("Break", func(t *testing.T) {
		r := Break()
		if !r.IsBreak() {
			t.Error("Break() should create break result")
		}
	})

	t.Run("Continue", func(t *testing.T) {
		r := Continue()
		if !r.IsContinue() {
			t.Error("Continue() should create continue result")
		}
	})
}

func TestResultPredicatesExclusive(t *testing.T) {
	results := []Result{Ok(Null), Return(Null), Break(), Continue(), Fail(E_ARGS, "")}
	for _, r := range results {
		count := 0
		for _, p := range []bool{r.IsNormal(), r.IsReturn(), r.IsBreak(), r.IsContinue(), r.IsError()} {
			if p {
				count++
			}
		}
		if count != 1 {
			t.Errorf("%s result matched %d predicates", r.Flow, count)
		}
	}
}
