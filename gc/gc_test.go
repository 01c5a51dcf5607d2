package gc

import (
	"testing"

	"kaffee/heap"
	"kaffee/scope"
	"kaffee/types"
)

// nestedArray allocates [[inner]] and returns the outer and inner slot indices
func nestedArray(h *heap.Heap) (outer, middle, inner types.Index) {
	inner = h.Allocate(types.NewNumber(1), false)
	middle = h.Allocate(types.NewArray([]types.Index{inner}), false)
	outer = h.Allocate(types.NewArray([]types.Index{middle}), false)
	return
}

func TestCollectKeepsFrameRoots(t *testing.T) {
	h := heap.New()
	s := scope.New()
	c := New(h, Transitive)

	kept := h.Allocate(types.NewNumber(1), false)
	s.Declare("x", kept)
	garbage := h.Allocate(types.NewNumber(2), false)

	stats := c.Collect(s.Roots())
	if !h.Contains(kept) {
		t.Error("collector removed a slot held by a live frame")
	}
	if h.Contains(garbage) {
		t.Error("collector kept an unreachable slot")
	}
	if stats.Freed != 1 || stats.Live != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCollectNestedBlockScopes(t *testing.T) {
	h := heap.New()
	s := scope.New()
	c := New(h, Transitive)

	keyIx := h.Allocate(types.NewStr("a"), true)
	valIx := h.Allocate(types.NewNumber(1), false)
	obj := h.Allocate(types.NewObject([]types.Index{keyIx}, []types.Index{valIx}), false)
	s.Declare("o", obj)

	s.Push()
	e1 := h.Allocate(types.NewNumber(1), false)
	arr := h.Allocate(types.NewArray([]types.Index{e1}), false)
	s.Declare("arr", arr)
	c.Collect(s.Roots())
	for _, ix := range []types.Index{keyIx, valIx, obj, e1, arr} {
		if !h.Contains(ix) {
			t.Errorf("slot %s freed while its frame is live", ix)
		}
	}

	s.Pop()
	c.Collect(s.Roots())
	if h.Contains(arr) || h.Contains(e1) {
		t.Error("array and its element should be freed after their frame pops")
	}
	for _, ix := range []types.Index{keyIx, valIx, obj} {
		if !h.Contains(ix) {
			t.Errorf("outer object slot %s freed", ix)
		}
	}
}

func TestTransitiveFollowsDeepNesting(t *testing.T) {
	h := heap.New()
	outer, middle, inner := nestedArray(h)

	c := New(h, Transitive)
	c.Collect([]types.Index{outer})
	for _, ix := range []types.Index{outer, middle, inner} {
		if !h.Contains(ix) {
			t.Errorf("transitive collection freed %s", ix)
		}
	}
}

func TestShallowTracesOneLevel(t *testing.T) {
	h := heap.New()
	outer, middle, inner := nestedArray(h)

	c := New(h, Shallow)
	c.Collect([]types.Index{outer})
	if !h.Contains(outer) || !h.Contains(middle) {
		t.Error("shallow collection must keep roots and their direct members")
	}
	if h.Contains(inner) {
		t.Error("shallow collection is expected to free second-level members")
	}
	if got := h.Inspect(types.NewArray([]types.Index{outer})); got != "[[[<dangling "+inner.String()+">]]]" {
		t.Errorf("Inspect after shallow collection = %q", got)
	}
}

func TestCyclesAreCollected(t *testing.T) {
	h := heap.New()
	self := h.Allocate(types.Null, false)
	arr := types.NewArray([]types.Index{self})
	h.Write(self, arr)

	c := New(h, Transitive)
	if got := c.Reachable([]types.Index{self}); len(got) != 1 {
		t.Errorf("Reachable = %v, want only %s", got, self)
	}
	c.Collect(nil)
	if h.Len() != 0 {
		t.Errorf("unreachable cycle survived: %d live", h.Len())
	}
}

func TestAbsentRootsIgnored(t *testing.T) {
	h := heap.New()
	c := New(h, Transitive)
	stats := c.Collect([]types.Index{42})
	if stats.Reachable != 0 || stats.Freed != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestTotals(t *testing.T) {
	h := heap.New()
	c := New(h, Transitive)
	h.Allocate(types.Null, false)
	h.Allocate(types.Null, false)
	c.Collect(nil)
	h.Allocate(types.Null, false)
	c.Collect(nil)

	tot := c.Totals()
	if tot.Collections != 2 || tot.Freed != 3 {
		t.Errorf("Totals = %+v, want 2 collections, 3 freed", tot)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Transitive, false},
		{"transitive", Transitive, false},
		{"shallow", Shallow, false},
		{"deep", Transitive, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %s, %v", tt.in, got, err)
		}
	}
}
