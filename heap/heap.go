// Package heap implements the allocation table that owns every runtime value.
//
// Slots are addressed by a types.Index issued in increasing order. Indices
// are never reused, so removing a slot leaves a hole rather than shifting
// its neighbours. The heap does not enforce constness; the evaluator checks
// the Constant flag before writing.
package heap

import (
	"fmt"
	"io"
	"sort"

	"kaffee/types"
)

// Slot is one heap entry
type Slot struct {
	Value    types.Value
	Constant bool
}

// Heap is a sparse table of slots
type Heap struct {
	slots map[types.Index]*Slot
	next  types.Index
}

// New creates an empty heap
func New() *Heap {
	return &Heap{slots: make(map[types.Index]*Slot)}
}

// Allocate stores v in a fresh slot and returns its index
func (h *Heap) Allocate(v types.Value, constant bool) types.Index {
	ix := h.next
	h.next++
	h.slots[ix] = &Slot{Value: v, Constant: constant}
	return ix
}

// Read returns the value stored at ix
func (h *Heap) Read(ix types.Index) (types.Value, error) {
	slot, ok := h.slots[ix]
	if !ok {
		return nil, unknownReference(ix)
	}
	return slot.Value, nil
}

// Slot returns a copy of the slot at ix
func (h *Heap) Slot(ix types.Index) (Slot, error) {
	slot, ok := h.slots[ix]
	if !ok {
		return Slot{}, unknownReference(ix)
	}
	return *slot, nil
}

// Write replaces the value at ix, keeping its constant flag
func (h *Heap) Write(ix types.Index, v types.Value) error {
	slot, ok := h.slots[ix]
	if !ok {
		return unknownReference(ix)
	}
	slot.Value = v
	return nil
}

// Remove deletes the slot at ix. Only the collector calls this.
func (h *Heap) Remove(ix types.Index) {
	delete(h.slots, ix)
}

// Contains reports whether ix names a live slot
func (h *Heap) Contains(ix types.Index) bool {
	_, ok := h.slots[ix]
	return ok
}

// Len returns the number of live slots
func (h *Heap) Len() int {
	return len(h.slots)
}

// Next returns the index the next allocation will receive
func (h *Heap) Next() types.Index {
	return h.next
}

// Indices returns every live index in ascending order
func (h *Heap) Indices() []types.Index {
	out := make([]types.Index, 0, len(h.slots))
	for ix := range h.slots {
		out = append(out, ix)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Dump writes one line per live slot, in index order
func (h *Heap) Dump(w io.Writer) {
	for _, ix := range h.Indices() {
		slot := h.slots[ix]
		flag := "let  "
		if slot.Constant {
			flag = "const"
		}
		fmt.Fprintf(w, "%-6s %s %-14s %s\n", ix, flag, slot.Value.Type(), slot.Value)
	}
}

func unknownReference(ix types.Index) *types.Error {
	return types.NewError(types.E_UNKNOWNREF, "heap slot %s does not exist", ix)
}
