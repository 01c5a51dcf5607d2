package eval

import (
	"kaffee/trace"
	"kaffee/types"
)

// pin keeps values alive across collections until unpin(mark).
// The returned mark is the position of the first pinned value.
func (e *Evaluator) pin(vals ...types.Value) int {
	mark := len(e.pins)
	e.pins = append(e.pins, vals...)
	return mark
}

func (e *Evaluator) unpin(mark int) {
	for i := mark; i < len(e.pins); i++ {
		e.pins[i] = nil
	}
	e.pins = e.pins[:mark]
}

// collect runs the collector with every frame and every pinned value as
// roots, plus the members of extra
func (e *Evaluator) collect(extra ...types.Value) {
	roots := e.scopes.Roots()
	for _, v := range e.pins {
		roots = append(roots, types.Members(v)...)
	}
	for _, v := range extra {
		roots = append(roots, types.Members(v)...)
	}
	stats := e.gc.Collect(roots)
	trace.Collect(stats.Freed, stats.Live)
}

// heapStats feeds gc_stats()
func (e *Evaluator) heapStats() types.HeapStats {
	totals := e.gc.Totals()
	return types.HeapStats{
		Live:        e.heap.Len(),
		Collections: totals.Collections,
		Freed:       totals.Freed,
	}
}
