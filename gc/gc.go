// Package gc implements the stop-the-world tracing collector for the heap.
//
// A collection marks every slot reachable from the supplied roots and
// removes the rest. In Transitive mode marking follows composite members
// to any depth. Shallow mode marks the roots and the direct members of
// root composites only, which can free slots still referenced from deeper
// nesting; it exists to reproduce that behaviour in tests.
package gc

import (
	"fmt"
	"time"

	"fortio.org/log"

	"kaffee/heap"
	"kaffee/types"
)

// Mode selects how far marking follows composite members
type Mode int

const (
	Transitive Mode = iota
	Shallow
)

func (m Mode) String() string {
	switch m {
	case Transitive:
		return "transitive"
	case Shallow:
		return "shallow"
	default:
		return "unknown"
	}
}

// ParseMode converts a configuration string to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "transitive":
		return Transitive, nil
	case "shallow":
		return Shallow, nil
	}
	return Transitive, fmt.Errorf("unknown gc mode %q (want transitive or shallow)", s)
}

// Stats describes one collection
type Stats struct {
	Roots     int
	Reachable int
	Freed     int
	Live      int
	Duration  time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("roots=%d reachable=%d freed=%d live=%d in %v",
		s.Roots, s.Reachable, s.Freed, s.Live, s.Duration)
}

// Totals accumulates over every collection
type Totals struct {
	Collections int
	Freed       int
}

// Collector reclaims unreachable heap slots
type Collector struct {
	heap   *heap.Heap
	mode   Mode
	totals Totals
}

// New creates a collector for h
func New(h *heap.Heap, mode Mode) *Collector {
	return &Collector{heap: h, mode: mode}
}

// Mode returns the marking mode
func (c *Collector) Mode() Mode {
	return c.mode
}

// Totals returns counts accumulated across collections
func (c *Collector) Totals() Totals {
	return c.totals
}

// Collect marks from roots and sweeps everything unmarked. It never fails:
// roots naming absent slots are ignored.
func (c *Collector) Collect(roots []types.Index) Stats {
	start := time.Now()
	marked := c.mark(roots)

	freed := 0
	for _, ix := range c.heap.Indices() {
		if !marked[ix] {
			c.heap.Remove(ix)
			freed++
		}
	}

	c.totals.Collections++
	c.totals.Freed += freed
	stats := Stats{
		Roots:     len(roots),
		Reachable: len(marked),
		Freed:     freed,
		Live:      c.heap.Len(),
		Duration:  time.Since(start),
	}
	log.LogVf("gc %s: %s", c.mode, stats)
	return stats
}

// Reachable returns the set of indices a collection with these roots would keep
func (c *Collector) Reachable(roots []types.Index) map[types.Index]bool {
	return c.mark(roots)
}

func (c *Collector) mark(roots []types.Index) map[types.Index]bool {
	marked := make(map[types.Index]bool, len(roots))
	if c.mode == Shallow {
		for _, ix := range roots {
			v, err := c.heap.Read(ix)
			if err != nil {
				continue
			}
			marked[ix] = true
			for _, m := range types.Members(v) {
				if c.heap.Contains(m) {
					marked[m] = true
				}
			}
		}
		return marked
	}

	work := append([]types.Index(nil), roots...)
	for len(work) > 0 {
		ix := work[len(work)-1]
		work = work[:len(work)-1]
		if marked[ix] {
			continue
		}
		v, err := c.heap.Read(ix)
		if err != nil {
			continue
		}
		marked[ix] = true
		for _, m := range types.Members(v) {
			if !marked[m] {
				work = append(work, m)
			}
		}
	}
	return marked
}
