// Package scope implements the scope stack: an ordered chain of frames
// mapping names to heap indices, innermost last.
package scope

import (
	"fmt"
	"io"
	"sort"

	"kaffee/types"
)

// Frame maps identifier names to heap indices
type Frame map[string]types.Index

// Stack is the chain of frames currently in effect. The bottom frame is
// the global frame and is never popped.
type Stack struct {
	frames []Frame
}

// New creates a stack holding only the global frame
func New() *Stack {
	return &Stack{frames: []Frame{make(Frame)}}
}

// Push enters a new innermost frame
func (s *Stack) Push() {
	s.frames = append(s.frames, make(Frame))
}

// Pop discards the innermost frame. Popping the global frame is a bug
// in the caller.
func (s *Stack) Pop() {
	if len(s.frames) <= 1 {
		panic("scope: pop of global frame")
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of frames, counting the global frame
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Truncate pops frames until depth frames remain. It restores the stack
// after an error unwinds through blocks that never reached their Pop.
func (s *Stack) Truncate(depth int) {
	if depth < 1 {
		depth = 1
	}
	for len(s.frames) > depth {
		s.Pop()
	}
}

// Declare binds name in the innermost frame. A name may be declared once
// per frame; outer frames may already hold it.
func (s *Stack) Declare(name string, ix types.Index) error {
	frame := s.frames[len(s.frames)-1]
	if _, exists := frame[name]; exists {
		return types.NewError(types.E_DUPDECL, "%s is already declared in this scope", name)
	}
	frame[name] = ix
	return nil
}

// Lookup finds the innermost binding of name
func (s *Stack) Lookup(name string) (types.Index, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if ix, ok := s.frames[i][name]; ok {
			return ix, true
		}
	}
	return 0, false
}

// Resolve is Lookup that fails with UnresolvedIdentifier
func (s *Stack) Resolve(name string) (types.Index, error) {
	if ix, ok := s.Lookup(name); ok {
		return ix, nil
	}
	return 0, types.NewError(types.E_UNRESOLVED, "%s is not defined", name)
}

// Roots returns every index held directly by any frame
func (s *Stack) Roots() []types.Index {
	var roots []types.Index
	for _, frame := range s.frames {
		for _, ix := range frame {
			roots = append(roots, ix)
		}
	}
	return roots
}

// Names returns every visible name, innermost bindings shadowing outer ones
func (s *Stack) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for i := len(s.frames) - 1; i >= 0; i-- {
		for name := range s.frames[i] {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Dump writes each frame, outermost first, with names in sorted order
func (s *Stack) Dump(w io.Writer) {
	for i, frame := range s.frames {
		fmt.Fprintf(w, "frame %d:\n", i)
		names := make([]string, 0, len(frame))
		for name := range frame {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s -> %s\n", name, frame[name])
		}
	}
}
