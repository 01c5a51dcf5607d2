package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"kaffee/types"
)

// Tracer provides execution tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if a function name matches any of the filter patterns.
// Collections are traced under the name "gc".
func (t *Tracer) matchesFilter(name string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func (t *Tracer) active(name string) bool {
	return t != nil && t.enabled && t.matchesFilter(name)
}

// Call logs entry into a function. Args are already rendered for display.
func (t *Tracer) Call(name string, args []string, depth int) {
	if !t.active(name) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] %sCALL %s(%s)\n",
		strings.Repeat("  ", depth), name, strings.Join(args, ", "))
}

// Return logs a function's result
func (t *Tracer) Return(name string, result string, depth int) {
	if !t.active(name) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] %sRETURN %s => %s\n",
		strings.Repeat("  ", depth), name, result)
}

// Collect logs one collector run
func (t *Tracer) Collect(freed, live int) {
	if !t.active("gc") {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] GC freed=%d live=%d\n", freed, live)
}

// Error logs a runtime error raised inside the named function
func (t *Tracer) Error(name string, err *types.Error) {
	if !t.active(name) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] EXCEPTION %s %s\n", name, err)
}

// Global convenience functions

// Call logs a call using the global tracer
func Call(name string, args []string, depth int) {
	globalTracer.Call(name, args, depth)
}

// Return logs a return using the global tracer
func Return(name string, result string, depth int) {
	globalTracer.Return(name, result, depth)
}

// Collect logs a collection using the global tracer
func Collect(freed, live int) {
	globalTracer.Collect(freed, live)
}

// Error logs an error using the global tracer
func Error(name string, err *types.Error) {
	globalTracer.Error(name, err)
}
