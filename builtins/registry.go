package builtins

import (
	"sort"

	"kaffee/types"
)

// Registry holds all registered native functions
type Registry struct {
	funcs map[string]types.NativeFuncValue
}

// NewRegistry creates a registry holding the standard library
func NewRegistry() *Registry {
	r := &Registry{
		funcs: make(map[string]types.NativeFuncValue),
	}

	// I/O
	r.Register("println", 1, builtinPrintln)
	r.Register("input", 0, builtinInput)

	// Values
	r.Register("stringify", 1, builtinStringify)
	r.Register("len", 1, builtinLen)
	r.Register("append", 2, builtinAppend)
	r.Register("typeof", 1, builtinTypeof)

	// GC builtins
	r.Register("gc_stats", 0, builtinGCStats)

	return r
}

// Register adds a native function, replacing any previous one of that name
func (r *Registry) Register(name string, arity int, fn types.NativeFunc) {
	r.funcs[name] = types.NativeFuncValue{Name: name, Arity: arity, Fn: fn}
}

// Get retrieves a native function by name
// Returns (function, true) if found, (zero, false) if not found
func (r *Registry) Get(name string) (types.NativeFuncValue, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has checks if a native function is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Names returns every registered name in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
