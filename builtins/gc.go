package builtins

import (
	"kaffee/types"
)

// ============================================================================
// GARBAGE COLLECTION BUILTINS
// ============================================================================

// builtinGCStats implements gc_stats()
// Returns {live, collections, freed}: slots currently allocated, collector
// runs so far and slots reclaimed so far. Every count is zero when the host
// does not expose its collector.
func builtinGCStats(ctx *types.CallContext, args []types.Value) types.Result {
	var stats types.HeapStats
	if ctx.Stats != nil {
		stats = ctx.Stats()
	}

	fields := []struct {
		name  string
		count int
	}{
		{"live", stats.Live},
		{"collections", stats.Collections},
		{"freed", stats.Freed},
	}

	var obj types.ObjectValue
	for _, f := range fields {
		key := ctx.Store.Allocate(types.NewStr(f.name), true)
		val := ctx.Store.Allocate(types.NewNumber(float64(f.count)), false)
		obj = obj.Insert(key, val)
	}
	return types.Ok(obj)
}
