package builtins

import (
	"kaffee/types"
)

// Stringify converts a scalar to the text println writes. Strings convert
// to their contents, not their quoted literal. Null, functions and
// composites cannot be stringified.
func Stringify(v types.Value) (string, *types.Error) {
	switch val := v.(type) {
	case types.NumberValue:
		return types.FormatNumber(val.Val), nil
	case types.StrValue:
		return val.Value(), nil
	case types.BoolValue:
		return val.String(), nil
	}
	return "", types.NewError(types.E_STRINGIFY, "cannot stringify %s", v.Type())
}

// builtinStringify implements stringify(value) -> String
func builtinStringify(ctx *types.CallContext, args []types.Value) types.Result {
	s, err := Stringify(args[0])
	if err != nil {
		return types.Err(err)
	}
	return types.Ok(types.NewStr(s))
}

// builtinLen implements len(value)
// Returns the character count of a String or the element count of an Array.
func builtinLen(ctx *types.CallContext, args []types.Value) types.Result {
	switch v := args[0].(type) {
	case types.StrValue:
		return types.Ok(types.NewNumber(float64(v.Len())))
	case types.ArrayValue:
		return types.Ok(types.NewNumber(float64(v.Len())))
	}
	return types.Fail(types.E_TYPE, "len expects String or Array, got %s", args[0].Type())
}

// builtinAppend implements append(array, value)
// Allocates value in a fresh slot and returns a new Array holding the old
// elements plus that slot. The argument array is left unchanged, so the
// caller reassigns: a = append(a, v).
func builtinAppend(ctx *types.CallContext, args []types.Value) types.Result {
	arr, ok := args[0].(types.ArrayValue)
	if !ok {
		return types.Fail(types.E_TYPE, "append expects an Array, got %s", args[0].Type())
	}
	ix := ctx.Store.Allocate(args[1], false)
	return types.Ok(arr.Append(ix))
}

// builtinTypeof implements typeof(value) -> String, e.g. "Number"
func builtinTypeof(ctx *types.CallContext, args []types.Value) types.Result {
	return types.Ok(types.NewStr(args[0].Type().String()))
}
