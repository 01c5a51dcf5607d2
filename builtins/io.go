package builtins

import (
	"fmt"
	"io"
	"strings"

	"kaffee/types"
)

// builtinPrintln implements println(value)
// Writes the stringified value and a newline to the program's output.
// Returns null.
func builtinPrintln(ctx *types.CallContext, args []types.Value) types.Result {
	s, err := Stringify(args[0])
	if err != nil {
		return types.Err(err)
	}
	if ctx.Out != nil {
		fmt.Fprintln(ctx.Out, s)
	}
	return types.Ok(types.Null)
}

// builtinInput implements input()
// Reads one line from the program's input without its line terminator.
// At end of input the partial line read so far (possibly "") is returned.
func builtinInput(ctx *types.CallContext, args []types.Value) types.Result {
	if ctx.In == nil {
		return types.Ok(types.NewStr(""))
	}
	line, err := ctx.In.ReadString('\n')
	if err != nil && err != io.EOF {
		return types.Fail(types.E_INPUT, "input: %v", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return types.Ok(types.NewStr(line))
}
