package eval

import (
	"fortio.org/log"

	"kaffee/parser"
	"kaffee/trace"
	"kaffee/types"
)

// evalCall evaluates callee(args). The callee is checked for callability
// and arity before any argument is evaluated; arguments are evaluated left
// to right and stay pinned until the call returns.
func (e *Evaluator) evalCall(node *parser.CallExpr) types.Result {
	calleeResult := e.evalExpr(node.Callee)
	if !calleeResult.IsNormal() {
		return calleeResult
	}

	var name string
	var arity int
	switch fn := calleeResult.Val.(type) {
	case types.NativeFuncValue:
		name, arity = fn.Name, fn.Arity
	case types.FunctionValue:
		name, arity = fn.DisplayName(), fn.Arity()
	default:
		return types.Fail(types.E_CALL, "%s is not callable", calleeResult.Val.Type())
	}
	if len(node.Args) != arity {
		return types.Fail(types.E_ARGS, "%s takes %d arguments, got %d", name, arity, len(node.Args))
	}

	mark := e.pin()
	defer e.unpin(mark)

	args := make([]types.Value, 0, len(node.Args))
	for _, arg := range node.Args {
		argResult := e.evalExpr(arg)
		if !argResult.IsNormal() {
			return argResult
		}
		args = append(args, argResult.Val)
		e.pin(argResult.Val)
	}

	if fn, ok := calleeResult.Val.(types.NativeFuncValue); ok {
		return e.callNative(fn, args)
	}
	return e.callFunction(calleeResult.Val.(types.FunctionValue), args, node.Position())
}

// callNative invokes a host function with the evaluated arguments
func (e *Evaluator) callNative(fn types.NativeFuncValue, args []types.Value) types.Result {
	traced := trace.IsEnabled()
	if traced {
		trace.Call(fn.Name, e.inspectAll(args), e.depth)
	}

	ctx := &types.CallContext{
		Store: e.heap,
		Out:   e.out,
		In:    e.in,
		Stats: e.heapStats,
	}
	result := fn.Fn(ctx, args)

	switch {
	case result.IsError():
		trace.Error(fn.Name, result.Err)
		return result
	case result.Val == nil:
		result = types.Ok(types.Null)
	default:
		result = types.Ok(result.Val)
	}
	if traced {
		trace.Return(fn.Name, e.heap.Inspect(result.Val), e.depth)
	}
	return result
}

// callFunction runs a user function. Arguments are bound, non-constant, in
// a fresh frame that sees the caller's frames beneath it; the body then
// runs as a block of its own. The call yields the returned value, or null
// when the body ends without return. An error leaving the body records
// the call in its traceback.
func (e *Evaluator) callFunction(fn types.FunctionValue, args []types.Value, at parser.Position) types.Result {
	name := fn.DisplayName()
	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return types.Fail(types.E_MAXREC, "call depth exceeded %d in %s", e.maxDepth, name)
	}

	e.depth++
	defer func() { e.depth-- }()

	traced := trace.IsEnabled()
	if traced {
		trace.Call(name, e.inspectAll(args), e.depth-1)
	}
	log.LogVf("call %s depth=%d", name, e.depth)

	e.scopes.Push()
	for i, param := range fn.Params {
		if err := e.scopes.Declare(param, e.heap.Allocate(args[i], false)); err != nil {
			e.scopes.Pop()
			return types.Err(types.AsError(err))
		}
	}
	bodyResult := e.evalBlock(fn.Body)
	e.scopes.Pop()

	var result types.Result
	switch bodyResult.Flow {
	case types.FlowReturn:
		result = types.Ok(bodyResult.Val)
	case types.FlowNormal:
		result = types.Ok(types.Null)
	case types.FlowBreak, types.FlowContinue:
		result = types.Fail(types.E_CONTROL, "%s outside a loop in %s", bodyResult.Flow, name)
	default:
		trace.Error(name, bodyResult.Err)
		bodyResult.Err.Unwound(name, at)
		e.collect()
		return bodyResult
	}

	e.collect(result.Val)
	if traced && result.IsNormal() {
		trace.Return(name, e.heap.Inspect(result.Val), e.depth-1)
	}
	return result
}

func (e *Evaluator) inspectAll(vals []types.Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = e.heap.Inspect(v)
	}
	return out
}
