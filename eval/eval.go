// Package eval implements the tree-walking evaluator.
//
// Every evaluation step returns a types.Result carrying a value, a control
// flow signal (normal, return, break, continue) or a runtime error. Frames
// are pushed on block and call entry and popped on exit, and every pop is
// followed by a collection.
package eval

import (
	"bufio"
	"io"
	"os"

	"fortio.org/log"

	"kaffee/builtins"
	"kaffee/gc"
	"kaffee/heap"
	"kaffee/parser"
	"kaffee/scope"
	"kaffee/types"
)

// DefaultMaxCallDepth bounds nested user function calls
const DefaultMaxCallDepth = 2000

// Options configures an Evaluator
type Options struct {
	GCMode       gc.Mode
	MaxCallDepth int // 0 means unlimited
	Out          io.Writer
	In           io.Reader
	Builtins     *builtins.Registry // nil selects the standard library
}

// DefaultOptions writes to stdout, reads stdin and traces transitively
func DefaultOptions() Options {
	return Options{
		GCMode:       gc.Transitive,
		MaxCallDepth: DefaultMaxCallDepth,
		Out:          os.Stdout,
		In:           os.Stdin,
	}
}

// Evaluator walks the AST and evaluates expressions/statements
type Evaluator struct {
	heap     *heap.Heap
	scopes   *scope.Stack
	gc       *gc.Collector
	builtins *builtins.Registry
	out      io.Writer
	in       *bufio.Reader

	// Values held only by Go code while evaluation continues. Their
	// members are extra roots for every collection.
	pins []types.Value

	depth    int
	maxDepth int
}

// NewEvaluator creates an evaluator with a fresh heap and the natives
// installed as constants in the global frame
func NewEvaluator(opts Options) *Evaluator {
	h := heap.New()
	registry := opts.Builtins
	if registry == nil {
		registry = builtins.NewRegistry()
	}
	e := &Evaluator{
		heap:     h,
		scopes:   scope.New(),
		gc:       gc.New(h, opts.GCMode),
		builtins: registry,
		out:      opts.Out,
		maxDepth: opts.MaxCallDepth,
	}
	if opts.In != nil {
		e.in = bufio.NewReader(opts.In)
	}

	for _, name := range registry.Names() {
		fn, _ := registry.Get(name)
		e.scopes.Declare(name, h.Allocate(fn, true))
	}
	return e
}

// Heap returns the allocation table
func (e *Evaluator) Heap() *heap.Heap {
	return e.heap
}

// Scopes returns the scope stack
func (e *Evaluator) Scopes() *scope.Stack {
	return e.scopes
}

// Collector returns the garbage collector
func (e *Evaluator) Collector() *gc.Collector {
	return e.gc
}

// Lookup returns the value currently bound to name
func (e *Evaluator) Lookup(name string) (types.Value, bool) {
	ix, ok := e.scopes.Lookup(name)
	if !ok {
		return nil, false
	}
	v, err := e.heap.Read(ix)
	if err != nil {
		return nil, false
	}
	return v, true
}

// EvalProgram parses and runs source in the global frame
func (e *Evaluator) EvalProgram(source string) (types.Value, error) {
	stmts, err := parser.Parse(source)
	if err != nil {
		return nil, types.AsError(err)
	}
	return e.Run(stmts)
}

// Run executes top-level statements in the global frame, so bindings
// persist between calls. The result is the value of the last expression
// statement, or of a top-level return, which also stops the program.
func (e *Evaluator) Run(stmts []parser.Stmt) (types.Value, error) {
	log.LogVf("run: %d statements", len(stmts))

	last := e.pin(types.Null)
	defer e.unpin(last)

	for _, stmt := range stmts {
		result := e.evalStmt(stmt)
		switch result.Flow {
		case types.FlowNormal:
			if _, ok := stmt.(*parser.ExprStmt); ok {
				e.pins[last] = result.Val
			}
			continue
		case types.FlowReturn:
			e.pins[last] = result.Val
		case types.FlowBreak, types.FlowContinue:
			err := types.NewError(types.E_CONTROL, "%s outside a loop", result.Flow).At(stmt.Position())
			return nil, e.abort(err)
		case types.FlowException:
			return nil, e.abort(result.Err)
		}
		break
	}

	value := e.pins[last]
	e.collect()
	return value, nil
}

// abort restores the evaluator after a runtime error so it can keep
// serving REPL input
func (e *Evaluator) abort(err *types.Error) *types.Error {
	e.scopes.Truncate(1)
	e.depth = 0
	e.collect()
	log.LogVf("aborted: %v", err)
	return err
}

// evalExpr evaluates an expression node and returns a Result.
// Errors leave with the position of the innermost node that raised them.
func (e *Evaluator) evalExpr(node parser.Expr) types.Result {
	result := e.dispatchExpr(node)
	if result.IsError() {
		result.Err.At(node.Position())
	}
	return result
}

func (e *Evaluator) dispatchExpr(node parser.Expr) types.Result {
	switch n := node.(type) {
	case *parser.NumberLit:
		return types.Ok(types.NewNumber(n.Value))
	case *parser.StringLit:
		return types.Ok(types.NewStr(n.Value))
	case *parser.BoolLit:
		return types.Ok(types.NewBool(n.Value))
	case *parser.NullLit:
		return types.Ok(types.Null)
	case *parser.IdentifierExpr:
		return e.evalIdentifier(n)
	case *parser.UnaryExpr:
		return e.evalUnary(n)
	case *parser.BinaryExpr:
		return e.evalBinary(n)
	case *parser.AssignExpr:
		return e.evalAssign(n)
	case *parser.PropertyExpr:
		return e.evalProperty(n)
	case *parser.IndexExpr:
		return e.evalIndex(n)
	case *parser.CallExpr:
		return e.evalCall(n)
	case *parser.ObjectExpr:
		return e.evalObject(n)
	case *parser.ArrayExpr:
		return e.evalArray(n)
	case *parser.FunctionExpr:
		return types.Ok(types.FunctionValue{Params: n.Params, Body: n.Body})
	default:
		// Unknown node type - this should never happen if parser is correct
		return types.Fail(types.E_INTERNAL, "unknown expression %T", node)
	}
}

// evalIdentifier looks up a variable by name
// Returns UnresolvedIdentifier if no frame defines it
func (e *Evaluator) evalIdentifier(node *parser.IdentifierExpr) types.Result {
	ix, err := e.scopes.Resolve(node.Name)
	if err != nil {
		return types.Err(types.AsError(err))
	}
	return e.read(ix)
}

// read loads a slot. A missing slot means the collector freed something
// still in use.
func (e *Evaluator) read(ix types.Index) types.Result {
	v, err := e.heap.Read(ix)
	if err != nil {
		return types.Err(types.AsError(err))
	}
	return types.Ok(v)
}

// evalUnary evaluates a unary expression
// Implements: - (negation), ! (logical not)
func (e *Evaluator) evalUnary(node *parser.UnaryExpr) types.Result {
	operandResult := e.evalExpr(node.Operand)
	if !operandResult.IsNormal() {
		return operandResult // Propagate error/control flow
	}

	switch node.Operator {
	case parser.TOKEN_MINUS:
		return evalUnaryMinus(operandResult.Val)
	case parser.TOKEN_NOT:
		return evalUnaryNot(operandResult.Val)
	default:
		return types.Fail(types.E_INTERNAL, "unknown unary operator %s", node.Operator)
	}
}

// evalBinary evaluates a binary expression
// Operands are evaluated left to right, both of them for every operator
func (e *Evaluator) evalBinary(node *parser.BinaryExpr) types.Result {
	leftResult := e.evalExpr(node.Left)
	if !leftResult.IsNormal() {
		return leftResult
	}

	mark := e.pin(leftResult.Val)
	rightResult := e.evalExpr(node.Right)
	e.unpin(mark)
	if !rightResult.IsNormal() {
		return rightResult
	}

	left := leftResult.Val
	right := rightResult.Val

	switch node.Operator {
	case parser.TOKEN_PLUS:
		return evalAdd(left, right)
	case parser.TOKEN_MINUS, parser.TOKEN_STAR, parser.TOKEN_SLASH, parser.TOKEN_PERCENT, parser.TOKEN_POWER:
		return evalArithmetic(node.Operator, left, right)
	case parser.TOKEN_LT, parser.TOKEN_LE, parser.TOKEN_GT, parser.TOKEN_GE:
		return evalComparison(node.Operator, left, right)
	case parser.TOKEN_EQ, parser.TOKEN_NE:
		return e.evalEquality(node.Operator, left, right)
	case parser.TOKEN_AND, parser.TOKEN_OR:
		return evalLogical(node.Operator, left, right)
	default:
		return types.Fail(types.E_INTERNAL, "unknown binary operator %s", node.Operator)
	}
}

// evalObject builds an object literal. Each key is allocated as a constant
// String slot and each value as a non-constant slot.
func (e *Evaluator) evalObject(node *parser.ObjectExpr) types.Result {
	obj := types.NewObject(make([]types.Index, 0, len(node.Keys)), make([]types.Index, 0, len(node.Keys)))
	mark := e.pin(obj)
	defer e.unpin(mark)

	for i, key := range node.Keys {
		r := e.evalExpr(node.Values[i])
		if !r.IsNormal() {
			return r
		}
		obj.Keys = append(obj.Keys, e.heap.Allocate(types.NewStr(key), true))
		obj.Vals = append(obj.Vals, e.heap.Allocate(r.Val, false))
		e.pins[mark] = obj
	}
	return types.Ok(obj)
}

// evalArray builds an array literal, one non-constant slot per element
func (e *Evaluator) evalArray(node *parser.ArrayExpr) types.Result {
	arr := types.NewArray(make([]types.Index, 0, len(node.Elements)))
	mark := e.pin(arr)
	defer e.unpin(mark)

	for _, elem := range node.Elements {
		r := e.evalExpr(elem)
		if !r.IsNormal() {
			return r
		}
		arr.Elems = append(arr.Elems, e.heap.Allocate(r.Val, false))
		e.pins[mark] = arr
	}
	return types.Ok(arr)
}
