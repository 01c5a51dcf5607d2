package eval

import (
	"kaffee/parser"
	"kaffee/types"
)

// evalStatements executes statements in order, stopping at the first one
// that does not complete normally and propagating its Result
func (e *Evaluator) evalStatements(stmts []parser.Stmt) types.Result {
	for _, stmt := range stmts {
		result := e.evalStmt(stmt)
		if !result.IsNormal() {
			return result
		}
	}
	return types.Ok(types.Null)
}

// evalStmt executes a single statement
func (e *Evaluator) evalStmt(stmt parser.Stmt) types.Result {
	var result types.Result
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		result = e.evalExpr(s.Expr)
	case *parser.DeclStmt:
		result = e.evalDeclStmt(s)
	case *parser.FunctionStmt:
		result = e.evalFunctionStmt(s)
	case *parser.BlockStmt:
		result = e.evalBlock(s.Body)
	case *parser.IfStmt:
		result = e.evalIfStmt(s)
	case *parser.WhileStmt:
		result = e.evalWhileStmt(s)
	case *parser.ReturnStmt:
		result = e.evalReturnStmt(s)
	case *parser.BreakStmt:
		result = types.Break()
	case *parser.ContinueStmt:
		result = types.Continue()
	default:
		result = types.Fail(types.E_INTERNAL, "unknown statement %T", stmt)
	}
	if result.IsError() {
		result.Err.At(stmt.Position())
	}
	return result
}

// evalBlock runs body in a fresh frame. The frame is popped and the
// collector run whether the block completes, signals or fails. A block
// that completes normally yields null; a signal passes through with its
// value kept alive across the collection.
func (e *Evaluator) evalBlock(body []parser.Stmt) types.Result {
	e.scopes.Push()
	result := e.evalStatements(body)
	e.scopes.Pop()
	e.collect(result.Val)
	return result
}

// evalDeclStmt executes let/const: the target must be a bare identifier,
// which is bound in the innermost frame to a fresh slot
func (e *Evaluator) evalDeclStmt(stmt *parser.DeclStmt) types.Result {
	ident, ok := stmt.Target.(*parser.IdentifierExpr)
	if !ok {
		return types.Fail(types.E_DECLTARGET, "cannot declare %s", parser.UnparseExpr(stmt.Target))
	}

	valueResult := e.evalExpr(stmt.Value)
	if !valueResult.IsNormal() {
		return valueResult
	}
	return e.declare(ident.Name, valueResult.Val, stmt.Constant)
}

// evalFunctionStmt binds a named function as a constant in the current frame
func (e *Evaluator) evalFunctionStmt(stmt *parser.FunctionStmt) types.Result {
	fn := types.FunctionValue{Name: stmt.Name, Params: stmt.Params, Body: stmt.Body}
	return e.declare(stmt.Name, fn, true)
}

func (e *Evaluator) declare(name string, v types.Value, constant bool) types.Result {
	ix := e.heap.Allocate(v, constant)
	if err := e.scopes.Declare(name, ix); err != nil {
		return types.Err(types.AsError(err))
	}
	return types.Ok(types.Null)
}

// evalCondition evaluates a loop or branch condition, which must be Boolean
func (e *Evaluator) evalCondition(cond parser.Expr, what string) (bool, types.Result) {
	result := e.evalExpr(cond)
	if !result.IsNormal() {
		return false, result
	}
	b, ok := result.Val.(types.BoolValue)
	if !ok {
		err := types.NewError(types.E_COND, "%s condition is %s, not Boolean", what, result.Val.Type())
		return false, types.Err(err.At(cond.Position()))
	}
	return b.Val, result
}

// evalIfStmt executes if/else. A branch that is not a block runs in the
// current frame.
func (e *Evaluator) evalIfStmt(stmt *parser.IfStmt) types.Result {
	cond, result := e.evalCondition(stmt.Condition, "if")
	if !result.IsNormal() {
		return result
	}
	if cond {
		return e.evalStmt(stmt.Then)
	}
	if stmt.Else != nil {
		return e.evalStmt(stmt.Else)
	}
	return types.Ok(types.Null)
}

// evalWhileStmt executes a while loop
// Break ends the loop and is absorbed. Continue ends the iteration.
// Return and errors end the loop and propagate. Post, when present,
// runs after every iteration that did not break.
func (e *Evaluator) evalWhileStmt(stmt *parser.WhileStmt) types.Result {
	for {
		cond, result := e.evalCondition(stmt.Condition, "while")
		if !result.IsNormal() {
			return result
		}
		if !cond {
			return types.Ok(types.Null)
		}

		bodyResult := e.evalStmt(stmt.Body)
		switch bodyResult.Flow {
		case types.FlowBreak:
			return types.Ok(types.Null)
		case types.FlowReturn, types.FlowException:
			return bodyResult
		}

		if stmt.Post != nil {
			postResult := e.evalStmt(stmt.Post)
			if !postResult.IsNormal() {
				return postResult
			}
		}
	}
}

// evalReturnStmt executes return, with null when no value is given
func (e *Evaluator) evalReturnStmt(stmt *parser.ReturnStmt) types.Result {
	if stmt.Value == nil {
		return types.Return(types.Null)
	}
	result := e.evalExpr(stmt.Value)
	if !result.IsNormal() {
		return result
	}
	return types.Return(result.Val)
}
