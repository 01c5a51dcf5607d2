package eval

import (
	"math"

	"kaffee/parser"
	"kaffee/types"
)

// operandError reports a binary operator applied to the wrong pair of types
func operandError(op parser.TokenType, left, right types.Value) types.Result {
	return types.Fail(types.E_TYPE, "cannot apply %s to %s and %s", op.Symbol(), left.Type(), right.Type())
}

// ============================================================================
// UNARY OPERATORS
// ============================================================================

// evalUnaryMinus implements unary negation: -x
// Requires a Number operand
func evalUnaryMinus(operand types.Value) types.Result {
	n, ok := operand.(types.NumberValue)
	if !ok {
		return types.Fail(types.E_TYPE, "cannot apply - to %s", operand.Type())
	}
	return types.Ok(types.NewNumber(-n.Val))
}

// evalUnaryNot implements logical NOT: !x
// Requires a Boolean operand; there is no truthiness coercion
func evalUnaryNot(operand types.Value) types.Result {
	b, ok := operand.(types.BoolValue)
	if !ok {
		return types.Fail(types.E_TYPE, "cannot apply ! to %s", operand.Type())
	}
	return types.Ok(types.NewBool(!b.Val))
}

// ============================================================================
// ARITHMETIC OPERATORS
// ============================================================================

// numbers extracts both operands as floats
func numbers(left, right types.Value) (float64, float64, bool) {
	l, ok := left.(types.NumberValue)
	if !ok {
		return 0, 0, false
	}
	r, ok := right.(types.NumberValue)
	if !ok {
		return 0, 0, false
	}
	return l.Val, r.Val, true
}

// evalAdd implements addition: left + right
// Supports Number + Number and string concatenation String + String
func evalAdd(left, right types.Value) types.Result {
	if ls, ok := left.(types.StrValue); ok {
		if rs, ok := right.(types.StrValue); ok {
			return types.Ok(types.NewStr(ls.Value() + rs.Value()))
		}
		return operandError(parser.TOKEN_PLUS, left, right)
	}
	l, r, ok := numbers(left, right)
	if !ok {
		return operandError(parser.TOKEN_PLUS, left, right)
	}
	return types.Ok(types.NewNumber(l + r))
}

// evalArithmetic implements - * / % and **.
// Division and modulo by zero follow IEEE-754: they yield inf or NaN.
func evalArithmetic(op parser.TokenType, left, right types.Value) types.Result {
	l, r, ok := numbers(left, right)
	if !ok {
		return operandError(op, left, right)
	}

	var v float64
	switch op {
	case parser.TOKEN_MINUS:
		v = l - r
	case parser.TOKEN_STAR:
		v = l * r
	case parser.TOKEN_SLASH:
		v = l / r
	case parser.TOKEN_PERCENT:
		// Truncated remainder: the result has the sign of the dividend
		v = math.Mod(l, r)
	case parser.TOKEN_POWER:
		v = math.Pow(l, r)
	default:
		return types.Fail(types.E_INTERNAL, "unknown arithmetic operator %s", op)
	}
	return types.Ok(types.NewNumber(v))
}

// ============================================================================
// COMPARISON OPERATORS
// ============================================================================

// evalComparison implements < <= > >=, which are defined on Numbers only
func evalComparison(op parser.TokenType, left, right types.Value) types.Result {
	l, r, ok := numbers(left, right)
	if !ok {
		return operandError(op, left, right)
	}

	var v bool
	switch op {
	case parser.TOKEN_LT:
		v = l < r
	case parser.TOKEN_LE:
		v = l <= r
	case parser.TOKEN_GT:
		v = l > r
	case parser.TOKEN_GE:
		v = l >= r
	default:
		return types.Fail(types.E_INTERNAL, "unknown comparison operator %s", op)
	}
	return types.Ok(types.NewBool(v))
}

// evalEquality implements == and != over full structural equality.
// Composites are compared through the heap, so two separately built
// arrays with equal elements are equal.
func (e *Evaluator) evalEquality(op parser.TokenType, left, right types.Value) types.Result {
	eq, err := e.heap.Equal(left, right)
	if err != nil {
		return types.Err(types.AsError(err))
	}
	if op == parser.TOKEN_NE {
		eq = !eq
	}
	return types.Ok(types.NewBool(eq))
}

// ============================================================================
// LOGICAL OPERATORS
// ============================================================================

// evalLogical implements && and ||. Both operands are always evaluated
// and both must be Boolean.
func evalLogical(op parser.TokenType, left, right types.Value) types.Result {
	l, lok := left.(types.BoolValue)
	r, rok := right.(types.BoolValue)
	if !lok || !rok {
		return operandError(op, left, right)
	}
	if op == parser.TOKEN_AND {
		return types.Ok(types.NewBool(l.Val && r.Val))
	}
	return types.Ok(types.NewBool(l.Val || r.Val))
}
