package eval

import (
	"kaffee/parser"
	"kaffee/types"
)

// member locates key inside container and returns the member's slot.
// found is false for a missing object key or an array index outside the
// array. Objects are keyed by String, arrays by non-negative integer.
func (e *Evaluator) member(container, key types.Value) (types.Index, bool, *types.Error) {
	switch c := container.(type) {
	case types.ObjectValue:
		if _, ok := key.(types.StrValue); !ok {
			return 0, false, types.NewError(types.E_INVIND, "object key must be a String, got %s", key.Type())
		}
		i, found, err := e.heap.FindKey(c, key)
		if err != nil {
			return 0, false, types.AsError(err)
		}
		if !found {
			return 0, false, nil
		}
		return c.Vals[i], true, nil

	case types.ArrayValue:
		n, ok := key.(types.NumberValue)
		if !ok || !n.IsInteger() {
			return 0, false, types.NewError(types.E_INVIND, "array index must be an integer, got %s", key)
		}
		if n.Val < 0 || n.Val >= float64(c.Len()) {
			return 0, false, nil
		}
		return c.Elems[int(n.Val)], true, nil

	default:
		return 0, false, types.NewError(types.E_PROPACCESS, "cannot access a member of %s", container.Type())
	}
}

// missingMember is the read error for a key member() did not find
func missingMember(container, key types.Value) *types.Error {
	if arr, ok := container.(types.ArrayValue); ok {
		return types.NewError(types.E_RANGE, "index %s out of range for Array of length %d", key, arr.Len())
	}
	return types.NewError(types.E_UNKNOWNPROP, "no property %s", key)
}

// readMember returns the value of container's member at key
func (e *Evaluator) readMember(container, key types.Value) types.Result {
	ix, found, err := e.member(container, key)
	if err != nil {
		return types.Err(err)
	}
	if !found {
		return types.Err(missingMember(container, key))
	}
	return e.read(ix)
}

// evalProperty evaluates property access: expr.name
func (e *Evaluator) evalProperty(node *parser.PropertyExpr) types.Result {
	exprResult := e.evalExpr(node.Expr)
	if !exprResult.IsNormal() {
		return exprResult
	}
	return e.readMember(exprResult.Val, types.NewStr(node.Property))
}

// evalIndex evaluates indexing: expr[index]
func (e *Evaluator) evalIndex(node *parser.IndexExpr) types.Result {
	exprResult := e.evalExpr(node.Expr)
	if !exprResult.IsNormal() {
		return exprResult
	}

	mark := e.pin(exprResult.Val)
	indexResult := e.evalExpr(node.Index)
	e.unpin(mark)
	if !indexResult.IsNormal() {
		return indexResult
	}
	return e.readMember(exprResult.Val, indexResult.Val)
}

// ============================================================================
// ASSIGNMENT
// ============================================================================

// evalAssign evaluates target = value and yields the assigned value.
// The value is evaluated before the target path.
func (e *Evaluator) evalAssign(node *parser.AssignExpr) types.Result {
	valueResult := e.evalExpr(node.Value)
	if !valueResult.IsNormal() {
		return valueResult
	}
	value := valueResult.Val

	mark := e.pin(value)
	defer e.unpin(mark)

	var result types.Result
	switch target := node.Target.(type) {
	case *parser.IdentifierExpr:
		ix, err := e.scopes.Resolve(target.Name)
		if err != nil {
			return types.Err(types.AsError(err).At(target.Pos))
		}
		result = e.write(ix, value, target.Name)
	case *parser.PropertyExpr:
		result = e.assignMember(target.Expr, func() types.Result {
			return types.Ok(types.NewStr(target.Property))
		}, value)
	case *parser.IndexExpr:
		result = e.assignMember(target.Expr, func() types.Result {
			return e.evalExpr(target.Index)
		}, value)
	default:
		return types.Fail(types.E_INSERT, "cannot assign to %s", parser.UnparseExpr(node.Target))
	}

	if !result.IsNormal() {
		return result
	}
	return types.Ok(value)
}

// write stores value in an existing slot unless the slot is constant
func (e *Evaluator) write(ix types.Index, value types.Value, what string) types.Result {
	slot, err := e.heap.Slot(ix)
	if err != nil {
		return types.Err(types.AsError(err))
	}
	if slot.Constant {
		return types.Fail(types.E_CONST, "cannot assign to constant %s", what)
	}
	if err := e.heap.Write(ix, value); err != nil {
		return types.Err(types.AsError(err))
	}
	return types.Ok(value)
}

// assignMember assigns container[key] = value. An existing member is
// overwritten in place. A missing object key is inserted, which rewrites
// the container's own slot; the container must therefore live in a slot,
// and constness of that slot does not prevent insertion. Arrays never grow
// by assignment.
//
// The container's slot is resolved before the key is evaluated, and read
// again afterwards, so a key expression that inserts into or rebinds the
// container is seen by the assignment.
func (e *Evaluator) assignMember(containerExpr parser.Expr, evalKey func() types.Result, value types.Value) types.Result {
	owner, hasOwner, containerResult := e.locate(containerExpr)
	if !containerResult.IsNormal() {
		return containerResult
	}
	container := containerResult.Val

	mark := e.pin(container)
	defer e.unpin(mark)
	if hasOwner {
		// keeps the owner slot itself alive while the key runs
		e.pin(types.NewArray([]types.Index{owner}))
	}

	keyResult := evalKey()
	if !keyResult.IsNormal() {
		return keyResult
	}
	key := keyResult.Val

	if hasOwner {
		fresh, err := e.heap.Read(owner)
		if err != nil {
			return types.Err(types.AsError(err))
		}
		container = fresh
	}

	ix, found, err := e.member(container, key)
	if err != nil {
		return types.Err(err)
	}
	if found {
		return e.write(ix, value, parser.UnparseExpr(containerExpr)+"["+key.String()+"]")
	}

	obj, ok := container.(types.ObjectValue)
	if !ok {
		arr := container.(types.ArrayValue)
		return types.Fail(types.E_INSERT, "cannot assign index %s of Array of length %d", key, arr.Len())
	}
	if !hasOwner {
		return types.Fail(types.E_INSERT, "cannot insert %s into a temporary object", key)
	}

	keyIx := e.heap.Allocate(key, true)
	valIx := e.heap.Allocate(value, false)
	if err := e.heap.Write(owner, obj.Insert(keyIx, valIx)); err != nil {
		return types.Err(types.AsError(err))
	}
	return types.Ok(value)
}

// locate resolves the container part of an assignment path to the slot
// holding it. Identifiers and member accesses name a slot; any other
// expression is evaluated to a temporary that has none. A missing object
// key along the path is an invalid insertion target.
func (e *Evaluator) locate(expr parser.Expr) (types.Index, bool, types.Result) {
	switch n := expr.(type) {
	case *parser.IdentifierExpr:
		ix, err := e.scopes.Resolve(n.Name)
		if err != nil {
			return 0, false, types.Err(types.AsError(err).At(n.Pos))
		}
		return ix, true, e.read(ix)

	case *parser.PropertyExpr:
		return e.locateMember(n.Expr, func() types.Result {
			return types.Ok(types.NewStr(n.Property))
		}, n.Pos)

	case *parser.IndexExpr:
		return e.locateMember(n.Expr, func() types.Result {
			return e.evalExpr(n.Index)
		}, n.Pos)

	default:
		return 0, false, e.evalExpr(expr)
	}
}

func (e *Evaluator) locateMember(containerExpr parser.Expr, evalKey func() types.Result, pos parser.Position) (types.Index, bool, types.Result) {
	_, _, containerResult := e.locate(containerExpr)
	if !containerResult.IsNormal() {
		return 0, false, containerResult
	}
	container := containerResult.Val

	mark := e.pin(container)
	keyResult := evalKey()
	e.unpin(mark)
	if !keyResult.IsNormal() {
		return 0, false, keyResult
	}
	key := keyResult.Val

	ix, found, err := e.member(container, key)
	if err != nil {
		return 0, false, types.Err(err.At(pos))
	}
	if !found {
		if _, ok := container.(types.ObjectValue); ok {
			err = types.NewError(types.E_INSERT, "cannot assign through missing property %s", key)
		} else {
			err = missingMember(container, key)
		}
		return 0, false, types.Err(err.At(pos))
	}
	return ix, true, e.read(ix)
}
