package heap

import (
	"fmt"
	"strings"

	"kaffee/parser"
	"kaffee/types"
)

// Equal compares two values structurally, following composite members
// through the heap. Arrays compare element-wise in order; objects compare
// as key sets, each key mapping to equal values. Functions compare by
// parameters and body, natives by name.
func (h *Heap) Equal(a, b types.Value) (bool, error) {
	return h.equal(a, b, make(map[[2]types.Index]bool))
}

func (h *Heap) equal(a, b types.Value, seen map[[2]types.Index]bool) (bool, error) {
	switch av := a.(type) {
	case types.ArrayValue:
		bv, ok := b.(types.ArrayValue)
		if !ok || av.Len() != bv.Len() {
			return false, nil
		}
		for i := range av.Elems {
			eq, err := h.equalAt(av.Elems[i], bv.Elems[i], seen)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil

	case types.ObjectValue:
		bv, ok := b.(types.ObjectValue)
		if !ok || av.Len() != bv.Len() {
			return false, nil
		}
		for i, keyIx := range av.Keys {
			key, err := h.Read(keyIx)
			if err != nil {
				return false, err
			}
			j, found, err := h.FindKey(bv, key)
			if err != nil || !found {
				return false, err
			}
			eq, err := h.equalAt(av.Vals[i], bv.Vals[j], seen)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	}
	return a.Equal(b), nil
}

// equalAt compares the values stored at two indices. A pair already being
// compared further up is assumed equal, which terminates cycles.
func (h *Heap) equalAt(ia, ib types.Index, seen map[[2]types.Index]bool) (bool, error) {
	if ia == ib {
		return true, nil
	}
	pair := [2]types.Index{ia, ib}
	if seen[pair] {
		return true, nil
	}
	seen[pair] = true

	av, err := h.Read(ia)
	if err != nil {
		return false, err
	}
	bv, err := h.Read(ib)
	if err != nil {
		return false, err
	}
	return h.equal(av, bv, seen)
}

// FindKey returns the position of key among obj's keys
func (h *Heap) FindKey(obj types.ObjectValue, key types.Value) (int, bool, error) {
	for i, keyIx := range obj.Keys {
		k, err := h.Read(keyIx)
		if err != nil {
			return 0, false, err
		}
		if k.Equal(key) {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// Inspect renders a value for display, resolving composite members.
// Members that no longer exist show as <dangling #n>.
func (h *Heap) Inspect(v types.Value) string {
	var sb strings.Builder
	h.inspect(&sb, v, make(map[types.Index]bool))
	return sb.String()
}

func (h *Heap) inspect(sb *strings.Builder, v types.Value, path map[types.Index]bool) {
	switch val := v.(type) {
	case types.ArrayValue:
		sb.WriteByte('[')
		for i, ix := range val.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			h.inspectAt(sb, ix, path)
		}
		sb.WriteByte(']')

	case types.ObjectValue:
		sb.WriteByte('{')
		for i := range val.Keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			key, err := h.Read(val.Keys[i])
			if s, ok := key.(types.StrValue); ok && err == nil && isBareKey(s.Value()) {
				sb.WriteString(s.Value())
			} else {
				h.inspectAt(sb, val.Keys[i], path)
			}
			sb.WriteString(": ")
			h.inspectAt(sb, val.Vals[i], path)
		}
		sb.WriteByte('}')

	case types.FunctionValue:
		fmt.Fprintf(sb, "<function %s/%d>", val.DisplayName(), val.Arity())

	default:
		sb.WriteString(v.String())
	}
}

func (h *Heap) inspectAt(sb *strings.Builder, ix types.Index, path map[types.Index]bool) {
	if path[ix] {
		sb.WriteString("<cycle>")
		return
	}
	v, err := h.Read(ix)
	if err != nil {
		fmt.Fprintf(sb, "<dangling %s>", ix)
		return
	}
	path[ix] = true
	h.inspect(sb, v, path)
	delete(path, ix)
}

func isBareKey(s string) bool {
	toks, err := parser.Tokenize(s)
	return err == nil && len(toks) == 2 && toks[0].Type == parser.TOKEN_IDENTIFIER && toks[0].Value == s
}

// Export converts a value into plain Go data: float64, string, bool, nil,
// []interface{} and map[string]interface{}. Functions export as their
// display text. Cyclic values cannot be exported.
func (h *Heap) Export(v types.Value) (interface{}, error) {
	return h.export(v, make(map[types.Index]bool))
}

func (h *Heap) export(v types.Value, path map[types.Index]bool) (interface{}, error) {
	switch val := v.(type) {
	case types.NumberValue:
		return val.Val, nil
	case types.StrValue:
		return val.Value(), nil
	case types.BoolValue:
		return val.Val, nil
	case types.NullValue:
		return nil, nil
	case types.ArrayValue:
		out := make([]interface{}, 0, val.Len())
		for _, ix := range val.Elems {
			elem, err := h.exportAt(ix, path)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case types.ObjectValue:
		out := make(map[string]interface{}, val.Len())
		for i := range val.Keys {
			key, err := h.Read(val.Keys[i])
			if err != nil {
				return nil, err
			}
			name := key.String()
			if s, ok := key.(types.StrValue); ok {
				name = s.Value()
			}
			member, err := h.exportAt(val.Vals[i], path)
			if err != nil {
				return nil, err
			}
			out[name] = member
		}
		return out, nil
	default:
		return h.Inspect(v), nil
	}
}

func (h *Heap) exportAt(ix types.Index, path map[types.Index]bool) (interface{}, error) {
	if path[ix] {
		return nil, types.NewError(types.E_INTERNAL, "cannot export cyclic value through %s", ix)
	}
	v, err := h.Read(ix)
	if err != nil {
		return nil, err
	}
	path[ix] = true
	defer delete(path, ix)
	return h.export(v, path)
}
