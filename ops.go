package monty

// addValues implements the `+` operator across the numeric tower and the
// four heap-resident variants that support concatenation (Str, Bytes,
// List, Tuple). Both operands are consumed (their refcount obligation is
// resolved) by the time this returns, on both the success and error paths.
func addValues(a, b Value, h *Heap) (Value, error) {
	if an, aOk := numericValue(a); aOk {
		if bn, bOk := numericValue(b); bOk {
			a.DropWithHeap(h)
			b.DropWithHeap(h)
			if a.Kind() == KindFloat || b.Kind() == KindFloat {
				return Float(an + bn), nil
			}
			return Int(a.coerceInt() + b.coerceInt()), nil
		}
	}
	ta, tb := a.PyType(h), b.PyType(h)
	if a.IsRef() && b.IsRef() {
		v, ok, err := h.Get(a.HeapID()).PyAdd(h.Get(b.HeapID()), h)
		a.DropWithHeap(h)
		b.DropWithHeap(h)
		if err != nil {
			return Value{}, err
		}
		if ok {
			return v, nil
		}
		return Value{}, typeErrorf("unsupported operand type(s) for +: '%s' and '%s'", ta, tb)
	}
	a.DropWithHeap(h)
	b.DropWithHeap(h)
	return Value{}, typeErrorf("unsupported operand type(s) for +: '%s' and '%s'", ta, tb)
}

func (v Value) coerceInt() int64 {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt:
		return v.i
	default:
		return int64(v.f)
	}
}

// subValues implements the `-` operator. Only numerics and the heap
// variants that opt in via PySub (none, in this core's closed type set, but
// the hook exists for symmetry with PyAdd) support it.
func subValues(a, b Value, h *Heap) (Value, error) {
	if an, aOk := numericValue(a); aOk {
		if bn, bOk := numericValue(b); bOk {
			a.DropWithHeap(h)
			b.DropWithHeap(h)
			if a.Kind() == KindFloat || b.Kind() == KindFloat {
				return Float(an - bn), nil
			}
			return Int(a.coerceInt() - b.coerceInt()), nil
		}
	}
	ta, tb := a.PyType(h), b.PyType(h)
	if a.IsRef() && b.IsRef() {
		v, ok, err := h.Get(a.HeapID()).PySub(h.Get(b.HeapID()), h)
		a.DropWithHeap(h)
		b.DropWithHeap(h)
		if err != nil {
			return Value{}, err
		}
		if ok {
			return v, nil
		}
		return Value{}, typeErrorf("unsupported operand type(s) for -: '%s' and '%s'", ta, tb)
	}
	a.DropWithHeap(h)
	b.DropWithHeap(h)
	return Value{}, typeErrorf("unsupported operand type(s) for -: '%s' and '%s'", ta, tb)
}

// modValues implements the `%` operator: numeric modulo, or Str formatting
// via PyMod.
func modValues(a, b Value, h *Heap) (Value, error) {
	if an, aOk := numericValue(a); aOk {
		if bn, bOk := numericValue(b); bOk {
			isFloat := a.Kind() == KindFloat || b.Kind() == KindFloat
			a.DropWithHeap(h)
			b.DropWithHeap(h)
			if bn == 0 {
				return Value{}, valueErrorf("modulo by zero")
			}
			if isFloat {
				return Float(pymod(an, bn)), nil
			}
			return Int(int64(pymod(an, bn))), nil
		}
	}
	ta, tb := a.PyType(h), b.PyType(h)
	if a.IsRef() && b.IsRef() {
		v, ok, err := h.Get(a.HeapID()).PyMod(h.Get(b.HeapID()), h)
		a.DropWithHeap(h)
		b.DropWithHeap(h)
		if err != nil {
			return Value{}, err
		}
		if ok {
			return v, nil
		}
		return Value{}, typeErrorf("unsupported operand type(s) for %%: '%s' and '%s'", ta, tb)
	}
	a.DropWithHeap(h)
	b.DropWithHeap(h)
	return Value{}, typeErrorf("unsupported operand type(s) for %%: '%s' and '%s'", ta, tb)
}

// pymod computes Python's floored modulo (result shares sign with the
// divisor), unlike Go's truncated %.
func pymod(a, b float64) float64 {
	r := a - b*float64(int64(a/b))
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// iaddValues implements `+=`, attempting in-place mutation via PyIAdd
// before falling back to plain addValues. target is consumed on the
// fallback path but not on the mutate-in-place path (the caller keeps the
// same Ref). PyIAdd takes other by value (mirroring the original's
// `py_iadd(&mut self, other: Value, …)`): on the successful in-place path,
// other's refcount obligation is ours to release here, since a PyIAdd
// implementation only absorbs other's *children* (e.g. List.PyIAdd
// IncRefs each element it copies in) and never touches other's own slot.
func iaddValues(target, other Value, h *Heap) (Value, error) {
	if target.IsRef() {
		ok, err := h.Get(target.HeapID()).PyIAdd(other, h, target.HeapID())
		if err != nil {
			target.DropWithHeap(h)
			return Value{}, err
		}
		if ok {
			other.DropWithHeap(h)
			return target, nil
		}
	}
	return addValues(target, other, h)
}

// compareValues implements the ordering/equality comparison operators used
// by CmpOp expressions: ==, !=, <, <=, >, >=.
type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func compareValues(op CmpOp, a, b Value, h *Heap) (Value, error) {
	switch op {
	case CmpEq:
		eq := PyEq(a, b, h)
		a.DropWithHeap(h)
		b.DropWithHeap(h)
		return Bool(eq), nil
	case CmpNe:
		eq := PyEq(a, b, h)
		a.DropWithHeap(h)
		b.DropWithHeap(h)
		return Bool(!eq), nil
	}
	an, aOk := numericValue(a)
	bn, bOk := numericValue(b)
	if !aOk || !bOk {
		ta, tb := a.PyType(h), b.PyType(h)
		a.DropWithHeap(h)
		b.DropWithHeap(h)
		return Value{}, typeErrorf("'%s' not supported between instances of '%s' and '%s'", cmpOpSymbol(op), ta, tb)
	}
	a.DropWithHeap(h)
	b.DropWithHeap(h)
	switch op {
	case CmpLt:
		return Bool(an < bn), nil
	case CmpLe:
		return Bool(an <= bn), nil
	case CmpGt:
		return Bool(an > bn), nil
	case CmpGe:
		return Bool(an >= bn), nil
	default:
		return Value{}, newInternalError("compareValues: unknown CmpOp %d", op)
	}
}

func cmpOpSymbol(op CmpOp) string {
	switch op {
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}
