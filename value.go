package monty

import "fmt"

// Kind discriminates the variants of Value. It is the tag half of the
// tagged union described in spec §3: immediates carry their payload inline,
// Ref carries a HeapId and an owning refcount obligation on the arena.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindBuiltin
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBuiltin:
		return "builtin_function_or_method"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Value is the universal runtime value: always passed by value, cheap to
// copy except that a Ref carries one unit of refcount obligation on its
// target heap slot (IV-1). Bare copies of a Ref without going through
// CloneWithHeap/DropWithHeap are only legal when the original is being
// consumed (moved), never duplicated.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	builtin BuiltinID
	ref     HeapId
}

// None is the Value for Python's None.
func None() Value { return Value{kind: KindNone} }

// Bool wraps a boolean immediate.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer immediate.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating point immediate.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// FromBuiltin wraps a reference to a statically known callable.
func FromBuiltin(id BuiltinID) Value { return Value{kind: KindBuiltin, builtin: id} }

// Ref wraps an owning handle into the Heap. The caller is transferring one
// refcount unit of ownership to the returned Value; it must not also keep a
// live copy without going through CloneWithHeap.
func Ref(id HeapId) Value { return Value{kind: KindRef, ref: id} }

// Kind returns the variant discriminator.
func (v Value) Kind() Kind { return v.kind }

// IsRef reports whether v owns a heap slot.
func (v Value) IsRef() bool { return v.kind == KindRef }

// HeapID returns the target slot for a Ref value. Callers must check IsRef
// first; calling this on a non-Ref value returns 0, which is a valid-looking
// but meaningless id.
func (v Value) HeapID() HeapId { return v.ref }

// AsInt returns the wrapped integer; only meaningful when Kind() == KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the wrapped float; only meaningful when Kind() == KindFloat.
func (v Value) AsFloat() float64 { return v.f }

// AsBool returns the wrapped bool; only meaningful when Kind() == KindBool.
func (v Value) AsBool() bool { return v.b }

// AsBuiltin returns the wrapped builtin id; only meaningful when Kind() == KindBuiltin.
func (v Value) AsBuiltin() BuiltinID { return v.builtin }

// PyType returns the Python-visible type name of v, consulting the heap for
// Ref values since the type name depends on the variant stored there.
func (v Value) PyType(h *Heap) string {
	switch v.kind {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBuiltin:
		return "builtin_function_or_method"
	case KindRef:
		return h.Get(v.ref).PyType(h)
	default:
		return "unknown"
	}
}

// PyBool computes truthiness per spec §4.D: false for zero/empty/None,
// delegating to the heap payload's PyBool for Ref values.
func (v Value) PyBool(h *Heap) bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindBuiltin:
		return true
	case KindRef:
		return h.Get(v.ref).PyBool(h)
	default:
		return false
	}
}

// PyRepr renders a round-trippable representation of v.
func (v Value) PyRepr(h *Heap) string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return formatFloat(v.f)
	case KindBuiltin:
		return fmt.Sprintf("<built-in function %s>", builtinName(v.builtin))
	case KindRef:
		return h.Get(v.ref).PyRepr(h)
	default:
		return "<unknown>"
	}
}

// PyStr renders the informal string form of v (identical to PyRepr except
// for heap-resident Str, whose PyStr drops the surrounding quotes).
func (v Value) PyStr(h *Heap) string {
	if v.kind == KindRef {
		return h.Get(v.ref).PyStr(h)
	}
	return v.PyRepr(h)
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'n' || c == 'i' {
			return s
		}
	}
	return s + ".0"
}

// CloneWithHeap duplicates v. For Ref values this performs IncRef; for
// immediates it is a plain copy. This and DropWithHeap are the only
// sanctioned ways to duplicate or drop a Value (spec §4.A).
func (v Value) CloneWithHeap(h *Heap) Value {
	if v.kind == KindRef {
		h.IncRef(v.ref)
	}
	return v
}

// DropWithHeap releases v's refcount obligation, if any. No-op for
// immediates.
func (v Value) DropWithHeap(h *Heap) {
	if v.kind == KindRef {
		h.DecRef(v.ref)
	}
}

// PyEq computes structural equality between two Values, short-circuiting
// immediates and delegating to the heap payload's PyEq for two Refs.
// Cross-kind comparisons are false except for numeric-tower equality
// between Bool/Int/Float, matching Python's `1 == True`.
func PyEq(a, b Value, h *Heap) bool {
	an, aIsNum := numericValue(a)
	bn, bIsNum := numericValue(b)
	if aIsNum && bIsNum {
		return an == bn
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindBuiltin:
		return a.builtin == b.builtin
	case KindRef:
		return h.Get(a.ref).PyEq(h.Get(b.ref), h)
	default:
		return false
	}
}

func numericValue(v Value) (float64, bool) {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}
