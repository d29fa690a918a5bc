package monty

import "math"

// Attr is an interned attribute/method name used by PyCallAttr. The real
// embedding interns these at prepare time; the core only needs the string
// form to dispatch and to report AttributeError.
type Attr string

// ArgKind discriminates the small ArgValues shapes used to call builtins and
// attribute methods without allocating a slice for the common 0/1/2-arg
// cases (spec §4.H).
type ArgKind uint8

const (
	ArgsZero ArgKind = iota
	ArgsOne
	ArgsTwo
	ArgsMany
)

// ArgValues is the argument-passing shape handed to builtins and to
// PyCallAttr implementations.
type ArgValues struct {
	kind   ArgKind
	a, b   Value
	args   []Value
	kwargs map[string]Value
}

func NoArgs() ArgValues { return ArgValues{kind: ArgsZero} }

func OneArg(a Value) ArgValues { return ArgValues{kind: ArgsOne, a: a} }

func TwoArgs(a, b Value) ArgValues { return ArgValues{kind: ArgsTwo, a: a, b: b} }

func ManyArgs(args []Value, kwargs map[string]Value) ArgValues {
	return ArgValues{kind: ArgsMany, args: args, kwargs: kwargs}
}

// Len reports the number of positional arguments.
func (a ArgValues) Len() int {
	switch a.kind {
	case ArgsZero:
		return 0
	case ArgsOne:
		return 1
	case ArgsTwo:
		return 2
	default:
		return len(a.args)
	}
}

// Positional returns the i'th positional argument.
func (a ArgValues) Positional(i int) Value {
	switch a.kind {
	case ArgsOne:
		return a.a
	case ArgsTwo:
		if i == 0 {
			return a.a
		}
		return a.b
	default:
		return a.args[i]
	}
}

// Kwarg looks up a keyword argument by name.
func (a ArgValues) Kwarg(name string) (Value, bool) {
	if a.kwargs == nil {
		return Value{}, false
	}
	v, ok := a.kwargs[name]
	return v, ok
}

// DropWithHeap releases every positional and keyword argument's refcount
// obligation, if any. Used on error paths that must not leak a
// partially-consumed call.
func (a ArgValues) DropWithHeap(h *Heap) {
	for i := 0; i < a.Len(); i++ {
		a.Positional(i).DropWithHeap(h)
	}
	for _, v := range a.kwargs {
		v.DropWithHeap(h)
	}
}

// PyTrait is the closed dispatch contract every heap-resident type
// (Str, Bytes, List, Tuple, Dict) satisfies (spec §4.D). It is a sealed Go
// interface: heapData() is unexported, so no package outside monty can add
// a sixth variant, matching the spec's "closed type universe".
type PyTrait interface {
	heapData()

	// PyType returns the Python type name, e.g. "str", "list".
	PyType(h *Heap) string
	// PyBool reports truthiness.
	PyBool(h *Heap) bool
	// PyLen returns the element/byte count, or ok=false for lengthless types.
	PyLen(h *Heap) (n int, ok bool)
	// PyEq is structural equality; cross-variant comparisons are false.
	PyEq(other PyTrait, h *Heap) bool
	// PyRepr is a round-trippable representation.
	PyRepr(h *Heap) string
	// PyStr is the informal string form.
	PyStr(h *Heap) string
	// PyAdd returns (result, true) on success, (_, false) if unsupported.
	PyAdd(other PyTrait, h *Heap) (Value, bool, error)
	// PySub mirrors PyAdd for subtraction.
	PySub(other PyTrait, h *Heap) (Value, bool, error)
	// PyMod mirrors PyAdd for the modulo/format operator.
	PyMod(other PyTrait, h *Heap) (Value, bool, error)
	// PyIAdd attempts to mutate self in place; ok=false tells the caller to
	// fall back to PyAdd (e.g. the target is shared, refcount > 1).
	PyIAdd(other Value, h *Heap, selfID HeapId) (ok bool, err error)
	// PyGetItem implements indexing: an int index for sequences (negative
	// values count from the end), a key lookup for Dict. Slices are not
	// supported; a non-int sequence index raises TypeError.
	PyGetItem(key Value, h *Heap) (Value, error)
	// PySetItem implements item assignment.
	PySetItem(key, val Value, h *Heap) error
	// PyCallAttr dispatches a method call by interned attribute name.
	PyCallAttr(h *Heap, attr Attr, args ArgValues) (Value, error)
	// PyHash returns (hash, true) for hashable payloads, (_, false) otherwise.
	PyHash(h *Heap) (uint64, bool)
	// PyDecRefIDs appends every child Ref's HeapId exactly once, for the
	// heap's recursive-release worklist.
	PyDecRefIDs(out *[]HeapId)
}

// hashValue computes the dict-key hash of an arbitrary Value: immediates
// hash trivially, Refs go through the heap's lazy hash cache.
func hashValue(v Value, h *Heap) (uint64, bool) {
	if n, ok := numericValue(v); ok {
		// Bool/Int/Float share the numeric tower for equality (1 == True ==
		// 1.0), so they must also share it for hashing.
		return hashMix(math.Float64bits(n), 0), true
	}
	switch v.kind {
	case KindNone:
		return hashMix(0, 1), true
	case KindBuiltin:
		return hashMix(uint64(v.builtin), 6), true
	case KindRef:
		return h.GetOrComputeHash(v.ref)
	default:
		return 0, false
	}
}

// hashMix is a small, fast avalanche used to combine a value with a
// type-discriminating salt so immediates of different kinds that happen to
// share a bit pattern (e.g. int 0 vs float 0.0, which must compare equal and
// therefore must hash equal — handled by callers comparing via PyEq/numeric
// coercion before ever reaching here) do not collide gratuitously.
func hashMix(x uint64, salt uint64) uint64 {
	x ^= salt * 0x9e3779b97f4a7c15
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
