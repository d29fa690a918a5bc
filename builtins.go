package monty

// BuiltinID identifies one of the small set of free functions the core
// exposes directly (spec §4.H). Unlike attribute methods (dispatched via
// PyCallAttr on a heap payload), builtins are looked up by name at prepare
// time; a Call expression always carries the resolved BuiltinID directly
// (spec §6's `Call{builtin_id, args, kwargs}`), never a name to re-resolve
// at run time. A builtin can also be carried around as a bare Value
// (KindBuiltin) — e.g. passed as filter/map's predicate argument — and
// invoked indirectly through the frame's CallFn hook rather than through a
// Call expression.
type BuiltinID uint8

const (
	BuiltinAny BuiltinID = iota
	BuiltinFilter
	BuiltinMap
	BuiltinSum
	BuiltinPrint
)

var builtinNames = map[BuiltinID]string{
	BuiltinAny:    "any",
	BuiltinFilter: "filter",
	BuiltinMap:    "map",
	BuiltinSum:    "sum",
	BuiltinPrint:  "print",
}

func builtinName(id BuiltinID) string {
	if name, ok := builtinNames[id]; ok {
		return name
	}
	return "?"
}

// LookupBuiltin resolves a builtin by its Python-visible name, for use when
// preparing a program's name table.
func LookupBuiltin(name string) (BuiltinID, bool) {
	for id, n := range builtinNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// CallFn is the frame executor's hook for invoking a callback Value (needed
// by filter/map, whose argument is itself a callable); it returns the
// callback's result. CallBuiltin, which dispatches a builtin call, receives
// it as call.
type CallFn func(callee Value, args ArgValues) (Value, error)

func CallBuiltin(id BuiltinID, h *Heap, args ArgValues, w *PrintWriter, call CallFn) (Value, error) {
	switch id {
	case BuiltinAny:
		return builtinAny(h, args, call)
	case BuiltinFilter:
		return builtinFilter(h, args, call)
	case BuiltinMap:
		return builtinMap(h, args, call)
	case BuiltinSum:
		return builtinSum(h, args)
	case BuiltinPrint:
		return builtinPrint(h, args, w)
	default:
		return Value{}, newInternalError("CallBuiltin: unknown builtin id %d", id)
	}
}

// iterateValues materializes the elements of an iterable argument (spec
// §4.I: lists, tuples, strings, bytes). For List/Tuple the returned items
// are borrowed from the container — the container keeps ownership, and
// they're released when the iterable itself is dropped. Str and Bytes have
// no existing per-element Values to borrow, so each element is freshly
// constructed (a one-character Str, or an Int byte value) and owned by the
// caller: the returned owned flag is true, and the caller must drop every
// item after use, in addition to dropping the original iterable.
func iterateValues(v Value, h *Heap) (items []Value, owned bool, err error) {
	if !v.IsRef() {
		return nil, false, typeErrorf("'%s' object is not iterable", v.PyType(h))
	}
	switch data := h.Get(v.HeapID()).(type) {
	case *List:
		return data.Items(), false, nil
	case *Tuple:
		return data.Items(), false, nil
	case *Str:
		runes := []rune(data.Value())
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = Ref(h.Allocate(NewStr(string(r))))
		}
		return out, true, nil
	case *Bytes:
		raw := data.Value()
		out := make([]Value, len(raw))
		for i, c := range raw {
			out[i] = Int(int64(c))
		}
		return out, true, nil
	default:
		return nil, false, typeErrorf("'%s' object is not iterable", v.PyType(h))
	}
}

// dropIterItems releases items materialized by iterateValues when owned is
// true; a no-op otherwise, since borrowed items belong to their container.
func dropIterItems(items []Value, owned bool, h *Heap) {
	if !owned {
		return
	}
	for _, v := range items {
		v.DropWithHeap(h)
	}
}
