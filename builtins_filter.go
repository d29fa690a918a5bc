package monty

// builtinFilter implements filter(function_or_none, iterable). Python's
// filter returns a lazy iterator; this core materializes a List instead
// (spec's documented simplification — the sandboxed programs this
// interpreter targets are short-lived enough that eagerness is not a
// correctness concern, only a laziness-vs-eagerness style difference).
func builtinFilter(h *Heap, args ArgValues, call CallFn) (Value, error) {
	if args.Len() != 2 {
		return Value{}, typeErrorf("filter() takes exactly two arguments (%d given)", args.Len())
	}
	fn := args.Positional(0)
	iterable := args.Positional(1)
	items, owned, err := iterateValues(iterable, h)
	if err != nil {
		fn.DropWithHeap(h)
		iterable.DropWithHeap(h)
		return Value{}, err
	}

	kept := make([]Value, 0, len(items))
	for _, v := range items {
		var ok bool
		if fn.Kind() == KindNone {
			ok = v.PyBool(h)
		} else {
			res, err := call(fn.CloneWithHeap(h), OneArg(v.CloneWithHeap(h)))
			if err != nil {
				for _, k := range kept {
					k.DropWithHeap(h)
				}
				dropIterItems(items, owned, h)
				fn.DropWithHeap(h)
				iterable.DropWithHeap(h)
				return Value{}, err
			}
			ok = res.PyBool(h)
			res.DropWithHeap(h)
		}
		if ok {
			kept = append(kept, v.CloneWithHeap(h))
		}
	}

	dropIterItems(items, owned, h)
	fn.DropWithHeap(h)
	iterable.DropWithHeap(h)
	return Ref(h.Allocate(NewList(kept))), nil
}
