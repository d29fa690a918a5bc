package monty

// builtinMap implements map(function, iterable), materializing a List of
// results rather than Python's lazy iterator (same simplification as
// filter, and for the same reason).
func builtinMap(h *Heap, args ArgValues, call CallFn) (Value, error) {
	if args.Len() != 2 {
		return Value{}, typeErrorf("map() takes exactly two arguments (%d given)", args.Len())
	}
	fn := args.Positional(0)
	iterable := args.Positional(1)
	items, owned, err := iterateValues(iterable, h)
	if err != nil {
		fn.DropWithHeap(h)
		iterable.DropWithHeap(h)
		return Value{}, err
	}

	results := make([]Value, 0, len(items))
	for _, v := range items {
		res, err := call(fn.CloneWithHeap(h), OneArg(v.CloneWithHeap(h)))
		if err != nil {
			for _, r := range results {
				r.DropWithHeap(h)
			}
			dropIterItems(items, owned, h)
			fn.DropWithHeap(h)
			iterable.DropWithHeap(h)
			return Value{}, err
		}
		results = append(results, res)
	}

	dropIterItems(items, owned, h)
	fn.DropWithHeap(h)
	iterable.DropWithHeap(h)
	return Ref(h.Allocate(NewList(results))), nil
}
