package monty

// builtinSum implements sum(iterable, start=0), folding addValues across the
// iterable's elements. A str start is explicitly rejected (spec §4.H, per
// crates/monty/src/builtins/sum.rs): use ''.join(seq) for string
// concatenation instead.
func builtinSum(h *Heap, args ArgValues) (Value, error) {
	if args.Len() < 1 || args.Len() > 2 {
		return Value{}, typeErrorf("sum() takes one or two arguments (%d given)", args.Len())
	}
	iterable := args.Positional(0)

	var acc Value
	if args.Len() == 2 {
		acc = args.Positional(1)
		if acc.PyType(h) == "str" {
			acc.DropWithHeap(h)
			iterable.DropWithHeap(h)
			return Value{}, typeErrorf("sum() can't sum strings [use ''.join(seq) instead]")
		}
	} else {
		acc = Int(0)
	}

	items, owned, err := iterateValues(iterable, h)
	if err != nil {
		acc.DropWithHeap(h)
		iterable.DropWithHeap(h)
		return Value{}, err
	}

	for _, v := range items {
		acc, err = addValues(acc, v.CloneWithHeap(h), h)
		if err != nil {
			dropIterItems(items, owned, h)
			iterable.DropWithHeap(h)
			return Value{}, err
		}
	}
	dropIterItems(items, owned, h)
	iterable.DropWithHeap(h)
	return acc, nil
}
