package monty

// builtinAny implements any(iterable): True if any element is truthy, False
// if the iterable is empty or every element is falsy.
func builtinAny(h *Heap, args ArgValues, call CallFn) (Value, error) {
	if args.Len() != 1 {
		return Value{}, typeErrorf("any() takes exactly one argument (%d given)", args.Len())
	}
	iterable := args.Positional(0)
	items, owned, err := iterateValues(iterable, h)
	if err != nil {
		iterable.DropWithHeap(h)
		return Value{}, err
	}
	result := false
	for _, v := range items {
		if v.PyBool(h) {
			result = true
			break
		}
	}
	dropIterItems(items, owned, h)
	iterable.DropWithHeap(h)
	return Bool(result), nil
}
