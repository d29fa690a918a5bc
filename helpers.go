package monty

// indexForSequence normalizes a Python-style index (supporting negative
// indices counting from the end) against a sequence of the given length,
// raising IndexError with a message naming typeName on out-of-range access.
// key must be an int Value; any other kind is a TypeError, mirroring
// Python's "indices must be integers".
func indexForSequence(key Value, h *Heap, length int, typeName string) (int, error) {
	if key.Kind() != KindInt {
		return 0, typeErrorf("%s indices must be integers, not %s", typeName, key.PyType(h))
	}
	idx := int(key.AsInt())
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, indexErrorf("%s index out of range", typeName)
	}
	return idx, nil
}
