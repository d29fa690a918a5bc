package monty

import "strings"

// Tuple is the heap-resident immutable sequence type. Unlike List, a Tuple
// is hashable provided every element is hashable (IV-3), so it can be used
// as a Dict key.
type Tuple struct {
	items []Value
}

// NewTuple wraps items (taken by reference) as a Monty Tuple payload.
func NewTuple(items []Value) *Tuple { return &Tuple{items: items} }

func (*Tuple) heapData() {}

func (t *Tuple) Items() []Value { return t.items }

func (t *Tuple) PyType(h *Heap) string { return "tuple" }

func (t *Tuple) PyBool(h *Heap) bool { return len(t.items) > 0 }

func (t *Tuple) PyLen(h *Heap) (int, bool) { return len(t.items), true }

func (t *Tuple) PyEq(other PyTrait, h *Heap) bool {
	o, ok := other.(*Tuple)
	if !ok || len(t.items) != len(o.items) {
		return false
	}
	for i := range t.items {
		if !PyEq(t.items[i], o.items[i], h) {
			return false
		}
	}
	return true
}

func (t *Tuple) PyRepr(h *Heap) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range t.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.PyRepr(h))
	}
	if len(t.items) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

func (t *Tuple) PyStr(h *Heap) string { return t.PyRepr(h) }

func (t *Tuple) PyAdd(other PyTrait, h *Heap) (Value, bool, error) {
	o, ok := other.(*Tuple)
	if !ok {
		return Value{}, false, nil
	}
	joined := make([]Value, 0, len(t.items)+len(o.items))
	for _, v := range t.items {
		joined = append(joined, v.CloneWithHeap(h))
	}
	for _, v := range o.items {
		joined = append(joined, v.CloneWithHeap(h))
	}
	return Ref(h.Allocate(NewTuple(joined))), true, nil
}

func (t *Tuple) PySub(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }
func (t *Tuple) PyMod(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }

func (t *Tuple) PyIAdd(other Value, h *Heap, selfID HeapId) (bool, error) {
	// Tuple is immutable: caller falls back to PyAdd.
	return false, nil
}

func (t *Tuple) PyGetItem(key Value, h *Heap) (Value, error) {
	idx, err := indexForSequence(key, h, len(t.items), "tuple")
	if err != nil {
		return Value{}, err
	}
	return t.items[idx].CloneWithHeap(h), nil
}

func (t *Tuple) PySetItem(key, val Value, h *Heap) error {
	return typeErrorf("'tuple' object does not support item assignment")
}

func (t *Tuple) PyCallAttr(h *Heap, attr Attr, args ArgValues) (Value, error) {
	return Value{}, attributeErrorf("'tuple' object has no attribute '%s'", attr)
}

// PyHash combines each element's hash, short-circuiting to unhashable the
// moment any element is. Hashing an empty tuple is defined (a fixed salt),
// matching the general convention that empty immutable containers hash.
func (t *Tuple) PyHash(h *Heap) (uint64, bool) {
	acc := hashMix(0, 4)
	for _, v := range t.items {
		hv, ok := hashValue(v, h)
		if !ok {
			return 0, false
		}
		acc = hashMix(acc^hv, 5)
	}
	return acc, true
}

func (t *Tuple) PyDecRefIDs(out *[]HeapId) {
	for _, v := range t.items {
		if v.IsRef() {
			*out = append(*out, v.HeapID())
		}
	}
}
