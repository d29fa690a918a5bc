package monty

import "strings"

// List is the heap-resident mutable sequence type. Lists are never
// hashable (IV-3): PyHash always returns (_, false).
type List struct {
	items []Value
}

// NewList wraps items (taken by reference) as a Monty List payload. Callers
// transfer ownership of every Ref contained in items to the new List.
func NewList(items []Value) *List { return &List{items: items} }

func (*List) heapData() {}

func (l *List) Items() []Value { return l.items }

func (l *List) PyType(h *Heap) string { return "list" }

func (l *List) PyBool(h *Heap) bool { return len(l.items) > 0 }

func (l *List) PyLen(h *Heap) (int, bool) { return len(l.items), true }

func (l *List) PyEq(other PyTrait, h *Heap) bool {
	o, ok := other.(*List)
	if !ok || len(l.items) != len(o.items) {
		return false
	}
	for i := range l.items {
		if !PyEq(l.items[i], o.items[i], h) {
			return false
		}
	}
	return true
}

func (l *List) PyRepr(h *Heap) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.PyRepr(h))
	}
	b.WriteByte(']')
	return b.String()
}

func (l *List) PyStr(h *Heap) string { return l.PyRepr(h) }

func (l *List) PyAdd(other PyTrait, h *Heap) (Value, bool, error) {
	o, ok := other.(*List)
	if !ok {
		return Value{}, false, nil
	}
	joined := make([]Value, 0, len(l.items)+len(o.items))
	for _, v := range l.items {
		joined = append(joined, v.CloneWithHeap(h))
	}
	for _, v := range o.items {
		joined = append(joined, v.CloneWithHeap(h))
	}
	return Ref(h.Allocate(NewList(joined))), true, nil
}

func (l *List) PySub(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }
func (l *List) PyMod(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }

// PyIAdd extends self in place when other is a List, regardless of self's
// sharing (Python list += always mutates in place; the ok=false fallback
// exists only for unsupported operand types).
func (l *List) PyIAdd(other Value, h *Heap, selfID HeapId) (bool, error) {
	if other.IsRef() {
		if h.IaddExtendList(other.HeapID(), &l.items) {
			return true, nil
		}
	}
	return false, nil
}

func (l *List) PyGetItem(key Value, h *Heap) (Value, error) {
	idx, err := indexForSequence(key, h, len(l.items), "list")
	if err != nil {
		return Value{}, err
	}
	return l.items[idx].CloneWithHeap(h), nil
}

func (l *List) PySetItem(key, val Value, h *Heap) error {
	idx, err := indexForSequence(key, h, len(l.items), "list")
	if err != nil {
		return err
	}
	old := l.items[idx]
	l.items[idx] = val
	old.DropWithHeap(h)
	return nil
}

func (l *List) PyCallAttr(h *Heap, attr Attr, args ArgValues) (Value, error) {
	switch attr {
	case "append":
		if args.Len() != 1 {
			return Value{}, typeErrorf("append() takes exactly one argument (%d given)", args.Len())
		}
		l.items = append(l.items, args.Positional(0))
		return None(), nil
	case "pop":
		if len(l.items) == 0 {
			return Value{}, indexErrorf("pop from empty list")
		}
		last := l.items[len(l.items)-1]
		l.items = l.items[:len(l.items)-1]
		return last, nil
	case "extend":
		if args.Len() != 1 {
			return Value{}, typeErrorf("extend() takes exactly one argument (%d given)", args.Len())
		}
		arg := args.Positional(0)
		if !arg.IsRef() || !h.IaddExtendList(arg.HeapID(), &l.items) {
			return Value{}, typeErrorf("'%s' object is not iterable", arg.PyType(h))
		}
		return None(), nil
	default:
		return Value{}, attributeErrorf("'list' object has no attribute '%s'", attr)
	}
}

func (l *List) PyHash(h *Heap) (uint64, bool) { return 0, false }

func (l *List) PyDecRefIDs(out *[]HeapId) {
	for _, v := range l.items {
		if v.IsRef() {
			*out = append(*out, v.HeapID())
		}
	}
}
