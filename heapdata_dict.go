package monty

import "strings"

type dictEntry struct {
	key     Value
	val     Value
	hash    uint64
	deleted bool
}

// Dict is the heap-resident mutable mapping type. Entries are kept in
// insertion order in a slice (with tombstones for deletions) alongside a
// hash-bucket index, the way the teacher's node table pairs a dense slice
// with a hash->index map rather than relying on Go's native map (which
// cannot use Monty's own lazily-cached Value hash as a key, and would lose
// insertion order on iteration).
type Dict struct {
	entries []dictEntry
	buckets map[uint64][]int
	live    int
}

// NewDict creates an empty Dict payload.
func NewDict() *Dict {
	return &Dict{buckets: make(map[uint64][]int)}
}

func (*Dict) heapData() {}

func (d *Dict) find(key Value, h *Heap) (idx int, hash uint64, hashable bool) {
	hash, hashable = hashValue(key, h)
	if !hashable {
		return -1, 0, false
	}
	for _, i := range d.buckets[hash] {
		e := &d.entries[i]
		if !e.deleted && PyEq(e.key, key, h) {
			return i, hash, true
		}
	}
	return -1, hash, true
}

func (d *Dict) PyType(h *Heap) string { return "dict" }

func (d *Dict) PyBool(h *Heap) bool { return d.live > 0 }

func (d *Dict) PyLen(h *Heap) (int, bool) { return d.live, true }

func (d *Dict) PyEq(other PyTrait, h *Heap) bool {
	o, ok := other.(*Dict)
	if !ok || d.live != o.live {
		return false
	}
	for _, e := range d.entries {
		if e.deleted {
			continue
		}
		idx, _, hashable := o.find(e.key, h)
		if !hashable || idx < 0 || !PyEq(o.entries[idx].val, e.val, h) {
			return false
		}
	}
	return true
}

func (d *Dict) PyRepr(h *Heap) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, e := range d.entries {
		if e.deleted {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(e.key.PyRepr(h))
		b.WriteString(": ")
		b.WriteString(e.val.PyRepr(h))
	}
	b.WriteByte('}')
	return b.String()
}

func (d *Dict) PyStr(h *Heap) string { return d.PyRepr(h) }

func (d *Dict) PyAdd(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }
func (d *Dict) PySub(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }
func (d *Dict) PyMod(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }

func (d *Dict) PyIAdd(other Value, h *Heap, selfID HeapId) (bool, error) { return false, nil }

func (d *Dict) PyGetItem(key Value, h *Heap) (Value, error) {
	idx, _, hashable := d.find(key, h)
	if !hashable {
		return Value{}, typeErrorf("unhashable type: '%s'", key.PyType(h))
	}
	if idx < 0 {
		return Value{}, keyErrorf("%s", key.PyRepr(h))
	}
	return d.entries[idx].val.CloneWithHeap(h), nil
}

func (d *Dict) PySetItem(key, val Value, h *Heap) error {
	idx, hash, hashable := d.find(key, h)
	if !hashable {
		return typeErrorf("unhashable type: '%s'", key.PyType(h))
	}
	if idx >= 0 {
		old := d.entries[idx].val
		d.entries[idx].val = val
		old.DropWithHeap(h)
		key.DropWithHeap(h) // the new key is redundant with the stored one
		return nil
	}
	i := len(d.entries)
	d.entries = append(d.entries, dictEntry{key: key, val: val, hash: hash})
	d.buckets[hash] = append(d.buckets[hash], i)
	d.live++
	return nil
}

func (d *Dict) delete(key Value, h *Heap) (Value, bool) {
	idx, _, hashable := d.find(key, h)
	if !hashable || idx < 0 {
		return Value{}, false
	}
	e := &d.entries[idx]
	e.deleted = true
	d.live--
	val := e.val
	e.key.DropWithHeap(h)
	e.key = Value{}
	e.val = Value{}
	return val, true
}

func (d *Dict) PyCallAttr(h *Heap, attr Attr, args ArgValues) (Value, error) {
	switch attr {
	case "get":
		if args.Len() == 0 {
			return Value{}, typeErrorf("get() missing required argument: 'key'")
		}
		key := args.Positional(0)
		idx, _, hashable := d.find(key, h)
		if hashable && idx >= 0 {
			return d.entries[idx].val.CloneWithHeap(h), nil
		}
		if args.Len() >= 2 {
			return args.Positional(1), nil
		}
		return None(), nil
	case "keys":
		items := make([]Value, 0, d.live)
		for _, e := range d.entries {
			if !e.deleted {
				items = append(items, e.key.CloneWithHeap(h))
			}
		}
		return Ref(h.Allocate(NewList(items))), nil
	case "values":
		items := make([]Value, 0, d.live)
		for _, e := range d.entries {
			if !e.deleted {
				items = append(items, e.val.CloneWithHeap(h))
			}
		}
		return Ref(h.Allocate(NewList(items))), nil
	case "items":
		items := make([]Value, 0, d.live)
		for _, e := range d.entries {
			if !e.deleted {
				pair := NewTuple([]Value{e.key.CloneWithHeap(h), e.val.CloneWithHeap(h)})
				items = append(items, Ref(h.Allocate(pair)))
			}
		}
		return Ref(h.Allocate(NewList(items))), nil
	case "pop":
		if args.Len() == 0 {
			return Value{}, typeErrorf("pop() missing required argument: 'key'")
		}
		val, ok := d.delete(args.Positional(0), h)
		if ok {
			return val, nil
		}
		if args.Len() >= 2 {
			return args.Positional(1), nil
		}
		return Value{}, keyErrorf("%s", args.Positional(0).PyRepr(h))
	default:
		return Value{}, attributeErrorf("'dict' object has no attribute '%s'", attr)
	}
}

func (d *Dict) PyHash(h *Heap) (uint64, bool) { return 0, false }

func (d *Dict) PyDecRefIDs(out *[]HeapId) {
	for _, e := range d.entries {
		if e.deleted {
			continue
		}
		if e.key.IsRef() {
			*out = append(*out, e.key.HeapID())
		}
		if e.val.IsRef() {
			*out = append(*out, e.val.HeapID())
		}
	}
}
