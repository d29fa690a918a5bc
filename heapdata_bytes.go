package monty

import "fmt"

// Bytes is the heap-resident immutable byte-string type.
type Bytes struct {
	b []byte
}

// NewBytes wraps a byte slice as a Monty Bytes payload. The slice is taken
// by reference; callers must not mutate it afterward, since Bytes is
// immutable from the program's point of view.
func NewBytes(b []byte) *Bytes { return &Bytes{b: b} }

func (*Bytes) heapData() {}

func (b *Bytes) Value() []byte { return b.b }

func (b *Bytes) PyType(h *Heap) string { return "bytes" }

func (b *Bytes) PyBool(h *Heap) bool { return len(b.b) > 0 }

func (b *Bytes) PyLen(h *Heap) (int, bool) { return len(b.b), true }

func (b *Bytes) PyEq(other PyTrait, h *Heap) bool {
	o, ok := other.(*Bytes)
	if !ok || len(b.b) != len(o.b) {
		return false
	}
	for i := range b.b {
		if b.b[i] != o.b[i] {
			return false
		}
	}
	return true
}

func (b *Bytes) PyRepr(h *Heap) string {
	var out []byte
	out = append(out, 'b', '\'')
	for _, c := range b.b {
		switch {
		case c == '\'' || c == '\\':
			out = append(out, '\\', c)
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\t':
			out = append(out, '\\', 't')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c >= 0x20 && c < 0x7f:
			out = append(out, c)
		default:
			out = append(out, []byte(fmt.Sprintf(`\x%02x`, c))...)
		}
	}
	out = append(out, '\'')
	return string(out)
}

func (b *Bytes) PyStr(h *Heap) string { return b.PyRepr(h) }

func (b *Bytes) PyAdd(other PyTrait, h *Heap) (Value, bool, error) {
	o, ok := other.(*Bytes)
	if !ok {
		return Value{}, false, nil
	}
	joined := make([]byte, 0, len(b.b)+len(o.b))
	joined = append(joined, b.b...)
	joined = append(joined, o.b...)
	return Ref(h.Allocate(NewBytes(joined))), true, nil
}

func (b *Bytes) PySub(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }
func (b *Bytes) PyMod(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }

func (b *Bytes) PyIAdd(other Value, h *Heap, selfID HeapId) (bool, error) {
	return false, nil
}

func (b *Bytes) PyGetItem(key Value, h *Heap) (Value, error) {
	idx, err := indexForSequence(key, h, len(b.b), "bytes")
	if err != nil {
		return Value{}, err
	}
	return Int(int64(b.b[idx])), nil
}

func (b *Bytes) PySetItem(key, val Value, h *Heap) error {
	return typeErrorf("'bytes' object does not support item assignment")
}

func (b *Bytes) PyCallAttr(h *Heap, attr Attr, args ArgValues) (Value, error) {
	return Value{}, attributeErrorf("'bytes' object has no attribute '%s'", attr)
}

func (b *Bytes) PyHash(h *Heap) (uint64, bool) {
	var x uint64 = 1469598103934665603
	for _, c := range b.b {
		x ^= uint64(c)
		x *= 1099511628211
	}
	return hashMix(x, 3), true
}

func (b *Bytes) PyDecRefIDs(out *[]HeapId) {}
