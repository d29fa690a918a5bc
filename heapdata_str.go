package monty

import (
	"strings"
	"unicode/utf8"
)

// Str is the heap-resident immutable string type. Monty strings are
// immutable Python str values; length and equality are counted in Unicode
// code points, not bytes.
type Str struct {
	s string
}

// NewStr wraps a Go string as a Monty Str payload.
func NewStr(s string) *Str { return &Str{s: s} }

func (*Str) heapData() {}

func (s *Str) Value() string { return s.s }

func (s *Str) PyType(h *Heap) string { return "str" }

func (s *Str) PyBool(h *Heap) bool { return len(s.s) > 0 }

func (s *Str) PyLen(h *Heap) (int, bool) { return utf8.RuneCountInString(s.s), true }

func (s *Str) PyEq(other PyTrait, h *Heap) bool {
	o, ok := other.(*Str)
	return ok && s.s == o.s
}

func (s *Str) PyRepr(h *Heap) string {
	quote := byte('\'')
	if strings.ContainsRune(s.s, '\'') && !strings.ContainsRune(s.s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s.s {
		switch r {
		case rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

func (s *Str) PyStr(h *Heap) string { return s.s }

func (s *Str) PyAdd(other PyTrait, h *Heap) (Value, bool, error) {
	o, ok := other.(*Str)
	if !ok {
		return Value{}, false, nil
	}
	return Ref(h.Allocate(NewStr(s.s + o.s))), true, nil
}

func (s *Str) PySub(other PyTrait, h *Heap) (Value, bool, error) { return Value{}, false, nil }

func (s *Str) PyMod(other PyTrait, h *Heap) (Value, bool, error) {
	// %-formatting is out of scope for the core; only the plain-text case
	// (no format specifiers at all) is a no-op pass-through, matching the
	// builtins' narrow string support.
	if !strings.ContainsRune(s.s, '%') {
		return Ref(h.Allocate(NewStr(s.s))), true, nil
	}
	return Value{}, false, nil
}

// PyIAdd mutates in place only when selfID is uniquely referenced (spec
// §4.C): if nothing else holds a Ref to this slot, appending is observably
// identical to reassigning a new Str, so there's no reason to allocate.
// Once shared, the in-place path is unsound (every other holder would see
// the mutation), so it declines and lets the caller fall back to PyAdd.
func (s *Str) PyIAdd(other Value, h *Heap, selfID HeapId) (bool, error) {
	if h.GetRefcount(selfID) != 1 || !other.IsRef() {
		return false, nil
	}
	o, ok := h.Get(other.HeapID()).(*Str)
	if !ok {
		return false, nil
	}
	s.s += o.s
	return true, nil
}

func (s *Str) PyGetItem(key Value, h *Heap) (Value, error) {
	idx, err := indexForSequence(key, h, utf8.RuneCountInString(s.s), "string")
	if err != nil {
		return Value{}, err
	}
	runes := []rune(s.s)
	return Ref(h.Allocate(NewStr(string(runes[idx])))), nil
}

func (s *Str) PySetItem(key, val Value, h *Heap) error {
	return typeErrorf("'str' object does not support item assignment")
}

func (s *Str) PyCallAttr(h *Heap, attr Attr, args ArgValues) (Value, error) {
	switch attr {
	case "upper":
		return Ref(h.Allocate(NewStr(strings.ToUpper(s.s)))), nil
	case "lower":
		return Ref(h.Allocate(NewStr(strings.ToLower(s.s)))), nil
	case "strip":
		return Ref(h.Allocate(NewStr(strings.TrimSpace(s.s)))), nil
	default:
		return Value{}, attributeErrorf("'str' object has no attribute '%s'", attr)
	}
}

func (s *Str) PyHash(h *Heap) (uint64, bool) {
	var x uint64 = 1469598103934665603 // FNV-1a offset basis
	for i := 0; i < len(s.s); i++ {
		x ^= uint64(s.s[i])
		x *= 1099511628211
	}
	return hashMix(x, 2), true
}

func (s *Str) PyDecRefIDs(out *[]HeapId) {}
