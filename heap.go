package monty

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"
)

// HeapId names a slot in the Heap's arena. IDs are reused after a slot is
// freed; holding on to a stale id past the point its slot is freed is a
// programming error in the embedding (spec §3), not something Monty programs
// can observe directly.
type HeapId = int

// hashState tracks whether a heap entry's lazily-computed hash has been
// requested yet, and caches the result once it has.
type hashState uint8

const (
	hashUnknown hashState = iota
	hashCached
	hashUnhashable
)

type heapEntry struct {
	refcount int
	data     PyTrait // nil while "taken" by WithEntryMut/WithTwo/CallAttr
	state    hashState
	hash     uint64
}

// Heap is the reference-counted arena backing every heap-resident Monty
// value. It owns a free list so that long-running loops that repeatedly
// allocate and release values keep a bounded slot count (spec P2), the way
// the teacher's node table reuses freed BDD node slots instead of growing
// without bound.
type Heap struct {
	entries  []*heapEntry
	freeList []HeapId
	poisoned *bitset.BitSet // diagnostic only: slots freed and not yet reused

	allocCount int
	freeCount  int
	reuseCount int

	log *logrus.Entry
}

// NewHeap creates an empty heap. log may be nil, in which case heap
// diagnostics are discarded (matching PrintWriter's silent-by-default
// posture).
func NewHeap(log *logrus.Entry) *Heap {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(ioDiscard{})
		log = logrus.NewEntry(discard)
	}
	return &Heap{
		poisoned: bitset.New(0),
		log:      log,
	}
}

type ioDiscard struct{}

func (ioDiscard) Write(p []byte) (int, error) { return len(p), nil }

// Allocate stores data in a fresh or reused slot and returns its id with
// refcount 1. Hash state starts Unknown for immutable variants and
// Unhashable for mutable ones (IV-3), matching HashState::for_data in the
// original Rust heap.
func (h *Heap) Allocate(data PyTrait) HeapId {
	h.allocCount++
	state := hashUnhashable
	switch data.(type) {
	case *Str, *Bytes, *Tuple:
		state = hashUnknown
	}
	entry := &heapEntry{refcount: 1, data: data, state: state}

	if n := len(h.freeList); n > 0 {
		id := h.freeList[n-1]
		h.freeList = h.freeList[:n-1]
		h.entries[id] = entry
		h.poisoned.Clear(uint(id))
		h.reuseCount++
		return id
	}
	id := len(h.entries)
	h.entries = append(h.entries, entry)
	return id
}

func (h *Heap) slot(id HeapId, op string) *heapEntry {
	if id < 0 || id >= len(h.entries) || h.entries[id] == nil {
		if id >= 0 && h.poisoned.Test(uint(id)) {
			panic("monty: Heap." + op + ": slot " + itoa(id) + " already freed (use-after-free)")
		}
		panic("monty: Heap." + op + ": slot " + itoa(id) + " missing or already freed")
	}
	return h.entries[id]
}

// IncRef increments the refcount on id. Panics if id is missing or freed —
// that indicates an internal bug, never a user-triggerable error.
func (h *Heap) IncRef(id HeapId) {
	h.slot(id, "IncRef").refcount++
}

// DecRef decrements the refcount on id, freeing the slot and recursively
// releasing its children once it reaches zero. Child release runs over an
// explicit worklist rather than native recursion so a long chain (e.g. a
// list nested deeply, or a very long list of refs) cannot overflow the Go
// stack (spec §4.B).
func (h *Heap) DecRef(id HeapId) {
	entry := h.slot(id, "DecRef")
	if entry.refcount > 1 {
		entry.refcount--
		return
	}

	work := []HeapId{id}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		e := h.entries[cur]
		if e == nil {
			continue
		}
		if e.refcount > 1 {
			e.refcount--
			continue
		}

		h.entries[cur] = nil
		h.freeList = append(h.freeList, cur)
		h.poisoned.Set(uint(cur))
		h.freeCount++

		var children []HeapId
		if e.data != nil {
			e.data.PyDecRefIDs(&children)
		}
		work = append(work, children...)
	}
	h.log.WithFields(logrus.Fields{"id": id, "alloc": h.allocCount, "free": h.freeCount}).Debug("heap: dec_ref reached zero")
}

// Get returns the payload at id. Panics if id is missing, freed, or
// currently taken by WithEntryMut/WithTwo/CallAttr.
func (h *Heap) Get(id HeapId) PyTrait {
	entry := h.slot(id, "Get")
	if entry.data == nil {
		panic("monty: Heap.Get: slot " + itoa(id) + " data currently borrowed")
	}
	return entry.data
}

// GetMut returns the payload at id for in-place mutation. Same panics as Get.
func (h *Heap) GetMut(id HeapId) PyTrait {
	return h.Get(id)
}

// GetRefcount returns the live refcount at id; primarily for tests (P1).
func (h *Heap) GetRefcount(id HeapId) int {
	return h.slot(id, "GetRefcount").refcount
}

// EntryCount returns the number of live (non-freed) slots; primarily for
// tests verifying P1/P2.
func (h *Heap) EntryCount() int {
	n := 0
	for _, e := range h.entries {
		if e != nil {
			n++
		}
	}
	return n
}

// GetOrComputeHash returns the lazily-cached hash for id, computing and
// caching it on first use for immutable variants (IV-3, P3). Mutable
// variants permanently return (_, false).
func (h *Heap) GetOrComputeHash(id HeapId) (uint64, bool) {
	entry := h.slot(id, "GetOrComputeHash")
	switch entry.state {
	case hashUnhashable:
		return 0, false
	case hashCached:
		return entry.hash, true
	}

	// Take the payload so computing the hash (which, for Tuple, recurses
	// into child hashes via the heap) can re-borrow *Heap safely.
	data := h.take(id, "GetOrComputeHash")
	hash, ok := data.PyHash(h)
	h.restore(id, data, "GetOrComputeHash")

	entry = h.entries[id]
	if ok {
		entry.state = hashCached
		entry.hash = hash
	} else {
		entry.state = hashUnhashable
	}
	return hash, ok
}

// take removes the payload from a slot, leaving the slot present (refcount
// intact) but data nil. It panics if the slot is already taken — recursive
// take is an implementer error, never a user-triggerable one.
func (h *Heap) take(id HeapId, op string) PyTrait {
	entry := h.slot(id, op)
	if entry.data == nil {
		panic("monty: Heap." + op + ": slot " + itoa(id) + " data already borrowed")
	}
	data := entry.data
	entry.data = nil
	return data
}

func (h *Heap) restore(id HeapId, data PyTrait, op string) {
	entry := h.slot(id, op)
	entry.data = data
}

// WithEntryMut gives f simultaneous access to the payload at id and a
// reentrant *Heap, by temporarily taking the payload out of its slot so
// there is no aliasing between "the data f is mutating" and "the heap f
// allocates into". The payload is restored unconditionally after f returns.
func (h *Heap) WithEntryMut(id HeapId, f func(h *Heap, data PyTrait) (Value, error)) (Value, error) {
	data := h.take(id, "WithEntryMut")
	v, err := f(h, data)
	h.restore(id, data, "WithEntryMut")
	return v, err
}

// WithTwo temporarily takes the payloads at left and right (detecting
// left == right and passing the same payload twice rather than
// double-taking) so f can read both while still mutating the heap.
func (h *Heap) WithTwo(left, right HeapId, f func(h *Heap, a, b PyTrait) (Value, error)) (Value, error) {
	if left == right {
		data := h.take(left, "WithTwo")
		v, err := f(h, data, data)
		h.restore(left, data, "WithTwo")
		return v, err
	}
	a := h.take(left, "WithTwo(left)")
	b := h.take(right, "WithTwo(right)")
	v, err := f(h, a, b)
	h.restore(right, b, "WithTwo(right)")
	h.restore(left, a, "WithTwo(left)")
	return v, err
}

// CallAttr dispatches attr on the payload at id via the take/restore idiom,
// so the method can both mutate its own receiver and allocate new heap
// values (e.g. list.append allocating nothing, but dict.pop needing to both
// mutate the dict and decref the removed key).
func (h *Heap) CallAttr(id HeapId, attr Attr, args ArgValues) (Value, error) {
	data := h.take(id, "CallAttr")
	v, err := data.PyCallAttr(h, attr, args)
	h.restore(id, data, "CallAttr")
	return v, err
}

// IaddExtendList extends dest with a shallow copy of the List payload at
// sourceID, incrementing refcounts on any child Refs after the source's own
// payload is restored (avoiding a self-aliasing IncRef while the source is
// still taken). Returns false if sourceID does not hold a List.
func (h *Heap) IaddExtendList(sourceID HeapId, dest *[]Value) bool {
	data := h.take(sourceID, "IaddExtendList")
	list, ok := data.(*List)
	if !ok {
		h.restore(sourceID, data, "IaddExtendList")
		return false
	}

	items := make([]Value, len(list.items))
	copy(items, list.items)
	h.restore(sourceID, data, "IaddExtendList")

	for _, v := range items {
		if v.IsRef() {
			h.IncRef(v.HeapID())
		}
	}
	*dest = append(*dest, items...)
	return true
}

// Clear releases every entry and empties the free list, invalidating all
// outstanding HeapIds. Used between program runs so the arena starts each
// run fresh (spec §5).
func (h *Heap) Clear() {
	for _, e := range h.entries {
		if e != nil {
			e.data = nil
		}
	}
	h.entries = nil
	h.freeList = nil
	h.poisoned = bitset.New(0)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
