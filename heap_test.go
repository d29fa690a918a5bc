package monty

import "testing"

func TestHeapAllocateIncDecRef(t *testing.T) {
	h := NewHeap(nil)
	id := h.Allocate(NewStr("hello"))

	if got := h.GetRefcount(id); got != 1 {
		t.Fatalf("refcount after Allocate: expected 1, got %d", got)
	}

	h.IncRef(id)
	if got := h.GetRefcount(id); got != 2 {
		t.Fatalf("refcount after IncRef: expected 2, got %d", got)
	}

	h.DecRef(id)
	if got := h.GetRefcount(id); got != 1 {
		t.Fatalf("refcount after one DecRef: expected 1, got %d", got)
	}

	h.DecRef(id)
	if got := h.EntryCount(); got != 0 {
		t.Fatalf("entry count after final DecRef: expected 0, got %d", got)
	}
}

func TestHeapSlotReuse(t *testing.T) {
	h := NewHeap(nil)
	first := h.Allocate(NewStr("a"))
	h.DecRef(first)

	second := h.Allocate(NewStr("b"))
	if second != first {
		t.Fatalf("expected freed slot %d to be reused, got new slot %d", first, second)
	}
	if h.reuseCount != 1 {
		t.Fatalf("expected reuseCount 1, got %d", h.reuseCount)
	}
}

func TestHeapAccessAfterFreePanics(t *testing.T) {
	h := NewHeap(nil)
	id := h.Allocate(NewStr("gone"))
	h.DecRef(id)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Get on a freed, not-yet-reused slot to panic")
		}
	}()
	h.Get(id)
}

func TestHeapDecRefReleasesListChildren(t *testing.T) {
	h := NewHeap(nil)
	inner := h.Allocate(NewStr("child"))
	outer := h.Allocate(NewList([]Value{Ref(inner)}))

	h.DecRef(outer)

	if h.EntryCount() != 0 {
		t.Fatalf("expected both outer and child slots freed, entry count = %d", h.EntryCount())
	}
}

func TestHeapDecRefDeepChainDoesNotRecurse(t *testing.T) {
	h := NewHeap(nil)
	// Build a long chain of singleton lists: list_0 -> [list_1] -> [list_2] -> ... .
	// A naive recursive DecRef would blow the Go stack on a long enough chain;
	// this only needs to be "long enough to notice", not pathological.
	const depth = 20000
	cur := h.Allocate(NewList(nil))
	for i := 0; i < depth; i++ {
		next := h.Allocate(NewList([]Value{Ref(cur)}))
		cur = next
	}

	h.DecRef(cur)

	if h.EntryCount() != 0 {
		t.Fatalf("expected the entire chain freed, entry count = %d", h.EntryCount())
	}
}

func TestHeapGetOrComputeHashCachesOnce(t *testing.T) {
	h := NewHeap(nil)
	id := h.Allocate(NewStr("key"))

	h1, ok1 := h.GetOrComputeHash(id)
	if !ok1 {
		t.Fatal("expected Str to be hashable")
	}
	entry := h.entries[id]
	if entry.state != hashCached {
		t.Fatalf("expected hash state Cached after first lookup, got %d", entry.state)
	}

	h2, ok2 := h.GetOrComputeHash(id)
	if !ok2 || h1 != h2 {
		t.Fatalf("expected cached hash to be stable: %d vs %d", h1, h2)
	}
}

func TestHeapListIsNeverHashable(t *testing.T) {
	h := NewHeap(nil)
	id := h.Allocate(NewList(nil))
	if _, ok := h.GetOrComputeHash(id); ok {
		t.Fatal("expected List to be permanently unhashable")
	}
}
