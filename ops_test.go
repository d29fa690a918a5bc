package monty

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddValuesNumericAndString(t *testing.T) {
	h := NewHeap(nil)

	sum, err := addValues(Int(2), Int(3), h)
	require.NoError(t, err)
	require.Equal(t, int64(5), sum.AsInt())

	f, err := addValues(Int(2), Float(0.5), h)
	require.NoError(t, err)
	require.Equal(t, 2.5, f.AsFloat())

	sID := h.Allocate(NewStr("foo"))
	oID := h.Allocate(NewStr("bar"))
	s, err := addValues(Ref(sID), Ref(oID), h)
	require.NoError(t, err)
	require.True(t, s.IsRef())
	require.Equal(t, "foobar", h.Get(s.HeapID()).(*Str).Value())
}

func TestAddValuesUnsupportedTypeError(t *testing.T) {
	h := NewHeap(nil)
	sID := h.Allocate(NewStr("x"))

	_, err := addValues(Ref(sID), Int(1), h)
	require.Error(t, err)
	exc, ok := IsException(err)
	require.True(t, ok)
	require.Equal(t, TypeError, exc.Kind)
	require.Equal(t, "unsupported operand type(s) for +: 'str' and 'int'", exc.Message)
}

func TestIaddValuesListDropsRHS(t *testing.T) {
	h := NewHeap(nil)
	aID := h.Allocate(NewList([]Value{Int(1)}))
	bID := h.Allocate(NewList([]Value{Int(2)}))

	result, err := iaddValues(Ref(aID), Ref(bID), h)
	require.NoError(t, err)
	require.Equal(t, aID, result.HeapID())
	require.Equal(t, 1, h.EntryCount()) // bID's slot was freed by the drop inside iaddValues

	result.DropWithHeap(h)
	require.Equal(t, 0, h.EntryCount())
}

func TestIaddValuesStrMutatesUniqueRefcountInPlace(t *testing.T) {
	h := NewHeap(nil)
	aID := h.Allocate(NewStr("foo"))
	bID := h.Allocate(NewStr("bar"))

	result, err := iaddValues(Ref(aID), Ref(bID), h)
	require.NoError(t, err)
	require.True(t, result.IsRef())
	require.Equal(t, aID, result.HeapID())
	require.Equal(t, "foobar", h.Get(aID).(*Str).Value())
	require.Equal(t, 1, h.EntryCount()) // bID's slot was freed by the drop inside iaddValues

	result.DropWithHeap(h)
	require.Equal(t, 0, h.EntryCount())
}

func TestIaddValuesStrSharedRefcountAllocatesNew(t *testing.T) {
	h := NewHeap(nil)
	aID := h.Allocate(NewStr("foo"))
	h.IncRef(aID) // simulate a second outstanding reference
	bID := h.Allocate(NewStr("bar"))

	result, err := iaddValues(Ref(aID), Ref(bID), h)
	require.NoError(t, err)
	require.True(t, result.IsRef())
	require.NotEqual(t, aID, result.HeapID())
	require.Equal(t, "foobar", h.Get(result.HeapID()).(*Str).Value())
	require.Equal(t, "foo", h.Get(aID).(*Str).Value())

	h.DecRef(aID)
	result.DropWithHeap(h)
	require.Equal(t, 0, h.EntryCount())
}

func TestModValuesByZeroRaisesValueError(t *testing.T) {
	h := NewHeap(nil)
	_, err := modValues(Int(5), Int(0), h)
	exc, ok := IsException(err)
	require.True(t, ok)
	require.Equal(t, ValueError, exc.Kind)
}

func TestCompareValuesOrdering(t *testing.T) {
	h := NewHeap(nil)
	var cmpTests = []struct {
		op       CmpOp
		a, b     Value
		expected bool
	}{
		{CmpLt, Int(1), Int(2), true},
		{CmpLe, Int(2), Int(2), true},
		{CmpGt, Float(3.5), Int(3), true},
		{CmpGe, Int(3), Int(3), true},
		{CmpEq, Int(1), Bool(true), true},
		{CmpNe, Int(1), Int(2), true},
	}
	for _, tt := range cmpTests {
		got, err := compareValues(tt.op, tt.a, tt.b, h)
		require.NoError(t, err)
		require.Equal(t, tt.expected, got.AsBool())
	}
}

func TestCompareValuesUnorderableTypeError(t *testing.T) {
	h := NewHeap(nil)
	sID := h.Allocate(NewStr("x"))
	_, err := compareValues(CmpLt, Ref(sID), Int(1), h)
	exc, ok := IsException(err)
	require.True(t, ok)
	require.Equal(t, TypeError, exc.Kind)
}
