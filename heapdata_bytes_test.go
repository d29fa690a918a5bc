package monty

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesReprEscapesNonPrintable(t *testing.T) {
	h := NewHeap(nil)
	b := NewBytes([]byte{'h', 'i', 0x00, 0x1f, '\n'})
	require.Equal(t, `b'hi\x00\x1f\n'`, b.PyRepr(h))
}

func TestBytesIndexReturnsIntOfByte(t *testing.T) {
	h := NewHeap(nil)
	b := NewBytes([]byte("abc"))
	v, err := b.PyGetItem(Int(1), h)
	require.NoError(t, err)
	require.Equal(t, int64('b'), v.AsInt())
}

func TestBytesItemAssignmentRaisesTypeError(t *testing.T) {
	h := NewHeap(nil)
	b := NewBytes([]byte("abc"))
	err := b.PySetItem(Int(0), Int(1), h)
	exc, ok := IsException(err)
	require.True(t, ok)
	require.Equal(t, TypeError, exc.Kind)
}

func TestBytesConcatenationJoinsRawBytes(t *testing.T) {
	h := NewHeap(nil)
	a := NewBytes([]byte("ab"))
	b := NewBytes([]byte("cd"))
	v, ok, err := a.PyAdd(b, h)
	require.NoError(t, err)
	require.True(t, ok)
	joined := h.Get(v.HeapID()).(*Bytes)
	require.Equal(t, []byte("abcd"), joined.Value())
}

func TestBytesHashIsStableAndEqualForEqualContent(t *testing.T) {
	h := NewHeap(nil)
	a := NewBytes([]byte("same"))
	b := NewBytes([]byte("same"))
	ha, ok := a.PyHash(h)
	require.True(t, ok)
	hb, ok := b.PyHash(h)
	require.True(t, ok)
	require.Equal(t, ha, hb)
}
