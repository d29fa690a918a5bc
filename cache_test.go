package monty

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgramCacheEvictsLeastRecentlyUsed(t *testing.T) {
	pc, err := NewProgramCache(2)
	require.NoError(t, err)

	a := NewProgram(nil, []string{"a"})
	b := NewProgram(nil, []string{"b"})
	c := NewProgram(nil, []string{"c"})

	pc.Put("a", a)
	pc.Put("b", b)
	require.Equal(t, 2, pc.Len())

	pc.Put("c", c)
	require.Equal(t, 2, pc.Len())

	_, ok := pc.Get("a")
	require.False(t, ok, "a should have been evicted as least recently used")

	got, ok := pc.Get("b")
	require.True(t, ok)
	require.Same(t, b, got)
}

func TestProgramCacheRoundTrip(t *testing.T) {
	pc, err := NewProgramCache(4)
	require.NoError(t, err)

	prog := NewProgram(nil, []string{"x", "y"})
	pc.Put("key", prog)

	got, ok := pc.Get("key")
	require.True(t, ok)
	require.Same(t, prog, got)
}
