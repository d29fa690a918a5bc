package monty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintWriterStdoutStreamsImmediately(t *testing.T) {
	var buf strings.Builder
	w := NewStdoutPrintWriter(&buf)
	w.Write("1")
	w.Write(" ")
	w.Write("2")
	w.Push()
	require.Equal(t, "1 2", buf.String())
	require.Empty(t, w.Lines)
}

func TestPrintWriterCallbackFiresOncePerPush(t *testing.T) {
	var got []string
	w := NewCallbackPrintWriter(func(line string) { got = append(got, line) })

	w.Write("a")
	w.Push()
	w.Write("b")
	w.Write("c")
	w.Push()

	require.Equal(t, []string{"a", "bc"}, got)
}

func TestPrintWriterDisabledDiscardsEverything(t *testing.T) {
	w := NewDisabledPrintWriter()
	w.Write("anything")
	w.Push()
	require.Empty(t, w.Lines)
}

func TestPrintWriterCollectSeparatesCallsByPush(t *testing.T) {
	w := NewCollectPrintWriter()
	w.Write("first")
	w.Push()
	w.Write("sec")
	w.Write("ond")
	w.Push()
	require.Equal(t, []string{"first", "second"}, w.Lines)
}
