package monty

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeapStatsReportsCounts(t *testing.T) {
	h := NewHeap(nil)
	id := h.Allocate(NewStr("x"))
	h.DecRef(id)

	stats := h.Stats()
	require.Contains(t, stats, "Allocated:  1")
	require.Contains(t, stats, "Freed:      1")
}

func TestDumpTableRendersLiveEntries(t *testing.T) {
	h := NewHeap(nil)
	h.Allocate(NewStr("hello"))

	var buf bytes.Buffer
	h.DumpTable(&buf)

	out := buf.String()
	require.True(t, strings.Contains(out, "str"))
	require.True(t, strings.Contains(out, "hello"))
}

func TestDumpJSONIncludesLiveEntries(t *testing.T) {
	h := NewHeap(nil)
	h.Allocate(NewStr("y"))

	data, err := h.DumpJSON()
	require.NoError(t, err)
	require.Contains(t, string(data), `"type":"str"`)
}
