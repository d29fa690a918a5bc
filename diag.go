package monty

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
	"github.com/rodaine/table"
)

// Stats summarizes a Heap's current occupancy, mirroring the teacher's
// buddy.Stats text report.
func (h *Heap) Stats() string {
	res := fmt.Sprintf("Slots:      %d\n", len(h.entries))
	res += fmt.Sprintf("Allocated:  %d\n", h.allocCount)
	res += fmt.Sprintf("Freed:      %d\n", h.freeCount)
	res += fmt.Sprintf("Reused:     %d\n", h.reuseCount)
	res += fmt.Sprintf("Live:       %d\n", h.EntryCount())
	return res
}

// DumpTable prints a human-readable table of every live slot (id, refcount,
// type, repr) to w, defaulting to os.Stdout if w is nil. Intended for
// interactive debugging of a stuck or leaking program, not for machine
// consumption — see DumpJSON for that.
func (h *Heap) DumpTable(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	tbl := table.New("ID", "RefCount", "Type", "Repr").WithWriter(w)
	for id, e := range h.entries {
		if e == nil {
			continue
		}
		typ := "<borrowed>"
		repr := "<borrowed>"
		if e.data != nil {
			typ = e.data.PyType(h)
			repr = e.data.PyRepr(h)
		}
		tbl.AddRow(id, e.refcount, typ, repr)
	}
	tbl.Print()
}

// heapRow is the JSON-serializable shape of one live Heap entry.
type heapRow struct {
	ID       int    `json:"id"`
	RefCount int    `json:"refcount"`
	Type     string `json:"type"`
	Repr     string `json:"repr"`
}

// DumpJSON renders every live slot as a JSON array, for embeddings that
// want to ship heap state to an external diagnostics collector.
func (h *Heap) DumpJSON() ([]byte, error) {
	rows := make([]heapRow, 0, h.EntryCount())
	for id, e := range h.entries {
		if e == nil || e.data == nil {
			continue
		}
		rows = append(rows, heapRow{
			ID:       id,
			RefCount: e.refcount,
			Type:     e.data.PyType(h),
			Repr:     e.data.PyRepr(h),
		})
	}
	return json.Marshal(rows)
}

// dumpOnInternalError logs a spew dump of v, under label, at Debug level
// through entry. No code path in this package calls it: an InternalError is
// returned without a dump.
func dumpOnInternalError(entry interface{ Debugf(string, ...any) }, label string, v any) {
	entry.Debugf("%s:\n%s", label, spew.Sdump(v))
}
