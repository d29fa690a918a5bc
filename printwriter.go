package monty

import (
	"io"
	"strings"
)

// PrintWriterMode selects where print() output goes (spec §4.F).
type PrintWriterMode uint8

const (
	// PrintDisabled discards all output — the default for an embedding that
	// has not opted into any sink.
	PrintDisabled PrintWriterMode = iota
	PrintStdout
	PrintCollect
	PrintCallback
)

// PrintWriterCallback receives one complete print() call's assembled output
// (separators and terminator already applied) at a time.
type PrintWriterCallback func(line string)

// PrintWriter is the pluggable sink behind the print builtin. Separator and
// terminator handling live in the print builtin itself (builtins_print.go),
// not here: PrintWriter only knows how to accept raw text (Write) and how
// to mark the boundary between one print() call's output and the next
// (Push). This split lets Collect mode capture exactly one string per call
// while Stdout mode streams bytes as they're produced.
type PrintWriter struct {
	mode PrintWriterMode
	out  io.Writer
	cb   PrintWriterCallback

	pending strings.Builder
	Lines   []string // populated only in PrintCollect mode
}

// NewDisabledPrintWriter discards everything written to it.
func NewDisabledPrintWriter() *PrintWriter {
	return &PrintWriter{mode: PrintDisabled}
}

// NewStdoutPrintWriter streams output to w (typically os.Stdout) as it is
// produced, with no buffering across Push boundaries.
func NewStdoutPrintWriter(w io.Writer) *PrintWriter {
	return &PrintWriter{mode: PrintStdout, out: w}
}

// NewCollectPrintWriter accumulates each print() call's output as a
// separate entry in Lines, for tests and embeddings that want the full
// transcript after a run completes.
func NewCollectPrintWriter() *PrintWriter {
	return &PrintWriter{mode: PrintCollect}
}

// NewCallbackPrintWriter invokes cb once per completed print() call.
func NewCallbackPrintWriter(cb PrintWriterCallback) *PrintWriter {
	return &PrintWriter{mode: PrintCallback, cb: cb}
}

// Write appends a raw chunk of text to the current in-progress print() call.
func (w *PrintWriter) Write(s string) {
	switch w.mode {
	case PrintDisabled:
		return
	case PrintStdout:
		io.WriteString(w.out, s)
	case PrintCollect, PrintCallback:
		w.pending.WriteString(s)
	}
}

// Push marks the end of one print() call's output. Collect mode appends the
// assembled text to Lines; Callback mode invokes the callback once with it;
// Stdout and Disabled modes have already emitted (or discarded) everything
// incrementally, so Push is a no-op for them.
func (w *PrintWriter) Push() {
	switch w.mode {
	case PrintCollect:
		w.Lines = append(w.Lines, w.pending.String())
		w.pending.Reset()
	case PrintCallback:
		line := w.pending.String()
		w.pending.Reset()
		if w.cb != nil {
			w.cb(line)
		}
	}
}
