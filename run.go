package monty

import (
	"github.com/sirupsen/logrus"
)

// RunOptions configures a single Run call. Every field is optional; zero
// values fall back to the silent/unlimited defaults used throughout the
// core (disabled PrintWriter, NoLimitTracker, discarded logging).
type RunOptions struct {
	Writer  *PrintWriter
	Tracker ResourceTracker
	Log     *logrus.Entry

	// Heap, if non-nil, is used instead of a freshly allocated one. This is
	// how an embedder seeds heap-resident globals (e.g. a Dict, since this
	// core's closed expression grammar has no dict-literal syntax): build
	// the values on a Heap of your own with NewHeap before calling Run, then
	// reference their HeapIds from Globals. Run calls Clear on it after the
	// run unless the run's final value is itself heap-resident, in which
	// case Clear is skipped (it would leave the returned value dangling) and
	// the live Heap is attached to RunResult.Heap instead. Either way it
	// must not be reused across separate Run calls.
	Heap *Heap

	// Globals seeds the namespace with externally constructed values before
	// execution starts. Each Value's refcount obligation is transferred to
	// the run; an unknown name is dropped rather than leaked.
	Globals map[string]Value
}

// RunResult is everything an embedder gets back from a completed run: the
// final value of the last top-level expression statement (spec §6's
// `run(...) → final value`, None if the program never evaluated a bare
// expression), the collected print output if the caller asked for it via a
// Collect PrintWriter, and — only when Value is itself heap-resident — the
// live Heap needed to interpret it (PyStr, PyRepr, indexing, and so on).
type RunResult struct {
	Value  Value
	Output []string
	Heap   *Heap
}

// Run prepares a fresh Heap (or takes RunOptions.Heap), executes prog to
// completion in a new Frame, and clears the heap again unless the final
// value is heap-resident (see RunOptions.Heap) — independent runs never
// share heap state (spec §5). The
// returned error is either a *Exception (the program raised), a
// *ResourceError (the tracker halted it), or a *InternalError (a core bug);
// use IsException to distinguish the first case.
func Run(prog *Program, opts RunOptions) (*RunResult, error) {
	heap := opts.Heap
	if heap == nil {
		heap = NewHeap(opts.Log)
	}
	frame := NewFrame(prog, heap, opts.Writer, opts.Tracker, opts.Log)

	for name, v := range opts.Globals {
		if idx, ok := prog.NameIndex(name); ok {
			frame.store(idx, v)
		} else {
			v.DropWithHeap(heap)
		}
	}

	err := frame.Run(prog)

	result := &RunResult{Value: None()}
	if opts.Writer != nil {
		result.Output = opts.Writer.Lines
	}

	if retVal, ok := frame.ReturnValue(); ok {
		result.Value = retVal
	}

	if err != nil {
		result.Value.DropWithHeap(heap)
		result.Value = None()
		heap.Clear()
		return result, err
	}

	if result.Value.IsRef() {
		// The returned value lives in heap; clearing now would leave it
		// dangling, so hand the still-live Heap to the caller instead.
		result.Heap = heap
	} else {
		heap.Clear()
	}

	return result, nil
}

// MontyRun bundles a ProgramCache with a set of default RunOptions, for an
// embedder (e.g. a server handling many requests against a small set of
// recurring program bodies) that wants to avoid re-preparing source on
// every call.
type MontyRun struct {
	cache *ProgramCache
	log   *logrus.Entry
}

// NewCached builds a MontyRun backed by a ProgramCache of the given size.
func NewCached(cacheSize int, log *logrus.Entry) (*MontyRun, error) {
	cache, err := NewProgramCache(cacheSize)
	if err != nil {
		return nil, err
	}
	return &MontyRun{cache: cache, log: log}, nil
}

// RunCached runs the Program registered under key, caching prog for next
// time if it is not already cached under that key. Callers that already
// have prog prepared should pass it every call; only the first call per key
// pays for Put (a cache hit skips straight to Run).
func (m *MontyRun) RunCached(key string, prog *Program, opts RunOptions) (*RunResult, error) {
	if cached, ok := m.cache.Get(key); ok {
		prog = cached
	} else {
		m.cache.Put(key, prog)
	}
	if opts.Log == nil {
		opts.Log = m.log
	}
	return Run(prog, opts)
}
