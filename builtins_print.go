package monty

// builtinPrint implements print(*args, sep=' ', end='\n', flush=...). Two
// asymmetric cases are intentional (see DESIGN.md's Open Question
// resolutions): an explicit sep=None behaves like the default (a single space),
// but an explicit end=None produces an empty terminator rather than
// falling back to the default newline — callers that want no separator
// between a single-space-joined group but no trailing newline either can
// still do so by passing end=None. flush (and any other keyword this core
// doesn't recognize) is accepted and ignored, per spec — the PrintWriter
// already decides its own flushing policy per mode.
func builtinPrint(h *Heap, args ArgValues, w *PrintWriter) (Value, error) {
	sep := " "
	end := "\n"

	if v, ok := args.Kwarg("sep"); ok {
		if v.Kind() != KindNone {
			sep = v.PyStr(h)
		}
		v.DropWithHeap(h)
	}
	if v, ok := args.Kwarg("end"); ok {
		if v.Kind() == KindNone {
			end = ""
		} else {
			end = v.PyStr(h)
		}
		v.DropWithHeap(h)
	}
	for name, v := range args.kwargs {
		if name != "sep" && name != "end" {
			v.DropWithHeap(h)
		}
	}

	for i := 0; i < args.Len(); i++ {
		if i > 0 {
			w.Write(sep)
		}
		v := args.Positional(i)
		w.Write(v.PyStr(h))
		v.DropWithHeap(h)
	}
	w.Write(end)
	w.Push()
	return None(), nil
}
