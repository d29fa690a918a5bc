package monty

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FrameState names where a Frame is in its lifecycle (spec §4.I): Running
// while statements are still executing, Raising once an Exception has been
// produced and is propagating toward the embedder, Returning once the
// frame's body has run to completion with no outstanding exception.
type FrameState uint8

const (
	FrameRunning FrameState = iota
	FrameRaising
	FrameReturning
)

// Frame is the executor driving one Program to completion against one
// Heap. It owns the program's namespace (the name table's live values) and
// threads the active ResourceTracker and PrintWriter through every
// statement and expression it evaluates.
type Frame struct {
	heap     *Heap
	tracker  ResourceTracker
	writer   *PrintWriter
	names    []Value
	assigned []bool
	state    FrameState
	log      *logrus.Entry
	runID    string

	returnValue Value // last StmtExpr's value (spec §6: run() yields a final value)
	hasReturn   bool
}

// NewFrame builds a Frame ready to run prog against heap. writer and
// tracker may be nil, defaulting to a disabled sink and an unlimited
// tracker respectively. log may be nil to discard diagnostics.
func NewFrame(prog *Program, heap *Heap, writer *PrintWriter, tracker ResourceTracker, log *logrus.Entry) *Frame {
	if writer == nil {
		writer = NewDisabledPrintWriter()
	}
	if tracker == nil {
		tracker = NoLimitTracker{}
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(ioDiscard{})
		log = logrus.NewEntry(discard)
	}
	return &Frame{
		heap:     heap,
		tracker:  tracker,
		writer:   writer,
		names:    make([]Value, prog.NameCount),
		assigned: make([]bool, prog.NameCount),
		log:      log.WithField("run_id", uuid.NewString()),
	}
}

// State reports the frame's current lifecycle state.
func (f *Frame) State() FrameState { return f.state }

// ReturnValue reports the value of the last top-level expression statement
// executed, if any (spec §6: a completed run yields this as its final
// value). Ownership transfers to the caller — it is not dropped by the
// Frame once returned here.
func (f *Frame) ReturnValue() (Value, bool) { return f.returnValue, f.hasReturn }

// Run drives prog's body to completion. On a user exception it returns the
// *Exception (state becomes FrameRaising and stays there); on a resource
// halt it returns *ResourceError; on success it returns nil and state
// becomes FrameReturning.
func (f *Frame) Run(prog *Program) error {
	f.state = FrameRunning
	err := f.execBlock(prog.Body)
	if err != nil {
		if exc, ok := IsException(err); ok {
			f.state = FrameRaising
			return exc
		}
		return err
	}
	f.state = FrameReturning
	return nil
}

func (f *Frame) execBlock(stmts []Stmt) error {
	for i := range stmts {
		if err := f.execStmt(&stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Frame) execStmt(s *Stmt) error {
	if err := f.tracker.Step(); err != nil {
		return err
	}
	switch s.Kind {
	case StmtPass:
		return nil

	case StmtExpr:
		v, err := f.eval(s.Expr)
		if err != nil {
			return f.annotate(err, s.Line)
		}
		if f.hasReturn {
			f.returnValue.DropWithHeap(f.heap)
		}
		f.returnValue = v
		f.hasReturn = true
		return nil

	case StmtAssign:
		v, err := f.eval(s.Object)
		if err != nil {
			return f.annotate(err, s.Line)
		}
		f.store(s.Target, v)
		return nil

	case StmtOpAssign:
		cur, err := f.load(s.Target)
		if err != nil {
			return f.annotate(err, s.Line)
		}
		rhs, err := f.eval(s.Object)
		if err != nil {
			cur.DropWithHeap(f.heap)
			return f.annotate(err, s.Line)
		}
		result, err := f.applyOpAssign(s.Op, cur, rhs)
		if err != nil {
			return f.annotate(err, s.Line)
		}
		f.store(s.Target, result)
		return nil

	case StmtFor:
		return f.execFor(s)

	case StmtIf:
		test, err := f.eval(s.Test)
		if err != nil {
			return f.annotate(err, s.Line)
		}
		truthy := test.PyBool(f.heap)
		test.DropWithHeap(f.heap)
		if truthy {
			return f.execBlock(s.Body)
		}
		return f.execBlock(s.OrElse)

	default:
		return newInternalError("execStmt: unknown StmtKind %d", s.Kind)
	}
}

func (f *Frame) applyOpAssign(op BinOp, cur, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		return iaddValues(cur, rhs, f.heap)
	case OpSub:
		return subValues(cur, rhs, f.heap)
	case OpMod:
		return modValues(cur, rhs, f.heap)
	default:
		return Value{}, newInternalError("applyOpAssign: unknown BinOp %d", op)
	}
}

// execFor iterates s.Iter's elements (a List, Tuple, Str or Bytes — see
// iterateValues), binding each to s.Target in turn. The or_else clause (Python's
// for/else) always runs in this core, since the statement set has no break
// to skip it with (spec's closed Node kinds omit break/continue).
func (f *Frame) execFor(s *Stmt) error {
	iterVal, err := f.eval(s.Iter)
	if err != nil {
		return f.annotate(err, s.Line)
	}
	items, owned, err := iterateValues(iterVal, f.heap)
	if err != nil {
		iterVal.DropWithHeap(f.heap)
		return f.annotate(err, s.Line)
	}
	// Copy item Values out before iterating: executing the body can mutate
	// or drop the very container we're iterating (e.g. `for x in xs: xs.append(x)`),
	// and items aliases the container's live backing slice.
	snapshot := make([]Value, len(items))
	copy(snapshot, items)

	for _, item := range snapshot {
		f.store(s.Target, item.CloneWithHeap(f.heap))
		if err := f.execBlock(s.Body); err != nil {
			dropIterItems(snapshot, owned, f.heap)
			iterVal.DropWithHeap(f.heap)
			return err
		}
	}
	dropIterItems(snapshot, owned, f.heap)
	iterVal.DropWithHeap(f.heap)
	return f.execBlock(s.OrElse)
}

func (f *Frame) load(idx int) (Value, error) {
	if !f.assigned[idx] {
		return Value{}, nameErrorf("name is not defined")
	}
	return f.names[idx].CloneWithHeap(f.heap), nil
}

func (f *Frame) store(idx int, v Value) {
	if f.assigned[idx] {
		old := f.names[idx]
		old.DropWithHeap(f.heap)
	}
	f.names[idx] = v
	f.assigned[idx] = true
}

func (f *Frame) annotate(err error, line int) error {
	if exc, ok := IsException(err); ok {
		exc.PushFrame(StackFrame{FuncName: "<module>", Line: line})
	}
	return err
}

func (f *Frame) eval(e *Expr) (Value, error) {
	switch e.Kind {
	case ExprConstant:
		return e.Constant.CloneWithHeap(f.heap), nil

	case ExprName:
		return f.load(e.Name)

	case ExprOp:
		left, err := f.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := f.eval(e.Right)
		if err != nil {
			left.DropWithHeap(f.heap)
			return Value{}, err
		}
		switch e.Op {
		case OpAdd:
			return addValues(left, right, f.heap)
		case OpSub:
			return subValues(left, right, f.heap)
		case OpMod:
			return modValues(left, right, f.heap)
		default:
			return Value{}, newInternalError("eval: unknown BinOp %d", e.Op)
		}

	case ExprCmpOp:
		left, err := f.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := f.eval(e.Right)
		if err != nil {
			left.DropWithHeap(f.heap)
			return Value{}, err
		}
		return compareValues(e.CmpOp, left, right, f.heap)

	case ExprCall:
		return f.evalCall(e)

	case ExprList:
		items := make([]Value, 0, len(e.Elements))
		for i := range e.Elements {
			v, err := f.eval(&e.Elements[i])
			if err != nil {
				for _, done := range items {
					done.DropWithHeap(f.heap)
				}
				return Value{}, err
			}
			items = append(items, v)
		}
		if err := f.tracker.Allocation(); err != nil {
			for _, done := range items {
				done.DropWithHeap(f.heap)
			}
			return Value{}, err
		}
		return Ref(f.heap.Allocate(NewList(items))), nil

	default:
		return Value{}, newInternalError("eval: unknown ExprKind %d", e.Kind)
	}
}

// evalCall evaluates an ExprCall. The callee is always a builtin resolved
// by id at prepare time (spec §6's `Call{builtin_id, args, kwargs}`) — this
// core's expression grammar has no form for calling an arbitrary runtime
// value, only for calling one of the fixed builtins by name.
func (f *Frame) evalCall(e *Expr) (Value, error) {
	args := make([]Value, 0, len(e.Args))
	for i := range e.Args {
		v, err := f.eval(&e.Args[i])
		if err != nil {
			for _, done := range args {
				done.DropWithHeap(f.heap)
			}
			return Value{}, err
		}
		args = append(args, v)
	}
	var kwargs map[string]Value
	if len(e.Kwargs) > 0 {
		kwargs = make(map[string]Value, len(e.Kwargs))
		for name, expr := range e.Kwargs {
			v, err := f.eval(expr)
			if err != nil {
				for _, done := range args {
					done.DropWithHeap(f.heap)
				}
				for _, done := range kwargs {
					done.DropWithHeap(f.heap)
				}
				return Value{}, err
			}
			kwargs[name] = v
		}
	}

	return CallBuiltin(e.Builtin, f.heap, ManyArgs(args, kwargs), f.writer, f.callValue)
}

// callValue is the CallFn hook passed to builtins (filter/map) that need to
// invoke a callable Value themselves. Only builtin-kind Values are
// callable in this core, so this simply redispatches to CallBuiltin.
func (f *Frame) callValue(callee Value, args ArgValues) (Value, error) {
	if callee.Kind() != KindBuiltin {
		ct := callee.PyType(f.heap)
		callee.DropWithHeap(f.heap)
		args.DropWithHeap(f.heap)
		return Value{}, typeErrorf("'%s' object is not callable", ct)
	}
	id := callee.AsBuiltin()
	return CallBuiltin(id, f.heap, args, f.writer, f.callValue)
}
