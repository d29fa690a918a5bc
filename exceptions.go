package monty

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ExcType is the closed set of exception kinds a Monty program can raise
// (spec §3). Unlike real Python, this is not extensible: the core never
// needs to dispatch on a user-defined exception hierarchy.
type ExcType uint8

const (
	ValueError ExcType = iota
	TypeError
	NameError
	AttributeError
	IndexError
	KeyError
)

func (k ExcType) String() string {
	switch k {
	case ValueError:
		return "ValueError"
	case TypeError:
		return "TypeError"
	case NameError:
		return "NameError"
	case AttributeError:
		return "AttributeError"
	case IndexError:
		return "IndexError"
	case KeyError:
		return "KeyError"
	default:
		return "Exception"
	}
}

// StackFrame records one level of the call chain active when an exception
// was raised, so a Traceback can be rendered most-recent-call-last.
type StackFrame struct {
	FuncName string
	Line     int
}

// Exception is a raised user-visible error, carrying the frame chain active
// at the point it propagated past the core's control (spec §4.E). It
// implements error so it can travel through ordinary Go error-return paths,
// but the core distinguishes it from internal/resource errors by type
// assertion at the embedder boundary (spec §7).
type Exception struct {
	Kind    ExcType
	Message string
	Frames  []StackFrame // most-recent-call-last
}

func (e *Exception) Error() string { return e.String() }

// String renders the Python-style traceback: a header, one line per frame
// oldest-first, then "Kind: message".
func (e *Exception) String() string {
	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for _, f := range e.Frames {
		fmt.Fprintf(&b, "  File \"<monty>\", line %d, in %s\n", f.Line, f.FuncName)
	}
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	return b.String()
}

// PushFrame records an additional (outer) frame as the exception propagates
// up through the call stack. Called by the frame executor as it unwinds.
func (e *Exception) PushFrame(f StackFrame) {
	e.Frames = append([]StackFrame{f}, e.Frames...)
}

func newExc(kind ExcType, format string, args ...any) *Exception {
	return &Exception{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func valueErrorf(format string, args ...any) error  { return newExc(ValueError, format, args...) }
func typeErrorf(format string, args ...any) error    { return newExc(TypeError, format, args...) }
func nameErrorf(format string, args ...any) error    { return newExc(NameError, format, args...) }
func attributeErrorf(format string, args ...any) error {
	return newExc(AttributeError, format, args...)
}
func indexErrorf(format string, args ...any) error { return newExc(IndexError, format, args...) }
func keyErrorf(format string, args ...any) error   { return newExc(KeyError, format, args...) }

// InternalError marks a failure in the core itself (a broken invariant, a
// nil dereference the core caught before it became a panic) as distinct
// from a user-raised Exception and from a ResourceError (spec §7, third
// error channel). Embedders should treat it as a bug report, not as
// something the running program did wrong.
type InternalError struct {
	cause error
}

func (e *InternalError) Error() string { return "monty: internal error: " + e.cause.Error() }
func (e *InternalError) Unwrap() error { return e.cause }

func newInternalError(format string, args ...any) error {
	return &InternalError{cause: errors.WithStack(fmt.Errorf(format, args...))}
}

// ResourceError reports that a run was halted by its ResourceTracker (step
// budget or allocation budget exhausted), the second disjoint error channel
// alongside user Exceptions (spec §5).
type ResourceError struct {
	Reason string
}

func (e *ResourceError) Error() string { return "monty: resource limit exceeded: " + e.Reason }

func newResourceError(reason string) error {
	return &ResourceError{Reason: reason}
}

// IsException reports whether err is a user-visible Exception, unwrapping
// pkg/errors-style wrapped causes.
func IsException(err error) (*Exception, bool) {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc, true
	}
	return nil, false
}
