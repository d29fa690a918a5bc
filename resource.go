package monty

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResourceTracker is consulted by the frame executor before each statement
// and before each list-literal allocation, so an embedding can bound a
// sandboxed program's CPU and memory use without the program itself being
// able to observe or influence the limit (spec §5).
type ResourceTracker interface {
	// Step is called once per executed statement. Returning an error halts
	// the run with a ResourceError.
	Step() error
	// Allocation is called by the frame executor just before it allocates
	// the List for a list-literal expression; returning an error halts the
	// run before that allocation. Heap.Allocate itself does not call it, so
	// allocations made by operators, builtins and attribute methods are not
	// reported to the tracker.
	Allocation() error
}

// NoLimitTracker never halts a run. It is the default for embeddings that
// trust the program they're running, or that enforce limits some other way
// (e.g. a wall-clock timeout around the whole Run call).
type NoLimitTracker struct{}

func (NoLimitTracker) Step() error       { return nil }
func (NoLimitTracker) Allocation() error { return nil }

// limits holds the tunable thresholds for LimitedTracker. Mirrors the
// teacher's configs struct: a plain value type built up via functional
// options, never exported directly.
type limits struct {
	maxSteps       int64
	maxAllocations int64
}

func defaultLimits() *limits {
	return &limits{maxSteps: 1_000_000, maxAllocations: 100_000}
}

// MaxSteps is a LimitedTracker option. It caps the number of executed
// statements; zero means unlimited.
func MaxSteps(n int64) func(*limits) {
	return func(l *limits) { l.maxSteps = n }
}

// MaxAllocations is a LimitedTracker option. It caps the number of
// Allocation calls a run may make over its lifetime (see
// ResourceTracker.Allocation for which allocations those are); zero means
// unlimited.
func MaxAllocations(n int64) func(*limits) {
	return func(l *limits) { l.maxAllocations = n }
}

// LimitedTracker enforces the step and allocation budgets configured via
// its option functions, the same pattern the teacher uses for BDD table
// sizing options.
type LimitedTracker struct {
	limits *limits
	steps  int64
	allocs int64
}

// NewLimitedTracker builds a LimitedTracker from the given options, falling
// back to defaultLimits for anything not set.
func NewLimitedTracker(opts ...func(*limits)) *LimitedTracker {
	l := defaultLimits()
	for _, opt := range opts {
		opt(l)
	}
	return &LimitedTracker{limits: l}
}

func (t *LimitedTracker) Step() error {
	t.steps++
	if t.limits.maxSteps > 0 && t.steps > t.limits.maxSteps {
		return newResourceError(fmt.Sprintf("step budget exhausted (%d steps)", t.limits.maxSteps))
	}
	return nil
}

func (t *LimitedTracker) Allocation() error {
	t.allocs++
	if t.limits.maxAllocations > 0 && t.allocs > t.limits.maxAllocations {
		return newResourceError(fmt.Sprintf("allocation budget exhausted (%d allocations)", t.limits.maxAllocations))
	}
	return nil
}

// StepCount and AllocCount report the tracker's running totals, for
// diagnostics and tests.
func (t *LimitedTracker) StepCount() int64  { return t.steps }
func (t *LimitedTracker) AllocCount() int64 { return t.allocs }

// limitsDoc is the YAML-serializable form of limits, for embeddings that
// want to load/persist a resource budget alongside the rest of their
// configuration.
type limitsDoc struct {
	MaxSteps       int64 `yaml:"max_steps"`
	MaxAllocations int64 `yaml:"max_allocations"`
}

// DumpLimits renders t's current budget as YAML.
func (t *LimitedTracker) DumpLimits() ([]byte, error) {
	return yaml.Marshal(limitsDoc{MaxSteps: t.limits.maxSteps, MaxAllocations: t.limits.maxAllocations})
}

// LoadLimits builds a LimitedTracker from a YAML document in the DumpLimits
// shape, for embeddings that keep resource budgets in a config file
// alongside everything else.
func LoadLimits(data []byte) (*LimitedTracker, error) {
	var doc limitsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newInternalError("LoadLimits: %v", err)
	}
	return NewLimitedTracker(MaxSteps(doc.MaxSteps), MaxAllocations(doc.MaxAllocations)), nil
}
