package monty

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitedTrackerStepBudgetExhausted(t *testing.T) {
	tr := NewLimitedTracker(MaxSteps(2))
	require.NoError(t, tr.Step())
	require.NoError(t, tr.Step())
	err := tr.Step()
	require.Error(t, err)
	require.IsType(t, &ResourceError{}, err)
	require.Equal(t, int64(3), tr.StepCount())
}

func TestLimitedTrackerAllocationBudgetExhausted(t *testing.T) {
	tr := NewLimitedTracker(MaxAllocations(1))
	require.NoError(t, tr.Allocation())
	err := tr.Allocation()
	require.Error(t, err)
	require.IsType(t, &ResourceError{}, err)
}

func TestLimitedTrackerZeroMeansUnlimited(t *testing.T) {
	tr := NewLimitedTracker(MaxSteps(0))
	for i := 0; i < 10_000; i++ {
		require.NoError(t, tr.Step())
	}
}

func TestDumpAndLoadLimitsRoundTrip(t *testing.T) {
	tr := NewLimitedTracker(MaxSteps(42), MaxAllocations(7))
	data, err := tr.DumpLimits()
	require.NoError(t, err)

	loaded, err := LoadLimits(data)
	require.NoError(t, err)
	require.NoError(t, loaded.Step())
	require.Equal(t, int64(1), loaded.StepCount())

	for i := 0; i < 41; i++ {
		require.NoError(t, loaded.Step())
	}
	require.Error(t, loaded.Step())
}

func TestNoLimitTrackerNeverHalts(t *testing.T) {
	tr := NoLimitTracker{}
	require.NoError(t, tr.Step())
	require.NoError(t, tr.Allocation())
}
