package tap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestset(t *testing.T) {
	ts := New("basic.t")
	assert.Equal(t, "basic.t", ts.File)
	assert.Equal(t, PlanInit, ts.Plan)
	assert.Zero(t, ts.Allocated)
}

func TestGrowToGeometric(t *testing.T) {
	ts := New("t")
	ts.growTo(5)
	require.Equal(t, initialCapacity, ts.Allocated)

	ts.growTo(33)
	assert.Equal(t, initialCapacity*2, ts.Allocated)

	ts.growTo(65)
	assert.Equal(t, initialCapacity*4, ts.Allocated)
}

func TestSetResultUpdatesCounters(t *testing.T) {
	ts := New("t")
	ts.setResult(1, Pass)
	ts.setResult(2, Fail)
	ts.setResult(3, Skip)

	assert.Equal(t, 1, ts.Passed)
	assert.Equal(t, 1, ts.Failed)
	assert.Equal(t, 1, ts.Skipped)
	assert.Equal(t, 3, ts.Current)
	assert.Equal(t, Pass, ts.resultAt(1))
}

func TestSetResultCurrentTracksMostRecent(t *testing.T) {
	ts := New("t")
	ts.setResult(5, Pass)
	ts.setResult(2, Pass)
	assert.Equal(t, 2, ts.Current, "current tracks the most recently observed number, not the max")
}

func TestResultAtOutOfRangeIsInvalid(t *testing.T) {
	ts := New("t")
	assert.Equal(t, Invalid, ts.resultAt(0))
	assert.Equal(t, Invalid, ts.resultAt(1))
	ts.growTo(4)
	assert.Equal(t, Invalid, ts.resultAt(4))
}

func TestAbortMessageFormatting(t *testing.T) {
	ts := New("t")
	ts.abort("db down")
	assert.True(t, ts.Aborted)
	assert.True(t, ts.Reported)
	assert.Equal(t, "ABORTED (db down)", ts.AbortMessage)

	ts2 := New("t")
	ts2.abort("")
	assert.Equal(t, "ABORTED", ts2.AbortMessage)
}
