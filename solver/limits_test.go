package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLimitsFresh(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	require.False(t, s.lim.initialized)
	s.initLimits()
	require.True(t, s.lim.initialized)

	assert.Equal(t, s.opts.ReduceInt, s.lim.reduce)
	assert.Equal(t, s.opts.FlushInt, s.lim.flush)
	assert.Equal(t, s.opts.FlushInt, s.inc.flush)
	assert.Equal(t, s.scale(s.opts.SubsumeInt), s.lim.subsume)
	assert.Equal(t, s.scale(s.opts.ElimInt), s.lim.elim)
	assert.Equal(t, s.opts.ElimBoundMin, s.lim.elimbound)
	assert.Equal(t, s.opts.ProbeInt, s.lim.probe)
	assert.Equal(t, s.opts.CompactInt, s.lim.compact)
	assert.Equal(t, s.opts.RephaseInt, s.lim.rephase)
	assert.Equal(t, [2]int64{0, 0}, s.lim.rephased)
	assert.Equal(t, s.opts.RestartInt, s.lim.restart)
	assert.Equal(t, s.opts.StabilizeInt, s.inc.stabilize)
	assert.Equal(t, s.opts.StabilizeInt, s.lim.stabilize)
	assert.Equal(t, int64(-1), s.lim.conflicts)
	assert.Equal(t, int64(-1), s.lim.decisions)
	assert.Equal(t, int64(-1), s.last.reduce.conflicts)
	assert.Equal(t, int64(-1), s.last.elim.marked)
	assert.Equal(t, int64(-1), s.last.ternary.marked)
	assert.False(t, s.stable, "default start is the non-stable mode")
	assert.True(t, s.reluctant.enabled)
}

func TestInitLimitsIncrementalKeepsSearchLimits(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.initLimits()

	// Simulate search progress, then re-initialize incrementally.
	s.stats.Conflicts = 500
	s.lim.reduce = 1234
	s.lim.subsume = 2345
	s.lim.elim = 3456
	s.lim.probe = 4567
	s.lim.compact = 5678
	s.lim.elimbound = 8
	s.initLimits()

	// Kept across incremental calls.
	assert.Equal(t, int64(1234), s.lim.reduce)
	assert.Equal(t, int64(2345), s.lim.subsume)
	assert.Equal(t, int64(3456), s.lim.elim)
	assert.Equal(t, int64(4567), s.lim.probe)
	assert.Equal(t, int64(5678), s.lim.compact)

	// Always reset.
	assert.Equal(t, s.opts.ElimBoundMin, s.lim.elimbound)
	assert.Equal(t, int64(500)+s.opts.RephaseInt, s.lim.rephase)
	assert.Equal(t, int64(500)+s.opts.RestartInt, s.lim.restart)
	assert.Equal(t, int64(500)+s.opts.StabilizeInt, s.lim.stabilize)
}

func TestInitLimitsModeSwitching(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.initLimits()
	require.False(t, s.stable)

	// A stable solver switches back to non-stable on an incremental call.
	s.stable = true
	s.initLimits()
	assert.False(t, s.stable)

	// Unless stable-only is configured.
	opts := DefaultOptions()
	opts.StabilizeOnly = true
	s2 := New(opts)
	s2.AddClause(1, 2)
	s2.initLimits()
	assert.True(t, s2.stable)
	s2.initLimits()
	assert.True(t, s2.stable)
}

func TestPreprocessingRoundCaps(t *testing.T) {
	opts := DefaultOptions()
	opts.Preprocessing = 3
	opts.LocalSearch = 2
	s := New(opts)
	s.AddClause(1, 2)
	s.initLimits()
	assert.Equal(t, 3, s.lim.preprocessing)
	assert.Equal(t, 2, s.lim.localsearch)

	s.inc.preprocessing = 0
	s.inc.localsearch = -5
	s.initLimits()
	assert.Equal(t, 0, s.lim.preprocessing)
	assert.Equal(t, 0, s.lim.localsearch)
}

func TestScaleMonotone(t *testing.T) {
	s := New(DefaultOptions())
	small := s.scale(1000)
	s.stats.Current.Irredundant = 1000000
	large := s.scale(1000)
	assert.Greater(t, large, small)
}
