package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitVarsGrowth(t *testing.T) {
	s := New(DefaultOptions())
	s.initVars(3)
	require.Equal(t, 3, s.maxVar)
	require.GreaterOrEqual(t, s.vsize, 4)
	require.Equal(t, 3, s.stats.Vars)
	require.Equal(t, 3, s.stats.Unused)

	// Newly exposed slots are clean.
	for v := 1; v <= 3; v++ {
		assert.Equal(t, int8(0), s.val(v))
		assert.Equal(t, int8(0), s.val(-v))
		assert.True(t, s.heap.contains(v), "new variable missing from score heap")
		assert.Equal(t, 0.0, s.stab[v])
		assert.Equal(t, int32(0), s.frozentab[v])
		assert.Equal(t, int8(1), s.phases.saved[v], "saved phase initial value")
		assert.Equal(t, int8(0), s.phases.target[v])
		assert.Equal(t, int8(0), s.phases.best[v])
		assert.Equal(t, int8(0), s.phases.prev[v])
		assert.Equal(t, int8(0), s.phases.min[v])
		assert.Equal(t, int8(0), s.marks[v])
		assert.Equal(t, int32(-1), s.ptab[watchIdx(v)])
		assert.Equal(t, int32(-1), s.ptab[watchIdx(-v)])
	}
}

func TestInitVarsIdempotent(t *testing.T) {
	s := New(DefaultOptions())
	s.initVars(5)
	vsize := s.vsize
	vars := s.stats.Vars
	s.initVars(5)
	assert.Equal(t, 5, s.maxVar)
	assert.Equal(t, vsize, s.vsize)
	assert.Equal(t, vars, s.stats.Vars)
	s.initVars(3) // shrinking requests are ignored
	assert.Equal(t, 5, s.maxVar)
}

func TestInitVarsPreservesContent(t *testing.T) {
	s := New(DefaultOptions())
	s.initVars(2)
	s.activate(1)
	s.searchAssign(1, nil)
	s.stab[2] = 42
	s.phases.saved[2] = -1
	oldVsize := s.vsize

	s.initVars(100) // forces at least one doubling
	require.Greater(t, s.vsize, oldVsize)
	assert.Equal(t, int8(1), s.val(1))
	assert.Equal(t, int8(-1), s.val(-1))
	assert.Equal(t, 42.0, s.stab[2])
	assert.Equal(t, int8(-1), s.phases.saved[2])
	for v := 3; v <= 100; v++ {
		assert.Equal(t, int8(0), s.val(v))
	}
	assertInvariants(t, s)
}

func TestNegativePhaseOption(t *testing.T) {
	opts := DefaultOptions()
	opts.Phase = false
	s := New(opts)
	s.initVars(2)
	assert.Equal(t, int8(-1), s.phases.saved[1])
	assert.Equal(t, int8(-1), s.phases.saved[2])
}

func TestGrowthWhileSolving(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	require.Equal(t, Satisfiable, s.Solve())
	// The formula grows afterwards; prior state must be preserved.
	s.AddClause(-2, 50)
	require.Equal(t, Satisfiable, s.Solve())
	assertInvariants(t, s)
}

func TestFreezeMelt(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.Freeze(1)
	iv := s.etab[1]
	assert.True(t, s.frozen(iv))
	s.Melt(1)
	assert.False(t, s.frozen(iv))
	assert.Panics(t, func() { s.Melt(1) })
}
