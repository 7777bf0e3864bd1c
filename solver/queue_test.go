package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrdering(t *testing.T) {
	s := New(DefaultOptions())
	s.initVars(4)
	for v := 1; v <= 4; v++ {
		s.activate(v)
	}
	// Fresh variables are enqueued most recent last, so 4 is decided first.
	require.Equal(t, 4, s.nextQueueDecision())

	// Bumping moves a variable to the front.
	s.bumpQueue(2)
	require.Equal(t, 2, s.nextQueueDecision())

	// Assigned variables are skipped.
	s.searchAssign(2, nil)
	s.searchAssign(4, nil)
	require.Equal(t, 3, s.nextQueueDecision())
}

func TestQueueSearchPointerAfterUnassign(t *testing.T) {
	s := New(DefaultOptions())
	s.initVars(3)
	for v := 1; v <= 3; v++ {
		s.activate(v)
	}
	s.newLevel(3)
	s.searchAssign(3, nil)
	require.Equal(t, 2, s.nextQueueDecision())
	s.backtrack(0)
	// 3 is unassigned again and more recent than the cached pointer.
	require.Equal(t, 3, s.nextQueueDecision())
}

func TestHeapOrdering(t *testing.T) {
	s := New(DefaultOptions())
	s.initVars(3)
	s.stab[1] = 1
	s.stab[2] = 5
	s.stab[3] = 3
	s.heap.update(1)
	s.heap.update(2)
	s.heap.update(3)
	assert.Equal(t, 2, s.heap.popMax())
	assert.Equal(t, 3, s.heap.popMax())
	assert.Equal(t, 1, s.heap.popMax())
	assert.True(t, s.heap.empty())

	// Pushing again after popping works and duplicates are ignored.
	s.heap.push(1)
	s.heap.push(1)
	assert.Equal(t, 1, s.heap.popMax())
	assert.True(t, s.heap.empty())
}

func TestHeapTracksScoreBumps(t *testing.T) {
	s := New(DefaultOptions())
	s.initVars(10)
	for v := 1; v <= 10; v++ {
		s.activate(v)
	}
	s.bumpScore(7)
	s.stable = true
	require.Equal(t, 7, s.nextDecisionVar())
}

func TestReluctantSequence(t *testing.T) {
	var r reluctant
	r.enable(1, 0)
	var intervals []int64
	ticks := int64(0)
	for len(intervals) < 7 {
		r.tick()
		ticks++
		if r.expired() {
			intervals = append(intervals, ticks)
			ticks = 0
		}
	}
	// Reluctant doubling reproduces the Luby intervals 1,1,2,1,1,2,4 after
	// the initial period.
	assert.Equal(t, []int64{1, 1, 2, 1, 1, 2, 4}, intervals)
}
