package solver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reSolve collects the externalized clauses and feeds them into a fresh
// solver, which must reach the same verdict (round trip R2).
func reSolve(t *testing.T, s *Solver) int {
	t.Helper()
	fresh := New(DefaultOptions())
	ok := s.TraverseFixed(ClauseFunc(func(lits []int) bool {
		fresh.AddClause(lits...)
		return true
	}))
	require.True(t, ok)
	ok = s.TraverseClauses(ClauseFunc(func(lits []int) bool {
		if len(lits) == 0 {
			fresh.Add(0)
			return true
		}
		fresh.AddClause(lits...)
		return true
	}))
	require.True(t, ok)
	return fresh.Solve()
}

func TestTraverseRoundTripSat(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.AddClause(-1, 3)
	s.AddClause(-3, -2, 1)
	require.Equal(t, Satisfiable, s.Solve())
	assert.Equal(t, Satisfiable, reSolve(t, s))
}

func TestTraverseRoundTripUnsat(t *testing.T) {
	s := New(DefaultOptions())
	php(s, 4, 3)
	require.Equal(t, Unsatisfiable, s.Solve())
	assert.Equal(t, Unsatisfiable, reSolve(t, s))
}

func TestTraverseUnsatEmitsEmptyClause(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1)
	s.AddClause(-1)
	var clauses [][]int
	s.TraverseClauses(ClauseFunc(func(lits []int) bool {
		cp := make([]int, len(lits))
		copy(cp, lits)
		clauses = append(clauses, cp)
		return true
	}))
	require.Len(t, clauses, 1)
	assert.Empty(t, clauses[0])
}

func TestTraverseSkipsFixedLiterals(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1)        // fixes 1
	s.AddClause(-1, 2, 3) // root-false literal -1 must be dropped
	s.AddClause(1, 4)     // satisfied at root, whole clause dropped
	var clauses [][]int
	s.TraverseClauses(ClauseFunc(func(lits []int) bool {
		cp := make([]int, len(lits))
		copy(cp, lits)
		clauses = append(clauses, cp)
		return true
	}))
	require.Len(t, clauses, 1)
	assert.ElementsMatch(t, []int{2, 3}, clauses[0])
}

func TestTraverseAbort(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.AddClause(3, 4)
	count := 0
	ok := s.TraverseClauses(ClauseFunc(func(lits []int) bool {
		count++
		return false
	}))
	assert.False(t, ok)
	assert.Equal(t, 1, count)
}

func TestDumpFormat(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1)
	s.AddClause(2, 3)
	s.Assume(-3)
	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "p cnf 3 3", lines[0]) // one fixed unit, one clause, one assumption
	assert.Contains(t, lines, "1 0")
	assert.Contains(t, lines, "2 3 0")
	assert.Contains(t, lines, "-3 0")
}

func TestDimacsParse(t *testing.T) {
	in := `c a comment
p cnf 3 3
1 2 0
-1 3 0
-3 -2 0
`
	s := New(DefaultOptions())
	require.NoError(t, ParseCNF(strings.NewReader(in), s))
	require.Equal(t, Satisfiable, s.Solve())
	assert.Equal(t, int64(3), s.Stats().Originals)
}

func TestDimacsParseErrors(t *testing.T) {
	s := New(DefaultOptions())
	err := ParseCNF(strings.NewReader("p cnf x y\n"), s)
	require.Error(t, err)
	s2 := New(DefaultOptions())
	err = ParseCNF(strings.NewReader("1 a 0\n"), s2)
	require.Error(t, err)
}

type recordingProof struct {
	clauses [][]int
}

func (p *recordingProof) AddOriginalClause(lits []int) {
	cp := make([]int, len(lits))
	copy(cp, lits)
	p.clauses = append(p.clauses, cp)
}

func TestProofListener(t *testing.T) {
	s := New(DefaultOptions())
	proof := &recordingProof{}
	s.SetProof(proof)
	s.AddClause(1, 2)
	s.AddClause(-1)
	require.Len(t, proof.clauses, 2)
	assert.Equal(t, []int{1, 2}, proof.clauses[0])
	assert.Equal(t, []int{-1}, proof.clauses[1])
}
