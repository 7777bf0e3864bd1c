package solver

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertInvariants checks the global solver invariants that must hold
// outside transitional code.
func assertInvariants(t *testing.T, s *Solver) {
	t.Helper()
	for lit := -s.maxVar; lit <= s.maxVar; lit++ {
		require.Equal(t, int8(0), s.val(lit)+s.val(-lit), "assignment duality for %d", lit)
	}
	s.checkVarStats()
	require.Equal(t, s.level()+1, len(s.control), "control stack height")
	for _, lit := range s.trail {
		require.Equal(t, int8(1), s.val(lit), "trail literal %d not true", lit)
	}
	require.Empty(t, s.clause, "learned clause buffer not empty")
}

// php builds the pigeonhole principle formula with n pigeons and m holes.
// It is unsatisfiable whenever n > m.
func php(s *Solver, pigeons, holes int) {
	v := func(p, h int) int { return p*holes + h + 1 }
	for p := 0; p < pigeons; p++ {
		var clause []int
		for h := 0; h < holes; h++ {
			clause = append(clause, v(p, h))
		}
		s.AddClause(clause...)
	}
	for h := 0; h < holes; h++ {
		for p1 := 0; p1 < pigeons; p1++ {
			for p2 := p1 + 1; p2 < pigeons; p2++ {
				s.AddClause(-v(p1, h), -v(p2, h))
			}
		}
	}
}

// randomCNF builds a random k-CNF formula.
func randomCNF(rng *rand.Rand, nVars, nClauses, k int) [][]int {
	cnf := make([][]int, 0, nClauses)
	for i := 0; i < nClauses; i++ {
		clause := make([]int, 0, k)
		used := map[int]bool{}
		for len(clause) < k {
			v := rng.Intn(nVars) + 1
			if used[v] {
				continue
			}
			used[v] = true
			if rng.Intn(2) == 0 {
				v = -v
			}
			clause = append(clause, v)
		}
		cnf = append(cnf, clause)
	}
	return cnf
}

func TestTriviallyUnsat(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1)
	s.AddClause(-1)
	require.Equal(t, Unsatisfiable, s.Solve())
	assertInvariants(t, s)
	// Stays unsatisfiable on repeated calls, without running the ladder.
	require.Equal(t, Unsatisfiable, s.Solve())
}

func TestTriviallySat(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.AddClause(-1, 2)
	require.Equal(t, Satisfiable, s.Solve())
	assert.Equal(t, 2, s.Val(2))
	assertInvariants(t, s)
}

func TestAssumptionUnsat(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.Assume(-1)
	s.Assume(-2)
	require.Equal(t, Unsatisfiable, s.Solve())
	assert.True(t, s.Failed(-1), "assumption -1 should fail")
	assert.True(t, s.Failed(-2), "assumption -2 should fail")
	assert.False(t, s.Inconsistent(), "formula itself is satisfiable")
	// Assumptions are cleared: the next call is unconstrained.
	require.Equal(t, Satisfiable, s.Solve())
	assertInvariants(t, s)
}

func TestIncrementalReuse(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2, 3)
	require.Equal(t, Satisfiable, s.Solve())
	s.AddClause(-1)
	require.Equal(t, Satisfiable, s.Solve())
	assert.Equal(t, -1, s.Val(1))
	s.AddClause(-2)
	s.AddClause(-3)
	require.Equal(t, Unsatisfiable, s.Solve())
	assertInvariants(t, s)
}

func TestTermination(t *testing.T) {
	s := New(DefaultOptions())
	php(s, 7, 6)
	s.SetTerminate(func() bool { return s.Stats().Conflicts > 0 })
	require.Equal(t, Unknown, s.Solve())
	s.SetTerminate(nil)
	require.Equal(t, Unsatisfiable, s.Solve())
	assertInvariants(t, s)
}

func TestTerminateForced(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.Terminate()
	require.Equal(t, Unknown, s.Solve())
	// The forced flag is reset by Solve.
	require.Equal(t, Satisfiable, s.Solve())
}

func TestConflictLimit(t *testing.T) {
	s := New(DefaultOptions())
	php(s, 8, 7)
	s.SetConflictLimit(1)
	require.Equal(t, Unknown, s.Solve())
	s.SetConflictLimit(-1)
	require.Equal(t, Unsatisfiable, s.Solve())
}

func TestEmptyFormula(t *testing.T) {
	s := New(DefaultOptions())
	require.Equal(t, Satisfiable, s.Solve())
	assertInvariants(t, s)
}

func TestSingleVariableNoClauses(t *testing.T) {
	s := New(DefaultOptions())
	s.Freeze(1) // brings the variable into existence without any clause
	require.Equal(t, Satisfiable, s.Solve())
	assert.Equal(t, 1, s.Val(1), "model assigns the saved phase default")
}

func TestRootConflictOnEntry(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.AddClause(-2)
	s.AddClause(-1, 2)
	require.Equal(t, Unsatisfiable, s.Solve())
	assert.True(t, s.Inconsistent())
}

func TestValWithoutModelPanics(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1)
	s.AddClause(-1)
	require.Equal(t, Unsatisfiable, s.Solve())
	assert.Panics(t, func() { s.Val(1) })
}

func TestReportStream(t *testing.T) {
	var buf bytes.Buffer
	s := New(DefaultOptions())
	s.SetReportWriter(&buf)
	s.AddClause(1, 2)
	require.Equal(t, Satisfiable, s.Solve())
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "*"), "no restore expected, got %q", out)
	assert.True(t, strings.HasSuffix(out, "1"), "satisfiable verdict expected, got %q", out)
}

func TestPigeonhole(t *testing.T) {
	for holes := 2; holes <= 6; holes++ {
		s := New(DefaultOptions())
		php(s, holes+1, holes)
		require.Equal(t, Unsatisfiable, s.Solve(), "php(%d,%d)", holes+1, holes)
		assertInvariants(t, s)
	}
	// Satisfiable when every pigeon fits.
	s := New(DefaultOptions())
	php(s, 5, 5)
	require.Equal(t, Satisfiable, s.Solve())
	assertInvariants(t, s)
}

// checkModel verifies the reported model satisfies the formula.
func checkModel(t *testing.T, s *Solver, cnf [][]int) {
	t.Helper()
	for _, clause := range cnf {
		ok := false
		for _, lit := range clause {
			if s.Val(lit) == lit {
				ok = true
				break
			}
		}
		require.True(t, ok, "clause %v not satisfied by model", clause)
	}
}

func TestRandomSatisfiableModels(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 40; i++ {
		// Sparse random formulas are almost surely satisfiable; verify the
		// model whenever one is claimed.
		cnf := randomCNF(rng, 20, 40, 3)
		s := New(DefaultOptions())
		ParseSlice(cnf, s)
		if s.Solve() == Satisfiable {
			checkModel(t, s, cnf)
		}
		assertInvariants(t, s)
	}
}

func TestRandomIncremental(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := New(DefaultOptions())
	var cnf [][]int
	for i := 0; i < 30; i++ {
		clause := randomCNF(rng, 15, 1, 3)[0]
		cnf = append(cnf, clause)
		s.AddClause(clause...)
		res := s.Solve()
		if res == Satisfiable {
			checkModel(t, s, cnf)
		} else {
			require.Equal(t, Unsatisfiable, res)
			// Once unsatisfiable, adding clauses cannot make it satisfiable.
			s.AddClause(clause...)
			require.Equal(t, Unsatisfiable, s.Solve())
			return
		}
	}
}

func TestAssumptionsSatisfiable(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.AddClause(-1, 3)
	s.Assume(1)
	require.Equal(t, Satisfiable, s.Solve())
	assert.Equal(t, 1, s.Val(1))
	assert.Equal(t, 3, s.Val(3))
}

func TestFailedSubsetMinimalish(t *testing.T) {
	s := New(DefaultOptions())
	s.AddClause(1, 2)
	s.Assume(-1)
	s.Assume(-2)
	s.Assume(3) // unrelated assumption must not be blamed
	require.Equal(t, Unsatisfiable, s.Solve())
	assert.True(t, s.Failed(-1))
	assert.True(t, s.Failed(-2))
	assert.False(t, s.Failed(3))
}

func TestLearnCallback(t *testing.T) {
	s := New(DefaultOptions())
	php(s, 4, 3)
	var learned [][]int
	s.SetLearn(10, func(lits []int) {
		cp := make([]int, len(lits))
		copy(cp, lits)
		learned = append(learned, cp)
	})
	require.Equal(t, Unsatisfiable, s.Solve())
	assert.NotEmpty(t, learned, "expected learned clauses to be exported")
}
