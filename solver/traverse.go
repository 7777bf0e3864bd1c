package solver

import (
	"fmt"
	"io"
)

// Externalization of the clause database for proof and model consumers.

// A ClauseIterator consumes externalized clauses. Returning false aborts the
// traversal.
type ClauseIterator interface {
	Clause(lits []int) bool
}

// ClauseFunc adapts a function to the ClauseIterator interface.
type ClauseFunc func(lits []int) bool

// Clause calls the function.
func (f ClauseFunc) Clause(lits []int) bool { return f(lits) }

// TraverseClauses visits every irredundant clause in external form. Literals
// false at the root are skipped and clauses with a root-satisfied literal are
// dropped. An unsatisfiable solver yields a single empty clause.
func (s *Solver) TraverseClauses(it ClauseIterator) bool {
	var eclause []int
	if s.unsat {
		return it.Clause(eclause)
	}
	for _, c := range s.clauses {
		if c.garbage || c.redundant {
			continue
		}
		satisfied := false
		eclause = eclause[:0]
		for _, ilit := range c.lits {
			fixed := s.fixedVal(ilit)
			if fixed > 0 {
				satisfied = true
				break
			}
			if fixed < 0 {
				continue
			}
			eclause = append(eclause, s.externalize(ilit))
		}
		if !satisfied && !it.Clause(eclause) {
			return false
		}
	}
	return true
}

// TraverseFixed visits every root-fixed literal in external form.
func (s *Solver) TraverseFixed(it ClauseIterator) bool {
	for v := 1; v <= s.maxVar; v++ {
		fixed := s.fixedVal(v)
		if fixed == 0 {
			continue
		}
		lit := v
		if fixed < 0 {
			lit = -v
		}
		if !it.Clause([]int{s.externalize(lit)}) {
			return false
		}
	}
	return true
}

// Dump writes the formula in DIMACS CNF form: the root-fixed literals as
// units, the non-garbage clauses, and the pending assumptions as units.
func (s *Solver) Dump(w io.Writer) error {
	count := int64(len(s.assumptions))
	for v := 1; v <= s.maxVar; v++ {
		if s.fixedVal(v) != 0 {
			count++
		}
	}
	for _, c := range s.clauses {
		if !c.garbage {
			count++
		}
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", s.maxVar, count); err != nil {
		return err
	}
	for v := 1; v <= s.maxVar; v++ {
		fixed := s.fixedVal(v)
		if fixed == 0 {
			continue
		}
		lit := v
		if fixed < 0 {
			lit = -v
		}
		if _, err := fmt.Fprintf(w, "%d 0\n", lit); err != nil {
			return err
		}
	}
	for _, c := range s.clauses {
		if c.garbage {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", c.String()); err != nil {
			return err
		}
	}
	for _, lit := range s.assumptions {
		if _, err := fmt.Fprintf(w, "%d 0\n", lit); err != nil {
			return err
		}
	}
	return nil
}
