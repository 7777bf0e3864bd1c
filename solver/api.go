package solver

// The incremental API, IPASIR-shaped: Add/Assume/Solve/Val/Failed plus the
// learn callback. External literals are mapped to internal ones here; the
// mapping only changes under compaction, which external indices survive.

const eflagTainted byte = 2

// internalVar maps an external variable to its internal slot, allocating one
// if needed.
func (s *Solver) internalVar(elit int) int {
	ev := abs(elit)
	if ev == 0 {
		panic("zero literal has no variable")
	}
	for len(s.etab) <= ev {
		s.etab = append(s.etab, 0)
		s.eflags = append(s.eflags, 0)
	}
	if s.eflags[ev]&eflagEliminated != 0 && s.eflags[ev]&eflagTainted == 0 {
		// Re-using an eliminated variable: its removed clauses have to be
		// restored before the next solve.
		s.eflags[ev] |= eflagTainted
		s.tainted = append(s.tainted, ev)
	}
	iv := s.etab[ev]
	if iv == 0 {
		iv = s.maxVar + 1
		s.initVars(iv)
		s.etab[ev] = iv
		for len(s.itab) <= iv {
			s.itab = append(s.itab, 0)
		}
		s.itab[iv] = ev
	} else {
		s.reactivate(iv)
	}
	return iv
}

func (s *Solver) ilit(elit int) int {
	iv := s.internalVar(elit)
	if elit < 0 {
		return -iv
	}
	return iv
}

func (s *Solver) externalize(ilit int) int {
	ev := s.itab[abs(ilit)]
	if ilit < 0 {
		return -ev
	}
	return ev
}

// Add appends a literal to the current clause buffer; zero finalizes the
// buffer as a new original clause and clears it.
func (s *Solver) Add(elit int) {
	if elit != 0 {
		s.original = append(s.original, elit)
		return
	}
	lits := make([]int, len(s.original))
	copy(lits, s.original)
	s.original = s.original[:0]
	if s.proof != nil {
		s.proof.AddOriginalClause(lits)
	}
	s.stats.Originals++
	s.addOriginalClause(lits)
}

// AddClause adds a whole clause at once.
func (s *Solver) AddClause(elits ...int) {
	for _, elit := range elits {
		if elit == 0 {
			panic("zero literal inside clause")
		}
		s.Add(elit)
	}
	s.Add(0)
}

// addOriginalClause maps, simplifies and wires a finalized original clause.
// Duplicate literals are merged, root-false literals dropped; tautological
// and root-satisfied clauses are skipped.
func (s *Solver) addOriginalClause(elits []int) {
	if s.level() > 0 {
		s.backtrack(0)
	}
	var lits []int
	skip := false
	for _, elit := range elits {
		lit := s.ilit(elit)
		if s.fixedVal(lit) > 0 {
			skip = true
			break
		}
		if s.fixedVal(lit) < 0 {
			continue
		}
		switch s.marks[abs(lit)] {
		case 0:
			s.marks[abs(lit)] = litSign(lit)
			lits = append(lits, lit)
		case litSign(lit):
		default:
			skip = true // tautology
		}
		if skip {
			break
		}
	}
	for _, lit := range lits {
		s.marks[abs(lit)] = 0
	}
	if skip {
		return
	}
	for _, lit := range lits {
		s.activate(abs(lit))
	}
	switch len(lits) {
	case 0:
		s.learnEmptyClause()
	case 1:
		unit := lits[0]
		switch {
		case s.val(unit) > 0:
		case s.val(unit) < 0:
			s.learnEmptyClause()
		default:
			s.searchAssign(unit, nil)
		}
	default:
		s.addClause(lits, false)
	}
}

// Assume forces the external literal true for the next Solve call only.
func (s *Solver) Assume(elit int) {
	lit := s.ilit(elit)
	s.activate(abs(lit))
	s.assumptions = append(s.assumptions, lit)
}

// Solve decides the formula under the current assumptions. It returns
// Satisfiable, Unsatisfiable or Unknown, and clears the assumptions for the
// next call.
func (s *Solver) Solve() int {
	if len(s.original) != 0 {
		panic("clause buffer not finalized before solve")
	}
	s.failed = map[int]bool{}
	s.emodel = nil
	res := s.solve()
	if res == Satisfiable {
		s.extend()
	}
	s.status = res
	s.assumptions = s.assumptions[:0]
	return res
}

// Val returns the model value of the external literal: the literal itself if
// true, its negation if false, 0 if the variable has no value. Only valid
// after a Satisfiable result.
func (s *Solver) Val(elit int) int {
	if s.status != Satisfiable {
		panic("model value requested without a model")
	}
	ev := abs(elit)
	if ev >= len(s.emodel) {
		return 0
	}
	value := s.emodel[ev]
	if value == 0 {
		return 0
	}
	if value*litSign(elit) > 0 {
		return elit
	}
	return -elit
}

// Failed reports whether the assumption literal is part of the failed
// assumption set. Only meaningful after an Unsatisfiable result of a call
// with assumptions.
func (s *Solver) Failed(elit int) bool {
	return s.failed[elit]
}

// SetLearn registers a callback receiving learned clauses of size up to
// maxlen, in external literals. A nil callback removes it.
func (s *Solver) SetLearn(maxlen int, cb func(lits []int)) {
	s.learnMax = maxlen
	s.learnCb = cb
}

// Inconsistent reports whether the formula is already known to be
// unsatisfiable without assumptions.
func (s *Solver) Inconsistent() bool { return s.unsat }

// Vars returns the highest external variable index seen so far.
func (s *Solver) Vars() int { return len(s.etab) - 1 }
