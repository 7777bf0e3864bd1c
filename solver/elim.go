package solver

// Bounded variable elimination with pure literal removal. Eliminated clauses
// are pushed onto the extension stack (in external literals, so they survive
// compaction) for model reconstruction, and kept in the restore table so
// that re-using an eliminated variable later can bring them back.

func (s *Solver) eliminating() bool {
	if !s.opts.Elim || s.stats.Conflicts < s.lim.elim {
		return false
	}
	return s.stats.MarkedElim > s.last.elim.marked
}

func (s *Solver) resetElimBits() {
	for v := 1; v <= s.maxVar; v++ {
		s.ftab[v].elim = false
	}
}

func (s *Solver) elim(inprocessing bool) {
	s.stats.ElimRounds++
	if s.level() > 0 {
		s.backtrack(0)
	}
	if !s.propagate() {
		s.analyze()
	}
	if s.unsat {
		return
	}

	assumed := map[int]bool{}
	for _, a := range s.assumptions {
		assumed[abs(a)] = true
	}

	// Occurrence lists over all live clauses. Resolution only uses the
	// irredundant ones, but redundant occurrences must go when their
	// variable does, or they could still propagate it.
	occur := make([][]*Clause, 2*(s.maxVar+1))
	for _, c := range s.clauses {
		if c.garbage {
			continue
		}
		for _, lit := range c.lits {
			occur[watchIdx(lit)] = append(occur[watchIdx(lit)], c)
		}
	}

	var eliminated []int
	for v := 1; v <= s.maxVar && !s.unsat; v++ {
		f := &s.ftab[v]
		if !f.active() || s.frozen(v) || assumed[v] || s.val(v) != 0 {
			continue
		}
		// Inprocessing only reconsiders variables touched since the last
		// round; preprocessing sweeps all of them.
		if inprocessing && !f.elim {
			continue
		}
		pos := liveIrredundant(occur[watchIdx(v)])
		neg := liveIrredundant(occur[watchIdx(-v)])
		switch {
		case len(pos) == 0 && len(neg) == 0:
			// No irredundant occurrence left; drop with a free witness.
			s.purgeRedundantOccs(occur, v)
			s.eliminateVar(v, v, pos, neg, statusPure)
			eliminated = append(eliminated, v)
		case len(neg) == 0:
			s.purgeRedundantOccs(occur, v)
			s.eliminateVar(v, v, pos, neg, statusPure)
			eliminated = append(eliminated, v)
		case len(pos) == 0:
			s.purgeRedundantOccs(occur, v)
			s.eliminateVar(v, -v, neg, pos, statusPure)
			eliminated = append(eliminated, v)
		default:
			if s.tryResolveOut(v, pos, neg, occur) {
				eliminated = append(eliminated, v)
			}
		}
	}

	if len(eliminated) == 0 {
		// No candidate fit the bound; relaxing it counts as progress.
		if s.lim.elimbound < s.opts.ElimBoundMax {
			if s.lim.elimbound <= 0 {
				s.lim.elimbound = 1
			} else {
				s.lim.elimbound *= 2
			}
			if s.lim.elimbound > s.opts.ElimBoundMax {
				s.lim.elimbound = s.opts.ElimBoundMax
			}
		}
	}

	s.collectGarbage()
	s.resetElimBits()
	s.last.elim.marked = s.stats.MarkedElim
	if inprocessing {
		s.lim.elim = s.stats.Conflicts + s.scale(s.opts.ElimInt)
	}
}

func liveIrredundant(cs []*Clause) []*Clause {
	res := cs[:0:0]
	for _, c := range cs {
		if !c.garbage && !c.redundant {
			res = append(res, c)
		}
	}
	return res
}

// purgeRedundantOccs deletes the learned clauses still mentioning the
// variable about to be eliminated, so nothing can propagate it afterwards.
func (s *Solver) purgeRedundantOccs(occur [][]*Clause, v int) {
	for _, lit := range []int{v, -v} {
		for _, c := range occur[watchIdx(lit)] {
			if c.redundant && !c.garbage {
				s.markGarbage(c)
			}
		}
	}
}

// tryResolveOut eliminates v by clause distribution when the number of
// non-tautological resolvents stays within the occurrence count plus the
// current elimination bound.
func (s *Solver) tryResolveOut(v int, pos, neg []*Clause, occur [][]*Clause) bool {
	if len(pos)+len(neg) > s.opts.ElimOccLim {
		return false
	}
	for _, c := range append(append([]*Clause{}, pos...), neg...) {
		if len(c.lits) > s.opts.ElimClsLim {
			return false
		}
	}
	bound := int64(len(pos)+len(neg)) + s.lim.elimbound
	var resolvents [][]int
	for _, c := range pos {
		for _, d := range neg {
			res, tautology := s.resolve(c, d, v)
			if tautology {
				continue
			}
			resolvents = append(resolvents, res)
			if int64(len(resolvents)) > bound {
				return false
			}
		}
	}

	s.purgeRedundantOccs(occur, v)
	s.eliminateVar(v, v, pos, neg, statusEliminated)

	for _, lits := range resolvents {
		s.addResolvent(lits, occur)
		if s.unsat {
			break
		}
	}
	return true
}

// resolve computes the resolvent of c and d on v. Duplicates are merged and
// root-false literals dropped; a tautological or root-satisfied resolvent is
// discarded.
func (s *Solver) resolve(c, d *Clause, v int) ([]int, bool) {
	var lits []int
	for _, src := range [][]int{c.lits, d.lits} {
		for _, lit := range src {
			if abs(lit) == v {
				continue
			}
			if s.fixedVal(lit) > 0 {
				for _, l := range lits {
					s.marks[abs(l)] = 0
				}
				return nil, true // satisfied at root
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
				for _, l := range lits {
					s.marks[abs(l)] = 0
				}
				return nil, true // tautology
			}
		}
	}
	for _, l := range lits {
		s.marks[abs(l)] = 0
	}
	return lits, false
}

func (s *Solver) addResolvent(lits []int, occur [][]*Clause) {
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
			if !s.propagate() {
				s.analyze()
			}
		}
	default:
		c := s.addClause(lits, false)
		for _, lit := range lits {
			occur[watchIdx(lit)] = append(occur[watchIdx(lit)], c)
		}
	}
}

// eliminateVar removes the variable from the live formula: its clauses move
// to the extension stack (witness side) and the restore table (both sides).
func (s *Solver) eliminateVar(v, witness int, witnessSide, otherSide []*Clause, status varStatus) {
	ev := s.itab[v]
	ewitness := s.externalize(witness)
	var saved [][]int
	for _, c := range witnessSide {
		elits := s.externalizeClause(c)
		s.extension = append(s.extension, extensionEntry{witness: ewitness, clause: elits})
		saved = append(saved, elits)
		s.markGarbage(c)
	}
	for _, c := range otherSide {
		saved = append(saved, s.externalizeClause(c))
		s.markGarbage(c)
	}
	// Default marker: processed first during extension, sets the witness
	// variable to the non-witness polarity.
	s.extension = append(s.extension, extensionEntry{witness: -ewitness})
	s.restoreTab[ev] = append(s.restoreTab[ev], saved...)
	s.eflags[ev] |= eflagEliminated
	s.deactivate(v, status)
	if status == statusEliminated {
		s.stats.ElimedVars++
	} else {
		s.stats.PureLits++
	}
	s.log.WithField("var", ev).Debug("eliminated variable")
}

func (s *Solver) externalizeClause(c *Clause) []int {
	elits := make([]int, 0, len(c.lits))
	for _, lit := range c.lits {
		elits = append(elits, s.externalize(lit))
	}
	return elits
}

// restoreClauses brings back the eliminated clauses of tainted variables (or
// of every eliminated variable when RestoreAll is 2). Restored clauses may
// reference further eliminated variables, which taints those too.
func (s *Solver) restoreClauses() {
	queue := s.tainted
	s.tainted = nil
	if s.opts.RestoreAll >= 2 {
		queue = queue[:0]
		for ev := range s.restoreTab {
			queue = append(queue, ev)
		}
	}
	for len(queue) > 0 {
		ev := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		saved, ok := s.restoreTab[ev]
		if !ok {
			s.eflags[ev] &^= eflagTainted
			continue
		}
		delete(s.restoreTab, ev)
		s.eflags[ev] &^= eflagEliminated | eflagTainted
		s.dropExtension(ev)
		for _, elits := range saved {
			for _, el := range elits {
				if s.eflags[abs(el)]&eflagEliminated != 0 {
					queue = append(queue, abs(el))
				}
			}
			s.addOriginalClause(elits)
			s.stats.Restored++
		}
	}
	// Restoring may have re-marked variables through the add path; the
	// cascade above already handled them.
	for _, ev := range s.tainted {
		s.eflags[ev] &^= eflagTainted
	}
	s.tainted = nil
}

// dropExtension removes all extension entries whose witness is the given
// external variable.
func (s *Solver) dropExtension(ev int) {
	j := 0
	for _, e := range s.extension {
		if abs(e.witness) != ev {
			s.extension[j] = e
			j++
		}
	}
	s.extension = s.extension[:j]
}

// extend reconstructs the full external model after a satisfying assignment
// was found, replaying the extension stack for eliminated variables.
func (s *Solver) extend() {
	s.emodel = make([]int8, len(s.etab))
	for ev := 1; ev < len(s.etab); ev++ {
		iv := s.etab[ev]
		if iv != 0 && s.val(iv) != 0 {
			s.emodel[ev] = s.val(iv)
		} else if iv != 0 {
			s.emodel[ev] = s.initialPhase(s.phases.saved[iv])
		} else {
			s.emodel[ev] = s.initialPhase(0)
		}
	}
	for i := len(s.extension) - 1; i >= 0; i-- {
		e := s.extension[i]
		if e.clause == nil {
			s.emodel[abs(e.witness)] = litSign(e.witness)
			continue
		}
		satisfied := false
		for _, el := range e.clause {
			if litSign(el)*s.emodel[abs(el)] > 0 {
				satisfied = true
				break
			}
		}
		if !satisfied {
			s.emodel[abs(e.witness)] = litSign(e.witness)
		}
	}
}

const eflagEliminated byte = 1
