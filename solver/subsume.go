package solver

import "sort"

// Forward subsumption and self-subsuming strengthening. Candidate clauses
// are processed in increasing size; each is checked against the already
// indexed smaller clauses through its least occurring literal, with all of
// its literals marked. Binary clauses are additionally checked straight from
// the watch lists, represented by the permanent binarySubsuming sentinel
// instead of a materialized clause.

func (s *Solver) subsuming() bool {
	if !s.opts.Subsume || s.stats.Conflicts < s.lim.subsume {
		return false
	}
	return s.stats.MarkedSubsume > s.last.subsume.marked
}

// resetSubsumeBits clears the per-variable subsume markers once a round has
// consumed them.
func (s *Solver) resetSubsumeBits() {
	for v := 1; v <= s.maxVar; v++ {
		s.ftab[v].subsume = false
	}
}

func (s *Solver) markLits(c *Clause) {
	for _, lit := range c.lits {
		s.marks[abs(lit)] = litSign(lit)
	}
}

func (s *Solver) unmarkLits(c *Clause) {
	for _, lit := range c.lits {
		s.marks[abs(lit)] = 0
	}
}

// subsumeCheck tests the indexed clause d against the marked candidate c.
// It returns (subsumed, strengthenLit): strengthenLit is non-zero when d
// self-subsumes c, i.e. matches except for exactly one negated literal.
func (s *Solver) subsumeCheck(d *Clause) (bool, int) {
	negated := 0
	for _, lit := range d.lits {
		m := s.marks[abs(lit)]
		if m == 0 {
			return false, 0
		}
		if m != litSign(lit) {
			if negated != 0 {
				return false, 0
			}
			negated = -lit
		}
	}
	if negated == 0 {
		return true, 0
	}
	return false, negated
}

func (s *Solver) subsume() {
	s.stats.SubsumeRounds++
	if s.level() > 0 {
		s.backtrack(0)
	}
	s.protectReasons()

	var candidates []*Clause
	for _, c := range s.clauses {
		if c.garbage || c.reason || len(c.lits) > s.opts.SubsumeClsLim {
			continue
		}
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i].lits) < len(candidates[j].lits)
	})

	occur := make(map[int][]*Clause)
	for _, c := range candidates {
		if c.garbage {
			continue
		}
		s.trySubsume(c, occur)
		if s.unsat {
			break
		}
		if c.garbage {
			continue
		}
		// Index the survivor under its least occurring literal.
		best := c.lits[0]
		for _, lit := range c.lits[1:] {
			if len(occur[lit]) < len(occur[best]) {
				best = lit
			}
		}
		if len(occur[best]) < s.opts.SubsumeOccLim {
			occur[best] = append(occur[best], c)
		}
	}

	s.collectGarbage()
	s.resetSubsumeBits()
	s.last.subsume.marked = s.stats.MarkedSubsume
	s.lim.subsume = s.stats.Conflicts + s.scale(s.opts.SubsumeInt)
}

// trySubsume looks for an indexed or binary clause subsuming or
// strengthening c.
func (s *Solver) trySubsume(c *Clause, occur map[int][]*Clause) {
	s.markLits(c)
	defer s.unmarkLits(c)
	for _, lit := range c.lits {
		// Binary clauses come straight from the watch lists; the sentinel
		// stands in for them during the check.
		for _, w := range s.wtab[watchIdx(lit)] {
			d := w.clause
			if !w.binary || d == c || d.garbage {
				continue
			}
			s.binarySubsuming.lits[0] = lit
			s.binarySubsuming.lits[1] = w.blit
			if sub, str := s.subsumeCheck(&s.binarySubsuming); sub {
				s.subsumeClause(c, d)
				return
			} else if str != 0 {
				if s.strengthen(c, str) {
					return
				}
				s.markLits(c) // re-mark after shrinking
			}
		}
		for _, candidate := range []int{lit, -lit} {
			for _, d := range occur[candidate] {
				if d == c || d.garbage || len(d.lits) > len(c.lits) {
					continue
				}
				if sub, str := s.subsumeCheck(d); sub {
					s.subsumeClause(c, d)
					return
				} else if str != 0 {
					if s.strengthen(c, str) {
						return
					}
					s.markLits(c)
				}
			}
		}
		if c.garbage {
			return
		}
	}
}

// subsumeClause deletes c, subsumed by d. A redundant subsuming clause of an
// irredundant one is promoted to irredundant.
func (s *Solver) subsumeClause(c, d *Clause) {
	if !c.redundant && d.redundant && d != &s.binarySubsuming {
		d.redundant = false
		s.stats.Current.Redundant--
		s.stats.Current.Irredundant++
	}
	s.markGarbage(c)
	s.stats.Subsumed++
}

// strengthen removes the literal from the clause. It returns true when the
// clause left the general clause pool (became a unit or empty).
func (s *Solver) strengthen(c *Clause, lit int) bool {
	s.stats.Strengthened++
	s.unmarkLits(c)
	s.unwatchClause(c)
	j := 0
	for _, l := range c.lits {
		if l != lit {
			c.lits[j] = l
			j++
		}
	}
	c.lits = c.lits[:j]
	switch len(c.lits) {
	case 0:
		s.deleteUnwatched(c)
		s.learnEmptyClause()
		return true
	case 1:
		unit := c.lits[0]
		s.deleteUnwatched(c)
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
		return true
	default:
		s.watchClause(c)
		return false
	}
}

// deleteUnwatched marks a clause garbage whose watches were already removed.
func (s *Solver) deleteUnwatched(c *Clause) {
	if c.garbage {
		return
	}
	c.garbage = true
	if c.redundant {
		s.stats.Current.Redundant--
	} else {
		s.stats.Current.Irredundant--
	}
	s.stats.Deleted++
}
