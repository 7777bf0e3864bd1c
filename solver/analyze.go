package solver

import "sort"

// Conflict analysis: first-UIP clause learning with clause minimization,
// activity bumping for both decision orderings and the moving averages
// feeding the restart schedule.

const (
	scoreRescaleLimit = 1e150
	maxClauseUsed     = 2
)

// bumpScore rewards a variable involved in a conflict by increasing its EVSIDS
// score, in both modes. Moving it to the front of the VMTF queue is done
// separately by analyze through bumpQueueSeen, also in both modes.
func (s *Solver) bumpScore(v int) {
	s.stab[v] += s.scinc
	if s.stab[v] > scoreRescaleLimit {
		for i := range s.stab {
			s.stab[i] /= scoreRescaleLimit
		}
		s.scinc /= scoreRescaleLimit
	}
	if s.heap.contains(v) {
		s.heap.update(v)
	}
}

// markSeen marks the variable during analysis and flags it for the
// subsumption and elimination schedulers.
func (s *Solver) markSeen(v int) {
	f := &s.ftab[v]
	f.seen = true
	s.seen = append(s.seen, v)
	if !f.subsume {
		f.subsume = true
		s.stats.MarkedSubsume++
	}
	if !f.elim {
		f.elim = true
		s.stats.MarkedElim++
	}
}

func (s *Solver) clearSeen() {
	for _, v := range s.seen {
		s.ftab[v].seen = false
	}
	s.seen = s.seen[:0]
}

// analyze derives a first-UIP clause from the current conflict, learns it and
// backtracks to its assertion level.
func (s *Solver) analyze() {
	c := s.conflict
	s.conflict = nil
	s.stats.Conflicts++

	if s.level() == 0 {
		s.learnEmptyClause()
		return
	}

	if s.stable {
		s.reluctant.tick()
	}

	s.clause = append(s.clause[:0], 0) // slot 0 is for the asserting literal
	open := 0
	idx := len(s.trail) - 1
	reason := c
	var uip int
	for {
		reason.used = maxClauseUsed
		for _, lit := range reason.lits {
			v := abs(lit)
			if s.ftab[v].seen || s.vtab[v].level == 0 {
				continue
			}
			s.markSeen(v)
			s.bumpScore(v)
			if s.vtab[v].level == s.level() {
				open++
			} else {
				s.clause = append(s.clause, lit)
			}
		}
		for !s.ftab[abs(s.trail[idx])].seen {
			idx--
		}
		uip = s.trail[idx]
		idx--
		open--
		if open == 0 {
			break
		}
		reason = s.vtab[abs(uip)].reason
	}
	s.clause[0] = -uip

	s.minimizeClause()
	glue := s.computeGlue()
	s.updateConflictAverages(glue, len(s.trail))
	s.bumpQueueSeen()

	jump := 0
	for i := 1; i < len(s.clause); i++ {
		if lvl := s.vtab[abs(s.clause[i])].level; lvl > jump {
			jump = lvl
			s.clause[1], s.clause[i] = s.clause[i], s.clause[1]
		}
	}

	s.scinc *= s.opts.ScoreDecay
	s.exportLearned(s.clause)

	if len(s.clause) == 1 {
		unit := s.clause[0]
		s.backtrack(0)
		s.stats.Learned++
		s.stats.LearnedUnits++
		s.searchAssign(unit, nil)
		s.iterating = true
	} else {
		s.backtrack(jump)
		lits := make([]int, len(s.clause))
		copy(lits, s.clause)
		learned := s.addClause(lits, true)
		learned.glue = glue
		learned.used = maxClauseUsed
		s.stats.Learned++
		s.searchAssign(lits[0], learned)
	}
	s.clearSeen()
	s.clause = s.clause[:0]
}

// minimizeClause removes literals whose reason is covered by the rest of the
// clause, keeping the asserting literal in slot 0.
func (s *Solver) minimizeClause() {
	sz := 1
	for i := 1; i < len(s.clause); i++ {
		v := abs(s.clause[i])
		reason := s.vtab[v].reason
		if reason == nil {
			s.clause[sz] = s.clause[i]
			sz++
			continue
		}
		for _, lit := range reason.lits {
			v2 := abs(lit)
			if !s.ftab[v2].seen && s.vtab[v2].level > 0 {
				s.clause[sz] = s.clause[i]
				sz++
				break
			}
		}
	}
	s.clause = s.clause[:sz]
}

// computeGlue counts the distinct decision levels in the learned clause.
// The per-variable mark table doubles as the level mark table here: levels
// never exceed the number of variables.
func (s *Solver) computeGlue() int {
	glue := 0
	for _, lit := range s.clause {
		lvl := s.vtab[abs(lit)].level
		if s.marks[lvl] == 0 {
			s.marks[lvl] = 1
			glue++
		}
	}
	for _, lit := range s.clause {
		s.marks[s.vtab[abs(lit)].level] = 0
	}
	return glue
}

// bumpQueueSeen moves the analyzed variables to the front of the VMTF queue
// in trail order, so the most recently assigned end up most recent.
func (s *Solver) bumpQueueSeen() {
	sort.Slice(s.seen, func(i, j int) bool {
		return s.vtab[s.seen[i]].trail < s.vtab[s.seen[j]].trail
	})
	for _, v := range s.seen {
		s.bumpQueue(v)
	}
}

// exportLearned reports a learned clause to the learn callback, in external
// literals, when it fits the registered size bound.
func (s *Solver) exportLearned(lits []int) {
	if s.learnCb == nil || len(lits) > s.learnMax {
		return
	}
	elits := make([]int, 0, len(lits))
	for _, lit := range lits {
		elits = append(elits, s.externalize(lit))
	}
	s.learnCb(elits)
}

// iterate reports a learned unit clause.
func (s *Solver) iterate() {
	s.iterating = false
	s.stats.Iterations++
	s.log.WithField("fixed", s.stats.Fixed).Debug("iterated learned unit")
}
