package solver

import "sort"

// Reduction of the learned clause database. Clauses with low glue or recent
// conflict participation are kept, the worse ReduceTarget percent of the
// remaining candidates is deleted. Every flush interval the whole redundant part (except reasons)
// is dropped instead.

func (s *Solver) reducing() bool {
	return s.opts.Reduce && s.stats.Conflicts >= s.lim.reduce
}

// protectReasons marks the reason clauses of all current assignments so they
// survive reduction. Assignments keep their reason flag set while on the
// trail, so this only guards against staleness after inprocessing rebuilt
// the database.
func (s *Solver) protectReasons() {
	for _, lit := range s.trail {
		if r := s.vtab[abs(lit)].reason; r != nil {
			r.reason = true
		}
	}
}

func (s *Solver) reduce() {
	s.stats.Reductions++
	s.protectReasons()

	if s.stats.Reductions >= s.lim.flush {
		s.flush()
	} else {
		s.reduceLearned()
	}

	s.collectGarbage()
	s.log.WithFields(map[string]interface{}{
		"reduction": s.stats.Reductions,
		"since":     s.stats.Conflicts - s.last.reduce.conflicts,
	}).Debug("reduced clause database")
	s.last.reduce.conflicts = s.stats.Conflicts
	s.lim.reduce = s.stats.Conflicts + s.opts.ReduceInt*(s.stats.Reductions+1)
}

// reduceLearned deletes the less useful ReduceTarget percent of the reduction
// candidates.
// Clauses used since the last reduction get their use counter decreased
// instead of being deleted right away.
func (s *Solver) reduceLearned() {
	var candidates []*Clause
	for _, c := range s.clauses {
		if !c.redundant || c.garbage || c.reason {
			continue
		}
		if c.glue <= s.opts.ReduceKeep {
			continue
		}
		if c.used > 0 {
			c.used--
			continue
		}
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].glue != candidates[j].glue {
			return candidates[i].glue > candidates[j].glue
		}
		return len(candidates[i].lits) > len(candidates[j].lits)
	})
	target := len(candidates) * s.opts.ReduceTarget / 100
	for i := 0; i < target; i++ {
		s.markGarbage(candidates[i])
	}
}

// flush deletes all learned clauses not currently used as reasons.
func (s *Solver) flush() {
	for _, c := range s.clauses {
		if c.redundant && !c.garbage && !c.reason {
			s.markGarbage(c)
			s.stats.Flushed++
		}
	}
	s.lim.flush += s.inc.flush
	s.inc.flush *= s.opts.FlushFactor
}
