package solver

// The preprocessing driver: bounded probe and elim rounds at the start of a
// Solve call, before local search and CDCL.

// preprocessRound runs one round and reports whether it made progress,
// either by reducing the number of active variables or by relaxing the
// elimination bound.
func (s *Solver) preprocessRound(round int) bool {
	if s.unsat || s.maxVar == 0 {
		return false
	}
	s.stats.Preprocessings++
	if s.preprocessing {
		panic("recursive preprocessing")
	}
	s.preprocessing = true
	beforeVars := s.stats.Active
	oldElimBound := s.lim.elimbound
	s.log.WithFields(map[string]interface{}{
		"round": round, "vars": beforeVars, "clauses": s.stats.Current.Irredundant,
	}).Debug("preprocessing round starting")
	if s.opts.Probe {
		s.probe(false)
	}
	if s.opts.Elim && !s.unsat {
		s.elim(false)
	}
	afterVars := s.stats.Active
	s.preprocessing = false
	s.log.WithFields(map[string]interface{}{
		"round": round, "vars": afterVars, "clauses": s.stats.Current.Irredundant,
	}).Debug("preprocessing round finished")
	s.report('P')
	if s.unsat {
		return false
	}
	if afterVars < beforeVars {
		return true
	}
	return oldElimBound < s.lim.elimbound
}

func (s *Solver) preprocess() int {
	if s.opts.Simplify {
		for i := 0; i < s.lim.preprocessing; i++ {
			if !s.preprocessRound(i) {
				break
			}
		}
	}
	if s.unsat {
		return Unsatisfiable
	}
	return Unknown
}
