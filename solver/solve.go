package solver

// The central CDCL dispatch loop and the incremental solve lifecycle.

// cdclLoop is the main CDCL loop with interleaved inprocessing. At each
// iteration the first matching action wins; conflict handling and
// satisfaction detection come before the inprocessing triggers so that a
// conflict or model discovered by propagation short-circuits the expensive
// passes.
func (s *Solver) cdclLoop() int {
	res := Unknown

	if s.stable {
		s.report('[')
	} else {
		s.report('{')
	}

loop:
	for res == Unknown {
		switch {
		case s.unsat:
			res = Unsatisfiable
		case !s.propagate():
			s.analyze()
		case s.iterating:
			s.iterate()
		case s.satisfied():
			res = Satisfiable
		case s.terminating():
			break loop // limit hit or async abort
		case s.restarting():
			s.restart()
		case s.rephasing():
			s.rephase()
		case s.reducing():
			s.reduce()
		case s.probing():
			s.probe(true)
		case s.subsuming():
			s.subsume()
		case s.eliminating():
			s.elim(true)
		case s.compacting():
			s.compact()
		default:
			res = s.decide()
		}
	}

	if s.stable {
		s.report(']')
	} else {
		s.report('}')
	}

	return res
}

// produceFailedAssumptions derives the failed assumption set at the root,
// by deciding assumptions and resolving every conflict in between, until an
// assumption clash surfaces or the formula turns out unconditionally
// unsatisfiable.
func (s *Solver) produceFailedAssumptions() {
	if s.level() != 0 {
		panic("producing failed assumptions above root")
	}
	if len(s.assumptions) == 0 {
		panic("no assumptions to fail")
	}
	for !s.unsat {
		if s.satisfied() {
			panic("assumptions unexpectedly satisfiable")
		}
		if s.decide() != 0 {
			break
		}
		for !s.unsat && !s.propagate() {
			s.analyze()
		}
	}
	if s.unsat {
		s.log.Debug("formula is actually unsatisfiable unconditionally")
	} else {
		s.log.Debug("assumptions indeed failing")
	}
}

// solve runs the attempt ladder: root propagation, limit initialization,
// clause restore, preprocessing, local search, lucky phases and finally the
// CDCL loop.
func (s *Solver) solve() int {
	if len(s.clause) != 0 {
		panic("learned clause buffer not empty at solve entry")
	}
	s.stats.Solves++
	if s.level() > 0 {
		s.backtrack(0)
	}
	res := Unknown
	if s.unsat {
		s.log.Debug("already inconsistent")
		res = Unsatisfiable
	} else if !s.propagate() {
		s.log.Debug("root level propagation produces conflict")
		s.conflict = nil
		s.learnEmptyClause()
		res = Unsatisfiable
	} else {
		s.initLimits()

		if s.opts.RestoreAll <= 1 && len(s.tainted) == 0 {
			s.report('*')
		} else {
			s.report('+')
			s.restoreClauses()
			s.report('r')
			if !s.unsat && !s.propagate() {
				s.log.Debug("root level propagation after restore produces conflict")
				s.conflict = nil
				s.learnEmptyClause()
				res = Unsatisfiable
			}
		}

		if res == Unknown && !s.terminating() {
			res = s.preprocess()
		}
		if res == Unknown && !s.terminating() {
			res = s.localSearch()
		}
		if res == Unknown && !s.terminating() {
			res = s.luckyPhases()
		}
		if res == Unknown && !s.terminating() {
			res = s.cdclLoop()
		}
	}
	if s.terminateForced.Load() {
		s.terminateForced.Store(false)
		s.log.Debug("reset forced termination")
	}
	switch res {
	case Satisfiable:
		s.report('1')
	case Unsatisfiable:
		s.report('0')
	default:
		s.report('?')
	}
	return res
}
