package solver

// Cheap model attempts that run before CDCL: forcing the saved phases after a
// successful local search, and the four constant-phase "lucky" sweeps. None
// of these learn clauses.

// trySavedPhases attempts to turn the saved phases into a real decision
// trail. A conflict is swallowed: it only means the saved phases do not
// satisfy the redundant clauses, not that the formula is unsatisfiable.
func (s *Solver) trySavedPhases() int {
	if s.level() != 0 {
		panic("saved phase attempt above root")
	}
	if s.forceSavedPhase {
		panic("recursive saved phase attempt")
	}
	if s.propagated != len(s.trail) {
		panic("unpropagated trail in saved phase attempt")
	}
	s.log.Debug("trying to satisfy formula by saved phases")
	s.forceSavedPhase = true
	res := Unknown
	for res == Unknown {
		if s.satisfied() {
			res = Satisfiable
		} else if r := s.decide(); r != 0 {
			res = r // inconsistent assumptions
		} else if !s.propagate() {
			s.backtrack(0)
			s.conflict = nil // ignore: phases not good enough
			break
		}
	}
	s.forceSavedPhase = false
	return res
}

func (s *Solver) luckying() bool {
	return !s.unsat && s.opts.Lucky && s.maxVar > 0
}

// luckyPhases sweeps the four constant phase assignments. Each attempt
// decides every variable with the forced polarity, in ascending index order
// for two attempts and descending for the other two, and gives up on the
// first conflict.
func (s *Solver) luckyPhases() int {
	if !s.luckying() {
		return Unknown
	}
	if s.searchingLuckyPhases {
		panic("recursive lucky phase search")
	}
	s.searchingLuckyPhases = true
	res := Unknown
	attempts := []struct {
		phase   int8
		reverse bool
	}{
		{1, false}, {-1, false}, {1, true}, {-1, true},
	}
	for _, a := range attempts {
		res = s.luckyConstantPhase(a.phase, a.reverse)
		if res != Unknown {
			break
		}
	}
	s.searchingLuckyPhases = false
	if res == Satisfiable {
		s.stats.LuckySucceeded++
	}
	return res
}

func (s *Solver) luckyConstantPhase(phase int8, reverse bool) int {
	s.stats.LuckyTried++
	if s.level() > 0 {
		s.backtrack(0)
	}
	s.luckyPhase = phase
	s.luckyReverse = reverse
	res := Unknown
	for res == Unknown {
		if s.satisfied() {
			res = Satisfiable
		} else if r := s.decide(); r != 0 {
			res = r
		} else if !s.propagate() {
			s.conflict = nil
			s.backtrack(0)
			break
		}
	}
	s.luckyPhase = 0
	s.luckyReverse = false
	return res
}
