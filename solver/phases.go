package solver

// Phase saving. The saved phase is updated whenever a variable is unassigned;
// target and best phases track the largest trails reached in stable mode, and
// rephasing resets the saved phases to one of several heuristics once the
// rephase limit is hit.

// updateTargetAndBest copies the current assignment into the target phases
// when the trail is the largest seen since the last rephase, and into the
// best phases when it is the largest seen overall.
func (s *Solver) updateTargetAndBest() {
	if s.numAssigned > s.targetAssigned {
		s.targetAssigned = s.numAssigned
		for _, lit := range s.trail {
			v := abs(lit)
			s.phases.target[v] = litSign(lit)
		}
	}
	if s.numAssigned > s.bestAssigned {
		s.bestAssigned = s.numAssigned
		for _, lit := range s.trail {
			v := abs(lit)
			s.phases.best[v] = litSign(lit)
		}
	}
}

func (s *Solver) rephasing() bool {
	return s.opts.Rephase && s.stats.Conflicts >= s.lim.rephase
}

// rephase resets the saved phases following a fixed cycle of heuristics:
// invert, best, original, best, walk minimum, best, random, previous. The
// previous saved phases are kept in phases.prev.
func (s *Solver) rephase() {
	s.stats.Rephased++
	mode := 0
	if s.stable {
		mode = 1
	}
	s.lim.rephased[mode] = s.stats.Conflicts

	oldSaved := append([]int8(nil), s.phases.saved...)

	switch s.stats.Rephased % 8 {
	case 1:
		s.rephaseInvert()
	case 2, 4, 6:
		s.rephaseBest()
	case 3:
		s.rephaseOriginal()
	case 5:
		s.rephaseWalkMin()
	case 7:
		s.rephaseRandom()
	case 0:
		s.rephasePrevious()
	}

	// Keep the pre-rephase phases around for the "previous" heuristic, and
	// restart the target phases from scratch.
	copy(s.phases.prev, oldSaved)
	s.targetAssigned = 0
	for v := 1; v <= s.maxVar; v++ {
		s.phases.target[v] = 0
	}

	s.lim.rephase = s.stats.Conflicts + s.opts.RephaseInt*(s.stats.Rephased+1)
	s.log.WithField("rephased", s.stats.Rephased).Debug("rephased saved phases")
}

func (s *Solver) rephaseOriginal() {
	val := s.initialPhase(0)
	for v := 1; v <= s.maxVar; v++ {
		s.phases.saved[v] = val
	}
}

func (s *Solver) rephaseInvert() {
	for v := 1; v <= s.maxVar; v++ {
		if s.phases.saved[v] != 0 {
			s.phases.saved[v] = -s.phases.saved[v]
		}
	}
}

func (s *Solver) rephaseBest() {
	for v := 1; v <= s.maxVar; v++ {
		if s.phases.best[v] != 0 {
			s.phases.saved[v] = s.phases.best[v]
		}
	}
}

func (s *Solver) rephaseRandom() {
	for v := 1; v <= s.maxVar; v++ {
		if s.nextRand()&1 == 0 {
			s.phases.saved[v] = 1
		} else {
			s.phases.saved[v] = -1
		}
	}
}

// rephaseWalkMin adopts the best assignment the local search has seen.
func (s *Solver) rephaseWalkMin() {
	for v := 1; v <= s.maxVar; v++ {
		if s.phases.min[v] != 0 {
			s.phases.saved[v] = s.phases.min[v]
		}
	}
}

// rephasePrevious restores the phases from before the last rephase.
func (s *Solver) rephasePrevious() {
	for v := 1; v <= s.maxVar; v++ {
		if s.phases.prev[v] != 0 {
			s.phases.saved[v] = s.phases.prev[v]
		}
	}
}

// nextRand is a xorshift64 generator shared by rephasing and local search.
func (s *Solver) nextRand() uint64 {
	x := s.walkRand
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.walkRand = x
	return x
}
