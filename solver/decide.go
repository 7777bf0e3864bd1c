package solver

// Decisions. Assumptions are decided first, one per level; afterwards the
// decision variable comes from the EVSIDS heap in stable mode or the VMTF
// queue in non-stable mode. Lucky phase attempts override both with a plain
// index order.

// decide opens the next decision level. It returns Unsatisfiable when the
// next pending assumption is already falsified, which is the only way the
// search reports inconsistent assumptions.
func (s *Solver) decide() int {
	for s.level() < len(s.assumptions) {
		a := s.assumptions[s.level()]
		if s.val(a) > 0 {
			// Assumption already satisfied; still occupies its own level.
			s.newLevel(0)
			continue
		}
		if s.val(a) < 0 {
			s.log.WithField("assumption", s.externalize(a)).Debug("assumption clash")
			s.analyzeFailed(a)
			return Unsatisfiable
		}
		s.stats.Decisions++
		s.newLevel(a)
		s.searchAssign(a, nil)
		return 0
	}
	v := s.nextDecisionVar()
	if v == 0 {
		return 0
	}
	lit := int(s.decidePhase(v)) * v
	s.stats.Decisions++
	s.newLevel(lit)
	s.searchAssign(lit, nil)
	return 0
}

func (s *Solver) nextDecisionVar() int {
	if s.luckyPhase != 0 {
		if s.luckyReverse {
			for v := s.maxVar; v >= 1; v-- {
				if s.ftab[v].active() && s.val(v) == 0 {
					return v
				}
			}
		} else {
			for v := 1; v <= s.maxVar; v++ {
				if s.ftab[v].active() && s.val(v) == 0 {
					return v
				}
			}
		}
		return 0
	}
	if s.stable {
		for !s.heap.empty() {
			v := s.heap.popMax()
			if s.ftab[v].active() && s.val(v) == 0 {
				return v
			}
		}
		return 0
	}
	return s.nextQueueDecision()
}

// decidePhase supplies the decision polarity for the variable.
func (s *Solver) decidePhase(v int) int8 {
	switch {
	case s.forceSavedPhase:
		return s.initialPhase(s.phases.saved[v])
	case s.luckyPhase != 0:
		return s.luckyPhase
	case s.stable && s.phases.target[v] != 0:
		return s.phases.target[v]
	case s.phases.saved[v] != 0:
		return s.phases.saved[v]
	}
	return s.initialPhase(0)
}

func (s *Solver) initialPhase(saved int8) int8 {
	if saved != 0 {
		return saved
	}
	if s.opts.Phase {
		return 1
	}
	return -1
}

// analyzeFailed extracts the failed assumption set after the pending
// assumption a was found falsified. It walks the reason graph of -a back to
// the assumption decisions; at this point every decision on the trail is an
// assumption, so the collected set is a genuine failing core.
func (s *Solver) analyzeFailed(a int) {
	s.failed = map[int]bool{}
	s.failed[s.externalize(a)] = true
	v := abs(a)
	stack := []int{v}
	s.markSeen(v)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.vtab[v].level == 0 {
			continue
		}
		if reason := s.vtab[v].reason; reason != nil {
			for _, lit := range reason.lits {
				v2 := abs(lit)
				if !s.ftab[v2].seen && s.vtab[v2].level > 0 {
					s.markSeen(v2)
					stack = append(stack, v2)
				}
			}
		} else {
			// Assumption decision: record the assigned literal.
			lit := v
			if s.val(v) < 0 {
				lit = -v
			}
			s.failed[s.externalize(lit)] = true
		}
	}
	s.clearSeen()
}
