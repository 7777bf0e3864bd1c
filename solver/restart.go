package solver

// Restart scheduling and the stable/non-stable mode controller. Non-stable
// mode restarts when the fast glue average exceeds the slow one by a margin;
// stable mode restarts on the reluctant doubling cadence. Crossing the
// stabilize limit toggles the mode and swaps the averages so each mode keeps
// its own history.

func (s *Solver) stabilizing() bool {
	return s.opts.Stabilize && !s.opts.StabilizeOnly &&
		s.stats.Conflicts >= s.lim.stabilize
}

func (s *Solver) switchMode() {
	s.stable = !s.stable
	s.swapAverages()
	s.inc.stabilize *= 2
	if s.inc.stabilize > s.opts.StabilizeMaxInt {
		s.inc.stabilize = s.opts.StabilizeMaxInt
	}
	s.lim.stabilize = s.stats.Conflicts + s.inc.stabilize
	s.targetAssigned = 0
	for v := 1; v <= s.maxVar; v++ {
		s.phases.target[v] = 0
	}
	s.log.WithField("stable", s.stable).Debug("switched search mode")
}

func (s *Solver) restarting() bool {
	if !s.opts.Restart || s.level() <= len(s.assumptions) {
		return false
	}
	if s.stabilizing() {
		s.switchMode()
	}
	if s.stable {
		return s.reluctant.expired()
	}
	if s.stats.Conflicts < s.lim.restart {
		return false
	}
	return s.averages.glueFast.value > s.opts.RestartMargin*s.averages.glueSlow.value
}

// restart discards the decision stack above the assumptions and resumes.
func (s *Solver) restart() {
	s.stats.Restarts++
	s.backtrack(len(s.assumptions))
	s.lim.restart = s.stats.Conflicts + s.opts.RestartInt
}
