package solver

// The progress report stream: one character per event, written to the
// configured writer. The alphabet is fixed: '['/']' and '{'/'}' bracket
// stable and non-stable search, '*' no restore needed, '+' restore started,
// 'r' restore finished, 'P' preprocessing round, 'L' local search round,
// '1'/'0'/'?' the final verdict. Quiet solvers leave the writer nil; the
// stream then costs nothing.

func (s *Solver) report(c byte) {
	if !s.reported {
		s.reported = true
		s.log.WithField("solve", s.stats.Solves).Debug("reporting started")
	}
	if s.reportW != nil {
		_, _ = s.reportW.Write([]byte{c})
	}
	s.log.WithField("report", string(c)).Debug("progress")
}
