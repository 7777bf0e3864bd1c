package solver

// Cooperative termination. The forced flag may be set from a signal handler
// or another goroutine; the callback is polled at safe points only: the top
// of each CDCL dispatch iteration and between the ladder stages of Solve.
// Work already performed is retained, termination surfaces as Unknown.

// SetTerminate registers a callback polled during search. Returning true
// stops the current Solve call with an Unknown result. A nil callback
// removes it.
func (s *Solver) SetTerminate(cb func() bool) { s.terminator = cb }

// Terminate asynchronously forces the current Solve call to return Unknown.
// Safe to call from other goroutines and signal handlers.
func (s *Solver) Terminate() { s.terminateForced.Store(true) }

func (s *Solver) terminating() bool {
	if s.terminateForced.Load() {
		return true
	}
	if s.terminator != nil && s.terminator() {
		return true
	}
	if s.lim.conflicts >= 0 && s.stats.Conflicts >= s.lim.conflicts {
		return true
	}
	if s.lim.decisions >= 0 && s.stats.Decisions >= s.lim.decisions {
		return true
	}
	return false
}
