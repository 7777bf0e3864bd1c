package solver

import "math"

// limits holds the absolute thresholds gating restart, reduction and the
// inprocessing passes. Most are only initialized on the first Solve call and
// kept across incremental calls; the ones explicitly reset below follow the
// incremental limit policy.
type limits struct {
	initialized bool

	reduce    int64
	flush     int64
	subsume   int64
	elim      int64
	elimbound int64
	probe     int64
	compact   int64
	rephase   int64
	rephased  [2]int64 // conflicts at the last rephase, per mode
	restart   int64
	stabilize int64

	conflicts int64 // -1 means no cap
	decisions int64 // -1 means no cap

	preprocessing int
	localsearch   int
}

// increments holds the per-category increments the limits are advanced by.
type increments struct {
	flush     int64
	stabilize int64

	conflicts int64 // budget per Solve, -1 means unlimited
	decisions int64

	preprocessing int
	localsearch   int
}

// last records previous trigger points so the inprocessing predicates can
// require actual progress since their last run.
type lastTriggers struct {
	reduce struct {
		conflicts int64
	}
	subsume struct {
		marked int64
	}
	elim struct {
		marked int64
	}
	ternary struct {
		marked int64
	}
}

// scale grows an interval with the problem size. The exact shape is not
// essential; it only has to be monotone in the current number of irredundant
// clauses (see DESIGN.md).
func (s *Solver) scale(x int64) int64 {
	f := math.Log10(float64(s.stats.Current.Irredundant) + 10)
	if f < 1 {
		f = 1
	}
	res := int64(f * float64(x))
	if res < 1 {
		res = 1
	}
	return res
}

// initLimits is called at the start of each Solve call. On the first call
// every limit is initialized; on subsequent incremental calls the reduce,
// flush, subsume, elim and probe limits are kept, while rephase, restart,
// report, stabilize and the elimination bound are reset.
func (s *Solver) initLimits() {
	incremental := s.lim.initialized
	if incremental {
		s.log.Debug("reinitializing limits incrementally")
	} else {
		s.log.Debug("initializing limits and increments")
	}

	if !incremental {
		s.last.reduce.conflicts = -1
		s.lim.reduce = s.stats.Conflicts + s.opts.ReduceInt

		s.lim.flush = s.opts.FlushInt
		s.inc.flush = s.opts.FlushInt

		s.lim.subsume = s.stats.Conflicts + s.scale(s.opts.SubsumeInt)

		s.last.elim.marked = -1
		s.lim.elim = s.stats.Conflicts + s.scale(s.opts.ElimInt)

		s.lim.probe = s.stats.Conflicts + s.opts.ProbeInt
	}

	// Initialize and reset elimination bounds in any case.
	s.lim.elimbound = s.opts.ElimBoundMin

	if !incremental {
		s.last.ternary.marked = -1 // TODO explain why this is necessary.

		s.lim.compact = s.stats.Conflicts + s.opts.CompactInt
	}

	// Initialize or reset 'rephase' limits in any case.
	s.lim.rephase = s.stats.Conflicts + s.opts.RephaseInt
	s.lim.rephased[0], s.lim.rephased[1] = 0, 0

	// Initialize or reset 'restart' limits in any case.
	s.lim.restart = s.stats.Conflicts + s.opts.RestartInt

	// Initialize or reset 'report' state in any case.
	s.reported = false

	if !incremental {
		s.stable = s.opts.Stabilize && s.opts.StabilizeOnly
		s.initAverages()
	} else if s.opts.Stabilize && s.opts.StabilizeOnly {
		// keep the forced stable phase
	} else if s.stable {
		s.stable = false
		s.swapAverages()
	}

	s.inc.stabilize = s.opts.StabilizeInt
	s.lim.stabilize = s.stats.Conflicts + s.inc.stabilize

	if s.opts.Stabilize && s.opts.Reluctant > 0 {
		s.reluctant.enable(s.opts.Reluctant, s.opts.ReluctantMax)
	} else {
		s.reluctant.disable()
	}

	// Conflict and decision caps.
	if s.inc.conflicts < 0 {
		s.lim.conflicts = -1
	} else {
		s.lim.conflicts = s.stats.Conflicts + s.inc.conflicts
	}
	if s.inc.decisions < 0 {
		s.lim.decisions = -1
	} else {
		s.lim.decisions = s.stats.Decisions + s.inc.decisions
	}

	// Preprocessing and local search round caps.
	if s.inc.preprocessing <= 0 {
		s.lim.preprocessing = 0
	} else {
		s.lim.preprocessing = s.inc.preprocessing
	}
	if s.inc.localsearch <= 0 {
		s.lim.localsearch = 0
	} else {
		s.lim.localsearch = s.inc.localsearch
	}

	s.lim.initialized = true
}

// SetConflictLimit caps the number of conflicts spent by each following Solve
// call until it is changed again. A negative value removes the cap.
func (s *Solver) SetConflictLimit(n int64) { s.inc.conflicts = n }

// SetDecisionLimit caps the number of decisions spent by each following Solve
// call until it is changed again. A negative value removes the cap.
func (s *Solver) SetDecisionLimit(n int64) { s.inc.decisions = n }
