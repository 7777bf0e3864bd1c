package solver

import "github.com/sirupsen/logrus"

// Stats are monotonically increasing counters about the solving process,
// plus the current sizes of the active clause and variable partitions.
// They are provided for information purpose only.
type Stats struct {
	Conflicts    int64
	Decisions    int64
	Propagations int64
	Restarts     int64
	Reductions   int64
	Flushed      int64 // learned clauses removed by flushing
	Rephased     int64
	Iterations   int64 // learned units reported by iterate

	Probings   int64
	FailedLits int64
	Probed     int64

	SubsumeRounds int64
	Subsumed      int64
	Strengthened  int64

	ElimRounds  int64
	ElimedVars  int64
	PureLits    int64
	Restored    int64 // clauses restored for tainted variables
	RestoredVar int64

	Compacts       int64
	Preprocessings int64
	Walks          int64
	WalkFlips      int64
	WalkMinimum    int64 // best unsatisfied count seen by the last walk
	LuckyTried     int64
	LuckySucceeded int64

	Solves   int64
	Originals int64 // original clauses added
	Learned   int64
	LearnedUnits int64
	Deleted   int64

	Vars     int // variable slots ever created
	Active   int
	Inactive int

	// Per-cause inactive counts. Their sum is Inactive.
	Unused      int
	Fixed       int
	Eliminated  int
	Substituted int
	Pure        int

	// Sizes of the live clause partitions.
	Current struct {
		Irredundant int64
		Redundant   int64
	}

	// Marker counters compared against last.* by the inprocessing predicates.
	MarkedSubsume int64
	MarkedElim    int64
}

// Log writes a statistics summary at info level.
func (st *Stats) Log(log logrus.FieldLogger) {
	log.WithFields(logrus.Fields{
		"conflicts":    st.Conflicts,
		"decisions":    st.Decisions,
		"propagations": st.Propagations,
		"restarts":     st.Restarts,
		"reductions":   st.Reductions,
		"learned":      st.Learned,
		"deleted":      st.Deleted,
		"probings":     st.Probings,
		"subsumed":     st.Subsumed,
		"eliminated":   st.ElimedVars,
		"compacts":     st.Compacts,
	}).Info("solver statistics")
}

// activate moves an unused variable into the active partition. Called the
// first time a variable occurs in a clause or an assumption.
func (s *Solver) activate(v int) {
	f := &s.ftab[v]
	if f.status != statusUnused {
		return
	}
	f.status = statusActive
	s.stats.Unused--
	s.stats.Inactive--
	s.stats.Active++
}

// deactivate moves an active variable into the given inactive partition.
func (s *Solver) deactivate(v int, status varStatus) {
	f := &s.ftab[v]
	if f.status != statusActive {
		panic("deactivating non-active variable")
	}
	f.status = status
	s.stats.Active--
	s.stats.Inactive++
	switch status {
	case statusFixed:
		s.stats.Fixed++
	case statusEliminated:
		s.stats.Eliminated++
	case statusSubstituted:
		s.stats.Substituted++
	case statusPure:
		s.stats.Pure++
	}
}

// reactivate returns an eliminated or pure variable to the active partition.
// Used when restoring clauses for tainted variables.
func (s *Solver) reactivate(v int) {
	f := &s.ftab[v]
	switch f.status {
	case statusEliminated:
		s.stats.Eliminated--
	case statusPure:
		s.stats.Pure--
	case statusSubstituted:
		s.stats.Substituted--
	default:
		return
	}
	f.status = statusActive
	s.stats.Active++
	s.stats.Inactive--
	s.stats.RestoredVar++
	// The variable may have been popped from the heap while inactive.
	if s.val(v) == 0 && !s.heap.contains(v) {
		s.heap.push(v)
	}
}

// checkVarStats recomputes the variable accounting from ftab and panics on a
// mismatch. Only used by tests.
func (s *Solver) checkVarStats() {
	var unused, fixed, eliminated, substituted, pure, active int
	for v := 1; v <= s.maxVar; v++ {
		switch s.ftab[v].status {
		case statusUnused:
			unused++
		case statusActive:
			active++
		case statusFixed:
			fixed++
		case statusEliminated:
			eliminated++
		case statusSubstituted:
			substituted++
		case statusPure:
			pure++
		}
	}
	if fixed != s.stats.Fixed || eliminated != s.stats.Eliminated ||
		substituted != s.stats.Substituted || pure != s.stats.Pure ||
		unused != s.stats.Unused {
		panic("inactive variable accounting out of sync")
	}
	inactive := unused + fixed + eliminated + substituted + pure
	if inactive != s.stats.Inactive || active != s.stats.Active {
		panic("active/inactive accounting out of sync")
	}
	if s.maxVar != s.stats.Active+s.stats.Inactive {
		panic("maxVar does not match variable accounting")
	}
}
