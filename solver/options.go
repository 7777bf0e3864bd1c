package solver

// Options control the search and inprocessing schedule. They are read-only
// during Solve. Interval options are expressed in conflicts unless noted.
type Options struct {
	Phase bool // initial saved phase for all variables (true = positive)

	Restart       bool  // enable restarts
	RestartInt    int64 // base restart interval
	RestartMargin float64

	Stabilize       bool  // alternate between stable and non-stable mode
	StabilizeOnly   bool  // always stay in stable mode
	StabilizeInt    int64 // initial stabilize interval
	StabilizeMaxInt int64 // cap on the doubling stabilize interval

	Reluctant    int64 // reluctant doubling period (stable mode restarts)
	ReluctantMax int64 // cap on the reluctant doubling sequence

	Rephase    bool
	RephaseInt int64

	Reduce       bool
	ReduceInt    int64
	ReduceKeep   int // glue at or below which learned clauses are always kept
	ReduceTarget int // percentage of candidates collected per reduction

	FlushInt    int64 // reductions between full flushes of learned clauses
	FlushFactor int64 // multiplier applied to the flush interval after a flush

	Probe    bool
	ProbeInt int64

	Subsume       bool
	SubsumeInt    int64
	SubsumeClsLim int // maximal size of subsumption candidates
	SubsumeOccLim int // maximal occurrence list length considered

	Elim         bool
	ElimInt      int64
	ElimBoundMin int64 // initial bound on extra resolvents per elimination
	ElimBoundMax int64 // final bound after relaxation
	ElimOccLim   int   // maximal occurrences of a candidate variable
	ElimClsLim   int   // maximal size of clauses resolved during elimination

	Compact    bool
	CompactInt int64
	CompactMin int     // minimal number of removable variables
	CompactLim float64 // minimal removable fraction of the variable space

	Simplify      bool // run preprocessing rounds at the start of Solve
	Preprocessing int  // preprocessing rounds per Solve

	Walk        bool // enable local search rounds before CDCL
	LocalSearch int  // local search rounds per Solve
	WalkMinEff  int64
	WalkEps     uint64 // inverse probability of a random (non-greedy) flip

	Lucky bool // attempt constant phases before CDCL

	ScoreDecay float64 // EVSIDS decay (score increment growth factor)

	RestoreAll int // 0/1 restore tainted only, 2 restore all eliminated clauses

	Seed uint64 // local search PRNG seed
}

// DefaultOptions returns the default option set.
func DefaultOptions() Options {
	return Options{
		Phase: true,

		Restart:       true,
		RestartInt:    2,
		RestartMargin: 1.1,

		Stabilize:       true,
		StabilizeInt:    1000,
		StabilizeMaxInt: 1 << 30,

		Reluctant:    1024,
		ReluctantMax: 1 << 20,

		Rephase:    true,
		RephaseInt: 1000,

		Reduce:       true,
		ReduceInt:    300,
		ReduceKeep:   2,
		ReduceTarget: 75,

		FlushInt:    100000,
		FlushFactor: 3,

		Probe:    true,
		ProbeInt: 5000,

		Subsume:       true,
		SubsumeInt:    10000,
		SubsumeClsLim: 100,
		SubsumeOccLim: 100,

		Elim:         true,
		ElimInt:      2000,
		ElimBoundMin: 0,
		ElimBoundMax: 16,
		ElimOccLim:   100,
		ElimClsLim:   100,

		Compact:    true,
		CompactInt: 2000,
		CompactMin: 100,
		CompactLim: 0.1,

		Simplify:      true,
		Preprocessing: 0,

		Walk:        true,
		LocalSearch: 0,
		WalkMinEff:  100000,
		WalkEps:     10,

		Lucky: true,

		ScoreDecay: 1.0 / 0.95,

		RestoreAll: 0,

		Seed: 42,
	}
}
