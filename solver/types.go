package solver

// Basic types and constants shared across the solver.

// Result codes returned by Solve and the internal search routines.
// They follow the usual SAT competition / IPASIR convention.
const (
	// Unknown means the search was inconclusive (limit hit or termination requested).
	Unknown = 0
	// Satisfiable means a model was found.
	Satisfiable = 10
	// Unsatisfiable means the formula (under the current assumptions, if any)
	// has no model.
	Unsatisfiable = 20
)

// A literal is a signed non-zero int: the variable index is its absolute
// value, the sign encodes the polarity. Variable indices start at 1.

func abs(lit int) int {
	if lit < 0 {
		return -lit
	}
	return lit
}

// litSign returns +1 for a positive literal, -1 for a negative one.
func litSign(lit int) int8 {
	if lit < 0 {
		return -1
	}
	return 1
}

// watchIdx maps a literal to its slot in per-literal tables (wtab, ptab).
// Positive literals use even slots, negative ones odd slots.
func watchIdx(lit int) int {
	if lit < 0 {
		return 2*-lit + 1
	}
	return 2 * lit
}

// Variable status as tracked in ftab. A variable is created unused, becomes
// active when it first occurs in a clause, and is deactivated by fixing,
// elimination, substitution or pure literal removal. Slots are never
// destroyed, only deactivated.
type varStatus byte

const (
	statusUnused varStatus = iota
	statusActive
	statusFixed
	statusEliminated
	statusSubstituted
	statusPure
)

// varFlags is the per-variable flag record: the lifecycle status plus marker
// bits driving inprocessing scheduling and conflict analysis.
type varFlags struct {
	status  varStatus
	seen    bool // set during conflict analysis
	subsume bool // touched since the last subsumption round
	elim    bool // touched since the last elimination round
}

func (f *varFlags) active() bool { return f.status == statusActive }

// varData records, for an assigned variable, where and why it was assigned.
type varData struct {
	level  int     // decision level of the assignment
	trail  int     // position on the trail
	reason *Clause // nil for decisions and root assignments
}

// levelInfo is one entry of the control stack. Level 0 is always present.
type levelInfo struct {
	trail    int // trail height when the level was opened
	decision int // decision literal, 0 for level 0 and pseudo levels
}

// phaseRecord holds the five per-variable phase tables. saved is initialized
// to +1 or -1 depending on Options.Phase, the others start at 0.
type phaseRecord struct {
	saved  []int8
	target []int8
	best   []int8
	prev   []int8
	min    []int8
}
