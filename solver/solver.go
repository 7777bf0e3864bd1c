package solver

import (
	"io"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// A Solver is an incremental CDCL SAT solver. The zero value is not usable;
// use New. A Solver is not safe for concurrent use: it is a logically private
// resource, and only SetTerminate's callback and Terminate may be used from
// other goroutines.
type Solver struct {
	opts Options
	log  logrus.FieldLogger

	// Variable space. Tables are indexed by variable in [1, maxVar] except
	// vals, wtab and ptab which are per-literal. Capacity vsize only grows.
	maxVar int
	vsize  int
	vals   []int8 // length 2*vsize+1, indexed through valIdx
	vtab   []varData
	links  []link
	btab   []int32
	stab   []float64
	ptab   []int32 // last probing round per literal, -1 initially
	ftab   []varFlags
	frozentab []int32
	phases    phaseRecord
	marks     []int8
	wtab      [][]watch

	queue vmtfQueue
	heap  scoreHeap
	scinc float64

	// Clause database. binarySubsuming is the permanent sentinel standing in
	// for binary clauses found through watch lists during subsumption.
	clauses         []*Clause
	binarySubsuming Clause

	trail       []int
	control     []levelInfo
	propagated  int
	propagated2 int
	conflict    *Clause
	numAssigned int

	clause []int // learned clause buffer, empty outside analysis
	seen   []int // variables marked seen during analysis

	unsat                bool
	iterating            bool
	localsearching       bool
	preprocessing        bool
	forceSavedPhase      bool
	searchingLuckyPhases bool
	stable               bool
	reported             bool

	luckyPhase   int8 // forced constant polarity during lucky attempts
	luckyReverse bool // reversed variable order during lucky attempts

	targetAssigned int
	bestAssigned   int

	averages       averages
	shadowAverages averages
	reluctant      reluctant

	stats Stats
	lim   limits
	inc   increments
	last  lastTriggers

	// External layer: mapping between external literals (the API surface)
	// and internal ones, clause restore bookkeeping and the extended model.
	etab       []int // external var -> internal var, 0 if none
	itab       []int // internal var -> external var
	eflags     []byte // per external var: eliminated and tainted bits
	restoreTab map[int][][]int
	extension  []extensionEntry
	tainted    []int

	original    []int // current Add buffer (external literals)
	assumptions []int // internal literals, valid for one Solve call
	failed      map[int]bool
	emodel      []int8 // extended model per external var, valid after SAT
	status      int

	terminator      func() bool
	terminateForced atomic.Bool
	learnCb         func([]int)
	learnMax        int
	proof           ProofListener

	reportW io.Writer

	walkRand uint64
}

// extensionEntry is one witness record for model reconstruction after
// variable elimination. Both the witness and the clause are external
// literals, so the record survives compaction.
type extensionEntry struct {
	witness int
	clause  []int
}

// ProofListener receives original clauses as they are finalized.
type ProofListener interface {
	AddOriginalClause(lits []int)
}

// New makes a solver with the given options.
func New(opts Options) *Solver {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Solver{
		opts:       opts,
		log:        discard,
		control:    []levelInfo{{}},
		vals:       make([]int8, 1),
		scinc:      1.0,
		restoreTab: map[int][][]int{},
		failed:     map[int]bool{},
		etab:       []int{0},
		itab:       []int{0},
		eflags:     []byte{0},
		walkRand:   opts.Seed | 1,
	}
	s.inc.conflicts = -1
	s.inc.decisions = -1
	s.inc.preprocessing = opts.Preprocessing
	s.inc.localsearch = opts.LocalSearch
	s.binarySubsuming.lits = make([]int, 2)
	s.initAverages()
	return s
}

// SetLogger installs a logger for debug and statistics output.
func (s *Solver) SetLogger(log logrus.FieldLogger) {
	if log == nil {
		panic("nil logger")
	}
	s.log = log
}

// SetReportWriter directs the one-character progress report stream to w.
func (s *Solver) SetReportWriter(w io.Writer) { s.reportW = w }

// SetProof installs a proof listener receiving original clauses.
func (s *Solver) SetProof(p ProofListener) { s.proof = p }

// Stats returns a copy of the current statistics.
func (s *Solver) Stats() Stats { return s.stats }

// MaxVar returns the highest internal variable index in use.
func (s *Solver) MaxVar() int { return s.maxVar }

func (s *Solver) level() int { return len(s.control) - 1 }

func (s *Solver) valIdx(lit int) int { return lit + s.vsize }

// val returns the current assignment of the literal: +1 true, -1 false,
// 0 unassigned.
func (s *Solver) val(lit int) int8 { return s.vals[s.valIdx(lit)] }

// fixedVal returns the root-level assignment of the literal, 0 if the
// literal is unassigned or only assigned above the root.
func (s *Solver) fixedVal(lit int) int8 {
	v := abs(lit)
	if s.val(lit) == 0 || s.vtab[v].level != 0 {
		return 0
	}
	return s.val(lit)
}

// newLevel opens a new decision level for the given decision literal.
func (s *Solver) newLevel(decision int) {
	s.control = append(s.control, levelInfo{trail: len(s.trail), decision: decision})
}

// searchAssign makes the literal true at the current level. Root assignments
// fix the variable permanently; their reason is dropped since analysis never
// traverses level zero.
func (s *Solver) searchAssign(lit int, reason *Clause) {
	v := abs(lit)
	lvl := s.level()
	if lvl == 0 {
		reason = nil
		if s.ftab[v].active() {
			s.deactivate(v, statusFixed)
		}
	}
	if reason != nil {
		reason.reason = true
	}
	s.vtab[v] = varData{level: lvl, trail: len(s.trail), reason: reason}
	s.vals[s.valIdx(lit)] = 1
	s.vals[s.valIdx(-lit)] = -1
	s.trail = append(s.trail, lit)
	s.numAssigned++
}

func (s *Solver) unassign(lit int) {
	v := abs(lit)
	s.phases.saved[v] = s.val(lit) * litSign(lit) // remember the polarity
	s.vals[s.valIdx(lit)] = 0
	s.vals[s.valIdx(-lit)] = 0
	if r := s.vtab[v].reason; r != nil {
		r.reason = false
		s.vtab[v].reason = nil
	}
	s.numAssigned--
	if !s.heap.contains(v) {
		s.heap.push(v)
	}
	s.queueUnassigned(v)
}

// backtrack undoes all assignments above the given level.
func (s *Solver) backtrack(lvl int) {
	if s.level() <= lvl {
		return
	}
	if s.stable {
		s.updateTargetAndBest()
	}
	keep := s.control[lvl+1].trail
	for i := len(s.trail) - 1; i >= keep; i-- {
		s.unassign(s.trail[i])
	}
	s.trail = s.trail[:keep]
	s.control = s.control[:lvl+1]
	if s.propagated > len(s.trail) {
		s.propagated = len(s.trail)
	}
	if s.propagated2 > len(s.trail) {
		s.propagated2 = len(s.trail)
	}
}

// satisfied reports whether every active variable is assigned, everything is
// propagated and all assumptions hold.
func (s *Solver) satisfied() bool {
	if s.propagated < len(s.trail) {
		return false
	}
	for _, a := range s.assumptions {
		if s.val(a) <= 0 {
			return false
		}
	}
	return s.numAssigned == s.stats.Active+s.stats.Fixed
}

// watchClause registers the clause under its first two literals.
func (s *Solver) watchClause(c *Clause) {
	binary := len(c.lits) == 2
	s.wtab[watchIdx(c.lits[0])] = append(s.wtab[watchIdx(c.lits[0])], watch{clause: c, blit: c.lits[1], binary: binary})
	s.wtab[watchIdx(c.lits[1])] = append(s.wtab[watchIdx(c.lits[1])], watch{clause: c, blit: c.lits[0], binary: binary})
}

func (s *Solver) unwatchClause(c *Clause) {
	for i := 0; i < 2; i++ {
		idx := watchIdx(c.lits[i])
		ws := s.wtab[idx]
		for j := range ws {
			if ws[j].clause == c {
				ws[j] = ws[len(ws)-1]
				s.wtab[idx] = ws[:len(ws)-1]
				break
			}
		}
	}
}

// addClause wires a new clause of size at least two into the database.
func (s *Solver) addClause(lits []int, redundant bool) *Clause {
	c := newClause(lits, redundant)
	s.clauses = append(s.clauses, c)
	s.watchClause(c)
	if redundant {
		s.stats.Current.Redundant++
	} else {
		s.stats.Current.Irredundant++
	}
	return c
}

// markGarbage logically deletes a clause. Watches are removed eagerly so
// propagation never sees garbage.
func (s *Solver) markGarbage(c *Clause) {
	if c.garbage {
		return
	}
	c.garbage = true
	s.unwatchClause(c)
	if c.redundant {
		s.stats.Current.Redundant--
	} else {
		s.stats.Current.Irredundant--
	}
	s.stats.Deleted++
}

// collectGarbage drops garbage clauses from the database.
func (s *Solver) collectGarbage() {
	j := 0
	for _, c := range s.clauses {
		if !c.garbage {
			s.clauses[j] = c
			j++
		}
	}
	s.clauses = s.clauses[:j]
}

// learnEmptyClause records that the formula is unsatisfiable.
func (s *Solver) learnEmptyClause() {
	if s.unsat {
		return
	}
	s.log.Debug("learned empty clause")
	s.unsat = true
	if s.learnCb != nil && s.learnMax >= 0 {
		s.learnCb(nil)
	}
}
