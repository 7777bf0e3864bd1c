package solver

import "math"

// Local search over the irredundant clauses, seeded from the saved phases.
// A WalkSAT-style loop flips variables from falsified clauses, preferring
// flips that break the fewest satisfied clauses. The best assignment found is
// written back into the saved phases; reaching zero falsified clauses makes
// the formula satisfiable by the saved phases, which the saved-phase model
// attempt then turns into a real trail.

type walker struct {
	clauses  [][]int // root-simplified irredundant clauses
	occs     map[int][]int
	value    map[int]int8
	flip     map[int]bool // flippable (not assumption-forced, not fixed)
	trueCnt  []int
	unsat    []int // indices of falsified clauses
	unsatPos []int // position of each clause in unsat, -1 if satisfied
	steps    int64
}

func (s *Solver) localSearching() bool {
	return !s.unsat && s.maxVar > 0 && s.opts.Walk
}

// localSearch runs bounded walk rounds; a non-zero verdict stops the loop.
// A satisfiable verdict is converted through the saved-phase model attempt, a
// failing one produces the failed assumption set.
func (s *Solver) localSearch() int {
	if !s.localSearching() {
		return Unknown
	}
	res := Unknown
	for i := 1; res == Unknown && i <= s.lim.localsearch; i++ {
		res = s.localSearchRound(i)
	}
	if res == Satisfiable {
		s.log.Debug("local search found satisfying assignment")
		res = s.trySavedPhases()
	} else if res == Unsatisfiable {
		s.log.Debug("local search found inconsistent assumptions")
		s.produceFailedAssumptions()
	}
	return res
}

// localSearchRound runs one walk round with a propagation budget scaled
// quadratically with the round number, saturating instead of overflowing.
func (s *Solver) localSearchRound(round int) int {
	if s.unsat || s.maxVar == 0 {
		return Unknown
	}
	if s.localsearching {
		panic("recursive local search")
	}
	s.localsearching = true

	limit := s.opts.WalkMinEff
	limit *= int64(round)
	if math.MaxInt64/int64(round) > limit {
		limit *= int64(round)
	} else {
		limit = math.MaxInt64
	}

	res := s.walkRound(limit, true)

	s.localsearching = false
	s.report('L')
	return res
}

// walkRound returns Satisfiable when an assignment satisfying all considered
// clauses was found, Unsatisfiable when a clause is falsified by assumptions
// and root units alone, and Unknown when the budget ran out.
func (s *Solver) walkRound(limit int64, external bool) int {
	s.stats.Walks++
	if s.level() > 0 {
		s.backtrack(0)
	}

	w := &walker{
		occs:     map[int][]int{},
		value:    map[int]int8{},
		flip:     map[int]bool{},
		unsatPos: nil,
	}

	// Initial assignment: root values, then assumptions, then saved phases.
	assumed := map[int]int8{}
	for _, a := range s.assumptions {
		assumed[abs(a)] = litSign(a)
	}
	for v := 1; v <= s.maxVar; v++ {
		switch {
		case s.val(v) != 0:
			w.value[v] = s.val(v)
		case assumed[v] != 0:
			w.value[v] = assumed[v]
		default:
			w.value[v] = s.initialPhase(s.phases.saved[v])
			w.flip[v] = true
		}
	}

	// Collect root-simplified irredundant clauses.
	for _, c := range s.clauses {
		if c.garbage || c.redundant {
			continue
		}
		var lits []int
		satisfied, frozen := false, true
		for _, lit := range c.lits {
			if s.fixedVal(lit) > 0 {
				satisfied = true
				break
			}
			if s.fixedVal(lit) < 0 {
				continue
			}
			lits = append(lits, lit)
			if w.flip[abs(lit)] {
				frozen = false
			}
		}
		if satisfied {
			continue
		}
		if frozen {
			// Every remaining literal is pinned by an assumption; if none of
			// them is satisfied the assumptions contradict this clause.
			ok := false
			for _, lit := range lits {
				if w.value[abs(lit)]*litSign(lit) > 0 {
					ok = true
					break
				}
			}
			if !ok {
				if len(s.assumptions) == 0 {
					// Cannot happen: root propagation would have failed.
					continue
				}
				return Unsatisfiable
			}
			continue
		}
		idx := len(w.clauses)
		w.clauses = append(w.clauses, lits)
		for _, lit := range lits {
			w.occs[lit] = append(w.occs[lit], idx)
		}
	}

	w.trueCnt = make([]int, len(w.clauses))
	w.unsatPos = make([]int, len(w.clauses))
	for i, lits := range w.clauses {
		w.unsatPos[i] = -1
		for _, lit := range lits {
			if w.value[abs(lit)]*litSign(lit) > 0 {
				w.trueCnt[i]++
			}
		}
		if w.trueCnt[i] == 0 {
			w.unsatPos[i] = len(w.unsat)
			w.unsat = append(w.unsat, i)
		}
	}

	minimum := len(w.unsat)
	s.saveWalkMinimum(w)
	for len(w.unsat) > 0 && w.steps < limit {
		s.walkFlip(w)
		if len(w.unsat) < minimum {
			minimum = len(w.unsat)
			s.saveWalkMinimum(w)
		}
	}
	s.stats.WalkMinimum = int64(minimum)

	if len(w.unsat) == 0 {
		s.saveWalkMinimum(w)
		return Satisfiable
	}
	return Unknown
}

// saveWalkMinimum writes the walker's current assignment into the saved and
// minimum phases.
func (s *Solver) saveWalkMinimum(w *walker) {
	for v := 1; v <= s.maxVar; v++ {
		if w.flip[v] {
			s.phases.saved[v] = w.value[v]
			s.phases.min[v] = w.value[v]
		}
	}
}

// walkFlip picks a random falsified clause and flips one of its flippable
// literals, greedily minimizing the break count with an epsilon of noise.
func (s *Solver) walkFlip(w *walker) {
	ci := w.unsat[s.nextRand()%uint64(len(w.unsat))]
	lits := w.clauses[ci]

	var best, flippable []int
	bestBreak := -1
	for _, lit := range lits {
		v := abs(lit)
		if !w.flip[v] {
			continue
		}
		flippable = append(flippable, v)
		br := s.breakCount(w, v)
		if bestBreak == -1 || br < bestBreak {
			bestBreak = br
			best = append(best[:0], v)
		} else if br == bestBreak {
			best = append(best, v)
		}
	}
	if len(best) == 0 {
		// No flippable literal; pick another falsified clause next time.
		w.steps++
		return
	}
	var v int
	if bestBreak > 0 && s.opts.WalkEps > 0 && s.nextRand()%s.opts.WalkEps == 0 {
		v = flippable[s.nextRand()%uint64(len(flippable))]
	} else {
		v = best[s.nextRand()%uint64(len(best))]
	}
	s.doFlip(w, v)
}

// breakCount counts the satisfied clauses in which v is the only true
// literal, i.e. the clauses flipping v would falsify.
func (s *Solver) breakCount(w *walker, v int) int {
	lit := int(w.value[v]) * v // the currently true literal of v
	count := 0
	for _, ci := range w.occs[lit] {
		if w.trueCnt[ci] == 1 {
			count++
		}
	}
	return count
}

func (s *Solver) doFlip(w *walker, v int) {
	oldLit := int(w.value[v]) * v
	w.value[v] = -w.value[v]
	newLit := -oldLit
	s.stats.WalkFlips++
	w.steps++
	for _, ci := range w.occs[oldLit] {
		w.trueCnt[ci]--
		if w.trueCnt[ci] == 0 {
			w.unsatPos[ci] = len(w.unsat)
			w.unsat = append(w.unsat, ci)
		}
		w.steps++
	}
	for _, ci := range w.occs[newLit] {
		if w.trueCnt[ci] == 0 {
			pos := w.unsatPos[ci]
			last := len(w.unsat) - 1
			w.unsat[pos] = w.unsat[last]
			w.unsatPos[w.unsat[pos]] = pos
			w.unsat = w.unsat[:last]
			w.unsatPos[ci] = -1
		}
		w.trueCnt[ci]++
		w.steps++
	}
}
