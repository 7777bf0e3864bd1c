package solver

// Compaction renumbers internal variables to close the gaps left by
// eliminated, pure and never-used variables. Fixed variables stay: they sit
// on the root trail. The external-to-internal maps are rewritten, so external
// indices are stable across compaction.

func (s *Solver) compacting() bool {
	if !s.opts.Compact || s.stats.Conflicts < s.lim.compact {
		return false
	}
	removable := s.stats.Unused + s.stats.Eliminated + s.stats.Substituted + s.stats.Pure
	if removable < s.opts.CompactMin {
		return false
	}
	return float64(removable) >= s.opts.CompactLim*float64(s.maxVar)
}

func (s *Solver) compact() {
	s.stats.Compacts++
	if s.level() > 0 {
		s.backtrack(0)
	}
	s.collectGarbage()

	// Old-to-new variable map. 0 means the slot is dropped.
	oldMax := s.maxVar
	varMap := make([]int, oldMax+1)
	newMax := 0
	var removedUnused, removedElim, removedSub, removedPure int
	for v := 1; v <= oldMax; v++ {
		switch s.ftab[v].status {
		case statusActive, statusFixed:
			newMax++
			varMap[v] = newMax
		case statusUnused:
			if s.frozen(v) {
				newMax++
				varMap[v] = newMax
			} else {
				removedUnused++
			}
		case statusEliminated:
			removedElim++
		case statusSubstituted:
			removedSub++
		case statusPure:
			removedPure++
		}
	}
	if newMax == oldMax {
		s.lim.compact = s.stats.Conflicts + s.opts.CompactInt*(1+s.stats.Compacts)
		return
	}

	mapLit := func(lit int) int {
		nv := varMap[abs(lit)]
		if lit < 0 {
			return -nv
		}
		return nv
	}

	// Preserve the queue order of surviving variables before tables move.
	var queueOrder []int
	for v := s.queue.last; v != 0; v = s.links[v].prev {
		if varMap[v] != 0 {
			queueOrder = append(queueOrder, varMap[v])
		}
	}

	// Move per-variable table entries downwards; new indices never exceed
	// old ones, so ascending order is safe.
	for old := 1; old <= oldMax; old++ {
		nv := varMap[old]
		if nv == 0 || nv == old {
			continue
		}
		s.vtab[nv] = s.vtab[old]
		s.stab[nv] = s.stab[old]
		s.ftab[nv] = s.ftab[old]
		s.frozentab[nv] = s.frozentab[old]
		s.phases.saved[nv] = s.phases.saved[old]
		s.phases.target[nv] = s.phases.target[old]
		s.phases.best[nv] = s.phases.best[old]
		s.phases.prev[nv] = s.phases.prev[old]
		s.phases.min[nv] = s.phases.min[old]
		s.marks[nv] = s.marks[old]
		s.vals[s.valIdx(nv)] = s.vals[s.valIdx(old)]
		s.vals[s.valIdx(-nv)] = s.vals[s.valIdx(-old)]
	}

	// Reset the abandoned upper region so later growth finds clean slots.
	saved := s.initialPhase(0)
	for v := newMax + 1; v <= oldMax; v++ {
		s.vtab[v] = varData{}
		s.stab[v] = 0
		s.btab[v] = 0
		s.ftab[v] = varFlags{}
		s.frozentab[v] = 0
		s.phases.saved[v] = saved
		s.phases.target[v] = 0
		s.phases.best[v] = 0
		s.phases.prev[v] = 0
		s.phases.min[v] = 0
		s.marks[v] = 0
		s.links[v] = link{}
		s.vals[s.valIdx(v)] = 0
		s.vals[s.valIdx(-v)] = 0
		s.ptab[watchIdx(v)] = -1
		s.ptab[watchIdx(-v)] = -1
	}

	// Rewrite clauses, the trail and the assumptions.
	for _, c := range s.clauses {
		for i, lit := range c.lits {
			c.lits[i] = mapLit(lit)
		}
	}
	for i, lit := range s.trail {
		s.trail[i] = mapLit(lit)
	}
	for i := range s.trail {
		s.vtab[abs(s.trail[i])].trail = i
	}
	for i, a := range s.assumptions {
		s.assumptions[i] = mapLit(a)
	}

	// Rewrite the external maps.
	for ev := 1; ev < len(s.etab); ev++ {
		if s.etab[ev] != 0 {
			s.etab[ev] = varMap[s.etab[ev]]
		}
	}
	itab := make([]int, newMax+1)
	for old := 1; old <= oldMax; old++ {
		if nv := varMap[old]; nv != 0 {
			itab[nv] = s.itab[old]
		}
	}
	s.itab = itab

	s.maxVar = newMax
	s.stats.Unused -= removedUnused
	s.stats.Eliminated -= removedElim
	s.stats.Substituted -= removedSub
	s.stats.Pure -= removedPure
	s.stats.Inactive -= removedUnused + removedElim + removedSub + removedPure

	// Rebuild the watch lists and both decision orderings.
	for i := range s.wtab {
		s.wtab[i] = nil
	}
	for _, c := range s.clauses {
		if !c.garbage {
			s.watchClause(c)
		}
	}
	s.rebuildQueue(queueOrder)
	var heapVars []int
	for v := 1; v <= newMax; v++ {
		s.btab[v] = 0
		if s.val(v) == 0 {
			heapVars = append(heapVars, v)
		}
	}
	s.heap.content = s.heap.content[:0]
	s.heap.rebuild(heapVars)

	s.log.WithFields(map[string]interface{}{
		"from": oldMax, "to": newMax,
	}).Debug("compacted variable space")
	s.lim.compact = s.stats.Conflicts + s.opts.CompactInt*(1+s.stats.Compacts)
}
