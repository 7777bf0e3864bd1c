package solver

// Variable space management. Slots are created by initVars and never
// destroyed, only deactivated through ftab. All per-variable tables share the
// capacity vsize; per-literal tables are twice that.

// enlargeVals grows the assignment vector. It is physically a single buffer
// of length 2*newVsize+1 whose logical base is shifted by newVsize, so that
// literals in [-maxVar, maxVar] index it directly.
func (s *Solver) enlargeVals(newVsize int) {
	newVals := make([]int8, 2*newVsize+1)
	if s.vals != nil {
		for lit := -s.maxVar; lit <= s.maxVar; lit++ {
			newVals[lit+newVsize] = s.vals[lit+s.vsize]
		}
	}
	s.vals = newVals
}

func enlargeI8(v []int8, n int, init int8) []int8 {
	for len(v) < n {
		v = append(v, init)
	}
	return v
}

func enlargeI32(v []int32, n int, init int32) []int32 {
	for len(v) < n {
		v = append(v, init)
	}
	return v
}

func (s *Solver) enlarge(newMaxVar int) {
	if s.level() > 0 {
		panic("enlarging above decision level zero")
	}
	newVsize := s.vsize * 2
	if newVsize == 0 {
		newVsize = newMaxVar + 1
	}
	for newVsize <= newMaxVar {
		newVsize *= 2
	}
	s.log.WithField("vsize", newVsize).Debug("enlarging variable space")
	// Ordered in the size of allocated memory (larger blocks first).
	for len(s.wtab) < 2*newVsize {
		s.wtab = append(s.wtab, nil)
	}
	for len(s.vtab) < newVsize {
		s.vtab = append(s.vtab, varData{})
	}
	for len(s.links) < newVsize {
		s.links = append(s.links, link{})
	}
	s.btab = enlargeI32(s.btab, newVsize, 0)
	for len(s.stab) < newVsize {
		s.stab = append(s.stab, 0)
	}
	s.ptab = enlargeI32(s.ptab, 2*newVsize, -1)
	for len(s.ftab) < newVsize {
		s.ftab = append(s.ftab, varFlags{})
	}
	s.enlargeVals(newVsize)
	s.frozentab = enlargeI32(s.frozentab, newVsize, 0)
	saved := int8(-1)
	if s.opts.Phase {
		saved = 1
	}
	s.phases.saved = enlargeI8(s.phases.saved, newVsize, saved)
	s.phases.target = enlargeI8(s.phases.target, newVsize, 0)
	s.phases.best = enlargeI8(s.phases.best, newVsize, 0)
	s.phases.prev = enlargeI8(s.phases.prev, newVsize, 0)
	s.phases.min = enlargeI8(s.phases.min, newVsize, 0)
	s.marks = enlargeI8(s.marks, newVsize, 0)
	s.vsize = newVsize
	s.heap.stab = s.stab
	s.heap.btab = s.btab
}

// initVars grows the variable space up to newMaxVar. It is a no-op when the
// space is already that large.
func (s *Solver) initVars(newMaxVar int) {
	if newMaxVar <= s.maxVar {
		return
	}
	if s.level() > 0 {
		s.backtrack(0)
	}
	s.log.WithFields(map[string]interface{}{
		"from": s.maxVar + 1, "to": newMaxVar,
	}).Debug("initializing internal variables")
	if newMaxVar >= s.vsize {
		s.enlarge(newMaxVar)
	}
	for lit := -newMaxVar; lit < -s.maxVar; lit++ {
		if s.vals[s.valIdx(lit)] != 0 {
			panic("dirty negative assignment slot")
		}
	}
	for lit := s.maxVar + 1; lit <= newMaxVar; lit++ {
		if s.vals[s.valIdx(lit)] != 0 || s.btab[lit] != 0 {
			panic("dirty assignment or heap slot")
		}
		if s.ptab[watchIdx(lit)] != -1 || s.ptab[watchIdx(-lit)] != -1 {
			panic("dirty trail position slot")
		}
	}
	oldMaxVar := s.maxVar
	s.maxVar = newMaxVar
	for v := oldMaxVar + 1; v <= newMaxVar; v++ {
		s.enqueue(v)
		s.heap.push(v)
	}
	initialized := newMaxVar - oldMaxVar
	s.stats.Vars += initialized
	s.stats.Unused += initialized
	s.stats.Inactive += initialized
}

// Freeze increments the freeze count of the external literal's variable,
// protecting it from elimination.
func (s *Solver) Freeze(elit int) {
	iv := s.internalVar(elit)
	s.frozentab[iv]++
}

// Melt reverts one Freeze.
func (s *Solver) Melt(elit int) {
	iv := s.internalVar(elit)
	if s.frozentab[iv] == 0 {
		panic("melting a literal that is not frozen")
	}
	s.frozentab[iv]--
}

func (s *Solver) frozen(v int) bool { return s.frozentab[v] > 0 }
