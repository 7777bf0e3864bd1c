/******************************************************************************************[Heap.h]
Copyright (c) 2003-2006, Niklas Een, Niklas Sorensson
Copyright (c) 2007-2010, Niklas Sorensson

Permission is hereby granted, free of charge, to any person obtaining a copy of this software and
associated documentation files (the "Software"), to deal in the Software without restriction,
including without limitation the rights to use, copy, modify, merge, publish, distribute,
sublicense, and/or sell copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all copies or
substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT
NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM,
DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT
OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
**************************************************************************************************/

package solver

// A max-heap over variable scores with support for decrease/increase key,
// strongly inspired from Minisat's mtl/Heap.h. It is the decision source in
// stable mode. Heap positions are kept in the solver's btab, shifted by one
// so that 0 means "not on the heap".

type scoreHeap struct {
	stab    []float64 // variable scores; the solver's slice, not a copy
	btab    []int32   // position + 1 per variable; the solver's slice
	content []int     // variables, heap ordered
}

func (h *scoreHeap) lt(i, j int) bool {
	if h.stab[i] != h.stab[j] {
		return h.stab[i] > h.stab[j]
	}
	return i > j
}

func heapLeft(i int) int   { return i*2 + 1 }
func heapRight(i int) int  { return (i + 1) * 2 }
func heapParent(i int) int { return (i - 1) >> 1 }

func (h *scoreHeap) percolateUp(i int) {
	x := h.content[i]
	p := heapParent(i)
	for i != 0 && h.lt(x, h.content[p]) {
		h.content[i] = h.content[p]
		h.btab[h.content[p]] = int32(i) + 1
		i = p
		p = heapParent(p)
	}
	h.content[i] = x
	h.btab[x] = int32(i) + 1
}

func (h *scoreHeap) percolateDown(i int) {
	x := h.content[i]
	for heapLeft(i) < len(h.content) {
		child := heapLeft(i)
		if r := heapRight(i); r < len(h.content) && h.lt(h.content[r], h.content[child]) {
			child = r
		}
		if !h.lt(h.content[child], x) {
			break
		}
		h.content[i] = h.content[child]
		h.btab[h.content[i]] = int32(i) + 1
		i = child
	}
	h.content[i] = x
	h.btab[x] = int32(i) + 1
}

func (h *scoreHeap) empty() bool { return len(h.content) == 0 }

func (h *scoreHeap) contains(v int) bool { return h.btab[v] > 0 }

func (h *scoreHeap) push(v int) {
	if h.contains(v) {
		return
	}
	h.content = append(h.content, v)
	h.btab[v] = int32(len(h.content)) // position + 1
	h.percolateUp(len(h.content) - 1)
}

func (h *scoreHeap) update(v int) {
	if !h.contains(v) {
		h.push(v)
		return
	}
	pos := int(h.btab[v]) - 1
	h.percolateUp(pos)
	h.percolateDown(int(h.btab[v]) - 1)
}

func (h *scoreHeap) popMax() int {
	x := h.content[0]
	last := len(h.content) - 1
	h.content[0] = h.content[last]
	h.btab[h.content[0]] = 1
	h.btab[x] = 0
	h.content = h.content[:last]
	if len(h.content) > 1 {
		h.percolateDown(0)
	}
	return x
}

// rebuild builds the heap from scratch with the given variables.
func (h *scoreHeap) rebuild(vars []int) {
	for _, v := range h.content {
		h.btab[v] = 0
	}
	h.content = h.content[:0]
	for i, v := range vars {
		h.btab[v] = int32(i) + 1
		h.content = append(h.content, v)
	}
	for i := len(h.content)/2 - 1; i >= 0; i-- {
		h.percolateDown(i)
	}
}
