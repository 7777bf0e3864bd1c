package solver

import "fmt"

// A Clause is a contiguous literal list carrying the flags the search and the
// inprocessing passes need. Clauses are either original (irredundant) or
// learned (redundant).
type Clause struct {
	lits      []int
	glue      int  // LBD of a learned clause
	used      int  // bumped when the clause participates in a conflict
	redundant bool // learned, may be deleted by reduce/flush
	garbage   bool // logically deleted, awaiting collection
	reason    bool // currently the reason of an assigned literal
}

func newClause(lits []int, redundant bool) *Clause {
	return &Clause{lits: lits, redundant: redundant}
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int { return len(c.lits) }

// Lits returns the clause's literals. The slice must not be modified.
func (c *Clause) Lits() []int { return c.lits }

// Redundant reports whether the clause was learned.
func (c *Clause) Redundant() bool { return c.redundant }

func (c *Clause) String() string {
	res := ""
	for _, lit := range c.lits {
		res += fmt.Sprintf("%d ", lit)
	}
	return res + "0"
}

// watch is one entry of a literal's watch list. blit is a blocking literal
// from the same clause: if it is already true the clause is satisfied and
// need not be inspected. Binary clauses are resolved from the watch alone.
type watch struct {
	clause *Clause
	blit   int
	binary bool
}
