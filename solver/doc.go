// Package solver provides an incremental CDCL SAT solver.
//
// The solver decides whether a propositional formula in conjunctive normal
// form is satisfiable and, when so, produces a model; when unsatisfiable
// under a set of assumptions it produces a subset of failing assumptions.
// The API is IPASIR-shaped: Add builds clauses literal by literal, Assume
// forces literals for a single Solve call, Val and Failed query the outcome.
//
// Search interleaves conflict driven clause learning with inprocessing
// (probing, subsumption, bounded variable elimination, compaction), and each
// Solve call runs cheaper attempts first: preprocessing, local search and
// constant phase sweeps, before falling back to full CDCL.
package solver
