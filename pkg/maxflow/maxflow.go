// Package maxflow provides exact maximum-flow solvers over a residual
// capacity vector: augmenting path, capacity scaling and preflow-push.
//
// All solvers share one contract. The caller supplies the graph, source
// and sink, a mutable residual-capacity vector indexed by arc handle, and
// an arc-admissibility predicate. On return the vector holds the residual
// network after the reported flow was pushed: pushing k units on arc a
// decrements residual[a] and increments residual[dual(a)], so the flow on
// a forward arc is read back as FlowAt, the residual of its dual.
//
// The vector doubles as input and state. Re-running a solver on the same
// graph requires the caller to restore capacities first.
package maxflow

import (
	"math"

	"netflow/pkg/digraph"
	"netflow/pkg/pathsearch"
)

// Unlimited is the capacity value treated as inexhaustible (the source's
// excess in preflow-push).
const Unlimited int64 = math.MaxInt64

// Solver is the common entry point of the maximum-flow family. Solve
// pushes a maximum source→dest flow over the arcs accepted by valid,
// mutating residual in place, and returns the flow value.
type Solver interface {
	Solve(g digraph.Topology, source, dest digraph.NodeID, residual []int64, valid pathsearch.Filter) (int64, error)
}

// FlowAt returns the flow pushed so far through arc a: the residual
// capacity accumulated on its dual.
func FlowAt(g digraph.Topology, a digraph.ArcID, residual []int64) int64 {
	return residual[g.ArcDual(a)]
}
