// Package mincostflow provides exact min-cost max-flow solvers: the
// Edmonds-Karp successive-shortest-path method, the primal-dual method,
// capacity scaling and cost scaling.
//
// All solvers share one contract. The caller supplies the graph, source
// and sink, an immutable per-arc cost vector (the forward arc carries the
// user cost, its dual the negation) and a pointer to the mutable
// residual-capacity vector. Each solver computes a flow that is maximum
// among all source→sink flows and of minimum total cost among the maximum
// ones, mutates the residual vector in place and returns the flow value;
// the cost is read off-line by the caller as Σ cost(a)·FlowAt(a).
//
// The residual vector is passed by pointer because the capacity-scaling
// solver temporarily grows the graph with a super-source and must extend
// the caller's vector to cover the new arc handles.
package mincostflow

import (
	"sort"

	"netflow/pkg/digraph"
)

// Solver is the common entry point of the min-cost max-flow family.
// Only the capacity-scaling solver mutates the graph (it restores it
// before returning); the others use the Builder as a plain Topology.
type Solver interface {
	Solve(g digraph.Builder, source, dest digraph.NodeID, weight []int64, residual *[]int64) (int64, error)
}

// nodeSet is an ordered set of node handles. The scaling solvers use it
// for their excess (S/T) and active sets, where "pick any" is resolved
// deterministically as "pick the smallest".
type nodeSet struct {
	v []digraph.NodeID
}

func (s *nodeSet) insert(n digraph.NodeID) {
	i := sort.Search(len(s.v), func(i int) bool { return s.v[i] >= n })
	if i < len(s.v) && s.v[i] == n {
		return
	}
	s.v = append(s.v, 0)
	copy(s.v[i+1:], s.v[i:])
	s.v[i] = n
}

func (s *nodeSet) remove(n digraph.NodeID) {
	i := sort.Search(len(s.v), func(i int) bool { return s.v[i] >= n })
	if i < len(s.v) && s.v[i] == n {
		s.v = append(s.v[:i], s.v[i+1:]...)
	}
}

func (s *nodeSet) min() digraph.NodeID { return s.v[0] }

func (s *nodeSet) empty() bool { return len(s.v) == 0 }

func (s *nodeSet) members() []digraph.NodeID { return s.v }

// grow extends vec with zeros until it has at least n entries.
func grow(vec []int64, n int) []int64 {
	for len(vec) < n {
		vec = append(vec, 0)
	}
	return vec
}
