package mincostflow

import (
	"netflow/pkg/digraph"
	"netflow/pkg/maxflow"
	"netflow/pkg/pathsearch"
)

// PrimalDual computes a min-cost max-flow by alternating a shortest-path
// computation under reduced costs with a maximum flow restricted to the
// admissible (zero reduced cost) subgraph.
//
// Each round folds the distance labels into the reduced costs, which
// restores their non-negativity on residual arcs. The first round may see
// negative reduced costs, so the injected shortest-path engine must
// tolerate them — unless, as with reduced costs starting at the original
// non-negative weights, Dijkstra is valid from the start.
type PrimalDual struct {
	path pathsearch.ShortestPather
	flow maxflow.Solver

	reduced []int64
}

// NewPrimalDual creates a primal-dual solver around the given
// shortest-path engine and max-flow backend.
func NewPrimalDual(path pathsearch.ShortestPather, flow maxflow.Solver) *PrimalDual {
	return &PrimalDual{path: path, flow: flow}
}

// Solve pushes the min-cost maximum source→dest flow and returns its
// value.
func (s *PrimalDual) Solve(g digraph.Builder, source, dest digraph.NodeID, weight []int64, residual *[]int64) (int64, error) {
	res := *residual

	// Private reduced-cost copy; the caller's cost vector stays intact.
	s.reduced = append(s.reduced[:0], weight...)

	var sent int64
	for {
		err := s.path.Solve(g, source, s.reduced, func(e digraph.ArcID) bool {
			return res[e] > 0
		})
		if err != nil {
			return sent, err
		}
		if !s.path.Reachable(dest) {
			break
		}

		dist := s.path.DistanceVec()
		for e := range g.Arcs() {
			a, b := g.ArcEnds(e)
			if dist[a] < pathsearch.Inf && dist[b] < pathsearch.Inf {
				s.reduced[e] += dist[a] - dist[b]
			}
		}

		f, err := s.flow.Solve(g, source, dest, res, func(e digraph.ArcID) bool {
			return s.reduced[e] == 0
		})
		if err != nil {
			return sent, err
		}
		sent += f
	}
	return sent, nil
}
