package mincostflow

import (
	"netflow/pkg/digraph"
	"netflow/pkg/maxflow"
	"netflow/pkg/pathsearch"
)

// EdmondsKarp computes a min-cost max-flow by successive shortest paths:
// augment along a cheapest source→sink path in the residual graph under
// the original costs until the sink becomes unreachable.
//
// Residual dual arcs carry negated costs, so the injected engine must
// tolerate negative weights (FIFO or Bellman-Ford). Dijkstra is incorrect
// for this variant.
type EdmondsKarp struct {
	path pathsearch.ShortestPather
}

// NewEdmondsKarp creates a successive-shortest-path solver around the
// given (negative-tolerant) shortest-path engine.
func NewEdmondsKarp(path pathsearch.ShortestPather) *EdmondsKarp {
	return &EdmondsKarp{path: path}
}

// Solve pushes the min-cost maximum source→dest flow and returns its
// value.
func (s *EdmondsKarp) Solve(g digraph.Builder, source, dest digraph.NodeID, weight []int64, residual *[]int64) (int64, error) {
	res := *residual

	var sent int64
	for {
		err := s.path.Solve(g, source, weight, func(e digraph.ArcID) bool {
			return res[e] > 0
		})
		if err != nil {
			return sent, err
		}
		if !s.path.Reachable(dest) {
			break
		}

		path := s.path.Path(g, dest)

		k := maxflow.Unlimited
		for _, e := range path {
			if res[e] < k {
				k = res[e]
			}
		}
		for _, e := range path {
			res[e] -= k
			res[g.ArcDual(e)] += k
		}
		sent += k
	}
	return sent, nil
}
