package maxflow

import (
	"netflow/pkg/digraph"
	"netflow/pkg/pathsearch"
)

// AugmentingPath computes a maximum flow by repeatedly finding a
// source→dest path in the residual graph and pushing its bottleneck.
//
// The path engine is injected: with BFS this is Edmonds-Karp in
// O(V × E²); with the labeling engine the persistent distance labels give
// a better amortized bound across augmentations.
type AugmentingPath struct {
	search pathsearch.PathSearcher
}

// NewAugmentingPath creates an augmenting-path solver around the given
// path engine.
func NewAugmentingPath(search pathsearch.PathSearcher) *AugmentingPath {
	return &AugmentingPath{search: search}
}

// Solve pushes the maximum source→dest flow over arcs with positive
// residual accepted by valid and returns the total sent.
func (s *AugmentingPath) Solve(g digraph.Topology, source, dest digraph.NodeID, residual []int64, valid pathsearch.Filter) (int64, error) {
	s.search.Reset()

	var sent int64
	for {
		found, err := s.search.Solve(g, source, dest, func(e digraph.ArcID) bool {
			return residual[e] > 0 && valid(e)
		})
		if err != nil {
			return sent, err
		}
		if !found {
			break
		}

		path := s.search.Path(g, dest)

		k := Unlimited
		for _, e := range path {
			if residual[e] < k {
				k = residual[e]
			}
		}
		for _, e := range path {
			residual[e] -= k
			residual[g.ArcDual(e)] += k
		}
		sent += k
	}
	return sent, nil
}
