package maxflow

import (
	"netflow/pkg/digraph"
	"netflow/pkg/pathsearch"
)

// Scaling computes a maximum flow by capacity scaling: a threshold Δ
// starts at the largest power of two not exceeding the source's best
// outgoing residual, only arcs with residual ≥ Δ are admissible, and
// every augmentation pushes exactly Δ units. When no path exists at the
// current threshold, Δ halves and the path engine's memo is reset (its
// labels were computed against the old admissibility).
//
// Guarantees O(E² log U) augmentations for integer capacities bounded
// by U.
type Scaling struct {
	search pathsearch.PathSearcher
}

// NewScaling creates a capacity-scaling solver around the given path
// engine.
func NewScaling(search pathsearch.PathSearcher) *Scaling {
	return &Scaling{search: search}
}

// Solve pushes the maximum source→dest flow over arcs accepted by valid
// and returns the total sent.
func (s *Scaling) Solve(g digraph.Topology, source, dest digraph.NodeID, residual []int64, valid pathsearch.Filter) (int64, error) {
	s.search.Reset()

	var sent int64

	capFlow := int64(1)
	for _, e := range g.OutArcs(source) {
		if residual[e] > capFlow {
			capFlow = residual[e]
		}
	}
	capFlow = pathsearch.LowerBoundPower2(capFlow)

	for capFlow > 0 {
		found, err := s.search.Solve(g, source, dest, func(e digraph.ArcID) bool {
			return residual[e] >= capFlow && valid(e)
		})
		if err != nil {
			return sent, err
		}
		if !found {
			capFlow /= 2
			s.search.Reset()
			continue
		}

		path := s.search.Path(g, dest)
		for _, e := range path {
			residual[e] -= capFlow
			residual[g.ArcDual(e)] += capFlow
		}
		sent += capFlow
	}
	return sent, nil
}
