package pathsearch

import (
	"netflow/pkg/apperror"
	"netflow/pkg/digraph"
)

// BellmanFord computes a shortest-path tree with classic relaxation
// sweeps over all arcs, terminating early once a sweep makes no update.
//
// Negative arc weights are handled. Negative cycles are NOT detected:
// callers must keep the admissible subgraph acyclic in weight space (the
// min-cost solvers guarantee this through reduced costs).
//
// Time complexity: O(V × E).
type BellmanFord struct {
	ParentTree
	DistVec
}

// NewBellmanFord creates a Bellman-Ford engine.
func NewBellmanFord() *BellmanFord {
	return &BellmanFord{}
}

// Solve computes distances and parents from source over the arcs accepted
// by valid, using weight as the per-arc length.
func (bf *BellmanFord) Solve(g digraph.Topology, source digraph.NodeID, weight []int64, valid Filter) error {
	if !g.IsValidNode(source) {
		return apperror.Newf(apperror.CodeInvalidHandle, "bellman-ford: source node %d is not valid", source)
	}
	if len(weight) < g.MaxNumArcs() {
		return apperror.New(apperror.CodePrecondition,
			"bellman-ford: weight vector does not cover the arc space")
	}

	bf.initTree(g)
	bf.initDist(g)

	bf.dist[source] = 0

	for i := 0; i < g.NumNodes(); i++ {
		updated := false
		for e := range g.Arcs() {
			if !valid(e) {
				continue
			}
			a, b := g.ArcEnds(e)
			if bf.dist[a] == Inf {
				continue
			}
			dnew := bf.dist[a] + weight[e]
			if bf.dist[b] > dnew {
				bf.dist[b] = dnew
				bf.parent[b] = e
				updated = true
			}
		}
		if !updated {
			break
		}
	}
	return nil
}
