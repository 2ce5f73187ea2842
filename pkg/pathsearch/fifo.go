package pathsearch

import (
	"netflow/pkg/apperror"
	"netflow/pkg/digraph"
)

// FIFO computes a shortest-path tree with the label-correcting FIFO
// method: a queue of nodes whose distance improved, relaxed until the
// queue drains.
//
// Negative arc weights are handled, which makes FIFO a valid engine over
// residual graphs whose dual arcs carry negated costs. Running time is
// pseudo-polynomial. Each call resets the tree and distance state.
type FIFO struct {
	ParentTree
	DistVec
	queue nodeQueue
}

// NewFIFO creates a FIFO label-correcting engine.
func NewFIFO() *FIFO {
	return &FIFO{}
}

// Solve computes distances and parents from source over the arcs accepted
// by valid, using weight as the per-arc length.
func (f *FIFO) Solve(g digraph.Topology, source digraph.NodeID, weight []int64, valid Filter) error {
	if !g.IsValidNode(source) {
		return apperror.Newf(apperror.CodeInvalidHandle, "fifo: source node %d is not valid", source)
	}
	if len(weight) < g.MaxNumArcs() {
		return apperror.New(apperror.CodePrecondition,
			"fifo: weight vector does not cover the arc space")
	}

	f.initTree(g)
	f.initDist(g)

	f.dist[source] = 0
	f.queue.reset()
	f.queue.push(source)

	for !f.queue.empty() {
		node := f.queue.pop()
		for _, e := range g.OutArcs(node) {
			if !valid(e) {
				continue
			}
			a, b := g.ArcEnds(e)
			dnew := f.dist[a] + weight[e]
			if f.dist[b] > dnew {
				f.dist[b] = dnew
				f.parent[b] = e
				f.queue.push(b)
			}
		}
	}
	return nil
}
