package pathsearch

import (
	"netflow/pkg/apperror"
	"netflow/pkg/digraph"
)

// BFS finds an unweighted shortest source→dest path.
//
// Each call resets the tree and distance state; there is nothing to
// memoize, so Reset is a no-op. Distances are hop counts.
//
// Time complexity: O(V + E).
type BFS struct {
	ParentTree
	DistVec
	queue nodeQueue
}

// NewBFS creates a BFS path searcher.
func NewBFS() *BFS {
	return &BFS{}
}

// Reset implements PathSearcher. BFS carries no memo between calls.
func (b *BFS) Reset() {}

// Solve searches for a source→dest path over the arcs accepted by valid
// and reports whether dest was reached. The search stops as soon as dest
// is dequeued.
func (b *BFS) Solve(g digraph.Topology, source, dest digraph.NodeID, valid Filter) (bool, error) {
	if !g.IsValidNode(source) {
		return false, apperror.Newf(apperror.CodeInvalidHandle, "bfs: source node %d is not valid", source)
	}
	if !g.IsValidNode(dest) {
		return false, apperror.Newf(apperror.CodeInvalidHandle, "bfs: destination node %d is not valid", dest)
	}

	b.initTree(g)
	b.initDist(g)

	b.dist[source] = 0
	b.queue.reset()
	b.queue.push(source)

	for !b.queue.empty() {
		node := b.queue.pop()
		if node == dest {
			return true, nil
		}
		for _, e := range g.OutArcs(node) {
			if !valid(e) {
				continue
			}
			a, to := g.ArcEnds(e)
			if b.dist[to] == Inf {
				b.dist[to] = b.dist[a] + 1
				b.parent[to] = e
				b.queue.push(to)
			}
		}
	}
	return false, nil
}
