package pathsearch

import (
	"container/heap"

	"netflow/pkg/apperror"
	"netflow/pkg/digraph"
)

// Dijkstra computes a shortest-path tree with a binary heap.
//
// Precondition: every admissible arc weight is non-negative. The caller's
// filter must exclude arcs whose effective weight would be negative (the
// min-cost solvers do this via reduced costs); a negative weight seen
// during relaxation aborts the solve with NEGATIVE_EDGE.
//
// Time complexity: O((V + E) log V).
type Dijkstra struct {
	ParentTree
	DistVec
	visited []bool
	pq      distHeap
}

// NewDijkstra creates a Dijkstra engine.
func NewDijkstra() *Dijkstra {
	return &Dijkstra{}
}

// Solve computes distances and parents from source over the arcs accepted
// by valid, using weight as the per-arc length.
func (d *Dijkstra) Solve(g digraph.Topology, source digraph.NodeID, weight []int64, valid Filter) error {
	if !g.IsValidNode(source) {
		return apperror.Newf(apperror.CodeInvalidHandle, "dijkstra: source node %d is not valid", source)
	}
	if len(weight) < g.MaxNumArcs() {
		return apperror.New(apperror.CodePrecondition,
			"dijkstra: weight vector does not cover the arc space")
	}

	d.initTree(g)
	d.initDist(g)

	n := g.MaxNumNodes()
	if cap(d.visited) < n {
		d.visited = make([]bool, n)
	}
	d.visited = d.visited[:n]
	for i := range d.visited {
		d.visited[i] = false
	}

	d.dist[source] = 0
	d.pq = d.pq[:0]
	heap.Push(&d.pq, distEntry{dist: 0, node: source})

	for d.pq.Len() > 0 {
		top := heap.Pop(&d.pq).(distEntry)
		if d.visited[top.node] {
			continue
		}
		d.visited[top.node] = true

		for _, e := range g.OutArcs(top.node) {
			if !valid(e) {
				continue
			}
			_, b := g.ArcEnds(e)
			if weight[e] < 0 {
				return apperror.Newf(apperror.CodeNegativeEdge,
					"dijkstra: negative weight on arc %d", e)
			}
			dnew := top.dist + weight[e]
			if d.dist[b] > dnew {
				d.dist[b] = dnew
				d.parent[b] = e
				heap.Push(&d.pq, distEntry{dist: dnew, node: b})
			}
		}
	}
	return nil
}

// distEntry is a (distance, node) pair ordered by distance, with the node
// handle as tiebreaker for deterministic pops.
type distEntry struct {
	dist int64
	node digraph.NodeID
}

type distHeap []distEntry

func (h distHeap) Len() int { return len(h) }

func (h distHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].node < h[j].node
}

func (h distHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *distHeap) Push(x any) { *h = append(*h, x.(distEntry)) }

func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
