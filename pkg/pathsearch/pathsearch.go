// Package pathsearch provides the path and distance engines that power the
// flow solvers: plain BFS, Goldberg-style distance labeling, FIFO
// label-correcting, Bellman-Ford and Dijkstra.
//
// All engines share one contract. A solve produces a parent tree (the
// incoming arc per reached node) and, where meaningful, a distance array
// from the given source. Admissibility of arcs is delegated to a caller
// predicate, which is how the solvers overlay the residual or the
// reduced-cost-admissible subgraph on the same topology. Path
// reconstruction walks parent pointers from the target back to the source
// and reverses, without recursion.
//
// Engines that tolerate negative arc weights (FIFO, Bellman-Ford) are the
// only valid choices where residual duals carry negated costs; Dijkstra
// requires non-negative admissible weights and reports NEGATIVE_EDGE
// otherwise.
package pathsearch

import (
	"math"

	"netflow/pkg/digraph"
)

// Inf marks an unreached node in a distance array.
const Inf int64 = math.MaxInt64

// Filter is an arc-admissibility predicate. Engines visit an arc only if
// the filter accepts it.
type Filter func(digraph.ArcID) bool

// AllArcs accepts every arc.
func AllArcs(digraph.ArcID) bool { return true }

// =============================================================================
// Composition interfaces
// =============================================================================

// PathSearcher finds source→dest paths over an admissible subgraph.
// Implementations may memoize state between calls for the same endpoint
// pair; Reset discards any such memo.
type PathSearcher interface {
	// Solve searches for a path and reports whether dest was reached.
	Solve(g digraph.Topology, source, dest digraph.NodeID, valid Filter) (bool, error)
	// Path returns the arcs of the found path in source→dest order.
	Path(g digraph.Topology, dest digraph.NodeID) []digraph.ArcID
	// Reset invalidates memoized state.
	Reset()
}

// ShortestPather computes a full shortest-path tree from a source under
// per-arc weights.
type ShortestPather interface {
	// Solve computes distances and parents from source. The weight vector
	// must cover the arc handle space.
	Solve(g digraph.Topology, source digraph.NodeID, weight []int64, valid Filter) error
	// Reachable reports whether v was reached by the last solve.
	Reachable(v digraph.NodeID) bool
	// Distance returns the distance label of v, or Inf.
	Distance(v digraph.NodeID) int64
	// DistanceVec returns the full distance array indexed by node handle.
	DistanceVec() []int64
	// Path returns the arcs of the tree path to dest in source→dest order.
	Path(g digraph.Topology, dest digraph.NodeID) []digraph.ArcID
}

// =============================================================================
// Parent tree
// =============================================================================

// ParentTree records, per node handle, the incoming arc on the search
// tree. Source and unreached nodes carry NoArc.
type ParentTree struct {
	parent []digraph.ArcID
}

// initTree resizes the tree to the graph's node handle space and clears it.
func (t *ParentTree) initTree(g digraph.Topology) {
	n := g.MaxNumNodes()
	if cap(t.parent) < n {
		t.parent = make([]digraph.ArcID, n)
	}
	t.parent = t.parent[:n]
	for i := range t.parent {
		t.parent[i] = digraph.NoArc
	}
}

// HasParent reports whether v has an incoming tree arc.
func (t *ParentTree) HasParent(v digraph.NodeID) bool {
	return t.parent[v] != digraph.NoArc
}

// Reachable reports whether v was reached by the last solve. The source
// itself has no parent and is not reported as reachable.
func (t *ParentTree) Reachable(v digraph.NodeID) bool {
	return t.HasParent(v)
}

// ParentArc returns the incoming tree arc of v, or NoArc.
func (t *ParentTree) ParentArc(v digraph.NodeID) digraph.ArcID {
	return t.parent[v]
}

// Path walks the parent pointers from dest back to the source and returns
// the arcs in source→dest order. An empty slice means dest is the source
// or was not reached.
func (t *ParentTree) Path(g digraph.Topology, dest digraph.NodeID) []digraph.ArcID {
	var path []digraph.ArcID
	for {
		e := t.parent[dest]
		if e == digraph.NoArc || !g.IsValidArc(e) {
			break
		}
		path = append(path, e)
		from, _ := g.ArcEnds(e)
		dest = from
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// =============================================================================
// Distance array
// =============================================================================

// DistVec is a distance array indexed by node handle.
type DistVec struct {
	dist []int64
}

// initDist resizes the array to the graph's node handle space and fills it
// with Inf.
func (d *DistVec) initDist(g digraph.Topology) {
	n := g.MaxNumNodes()
	if cap(d.dist) < n {
		d.dist = make([]int64, n)
	}
	d.dist = d.dist[:n]
	for i := range d.dist {
		d.dist[i] = Inf
	}
}

// Distance returns the distance label of v, or Inf if v was not reached.
func (d *DistVec) Distance(v digraph.NodeID) int64 {
	return d.dist[v]
}

// DistanceVec returns the backing distance array. The slice is owned by
// the engine and is overwritten by the next solve.
func (d *DistVec) DistanceVec() []int64 {
	return d.dist
}

// =============================================================================
// Node queue
// =============================================================================

// nodeQueue is a slice-backed FIFO queue of node handles, reused across
// traversals to avoid repeated allocations.
type nodeQueue struct {
	data []digraph.NodeID
	head int
}

func (q *nodeQueue) push(v digraph.NodeID) { q.data = append(q.data, v) }

func (q *nodeQueue) pop() digraph.NodeID {
	v := q.data[q.head]
	q.head++
	return v
}

func (q *nodeQueue) empty() bool { return q.head >= len(q.data) }

func (q *nodeQueue) reset() {
	q.data = q.data[:0]
	q.head = 0
}

// =============================================================================
// Utilities
// =============================================================================

// LowerBoundPower2 returns the largest power of two not exceeding n (and n
// itself for n ≤ 2). It is used to seed the Δ and ε thresholds of the
// scaling solvers.
func LowerBoundPower2(n int64) int64 {
	if n <= 2 {
		return n
	}
	for n != n&(-n) {
		n -= n & (-n)
	}
	return n
}
