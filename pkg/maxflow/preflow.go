package maxflow

import (
	"math"

	"netflow/pkg/digraph"
	"netflow/pkg/pathsearch"
)

// distInf marks a node with no finite height label.
const distInf int64 = math.MaxInt64

// Preflow computes a maximum flow with the Goldberg-Tarjan preflow-push
// method.
//
// Height labels are initialized by a reverse BFS from the sink over
// admissible arcs; nodes that cannot reach the sink keep an infinite
// label. The source is lifted to |V| and its admissible outgoing arcs are
// saturated, after which active nodes (positive excess, not source or
// sink) are discharged from a FIFO queue: push where the height invariant
// distance[u] == distance[v]+1 holds, relabel to one above the lowest
// admissible neighbor when stuck. The flow value is the excess collected
// at the sink.
type Preflow struct {
	dist   []int64
	excess []int64
	queue  nodeQueue
}

// NewPreflow creates a preflow-push solver.
func NewPreflow() *Preflow {
	return &Preflow{}
}

// nodeQueue mirrors the slice-backed FIFO of the path engines.
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

// initDistance computes height labels by reverse BFS from dest over the
// arcs accepted by valid.
func (s *Preflow) initDistance(g digraph.Topology, dest digraph.NodeID, valid pathsearch.Filter) {
	n := g.MaxNumNodes()
	if cap(s.dist) < n {
		s.dist = make([]int64, n)
	}
	s.dist = s.dist[:n]
	for i := range s.dist {
		s.dist[i] = distInf
	}
	s.dist[dest] = 0

	s.queue.reset()
	s.queue.push(dest)
	for !s.queue.empty() {
		node := s.queue.pop()
		for _, e := range g.InArcs(node) {
			if !valid(e) {
				continue
			}
			a, b := g.ArcEnds(e)
			if s.dist[a] == distInf {
				s.dist[a] = s.dist[b] + 1
				s.queue.push(a)
			}
		}
	}
}

// Solve pushes the maximum source→dest flow over arcs accepted by valid
// and returns the excess accumulated at dest.
func (s *Preflow) Solve(g digraph.Topology, source, dest digraph.NodeID, residual []int64, valid pathsearch.Filter) (int64, error) {
	n := g.MaxNumNodes()
	if cap(s.excess) < n {
		s.excess = make([]int64, n)
	}
	s.excess = s.excess[:n]
	for i := range s.excess {
		s.excess[i] = 0
	}

	s.initDistance(g, dest, valid)

	var active nodeQueue

	push := func(e digraph.ArcID) {
		a, b := g.ArcEnds(e)
		delta := s.excess[a]
		if residual[e] < delta {
			delta = residual[e]
		}
		residual[e] -= delta
		residual[g.ArcDual(e)] += delta

		s.excess[a] -= delta
		s.excess[b] += delta

		if delta > 0 && s.excess[b] == delta {
			active.push(b)
		}
	}

	relabel := func(v digraph.NodeID) {
		hmin := distInf
		for _, e := range g.OutArcs(v) {
			if valid(e) && residual[e] > 0 {
				_, next := g.ArcEnds(e)
				if s.dist[next] < hmin {
					hmin = s.dist[next]
				}
			}
		}
		if hmin < distInf {
			s.dist[v] = hmin + 1
		}
	}

	discharge := func(a digraph.NodeID) {
		for {
			for _, e := range g.OutArcs(a) {
				if valid(e) && residual[e] > 0 {
					_, b := g.ArcEnds(e)
					if s.dist[a] == s.dist[b]+1 {
						push(e)
					}
				}
			}
			if s.excess[a] == 0 {
				break
			}
			relabel(a)
		}
	}

	s.excess[source] = Unlimited
	s.dist[source] = int64(g.NumNodes())

	for _, e := range g.OutArcs(source) {
		if valid(e) {
			push(e)
		}
	}

	for !active.empty() {
		node := active.pop()
		if node != dest && node != source {
			discharge(node)
		}
	}
	return s.excess[dest], nil
}
