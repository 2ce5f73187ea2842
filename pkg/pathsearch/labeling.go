package pathsearch

import (
	"netflow/pkg/apperror"
	"netflow/pkg/digraph"
)

// Labeling finds source→dest paths with distance-to-sink labels, using
// advance/retreat/relabel moves in the style of Goldberg's shortest
// augmenting path method.
//
// Labels are initialized by a reverse BFS from dest and persist between
// calls for the same (source, dest) pair, which is what makes repeated
// augmentations cheaper than re-running plain BFS. The memo does not
// observe changes to the admissibility predicate: callers that change it
// between calls (for example when a scaling threshold halves) must call
// Reset.
//
// A frequency histogram of labels enables the gap heuristic: when the last
// node leaves a label value, no augmenting path can cross that value and
// the search terminates early.
type Labeling struct {
	ParentTree
	DistVec

	lastSource digraph.NodeID
	lastDest   digraph.NodeID
	distFreq   []int
	queue      nodeQueue
}

// NewLabeling creates a labeling path searcher.
func NewLabeling() *Labeling {
	return &Labeling{lastSource: digraph.NoNode, lastDest: digraph.NoNode}
}

// Reset invalidates the memoized (source, dest) pair, forcing label
// re-initialization on the next Solve.
func (l *Labeling) Reset() {
	l.lastSource = digraph.NoNode
	l.lastDest = digraph.NoNode
}

// initialize computes distance-to-dest labels by reverse BFS and clears
// the label histogram.
func (l *Labeling) initialize(g digraph.Topology, valid Filter) {
	l.initTree(g)
	l.initDist(g)

	n := g.NumNodes() + 1
	if cap(l.distFreq) < n {
		l.distFreq = make([]int, n)
	}
	l.distFreq = l.distFreq[:n]
	for i := range l.distFreq {
		l.distFreq[i] = 0
	}

	l.dist[l.lastDest] = 0
	l.queue.reset()
	l.queue.push(l.lastDest)

	for !l.queue.empty() {
		node := l.queue.pop()
		for _, e := range g.InArcs(node) {
			if !valid(e) {
				continue
			}
			a, b := g.ArcEnds(e)
			dnew := l.dist[b] + 1
			if l.dist[a] == Inf {
				l.dist[a] = dnew
				if int(dnew) < len(l.distFreq) {
					l.distFreq[dnew]++
				}
				l.queue.push(a)
			}
		}
	}
}

// Solve searches for a source→dest path. Labels survive across calls for
// the same endpoints; the parent tree is rebuilt on every call.
func (l *Labeling) Solve(g digraph.Topology, source, dest digraph.NodeID, valid Filter) (bool, error) {
	if !g.IsValidNode(source) {
		return false, apperror.Newf(apperror.CodeInvalidHandle, "labeling: source node %d is not valid", source)
	}
	if !g.IsValidNode(dest) {
		return false, apperror.Newf(apperror.CodeInvalidHandle, "labeling: destination node %d is not valid", dest)
	}

	if l.lastSource != source || l.lastDest != dest {
		l.lastSource = source
		l.lastDest = dest
		l.initialize(g, valid)
	} else {
		l.initTree(g)
	}

	numNodes := int64(g.NumNodes())

	for current := source; l.dist[source] < numNodes && current != dest; {
		// advance
		advanced := false
		for _, e := range g.OutArcs(current) {
			_, next := g.ArcEnds(e)
			if valid(e) && l.dist[current] == l.dist[next]+1 {
				l.parent[next] = e
				current = next
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}

		// relabel
		minDist := numNodes + 10
		for _, e := range g.OutArcs(current) {
			_, next := g.ArcEnds(e)
			if valid(e) && l.dist[next] < minDist {
				minDist = l.dist[next]
			}
		}
		newDist := minDist + 1
		oldDist := l.dist[current]
		l.dist[current] = newDist
		if int(newDist) < len(l.distFreq) {
			l.distFreq[newDist]++
		}
		if int(oldDist) < len(l.distFreq) {
			l.distFreq[oldDist]--
			if l.distFreq[oldDist] == 0 {
				// gap: no path can cross the vacated label
				break
			}
		}

		// retreat
		if l.HasParent(current) {
			e := l.parent[current]
			from, _ := g.ArcEnds(e)
			current = from
		}
	}
	return l.HasParent(dest), nil
}
