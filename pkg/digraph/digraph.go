package digraph

import (
	"iter"

	"netflow/pkg/apperror"
	"netflow/pkg/arena"
)

// =============================================================================
// Records
// =============================================================================

// arcRecord holds the endpoints of an arc and the handle of its dual.
type arcRecord struct {
	from, to NodeID
	dual     ArcID
}

// nodeRecord holds the incidence lists of a node.
type nodeRecord struct {
	out []ArcID
	in  []ArcID
}

// rmArc removes arc from both incidence lists by swapping with the last
// entry. Incidence order is therefore disturbed by erasure, exactly like
// insertion order is preserved by construction.
func (n *nodeRecord) rmArc(arc ArcID) {
	rm := func(v []ArcID) []ArcID {
		for i, a := range v {
			if a == arc {
				v[i] = v[len(v)-1]
				return v[:len(v)-1]
			}
		}
		return v
	}
	n.out = rm(n.out)
	n.in = rm(n.in)
}

// =============================================================================
// Graph
// =============================================================================

// Graph is a directed graph with dual arcs to simulate a residual network.
// It stores only topological information; capacities and costs live in
// caller-owned vectors indexed by arc handle.
//
// N and A are caller-supplied external key types for nodes and arcs. Keys
// are optional: nodes and arcs created through NewNode/NewArc are
// anonymous, and the reverse arc of a dual pair never carries a key.
//
// Graph is not safe for concurrent mutation.
type Graph[N comparable, A comparable] struct {
	arcs  arena.Arena[arcRecord]
	nodes arena.Arena[nodeRecord]

	arcIndex  map[A]ArcID
	arcKeys   []A
	arcHasKey []bool

	nodeIndex  map[N]NodeID
	nodeKeys   []N
	nodeHasKey []bool
}

// New creates an empty graph.
func New[N comparable, A comparable]() *Graph[N, A] {
	return &Graph[N, A]{
		arcIndex:  make(map[A]ArcID),
		nodeIndex: make(map[N]NodeID),
	}
}

// =============================================================================
// Validity and counts
// =============================================================================

// IsValidNode reports whether n refers to a live node.
func (g *Graph[N, A]) IsValidNode(n NodeID) bool {
	return g.nodes.IsValid(int(n))
}

// IsValidArc reports whether a refers to a live arc.
func (g *Graph[N, A]) IsValidArc(a ArcID) bool {
	return g.arcs.IsValid(int(a))
}

// NumNodes returns the number of live nodes.
func (g *Graph[N, A]) NumNodes() int { return g.nodes.Len() }

// NumArcs returns the number of live arcs.
func (g *Graph[N, A]) NumArcs() int { return g.arcs.Len() }

// MaxNumNodes returns the size of the node handle space. Per-node vectors
// (distances, excess, potentials) must be sized to at least this value.
func (g *Graph[N, A]) MaxNumNodes() int { return g.nodes.Cap() }

// MaxNumArcs returns the size of the arc handle space. Per-arc vectors
// (capacity, cost) must be sized to at least this value.
func (g *Graph[N, A]) MaxNumArcs() int { return g.arcs.Cap() }

// Nodes iterates the live node handles in ascending order.
func (g *Graph[N, A]) Nodes() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for h := range g.nodes.Handles() {
			if !yield(NodeID(h)) {
				return
			}
		}
	}
}

// Arcs iterates the live arc handles in ascending order.
func (g *Graph[N, A]) Arcs() iter.Seq[ArcID] {
	return func(yield func(ArcID) bool) {
		for h := range g.arcs.Handles() {
			if !yield(ArcID(h)) {
				return
			}
		}
	}
}

// =============================================================================
// Accessors
// =============================================================================

// OutArcs returns the arcs leaving n in insertion order, or nil if n is
// invalid. The returned slice is owned by the graph; callers must not
// modify it.
func (g *Graph[N, A]) OutArcs(n NodeID) []ArcID {
	if !g.IsValidNode(n) {
		return nil
	}
	return g.nodes.Get(int(n)).out
}

// InArcs returns the arcs entering n in insertion order, or nil if n is
// invalid.
func (g *Graph[N, A]) InArcs(n NodeID) []ArcID {
	if !g.IsValidNode(n) {
		return nil
	}
	return g.nodes.Get(int(n)).in
}

// ArcEnds returns the endpoints (from, to) of a. The handle must be valid.
func (g *Graph[N, A]) ArcEnds(a ArcID) (NodeID, NodeID) {
	rec := g.arcs.Get(int(a))
	return rec.from, rec.to
}

// ArcDual returns the dual arc of a. The handle must be valid.
func (g *Graph[N, A]) ArcDual(a ArcID) ArcID {
	return g.arcs.Get(int(a)).dual
}

// =============================================================================
// Anonymous construction
// =============================================================================

// NewNode creates a node without an external key and returns its handle.
func (g *Graph[N, A]) NewNode() NodeID {
	h := g.nodes.Insert(nodeRecord{})
	g.resizeNodeKeys()
	g.nodeHasKey[h] = false
	return NodeID(h)
}

// NewArc creates an arc from a to b without a dual and without an external
// key. Fails with INVALID_HANDLE if either endpoint is invalid.
func (g *Graph[N, A]) NewArc(a, b NodeID) (ArcID, error) {
	if !g.IsValidNode(a) || !g.IsValidNode(b) {
		return NoArc, apperror.Newf(apperror.CodeInvalidHandle,
			"digraph: new arc with invalid end nodes %d -> %d", a, b)
	}
	h := ArcID(g.arcs.Insert(arcRecord{from: a, to: b, dual: NoArc}))
	g.resizeArcKeys()
	g.arcHasKey[h] = false

	g.nodes.Get(int(a)).out = append(g.nodes.Get(int(a)).out, h)
	g.nodes.Get(int(b)).in = append(g.nodes.Get(int(b)).in, h)
	return h, nil
}

// SetDual explicitly links a pair of arcs as each other's dual.
func (g *Graph[N, A]) SetDual(a1, a2 ArcID) error {
	if !g.IsValidArc(a1) || !g.IsValidArc(a2) {
		return apperror.Newf(apperror.CodeInvalidHandle,
			"digraph: set dual on invalid arcs %d, %d", a1, a2)
	}
	g.arcs.Get(int(a1)).dual = a2
	g.arcs.Get(int(a2)).dual = a1
	return nil
}

// =============================================================================
// Keyed construction
// =============================================================================

// AddNode returns the node registered under key, creating it if absent.
func (g *Graph[N, A]) AddNode(key N) NodeID {
	if n, ok := g.nodeIndex[key]; ok && g.IsValidNode(n) {
		return n
	}
	n := g.NewNode()
	g.nodeKeys[n] = key
	g.nodeHasKey[n] = true
	g.nodeIndex[key] = n
	return n
}

// AddArc creates the dual pair for an arc from the node keyed a to the
// node keyed b, creating the endpoints if missing. The forward arc is
// registered under key; the reverse arc stays anonymous. Fails with
// DUPLICATE_ID if key is already bound.
func (g *Graph[N, A]) AddArc(a, b N, key A) (ArcID, ArcID, error) {
	na := g.AddNode(a)
	nb := g.AddNode(b)

	if arc := g.GetArc(key); g.IsValidArc(arc) {
		return NoArc, NoArc, apperror.Newf(apperror.CodeDuplicateID,
			"digraph: arc key already exists")
	}

	arc1, err := g.NewArc(na, nb)
	if err != nil {
		return NoArc, NoArc, err
	}
	arc2, err := g.NewArc(nb, na)
	if err != nil {
		return NoArc, NoArc, err
	}
	if err := g.SetDual(arc1, arc2); err != nil {
		return NoArc, NoArc, err
	}

	g.arcKeys[arc1] = key
	g.arcHasKey[arc1] = true
	g.arcIndex[key] = arc1
	return arc1, arc2, nil
}

// =============================================================================
// Key translation
// =============================================================================

// HasNodeKey reports whether node n carries an external key.
func (g *Graph[N, A]) HasNodeKey(n NodeID) bool {
	return g.IsValidNode(n) && g.nodeHasKey[n]
}

// HasArcKey reports whether arc a carries an external key.
func (g *Graph[N, A]) HasArcKey(a ArcID) bool {
	return g.IsValidArc(a) && g.arcHasKey[a]
}

// GetNode returns the handle registered under key, or NoNode.
func (g *Graph[N, A]) GetNode(key N) NodeID {
	if n, ok := g.nodeIndex[key]; ok {
		return n
	}
	return NoNode
}

// GetArc returns the forward-arc handle registered under key, or NoArc.
func (g *Graph[N, A]) GetArc(key A) ArcID {
	if a, ok := g.arcIndex[key]; ok {
		return a
	}
	return NoArc
}

// NodeKeyOf returns the external key of node n.
func (g *Graph[N, A]) NodeKeyOf(n NodeID) (N, error) {
	var zero N
	if !g.IsValidNode(n) {
		return zero, apperror.Newf(apperror.CodeInvalidHandle, "digraph: invalid node %d", n)
	}
	if !g.nodeHasKey[n] {
		return zero, apperror.Newf(apperror.CodeMissingID, "digraph: node %d has no key", n)
	}
	return g.nodeKeys[n], nil
}

// ArcKeyOf returns the external key of arc a.
func (g *Graph[N, A]) ArcKeyOf(a ArcID) (A, error) {
	var zero A
	if !g.IsValidArc(a) {
		return zero, apperror.Newf(apperror.CodeInvalidHandle, "digraph: invalid arc %d", a)
	}
	if !g.arcHasKey[a] {
		return zero, apperror.Newf(apperror.CodeMissingID, "digraph: arc %d has no key", a)
	}
	return g.arcKeys[a], nil
}

// =============================================================================
// Erasure
// =============================================================================

// EraseArc erases a single arc: it disappears from the incidence lists of
// both endpoints and its key binding, if any, is dropped. The dual arc is
// left untouched. Erasing an invalid handle is a no-op.
func (g *Graph[N, A]) EraseArc(a ArcID) {
	if !g.IsValidArc(a) {
		return
	}
	from, to := g.ArcEnds(a)
	g.nodes.Get(int(from)).rmArc(a)
	g.nodes.Get(int(to)).rmArc(a)

	if g.arcHasKey[a] {
		delete(g.arcIndex, g.arcKeys[a])
	}
	g.arcs.Erase(int(a))
	g.resizeArcKeys()
}

// EraseNode erases a node together with every incident arc. Erasing an
// invalid handle is a no-op.
func (g *Graph[N, A]) EraseNode(n NodeID) {
	if !g.IsValidNode(n) {
		return
	}
	rec := g.nodes.Get(int(n))
	incident := make([]ArcID, 0, len(rec.in)+len(rec.out))
	incident = append(incident, rec.in...)
	incident = append(incident, rec.out...)
	for _, a := range incident {
		g.EraseArc(a)
	}

	if g.nodeHasKey[n] {
		delete(g.nodeIndex, g.nodeKeys[n])
	}
	g.nodes.Erase(int(n))
	g.resizeNodeKeys()
}

// RemoveNode erases the node registered under key, if any.
func (g *Graph[N, A]) RemoveNode(key N) {
	n := g.GetNode(key)
	if !g.IsValidNode(n) {
		return
	}
	delete(g.nodeIndex, key)
	g.EraseNode(n)
}

// RemoveArc erases the dual pair registered under key, if any.
func (g *Graph[N, A]) RemoveArc(key A) {
	a := g.GetArc(key)
	if !g.IsValidArc(a) {
		return
	}
	delete(g.arcIndex, key)
	dual := g.ArcDual(a)
	g.EraseArc(a)
	g.EraseArc(dual)
}

// =============================================================================
// Internal
// =============================================================================

// resizeNodeKeys keeps the key side tables aligned with the node arena.
func (g *Graph[N, A]) resizeNodeKeys() {
	n := g.nodes.Cap()
	for len(g.nodeKeys) < n {
		var zero N
		g.nodeKeys = append(g.nodeKeys, zero)
		g.nodeHasKey = append(g.nodeHasKey, false)
	}
	g.nodeKeys = g.nodeKeys[:n]
	g.nodeHasKey = g.nodeHasKey[:n]
}

// resizeArcKeys keeps the key side tables aligned with the arc arena.
func (g *Graph[N, A]) resizeArcKeys() {
	n := g.arcs.Cap()
	for len(g.arcKeys) < n {
		var zero A
		g.arcKeys = append(g.arcKeys, zero)
		g.arcHasKey = append(g.arcHasKey, false)
	}
	g.arcKeys = g.arcKeys[:n]
	g.arcHasKey = g.arcHasKey[:n]
}
