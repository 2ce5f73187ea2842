// Package digraph provides a directed graph with paired dual arcs, the
// topological substrate of the residual-network algorithms.
//
// Every arc of a flow network is stored together with its dual: the arc
// with reversed endpoints that accumulates the flow pushed through the
// forward arc. Algorithms never store capacities or costs inside the
// graph; they address caller-owned parallel vectors by arc handle, which
// is why handles are dense ints (see pkg/arena).
package digraph

import "iter"

// NodeID is a stable handle to a graph node. Handles are non-negative;
// NoNode marks "no node".
type NodeID int

// ArcID is a stable handle to a graph arc. Handles are non-negative;
// NoArc marks "no arc".
type ArcID int

// Sentinel handles.
const (
	NoNode NodeID = -1
	NoArc  ArcID  = -1
)

// Topology is the read-only view of a graph consumed by the path-search
// and flow solvers.
//
// Accessors assume well-formed handles: ArcEnds and ArcDual perform no
// validity checking, mirroring the fact that solvers walk only handles the
// graph itself produced. OutArcs and InArcs return nil for invalid nodes.
type Topology interface {
	// OutArcs returns the arcs leaving n, in insertion order.
	OutArcs(n NodeID) []ArcID
	// InArcs returns the arcs entering n, in insertion order.
	InArcs(n NodeID) []ArcID
	// ArcEnds returns the endpoints (from, to) of a valid arc.
	ArcEnds(a ArcID) (NodeID, NodeID)
	// ArcDual returns the dual (reverse) arc of a valid arc.
	ArcDual(a ArcID) ArcID
	// IsValidNode reports whether n refers to a live node.
	IsValidNode(n NodeID) bool
	// IsValidArc reports whether a refers to a live arc.
	IsValidArc(a ArcID) bool
	// Nodes iterates the live node handles in ascending order.
	Nodes() iter.Seq[NodeID]
	// Arcs iterates the live arc handles in ascending order.
	Arcs() iter.Seq[ArcID]
	// NumNodes returns the number of live nodes.
	NumNodes() int
	// NumArcs returns the number of live arcs.
	NumArcs() int
	// MaxNumNodes returns the node handle-space size; per-node vectors
	// must be sized to at least this.
	MaxNumNodes() int
	// MaxNumArcs returns the arc handle-space size; per-arc vectors
	// must be sized to at least this.
	MaxNumArcs() int
}

// Builder extends Topology with the mutations needed by solvers that
// temporarily grow the graph (the capacity-scaling min-cost solver's
// super-source technique).
type Builder interface {
	Topology
	// NewNode creates an anonymous node and returns its handle.
	NewNode() NodeID
	// NewArc creates an anonymous arc from a to b without a dual.
	NewArc(a, b NodeID) (ArcID, error)
	// SetDual links two arcs as each other's dual.
	SetDual(a1, a2 ArcID) error
	// EraseNode erases a node and all its incident arcs.
	EraseNode(n NodeID)
	// EraseArc erases a single arc. The dual is left in place.
	EraseArc(a ArcID)
}
