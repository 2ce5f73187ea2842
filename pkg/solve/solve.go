// Package solve provides the high-level entry point of the toolkit: a
// named-algorithm registry over the core solver packages, an instance
// model for drivers, and post-solve verification of the flow invariants.
package solve

import (
	"netflow/pkg/apperror"
	"netflow/pkg/cache"
	"netflow/pkg/digraph"
	"netflow/pkg/maxflow"
	"netflow/pkg/mincostflow"
	"netflow/pkg/pathsearch"
)

// Arc describes one input arc of an instance.
type Arc struct {
	From     int64
	To       int64
	Capacity int64
	Cost     int64
}

// Instance is a flow problem handed in by a driver: external node ids,
// arcs in input order, and the source/sink pair.
type Instance struct {
	Source int64
	Sink   int64
	Arcs   []Arc
}

// Hash returns the canonical cache hash of the instance.
func (in *Instance) Hash() string {
	specs := make([]cache.ArcSpec, len(in.Arcs))
	for i, a := range in.Arcs {
		specs[i] = cache.ArcSpec{From: a.From, To: a.To, Capacity: a.Capacity, Cost: a.Cost}
	}
	return cache.InstanceHash(in.Source, in.Sink, specs)
}

// Built is an instance lowered onto the graph substrate: the digraph with
// dual pairs, the parallel capacity and cost vectors sized to the arc
// handle space, and the resolved source/sink handles. Arc i of the input
// is registered under key i.
type Built struct {
	Graph    *digraph.Graph[int64, int]
	Capacity []int64
	Weight   []int64
	Source   digraph.NodeID
	Sink     digraph.NodeID
}

// Build lowers an instance onto the graph substrate. The forward arc of
// each dual pair carries the input capacity and cost; the reverse starts
// at zero capacity and the negated cost.
func Build(in *Instance) (*Built, error) {
	g := digraph.New[int64, int]()

	g.AddNode(in.Source)
	g.AddNode(in.Sink)

	var capacity, weight []int64
	for i, a := range in.Arcs {
		if a.Capacity < 0 {
			return nil, apperror.Newf(apperror.CodeNegativeCapacity,
				"solve: arc %d has negative capacity %d", i, a.Capacity)
		}
		arc, dual, err := g.AddArc(a.From, a.To, i)
		if err != nil {
			return nil, err
		}

		for len(capacity) < g.MaxNumArcs() {
			capacity = append(capacity, 0)
			weight = append(weight, 0)
		}
		capacity[arc] = a.Capacity
		capacity[dual] = 0
		weight[arc] = a.Cost
		weight[dual] = -a.Cost
	}

	return &Built{
		Graph:    g,
		Capacity: capacity,
		Weight:   weight,
		Source:   g.GetNode(in.Source),
		Sink:     g.GetNode(in.Sink),
	}, nil
}

// Flows reads back the per-input-arc flows from the residual vector.
func (b *Built) Flows(residual []int64) []int64 {
	flows := make([]int64, 0, b.Graph.MaxNumArcs()/2)
	for i := 0; ; i++ {
		arc := b.Graph.GetArc(i)
		if arc == digraph.NoArc {
			break
		}
		flows = append(flows, maxflow.FlowAt(b.Graph, arc, residual))
	}
	return flows
}

// Cost computes the total cost of the current flow against the input
// costs.
func (b *Built) Cost(residual []int64) int64 {
	var cost int64
	for i := 0; ; i++ {
		arc := b.Graph.GetArc(i)
		if arc == digraph.NoArc {
			break
		}
		cost += b.Weight[arc] * maxflow.FlowAt(b.Graph, arc, residual)
	}
	return cost
}

// =============================================================================
// Algorithm registry
// =============================================================================

// Max-flow algorithm names.
const (
	MaxFlowAugmentingBFS      = "augmenting-bfs"
	MaxFlowAugmentingLabeling = "augmenting-labeling"
	MaxFlowScalingBFS         = "scaling-bfs"
	MaxFlowScalingLabeling    = "scaling-labeling"
	MaxFlowPreflow            = "preflow"
)

// Min-cost max-flow algorithm names.
const (
	MinCostEdmondsKarpFIFO        = "edmonds-karp-fifo"
	MinCostEdmondsKarpBellmanFord = "edmonds-karp-bellman-ford"
	MinCostPrimalDualFIFO         = "primal-dual-fifo"
	MinCostPrimalDualBellmanFord  = "primal-dual-bellman-ford"
	MinCostPrimalDualDijkstra     = "primal-dual-dijkstra"
	MinCostCapacityScaling        = "capacity-scaling"
	MinCostCostScaling            = "cost-scaling"
)

// MaxFlowAlgorithms lists the registered max-flow algorithm names in a
// stable order.
func MaxFlowAlgorithms() []string {
	return []string{
		MaxFlowAugmentingBFS,
		MaxFlowAugmentingLabeling,
		MaxFlowScalingBFS,
		MaxFlowScalingLabeling,
		MaxFlowPreflow,
	}
}

// MinCostAlgorithms lists the registered min-cost max-flow algorithm
// names in a stable order.
func MinCostAlgorithms() []string {
	return []string{
		MinCostEdmondsKarpFIFO,
		MinCostEdmondsKarpBellmanFord,
		MinCostPrimalDualFIFO,
		MinCostPrimalDualBellmanFord,
		MinCostPrimalDualDijkstra,
		MinCostCapacityScaling,
		MinCostCostScaling,
	}
}

// NewMaxFlow constructs a max-flow solver by name. Solvers are stateful
// scratch-space owners: construct one per goroutine.
func NewMaxFlow(name string) (maxflow.Solver, error) {
	switch name {
	case MaxFlowAugmentingBFS:
		return maxflow.NewAugmentingPath(pathsearch.NewBFS()), nil
	case MaxFlowAugmentingLabeling:
		return maxflow.NewAugmentingPath(pathsearch.NewLabeling()), nil
	case MaxFlowScalingBFS:
		return maxflow.NewScaling(pathsearch.NewBFS()), nil
	case MaxFlowScalingLabeling:
		return maxflow.NewScaling(pathsearch.NewLabeling()), nil
	case MaxFlowPreflow:
		return maxflow.NewPreflow(), nil
	default:
		return nil, apperror.Newf(apperror.CodeInvalidAlgorithm,
			"solve: unknown max-flow algorithm %q", name)
	}
}

// NewMinCost constructs a min-cost max-flow solver by name. The primal-dual
// and capacity-scaling variants use the labeling augmenting-path max-flow
// as their backend, the fastest general-purpose choice of the family;
// cost scaling uses the capacity-scaling max-flow with the labeling engine.
func NewMinCost(name string) (mincostflow.Solver, error) {
	backend := func() maxflow.Solver {
		return maxflow.NewAugmentingPath(pathsearch.NewLabeling())
	}

	switch name {
	case MinCostEdmondsKarpFIFO:
		return mincostflow.NewEdmondsKarp(pathsearch.NewFIFO()), nil
	case MinCostEdmondsKarpBellmanFord:
		return mincostflow.NewEdmondsKarp(pathsearch.NewBellmanFord()), nil
	case MinCostPrimalDualFIFO:
		return mincostflow.NewPrimalDual(pathsearch.NewFIFO(), backend()), nil
	case MinCostPrimalDualBellmanFord:
		return mincostflow.NewPrimalDual(pathsearch.NewBellmanFord(), backend()), nil
	case MinCostPrimalDualDijkstra:
		// Valid because reduced costs start at the (non-negative)
		// input costs and stay non-negative after potential updates.
		return mincostflow.NewPrimalDual(pathsearch.NewDijkstra(), backend()), nil
	case MinCostCapacityScaling:
		return mincostflow.NewCapacityScaling(pathsearch.NewFIFO(), backend()), nil
	case MinCostCostScaling:
		return mincostflow.NewCostScaling(maxflow.NewScaling(pathsearch.NewLabeling())), nil
	default:
		return nil, apperror.Newf(apperror.CodeInvalidAlgorithm,
			"solve: unknown min-cost algorithm %q", name)
	}
}

// Recommend suggests an algorithm based on instance shape.
func Recommend(nodes, arcs int, needMinCost bool) string {
	if needMinCost {
		return MinCostCostScaling
	}
	maxArcs := nodes * (nodes - 1)
	if maxArcs > 0 && nodes > 100 && float64(arcs)/float64(maxArcs) > 0.5 {
		return MaxFlowPreflow
	}
	if nodes > 100 {
		return MaxFlowScalingLabeling
	}
	return MaxFlowAugmentingBFS
}

// =============================================================================
// Verification
// =============================================================================

// Verify checks the flow invariants after a solve: non-negative
// residuals, pairwise antisymmetry against the original capacities,
// conservation at every internal node, and source/sink balance equal to
// the reported flow.
func Verify(b *Built, original, residual []int64, flow int64) error {
	g := b.Graph

	for a := range g.Arcs() {
		if residual[a] < 0 {
			return apperror.Newf(apperror.CodeNegativeFlow,
				"verify: negative residual on arc %d", a)
		}
		d := g.ArcDual(a)
		if residual[a]+residual[d] != original[a]+original[d] {
			return apperror.Newf(apperror.CodeFlowViolation,
				"verify: arc %d and its dual do not preserve capacity", a)
		}
	}

	for v := range g.Nodes() {
		// Every arc entering v has its dual in OutArcs(v), where it counts
		// the negated flow, so OutArcs alone give outflow minus inflow.
		var balance int64
		for _, a := range g.OutArcs(v) {
			balance += original[a] - residual[a]
		}

		switch v {
		case b.Source:
			if balance != flow {
				return apperror.Newf(apperror.CodeFlowImbalance,
					"verify: source balance %d does not match flow %d", balance, flow)
			}
		case b.Sink:
			if balance != -flow {
				return apperror.Newf(apperror.CodeFlowImbalance,
					"verify: sink balance %d does not match flow %d", balance, flow)
			}
		default:
			if balance != 0 {
				return apperror.Newf(apperror.CodeConservationViolation,
					"verify: node %d creates or destroys flow", v)
			}
		}
	}
	return nil
}
