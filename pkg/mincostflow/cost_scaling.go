package mincostflow

import (
	"netflow/pkg/digraph"
	"netflow/pkg/maxflow"
	"netflow/pkg/pathsearch"
)

// CostScaling computes a min-cost max-flow by ε-optimality cost scaling
// with push/relabel moves.
//
// The flow value is fixed first by an any-cost maximum flow. Reduced
// costs are then multiplied by |V| and ε starts at the largest power of
// two not exceeding the largest reduced cost. Each phase saturates every
// residual arc of negative reduced cost (establishing ε-optimality),
// collects nodes with positive excess into an active set and repeats:
// push min(excess, residual) on an outgoing arc with −ε ≤ w̄ < 0 and
// positive residual, or relabel by subtracting ε from the node potential
// (which shifts every incident reduced cost).
//
// The relabel is unconditional: it fires even when the node has no
// outgoing residual arc at all, and termination comes from ε halving to
// zero rather than from the textbook relabel applicability condition.
type CostScaling struct {
	flow maxflow.Solver

	reduced   []int64
	potential []int64
	excess    []int64
}

// NewCostScaling creates a cost-scaling solver around the given max-flow
// backend.
func NewCostScaling(flow maxflow.Solver) *CostScaling {
	return &CostScaling{flow: flow}
}

// Solve pushes the min-cost maximum source→dest flow and returns its
// value.
func (s *CostScaling) Solve(g digraph.Builder, source, dest digraph.NodeID, weight []int64, residual *[]int64) (int64, error) {
	res := *residual

	// Fix the flow value first, disregarding cost.
	total, err := s.flow.Solve(g, source, dest, res, pathsearch.AllArcs)
	if err != nil {
		return 0, err
	}

	s.reduced = append(s.reduced[:0], weight...)
	s.potential = grow(s.potential[:0], g.MaxNumNodes())
	s.excess = grow(s.excess[:0], g.MaxNumNodes())

	relabel := func(x digraph.NodeID, eps int64) {
		s.potential[x] -= eps
		for _, e := range g.OutArcs(x) {
			s.reduced[e] -= eps
		}
		for _, e := range g.InArcs(x) {
			s.reduced[e] += eps
		}
	}

	pushFlow := func(e digraph.ArcID, delta int64) {
		src, dst := g.ArcEnds(e)
		res[e] -= delta
		res[g.ArcDual(e)] += delta
		s.excess[src] -= delta
		s.excess[dst] += delta
	}

	n := int64(g.NumNodes())
	var maxC int64
	for e := range g.Arcs() {
		s.reduced[e] *= n
		if s.reduced[e] > maxC {
			maxC = s.reduced[e]
		}
	}
	maxC = pathsearch.LowerBoundPower2(maxC)

	for ; maxC > 0; maxC /= 2 {
		// Saturating every negative arc also zeroes the flow on arcs
		// with positive reduced cost, via their duals.
		for e := range g.Arcs() {
			if s.reduced[e] < 0 && res[e] > 0 {
				pushFlow(e, res[e])
			}
		}

		var active nodeSet
		for v := range g.Nodes() {
			if s.excess[v] > 0 {
				active.insert(v)
			}
		}

		for !active.empty() {
			t := active.min()

			pushed := false
			for _, e := range g.OutArcs(t) {
				rw := s.reduced[e]
				rc := res[e]
				if rw < 0 && rw >= -maxC && rc > 0 {
					pushed = true
					a, b := g.ArcEnds(e)
					d := s.excess[a]
					if rc < d {
						d = rc
					}
					pushFlow(e, d)

					if s.excess[a] <= 0 {
						active.remove(a)
					}
					if s.excess[b] > 0 {
						active.insert(b)
					}
					break
				}
			}

			if !pushed {
				relabel(t, maxC)
			}
		}
	}
	return total, nil
}
