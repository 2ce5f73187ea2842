package mincostflow

import (
	"netflow/pkg/digraph"
	"netflow/pkg/maxflow"
	"netflow/pkg/pathsearch"
)

// CapacityScaling computes a min-cost max-flow by capacity scaling on the
// residual network.
//
// The flow value is fixed first by an any-cost maximum flow. Then, for a
// threshold Δ halving from the largest power of two not exceeding that value,
// each phase saturates the residual arcs of negative reduced cost that
// can carry Δ, collects the resulting node imbalances into excess (≥ Δ)
// and deficit (≤ −Δ) sets, and cancels them by pushing Δ units along
// reduced-cost shortest paths from a temporary super-source connected to
// every excess node with a zero-cost arc of its excess as capacity.
//
// The super-source is removed on every exit path, including errors, and
// the preserved excess is restored from its outgoing arc residuals before
// removal. Growing the graph is why this solver takes the residual vector
// by pointer: the caller's vector is extended to cover the new handles.
type CapacityScaling struct {
	path pathsearch.ShortestPather
	flow maxflow.Solver

	weightEx []int64
	excess   []int64
}

// NewCapacityScaling creates a capacity-scaling solver around the given
// shortest-path engine and max-flow backend.
func NewCapacityScaling(path pathsearch.ShortestPather, flow maxflow.Solver) *CapacityScaling {
	return &CapacityScaling{path: path, flow: flow}
}

// Solve pushes the min-cost maximum source→dest flow and returns its
// value.
func (s *CapacityScaling) Solve(g digraph.Builder, source, dest digraph.NodeID, weight []int64, residual *[]int64) (int64, error) {
	// Fix the flow value first, disregarding cost.
	total, err := s.flow.Solve(g, source, dest, *residual, pathsearch.AllArcs)
	if err != nil {
		return 0, err
	}

	capFlow := pathsearch.LowerBoundPower2(total)

	s.excess = grow(s.excess[:0], g.MaxNumNodes())
	s.weightEx = append(s.weightEx[:0], weight...)

	updateReducedCosts := func(potential []int64) {
		for e := range g.Arcs() {
			src, dst := g.ArcEnds(e)
			pSrc, pDst := potential[src], potential[dst]
			if pSrc == pathsearch.Inf {
				pSrc = 0
			}
			if pDst == pathsearch.Inf {
				pDst = 0
			}
			s.weightEx[e] += pSrc - pDst
		}
	}

	pushFlow := func(e digraph.ArcID, delta int64) {
		src, dst := g.ArcEnds(e)
		(*residual)[e] -= delta
		(*residual)[g.ArcDual(e)] += delta
		s.excess[src] -= delta
		s.excess[dst] += delta
	}

	for ; capFlow > 0; capFlow /= 2 {
		// Saturate residual arcs of negative reduced cost that can carry Δ.
		for e := range g.Arcs() {
			for (*residual)[e] >= capFlow && s.weightEx[e] < 0 {
				pushFlow(e, capFlow)
			}
		}

		var sset, tset nodeSet
		for v := range g.Nodes() {
			if s.excess[v] >= capFlow {
				sset.insert(v)
			}
			if s.excess[v] <= -capFlow {
				tset.insert(v)
			}
		}

		if err := s.runPhase(g, capFlow, &sset, &tset, residual, updateReducedCosts, pushFlow); err != nil {
			return total, err
		}
	}
	return total, nil
}

// runPhase cancels the Δ-imbalances of one scaling phase through a
// temporary super-source. The deferred cleanups guarantee that the excess
// is restored and the super-source removed on every exit path.
func (s *CapacityScaling) runPhase(
	g digraph.Builder,
	capFlow int64,
	sset, tset *nodeSet,
	residual *[]int64,
	updateReducedCosts func([]int64),
	pushFlow func(digraph.ArcID, int64),
) error {
	super := g.NewNode()
	defer g.EraseNode(super)

	s.excess = grow(s.excess, g.MaxNumNodes())
	s.excess[super] = 0

	defer func() {
		// The preserved excess of each S-node sits on its super-source
		// arc as residual capacity; hand it back before the node goes.
		for _, e := range g.OutArcs(super) {
			_, dst := g.ArcEnds(e)
			s.excess[dst] = (*residual)[e]
		}
	}()

	for _, v := range sset.members() {
		arc1, err := g.NewArc(super, v)
		if err != nil {
			return err
		}
		arc2, err := g.NewArc(v, super)
		if err != nil {
			return err
		}
		if err := g.SetDual(arc1, arc2); err != nil {
			return err
		}

		s.weightEx = grow(s.weightEx, g.MaxNumArcs())
		*residual = grow(*residual, g.MaxNumArcs())

		s.weightEx[arc1] = 0
		(*residual)[arc1] = s.excess[v]

		s.weightEx[arc2] = 0
		(*residual)[arc2] = 0

		s.excess[super] += s.excess[v]
		s.excess[v] = 0
	}

	for !sset.empty() && !tset.empty() {
		err := s.path.Solve(g, super, s.weightEx, func(e digraph.ArcID) bool {
			return (*residual)[e] >= capFlow
		})
		if err != nil {
			return err
		}

		dist := s.path.DistanceVec()

		dst := digraph.NoNode
		for _, v := range tset.members() {
			if dist[v] < pathsearch.Inf {
				dst = v
				break
			}
		}
		if dst == digraph.NoNode {
			break
		}

		updateReducedCosts(dist)

		for _, e := range s.path.Path(g, dst) {
			pushFlow(e, capFlow)
		}

		if s.excess[dst] > -capFlow {
			tset.remove(dst)
		}
	}
	return nil
}
