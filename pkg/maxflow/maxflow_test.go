package maxflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netflow/pkg/digraph"
	"netflow/pkg/pathsearch"
)

// fixture lowers (from, to) pairs with capacities onto a graph, source
// and sink first, the way the drivers build instances.
type fixture struct {
	g        *digraph.Graph[int64, int]
	residual []int64
	original []int64
	source   digraph.NodeID
	sink     digraph.NodeID
}

func build(t *testing.T, source, sink int64, arcs [][2]int64, caps []int64) *fixture {
	t.Helper()
	g := digraph.New[int64, int]()
	g.AddNode(source)
	g.AddNode(sink)

	var residual []int64
	for i := range arcs {
		fwd, rev, err := g.AddArc(arcs[i][0], arcs[i][1], i)
		require.NoError(t, err)
		for len(residual) < g.MaxNumArcs() {
			residual = append(residual, 0)
		}
		residual[fwd] = caps[i]
		residual[rev] = 0
	}

	return &fixture{
		g:        g,
		residual: residual,
		original: append([]int64(nil), residual...),
		source:   g.GetNode(source),
		sink:     g.GetNode(sink),
	}
}

// flows reads back the per-input-arc flow vector.
func (f *fixture) flows(t *testing.T, n int) []int64 {
	t.Helper()
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = FlowAt(f.g, f.g.GetArc(i), f.residual)
	}
	return out
}

// checkInvariants asserts antisymmetry and non-negativity over all arcs
// and conservation at internal nodes.
func (f *fixture) checkInvariants(t *testing.T, flow int64) {
	t.Helper()
	for a := range f.g.Arcs() {
		d := f.g.ArcDual(a)
		assert.GreaterOrEqual(t, f.residual[a], int64(0), "residual of arc %d", a)
		assert.Equal(t, f.original[a]+f.original[d], f.residual[a]+f.residual[d],
			"capacity of pair at arc %d", a)
	}
	for v := range f.g.Nodes() {
		// Every arc entering v has its dual in OutArcs(v), where it counts
		// the negated flow, so OutArcs alone give outflow minus inflow.
		var balance int64
		for _, a := range f.g.OutArcs(v) {
			balance += f.original[a] - f.residual[a]
		}
		switch v {
		case f.source:
			assert.Equal(t, flow, balance, "source balance")
		case f.sink:
			assert.Equal(t, -flow, balance, "sink balance")
		default:
			assert.Zero(t, balance, "conservation at node %d", v)
		}
	}
}

func solvers() map[string]func() Solver {
	return map[string]func() Solver{
		"augmenting_bfs":      func() Solver { return NewAugmentingPath(pathsearch.NewBFS()) },
		"augmenting_labeling": func() Solver { return NewAugmentingPath(pathsearch.NewLabeling()) },
		"scaling_bfs":         func() Solver { return NewScaling(pathsearch.NewBFS()) },
		"scaling_labeling":    func() Solver { return NewScaling(pathsearch.NewLabeling()) },
		"preflow":             func() Solver { return NewPreflow() },
	}
}

func TestMaxFlow_BackArcsAndCycle(t *testing.T) {
	// Arcs into the source and out of the sink must not inflate the flow.
	arcs := [][2]int64{{0, 1}, {0, 2}, {1, 3}, {1, 2}, {1, 0}, {3, 1}}
	caps := []int64{1, 9, 5, 1, 7, 4}
	wantFlows := []int64{1, 0, 0, 0, 0, 0}

	for name, newSolver := range solvers() {
		t.Run(name, func(t *testing.T) {
			f := build(t, 0, 1, arcs, caps)
			flow, err := newSolver().Solve(f.g, f.source, f.sink, f.residual, pathsearch.AllArcs)
			require.NoError(t, err)

			assert.Equal(t, int64(1), flow)
			assert.Equal(t, wantFlows, f.flows(t, len(arcs)))
			f.checkInvariants(t, flow)
		})
	}
}

func TestMaxFlow_TwoDisjointPaths(t *testing.T) {
	arcs := [][2]int64{{0, 2}, {0, 3}, {3, 2}, {2, 1}, {3, 1}}
	caps := []int64{1, 2, 2, 2, 2}
	wantFlows := []int64{1, 2, 0, 1, 2}

	for name, newSolver := range solvers() {
		t.Run(name, func(t *testing.T) {
			f := build(t, 0, 1, arcs, caps)
			flow, err := newSolver().Solve(f.g, f.source, f.sink, f.residual, pathsearch.AllArcs)
			require.NoError(t, err)

			assert.Equal(t, int64(3), flow)
			assert.Equal(t, wantFlows, f.flows(t, len(arcs)))
			f.checkInvariants(t, flow)
		})
	}
}

func TestMaxFlow_SingleArc(t *testing.T) {
	for name, newSolver := range solvers() {
		t.Run(name, func(t *testing.T) {
			f := build(t, 0, 1, [][2]int64{{0, 1}}, []int64{10})
			flow, err := newSolver().Solve(f.g, f.source, f.sink, f.residual, pathsearch.AllArcs)
			require.NoError(t, err)
			assert.Equal(t, int64(10), flow)
			f.checkInvariants(t, flow)
		})
	}
}

func TestMaxFlow_Disconnected(t *testing.T) {
	for name, newSolver := range solvers() {
		t.Run(name, func(t *testing.T) {
			f := build(t, 0, 1, [][2]int64{{0, 2}, {3, 1}}, []int64{5, 5})
			flow, err := newSolver().Solve(f.g, f.source, f.sink, f.residual, pathsearch.AllArcs)
			require.NoError(t, err)
			assert.Zero(t, flow)
			f.checkInvariants(t, flow)
		})
	}
}

func TestMaxFlow_ParallelArcs(t *testing.T) {
	arcs := [][2]int64{{0, 1}, {0, 1}, {0, 1}}
	caps := []int64{3, 4, 5}

	for name, newSolver := range solvers() {
		t.Run(name, func(t *testing.T) {
			f := build(t, 0, 1, arcs, caps)
			flow, err := newSolver().Solve(f.g, f.source, f.sink, f.residual, pathsearch.AllArcs)
			require.NoError(t, err)
			assert.Equal(t, int64(12), flow)
			f.checkInvariants(t, flow)
		})
	}
}

func TestMaxFlow_ZeroCapacityArc(t *testing.T) {
	arcs := [][2]int64{{0, 2}, {2, 1}, {0, 1}}
	caps := []int64{4, 4, 0}

	for name, newSolver := range solvers() {
		t.Run(name, func(t *testing.T) {
			f := build(t, 0, 1, arcs, caps)
			flow, err := newSolver().Solve(f.g, f.source, f.sink, f.residual, pathsearch.AllArcs)
			require.NoError(t, err)
			assert.Equal(t, int64(4), flow)
			assert.Zero(t, FlowAt(f.g, f.g.GetArc(2), f.residual))
			f.checkInvariants(t, flow)
		})
	}
}

func TestMaxFlow_SelfLoopCarriesNoFlow(t *testing.T) {
	arcs := [][2]int64{{0, 2}, {2, 2}, {2, 1}}
	caps := []int64{3, 9, 3}

	for name, newSolver := range solvers() {
		t.Run(name, func(t *testing.T) {
			f := build(t, 0, 1, arcs, caps)
			flow, err := newSolver().Solve(f.g, f.source, f.sink, f.residual, pathsearch.AllArcs)
			require.NoError(t, err)
			assert.Equal(t, int64(3), flow)
			f.checkInvariants(t, flow)
		})
	}
}

func TestMaxFlow_RespectsValidArcPredicate(t *testing.T) {
	// Masking the direct arc forces everything through the detour.
	arcs := [][2]int64{{0, 1}, {0, 2}, {2, 1}}
	caps := []int64{10, 3, 3}

	f := build(t, 0, 1, arcs, caps)
	masked := f.g.GetArc(0)
	maskedDual := f.g.ArcDual(masked)

	s := NewAugmentingPath(pathsearch.NewBFS())
	flow, err := s.Solve(f.g, f.source, f.sink, f.residual, func(e digraph.ArcID) bool {
		return e != masked && e != maskedDual
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), flow)
	assert.Zero(t, FlowAt(f.g, masked, f.residual))
}

func TestFlowAt_ReadsDualResidual(t *testing.T) {
	f := build(t, 0, 1, [][2]int64{{0, 1}}, []int64{7})

	s := NewAugmentingPath(pathsearch.NewBFS())
	_, err := s.Solve(f.g, f.source, f.sink, f.residual, pathsearch.AllArcs)
	require.NoError(t, err)

	arc := f.g.GetArc(0)
	assert.Equal(t, int64(7), FlowAt(f.g, arc, f.residual))
	assert.Zero(t, f.residual[arc])
}
