package digraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netflow/pkg/apperror"
)

func TestGraph_AddArcCreatesDualPair(t *testing.T) {
	g := New[int, int]()

	fwd, rev, err := g.AddArc(1, 2, 0)
	require.NoError(t, err)

	from, to := g.ArcEnds(fwd)
	rfrom, rto := g.ArcEnds(rev)

	assert.Equal(t, from, rto)
	assert.Equal(t, to, rfrom)
	assert.Equal(t, rev, g.ArcDual(fwd))
	assert.Equal(t, fwd, g.ArcDual(rev))
	assert.Equal(t, fwd, g.ArcDual(g.ArcDual(fwd)), "dual of dual is the arc itself")

	// Only the forward arc carries the key.
	assert.True(t, g.HasArcKey(fwd))
	assert.False(t, g.HasArcKey(rev))
	assert.Equal(t, fwd, g.GetArc(0))
}

func TestGraph_AddArcDuplicateKey(t *testing.T) {
	g := New[int, int]()

	_, _, err := g.AddArc(1, 2, 7)
	require.NoError(t, err)

	_, _, err = g.AddArc(2, 3, 7)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeDuplicateID))
}

func TestGraph_AddNodeIdempotent(t *testing.T) {
	g := New[string, int]()

	n1 := g.AddNode("a")
	n2 := g.AddNode("a")

	assert.Equal(t, n1, n2)
	assert.Equal(t, 1, g.NumNodes())

	key, err := g.NodeKeyOf(n1)
	require.NoError(t, err)
	assert.Equal(t, "a", key)
}

func TestGraph_IncidenceMembership(t *testing.T) {
	g := New[int, int]()
	g.AddArc(1, 2, 0)
	g.AddArc(1, 3, 1)
	g.AddArc(2, 3, 2)

	for n := range g.Nodes() {
		for _, a := range g.OutArcs(n) {
			from, _ := g.ArcEnds(a)
			assert.Equal(t, n, from)
		}
		for _, a := range g.InArcs(n) {
			_, to := g.ArcEnds(a)
			assert.Equal(t, n, to)
		}
	}
}

func TestGraph_NewArcInvalidEndpoints(t *testing.T) {
	g := New[int, int]()
	n := g.NewNode()

	_, err := g.NewArc(n, NodeID(99))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidHandle))
}

func TestGraph_EraseArc(t *testing.T) {
	g := New[int, int]()
	fwd, rev, err := g.AddArc(1, 2, 0)
	require.NoError(t, err)

	n1 := g.GetNode(1)
	n2 := g.GetNode(2)

	g.EraseArc(fwd)

	assert.False(t, g.IsValidArc(fwd))
	assert.True(t, g.IsValidArc(rev), "plain erase leaves the dual in place")
	assert.NotContains(t, g.OutArcs(n1), fwd)
	assert.NotContains(t, g.InArcs(n2), fwd)
	assert.Equal(t, NoArc, g.GetArc(0), "key binding is dropped")
}

func TestGraph_RemoveArcErasesPair(t *testing.T) {
	g := New[int, int]()
	fwd, rev, err := g.AddArc(1, 2, 0)
	require.NoError(t, err)

	g.RemoveArc(0)

	assert.False(t, g.IsValidArc(fwd))
	assert.False(t, g.IsValidArc(rev))
	assert.Equal(t, 0, g.NumArcs())
	assert.Equal(t, 0, g.MaxNumArcs(), "arena trimmed back")
}

func TestGraph_EraseNodeCascades(t *testing.T) {
	g := New[int, int]()
	g.AddArc(1, 2, 0)
	g.AddArc(2, 3, 1)
	g.AddArc(3, 1, 2)

	mid := g.GetNode(2)
	g.EraseNode(mid)

	assert.False(t, g.IsValidNode(mid))
	assert.Equal(t, 2, g.NumNodes())
	// Both dual pairs touching node 2 must be gone; the 3->1 pair remains.
	assert.Equal(t, 2, g.NumArcs())
	for a := range g.Arcs() {
		from, to := g.ArcEnds(a)
		assert.NotEqual(t, mid, from)
		assert.NotEqual(t, mid, to)
	}
	assert.Equal(t, NoNode, g.GetNode(2))
}

func TestGraph_HandleReuseAfterRemove(t *testing.T) {
	g := New[int, int]()
	g.AddArc(1, 2, 0)
	g.AddArc(2, 3, 1)

	g.RemoveArc(0) // frees arc handles 0 and 1

	fwd, rev, err := g.AddArc(3, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, ArcID(0), fwd, "lowest free arc slot reused")
	assert.Equal(t, ArcID(1), rev)
	key, err := g.ArcKeyOf(fwd)
	require.NoError(t, err)
	assert.Equal(t, 2, key)
}

func TestGraph_Counts(t *testing.T) {
	g := New[int, int]()
	g.AddArc(1, 2, 0)
	g.AddArc(2, 3, 1)

	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 4, g.NumArcs(), "every input arc stores its dual")
	assert.Equal(t, 3, g.MaxNumNodes())
	assert.Equal(t, 4, g.MaxNumArcs())
}

func TestGraph_KeyErrors(t *testing.T) {
	g := New[int, int]()
	n := g.NewNode()

	_, err := g.NodeKeyOf(n)
	assert.True(t, apperror.Is(err, apperror.CodeMissingID))

	_, err = g.NodeKeyOf(NodeID(42))
	assert.True(t, apperror.Is(err, apperror.CodeInvalidHandle))
}

func TestGraph_SelfLoopAllowed(t *testing.T) {
	g := New[int, int]()
	fwd, rev, err := g.AddArc(5, 5, 0)
	require.NoError(t, err)

	from, to := g.ArcEnds(fwd)
	assert.Equal(t, from, to)
	assert.Equal(t, rev, g.ArcDual(fwd))
}
