package solve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netflow/pkg/apperror"
	"netflow/pkg/cache"
)

func mcmfInstance() *Instance {
	// Expected optimum: flow 7 at cost 2·1 + 5·3 + 2·2 = 21.
	return &Instance{
		Source: 0,
		Sink:   1,
		Arcs: []Arc{
			{From: 0, To: 2, Capacity: 2, Cost: 1},
			{From: 0, To: 1, Capacity: 5, Cost: 3},
			{From: 2, To: 1, Capacity: 7, Cost: 2},
			{From: 1, To: 3, Capacity: 8, Cost: 2},
			{From: 0, To: 3, Capacity: 6, Cost: 6},
		},
	}
}

func TestService_MaxFlow(t *testing.T) {
	inst := &Instance{
		Source: 0,
		Sink:   1,
		Arcs: []Arc{
			{From: 0, To: 2, Capacity: 1},
			{From: 0, To: 3, Capacity: 2},
			{From: 3, To: 2, Capacity: 2},
			{From: 2, To: 1, Capacity: 2},
			{From: 3, To: 1, Capacity: 2},
		},
	}

	svc := &Service{Verify: true}
	for _, algorithm := range MaxFlowAlgorithms() {
		t.Run(algorithm, func(t *testing.T) {
			res, err := svc.MaxFlow(context.Background(), inst, algorithm)
			require.NoError(t, err)
			assert.Equal(t, int64(3), res.Flow)
			assert.Equal(t, []int64{1, 2, 0, 1, 2}, res.Flows)
		})
	}
}

func TestService_MinCostMaxFlow(t *testing.T) {
	svc := &Service{Verify: true}
	for _, algorithm := range MinCostAlgorithms() {
		t.Run(algorithm, func(t *testing.T) {
			res, err := svc.MinCostMaxFlow(context.Background(), mcmfInstance(), algorithm)
			require.NoError(t, err)
			assert.Equal(t, int64(7), res.Flow)
			assert.Equal(t, int64(21), res.Cost)
			assert.Equal(t, []int64{2, 5, 2, 0, 0}, res.Flows)
		})
	}
}

func TestService_MinCostMaxFlow_SecondReference(t *testing.T) {
	inst := &Instance{
		Source: 0,
		Sink:   1,
		Arcs: []Arc{
			{From: 0, To: 2, Capacity: 2, Cost: 2},
			{From: 0, To: 1, Capacity: 4, Cost: 3},
			{From: 0, To: 3, Capacity: 3, Cost: 1},
			{From: 1, To: 3, Capacity: 3, Cost: 0},
			{From: 2, To: 3, Capacity: 3, Cost: 2},
			{From: 2, To: 1, Capacity: 1, Cost: 0},
			{From: 3, To: 2, Capacity: 1, Cost: 0},
			{From: 3, To: 0, Capacity: 4, Cost: 4},
		},
	}

	svc := &Service{}
	for _, algorithm := range MinCostAlgorithms() {
		t.Run(algorithm, func(t *testing.T) {
			res, err := svc.MinCostMaxFlow(context.Background(), inst, algorithm)
			require.NoError(t, err)
			assert.Equal(t, int64(6), res.Flow)
			assert.Equal(t, []int64{0, 4, 1, 0, 0, 1, 1, 0}, res.Flows)
		})
	}
}

func TestService_CacheHit(t *testing.T) {
	backend := cache.NewMemoryCache(nil)
	defer backend.Close() //nolint:errcheck // test cleanup

	svc := &Service{Cache: cache.NewSolverCache(backend, time.Minute)}
	ctx := context.Background()

	res1, err := svc.MinCostMaxFlow(ctx, mcmfInstance(), MinCostCostScaling)
	require.NoError(t, err)
	assert.False(t, res1.CacheHit)

	res2, err := svc.MinCostMaxFlow(ctx, mcmfInstance(), MinCostCostScaling)
	require.NoError(t, err)
	assert.True(t, res2.CacheHit)
	assert.Equal(t, res1.Flow, res2.Flow)
	assert.Equal(t, res1.Cost, res2.Cost)

	// A different algorithm computes fresh.
	res3, err := svc.MinCostMaxFlow(ctx, mcmfInstance(), MinCostEdmondsKarpFIFO)
	require.NoError(t, err)
	assert.False(t, res3.CacheHit)
	assert.Equal(t, res1.Cost, res3.Cost)
}

func TestService_Validation(t *testing.T) {
	svc := &Service{}
	ctx := context.Background()

	_, err := svc.MaxFlow(ctx, nil, MaxFlowPreflow)
	assert.True(t, apperror.Is(err, apperror.CodeNilInput))

	_, err = svc.MaxFlow(ctx, &Instance{Source: 1, Sink: 1}, MaxFlowPreflow)
	assert.True(t, apperror.Is(err, apperror.CodeSourceEqualsSink))

	_, err = svc.MaxFlow(ctx, mcmfInstance(), "simplex")
	assert.True(t, apperror.Is(err, apperror.CodeInvalidAlgorithm))

	_, err = svc.MinCostMaxFlow(ctx, mcmfInstance(), "simplex")
	assert.True(t, apperror.Is(err, apperror.CodeInvalidAlgorithm))
}

func TestBuild(t *testing.T) {
	b, err := Build(mcmfInstance())
	require.NoError(t, err)

	assert.Equal(t, 4, b.Graph.NumNodes())
	assert.Equal(t, 10, b.Graph.NumArcs())
	assert.True(t, b.Graph.IsValidNode(b.Source))
	assert.True(t, b.Graph.IsValidNode(b.Sink))

	// The forward arc carries the cost, the dual its negation.
	arc := b.Graph.GetArc(0)
	dual := b.Graph.ArcDual(arc)
	assert.Equal(t, int64(1), b.Weight[arc])
	assert.Equal(t, int64(-1), b.Weight[dual])
	assert.Equal(t, int64(2), b.Capacity[arc])
	assert.Zero(t, b.Capacity[dual])
}

func TestBuild_NegativeCapacity(t *testing.T) {
	_, err := Build(&Instance{
		Source: 0,
		Sink:   1,
		Arcs:   []Arc{{From: 0, To: 1, Capacity: -1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNegativeCapacity))
}

func TestVerify_DetectsCorruption(t *testing.T) {
	b, err := Build(mcmfInstance())
	require.NoError(t, err)
	original := append([]int64(nil), b.Capacity...)

	svc := &Service{}
	res, err := svc.MinCostMaxFlow(context.Background(), mcmfInstance(), MinCostCostScaling)
	require.NoError(t, err)

	// Re-run the solve on b to get its residual state.
	solver, err := NewMinCost(MinCostCostScaling)
	require.NoError(t, err)
	flow, err := solver.Solve(b.Graph, b.Source, b.Sink, b.Weight, &b.Capacity)
	require.NoError(t, err)
	require.Equal(t, res.Flow, flow)

	require.NoError(t, Verify(b, original, b.Capacity, flow))

	// A wrong reported value must trip the balance check.
	assert.Error(t, Verify(b, original, b.Capacity, flow+1))

	// Corrupting a residual must trip antisymmetry.
	b.Capacity[0]++
	assert.Error(t, Verify(b, original, b.Capacity, flow))
}

func TestRecommend(t *testing.T) {
	assert.Equal(t, MinCostCostScaling, Recommend(10, 20, true))
	assert.Equal(t, MaxFlowAugmentingBFS, Recommend(10, 20, false))
	assert.Equal(t, MaxFlowScalingLabeling, Recommend(500, 4000, false))
	assert.Equal(t, MaxFlowPreflow, Recommend(500, 200000, false))
}

func TestRegistries(t *testing.T) {
	for _, name := range MaxFlowAlgorithms() {
		s, err := NewMaxFlow(name)
		require.NoError(t, err, name)
		assert.NotNil(t, s)
	}
	for _, name := range MinCostAlgorithms() {
		s, err := NewMinCost(name)
		require.NoError(t, err, name)
		assert.NotNil(t, s)
	}
}
