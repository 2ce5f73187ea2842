package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolverCache_RoundTrip(t *testing.T) {
	backend := NewMemoryCache(nil)
	defer backend.Close() //nolint:errcheck // test cleanup

	sc := NewSolverCache(backend, time.Minute)
	ctx := context.Background()

	hash := InstanceHash(0, 1, []ArcSpec{{From: 0, To: 1, Capacity: 7, Cost: 2}})

	_, found, err := sc.Get(ctx, hash, "cost-scaling")
	require.NoError(t, err)
	assert.False(t, found)

	in := &CachedSolveResult{Flow: 7, Cost: 14, Algorithm: "cost-scaling", DurationMs: 0.42}
	require.NoError(t, sc.Set(ctx, hash, "cost-scaling", in, 0))

	out, found, err := sc.Get(ctx, hash, "cost-scaling")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(7), out.Flow)
	assert.Equal(t, int64(14), out.Cost)
	assert.Equal(t, "cost-scaling", out.Algorithm)
	assert.False(t, out.ComputedAt.IsZero())
}

func TestSolverCache_KeyedByAlgorithm(t *testing.T) {
	backend := NewMemoryCache(nil)
	defer backend.Close() //nolint:errcheck // test cleanup

	sc := NewSolverCache(backend, time.Minute)
	ctx := context.Background()

	hash := "deadbeef"
	require.NoError(t, sc.Set(ctx, hash, "cost-scaling", &CachedSolveResult{Flow: 1}, 0))

	_, found, err := sc.Get(ctx, hash, "edmonds-karp-fifo")
	require.NoError(t, err)
	assert.False(t, found, "a different algorithm must miss")
}

func TestSolverCache_CorruptedEntryDropped(t *testing.T) {
	backend := NewMemoryCache(nil)
	defer backend.Close() //nolint:errcheck // test cleanup

	sc := NewSolverCache(backend, time.Minute)
	ctx := context.Background()

	key := BuildSolveKey("junk", "cost-scaling")
	require.NoError(t, backend.Set(ctx, key, []byte("{not json"), time.Minute))

	_, found, err := sc.Get(ctx, "junk", "cost-scaling")
	require.NoError(t, err)
	assert.False(t, found)

	ok, err := backend.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "corrupted entry is deleted")
}
