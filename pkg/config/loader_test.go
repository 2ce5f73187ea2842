package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Defaults(t *testing.T) {
	l := NewLoader(WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")))

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "netflow", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "scaling-labeling", cfg.Solver.MaxFlowAlgorithm)
	assert.Equal(t, "cost-scaling", cfg.Solver.MinCostAlgorithm)
	assert.Equal(t, "dijkstra", cfg.Solver.ShortestPathEngine)
	assert.Equal(t, 10*time.Minute, cfg.Cache.DefaultTTL)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 128, cfg.Benchmark.Nodes)
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
app:
  name: flowbench
log:
  level: debug
solver:
  min_cost_algorithm: edmonds-karp-fifo
benchmark:
  nodes: 16
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewLoader(WithConfigPaths(path)).Load()
	require.NoError(t, err)

	assert.Equal(t, "flowbench", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "edmonds-karp-fifo", cfg.Solver.MinCostAlgorithm)
	assert.Equal(t, 16, cfg.Benchmark.Nodes)
	// Untouched keys keep their defaults.
	assert.Equal(t, "scaling-labeling", cfg.Solver.MaxFlowAlgorithm)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	t.Setenv("NETFLOW_LOG_LEVEL", "error")

	cfg, err := NewLoader(WithConfigPaths(path)).Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoader_InvalidConfig(t *testing.T) {
	t.Setenv("NETFLOW_LOG_LEVEL", "loud")

	_, err := NewLoader(WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml"))).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg, err := NewLoader(WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml"))).Load()
		require.NoError(t, err)
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("bad_cache_driver", func(t *testing.T) {
		cfg := base()
		cfg.Cache.Driver = "memcached"
		assert.Error(t, cfg.Validate())
	})

	t.Run("database_requires_host", func(t *testing.T) {
		cfg := base()
		cfg.Database.Enabled = true
		cfg.Database.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("benchmark_nodes", func(t *testing.T) {
		cfg := base()
		cfg.Benchmark.Nodes = 1
		assert.Error(t, cfg.Validate())
	})

	t.Run("metrics_port", func(t *testing.T) {
		cfg := base()
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestCacheConfig_Address(t *testing.T) {
	c := CacheConfig{Host: "redis.local", Port: 6380}
	assert.Equal(t, "redis.local:6380", c.Address())
}
