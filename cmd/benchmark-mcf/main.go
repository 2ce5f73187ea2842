// Command benchmark-mcf generates random flow networks and runs every
// min-cost max-flow variant on each of them, checking that all variants
// agree on the flow value and the total cost and reporting per-variant
// timings. Results can optionally be exposed as Prometheus metrics,
// written to an xlsx report, persisted to PostgreSQL and cached in Redis.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"netflow/pkg/cache"
	"netflow/pkg/config"
	"netflow/pkg/database"
	"netflow/pkg/history"
	"netflow/pkg/logger"
	"netflow/pkg/metrics"
	"netflow/pkg/report"
	"netflow/pkg/solve"
	"netflow/pkg/telemetry"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger.InitWithConfig(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stderr",
	})

	if err := run(cfg); err != nil {
		logger.Log.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	svc := &solve.Service{Verify: true}

	if cfg.Metrics.Enabled {
		m := metrics.Init(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
		m.SetServiceInfo(cfg.App.Name, cfg.App.Version)
		svc.Metrics = m
		go func() {
			if err := metrics.Serve(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				logger.Log.Error("metrics server stopped", "error", err)
			}
		}()
	}

	tp, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		return err
	}
	defer tp.Shutdown(ctx) //nolint:errcheck // shutdown on exit path

	if cfg.Cache.Enabled {
		c, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			return err
		}
		defer c.Close() //nolint:errcheck // close on exit path
		svc.Cache = cache.NewSolverCache(c, cfg.Cache.DefaultTTL)
	}

	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.RunMigrations(ctx, db.Pool(), &cfg.Database,
			history.Migrations, history.MigrationsDir); err != nil {
			return err
		}
		svc.History = history.NewPostgresRepository(db)
	}

	rng := rand.New(rand.NewSource(cfg.Benchmark.Seed))
	algorithms := solve.MinCostAlgorithms()

	var rows []report.Row

	for rep := 0; rep < cfg.Benchmark.Repetitions; rep++ {
		runID := uuid.NewString()
		inst := generate(rng, cfg.Benchmark)

		logger.Log.Info("benchmark instance",
			"run", runID,
			"rep", rep,
			"nodes", cfg.Benchmark.Nodes,
			"arcs", len(inst.Arcs),
		)

		type outcome struct {
			algorithm string
			flow      int64
			cost      int64
		}
		var reference *outcome

		for _, algorithm := range algorithms {
			res, err := svc.MinCostMaxFlow(ctx, inst, algorithm)
			if err != nil {
				return fmt.Errorf("%s: %w", algorithm, err)
			}

			logger.Log.Info("benchmark result",
				"run", runID,
				"algorithm", algorithm,
				"flow", res.Flow,
				"cost", res.Cost,
				"duration_us", res.Duration.Microseconds(),
			)

			rows = append(rows, report.Row{
				RunID:      runID,
				Nodes:      cfg.Benchmark.Nodes,
				Arcs:       len(inst.Arcs),
				Algorithm:  algorithm,
				Flow:       res.Flow,
				Cost:       res.Cost,
				DurationMs: float64(res.Duration.Microseconds()) / 1000.0,
			})

			if reference == nil {
				reference = &outcome{algorithm: algorithm, flow: res.Flow, cost: res.Cost}
				continue
			}
			if res.Flow != reference.flow || res.Cost != reference.cost {
				return fmt.Errorf("disagreement on run %s: %s found (%d, %d), %s found (%d, %d)",
					runID,
					reference.algorithm, reference.flow, reference.cost,
					algorithm, res.Flow, res.Cost)
			}
		}
	}

	if cfg.Benchmark.ReportPath != "" {
		if err := report.WriteBenchmark(cfg.Benchmark.ReportPath, rows); err != nil {
			return err
		}
		logger.Log.Info("report written", "path", cfg.Benchmark.ReportPath)
	}
	return nil
}

// generate builds a random directed G(n, m) instance with source 0 and
// sink 1, mirroring the classic gnm generator: m distinct ordered pairs
// without self-loops, capacities in [0, maxCapacity) and costs in
// [0, maxCost).
func generate(rng *rand.Rand, cfg config.BenchmarkConfig) *solve.Instance {
	n := cfg.Nodes
	m := int(float64(n) * cfg.ArcsPerNode)
	if limit := n * (n - 1); m > limit {
		m = limit
	}

	type pair struct{ a, b int64 }
	seen := make(map[pair]bool, m)

	inst := &solve.Instance{Source: 0, Sink: 1}
	for len(inst.Arcs) < m {
		a := rng.Int63n(int64(n))
		b := rng.Int63n(int64(n))
		if a == b || seen[pair{a, b}] {
			continue
		}
		seen[pair{a, b}] = true
		inst.Arcs = append(inst.Arcs, solve.Arc{
			From:     a,
			To:       b,
			Capacity: rng.Int63n(cfg.MaxCapacity),
			Cost:     rng.Int63n(cfg.MaxCost),
		})
	}
	return inst
}
