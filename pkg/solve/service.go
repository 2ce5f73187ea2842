package solve

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"netflow/pkg/apperror"
	"netflow/pkg/cache"
	"netflow/pkg/history"
	"netflow/pkg/logger"
	"netflow/pkg/metrics"
	"netflow/pkg/pathsearch"
	"netflow/pkg/telemetry"
)

// Result is the outcome of one solve.
type Result struct {
	Flow      int64
	Cost      int64
	Flows     []int64 // per input arc, in input order
	Algorithm string
	Duration  time.Duration
	CacheHit  bool
}

// Service wraps the solver registry with the operational concerns around
// a solve: result caching, metrics, solve history and tracing. All hooks
// are optional; the zero-value Service just solves.
type Service struct {
	Metrics *metrics.Metrics
	Cache   *cache.SolverCache
	History history.Repository
	Verify  bool
}

// validate checks instance endpoints before building.
func validate(in *Instance) error {
	if in == nil {
		return apperror.New(apperror.CodeNilInput, "solve: instance is nil")
	}
	if in.Source == in.Sink {
		return apperror.New(apperror.CodeSourceEqualsSink, "solve: source equals sink")
	}
	return nil
}

// MaxFlow solves a maximum-flow instance with the named algorithm.
func (s *Service) MaxFlow(ctx context.Context, in *Instance, algorithm string) (*Result, error) {
	ctx, span := telemetry.StartSpan(ctx, "solve.MaxFlow",
		trace.WithAttributes(attribute.String("algorithm", algorithm)),
	)
	defer span.End()

	if err := validate(in); err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}

	solver, err := NewMaxFlow(algorithm)
	if err != nil {
		return nil, err
	}

	b, err := Build(in)
	if err != nil {
		return nil, err
	}

	original := append([]int64(nil), b.Capacity...)

	start := time.Now()
	flow, err := solver.Solve(b.Graph, b.Source, b.Sink, b.Capacity, pathsearch.AllArcs)
	elapsed := time.Since(start)

	s.record(algorithm, err == nil, elapsed, flow, 0, b)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}

	if s.Verify {
		if verr := Verify(b, original, b.Capacity, flow); verr != nil {
			return nil, verr
		}
	}

	return &Result{
		Flow:      flow,
		Flows:     b.Flows(b.Capacity),
		Algorithm: algorithm,
		Duration:  elapsed,
	}, nil
}

// MinCostMaxFlow solves a min-cost max-flow instance with the named
// algorithm. Results are served from and stored to the cache when one is
// configured.
func (s *Service) MinCostMaxFlow(ctx context.Context, in *Instance, algorithm string) (*Result, error) {
	ctx, span := telemetry.StartSpan(ctx, "solve.MinCostMaxFlow",
		trace.WithAttributes(attribute.String("algorithm", algorithm)),
	)
	defer span.End()

	if err := validate(in); err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}

	var instanceHash string
	if s.Cache != nil || s.History != nil {
		instanceHash = in.Hash()
	}

	if s.Cache != nil {
		cached, found, cerr := s.Cache.Get(ctx, instanceHash, algorithm)
		if cerr == nil && found {
			telemetry.AddEvent(ctx, "cache_hit")
			return &Result{
				Flow:      cached.Flow,
				Cost:      cached.Cost,
				Algorithm: algorithm,
				CacheHit:  true,
			}, nil
		}
	}

	solver, err := NewMinCost(algorithm)
	if err != nil {
		return nil, err
	}

	b, err := Build(in)
	if err != nil {
		return nil, err
	}

	original := append([]int64(nil), b.Capacity...)

	start := time.Now()
	flow, err := solver.Solve(b.Graph, b.Source, b.Sink, b.Weight, &b.Capacity)
	elapsed := time.Since(start)

	var cost int64
	if err == nil {
		cost = b.Cost(b.Capacity)
	}

	s.record(algorithm, err == nil, elapsed, flow, cost, b)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}

	if s.Verify {
		if verr := Verify(b, original, b.Capacity, flow); verr != nil {
			return nil, verr
		}
	}

	if s.Cache != nil {
		cerr := s.Cache.Set(ctx, instanceHash, algorithm, &cache.CachedSolveResult{
			Flow:       flow,
			Cost:       cost,
			Algorithm:  algorithm,
			DurationMs: float64(elapsed.Microseconds()) / 1000.0,
		}, 0)
		if cerr != nil {
			logger.FromContext(ctx).Warn("Failed to cache solve result", "error", cerr)
		}
	}

	if s.History != nil {
		herr := s.History.Record(ctx, &history.SolveRun{
			InstanceHash: instanceHash,
			Algorithm:    algorithm,
			Nodes:        b.Graph.NumNodes(),
			Arcs:         len(in.Arcs),
			Flow:         flow,
			Cost:         cost,
			DurationMs:   float64(elapsed.Microseconds()) / 1000.0,
		})
		if herr != nil {
			logger.FromContext(ctx).Warn("Failed to record solve run", "error", herr)
		}
	}

	return &Result{
		Flow:      flow,
		Cost:      cost,
		Flows:     b.Flows(b.Capacity),
		Algorithm: algorithm,
		Duration:  elapsed,
	}, nil
}

// record pushes metrics for one solve if metrics are configured.
func (s *Service) record(algorithm string, success bool, elapsed time.Duration, flow, cost int64, b *Built) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.RecordSolve(algorithm, success, elapsed, flow, cost)
	s.Metrics.RecordInstance("solve", b.Graph.NumNodes(), b.Graph.NumArcs()/2)
}
