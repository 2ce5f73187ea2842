package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics глобальный контейнер метрик решателей
type Metrics struct {
	// Бизнес-метрики
	SolveOperationsTotal *prometheus.CounterVec
	SolveDuration        *prometheus.HistogramVec
	FlowValue            *prometheus.GaugeVec
	FlowCost             *prometheus.GaugeVec
	InstanceNodes        *prometheus.HistogramVec
	InstanceArcs         *prometheus.HistogramVec

	// Информация о сервисе
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// Init инициализирует метрики
func Init(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of solve operations",
			},
			[]string{"algorithm", "status"},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of solve operations",
				Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"algorithm"},
		),

		FlowValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "flow_value",
				Help:      "Last computed flow value",
			},
			[]string{"algorithm"},
		),

		FlowCost: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "flow_cost",
				Help:      "Last computed flow cost",
			},
			[]string{"algorithm"},
		),

		InstanceNodes: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "instance_nodes",
				Help:      "Number of nodes in solved instances",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"operation"},
		),

		InstanceArcs: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "instance_arcs",
				Help:      "Number of arcs in solved instances",
				Buckets:   []float64{10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service information",
			},
			[]string{"version", "name"},
		),
	}

	defaultMetrics = m
	return m
}

// Get возвращает глобальные метрики (nil если Init не вызывался)
func Get() *Metrics {
	return defaultMetrics
}

// RecordSolve записывает метрики одного решения
func (m *Metrics) RecordSolve(algorithm string, success bool, elapsed time.Duration, flow, cost int64) {
	status := "ok"
	if !success {
		status = "error"
	}
	m.SolveOperationsTotal.WithLabelValues(algorithm, status).Inc()
	m.SolveDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	if success {
		m.FlowValue.WithLabelValues(algorithm).Set(float64(flow))
		m.FlowCost.WithLabelValues(algorithm).Set(float64(cost))
	}
}

// RecordInstance записывает размеры решаемой задачи
func (m *Metrics) RecordInstance(operation string, nodes, arcs int) {
	m.InstanceNodes.WithLabelValues(operation).Observe(float64(nodes))
	m.InstanceArcs.WithLabelValues(operation).Observe(float64(arcs))
}

// SetServiceInfo выставляет информацию о сервисе
func (m *Metrics) SetServiceInfo(name, version string) {
	m.ServiceInfo.WithLabelValues(version, name).Set(1)
}

// Handler возвращает HTTP handler для /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve запускает HTTP сервер метрик (блокирующий)
func Serve(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
