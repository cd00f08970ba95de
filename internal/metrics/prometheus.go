package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/feasible/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// a PrometheusCollector that is never used leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	enumerations     *prometheus.CounterVec
	enumDuration     prometheus.Histogram
	combinations     prometheus.Counter
	visitedNodes     prometheus.Counter
	prunedNodes      prometheus.Counter
	workerRuns       *prometheus.CounterVec
	workerCandidates *prometheus.CounterVec
	workerDuration   *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "feasible" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "feasible"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.enumerations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "enumerator",
			Name:      "enumerations_total",
			Help:      "Total enumerations by outcome (success,failure).",
		}, []string{"result"})

		p.enumDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "enumerator",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of enumerations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		})

		p.combinations = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "enumerator",
			Name:      "combinations_total",
			Help:      "Total feasible combinations emitted.",
		})

		p.visitedNodes = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "visited_nodes_total",
			Help:      "Total candidate values examined by the depth-first search.",
		})

		p.prunedNodes = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "pruned_nodes_total",
			Help:      "Total candidates skipped because they would exceed the threshold.",
		})

		p.workerRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "runs_total",
			Help:      "Total parallel worker runs by worker ID.",
		}, []string{"worker"})

		p.workerCandidates = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "candidates_total",
			Help:      "Total first-level candidates processed by worker ID.",
		}, []string{"worker"})

		p.workerDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "duration_seconds",
			Help:      "Duration of a worker's share of an enumeration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"worker"})

		p.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total result cache lookups by outcome (hit,miss).",
		}, []string{"result"})

		p.reg.MustRegister(
			p.enumerations,
			p.enumDuration,
			p.combinations,
			p.visitedNodes,
			p.prunedNodes,
			p.workerRuns,
			p.workerCandidates,
			p.workerDuration,
			p.cacheLookups,
		)
	})
}

// RecordEnumeration counts the enumeration and observes its duration.
func (p *PrometheusCollector) RecordEnumeration(duration float64, emitted int, success bool) {
	p.ensureRegistered()
	p.enumerations.WithLabelValues(resultLabel(success)).Inc()
	p.enumDuration.Observe(duration)
	p.combinations.Add(float64(emitted))
}

// RecordNodes adds search effort counters.
func (p *PrometheusCollector) RecordNodes(visited, pruned int64) {
	p.ensureRegistered()
	p.visitedNodes.Add(float64(visited))
	p.prunedNodes.Add(float64(pruned))
}

// RecordWorkerRun records one worker's share of a parallel enumeration.
func (p *PrometheusCollector) RecordWorkerRun(workerID string, candidates int, duration float64) {
	p.ensureRegistered()
	p.workerRuns.WithLabelValues(workerID).Inc()
	p.workerCandidates.WithLabelValues(workerID).Add(float64(candidates))
	p.workerDuration.WithLabelValues(workerID).Observe(duration)
}

// RecordCacheLookup counts a cache hit or miss.
func (p *PrometheusCollector) RecordCacheLookup(hit bool) {
	p.ensureRegistered()
	if hit {
		p.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	p.cacheLookups.WithLabelValues("miss").Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}

	return "failure"
}
