// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/arloliu/feasible/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the default collector and the embedded
// fallback of PrometheusCollector.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	e, err := feasible.NewEnumerator(&cfg, feasible.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordEnumeration discards the enumeration metric.
func (n *NopMetrics) RecordEnumeration(_ /* duration */ float64, _ /* emitted */ int, _ /* success */ bool) {
	// No-op
}

// RecordNodes discards the search effort metric.
func (n *NopMetrics) RecordNodes(_ /* visited */, _ /* pruned */ int64) {
	// No-op
}

// RecordWorkerRun discards the worker metric.
func (n *NopMetrics) RecordWorkerRun(_ /* workerID */ string, _ /* candidates */ int, _ /* duration */ float64) {
	// No-op
}

// RecordCacheLookup discards the cache metric.
func (n *NopMetrics) RecordCacheLookup(_ /* hit */ bool) {
	// No-op
}
