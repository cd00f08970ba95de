package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheus_Defaults(t *testing.T) {
	p := NewPrometheus(nil, "")

	require.Equal(t, prometheus.DefaultRegisterer, p.reg)
	require.Equal(t, "feasible", p.namespace)
}

func TestPrometheusCollector_LazyRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewPrometheus(reg, "test")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)
}

func TestPrometheusCollector_RecordEnumeration(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordEnumeration(0.002, 3, true)
	p.RecordEnumeration(0.001, 0, false)
	p.RecordEnumeration(0.004, 2, true)

	require.InDelta(t, 2, testutil.ToFloat64(p.enumerations.WithLabelValues("success")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.enumerations.WithLabelValues("failure")), 0)
	require.InDelta(t, 5, testutil.ToFloat64(p.combinations), 0)
	require.Equal(t, 1, testutil.CollectAndCount(p.enumDuration))
}

func TestPrometheusCollector_RecordNodes(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordNodes(10, 4)
	p.RecordNodes(5, 1)

	require.InDelta(t, 15, testutil.ToFloat64(p.visitedNodes), 0)
	require.InDelta(t, 5, testutil.ToFloat64(p.prunedNodes), 0)
}

func TestPrometheusCollector_RecordWorkerRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordWorkerRun("worker-0", 2, 0.01)
	p.RecordWorkerRun("worker-0", 3, 0.02)
	p.RecordWorkerRun("worker-1", 1, 0.01)

	require.InDelta(t, 2, testutil.ToFloat64(p.workerRuns.WithLabelValues("worker-0")), 0)
	require.InDelta(t, 5, testutil.ToFloat64(p.workerCandidates.WithLabelValues("worker-0")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.workerCandidates.WithLabelValues("worker-1")), 0)
}

func TestPrometheusCollector_RecordCacheLookup(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordCacheLookup(true)
	p.RecordCacheLookup(false)
	p.RecordCacheLookup(false)

	require.InDelta(t, 1, testutil.ToFloat64(p.cacheLookups.WithLabelValues("hit")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.cacheLookups.WithLabelValues("miss")), 0)
}
