package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNop(t *testing.T) {
	metrics := NewNop()

	require.NotNil(t, metrics)
	require.IsType(t, &NopMetrics{}, metrics)
}

func TestNopMetrics_DiscardsEverything(t *testing.T) {
	metrics := NewNop()

	require.NotPanics(t, func() {
		metrics.RecordEnumeration(0.5, 10, true)
		metrics.RecordEnumeration(-1, -1, false)
		metrics.RecordNodes(100, 40)
		metrics.RecordWorkerRun("worker-0", 3, 0.01)
		metrics.RecordCacheLookup(true)
		metrics.RecordCacheLookup(false)
	})
}
