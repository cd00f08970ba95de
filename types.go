package feasible

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/feasible/internal/logging"
	"github.com/arloliu/feasible/internal/metrics"
	"github.com/arloliu/feasible/types"
)

// Re-export types from the types package so callers can write feasible.Set,
// feasible.Logger and so on. Internal packages depend on types directly,
// which keeps them free of import cycles with this package.
type (
	Set         = types.Set
	Combination = types.Combination
	Candidate   = types.Candidate
	Problem     = types.Problem
	Result      = types.Result
	Stats       = types.Stats
	Mode        = types.Mode
)

// Re-export interfaces from the types package.
type (
	ShardStrategy    = types.ShardStrategy
	SetSource        = types.SetSource
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export Mode constants.
const (
	ModeFull = types.ModeFull
	ModeStub = types.ModeStub
)

// NewSlogLogger adapts a *slog.Logger to Logger. A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) Logger {
	return logging.NewSlog(logger)
}

// NewPrometheusMetrics returns a Prometheus-backed MetricsCollector.
//
// Parameters:
//   - reg: Registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: Metric namespace ("feasible" if empty)
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}
