package feasible

// Option configures an Enumerator with optional dependencies.
type Option func(*enumeratorOptions)

type enumeratorOptions struct {
	logger   Logger
	metrics  MetricsCollector
	hooks    *Hooks
	strategy ShardStrategy
}

// WithLogger sets a logger.
//
// Example:
//
//	handler := slog.NewTextHandler(os.Stderr, nil)
//	e, err := feasible.NewEnumerator(&cfg, feasible.WithLogger(feasible.NewSlogLogger(slog.New(handler))))
func WithLogger(logger Logger) Option {
	return func(o *enumeratorOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Example:
//
//	collector := feasible.NewPrometheusMetrics(prometheus.DefaultRegisterer, "")
//	e, err := feasible.NewEnumerator(&cfg, feasible.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *enumeratorOptions) {
		o.metrics = metrics
	}
}

// WithHooks sets enumeration event hooks. Nil callbacks are ignored.
//
// Example:
//
//	hooks := &feasible.Hooks{
//	    OnCombination: func(ctx context.Context, c feasible.Combination) error {
//	        return enc.Encode(c)
//	    },
//	}
//	e, err := feasible.NewEnumerator(&cfg, feasible.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *enumeratorOptions) {
		o.hooks = hooks
	}
}

// WithStrategy sets the shard strategy used when Workers > 1.
//
// Default: strategy.NewRoundRobin()
//
// Example:
//
//	e, err := feasible.NewEnumerator(&cfg, feasible.WithStrategy(strategy.NewConsistentHash()))
func WithStrategy(strategy ShardStrategy) Option {
	return func(o *enumeratorOptions) {
		o.strategy = strategy
	}
}
