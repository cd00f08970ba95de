package service

import (
	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/feasible/types"
)

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	logger  types.Logger
	metrics types.MetricsCollector
	cache   jetstream.KeyValue
}

// WithLogger sets the service logger.
func WithLogger(logger types.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithMetrics sets the collector that records cache lookups.
func WithMetrics(metrics types.MetricsCollector) Option {
	return func(o *serviceOptions) {
		o.metrics = metrics
	}
}

// WithResultCache enables caching of successful enumeration replies in kv.
//
// Example:
//
//	kv, err := service.EnsureResultCache(ctx, js, cfg)
//	svc, err := service.New(&cfg, nc, e, service.WithResultCache(kv))
func WithResultCache(kv jetstream.KeyValue) Option {
	return func(o *serviceOptions) {
		o.cache = kv
	}
}
