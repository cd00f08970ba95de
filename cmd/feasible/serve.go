package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/arloliu/feasible"
	"github.com/arloliu/feasible/internal/metrics"
	"github.com/arloliu/feasible/service"
	"github.com/arloliu/feasible/types"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve enumeration requests over NATS",
		Example: `  feasible serve --nats-url nats://127.0.0.1:4222
  feasible serve --workers 4 --cache --cache-ttl 1h --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	flags := cmd.Flags()
	flags.String("nats-url", nats.DefaultURL, "NATS server URL")
	flags.String("subject-prefix", service.DefaultSubjectPrefix, "Subject prefix to serve")
	flags.String("queue-group", service.DefaultQueueGroup, "Queue group shared by replicas")
	flags.Bool("cache", false, "Cache results in a JetStream KV bucket")
	flags.Duration("cache-ttl", service.DefaultCacheTTL, "Lifetime of cached results")
	flags.Duration("request-timeout", service.DefaultRequestTimeout, "Per-request enumeration timeout")
	flags.String("metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	addEnumeratorFlags(cmd)

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := s.logger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewPrometheus(reg, "")

	e, err := s.newEnumerator(logger, feasible.WithMetrics(collector))
	if err != nil {
		return err
	}

	url, _ := cmd.Flags().GetString("nats-url")
	nc, err := nats.Connect(url,
		nats.Name("feasible"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("disconnected from NATS", "error", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("reconnected to NATS", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer nc.Close()

	if s.Service.CacheNamespace == service.DefaultCacheNamespace {
		s.Service.CacheNamespace = service.EnumeratorNamespace(&s.Enumerator)
	}

	opts := []service.Option{service.WithLogger(logger), service.WithMetrics(collector)}
	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		kv, err := openCache(ctx, nc, &s.Service)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithResultCache(kv))
	}

	svc, err := service.New(&s.Service, nc, e, opts...)
	if err != nil {
		return err
	}

	var srv *http.Server
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		srv, err = startMetricsServer(addr, reg, logger)
		if err != nil {
			return err
		}
	}

	if err := svc.Start(ctx); err != nil {
		return err
	}
	logger.Info("feasible service running",
		"nats", nc.ConnectedUrl(),
		"subject", s.Service.EnumerateSubject(),
		"workers", s.Enumerator.Workers,
		"mode", s.Enumerator.Mode,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	var errs []error
	if err := svc.Stop(); err != nil {
		errs = append(errs, err)
	}
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

func openCache(ctx context.Context, nc *nats.Conn, cfg *service.Config) (jetstream.KeyValue, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	kv, err := service.EnsureResultCache(ctx, js, cfg)
	if err != nil {
		return nil, fmt.Errorf("result cache: %w", err)
	}

	return kv, nil
}

func startMetricsServer(addr string, reg *prometheus.Registry, logger types.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("metrics endpoint listening", "addr", ln.Addr().String())

	return srv, nil
}
