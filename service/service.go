package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/feasible"
	"github.com/arloliu/feasible/internal/logging"
	"github.com/arloliu/feasible/internal/metrics"
	"github.com/arloliu/feasible/types"
)

const drainPollInterval = 10 * time.Millisecond

// Enumerator is the enumeration backend served by a Service.
// *feasible.Enumerator and *Client both implement it.
type Enumerator interface {
	EnumerateProblem(ctx context.Context, p *types.Problem) (*types.Result, error)
}

// Service answers enumeration and filter requests over NATS.
type Service struct {
	cfg        Config
	nc         *nats.Conn
	enumerator Enumerator
	logger     types.Logger
	metrics    types.MetricsCollector
	cache      jetstream.KeyValue

	mu      sync.Mutex
	started bool
	subs    []*nats.Subscription
	cancel  context.CancelFunc

	// ctxMu guards ctx separately from mu so handlers never wait on Stop.
	ctxMu sync.RWMutex
	ctx   context.Context
}

// New creates a Service. It does not subscribe until Start.
//
// Parameters:
//   - cfg: Configuration (nil uses DefaultConfig); zero fields receive defaults
//   - nc: NATS connection
//   - enumerator: Backend that runs enumerations
//   - opts: Optional logger, metrics and result cache
//
// Returns:
//   - *Service: Service ready to Start
//   - error: ErrConnectionRequired, ErrEnumeratorRequired or ErrInvalidConfig
func New(cfg *Config, nc *nats.Conn, enumerator Enumerator, opts ...Option) (*Service, error) {
	if nc == nil {
		return nil, types.ErrConnectionRequired
	}
	if enumerator == nil {
		return nil, types.ErrEnumeratorRequired
	}

	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
		ApplyDefaults(&c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	o := serviceOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	s := &Service{
		cfg:        c,
		nc:         nc,
		enumerator: enumerator,
		logger:     o.logger,
		metrics:    o.metrics,
		cache:      o.cache,
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.NewNop()
	}

	return s, nil
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Start subscribes to the enumerate and filter subjects.
//
// Enumerations run under a context derived from ctx; canceling ctx aborts
// in-flight requests.
//
// Returns:
//   - error: ErrAlreadyStarted, or a subscription failure
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return types.ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.ctxMu.Lock()
	s.ctx = runCtx
	s.ctxMu.Unlock()
	s.cancel = cancel

	handlers := []struct {
		subject string
		handle  nats.MsgHandler
	}{
		{s.cfg.EnumerateSubject(), s.handleEnumerate},
		{s.cfg.FilterSubject(), s.handleFilter},
	}

	subs := make([]*nats.Subscription, 0, len(handlers))
	for _, h := range handlers {
		sub, err := s.nc.QueueSubscribe(h.subject, s.cfg.QueueGroup, h.handle)
		if err != nil {
			for _, prev := range subs {
				_ = prev.Unsubscribe()
			}
			s.cancel()

			return fmt.Errorf("subscribe %s: %w", h.subject, err)
		}
		subs = append(subs, sub)
	}

	if err := s.nc.Flush(); err != nil {
		for _, sub := range subs {
			_ = sub.Unsubscribe()
		}
		s.cancel()

		return fmt.Errorf("flush subscriptions: %w", err)
	}

	s.subs = subs
	s.started = true
	s.logger.Info("service started",
		"enumerate", s.cfg.EnumerateSubject(),
		"filter", s.cfg.FilterSubject(),
		"queue", s.cfg.QueueGroup,
		"cache", s.cache != nil,
	)

	return nil
}

// Stop drains the subscriptions, waits for in-flight requests up to
// RequestTimeout, then cancels any enumeration still running.
//
// Returns:
//   - error: ErrNotStarted, or drain failures
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.ErrNotStarted
	}

	var errs []error
	for _, sub := range s.subs {
		if err := sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			errs = append(errs, fmt.Errorf("drain %s: %w", sub.Subject, err))
		}
	}

	deadline := time.Now().Add(s.cfg.RequestTimeout)
	for _, sub := range s.subs {
		for sub.IsValid() && time.Now().Before(deadline) {
			time.Sleep(drainPollInterval)
		}
	}

	s.cancel()
	s.subs = nil
	s.started = false
	s.logger.Info("service stopped")

	return errors.Join(errs...)
}

func (s *Service) baseContext() context.Context {
	s.ctxMu.RLock()
	defer s.ctxMu.RUnlock()

	if s.ctx == nil {
		return context.Background()
	}

	return s.ctx
}

func (s *Service) handleEnumerate(msg *nats.Msg) {
	s.respond(msg, s.enumerate(msg.Data))
}

func (s *Service) handleFilter(msg *nats.Msg) {
	var req FilterRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.respond(msg, errorReply(fmt.Errorf("%w: decode filter request: %w", types.ErrInvalidArgument, err)))
		return
	}

	s.respond(msg, Reply{Combinations: feasible.FindFeasibleSumSubsets(req.Sets, req.Theta)})
}

func (s *Service) enumerate(data []byte) Reply {
	var p types.Problem
	if err := json.Unmarshal(data, &p); err != nil {
		return errorReply(fmt.Errorf("%w: decode problem: %w", types.ErrInvalidArgument, err))
	}

	ctx := s.baseContext()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	var key string
	if s.cache != nil && p.Validate() == nil {
		k, err := CacheKey(s.cfg.CacheNamespace, &p)
		if err != nil {
			s.logger.Warn("cannot derive cache key", "error", err)
		} else {
			key = k
			if reply, ok := s.lookup(ctx, key); ok {
				s.logger.Debug("served from cache", "key", key)
				return reply
			}
		}
	}

	res, err := s.enumerator.EnumerateProblem(ctx, &p)
	if err != nil {
		s.logger.Debug("enumeration request failed", "sets", len(p.Sets), "error", err)
		return errorReply(err)
	}

	stats := res.Stats
	reply := Reply{Combinations: res.Values(), Stats: &stats}
	if key != "" {
		s.store(ctx, key, reply)
	}

	return reply
}

func (s *Service) respond(msg *nats.Msg, reply Reply) {
	if reply.Combinations == nil && reply.Code == "" {
		reply.Combinations = [][]float64{}
	}
	reply.RequestID = msg.Header.Get(HeaderRequestID)
	if reply.Code != "" {
		s.logger.Debug("request failed", "subject", msg.Subject, "request_id", reply.RequestID, "code", reply.Code)
	}

	data, err := json.Marshal(reply)
	if err != nil {
		s.logger.Error("failed to encode reply", "error", err)
		data, _ = json.Marshal(errorReply(fmt.Errorf("encode reply: %w", err)))
	}

	resp := nats.NewMsg(msg.Reply)
	resp.Data = data
	if reply.RequestID != "" {
		resp.Header.Set(HeaderRequestID, reply.RequestID)
	}

	if err := msg.RespondMsg(resp); err != nil {
		s.logger.Warn("failed to send reply", "subject", msg.Subject, "error", err)
	}
}
