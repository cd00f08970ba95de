package service

import (
	"context"
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/arloliu/feasible/internal/natsutil"
	"github.com/arloliu/feasible/types"
)

const (
	defaultClientTimeout = 30 * time.Second
	defaultRetryBase     = 50 * time.Millisecond
	defaultRetryCap      = 2 * time.Second
	retryMultiplier      = 2.0
)

// Client sends requests to a Service. A Client is safe for concurrent use.
//
// Connectivity failures and missing responders are retried with jittered
// backoff; failures reported by the service are not. Infinite thresholds are
// sent as "+Inf" or "-Inf" and decoded by the service.
type Client struct {
	nc        *nats.Conn
	cfg       Config
	timeout   time.Duration
	retries   int
	retryBase time.Duration
	retryCap  time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ Enumerator = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithSubjectPrefix sets the subject prefix the service listens on.
func WithSubjectPrefix(prefix string) ClientOption {
	return func(c *Client) {
		c.cfg.SubjectPrefix = prefix
	}
}

// WithRequestTimeout bounds each attempt when the caller's context has no deadline.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries sets how many times a retryable failure is retried (default 0).
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		c.retries = n
	}
}

// WithRetryBackoff sets the base and cap of the retry delay.
func WithRetryBackoff(base, capDur time.Duration) ClientOption {
	return func(c *Client) {
		c.retryBase = base
		c.retryCap = capDur
	}
}

// WithRetrySeed makes retry delays reproducible. Seed 0 uses the global source.
func WithRetrySeed(seed int64) ClientOption {
	return func(c *Client) {
		c.rng = newRetryRNG(seed)
	}
}

// NewClient creates a Client on nc.
//
// Returns:
//   - *Client: Ready-to-use client
//   - error: ErrConnectionRequired, or ErrInvalidConfig for a bad subject prefix
func NewClient(nc *nats.Conn, opts ...ClientOption) (*Client, error) {
	if nc == nil {
		return nil, types.ErrConnectionRequired
	}

	c := &Client{
		nc:        nc,
		cfg:       DefaultConfig(),
		timeout:   defaultClientTimeout,
		retryBase: defaultRetryBase,
		retryCap:  defaultRetryCap,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if !validToken(c.cfg.SubjectPrefix, true) {
		return nil, fmt.Errorf("%w: invalid subject prefix %q", types.ErrInvalidConfig, c.cfg.SubjectPrefix)
	}
	if c.retries < 0 {
		c.retries = 0
	}

	return c, nil
}

// EnumerateProblem asks the service to enumerate p.
//
// Returns:
//   - *types.Result: Combinations and remote search statistics
//   - error: Transport failure, or an error matching ErrInvalidArgument,
//     ErrBudgetExceeded, ErrContextCanceled or ErrRemote
func (c *Client) EnumerateProblem(ctx context.Context, p *types.Problem) (*types.Result, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: problem is nil", types.ErrInvalidArgument)
	}

	reply, err := c.request(ctx, c.cfg.EnumerateSubject(), p)
	if err != nil {
		return nil, err
	}

	return reply.Result(), nil
}

// Enumerate is EnumerateProblem for plain slices.
func (c *Client) Enumerate(ctx context.Context, sets [][]float64, threshold float64) ([][]float64, error) {
	var in []types.Set
	if sets != nil {
		in = make([]types.Set, len(sets))
		for i, s := range sets {
			in[i] = types.Set(s)
		}
	}

	res, err := c.EnumerateProblem(ctx, &types.Problem{Sets: in, Threshold: threshold})
	if err != nil {
		return nil, err
	}

	return res.Values(), nil
}

// Filter asks the service for the single-set filter result.
func (c *Client) Filter(ctx context.Context, sets [][]float64, theta int) ([][]float64, error) {
	reply, err := c.request(ctx, c.cfg.FilterSubject(), FilterRequest{Sets: sets, Theta: theta})
	if err != nil {
		return nil, err
	}

	return reply.Combinations, nil
}

func (c *Client) request(ctx context.Context, subject string, body any) (*Reply, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", types.ErrInvalidArgument, err)
	}

	id := uuid.NewString()

	var delay time.Duration
	for attempt := 0; ; attempt++ {
		msg, err := c.send(ctx, subject, id, payload)
		if err == nil {
			var reply Reply
			if err := json.Unmarshal(msg.Data, &reply); err != nil {
				return nil, fmt.Errorf("decode reply: %w", err)
			}
			if err := reply.Err(); err != nil {
				return nil, err
			}

			return &reply, nil
		}

		if !natsutil.IsRetryable(err) || attempt >= c.retries {
			return nil, fmt.Errorf("request %s (id %s): %w", subject, id, err)
		}

		delay = c.nextDelay(delay)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", types.ErrContextCanceled, ctx.Err())
		case <-time.After(delay):
		}
	}
}

// nextDelay serializes access to the seeded rng shared by concurrent requests.
func (c *Client) nextDelay(prev time.Duration) time.Duration {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	return jitterBackoff(prev, c.retryBase, retryMultiplier, c.retryCap, c.rng)
}

func (c *Client) send(ctx context.Context, subject, id string, payload []byte) (*nats.Msg, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg := nats.NewMsg(subject)
	msg.Data = payload
	msg.Header.Set(HeaderRequestID, id)

	return c.nc.RequestMsgWithContext(ctx, msg)
}
