// Package kvutil provides helpers for NATS JetStream KeyValue buckets.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	defaultMaxRetries = 3
	baseBackoff       = 10 * time.Millisecond
)

// EnsureBucket creates a KV bucket, or opens it when it already exists.
//
// Several service replicas may start at once and race to create the same
// result cache bucket; losers of the race open the existing bucket. Transient
// failures are retried with exponential backoff (10ms, 20ms, 40ms, ...).
//
// Parameters:
//   - ctx: Context for cancellation; no retry happens after it is done
//   - js: JetStream handle
//   - cfg: Bucket configuration
//   - maxRetries: Attempts before giving up (<= 0 means 3)
//
// Returns:
//   - jetstream.KeyValue: The bucket
//   - error: Last failure after all attempts, or the context error
//
// Example:
//
//	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
//	    Bucket: "feasible-results",
//	    TTL:    10 * time.Minute,
//	}, 3)
func EnsureBucket(
	ctx context.Context,
	js jetstream.JetStream,
	cfg jetstream.KeyValueConfig,
	maxRetries int,
) (jetstream.KeyValue, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := range maxRetries {
		kv, err := openOrCreate(ctx, js, cfg)
		if err == nil {
			return kv, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context done while ensuring KV bucket %s: %w", cfg.Bucket, ctx.Err())
		}

		if attempt < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(Backoff(attempt)):
			}
		}
	}

	return nil, fmt.Errorf("ensure KV bucket %s after %d attempts: %w", cfg.Bucket, maxRetries, lastErr)
}

// Backoff returns the delay before retry attempt+1: 10ms doubled per attempt,
// capped at 1s.
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 6 {
		return time.Second
	}

	return baseBackoff << uint(attempt) //nolint:gosec // attempt is bounded above
}

func openOrCreate(ctx context.Context, js jetstream.JetStream, cfg jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	kv, err := js.CreateKeyValue(ctx, cfg)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, jetstream.ErrBucketExists) {
		return nil, err
	}

	kv, err = js.KeyValue(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket exists but failed to open: %w", err)
	}

	return kv, nil
}
