package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zeebo/xxh3"

	"github.com/arloliu/feasible"
	"github.com/arloliu/feasible/internal/kvutil"
	"github.com/arloliu/feasible/internal/natsutil"
	"github.com/arloliu/feasible/types"
)

const ensureCacheRetries = 3

// EnsureResultCache creates or opens the KV bucket named by cfg.CacheBucket.
//
// Parameters:
//   - ctx: Context for cancellation
//   - js: JetStream handle
//   - cfg: Service configuration (nil uses defaults)
//
// Returns:
//   - jetstream.KeyValue: Bucket to pass to WithResultCache
//   - error: Bucket creation failure
func EnsureResultCache(ctx context.Context, js jetstream.JetStream, cfg *Config) (jetstream.KeyValue, error) {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
		ApplyDefaults(&c)
	}

	return kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      c.CacheBucket,
		Description: "cached feasible enumeration replies",
		TTL:         c.CacheTTL,
		History:     1,
	}, ensureCacheRetries)
}

// EnumeratorNamespace derives a cache namespace from the enumerator settings
// that decide a reply: the mode and the node and result budgets. Replicas
// sharing a bucket only share entries when these settings agree.
//
// Example:
//
//	cfg.CacheNamespace = service.EnumeratorNamespace(&enumCfg) // "full-n0-r1000"
func EnumeratorNamespace(cfg *feasible.Config) string {
	return fmt.Sprintf("%s-n%d-r%d", cfg.Mode.String(), cfg.Budget.MaxNodes, cfg.Budget.MaxResults)
}

// CacheKey returns the KV key for a problem: the namespace followed by the
// hex xxh3-128 hash of the problem's canonical JSON encoding.
func CacheKey(namespace string, p *types.Problem) (string, error) {
	canonical, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode problem: %w", err)
	}

	sum := xxh3.Hash128(canonical).Bytes()

	return fmt.Sprintf("%s.%x", namespace, sum[:]), nil
}

// lookup returns a cached reply for key. Misses and cache failures both
// report false; failures are logged.
func (s *Service) lookup(ctx context.Context, key string) (Reply, bool) {
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, jetstream.ErrKeyNotFound) {
			s.logCacheError("cache get failed", key, err)
		}
		s.metrics.RecordCacheLookup(false)

		return Reply{}, false
	}

	var reply Reply
	if err := json.Unmarshal(entry.Value(), &reply); err != nil {
		s.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		s.metrics.RecordCacheLookup(false)

		return Reply{}, false
	}

	s.metrics.RecordCacheLookup(true)
	reply.Cached = true

	return reply, true
}

func (s *Service) store(ctx context.Context, key string, reply Reply) {
	data, err := json.Marshal(reply)
	if err != nil {
		s.logger.Warn("failed to encode reply for cache", "key", key, "error", err)
		return
	}

	if _, err := s.cache.Put(ctx, key, data); err != nil {
		s.logCacheError("cache put failed", key, err)
	}
}

func (s *Service) logCacheError(msg, key string, err error) {
	if natsutil.IsConnectivityError(err) {
		s.logger.Warn(msg+", serving without cache", "key", key, "error", err)
		return
	}

	s.logger.Error(msg, "key", key, "error", err)
}
