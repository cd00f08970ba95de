package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/arloliu/feasible/types"
)

const (
	// DefaultSubjectPrefix is the subject prefix served by default.
	DefaultSubjectPrefix = "feasible"

	// DefaultQueueGroup is the queue group shared by service replicas.
	DefaultQueueGroup = "feasible"

	// DefaultCacheBucket is the KV bucket used for cached results.
	DefaultCacheBucket = "feasible-results"

	// DefaultCacheTTL is how long cached results live.
	DefaultCacheTTL = 10 * time.Minute

	// DefaultCacheNamespace prefixes cache keys.
	DefaultCacheNamespace = "full"

	// DefaultRequestTimeout bounds one enumeration served over NATS.
	DefaultRequestTimeout = 30 * time.Second
)

// Config configures a Service.
type Config struct {
	// SubjectPrefix is prepended to ".enumerate" and ".filter".
	SubjectPrefix string `yaml:"subjectPrefix"`

	// QueueGroup load-balances requests across replicas.
	QueueGroup string `yaml:"queueGroup"`

	// CacheBucket names the KV bucket created by EnsureResultCache.
	CacheBucket string `yaml:"cacheBucket"`

	// CacheTTL is the lifetime of cached results.
	CacheTTL time.Duration `yaml:"cacheTTL"`

	// CacheNamespace separates cache entries produced under different
	// enumerator settings. Replicas with different modes or budgets must use
	// different namespaces; see EnumeratorNamespace.
	CacheNamespace string `yaml:"cacheNamespace"`

	// RequestTimeout bounds each enumeration.
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		SubjectPrefix:  DefaultSubjectPrefix,
		QueueGroup:     DefaultQueueGroup,
		CacheBucket:    DefaultCacheBucket,
		CacheTTL:       DefaultCacheTTL,
		CacheNamespace: DefaultCacheNamespace,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// ApplyDefaults fills zero-valued fields with defaults.
func ApplyDefaults(cfg *Config) {
	d := DefaultConfig()

	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = d.SubjectPrefix
	}
	if cfg.QueueGroup == "" {
		cfg.QueueGroup = d.QueueGroup
	}
	if cfg.CacheBucket == "" {
		cfg.CacheBucket = d.CacheBucket
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = d.CacheTTL
	}
	if cfg.CacheNamespace == "" {
		cfg.CacheNamespace = d.CacheNamespace
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = d.RequestTimeout
	}
}

// Validate checks configuration constraints.
func (cfg *Config) Validate() error {
	if !validToken(cfg.SubjectPrefix, true) {
		return fmt.Errorf("%w: invalid subject prefix %q", types.ErrInvalidConfig, cfg.SubjectPrefix)
	}
	if !validToken(cfg.QueueGroup, false) {
		return fmt.Errorf("%w: invalid queue group %q", types.ErrInvalidConfig, cfg.QueueGroup)
	}
	if !validToken(cfg.CacheNamespace, false) {
		return fmt.Errorf("%w: invalid cache namespace %q", types.ErrInvalidConfig, cfg.CacheNamespace)
	}
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("%w: CacheTTL must be >= 0, got %v", types.ErrInvalidConfig, cfg.CacheTTL)
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("%w: RequestTimeout must be >= 0, got %v", types.ErrInvalidConfig, cfg.RequestTimeout)
	}

	return nil
}

// EnumerateSubject returns the subject served for full enumeration.
func (cfg Config) EnumerateSubject() string {
	return cfg.SubjectPrefix + ".enumerate"
}

// FilterSubject returns the subject served for the single-set filter.
func (cfg Config) FilterSubject() string {
	return cfg.SubjectPrefix + ".filter"
}

// validToken rejects empty names, whitespace and wildcards. Dots separate
// subject tokens and are only allowed when dotted is set.
func validToken(s string, dotted bool) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n*>") {
		return false
	}
	if !dotted && strings.Contains(s, ".") {
		return false
	}

	return !strings.HasPrefix(s, ".") && !strings.HasSuffix(s, ".") && !strings.Contains(s, "..")
}
