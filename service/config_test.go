package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/feasible/types"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{SubjectPrefix: "calc.v1"}
	ApplyDefaults(&cfg)

	require.Equal(t, "calc.v1", cfg.SubjectPrefix)
	require.Equal(t, DefaultQueueGroup, cfg.QueueGroup)
	require.Equal(t, DefaultCacheBucket, cfg.CacheBucket)
	require.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	require.Equal(t, DefaultCacheNamespace, cfg.CacheNamespace)
	require.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "calc.v1.enumerate", cfg.EnumerateSubject())
	require.Equal(t, "calc.v1.filter", cfg.FilterSubject())
}

func TestConfig_SubjectsOnReturnedValue(t *testing.T) {
	require.Equal(t, "feasible.enumerate", DefaultConfig().EnumerateSubject())
	require.Equal(t, "feasible.filter", DefaultConfig().FilterSubject())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"wildcard prefix", func(c *Config) { c.SubjectPrefix = "calc.*" }},
		{"full wildcard prefix", func(c *Config) { c.SubjectPrefix = ">" }},
		{"empty token", func(c *Config) { c.SubjectPrefix = "calc..v1" }},
		{"trailing dot", func(c *Config) { c.SubjectPrefix = "calc." }},
		{"dotted queue", func(c *Config) { c.QueueGroup = "a.b" }},
		{"space in namespace", func(c *Config) { c.CacheNamespace = "a b" }},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), types.ErrInvalidConfig)
		})
	}
}

func TestConfig_YAML(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte(`
subjectPrefix: math.feasible
queueGroup: solvers
cacheTTL: 90s
requestTimeout: 5s
`), &cfg)
	require.NoError(t, err)
	ApplyDefaults(&cfg)

	require.Equal(t, "math.feasible", cfg.SubjectPrefix)
	require.Equal(t, "solvers", cfg.QueueGroup)
	require.Equal(t, 90*time.Second, cfg.CacheTTL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, DefaultCacheBucket, cfg.CacheBucket)
}
