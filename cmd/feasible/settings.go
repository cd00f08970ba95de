package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/feasible"
	"github.com/arloliu/feasible/internal/logging"
	"github.com/arloliu/feasible/service"
	"github.com/arloliu/feasible/types"
)

const (
	envWorkers  = "FEASIBLE_WORKERS"
	envLogLevel = "FEASIBLE_LOG_LEVEL"

	defaultLogLevel  = "warn"
	defaultLogFormat = "text"

	// requestTimeout bounds one remote request.
	requestTimeout = 30 * time.Second
)

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// settings is the merged CLI configuration. Precedence, lowest first:
// defaults, --config file, environment, flags.
type settings struct {
	Enumerator feasible.Config `yaml:"enumerator"`
	Service    service.Config  `yaml:"service"`
	Log        logConfig       `yaml:"log"`
	Strategy   string          `yaml:"strategy"`
}

func defaultSettings() settings {
	return settings{
		Enumerator: feasible.DefaultConfig(),
		Service:    service.DefaultConfig(),
		Log:        logConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Strategy:   strategyRoundRobin,
	}
}

// loadSettings builds settings for cmd from the config file, the environment
// and any flags the user set explicitly.
func loadSettings(cmd *cobra.Command) (settings, error) {
	s := defaultSettings()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse config file: %w", err)
		}

		// Zero values in the file mean "use the default". Environment and
		// flag values are taken as given and validated below.
		feasible.ApplyDefaults(&s.Enumerator)
		service.ApplyDefaults(&s.Service)
		if s.Log.Level == "" {
			s.Log.Level = defaultLogLevel
		}
		if s.Log.Format == "" {
			s.Log.Format = defaultLogFormat
		}
	}

	if err := applyEnv(&s); err != nil {
		return s, err
	}
	if err := applyFlags(cmd, &s); err != nil {
		return s, err
	}

	if err := s.Enumerator.Validate(); err != nil {
		return s, err
	}
	if err := s.Service.Validate(); err != nil {
		return s, err
	}

	return s, nil
}

func applyEnv(s *settings) error {
	if v := os.Getenv(envWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", types.ErrInvalidConfig, envWorkers, v)
		}
		s.Enumerator.Workers = n
	}
	if v := os.Getenv(envLogLevel); v != "" {
		s.Log.Level = v
	}

	return nil
}

func applyFlags(cmd *cobra.Command, s *settings) error {
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		s.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		s.Log.Format, _ = flags.GetString("log-format")
	}

	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		s.Enumerator.Workers, _ = flags.GetInt("workers")
	}
	if flags.Lookup("strategy") != nil && flags.Changed("strategy") {
		s.Strategy, _ = flags.GetString("strategy")
	}
	if flags.Lookup("mode") != nil && flags.Changed("mode") {
		name, _ := flags.GetString("mode")
		mode, err := types.ParseMode(name)
		if err != nil {
			return err
		}
		s.Enumerator.Mode = mode
	}
	if flags.Lookup("max-nodes") != nil && flags.Changed("max-nodes") {
		s.Enumerator.Budget.MaxNodes, _ = flags.GetInt64("max-nodes")
	}
	if flags.Lookup("max-results") != nil && flags.Changed("max-results") {
		s.Enumerator.Budget.MaxResults, _ = flags.GetInt64("max-results")
	}
	if flags.Lookup("timeout") != nil && flags.Changed("timeout") {
		s.Enumerator.Budget.Timeout, _ = flags.GetDuration("timeout")
	}

	if flags.Lookup("subject-prefix") != nil && flags.Changed("subject-prefix") {
		s.Service.SubjectPrefix, _ = flags.GetString("subject-prefix")
	}
	if flags.Lookup("queue-group") != nil && flags.Changed("queue-group") {
		s.Service.QueueGroup, _ = flags.GetString("queue-group")
	}
	if flags.Lookup("cache-ttl") != nil && flags.Changed("cache-ttl") {
		s.Service.CacheTTL, _ = flags.GetDuration("cache-ttl")
	}
	if flags.Lookup("request-timeout") != nil && flags.Changed("request-timeout") {
		s.Service.RequestTimeout, _ = flags.GetDuration("request-timeout")
	}

	return nil
}

// addEnumeratorFlags registers the flags shared by enumerate and serve.
func addEnumeratorFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int("workers", 1, "Parallel workers (env FEASIBLE_WORKERS)")
	flags.String("strategy", strategyRoundRobin, "Shard strategy: round-robin, contiguous, consistent-hash")
	flags.String("mode", "full", "Enumeration mode: full or stub")
	flags.Int64("max-nodes", 0, "Visited-node budget, 0 for unlimited")
	flags.Int64("max-results", 0, "Result budget, 0 for unlimited")
	flags.Duration("timeout", 0, "Per-enumeration timeout, 0 for none")
}

func (s *settings) logger(cmd *cobra.Command) types.Logger {
	return logging.New(cmd.ErrOrStderr(), s.Log.Level, s.Log.Format)
}

func (s *settings) newEnumerator(logger types.Logger, opts ...feasible.Option) (*feasible.Enumerator, error) {
	strat, err := newStrategy(s.Strategy)
	if err != nil {
		return nil, err
	}

	opts = append([]feasible.Option{
		feasible.WithLogger(logger),
		feasible.WithStrategy(strat),
	}, opts...)

	return feasible.NewEnumerator(&s.Enumerator, opts...)
}
