package feasible

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	maxWorkers           = 1024
	defaultCheckInterval = 1024
)

// BudgetConfig bounds a single enumeration.
//
// Zero values mean "unlimited". The enumeration is exponential in the number
// of sets, so long-running callers should set at least one bound.
type BudgetConfig struct {
	// MaxNodes caps the number of candidate values examined across all workers.
	MaxNodes int64 `yaml:"maxNodes"`

	// MaxResults caps the number of combinations returned.
	MaxResults int64 `yaml:"maxResults"`

	// Timeout bounds the wall-clock time of one enumeration.
	Timeout time.Duration `yaml:"timeout"`
}

// Config holds enumerator settings.
type Config struct {
	// Mode selects full multi-set enumeration (default) or the single-set
	// filter compatibility behavior.
	Mode Mode `yaml:"mode"`

	// Workers is the number of goroutines exploring first-level candidates.
	// 1 runs the walk on the calling goroutine.
	//
	// Default: 1
	Workers int `yaml:"workers"`

	// WorkerIDPrefix prefixes worker IDs passed to the shard strategy,
	// metrics and hooks ("<prefix>-0", "<prefix>-1", ...).
	//
	// Default: "worker"
	WorkerIDPrefix string `yaml:"workerIdPrefix"`

	// CheckInterval is the number of visited nodes between context checks.
	//
	// Default: 1024
	CheckInterval int64 `yaml:"checkInterval"`

	// Budget bounds each enumeration.
	Budget BudgetConfig `yaml:"budget"`
}

// DefaultConfig returns the default configuration: sequential full enumeration
// with no budget.
//
// Example:
//
//	cfg := feasible.DefaultConfig()
//	cfg.Workers = 4
//	e, err := feasible.NewEnumerator(&cfg)
func DefaultConfig() Config {
	return Config{
		Mode:           ModeFull,
		Workers:        1,
		WorkerIDPrefix: "worker",
		CheckInterval:  defaultCheckInterval,
	}
}

// ApplyDefaults fills zero-valued fields with defaults.
//
// Mode and Budget are left alone: their zero values are meaningful.
func ApplyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Workers == 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.WorkerIDPrefix == "" {
		cfg.WorkerIDPrefix = defaults.WorkerIDPrefix
	}
	if cfg.CheckInterval == 0 {
		cfg.CheckInterval = defaults.CheckInterval
	}
}

// Validate checks configuration constraints.
//
// Rules:
//   - 1 <= Workers <= 1024
//   - CheckInterval > 0
//   - Budget values are not negative
//   - Mode is known
//
// Returns:
//   - error: ErrInvalidConfig wrapping the first violated rule, nil if valid
func (cfg *Config) Validate() error {
	if cfg.Workers < 1 || cfg.Workers > maxWorkers {
		return fmt.Errorf("%w: Workers (%d) must be between 1 and %d", ErrInvalidConfig, cfg.Workers, maxWorkers)
	}

	if cfg.CheckInterval <= 0 {
		return fmt.Errorf("%w: CheckInterval must be > 0, got %d", ErrInvalidConfig, cfg.CheckInterval)
	}

	if cfg.Budget.MaxNodes < 0 {
		return fmt.Errorf("%w: Budget.MaxNodes must be >= 0, got %d", ErrInvalidConfig, cfg.Budget.MaxNodes)
	}
	if cfg.Budget.MaxResults < 0 {
		return fmt.Errorf("%w: Budget.MaxResults must be >= 0, got %d", ErrInvalidConfig, cfg.Budget.MaxResults)
	}
	if cfg.Budget.Timeout < 0 {
		return fmt.Errorf("%w: Budget.Timeout must be >= 0, got %v", ErrInvalidConfig, cfg.Budget.Timeout)
	}

	if cfg.Mode != ModeFull && cfg.Mode != ModeStub {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, cfg.Mode)
	}

	return nil
}

// ValidateWithWarnings logs non-fatal concerns about the configuration.
//
// NewEnumerator calls it after Validate.
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.Workers > runtime.NumCPU() {
		logger.Warn(
			"Workers exceeds available CPUs, extra workers only add scheduling overhead",
			"workers", cfg.Workers,
			"cpus", runtime.NumCPU(),
		)
	}

	if cfg.Mode == ModeStub {
		logger.Warn("stub mode enabled: inputs with more than one set yield no combinations")
	}
}

// TestConfig returns a configuration suited to tests: two workers and a
// context check on every node so cancellation is observed immediately.
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.CheckInterval = 1

	return cfg
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Parameters:
//   - path: YAML file path
//
// Returns:
//   - Config: Loaded configuration
//   - error: Read, parse or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
