// Package config loads the FEPS runtime configuration.
//
// Precedence: defaults, then the YAML file, then environment variable
// overrides:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("feps.yaml").
//	    WithEnvPrefix("FEPS").
//	    Load()
package config

import (
	"github.com/fepslab/feps/memory"
	"github.com/fepslab/feps/store"
	"github.com/fepslab/feps/types"
)

// Store backend identifiers.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config is the root configuration tree.
type Config struct {
	Memory  memory.Config `yaml:"memory" json:"memory"`
	Store   StoreConfig   `yaml:"store" json:"store"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// StoreConfig selects and configures the snapshot persistence backend.
type StoreConfig struct {
	// Backend is one of "memory", "redis", "sqlite".
	Backend string `yaml:"backend" json:"backend"`

	Redis store.RedisConfig `yaml:"redis" json:"redis"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path" json:"sqlite_path"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// LoggingConfig controls zap logger construction.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" json:"level"`

	// Development switches to the human-readable console encoder.
	Development bool `yaml:"development" json:"development"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Memory: memory.Config{
			NumClones:  memory.DefaultNumClones,
			Gamma:      memory.DefaultGamma,
			BaseReward: memory.DefaultBaseReward,
		},
		Store: StoreConfig{
			Backend:    BackendMemory,
			Redis:      store.DefaultRedisConfig(),
			SQLitePath: "feps.db",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9102",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Memory.NumClones < 0 {
		return types.NewError(types.ErrInvalidCloneCount, "memory.num_clones must be at least 1")
	}
	if c.Memory.Gamma < 0 || c.Memory.Gamma > 1 {
		return types.NewError(types.ErrInvalidConfig, "memory.gamma must be in [0, 1]")
	}
	if c.Memory.BaseReward < 0 {
		return types.NewError(types.ErrInvalidConfig, "memory.base_reward must be non-negative")
	}
	switch c.Store.Backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return types.NewError(types.ErrInvalidConfig, "store.backend must be memory, redis or sqlite")
	}
	if c.Store.Backend == BackendSQLite && c.Store.SQLitePath == "" {
		return types.NewError(types.ErrInvalidConfig, "store.sqlite_path is required for the sqlite backend")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return types.NewError(types.ErrInvalidConfig, "logging.level must be debug, info, warn or error")
	}
	return nil
}
