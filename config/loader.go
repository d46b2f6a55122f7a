package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/fepslab/feps/types"
)

// Loader builds a Config from defaults, an optional YAML file and
// environment overrides.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a Loader with the default env prefix "FEPS".
func NewLoader() *Loader {
	return &Loader{envPrefix: "FEPS"}
}

// WithConfigPath sets the YAML file to load. A missing file is not an error;
// defaults and environment overrides still apply.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix overrides the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load resolves the configuration and validates it.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, types.NewError(types.ErrInvalidConfig, "failed to read config file").WithCause(err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, types.NewError(types.ErrInvalidConfig, "failed to parse config file").WithCause(err)
			}
		}
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides individual fields from <prefix>_SECTION_KEY variables.
func (l *Loader) applyEnv(cfg *Config) {
	l.envInt("MEMORY_NUM_CLONES", &cfg.Memory.NumClones)
	l.envFloat("MEMORY_GAMMA", &cfg.Memory.Gamma)
	l.envFloat("MEMORY_BASE_REWARD", &cfg.Memory.BaseReward)
	l.envInt64("MEMORY_SEED", &cfg.Memory.Seed)

	l.envString("STORE_BACKEND", &cfg.Store.Backend)
	l.envString("STORE_REDIS_ADDR", &cfg.Store.Redis.Addr)
	l.envString("STORE_REDIS_PASSWORD", &cfg.Store.Redis.Password)
	l.envInt("STORE_REDIS_DB", &cfg.Store.Redis.DB)
	l.envString("STORE_SQLITE_PATH", &cfg.Store.SQLitePath)

	l.envBool("METRICS_ENABLED", &cfg.Metrics.Enabled)
	l.envString("METRICS_ADDR", &cfg.Metrics.Addr)

	l.envString("LOGGING_LEVEL", &cfg.Logging.Level)
	l.envBool("LOGGING_DEVELOPMENT", &cfg.Logging.Development)
}

func (l *Loader) lookup(key string) (string, bool) {
	return os.LookupEnv(l.envPrefix + "_" + key)
}

func (l *Loader) envString(key string, dst *string) {
	if v, ok := l.lookup(key); ok {
		*dst = v
	}
}

func (l *Loader) envInt(key string, dst *int) {
	if v, ok := l.lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (l *Loader) envInt64(key string, dst *int64) {
	if v, ok := l.lookup(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func (l *Loader) envFloat(key string, dst *float64) {
	if v, ok := l.lookup(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func (l *Loader) envBool(key string, dst *bool) {
	if v, ok := l.lookup(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
