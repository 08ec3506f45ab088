// Package configuration loads app config from env and an optional .env
// file using Viper, and loads column specs from YAML.
package configuration

import (
	"fmt"

	"github.com/spf13/viper"
)

// State store backends selectable via STATE_BACKEND.
const (
	BackendFile  = "file"
	BackendBolt  = "bolt"
	BackendRedis = "redis"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// StateBackend selects where fitted state is published: file, bolt, or redis.
	StateBackend string `mapstructure:"STATE_BACKEND"`
	// StatePath is the publish path for the file backend.
	StatePath string `mapstructure:"STATE_PATH"`
	// BoltPath is the database path for the bolt backend.
	BoltPath string `mapstructure:"BOLT_PATH"`
	// RedisAddr is the Redis address for the redis backend (e.g. localhost:6379).
	RedisAddr string `mapstructure:"REDIS_ADDR"`
	// RedisKey is the key the redis backend publishes under; empty uses the store default.
	RedisKey string `mapstructure:"REDIS_KEY"`
	// SpecPath is an optional YAML column spec; empty uses the built-in HR spec.
	SpecPath string `mapstructure:"SPEC_PATH"`
	// LogLevel is the zerolog level name (e.g. "debug", "info").
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored; env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("STATE_BACKEND", BackendFile)
	v.SetDefault("STATE_PATH", "fitted-state.json")
	v.SetDefault("BOLT_PATH", "fitted-state.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_KEY", "")
	v.SetDefault("SPEC_PATH", "")
	v.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.StateBackend {
	case BackendFile, BackendBolt, BackendRedis:
	default:
		return nil, fmt.Errorf("config: STATE_BACKEND must be one of file, bolt, redis; got %q", cfg.StateBackend)
	}

	if cfg.StateBackend == BackendFile && cfg.StatePath == "" {
		return nil, fmt.Errorf("config: STATE_PATH must be set for the file backend")
	}
	if cfg.StateBackend == BackendBolt && cfg.BoltPath == "" {
		return nil, fmt.Errorf("config: BOLT_PATH must be set for the bolt backend")
	}
	if cfg.StateBackend == BackendRedis && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("config: REDIS_ADDR must be set for the redis backend")
	}

	return &cfg, nil
}
