package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all daemon configuration.
type Config struct {
	Listener  ListenerConfig
	HTTP      HTTPConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Manifest  ManifestConfig
}

// ListenerConfig holds attach listener configuration.
type ListenerConfig struct {
	Capacity     int    `envconfig:"ATTACH_CAPACITY" default:"4"`
	NamePrefix   string `envconfig:"ATTACH_NAME_PREFIX" default:""`
	ReadyRetries int    `envconfig:"ATTACH_READY_RETRIES" default:"10"`
	ReadyWaitMs  int    `envconfig:"ATTACH_READY_WAIT_MS" default:"1000"`
}

// HTTPConfig holds the diagnostics HTTP endpoint configuration.
type HTTPConfig struct {
	Addr    string `envconfig:"ATTACH_HTTP_ADDR" default:"127.0.0.1:7199"`
	Enabled bool   `envconfig:"ATTACH_HTTP_ENABLED" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig throttles command execution on the consumer loop.
type RateLimitConfig struct {
	CommandsPerSecond int  `envconfig:"ATTACH_RATE_LIMIT_CPS" default:"25"`
	Burst             int  `envconfig:"ATTACH_RATE_LIMIT_BURST" default:"50"`
	Enabled           bool `envconfig:"ATTACH_RATE_LIMIT_ENABLED" default:"true"`
}

// ManifestConfig points at an optional YAML command manifest.
type ManifestConfig struct {
	Path string `envconfig:"ATTACH_MANIFEST" default:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Listener.NamePrefix == "" {
		cfg.Listener.NamePrefix = DefaultNamePrefix()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultNamePrefix returns the namespace prefix attach channels must live
// under when none is configured. Clients create their sockets beneath it.
func DefaultNamePrefix() string {
	return filepath.Join(os.TempDir(), ".attachkit-")
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Listener.Capacity <= 0 {
		return fmt.Errorf("listener capacity must be positive, got %d", c.Listener.Capacity)
	}
	if c.Listener.NamePrefix == "" {
		return fmt.Errorf("listener name prefix cannot be empty")
	}
	if c.RateLimit.Enabled && c.RateLimit.CommandsPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimit.CommandsPerSecond)
	}
	return nil
}
