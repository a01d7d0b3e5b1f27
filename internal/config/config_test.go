package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Listener.Capacity)
	assert.Equal(t, DefaultNamePrefix(), cfg.Listener.NamePrefix)
	assert.Equal(t, 10, cfg.Listener.ReadyRetries)
	assert.Equal(t, "127.0.0.1:7199", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ATTACH_CAPACITY", "8")
	t.Setenv("ATTACH_NAME_PREFIX", "/tmp/custom-")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Listener.Capacity)
	assert.Equal(t, "/tmp/custom-", cfg.Listener.NamePrefix)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero capacity", mutate: func(c *Config) { c.Listener.Capacity = 0 }, wantErr: true},
		{name: "empty prefix", mutate: func(c *Config) { c.Listener.NamePrefix = "" }, wantErr: true},
		{name: "rate limit zero while enabled", mutate: func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.CommandsPerSecond = 0
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Listener:  ListenerConfig{Capacity: 4, NamePrefix: "/tmp/.attachkit-"},
				RateLimit: RateLimitConfig{CommandsPerSecond: 25, Burst: 50},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("disabled:\n  - gc\n  - properties\n"), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.True(t, m.IsDisabled("gc"))
	assert.True(t, m.IsDisabled("properties"))
	assert.False(t, m.IsDisabled("ping"))
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNilManifestDisablesNothing(t *testing.T) {
	var m *Manifest
	assert.False(t, m.IsDisabled("anything"))
}
