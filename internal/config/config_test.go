package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "http://localhost:9090", cfg.Engine.URL)
	assert.Equal(t, 100, cfg.Detection.PreviewLength)
	assert.Equal(t, 100, cfg.Detection.MaxPageSize)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AIGC_CHECK_SERVER_HTTP_PORT", "9090")
	t.Setenv("AIGC_CHECK_DATABASE_DSN", "/var/lib/aigc/history.db")
	t.Setenv("AIGC_CHECK_DETECTION_PREVIEW_LENGTH", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "/var/lib/aigc/history.db", cfg.Database.DSN)
	assert.Equal(t, 50, cfg.Detection.PreviewLength)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unsupported database type",
			mutate:  func(c *Config) { c.Database.Type = "oracle" },
			wantErr: "unsupported database type",
		},
		{
			name:    "missing engine url",
			mutate:  func(c *Config) { c.Engine.URL = "" },
			wantErr: "engine.url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
