package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_Empty(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRate)
	assert.NotEmpty(t, cfg.Telemetry.Profiling.ProfileTypes)
	assert.Equal(t, DefaultMetricsPort, cfg.Metrics.Port)
	assert.Equal(t, DefaultHashMaxFileSize, cfg.Hash.MaxFileSize)
	assert.Equal(t, DefaultWatchBufferSize, cfg.Watch.BufferSize)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := Config{
		Logging:         LoggingConfig{Level: "warn", Format: "JSON", Output: "/var/log/dwatch.log"},
		Hash:            HashConfig{MaxItems: 10, ErrorTTL: time.Second, Workers: 2},
		Metrics:         MetricsConfig{Port: 9100},
		ShutdownTimeout: time.Minute,
	}
	ApplyDefaults(&cfg)

	assert.Equal(t, "WARN", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/var/log/dwatch.log", cfg.Logging.Output)
	assert.Equal(t, 10, cfg.Hash.MaxItems)
	assert.Equal(t, time.Second, cfg.Hash.ErrorTTL)
	assert.Equal(t, 2, cfg.Hash.Workers)
	assert.Equal(t, 9100, cfg.Metrics.Port)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
}

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.True(t, cfg.Watch.Recursive)
	assert.True(t, cfg.Watch.ResolvePaths)
	assert.True(t, cfg.Watch.HashFiles)
	assert.True(t, cfg.Telemetry.Insecure)
	assert.Contains(t, cfg.Watch.Ignore, ".git")
}
