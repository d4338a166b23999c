package config

import (
	"strings"
	"time"

	"github.com/marmos91/dittowatch/internal/bytesize"
)

// Default values for settings that have one.
const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMetricsPort     = 9090
	DefaultHashMaxItems    = 65536
	DefaultHashErrorTTL    = 60 * time.Second
	DefaultHashMaxFileSize = 256 * bytesize.MiB
	DefaultHashWorkers     = 4
	DefaultWatchBufferSize = 256
)

// ApplyDefaults sets default values for unspecified configuration fields.
// Zero values are replaced; explicit values are preserved. Booleans that
// default to true are handled by Load through viper defaults instead.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyHashDefaults(&cfg.Hash)
	applyWatchDefaults(&cfg.Watch)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	if cfg.Profiling.Endpoint == "" {
		cfg.Profiling.Endpoint = "http://localhost:4040"
	}
	if len(cfg.Profiling.ProfileTypes) == 0 {
		cfg.Profiling.ProfileTypes = []string{
			"cpu",
			"alloc_space",
			"inuse_space",
			"goroutines",
		}
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = DefaultMetricsPort
	}
}

func applyHashDefaults(cfg *HashConfig) {
	if cfg.MaxItems == 0 {
		cfg.MaxItems = DefaultHashMaxItems
	}
	if cfg.ErrorTTL == 0 {
		cfg.ErrorTTL = DefaultHashErrorTTL
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultHashMaxFileSize
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultHashWorkers
	}
}

func applyWatchDefaults(cfg *WatchConfig) {
	if cfg.BufferSize == 0 {
		cfg.BufferSize = DefaultWatchBufferSize
	}
}

// GetDefaultConfig returns a Config with every default applied. It is the
// template written by InitConfig.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Telemetry: TelemetryConfig{Insecure: true},
		Watch: WatchConfig{
			Recursive:    true,
			ResolvePaths: true,
			HashFiles:    true,
			Ignore:       []string{".git", "*.swp", "*~"},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
