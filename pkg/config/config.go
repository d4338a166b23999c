package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/marmos91/dittowatch/internal/bytesize"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// DITTOWATCH_LOGGING_LEVEL=DEBUG or DITTOWATCH_HASH_MAX_FILE_SIZE=1Gi.
const EnvPrefix = "DITTOWATCH"

// Config represents the dittowatch configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority, applied by the commands)
//  2. Environment variables (DITTOWATCH_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry tracing and Pyroscope profiling
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Metrics contains Prometheus metrics server configuration
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Hash configures the content hash cache
	Hash HashConfig `mapstructure:"hash" yaml:"hash"`

	// Watch configures the directory watcher
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level: DEBUG, INFO, WARN, ERROR
	// (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format is the log output format: text or json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output is stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
type TelemetryConfig struct {
	// Enabled controls whether tracing is enabled (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint (default: localhost:4317)
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Enabled true" yaml:"endpoint"`

	// Insecure disables TLS towards the collector (default: true)
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate is the trace sampling rate between 0.0 and 1.0 (default: 1.0)
	SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1" yaml:"sample_rate"`

	// Profiling contains Pyroscope continuous profiling configuration
	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	// Enabled controls whether continuous profiling is enabled (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the Pyroscope server URL (default: http://localhost:4040)
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url" yaml:"endpoint"`

	// ProfileTypes lists the profiles to collect
	ProfileTypes []string `mapstructure:"profile_types" validate:"dive,oneof=cpu alloc_objects alloc_space inuse_objects inuse_space goroutines mutex_count mutex_duration block_count block_duration" yaml:"profile_types"`
}

// MetricsConfig configures the Prometheus metrics HTTP server.
// When Enabled is false, no metrics are collected.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the HTTP port for /metrics (default: 9090)
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// HashConfig configures the content hash cache.
type HashConfig struct {
	// MaxItems bounds the number of cached hashes (default: 65536)
	MaxItems int `mapstructure:"max_items" validate:"gt=0" yaml:"max_items"`

	// ErrorTTL is how long a failed hash stays cached before it is retried
	// (default: 60s)
	ErrorTTL time.Duration `mapstructure:"error_ttl" validate:"gte=0" yaml:"error_ttl"`

	// MaxFileSize is the largest file that will be hashed (default: 256Mi)
	MaxFileSize bytesize.ByteSize `mapstructure:"max_file_size" validate:"gt=0" yaml:"max_file_size"`

	// Workers bounds concurrent hashing in batch lookups (default: 4)
	Workers int `mapstructure:"workers" validate:"min=1,max=256" yaml:"workers"`
}

// WatchConfig configures the directory watcher.
type WatchConfig struct {
	// Root is the directory to watch when none is given on the command line
	Root string `mapstructure:"root" yaml:"root,omitempty"`

	// Recursive watches every directory below Root (default: true)
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`

	// FollowSymlinks opens symlink targets instead of the links (default: false)
	FollowSymlinks bool `mapstructure:"follow_symlinks" yaml:"follow_symlinks"`

	// ResolvePaths resolves each event's opened path from its handle
	// (default: true)
	ResolvePaths bool `mapstructure:"resolve_paths" yaml:"resolve_paths"`

	// HashFiles hashes regular files on create and write (default: true)
	HashFiles bool `mapstructure:"hash_files" yaml:"hash_files"`

	// Ignore lists glob patterns (filepath.Match syntax) matched against
	// both the base name and the root-relative path
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// BufferSize is the capacity of the event channel (default: 256)
	BufferSize int `mapstructure:"buffer_size" validate:"gte=0" yaml:"buffer_size"`
}

// Load loads configuration from file, environment, and defaults.
//
// An empty configPath searches the default location. A missing file is not
// an error: defaults plus environment overrides are returned.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for commands that need an explicit config file: it fails
// with instructions when the file does not exist.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  dwatch init\n\n"+
				"Or specify a custom config file:\n"+
				"  dwatch <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("configuration file not found: %s\n\n"+
			"Please create the configuration file:\n"+
			"  dwatch init --config %s",
			configPath, configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return writeConfigFile(path, data)
}

func writeConfigFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setupViper configures env overrides, defaults and the config file search.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering every key lets env overrides apply even without a file,
	// and gives booleans that default to true a value to be overridden.
	for key, value := range defaultSettings() {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(getConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// defaultSettings flattens GetDefaultConfig into viper keys.
func defaultSettings() map[string]any {
	d := GetDefaultConfig()
	return map[string]any{
		"logging.level":                     d.Logging.Level,
		"logging.format":                    d.Logging.Format,
		"logging.output":                    d.Logging.Output,
		"telemetry.enabled":                 d.Telemetry.Enabled,
		"telemetry.endpoint":                d.Telemetry.Endpoint,
		"telemetry.insecure":                d.Telemetry.Insecure,
		"telemetry.sample_rate":             d.Telemetry.SampleRate,
		"telemetry.profiling.enabled":       d.Telemetry.Profiling.Enabled,
		"telemetry.profiling.endpoint":      d.Telemetry.Profiling.Endpoint,
		"telemetry.profiling.profile_types": d.Telemetry.Profiling.ProfileTypes,
		"metrics.enabled":                   d.Metrics.Enabled,
		"metrics.port":                      d.Metrics.Port,
		"hash.max_items":                    d.Hash.MaxItems,
		"hash.error_ttl":                    d.Hash.ErrorTTL.String(),
		"hash.max_file_size":                d.Hash.MaxFileSize.Exact(),
		"hash.workers":                      d.Hash.Workers,
		"watch.root":                        d.Watch.Root,
		"watch.recursive":                   d.Watch.Recursive,
		"watch.follow_symlinks":             d.Watch.FollowSymlinks,
		"watch.resolve_paths":               d.Watch.ResolvePaths,
		"watch.hash_files":                  d.Watch.HashFiles,
		"watch.ignore":                      d.Watch.Ignore,
		"watch.buffer_size":                 d.Watch.BufferSize,
		"shutdown_timeout":                  d.ShutdownTimeout.String(),
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error).
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks combines the decode hooks for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		durationDecodeHook(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// byteSizeDecodeHook converts strings ("256Mi") and numbers to
// bytesize.ByteSize.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return bytesize.ParseByteSize(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// durationDecodeHook converts strings ("30s") and integer nanoseconds to
// time.Duration.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns $XDG_CONFIG_HOME/dittowatch, falling back to
// ~/.config/dittowatch and finally the current directory.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dittowatch")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "dittowatch")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	return getConfigDir()
}
