package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its struct tags and cross-field rules. All
// problems are reported together.
func Validate(cfg *Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	if cfg.Telemetry.Profiling.Enabled && cfg.Telemetry.Profiling.Endpoint == "" {
		problems = append(problems, "telemetry.profiling.endpoint: required when profiling is enabled")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Port == 0 {
		problems = append(problems, "metrics.port: required when metrics are enabled")
	}
	for _, pattern := range cfg.Watch.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			problems = append(problems, fmt.Sprintf("watch.ignore: invalid pattern %q: %v", pattern, err))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// describeFieldError renders a validator error using the YAML key path,
// e.g. "hash.workers: must be at least 1".
func describeFieldError(fe validator.FieldError) string {
	field := yamlPath(fe.StructNamespace())

	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "required_if":
		return field + ": is required when enabled"
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "min", "gte":
		return fmt.Sprintf("%s: must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("%s: must be at most %s, got %v", field, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s, got %v", field, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s: must be a URL, got %v", field, fe.Value())
	default:
		return fmt.Sprintf("%s: failed %q validation", field, fe.Tag())
	}
}

// yamlPath converts "Config.Hash.MaxFileSize" into "hash.max_file_size".
// Slice indexes such as "ProfileTypes[1]" are kept.
func yamlPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snakeCase(p)
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '[' {
				prev := rune(s[i-1])
				if prev < 'A' || prev > 'Z' || (i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z') {
					b.WriteByte('_')
				}
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
