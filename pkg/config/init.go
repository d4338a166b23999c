package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by InitConfigToPath when the target exists
// and force is not set.
var ErrConfigExists = errors.New("configuration file already exists")

const configHeader = `# dittowatch configuration file
#
# Every setting can be overridden with an environment variable named
# DITTOWATCH_<SECTION>_<KEY>, e.g. DITTOWATCH_LOGGING_LEVEL=DEBUG.
# Sizes accept units (256Mi, 1Gi), durations accept Go syntax (60s, 5m).

`

// InitConfig writes the default configuration to the default location and
// returns its path.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath writes the default configuration to path. Unless force
// is set, an existing file is left untouched and ErrConfigExists returned.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w at %s (use --force to overwrite)", ErrConfigExists, path)
		}
	}

	data, err := yaml.Marshal(GetDefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return writeConfigFile(path, append([]byte(configHeader), data...))
}
