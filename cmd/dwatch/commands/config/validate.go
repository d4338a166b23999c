package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/dittowatch/internal/cli/output"
	"github.com/marmos91/dittowatch/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the dittowatch configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  dwatch config validate

  # Validate specific config file
  dwatch config validate --config /etc/dittowatch/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	printer := output.NewPrinter(cmd.OutOrStdout(), output.FormatTable, false)
	printer.Success(fmt.Sprintf("Configuration is valid: %s", displayPath))
	return output.SimpleTable(printer.Writer(), [][2]string{
		{"Log level", fmt.Sprintf("%s (%s)", cfg.Logging.Level, cfg.Logging.Format)},
		{"Hash cache", fmt.Sprintf("%d items, max file %s, %d workers",
			cfg.Hash.MaxItems, cfg.Hash.MaxFileSize.Exact(), cfg.Hash.Workers)},
		{"Telemetry", enabledString(cfg.Telemetry.Enabled)},
		{"Metrics", enabledString(cfg.Metrics.Enabled)},
	})
}

func enabledString(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
