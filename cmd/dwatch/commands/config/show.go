package config

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/dittowatch/internal/cli/output"
	"github.com/marmos91/dittowatch/pkg/config"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the effective dittowatch configuration: the file, environment
overrides and defaults merged together.

Outputs YAML unless --output json is given.

Examples:
  # Show the effective configuration
  dwatch config show

  # Show as JSON
  dwatch config show --output json

  # Show specific config file
  dwatch config show --config /etc/dittowatch/config.yaml`,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// Persistent flags live on the root command.
	configPath, _ := cmd.Flags().GetString("config")
	format, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case output.FormatJSON:
		return output.PrintJSON(cmd.OutOrStdout(), cfg)
	default:
		return output.PrintYAML(cmd.OutOrStdout(), cfg)
	}
}
