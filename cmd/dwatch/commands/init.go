package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marmos91/dittowatch/internal/cli/prompt"
	"github.com/marmos91/dittowatch/pkg/config"
)

var initForce bool

// stdinIsTerminal reports whether the overwrite question can be asked.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample dittowatch configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/dittowatch/config.yaml.
Use --config to specify a custom path. When the file already exists you
are asked before it is overwritten; --force skips the question.

Examples:
  # Initialize with default location
  dwatch init

  # Initialize with custom path
  dwatch init --config /etc/dittowatch/config.yaml

  # Force overwrite existing config
  dwatch init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	err := config.InitConfigToPath(configPath, initForce)
	if errors.Is(err, config.ErrConfigExists) && stdinIsTerminal() {
		overwrite, perr := prompt.Confirm(fmt.Sprintf("Overwrite existing configuration at %s", configPath), false)
		if perr != nil {
			return perr
		}
		if !overwrite {
			PrintErr("Keeping existing configuration at %s", configPath)
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		err = config.InitConfigToPath(configPath, true)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	printer.Success(fmt.Sprintf("Configuration file created at: %s", configPath))
	printer.Printf("\nNext steps:\n")
	printer.Printf("  1. Edit the configuration file to customize your setup\n")
	printer.Printf("  2. Check it with: dwatch config validate --config %s\n", configPath)
	printer.Printf("  3. Start watching with: dwatch watch --config %s <dir>\n", configPath)
	return nil
}
