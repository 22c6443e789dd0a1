package commands

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/calder-labs/strand/config"
	"github.com/calder-labs/strand/display"
	"github.com/calder-labs/strand/errors"
)

// ConfigCmd manages strand configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage strand configuration",
	Long: `Display and manage strand configuration.

Configuration sources (in order of precedence):
1. Environment variables (STRAND_* prefix)
2. Project config (./strand.toml, searched upward)
3. User config (~/.strand/strand.toml)
4. System config (/etc/strand/strand.toml)
5. Default values

Examples:
  strand config show                  # Show merged configuration
  strand config set server.port 9000  # Persist a value to the user config
  strand config path                  # Show the user config location`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the merged strand configuration from all sources",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Long: `Set a configuration value in the user config file using dot notation
(e.g. server.port, store.driver). A rotating backup of the previous file is
kept alongside it.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file locations",
	RunE:  runConfigPath,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetCmd)
	ConfigCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cfg)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config to TOML")
	}
	fmt.Printf("# strand configuration\n%s", string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := config.Set(key, value); err != nil {
		return errors.Wrapf(err, "failed to set %s", key)
	}

	fmt.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	userPath := config.UserConfigPath()

	status := "missing"
	if _, err := os.Stat(userPath); err == nil {
		status = "present"
	}
	fmt.Printf("user config: %s (%s)\n", userPath, status)
	return nil
}
