package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/shiftgrid/internal/config"
)

var configInitYes bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the config file",
	Long: `shiftgrid reads settings from $SHIFTGRID_ROOT/config.yaml (default
~/.shiftgrid/config.yaml). Environment variables override the file:

  SHIFTGRID_LOG_LEVEL         debug, info, warn or error
  SHIFTGRID_EXPORT_FORMAT     xlsx or csv
  SHIFTGRID_CANCEL_WAIT       e.g. 1s
  SHIFTGRID_MAX_IMPORT_BYTES  largest file import accepts
  SHIFTGRID_EXPORTS_DIR       exports directory (relative to the root)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := cfg
		if conf == nil {
			conf = config.DefaultConfig()
		}

		if jsonOutput {
			return outputJSON(conf)
		}

		data, err := yaml.Marshal(conf)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = stdout.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			paths, err := config.DefaultPaths()
			if err != nil {
				return err
			}
			path = paths.Config
		}

		if _, err := os.Stat(path); err == nil && !configInitYes {
			return fmt.Errorf("%s already exists\nUse --yes to overwrite it", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]string{"path": path})
		}
		PrintSuccess(fmt.Sprintf("Wrote %s", path))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitYes, "yes", "y", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
