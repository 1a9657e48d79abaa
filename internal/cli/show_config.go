// internal/cli/show_config.go
package legalrag

import (
	"io"
	"os"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/legalrag/internal/appconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
}

// showConfigCmd prints the merged configuration so overrides can be checked.
var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by environment variables and flags accordingly.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig())
	},
}

func showConfig(out io.Writer, file string, cfg *appconfig.Config) error {
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			file = ""
		}
	}
	appconfig.ShowConfig(out, file, cfg, appconfig.Defaults())
	if cfg == nil {
		return nil
	}
	if err := appconfig.ShowOverrides(out, file, *cfg); err != nil {
		return err
	}
	if cfg.Debug {
		redacted := *cfg
		if redacted.EmbeddingAPIKey != "" {
			redacted.EmbeddingAPIKey = "********"
		}
		pp.Fprintln(out, redacted)
	}
	return nil
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(configCmd)
}
