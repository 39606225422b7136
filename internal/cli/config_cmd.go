package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/fleettop/internal/config"
	"github.com/rileyhilliard/fleettop/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration fleettop would run with, after merging defaults,
the config file, FLEETTOP_* environment variables and flags.

The output is valid YAML and can be saved as a starting config file:
  fleettop config > .fleettop.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), cfg, path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func writeConfig(w io.Writer, cfg *config.Config, path string) error {
	out, err := yaml.Marshal(cfg.Display())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	if path != "" {
		fmt.Fprintf(w, "# loaded from %s\n", path)
	} else {
		fmt.Fprintln(w, "# no config file found")
	}
	_, err = w.Write(out)
	return err
}
