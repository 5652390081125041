package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tide/internal/config"
	"github.com/zjrosen/tide/internal/flags"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration as YAML: built-in defaults merged with
the config file that would be used for editing.

Examples:
  # Show the configuration in effect here
  tide config

  # Start a project config from it
  mkdir -p .tide && tide config > .tide/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		effective := cfg
		effective.Flags = flags.New(cfg.Flags).All()
		out, err := config.RenderYAML(effective)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if cfgPath != "" {
			_, _ = fmt.Fprintf(w, "# from %s\n", cfgPath)
		}
		_, err = w.Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
