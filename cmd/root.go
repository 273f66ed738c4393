// Package cmd holds the evergreen command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/evergreen"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "evergreen",
	Short: "An animated Christmas tree greeting card",
	Long: `evergreen draws a particle Christmas tree with a star, linking lines and
falling snow. Run it in a desktop window or straight in the terminal.

Settings come from the defaults, then the YAML file given with --config,
then EVERGREEN_* environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (evergreen.Config, error) {
	return evergreen.Load(configPath)
}
