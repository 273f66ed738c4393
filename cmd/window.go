package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/evergreen/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the card in a desktop window",
	Args:  cobra.NoArgs,
	RunE:  runWindow,
}

var scriptPath string

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().StringVar(&scriptPath, "script", "", "YAML capture script to replay")
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scriptPath != "" {
		cfg.Window.Script = scriptPath
	}
	return window.Run(cfg)
}
