package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/evergreen/term"
)

var termCmd = &cobra.Command{
	Use:     "term",
	Aliases: []string{"terminal"},
	Short:   "Show the card in the terminal",
	Long: `Show the card in the terminal using half-block characters.
Press any key or click to start; q, Esc or Ctrl-C quits.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return term.Run(cfg)
}
