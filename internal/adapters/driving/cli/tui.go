package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/inkpot-labs/inkpot/internal/adapters/driving/tui"
)

var tuiTopK int

var tuiCmd = &cobra.Command{
	Use:   "tui [notebook-id]",
	Short: "Interactive question session over a notebook",
	Long: `Opens a terminal UI where questions are asked against the given
notebook and answers appear with their citations.

Controls:
  Enter - Ask
  Esc   - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVarP(&tuiTopK, "top-k", "k", 5, "number of chunks to rank and cite")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	return tui.NewApp(queryService, args[0], tuiTopK).Run()
}
