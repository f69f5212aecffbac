package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	ingestFiles []string
	ingestURLs  []string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [notebook-id]",
	Short: "Ingest files and URLs into a notebook",
	Long: `Extracts, chunks and stores the given documents. Text files are
read directly, PDFs page by page with OCR fallbacks, and URLs through
tiered fetching that escalates to a headless browser for script-driven
pages. Sources that yield nothing are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringSliceVarP(&ingestFiles, "file", "f", nil, "file to ingest (repeatable)")
	ingestCmd.Flags().StringSliceVarP(&ingestURLs, "url", "u", nil, "URL to ingest (repeatable)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if len(ingestFiles) == 0 && len(ingestURLs) == 0 {
		return errors.New("nothing to ingest: pass --file and/or --url")
	}

	stats, err := ingestService.Ingest(cmd.Context(), args[0], ingestFiles, ingestURLs)
	if err != nil {
		return err
	}

	cmd.Printf("Added %d chunks (%d total in notebook)\n", stats.Added, stats.Total)
	for _, failed := range stats.Failed {
		cmd.Printf("  failed: %s\n", failed)
	}
	return nil
}
