// Package cli provides the command-line interface. Commands drive the
// application exclusively through the driving ports; wiring happens in
// main via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/inkpot-labs/inkpot/internal/core/ports/driving"
	"github.com/inkpot-labs/inkpot/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Nil services make their commands fail with a
// configuration error instead of panicking.
var (
	notebookService driving.NotebookService
	sourceService   driving.SourceService
	ingestService   driving.IngestService
	queryService    driving.QueryService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "inkpot",
	Short: "Ask questions against your own notebooks",
	Long: `Inkpot ingests documents, PDFs and web pages into notebooks
and answers questions against them with cited excerpts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the commands need.
type Services struct {
	Notebooks driving.NotebookService
	Sources   driving.SourceService
	Ingest    driving.IngestService
	Query     driving.QueryService
}

// SetServices injects the application services into the command tree.
func SetServices(s Services) {
	notebookService = s.Notebooks
	sourceService = s.Sources
	ingestService = s.Ingest
	queryService = s.Query
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
