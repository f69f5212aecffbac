package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
)

var (
	askTopK int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [notebook-id] [question]",
	Short: "Ask a question against a notebook",
	Long: `Ranks the notebook's enabled chunks against the question and
synthesises an answer with citations. Without a configured LLM the
answer degrades to the top-ranked excerpts.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

var searchCmd = &cobra.Command{
	Use:   "search [notebook-id] [query]",
	Short: "Rank chunks against a query without synthesis",
	Args:  cobra.ExactArgs(2),
	RunE:  runSearch,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 5, "number of chunks to rank and cite")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	searchCmd.Flags().IntVarP(&askTopK, "top-k", "k", 5, "number of hits to return")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(searchCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	answer, err := queryService.Ask(cmd.Context(), args[0], args[1], askTopK)
	if err != nil {
		return err
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)
	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Citations:")
		for _, c := range answer.Citations {
			cmd.Printf("  [%d] %s%s (%.4f)\n", c.Rank, c.SourceID, citationLocation(c), c.Score)
		}
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	hits, err := queryService.Search(cmd.Context(), args[0], args[1], askTopK)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, hit := range hits {
		cmd.Printf("[%d] %s (%.4f)\n", i+1, hit.Chunk.ID, hit.Score)
		cmd.Printf("    %s\n", firstLine(hit.Chunk.Text, 120))
	}
	return nil
}

func citationLocation(c domain.Citation) string {
	if c.Location != "" {
		return ", " + c.Location
	}
	return ""
}

// firstLine returns the head of the chunk for compact listings.
func firstLine(text string, maxRunes int) string {
	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' || i == maxRunes {
			return string(runes[:i]) + "..."
		}
	}
	return text
}
