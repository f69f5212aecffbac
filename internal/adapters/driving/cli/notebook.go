package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var notebookCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Manage notebooks",
}

var notebookCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new notebook",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNotebookCreate,
}

var notebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notebooks",
	Args:  cobra.NoArgs,
	RunE:  runNotebookList,
}

var notebookDeleteCmd = &cobra.Command{
	Use:   "delete [notebook-id]",
	Short: "Delete a notebook with all its sources and chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotebookDelete,
}

func init() {
	notebookCmd.AddCommand(notebookCreateCmd)
	notebookCmd.AddCommand(notebookListCmd)
	notebookCmd.AddCommand(notebookDeleteCmd)
	rootCmd.AddCommand(notebookCmd)
}

func runNotebookCreate(cmd *cobra.Command, args []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	title := strings.Join(args, " ")
	notebook, err := notebookService.Create(cmd.Context(), title)
	if err != nil {
		return err
	}

	cmd.Printf("Created notebook %q\n", notebook.Title)
	cmd.Printf("  ID: %s\n", notebook.ID)
	return nil
}

func runNotebookList(cmd *cobra.Command, _ []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	notebooks, err := notebookService.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(notebooks) == 0 {
		cmd.Println("No notebooks yet. Create one with: inkpot notebook create <title>")
		return nil
	}

	for _, nb := range notebooks {
		cmd.Printf("%s  %s  (%s)\n", nb.ID, nb.Title, nb.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runNotebookDelete(cmd *cobra.Command, args []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}

	if err := notebookService.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted notebook %s\n", args[0])
	return nil
}
