package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage the sources of a notebook",
}

var sourceListCmd = &cobra.Command{
	Use:   "list [notebook-id]",
	Short: "List a notebook's sources",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceList,
}

var sourceEnableCmd = &cobra.Command{
	Use:   "enable [notebook-id] [source-id]",
	Short: "Include a source's chunks in ranking again",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSourceSetEnabled(cmd, args, true)
	},
}

var sourceDisableCmd = &cobra.Command{
	Use:   "disable [notebook-id] [source-id]",
	Short: "Exclude a source's chunks from ranking without deleting them",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSourceSetEnabled(cmd, args, false)
	},
}

var sourceDeleteCmd = &cobra.Command{
	Use:   "delete [notebook-id] [source-id]",
	Short: "Delete a source and its chunks",
	Args:  cobra.ExactArgs(2),
	RunE:  runSourceDelete,
}

func init() {
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceEnableCmd)
	sourceCmd.AddCommand(sourceDisableCmd)
	sourceCmd.AddCommand(sourceDeleteCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceList(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		cmd.Println("No sources yet. Add some with: inkpot ingest")
		return nil
	}

	for _, src := range sources {
		state := "enabled"
		if !src.Enabled {
			state = "disabled"
		}
		cmd.Printf("%-40s  %-4s  %3d chunks  %s\n", src.ID, src.Type, src.ChunkCount, state)
	}
	return nil
}

func runSourceSetEnabled(cmd *cobra.Command, args []string, enabled bool) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.SetEnabled(cmd.Context(), args[0], args[1], enabled); err != nil {
		return err
	}
	if enabled {
		cmd.Printf("Enabled source %s\n", args[1])
	} else {
		cmd.Printf("Disabled source %s\n", args[1])
	}
	return nil
}

func runSourceDelete(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.Delete(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Deleted source %s\n", args[1])
	return nil
}
