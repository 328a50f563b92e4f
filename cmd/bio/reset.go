package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard local edits and restore the profile",
	Long:  "Deletes the stored snapshot and resolves the profile from the remote document, or the built-in default when that is unavailable.",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	source, err := a.store.Reset(cmd.Context())
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profile restored from %s\n", source)
	return nil
}
