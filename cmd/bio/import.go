package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importInput string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the stored profile with a JSON file",
	Long:  "Validates a profile JSON file and, if it passes, replaces the current document and persists it.",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importInput, "in", "i", "", "Path to profile JSON file (required)")
	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(importInput)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Import(cmd.Context(), data); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Imported JSON success")
	return nil
}
