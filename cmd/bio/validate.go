package main

import (
	"fmt"

	"github.com/guimoneda/gradient-bio/internal/observability"
	"github.com/guimoneda/gradient-bio/internal/schemas"
	"github.com/spf13/cobra"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a profile JSON file against the schema",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to profile JSON file (required)")
	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	err := schemas.ValidateProfileFile(validateInput)
	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(validateInput, err)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
