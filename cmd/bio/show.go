package main

import (
	"github.com/guimoneda/gradient-bio/internal/observability"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the current profile",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	doc := a.store.Profile()
	observability.NewPrinter(cmd.OutOrStdout()).PrintProfile(&doc, string(a.store.Source()))
	return nil
}
