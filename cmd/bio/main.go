// Package main provides the bio command: it serves the profile page and manages
// the stored profile document from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	logLevel    string
	snapshotURL string
	profileURL  string
)

var rootCmd = &cobra.Command{
	Use:           "bio",
	Short:         "Personal bio page with inline editing",
	Long:          "bio serves a single-page personal profile that can be edited in place, and manages the stored profile document.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&snapshotURL, "snapshot-url", "", "Snapshot backend URL (memory://, sqlite://, postgres://, redis://)")
	rootCmd.PersistentFlags().StringVar(&profileURL, "profile-url", "", "Remote profile document URL")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
