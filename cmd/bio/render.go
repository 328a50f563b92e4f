package main

import (
	"fmt"
	"os"

	"github.com/guimoneda/gradient-bio/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderTheme  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the profile as a static HTML page",
	Long:  "Renders the current profile without any editing controls, for hosting as a plain file.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output HTML file (required)")
	renderCmd.Flags().StringVar(&renderTheme, "theme", rendering.ThemeLight, "Page theme: light or dark")
	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderTheme != rendering.ThemeLight && renderTheme != rendering.ThemeDark {
		return fmt.Errorf("unknown theme %q: use %s or %s", renderTheme, rendering.ThemeLight, rendering.ThemeDark)
	}

	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Create(renderOutput)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	err = rendering.Write(f, rendering.View{
		Profile: a.store.Profile(),
		Theme:   renderTheme,
		Static:  true,
	})
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = &rendering.RenderError{Message: "failed to close page file", Cause: closeErr}
	}
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered profile to %s\n", renderOutput)
	return nil
}
