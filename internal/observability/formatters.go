// Package observability provides logging and formatted terminal output for the CLI.
package observability

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guimoneda/gradient-bio/internal/schemas"
	"github.com/guimoneda/gradient-bio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6b5bff")).
			Padding(0, 1).
			Width(boxWidth)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Printer handles formatted terminal output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	body := titleStyle.Render(title) + "\n\n" + strings.TrimRight(content, "\n")
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

// PrintProfile outputs a human-readable summary of a profile document.
func (p *Printer) PrintProfile(profile *types.Profile, source string) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", profile.Role))
	if source != "" {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("Source:   %s", source)) + "\n")
	}
	sb.WriteString("\n")

	if len(profile.Stats) > 0 {
		stats := make([]string, 0, len(profile.Stats))
		for k, v := range profile.Stats {
			stats = append(stats, fmt.Sprintf("%s=%s", k, v))
		}
		slices.Sort(stats)
		sb.WriteString(fmt.Sprintf("Stats:    %s\n\n", strings.Join(stats, ", ")))
	}

	writeList(&sb, "Projects", len(profile.Projects), func(i int) string {
		return profile.Projects[i].Title
	})
	writeList(&sb, "Experience", len(profile.Experience), func(i int) string {
		e := profile.Experience[i]
		return fmt.Sprintf("%s — %s (%s)", e.Company, e.Title, e.Period)
	})

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", strings.Join(profile.Skills, ", ")))
	}

	p.printBox("PROFILE", sb.String())
}

func writeList(sb *strings.Builder, label string, n int, item func(i int) string) {
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, n))
	count := min(n, maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, item(i)))
	}
	if n > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", n-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintValidation reports the outcome of validating a profile file.
func (p *Printer) PrintValidation(path string, err error) {
	if err == nil {
		p.printBox("VALIDATION PASSED", path)
		return
	}

	var sb strings.Builder
	sb.WriteString(path + "\n\n")

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		for i, fe := range validationErr.Errors {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
		}
	} else {
		sb.WriteString(err.Error() + "\n")
	}

	p.printBox("VALIDATION FAILED", sb.String())
}
