// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/lexstyle/pkg/config"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	renderer *lipgloss.Renderer

	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// File components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Message  lipgloss.Style

	// Fold output
	FoldHeader lipgloss.Style
	FoldLevel  lipgloss.Style
	FoldWhite  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableBorder lipgloss.Style
	TableCell   lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
// Colour output does not depend on the terminal the process runs in, so
// "always" works with piped output.
func NewStyles(colorEnabled bool) *Styles {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetHasDarkBackground(true)
	if !colorEnabled {
		renderer.SetColorProfile(termenv.Ascii)
		return newNoColorStyles(renderer)
	}
	renderer.SetColorProfile(termenv.ANSI256)
	return newColorStyles(renderer)
}

// Renderer returns the renderer the styles were built with.
func (s *Styles) Renderer() *lipgloss.Renderer {
	return s.renderer
}

// ColorEnabled reports whether the styles emit escape sequences.
func (s *Styles) ColorEnabled() bool {
	return s.renderer.ColorProfile() != termenv.Ascii
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		renderer: r,

		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		FilePath: r.NewStyle().Bold(true),
		Location: r.NewStyle().Foreground(lipgloss.Color("8")),
		Message:  r.NewStyle(),

		FoldHeader: r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		FoldLevel:  r.NewStyle().Foreground(lipgloss.Color("8")),
		FoldWhite:  r.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),

		SummaryTitle: r.NewStyle().Bold(true),
		SummaryValue: r.NewStyle(),
		Success:      r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader: r.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Padding(0, 1),
		TableBorder: r.NewStyle().Foreground(lipgloss.Color("8")),
		TableCell:   r.NewStyle().Padding(0, 1),

		Dim:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: r.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles(r *lipgloss.Renderer) *Styles {
	plain := r.NewStyle()
	return &Styles{
		renderer:     r,
		Error:        plain,
		Warning:      plain,
		FilePath:     plain,
		Location:     plain,
		Message:      plain,
		FoldHeader:   plain,
		FoldLevel:    plain,
		FoldWhite:    plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Failure:      plain,
		TableHeader:  plain.Padding(0, 1),
		TableBorder:  plain,
		TableCell:    plain.Padding(0, 1),
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // auto
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
