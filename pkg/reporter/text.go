package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/runner"
)

// ANSIRenderer writes the text of each file coloured by its styles.
// It is not safe for concurrent use.
type ANSIRenderer struct {
	styles   *pretty.Styles
	theme    config.Theme
	palettes map[string]*pretty.Palette
}

// NewANSIRenderer creates a renderer that colours with styles and theme.
func NewANSIRenderer(styles *pretty.Styles, theme config.Theme) *ANSIRenderer {
	return &ANSIRenderer{
		styles:   styles,
		theme:    theme,
		palettes: make(map[string]*pretty.Palette),
	}
}

// Palette returns the palette for lex, building it on first use.
func (r *ANSIRenderer) Palette(lex lexer.Lexer) *pretty.Palette {
	palette, ok := r.palettes[lex.Name()]
	if !ok {
		palette = pretty.NewPalette(r.styles, lex, r.theme)
		r.palettes[lex.Name()] = palette
	}
	return palette
}

// RenderFile implements Renderer.
func (r *ANSIRenderer) RenderFile(_ context.Context, w io.Writer, file runner.FileOutcome) error {
	out := r.Palette(file.Lexer).Render(file.Document.Text(), file.Runs())
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// RunsRenderer lists the runs of each file, one per line.
type RunsRenderer struct {
	styles *pretty.Styles
}

// NewRunsRenderer creates a run-listing renderer.
func NewRunsRenderer(styles *pretty.Styles) *RunsRenderer {
	return &RunsRenderer{styles: styles}
}

// RenderFile implements Renderer. Each line holds the start and exclusive
// end offsets, the style name and the quoted text of the run.
func (r *RunsRenderer) RenderFile(ctx context.Context, w io.Writer, file runner.FileOutcome) error {
	text := file.Document.Text()
	runs := file.Runs()
	width := len(fmt.Sprint(len(text)))

	for idx, run := range runs {
		if idx%1024 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		span := padLeft(fmt.Sprint(run.Start), width) + " " + padLeft(fmt.Sprint(run.End), width)
		name := lexer.StyleName(file.Lexer, run.Style)
		if _, err := fmt.Fprintf(w, "%s  %s %q\n",
			r.styles.Location.Render(span),
			r.styles.Bold.Render(padRight(name, runNameWidth)),
			text[run.Start:run.End],
		); err != nil {
			return err
		}
	}
	return nil
}

// runNameWidth aligns the quoted text column for the usual style names.
const runNameWidth = 18

// FoldsRenderer lists the fold level of every line.
type FoldsRenderer struct {
	styles *pretty.Styles
}

// NewFoldsRenderer creates a fold-level renderer.
func NewFoldsRenderer(styles *pretty.Styles) *FoldsRenderer {
	return &FoldsRenderer{styles: styles}
}

// RenderFile implements Renderer. Lines are numbered from one; levels are
// shown relative to the base level with their header and white flags.
func (r *FoldsRenderer) RenderFile(_ context.Context, w io.Writer, file runner.FileOutcome) error {
	doc := file.Document
	lines := doc.LineCount()
	width := len(fmt.Sprint(lines))

	for line := range lines {
		level := doc.LevelAt(line)
		style := r.styles.FoldLevel
		switch {
		case level.IsHeader():
			style = r.styles.FoldHeader
		case level.IsWhite():
			style = r.styles.FoldWhite
		}
		text := string(doc.LineText(line))
		if _, err := fmt.Fprintf(w, "%s %s %s\n",
			r.styles.Location.Render(padLeft(fmt.Sprint(line+1), width)),
			style.Render(padRight(level.String(), foldColumnWidth)),
			text,
		); err != nil {
			return err
		}
	}
	return nil
}

// foldColumnWidth fits "12 header white".
const foldColumnWidth = 15

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
