package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// defaultTheme colours styles by display name. Names shared between lexers
// (such as "default" or "code") get the same colour everywhere.
//
//nolint:gochecknoglobals // read-only lookup table
var defaultTheme = map[string]config.StyleSpec{
	// markdown
	"strong-asterisk":   {Bold: true},
	"strong-underscore": {Bold: true},
	"header1":           {Foreground: "12", Bold: true},
	"header2":           {Foreground: "12", Bold: true},
	"header3":           {Foreground: "14", Bold: true},
	"header4":           {Foreground: "14"},
	"header5":           {Foreground: "6"},
	"header6":           {Foreground: "6"},
	"prechar":           {Foreground: "8"},
	"blockquote":        {Foreground: "10", Italic: true},
	"strikeout":         {Foreground: "8"},
	"hrule":             {Foreground: "8"},
	"code":              {Foreground: "14"},
	"code-alt":          {Foreground: "14"},
	"code-block":        {Foreground: "14"},

	// searchresult
	"search-header": {Foreground: "13", Bold: true},
	"file-header":   {Foreground: "12", Bold: true},
	"line-number":   {Foreground: "11"},
	"match":         {Foreground: "0", Background: "11", Bold: true},

	// chroma
	"keyword":  {Foreground: "12", Bold: true},
	"type":     {Foreground: "14"},
	"comment":  {Foreground: "8", Italic: true},
	"string":   {Foreground: "10"},
	"number":   {Foreground: "13"},
	"function": {Foreground: "11"},
	"constant": {Foreground: "13"},
	"generic":  {Foreground: "6"},
}

// Palette maps the styles of one lexer to terminal styles.
type Palette struct {
	colored bool
	styles  []lipgloss.Style
	plain   lipgloss.Style
}

// NewPalette builds the palette for lex. Entries in theme override the
// built-in colours style by style.
func NewPalette(s *Styles, lex lexer.Lexer, theme config.Theme) *Palette {
	plain := s.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	names := lex.StyleNames()

	p := &Palette{
		colored: s.ColorEnabled(),
		styles:  make([]lipgloss.Style, len(names)),
		plain:   plain,
	}
	for idx, name := range names {
		spec := defaultTheme[name]
		if override, ok := theme.Lookup(lex.Name(), strings.ToLower(name)); ok {
			spec = override
		}
		p.styles[idx] = specStyle(plain, spec)
	}
	return p
}

func specStyle(base lipgloss.Style, spec config.StyleSpec) lipgloss.Style {
	style := base
	if spec.Foreground != "" {
		style = style.Foreground(lipgloss.Color(spec.Foreground))
	}
	if spec.Background != "" {
		style = style.Background(lipgloss.Color(spec.Background))
	}
	if spec.Bold {
		style = style.Bold(true)
	}
	if spec.Italic {
		style = style.Italic(true)
	}
	if spec.Underline {
		style = style.Underline(true)
	}
	return style
}

// Style returns the terminal style for style. Styles the lexer does not
// name render plain.
func (p *Palette) Style(style lexer.Style) lipgloss.Style {
	if int(style) < len(p.styles) {
		return p.styles[style]
	}
	return p.plain
}

// Render paints text[run.Start:run.End] for each run. Text outside the runs
// is dropped, so runs normally cover the whole text.
func (p *Palette) Render(text []byte, runs []lexer.Run) string {
	var builder strings.Builder
	builder.Grow(len(text))

	for _, run := range runs {
		end := min(run.End, len(text))
		if run.Start >= end {
			continue
		}
		segment := string(text[run.Start:end])
		if !p.colored {
			builder.WriteString(segment)
			continue
		}
		p.writeSegment(&builder, p.Style(run.Style), segment)
	}
	return builder.String()
}

// writeSegment renders line by line so lipgloss never pads lines to a
// common width.
func (p *Palette) writeSegment(builder *strings.Builder, style lipgloss.Style, segment string) {
	for {
		line, rest, found := strings.Cut(segment, "\n")
		if line != "" {
			builder.WriteString(style.Render(line))
		}
		if !found {
			return
		}
		builder.WriteByte('\n')
		segment = rest
	}
}
