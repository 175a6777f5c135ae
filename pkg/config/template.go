package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every lexer and its styles under a commented theme section.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Lexers describes the registered lexers. Only used by full templates.
	Lexers []LexerInfo
}

// LexerInfo contains lexer metadata for template generation.
// It keeps this package free of a dependency on the lexer registry.
type LexerInfo struct {
	Name       string
	Extensions []string
	Styles     []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateJSON(opts)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Force one lexer for every file (empty = detect from the file name)
# lexer: markdown

# Output format: ansi, runs, json, or folds
format: ansi

# Number of parallel workers (0 = auto)
# jobs: 0

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"

# Extra extension to lexer mappings
# extensions:
#   .notes: markdown

# Host properties passed to every lexer
properties:
  fold.compact: "1"

# Longest search-result line examined for the line-number colon
# max_line_length: 1024
`)

	if opts.Full {
		writeThemeSection(&buf, opts.Lexers)
	}

	return buf.Bytes(), nil
}

func writeThemeSection(buf *bytes.Buffer, lexers []LexerInfo) {
	buf.WriteString(`
# Colour overrides per lexer and style. Colours are ANSI numbers or hex.
# theme:
`)

	sorted := slices.Clone(lexers)
	slices.SortFunc(sorted, func(a, b LexerInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, lex := range sorted {
		buf.WriteString("\n")
		if len(lex.Extensions) > 0 {
			exts := "Extensions: " + strings.Join(lex.Extensions, ", ")
			fmt.Fprintf(buf, "#   # %s\n", wrapComment(exts, commentWrapWidth))
		}
		fmt.Fprintf(buf, "#   %s:\n", lex.Name)
		for _, style := range lex.Styles {
			fmt.Fprintf(buf, "#     %s: {foreground: \"\"}\n", style)
		}
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#   # ")
}

// templateJSON writes the default configuration as JSON. JSON has no
// comments, so the full variant adds an empty theme entry per lexer.
func templateJSON(opts TemplateOptions) ([]byte, error) {
	defaults := NewConfig()
	cfg := map[string]any{
		"format":          defaults.Format,
		"jobs":            defaults.Jobs,
		"ignore":          []string{},
		"extensions":      map[string]string{},
		"properties":      defaults.Properties,
		"max_line_length": defaults.MaxLineLength,
	}

	if opts.Full {
		theme := make(map[string]map[string]StyleSpec, len(opts.Lexers))
		for _, lex := range opts.Lexers {
			theme[lex.Name] = map[string]StyleSpec{}
		}
		cfg["theme"] = theme
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# lexstyle configuration
# See: https://github.com/yaklabco/lexstyle`
}
