// Package config defines core configuration types for lexstyle.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// OutputFormat specifies how styled documents are written.
type OutputFormat string

const (
	// FormatANSI renders the text coloured with terminal escapes.
	FormatANSI OutputFormat = "ansi"
	// FormatRuns lists one run per line as start, end and style name.
	FormatRuns OutputFormat = "runs"
	// FormatJSON writes runs and fold levels as JSON.
	FormatJSON OutputFormat = "json"
	// FormatFolds lists the fold level of every line.
	FormatFolds OutputFormat = "folds"
)

// ColorMode controls terminal colour output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DefaultMaxLineLength is the longest search-result line, terminator included,
// whose colon is searched for.
const DefaultMaxLineLength = 1024

// StyleSpec is a colour override for one style of one lexer.
// Colours are lipgloss colour strings: ANSI numbers ("12") or hex ("#ff8800").
type StyleSpec struct {
	Foreground string `yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	Bold       bool   `yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty" json:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty" json:"underline,omitempty"`
}

// IsZero reports whether the spec sets nothing.
func (s StyleSpec) IsZero() bool {
	return s == StyleSpec{}
}

// Theme maps lexer name to style name to colour override.
type Theme map[string]map[string]StyleSpec

// Lookup returns the override for a style, if any.
func (t Theme) Lookup(lexerName, styleName string) (StyleSpec, bool) {
	styles, ok := t[lexerName]
	if !ok {
		return StyleSpec{}, false
	}
	spec, ok := styles[styleName]
	return spec, ok
}

// Config is the root configuration structure for lexstyle.
type Config struct {
	// Lexer forces a lexer by name or alias. Empty means detect per file.
	Lexer string `yaml:"lexer,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Jobs specifies the number of parallel workers (0 = GOMAXPROCS).
	Jobs int `yaml:"jobs,omitempty"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore,omitempty"`

	// Extensions maps file extensions to lexer names, ahead of the built-in table.
	Extensions map[string]string `yaml:"extensions,omitempty"`

	// Properties are host properties handed to every lexer, e.g. fold.compact.
	Properties map[string]string `yaml:"properties,omitempty"`

	// MaxLineLength bounds the colon scan of the search-result lexer.
	MaxLineLength int `yaml:"max_line_length,omitempty"`

	// Theme overrides the colours of individual styles.
	Theme Theme `yaml:"theme,omitempty"`

	// CLI-level options (not persisted to config files).

	// Markings is the path of a markings file for the search-result lexer.
	Markings string `yaml:"-"`

	// Output is the path to write results to instead of stdout.
	Output string `yaml:"-"`

	// Color is the colour mode for ANSI output.
	Color ColorMode `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:        FormatANSI,
		Jobs:          0,
		Properties:    map[string]string{lexer.PropFoldCompact: "1"},
		MaxLineLength: DefaultMaxLineLength,
		Color:         ColorAuto,
	}
}

// LexerProperties returns the host properties as lexer properties.
func (c *Config) LexerProperties() lexer.Properties {
	if c == nil || len(c.Properties) == 0 {
		return nil
	}
	return lexer.Properties(c.Properties).Clone()
}
