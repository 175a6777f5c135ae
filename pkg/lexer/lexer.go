package lexer

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnknownLexer is returned when a lexer name cannot be resolved.
var ErrUnknownLexer = errors.New("unknown lexer")

// Lexer styles and folds documents of one language.
//
// Lex and Fold must be pure functions of the window and the document
// contents: scanning the same window twice produces the same runs.
type Lexer interface {
	// Name returns the unique lexer name (e.g. "markdown").
	Name() string

	// Extensions returns lowercase file extensions, with leading dot, handled by the lexer.
	Extensions() []string

	// StyleNames returns the display name of each style, indexed by Style.
	StyleNames() []string

	// InitialState returns the style assumed at document start.
	InitialState() Style

	// Lex styles win of doc.
	Lex(win Window, doc Document)

	// Fold assigns fold levels to the lines covered by win using styles already in doc.
	Fold(win Window, doc Document)
}

// StyleName returns the display name of style for lex, or its number if unnamed.
func StyleName(lex Lexer, style Style) string {
	names := lex.StyleNames()
	if int(style) < len(names) {
		return names[style]
	}
	return strconv.Itoa(int(style))
}

// ParseStyle resolves a style display name (case-insensitive) for lex.
func ParseStyle(lex Lexer, name string) (Style, bool) {
	for idx, styleName := range lex.StyleNames() {
		if strings.EqualFold(styleName, name) {
			return Style(idx), true
		}
	}
	return StyleDefault, false
}

// NoFold is embedded by lexers without folding support.
type NoFold struct{}

// Fold does nothing.
func (NoFold) Fold(Window, Document) {}
