// Package markdown implements a restartable Markdown highlighter.
//
// The lexer covers headers (ATX and setext), blockquote markers, indented and
// tilde-fenced code blocks, horizontal rules, inline code, strong text and
// strikeout. Links, images, emphasis and list items are not styled.
package markdown

import (
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// Name is the registry name of the lexer.
const Name = "markdown"

// Styles. CodeBlockFence must stay last: anything above it is coerced to
// Default when a scan restarts.
const (
	StyleDefault lexer.Style = iota
	StyleLineBegin
	StyleStrongAsterisk
	StyleStrongUnderscore
	StyleHeader1
	StyleHeader2
	StyleHeader3
	StyleHeader4
	StyleHeader5
	StyleHeader6
	StylePreChar
	StyleBlockquote
	StyleStrikeout
	StyleHorizontalRule
	StyleCodeInline
	StyleCodeInlineAlt
	StyleCodeBlockFence
)

//nolint:gochecknoglobals // read-only lookup table
var styleNames = []string{
	"default",
	"line-begin",
	"strong-asterisk",
	"strong-underscore",
	"header1",
	"header2",
	"header3",
	"header4",
	"header5",
	"header6",
	"prechar",
	"blockquote",
	"strikeout",
	"hrule",
	"code",
	"code-alt",
	"code-block",
}

// IsHeader reports whether style is one of the six header styles.
func IsHeader(style lexer.Style) bool {
	return style >= StyleHeader1 && style <= StyleHeader6
}

// HeaderLevel returns 1-6 for header styles and 0 otherwise.
func HeaderLevel(style lexer.Style) int {
	if !IsHeader(style) {
		return 0
	}
	return int(style-StyleHeader1) + 1
}

// Lexer is the Markdown lexer. It is stateless and safe to share.
type Lexer struct {
	lexer.NoFold
}

// Compile-time interface check.
var _ lexer.Lexer = (*Lexer)(nil)

// New creates a Markdown lexer.
func New() *Lexer {
	return &Lexer{}
}

// Name implements lexer.Lexer.
func (l *Lexer) Name() string { return Name }

// Extensions implements lexer.Lexer.
func (l *Lexer) Extensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

// StyleNames implements lexer.Lexer.
func (l *Lexer) StyleNames() []string { return styleNames }

// InitialState implements lexer.Lexer. Scanning starts in LineBegin so block
// constructs on the first line are recognised.
func (l *Lexer) InitialState() lexer.Style { return StyleLineBegin }

// Lex implements lexer.Lexer.
//
// A window that does not start at the document start is widened back to the
// start of the previous line, so a setext underline on the first line of the
// window is seen together with the text it underlines. The state carried into
// the widened window is the one in effect after the preceding line break.
func (l *Lexer) Lex(win lexer.Window, doc lexer.Document) {
	win = win.Clamp(doc.Len())
	if win.Length == 0 {
		return
	}

	if win.Start > 0 {
		line := doc.LineFromPosition(win.Start)
		start := doc.LineStart(max(line-1, 0))
		win.Length += win.Start - start
		win.Start = start
		win.InitState = l.InitialState()
		if start > 0 {
			win.InitState = carriedState(doc.StyleAt(start - 1))
		}
	}

	if win.InitState > StyleCodeBlockFence {
		win.InitState = StyleDefault
	}

	scan := newScanner(lexer.NewCursor(doc, win))
	scan.run()
}

// carriedState maps the style of a line break to the state the next line
// starts in. Constructs that end with their line hand over to LineBegin.
func carriedState(style lexer.Style) lexer.Style {
	if IsHeader(style) || style == StyleHorizontalRule {
		return StyleLineBegin
	}
	return style
}

func init() {
	lexer.DefaultRegistry.Register(New())
	lexer.DefaultRegistry.RegisterAlias("md", Name)
}
