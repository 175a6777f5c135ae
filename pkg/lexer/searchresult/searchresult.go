// Package searchresult styles the output of a find-in-files search.
//
// The document is a sequence of independent lines:
//
//	Search "needle" (2 hits in 1 file)
//	  /src/main.go (2 hits)
//		Line 12: a needle here
//		Line 40: another needle
//
// A line starting with 'S' is a search header, a line starting with a space
// is a file header, and every other line is a result line whose matched text
// is located through an injected markings.Lookup.
package searchresult

import (
	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/markings"
)

// Name is the registry name of the lexer.
const Name = "searchresult"

// Styles.
const (
	StyleDefault lexer.Style = iota
	StyleSearchHeader
	StyleFileHeader
	StyleLineNumber
	StyleMatchHighlight
)

// DefaultMaxLineLength bounds the scan for the line-number colon.
const DefaultMaxLineLength = 1024

// prefixLen is the width of the fixed prefix of a result line.
const prefixLen = 4

// Fold levels.
const (
	searchHeaderLevel = lexer.LevelBase + 1
	fileHeaderLevel   = lexer.LevelBase + 2
	resultLevel       = lexer.LevelBase + 3
)

//nolint:gochecknoglobals // read-only lookup table
var styleNames = []string{
	"default",
	"search-header",
	"file-header",
	"line-number",
	"match",
}

// Options configures a Lexer.
type Options struct {
	// Markings locates the match on each result line. A nil or empty lookup
	// disables styling entirely.
	Markings markings.Lookup

	// MaxLineLength bounds the colon scan of a result line, counting a
	// terminator. Zero means DefaultMaxLineLength.
	MaxLineLength int
}

// Lexer is the search-result lexer.
type Lexer struct {
	markings      markings.Lookup
	maxLineLength int
}

// Compile-time interface check.
var _ lexer.Lexer = (*Lexer)(nil)

// New creates a search-result lexer.
func New(opts Options) *Lexer {
	maxLen := opts.MaxLineLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}
	return &Lexer{markings: opts.Markings, maxLineLength: maxLen}
}

// Name implements lexer.Lexer.
func (l *Lexer) Name() string { return Name }

// Extensions implements lexer.Lexer. Search results are detected by content.
func (l *Lexer) Extensions() []string { return nil }

// StyleNames implements lexer.Lexer.
func (l *Lexer) StyleNames() []string { return styleNames }

// InitialState implements lexer.Lexer.
func (l *Lexer) InitialState() lexer.Style { return StyleDefault }

// Markings returns the injected lookup.
func (l *Lexer) Markings() markings.Lookup { return l.markings }

// Lex implements lexer.Lexer. Each line touched by win is styled from its
// start, so when win.Start falls mid-line the first run begins at the start
// of that line, before win.Start. Runs never extend past the end of win.
func (l *Lexer) Lex(win lexer.Window, doc lexer.Document) {
	if markings.IsEmpty(l.markings) {
		return
	}
	win = win.Clamp(doc.Len())
	if win.Length == 0 {
		return
	}

	end := win.End()
	start := doc.LineStart(doc.LineFromPosition(win.Start))
	emit := lexer.NewEmitter(doc, start, end)

	for lineStart := start; lineStart < end; {
		lineLast := lastOfLine(doc, lineStart)
		l.colouriseLine(emit, doc, lineStart, lineLast)
		lineStart = lineLast + 1
	}
}

// lastOfLine returns the position of the final byte of the line starting at
// lineStart: its line break, or the last byte of the document.
func lastOfLine(doc lexer.Document, lineStart int) int {
	n := doc.Len()
	for pos := lineStart; pos < n; pos++ {
		if lexer.AtEOL(doc, pos) {
			return pos
		}
	}
	return n - 1
}

// colouriseLine styles [lineStart, lineLast]. Positions are inclusive, as
// the emitter expects.
func (l *Lexer) colouriseLine(emit *lexer.Emitter, doc lexer.Document, lineStart, lineLast int) {
	switch doc.CharAt(lineStart) {
	case ' ':
		emit.ColourTo(lineLast, StyleFileHeader)
		return
	case 'S':
		emit.ColourTo(lineLast, StyleSearchHeader)
		return
	}

	contentEnd := lineLast + 1
	for contentEnd > lineStart && lexer.IsNewline(doc.CharAt(contentEnd-1)) {
		contentEnd--
	}
	if contentEnd-lineStart < prefixLen {
		emit.ColourTo(lineLast, StyleDefault)
		return
	}

	emit.ColourTo(lineStart+prefixLen-1, StyleDefault)

	colon := l.findColon(doc, lineStart, contentEnd)
	if colon < 0 {
		emit.ColourTo(lineLast, StyleDefault)
		return
	}
	emit.ColourTo(colon-1, StyleLineNumber)

	mark, ok := l.markings.Marking(doc.LineFromPosition(lineStart))
	if !ok || !mark.Valid() {
		emit.ColourTo(lineLast, StyleDefault)
		return
	}

	matchStart := lineStart + mark.Start
	matchEnd := lineStart + mark.End
	if matchStart > lineLast {
		emit.ColourTo(lineLast, StyleDefault)
		return
	}
	emit.ColourTo(matchStart-1, StyleDefault)
	if matchEnd-1 > lineLast {
		emit.ColourTo(lineLast, StyleMatchHighlight)
		return
	}
	emit.ColourTo(matchEnd-1, StyleMatchHighlight)
	emit.ColourTo(lineLast, StyleDefault)
}

// findColon returns the position of the line-number colon, or -1 when the
// line has none within the configured bound.
func (l *Lexer) findColon(doc lexer.Document, lineStart, contentEnd int) int {
	limit := min(contentEnd, lineStart+l.maxLineLength-1)
	for pos := lineStart + prefixLen; pos < limit; pos++ {
		if doc.CharAt(pos) == ':' {
			return pos
		}
	}
	return -1
}

// Fold implements lexer.Lexer. A line holding a file header opens a fold
// nested under the search header; all other lines sit at the result level.
func (l *Lexer) Fold(win lexer.Window, doc lexer.Document) {
	win = win.Clamp(doc.Len())
	foldCompact := lexer.FoldCompact(doc)

	end := win.End()
	line := doc.LineFromPosition(win.Start)
	start := doc.LineStart(line)

	visibleChars := 0
	var headerPoint lexer.Level
	for pos := start; pos < end; pos++ {
		ch := doc.CharAt(pos)
		switch doc.StyleAt(pos) {
		case StyleFileHeader:
			headerPoint = fileHeaderLevel
		case StyleSearchHeader:
			headerPoint = searchHeaderLevel
		}

		if lexer.AtEOL(doc, pos) {
			level := resultLevel
			if headerPoint != 0 {
				level = lexer.LevelHeaderFlag | headerPoint
			}
			headerPoint = 0
			if visibleChars == 0 && foldCompact {
				level |= lexer.LevelWhiteFlag
			}
			if level != doc.LevelAt(line) {
				doc.SetLevel(line, level)
			}
			line++
			visibleChars = 0
		}
		if !lexer.IsSpace(ch) {
			visibleChars++
		}
	}
	doc.SetLevel(line, lexer.LevelBase)
}

func init() {
	lexer.DefaultRegistry.Register(New(Options{}))
	lexer.DefaultRegistry.RegisterAlias("search", Name)
}
