// Package document provides a reference host for lexers: a text buffer with a
// per-position style table, per-line fold levels, host properties, and
// edit tracking so only the region touched by an edit is re-lexed.
package document

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// ErrOutOfRange is returned when an edit position lies outside the document.
var ErrOutOfRange = errors.New("position out of range")

// Compile-time interface check.
var _ lexer.Document = (*Document)(nil)

// Document is a styled text buffer. It is not safe for concurrent use.
type Document struct {
	text      []byte
	styles    []lexer.Style
	lines     []int
	levels    []lexer.Level
	props     lexer.Properties
	endStyled int
}

// New creates a document holding a copy of text.
func New(text []byte, props lexer.Properties) *Document {
	doc := &Document{
		text:   append([]byte(nil), text...),
		styles: make([]lexer.Style, len(text)),
		props:  props.Clone(),
	}
	doc.lines = buildLineStarts(doc.text)
	doc.levels = make([]lexer.Level, len(doc.lines))
	for i := range doc.levels {
		doc.levels[i] = lexer.LevelBase
	}
	return doc
}

// FromString creates a document from a string with no properties.
func FromString(text string) *Document {
	return New([]byte(text), nil)
}

// buildLineStarts returns the start offset of every line.
// It handles LF, CRLF, and lone CR line endings.
func buildLineStarts(content []byte) []int {
	starts := []int{0}
	for idx, char := range content {
		switch {
		case char == '\n':
			starts = append(starts, idx+1)
		case char == '\r' && (idx+1 >= len(content) || content[idx+1] != '\n'):
			starts = append(starts, idx+1)
		}
	}
	return starts
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// CharAt returns the byte at pos, or 0 outside the document.
func (d *Document) CharAt(pos int) byte {
	if pos < 0 || pos >= len(d.text) {
		return 0
	}
	return d.text[pos]
}

// Text returns the document contents. The slice must not be modified.
func (d *Document) Text() []byte {
	return d.text
}

// String returns the document contents as a string.
func (d *Document) String() string {
	return string(d.text)
}

// LineFromPosition returns the zero-based line containing pos.
func (d *Document) LineFromPosition(pos int) int {
	if pos <= 0 {
		return 0
	}
	// First line starting after pos, minus one.
	idx := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i] > pos
	})
	return idx - 1
}

// LineStart returns the start of line. Lines past the end map to Len.
func (d *Document) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(d.lines) {
		return len(d.text)
	}
	return d.lines[line]
}

// LineEnd returns the position just past the last content byte of line,
// before its line break.
func (d *Document) LineEnd(line int) int {
	end := d.LineStart(line + 1)
	if line+1 >= len(d.lines) {
		return end
	}
	if end > 0 && d.text[end-1] == '\n' {
		end--
	}
	if end > 0 && d.text[end-1] == '\r' {
		end--
	}
	return end
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineText returns the content of line without its line break.
func (d *Document) LineText(line int) []byte {
	if line < 0 || line >= len(d.lines) {
		return nil
	}
	return d.text[d.LineStart(line):d.LineEnd(line)]
}

// StyleAt returns the style of pos, or the default style outside the document.
func (d *Document) StyleAt(pos int) lexer.Style {
	if pos < 0 || pos >= len(d.styles) {
		return lexer.StyleDefault
	}
	return d.styles[pos]
}

// SetStyles stores style over [start, end), clipped to the document.
func (d *Document) SetStyles(start, end int, style lexer.Style) {
	start = max(start, 0)
	end = min(end, len(d.styles))
	for pos := start; pos < end; pos++ {
		d.styles[pos] = style
	}
}

// LevelAt returns the fold level of line.
func (d *Document) LevelAt(line int) lexer.Level {
	if line < 0 || line >= len(d.levels) {
		return lexer.LevelBase
	}
	return d.levels[line]
}

// SetLevel stores the fold level of line. Lines outside the document are ignored.
func (d *Document) SetLevel(line int, level lexer.Level) {
	if line < 0 || line >= len(d.levels) {
		return
	}
	d.levels[line] = level
}

// Levels returns a copy of the per-line fold levels.
func (d *Document) Levels() []lexer.Level {
	return append([]lexer.Level(nil), d.levels...)
}

// Property returns a host property.
func (d *Document) Property(key string) string {
	return d.props.Get(key)
}

// SetProperty sets a host property. Properties affect later scans only.
func (d *Document) SetProperty(key, value string) {
	if d.props == nil {
		d.props = make(lexer.Properties)
	}
	d.props[key] = value
}

// Runs returns maximal runs over [start, end).
func (d *Document) Runs(start, end int) []lexer.Run {
	return lexer.RunsOf(d, start, end)
}

// EndStyled returns the first position whose style is stale.
func (d *Document) EndStyled() int {
	return d.endStyled
}

// Invalidate marks everything from the start of the line holding pos as stale.
func (d *Document) Invalidate(pos int) {
	lineStart := d.LineStart(d.LineFromPosition(pos))
	if lineStart < d.endStyled {
		d.endStyled = lineStart
	}
}

// Insert inserts text at pos.
func (d *Document) Insert(pos int, text []byte) error {
	if pos < 0 || pos > len(d.text) {
		return fmt.Errorf("insert at %d: %w", pos, ErrOutOfRange)
	}
	if len(text) == 0 {
		return nil
	}

	line := d.LineFromPosition(pos)
	d.text = append(d.text[:pos], append(append([]byte(nil), text...), d.text[pos:]...)...)
	d.styles = append(d.styles[:pos], append(make([]lexer.Style, len(text)), d.styles[pos:]...)...)
	d.relines(line)
	d.Invalidate(pos)
	return nil
}

// Delete removes n bytes starting at pos.
func (d *Document) Delete(pos, n int) error {
	if pos < 0 || n < 0 || pos+n > len(d.text) {
		return fmt.Errorf("delete [%d,%d): %w", pos, pos+n, ErrOutOfRange)
	}
	if n == 0 {
		return nil
	}

	line := d.LineFromPosition(pos)
	d.text = append(d.text[:pos], d.text[pos+n:]...)
	d.styles = append(d.styles[:pos], d.styles[pos+n:]...)
	d.relines(line)
	d.Invalidate(pos)
	return nil
}

// Replace swaps the whole contents and invalidates every style.
func (d *Document) Replace(text []byte) {
	props := d.props
	*d = *New(text, props)
}

// relines rebuilds the line table after an edit on line and keeps fold
// levels of untouched lines aligned.
func (d *Document) relines(line int) {
	oldCount := len(d.lines)
	d.lines = buildLineStarts(d.text)
	delta := len(d.lines) - oldCount

	switch {
	case delta > 0:
		fill := make([]lexer.Level, delta)
		for i := range fill {
			fill[i] = d.LevelAt(line)
		}
		d.levels = append(d.levels[:line+1], append(fill, d.levels[line+1:]...)...)
	case delta < 0:
		cut := min(line+1-delta, len(d.levels))
		d.levels = append(d.levels[:line+1], d.levels[cut:]...)
	}
}

// Colourise lexes and folds the stale region up to end (or the whole
// document when end is negative) and returns the window that was lexed.
// The initial state is the style just before the window.
func (d *Document) Colourise(lex lexer.Lexer, end int) lexer.Window {
	if end < 0 || end > len(d.text) {
		end = len(d.text)
	}
	start := d.endStyled
	if start >= end {
		return lexer.Window{Start: start, InitState: d.StyleAt(start - 1)}
	}

	init := lex.InitialState()
	if start > 0 {
		init = d.StyleAt(start - 1)
	}
	win := lexer.Window{Start: start, Length: end - start, InitState: init}
	lex.Lex(win, d)
	lex.Fold(win, d)
	d.endStyled = end
	return win
}
