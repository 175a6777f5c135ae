package lexer

// Document is the host-side view a lexer reads text from and writes styles
// and fold levels to. Implementations need not be safe for concurrent use;
// the host serializes scans of one document.
type Document interface {
	// Len returns the document length in bytes.
	Len() int

	// CharAt returns the byte at pos, or 0 when pos is outside [0, Len).
	CharAt(pos int) byte

	// LineFromPosition returns the zero-based line containing pos.
	LineFromPosition(pos int) int

	// LineStart returns the position of the first byte of line.
	// Lines past the end map to Len.
	LineStart(line int) int

	// LineCount returns the number of lines, counting a trailing empty line.
	LineCount() int

	// StyleAt returns the style stored for pos.
	StyleAt(pos int) Style

	// SetStyles stores style for every position in [start, end).
	SetStyles(start, end int, style Style)

	// LevelAt returns the fold level stored for line.
	LevelAt(line int) Level

	// SetLevel stores the fold level for line.
	SetLevel(line int, level Level)

	// Property returns a host property value, or "" when unset.
	Property(key string) string
}

// IsNewline reports whether ch is a line break byte.
func IsNewline(ch byte) bool {
	return ch == '\n' || ch == '\r'
}

// IsSpaceOrTab reports whether ch is a space or a horizontal tab.
func IsSpaceOrTab(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// IsSpace reports whether ch is ASCII whitespace.
func IsSpace(ch byte) bool {
	return ch == ' ' || (ch >= 0x09 && ch <= 0x0d)
}

// AtEOL reports whether pos holds the last byte of a line ending.
// A CR followed by LF is not the end; the LF is.
func AtEOL(doc Document, pos int) bool {
	ch := doc.CharAt(pos)
	return ch == '\n' || (ch == '\r' && doc.CharAt(pos+1) != '\n')
}
