package markdown

import (
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// prevLineBreak returns the offset, relative to the cursor, of the line break
// ending the previous line, or of the position before the document start.
func prevLineBreak(cur *lexer.Cursor) int {
	i := -1
	for cur.Pos()+i >= 0 && !lexer.IsNewline(cur.Peek(i)) {
		i--
	}
	return i
}

// hasPrevLineContent reports whether the previous line holds anything other
// than spaces and tabs.
func hasPrevLineContent(cur *lexer.Cursor) bool {
	i := prevLineBreak(cur)
	if cur.Peek(i) == '\n' && cur.Peek(i-1) == '\r' {
		i--
	}
	for i--; cur.Pos()+i >= 0; i-- {
		ch := cur.Peek(i)
		if lexer.IsNewline(ch) {
			return false
		}
		if !lexer.IsSpaceOrTab(ch) {
			return true
		}
	}
	return false
}

// isPrevLineEmpty reports whether the previous line holds nothing but its
// line break. The first line of the document has an empty previous line.
func isPrevLineEmpty(cur *lexer.Cursor) bool {
	i := prevLineBreak(cur)
	ch := cur.Peek(i)
	switch {
	case ch == '\n' && cur.Peek(i-1) == '\r':
		i -= 2
	case lexer.IsNewline(ch):
		i--
	}
	return cur.Pos()+i < 0 || lexer.IsNewline(cur.Peek(i))
}

// atTermStart reports whether the cursor starts a term: it is at the start of
// the document or window, or follows whitespace.
func atTermStart(cur *lexer.Cursor) bool {
	return cur.Pos() == 0 || cur.ChPrev == 0 || lexer.IsSpace(cur.ChPrev)
}

// isUnderlinedHeader reports whether the cursor is on a line with content
// that is followed by a line of hdrCh bytes and trailing blanks only.
func isUnderlinedHeader(cur *lexer.Cursor, hdrCh byte) bool {
	end := cur.End()
	i := 0
	hasContent := false
	for cur.Pos()+i < end {
		ch := cur.Peek(i)
		if lexer.IsNewline(ch) {
			break
		}
		if !lexer.IsSpaceOrTab(ch) {
			hasContent = true
		}
		i++
	}

	ch := cur.Peek(i)
	if !hasContent || !lexer.IsNewline(ch) {
		return false
	}
	if ch == '\r' && cur.Peek(i+1) == '\n' {
		i += 2
	} else {
		i++
	}

	if cur.Peek(i) != hdrCh {
		return false
	}
	for cur.Pos()+i < end && cur.Peek(i) == hdrCh {
		i++
	}
	for cur.Pos()+i < end && lexer.IsSpaceOrTab(cur.Peek(i)) {
		i++
	}
	return lexer.IsNewline(cur.Peek(i)) || cur.Pos()+i == end
}
