package markdown

import (
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// scanner is the state machine for one Lex call. It owns the cursor.
type scanner struct {
	cur *lexer.Cursor

	// precharCount counts leading spaces seen in PreChar.
	precharCount int

	// freeze holds the cursor for one iteration so the next dispatch sees
	// the same byte again.
	freeze bool
}

func newScanner(cur *lexer.Cursor) *scanner {
	return &scanner{cur: cur}
}

func (s *scanner) run() {
	cur := s.cur
	for cur.More() {
		if cur.Ch == '\\' {
			s.escape()
			continue
		}

		// A blockquote marker resets the line semantics.
		if cur.State == StyleBlockquote {
			cur.SetState(StyleLineBegin)
		}

		s.step()

		if cur.State == StylePreChar {
			s.preChar()
		}
		if cur.State == StyleDefault {
			s.inline()
		}

		if !s.freeze {
			cur.Forward()
		}
		s.freeze = false
	}
	cur.Complete()
}

// escape consumes a backslash and the byte it escapes. A backslash before a
// line break consumes only itself.
func (s *scanner) escape() {
	s.cur.Forward()
	if s.cur.More() && !lexer.IsNewline(s.cur.Ch) {
		s.cur.Forward()
	}
}

// step applies the closing rule of the current state, or the line-begin
// dispatch.
func (s *scanner) step() {
	cur := s.cur
	switch cur.State {
	case StyleCodeInlineAlt:
		if cur.Match("```") {
			cur.ForwardN(3)
			cur.SetState(StyleDefault)
		}
	case StyleCodeInline:
		if cur.Ch == '`' && cur.ChPrev != ' ' {
			cur.ForwardSetState(StyleDefault)
		}
	case StyleCodeBlockFence:
		s.codeBlock()
	case StyleStrongAsterisk:
		s.closeDelimited("**")
	case StyleStrongUnderscore:
		s.closeDelimited("__")
	case StyleStrikeout:
		s.closeDelimited("~~")
	case StyleLineBegin:
		s.lineBegin()
	case StyleHeader1, StyleHeader2, StyleHeader3, StyleHeader4, StyleHeader5, StyleHeader6:
		if lexer.IsNewline(cur.Ch) {
			s.endLine()
		}
	}
}

// closeDelimited leaves an inline span on delim not preceded by a space.
func (s *scanner) closeDelimited(delim string) {
	if s.cur.Match(delim) && s.cur.ChPrev != ' ' {
		s.cur.ForwardN(len(delim))
		s.cur.SetState(StyleDefault)
	}
}

// endLine includes the line break at the cursor in the current run and
// hands the next line to LineBegin.
func (s *scanner) endLine() {
	s.cur.ForwardLineBreak()
	s.cur.SetState(StyleLineBegin)
	s.freeze = true
}

// codeBlock closes a code block on a "~~~" fence line, or when a line is not
// indented by a tab or four spaces.
func (s *scanner) codeBlock() {
	cur := s.cur
	if !cur.AtLineStart {
		return
	}
	if cur.Match("~~~") {
		i := 1
		for !lexer.IsNewline(cur.Peek(i)) && cur.Pos()+i < cur.End() {
			i++
		}
		cur.ForwardN(i)
		cur.SetState(StyleDefault)
		return
	}
	if cur.Ch != '\t' && !cur.Match("    ") {
		cur.SetState(StyleLineBegin)
		s.lineBegin()
	}
}

func (s *scanner) lineBegin() {
	cur := s.cur
	switch {
	case cur.Match("######"):
		cur.SetState(StyleHeader6)
	case cur.Match("#####"):
		cur.SetState(StyleHeader5)
	case cur.Match("####"):
		cur.SetState(StyleHeader4)
	case cur.Match("###"):
		cur.SetState(StyleHeader3)
	case cur.Match("##"):
		cur.SetState(StyleHeader2)
	case cur.Ch == '#':
		cur.SetState(StyleHeader1)
	case cur.Match("~~~"):
		if hasPrevLineContent(cur) {
			cur.SetState(StyleDefault)
		} else {
			cur.SetState(StyleCodeBlockFence)
		}
	case isUnderlinedHeader(cur, '='):
		cur.SetState(StyleHeader1)
	case cur.Ch == '=':
		if !hasPrevLineContent(cur) || !s.followToLineEnd('=', StyleHeader1) {
			cur.SetState(StyleDefault)
		}
	case isUnderlinedHeader(cur, '-'):
		cur.SetState(StyleHeader2)
	case cur.Ch == '-':
		if !hasPrevLineContent(cur) || !s.followToLineEnd('-', StyleHeader2) {
			s.precharCount = 0
			cur.SetState(StylePreChar)
		}
	case lexer.IsNewline(cur.Ch):
		// Blank line: stay in LineBegin.
	default:
		s.precharCount = 0
		cur.SetState(StylePreChar)
	}
}

// preChar dispatches on the leading whitespace of a line.
func (s *scanner) preChar() {
	cur := s.cur
	switch {
	case cur.Ch == '>' && s.precharCount < 5:
		cur.SetState(StyleBlockquote)
	case isPrevLineEmpty(cur) && (cur.Ch == '\t' || s.precharCount >= 4):
		cur.SetState(StyleCodeBlockFence)
	case (cur.Ch == '-' || cur.Ch == '*' || cur.Ch == '_') && s.validHrule():
		// Styled by validHrule.
	case cur.Ch != ' ':
		cur.SetState(StyleDefault)
	default:
		s.precharCount++
	}
}

// inline opens the constructs allowed anywhere in running text.
func (s *scanner) inline() {
	cur := s.cur
	switch {
	case cur.AtLineStart && (cur.Ch == '#' || isUnderlinedHeader(cur, '=') || isUnderlinedHeader(cur, '-')):
		// lineBegin claims each of these as a header, so the retry never
		// comes back here for the same byte.
		cur.SetState(StyleLineBegin)
		s.freeze = true
	case cur.Match("```") && atTermStart(cur):
		cur.SetState(StyleCodeInlineAlt)
		cur.Forward()
	case cur.Ch == '`' && cur.ChNext != ' ' && atTermStart(cur):
		cur.SetState(StyleCodeInline)
	case cur.Match("**") && cur.Peek(2) != ' ' && atTermStart(cur):
		cur.SetState(StyleStrongAsterisk)
		cur.Forward()
	case cur.Match("__") && cur.Peek(2) != ' ' && atTermStart(cur):
		cur.SetState(StyleStrongUnderscore)
		cur.Forward()
	case cur.Match("~~") && cur.Peek(2) != ' ' && atTermStart(cur):
		cur.SetState(StyleStrikeout)
		cur.Forward()
	case lexer.IsNewline(cur.Ch):
		cur.SetState(StyleLineBegin)
	}
}

// followToLineEnd styles a run of ch that reaches the end of the line,
// allowing trailing blanks, as state.
func (s *scanner) followToLineEnd(ch byte, state lexer.Style) bool {
	cur := s.cur
	i := 1
	for cur.Peek(i) == ch {
		i++
	}
	for lexer.IsSpaceOrTab(cur.Peek(i)) && cur.Pos()+i < cur.End() {
		i++
	}
	if !lexer.IsNewline(cur.Peek(i)) && cur.Pos()+i != cur.End() {
		return false
	}

	cur.SetState(state)
	cur.ForwardN(i)
	s.endLine()
	return true
}

// validHrule styles three or more of the current byte, separated only by
// blanks and alone on their line, as a horizontal rule. Otherwise the state
// drops to Default.
func (s *scanner) validHrule() bool {
	cur := s.cur
	count := 1
	for i := 1; ; i++ {
		ch := cur.Peek(i)
		if ch == cur.Ch {
			count++
			continue
		}
		atEnd := cur.Pos()+i == cur.End()
		if lexer.IsSpaceOrTab(ch) && !atEnd {
			continue
		}
		if (lexer.IsNewline(ch) || atEnd) && count >= 3 && !hasPrevLineContent(cur) {
			cur.SetState(StyleHorizontalRule)
			cur.ForwardN(i)
			s.endLine()
			return true
		}
		cur.SetState(StyleDefault)
		return false
	}
}
