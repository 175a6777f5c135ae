// Package watch keeps a styled document in step with a file that changes on
// disk. Each new version is turned into an edit script, the edits are applied
// to the document, and only the region the edits invalidated is re-lexed.
package watch

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yaklabco/lexstyle/pkg/document"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// lineModeThreshold is the document size above which diffs are computed
// line by line first.
const lineModeThreshold = 64 * 1024

// Update describes one re-scan.
type Update struct {
	// Window is the region that was lexed. Length is 0 when nothing changed.
	Window lexer.Window

	// Edits is the number of insertions and deletions applied.
	Edits int

	// FirstLine and LastLine bound the lines whose styles may have changed,
	// inclusive. FirstLine includes the line before the window because
	// lexers may re-anchor there.
	FirstLine int
	LastLine  int

	// Runs cover FirstLine through the end of the window.
	Runs []lexer.Run
}

// Changed reports whether the update re-lexed anything.
func (u Update) Changed() bool {
	return u.Window.Length > 0
}

// Session owns a document and the lexer that styles it.
// It is not safe for concurrent use.
type Session struct {
	lex lexer.Lexer
	doc *document.Document
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewSession styles text with lex and returns the session holding it.
func NewSession(lex lexer.Lexer, text []byte, props lexer.Properties) *Session {
	s := &Session{
		lex: lex,
		doc: document.New(text, props),
		dmp: diffmatchpatch.New(),
	}
	s.doc.Colourise(lex, -1)
	return s
}

// Document returns the styled document.
func (s *Session) Document() *document.Document {
	return s.doc
}

// Lexer returns the session's lexer.
func (s *Session) Lexer() lexer.Lexer {
	return s.lex
}

// Apply brings the document to text and re-lexes the stale region.
func (s *Session) Apply(text []byte) (Update, error) {
	old := s.doc.String()
	next := string(text)

	var edits int
	if utf8.ValidString(old) && utf8.ValidString(next) {
		diffs := s.dmp.DiffMain(old, next, len(old) > lineModeThreshold)
		var err error
		if edits, err = ApplyDiffs(s.doc, diffs); err != nil {
			return Update{}, err
		}
	} else if old != next {
		// The differ works on runes and would misplace byte offsets.
		s.doc.Replace(text)
		edits = 1
	}

	win := s.doc.Colourise(s.lex, -1)
	update := Update{Window: win, Edits: edits}
	if win.Length > 0 {
		update.FirstLine = max(s.doc.LineFromPosition(win.Start)-1, 0)
		update.LastLine = s.doc.LineFromPosition(win.End() - 1)
		update.Runs = s.doc.Runs(s.doc.LineStart(update.FirstLine), win.End())
	}
	return update, nil
}

// ApplyDiffs replays a diff script against doc, whose contents must be the
// script's source text, and returns the number of edits made.
func ApplyDiffs(doc *document.Document, diffs []diffmatchpatch.Diff) (int, error) {
	pos := 0
	edits := 0
	for _, diff := range diffs {
		size := len(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			pos += size
		case diffmatchpatch.DiffDelete:
			if err := doc.Delete(pos, size); err != nil {
				return edits, fmt.Errorf("apply diff: %w", err)
			}
			edits++
		case diffmatchpatch.DiffInsert:
			if err := doc.Insert(pos, []byte(diff.Text)); err != nil {
				return edits, fmt.Errorf("apply diff: %w", err)
			}
			pos += size
			edits++
		}
	}
	return edits, nil
}
