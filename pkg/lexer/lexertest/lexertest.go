// Package lexertest provides helpers for testing lexers against the
// reference document host.
package lexertest

import (
	"fmt"

	"github.com/yaklabco/lexstyle/pkg/document"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// Recorder is a document that records every SetStyles call in order.
type Recorder struct {
	*document.Document

	Calls []lexer.Run
}

// NewRecorder creates a recorder over text.
func NewRecorder(text string, props lexer.Properties) *Recorder {
	return &Recorder{Document: document.New([]byte(text), props)}
}

// SetStyles records the call and forwards it to the document.
func (r *Recorder) SetStyles(start, end int, style lexer.Style) {
	r.Calls = append(r.Calls, lexer.Run{Start: start, End: end, Style: style})
	r.Document.SetStyles(start, end, style)
}

// Lex runs lex over win and returns the runs it emitted.
func (r *Recorder) Lex(lex lexer.Lexer, win lexer.Window) []lexer.Run {
	r.Calls = nil
	lex.Lex(win, r)
	return r.Calls
}

// LexAll styles the whole document starting from the lexer's initial state
// and returns the coalesced runs of the style table.
func (r *Recorder) LexAll(lex lexer.Lexer) []lexer.Run {
	r.Lex(lex, lexer.Window{Start: 0, Length: r.Len(), InitState: lex.InitialState()})
	return r.Runs(0, r.Len())
}

// Styles returns the style of every position in [start, end).
func (r *Recorder) Styles(start, end int) []lexer.Style {
	out := make([]lexer.Style, 0, max(end-start, 0))
	for pos := start; pos < end; pos++ {
		out = append(out, r.StyleAt(pos))
	}
	return out
}

// CheckPartition reports an error unless runs are non-empty, contiguous,
// non-overlapping, and cover exactly [start, end).
func CheckPartition(runs []lexer.Run, start, end int) error {
	if start == end {
		if len(runs) != 0 {
			return fmt.Errorf("empty window produced %d runs", len(runs))
		}
		return nil
	}
	if len(runs) == 0 {
		return fmt.Errorf("no runs for [%d,%d)", start, end)
	}
	next := start
	for idx, run := range runs {
		if run.Len() <= 0 {
			return fmt.Errorf("run %d is empty: %v", idx, run)
		}
		if run.Start != next {
			return fmt.Errorf("run %d starts at %d, want %d", idx, run.Start, next)
		}
		next = run.End
	}
	if next != end {
		return fmt.Errorf("runs end at %d, want %d", next, end)
	}
	return nil
}
