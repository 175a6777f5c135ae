// Package lexer provides the incremental styling engine shared by all lexers.
//
// A lexer styles a Window of a Document: it walks the window with a Cursor
// and emits contiguous runs through an Emitter into the document's
// per-position style table. The only value carried between invocations is
// the style in effect at the window start, which the host stores alongside
// its text.
package lexer

import "fmt"

// Style is a classification assigned to a span of text.
// Each lexer declares its own set of styles starting at zero.
type Style uint8

// StyleDefault is the zero style every lexer uses for unclassified text.
const StyleDefault Style = 0

// Run is a half-open byte range [Start, End) tagged with one Style.
type Run struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Style Style `json:"style"`
}

// Len returns the length of the run in bytes.
func (r Run) Len() int {
	return r.End - r.Start
}

// String renders the run for debugging.
func (r Run) String() string {
	return fmt.Sprintf("%d[%d,%d)", r.Style, r.Start, r.End)
}

// Window is the unit of work the host hands to a lexer.
type Window struct {
	// Start is the first position to style.
	Start int

	// Length is the number of bytes to style.
	Length int

	// InitState is the style in effect at Start from a previous scan,
	// or the lexer's initial state at document start.
	InitState Style
}

// End returns the exclusive end position of the window.
func (w Window) End() int {
	return w.Start + w.Length
}

// Clamp restricts the window to a document of length n.
func (w Window) Clamp(n int) Window {
	if w.Start < 0 {
		w.Length += w.Start
		w.Start = 0
	}
	if w.Start > n {
		w.Start = n
	}
	if w.Length < 0 {
		w.Length = 0
	}
	if w.End() > n {
		w.Length = n - w.Start
	}
	return w
}

// CoalesceRuns merges adjacent runs that share a style and drops empty runs.
func CoalesceRuns(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, run := range runs {
		if run.Len() <= 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == run.Style && out[n-1].End == run.Start {
			out[n-1].End = run.End
			continue
		}
		out = append(out, run)
	}
	return out
}

// RunsOf extracts maximal runs from the document's style table over [start, end).
func RunsOf(doc Document, start, end int) []Run {
	if end > doc.Len() {
		end = doc.Len()
	}
	var runs []Run
	for pos := start; pos < end; pos++ {
		style := doc.StyleAt(pos)
		if n := len(runs); n > 0 && runs[n-1].Style == style {
			runs[n-1].End = pos + 1
			continue
		}
		runs = append(runs, Run{Start: pos, End: pos + 1, Style: style})
	}
	return runs
}
