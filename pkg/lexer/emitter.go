package lexer

// Emitter accumulates "style up to position" commands and turns them into
// contiguous, non-overlapping runs written to a Document.
type Emitter struct {
	doc      Document
	segStart int
	end      int
	runs     []Run
}

// NewEmitter creates an emitter whose first pending run opens at start.
// Nothing is written at or beyond end.
func NewEmitter(doc Document, start, end int) *Emitter {
	return &Emitter{doc: doc, segStart: start, end: end}
}

// ColourTo styles the pending run [segStart, pos] with style and opens the
// next pending run at pos+1. Calls with pos before the pending run are ignored.
func (e *Emitter) ColourTo(pos int, style Style) {
	if pos >= e.end {
		pos = e.end - 1
	}
	if pos < e.segStart {
		return
	}
	e.doc.SetStyles(e.segStart, pos+1, style)
	e.runs = append(e.runs, Run{Start: e.segStart, End: pos + 1, Style: style})
	e.segStart = pos + 1
}

// StartSegment moves the start of the pending run without styling anything.
func (e *Emitter) StartSegment(pos int) {
	e.segStart = pos
}

// SegmentStart returns the position where the pending run begins.
func (e *Emitter) SegmentStart() int {
	return e.segStart
}

// Runs returns the runs emitted so far in order.
func (e *Emitter) Runs() []Run {
	return e.runs
}
