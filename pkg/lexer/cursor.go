package lexer

// Cursor walks a Window one byte at a time while tracking the active style.
// Lookahead and lookbehind through Peek may reach anywhere in the document,
// not just the window.
//
// A Cursor is owned by a single scan loop and is not safe for concurrent use.
type Cursor struct {
	doc  Document
	emit *Emitter
	pos  int
	end  int

	// State is the style of the pending run.
	State Style

	// Ch is the byte at the cursor; ChPrev and ChNext surround it.
	// ChPrev is 0 at the window start.
	Ch     byte
	ChPrev byte
	ChNext byte

	// AtLineStart is true when the cursor is on the first byte of a line.
	AtLineStart bool
}

// NewCursor positions a cursor at the start of win, clamped to the document.
func NewCursor(doc Document, win Window) *Cursor {
	win = win.Clamp(doc.Len())
	cursor := &Cursor{
		doc:   doc,
		emit:  NewEmitter(doc, win.Start, win.End()),
		pos:   win.Start,
		end:   win.End(),
		State: win.InitState,
	}
	cursor.AtLineStart = doc.LineStart(doc.LineFromPosition(win.Start)) == win.Start
	cursor.Ch = doc.CharAt(cursor.pos)
	cursor.ChNext = doc.CharAt(cursor.pos + 1)
	return cursor
}

// Pos returns the absolute position of the cursor.
func (c *Cursor) Pos() int {
	return c.pos
}

// End returns the exclusive end of the window.
func (c *Cursor) End() int {
	return c.end
}

// More reports whether the cursor is still inside the window.
func (c *Cursor) More() bool {
	return c.pos < c.end
}

// Forward advances one byte. It does nothing at the end of the window.
func (c *Cursor) Forward() {
	if c.pos >= c.end {
		return
	}
	c.AtLineStart = c.Ch == '\n' || (c.Ch == '\r' && c.ChNext != '\n')
	c.ChPrev = c.Ch
	c.pos++
	c.Ch = c.ChNext
	c.ChNext = c.doc.CharAt(c.pos + 1)
}

// ForwardN advances n bytes, stopping at the end of the window.
func (c *Cursor) ForwardN(n int) {
	for ; n > 0 && c.pos < c.end; n-- {
		c.Forward()
	}
}

// ForwardLineBreak advances over the line break at the cursor, treating
// CR LF as one break. It does nothing if the cursor is not on a break.
func (c *Cursor) ForwardLineBreak() {
	if c.Ch == '\r' && c.ChNext == '\n' {
		c.ForwardN(2)
		return
	}
	if IsNewline(c.Ch) {
		c.Forward()
	}
}

// Peek returns the byte offset positions away from the cursor, or 0 outside the document.
func (c *Cursor) Peek(offset int) byte {
	return c.doc.CharAt(c.pos + offset)
}

// Match reports whether literal starts at the cursor.
func (c *Cursor) Match(literal string) bool {
	for i := 0; i < len(literal); i++ {
		if c.Peek(i) != literal[i] {
			return false
		}
	}
	return true
}

// SetState closes the pending run just before the cursor with the current
// state and opens a new run at the cursor with style.
func (c *Cursor) SetState(style Style) {
	c.emit.ColourTo(c.pos-1, c.State)
	c.State = style
}

// ForwardSetState advances one byte and then calls SetState.
func (c *Cursor) ForwardSetState(style Style) {
	c.Forward()
	c.SetState(style)
}

// ChangeState retags the pending run without closing it.
func (c *Cursor) ChangeState(style Style) {
	c.State = style
}

// Complete flushes the pending run up to the end of the window.
func (c *Cursor) Complete() {
	c.emit.ColourTo(c.end-1, c.State)
}

// Runs returns the runs emitted so far.
func (c *Cursor) Runs() []Run {
	return c.emit.Runs()
}
