package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexstyle/pkg/document"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

func TestEmitter_ColourTo(t *testing.T) {
	t.Parallel()

	doc := document.FromString("abcdefgh")
	emit := lexer.NewEmitter(doc, 2, 7)

	emit.ColourTo(3, 1)
	emit.ColourTo(3, 2) // behind the pending run: ignored
	emit.ColourTo(5, 2)
	emit.ColourTo(20, 3) // clamped to the end

	assert.Equal(t, []lexer.Run{
		{Start: 2, End: 4, Style: 1},
		{Start: 4, End: 6, Style: 2},
		{Start: 6, End: 7, Style: 3},
	}, emit.Runs())
	assert.Equal(t, lexer.Style(0), doc.StyleAt(1))
	assert.Equal(t, lexer.Style(0), doc.StyleAt(7))
	assert.Equal(t, 7, emit.SegmentStart())
}

func TestCursor_StateTransitions(t *testing.T) {
	t.Parallel()

	doc := document.FromString("ab\ncd")
	cur := lexer.NewCursor(doc, lexer.Window{Start: 0, Length: doc.Len(), InitState: 1})

	require.True(t, cur.AtLineStart)
	assert.Equal(t, byte('a'), cur.Ch)
	assert.Equal(t, byte(0), cur.ChPrev)
	assert.Equal(t, byte('b'), cur.ChNext)

	cur.Forward()
	cur.SetState(2) // [0,1) style 1
	cur.ForwardN(2)
	require.True(t, cur.AtLineStart)
	assert.Equal(t, byte('c'), cur.Ch)
	assert.Equal(t, byte('\n'), cur.ChPrev)

	cur.ChangeState(3) // retags [1,3)
	cur.ForwardSetState(4)
	cur.Complete()

	assert.Equal(t, []lexer.Run{
		{Start: 0, End: 1, Style: 1},
		{Start: 1, End: 4, Style: 3},
		{Start: 4, End: 5, Style: 4},
	}, cur.Runs())
	assert.Equal(t, 4, cur.Pos())
}

func TestCursor_PeekOutsideWindow(t *testing.T) {
	t.Parallel()

	doc := document.FromString("one\ntwo\nthree")
	cur := lexer.NewCursor(doc, lexer.Window{Start: 4, Length: 3})

	assert.Equal(t, byte('\n'), cur.Peek(-1), "lookbehind into the previous line")
	assert.Equal(t, byte('t'), cur.Peek(4), "lookahead past the window")
	assert.Equal(t, byte(0), cur.Peek(-10))
	assert.Equal(t, byte(0), cur.Peek(100))
	assert.Equal(t, byte(0), cur.ChPrev, "no previous byte at the window start")
	assert.True(t, cur.Match("two\nth"))
	assert.False(t, cur.Match("tw0"))
}

func TestCursor_ForwardStopsAtEnd(t *testing.T) {
	t.Parallel()

	doc := document.FromString("abc")
	cur := lexer.NewCursor(doc, lexer.Window{Start: 0, Length: 2})
	cur.ForwardN(10)
	assert.Equal(t, 2, cur.Pos())
	cur.Forward()
	assert.Equal(t, 2, cur.Pos())
}

func TestCursor_LineBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []int // positions where AtLineStart holds
	}{
		{"lf", "a\nb\n", []int{0, 2, 4}},
		{"crlf", "a\r\nb", []int{0, 3}},
		{"cr", "a\rb\r", []int{0, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := document.FromString(tt.text)
			cur := lexer.NewCursor(doc, lexer.Window{Start: 0, Length: doc.Len()})
			var got []int
			for {
				if cur.AtLineStart {
					got = append(got, cur.Pos())
				}
				if !cur.More() {
					break
				}
				cur.Forward()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCursor_ForwardLineBreak(t *testing.T) {
	t.Parallel()

	doc := document.FromString("a\r\nb")
	cur := lexer.NewCursor(doc, lexer.Window{Start: 1, Length: 3})
	cur.ForwardLineBreak()
	assert.Equal(t, 3, cur.Pos())
	assert.True(t, cur.AtLineStart)

	cur.ForwardLineBreak() // not on a break
	assert.Equal(t, 3, cur.Pos())
}

func TestWindow_Clamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		win  lexer.Window
		want lexer.Window
	}{
		{"inside", lexer.Window{Start: 2, Length: 3}, lexer.Window{Start: 2, Length: 3}},
		{"past end", lexer.Window{Start: 8, Length: 5}, lexer.Window{Start: 8, Length: 2}},
		{"negative start", lexer.Window{Start: -2, Length: 5}, lexer.Window{Start: 0, Length: 3}},
		{"start beyond", lexer.Window{Start: 20, Length: 5}, lexer.Window{Start: 10, Length: 0}},
		{"negative length", lexer.Window{Start: 1, Length: -4}, lexer.Window{Start: 1, Length: 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.win.Clamp(10), tt.name)
	}
}

func TestCoalesceRuns(t *testing.T) {
	t.Parallel()

	got := lexer.CoalesceRuns([]lexer.Run{
		{Start: 0, End: 2, Style: 1},
		{Start: 2, End: 2, Style: 3},
		{Start: 2, End: 5, Style: 1},
		{Start: 5, End: 6, Style: 2},
	})
	assert.Equal(t, []lexer.Run{
		{Start: 0, End: 5, Style: 1},
		{Start: 5, End: 6, Style: 2},
	}, got)
}

func TestLevel(t *testing.T) {
	t.Parallel()

	level := lexer.LevelHeaderFlag | lexer.LevelWhiteFlag | (lexer.LevelBase + 2)
	assert.Equal(t, int(lexer.LevelBase)+2, level.Number())
	assert.True(t, level.IsHeader())
	assert.True(t, level.IsWhite())
	assert.Equal(t, "2 header white", level.String())
	assert.Equal(t, "0", lexer.LevelBase.String())
}

func TestProperties(t *testing.T) {
	t.Parallel()

	props := lexer.Properties{
		"fold.compact": "0",
		"a":            "yes",
		"b":            "Off",
		"c":            " 12 ",
		"d":            "x",
	}

	assert.Equal(t, 0, props.Int("fold.compact", 1))
	assert.Equal(t, 1, props.Int("a", 0))
	assert.Equal(t, 0, props.Int("b", 1))
	assert.Equal(t, 12, props.Int("c", 0))
	assert.Equal(t, 7, props.Int("d", 7))
	assert.Equal(t, 7, props.Int("missing", 7))

	var empty lexer.Properties
	assert.Empty(t, empty.Get("anything"))

	clone := props.Clone()
	clone["a"] = "no"
	assert.Equal(t, "yes", props["a"])
}

func TestFoldCompact(t *testing.T) {
	t.Parallel()

	assert.True(t, lexer.FoldCompact(document.FromString("x")))
	off := document.New([]byte("x"), lexer.Properties{lexer.PropFoldCompact: "false"})
	assert.False(t, lexer.FoldCompact(off))
}

func TestAtEOL(t *testing.T) {
	t.Parallel()

	doc := document.FromString("a\r\nb\rc\n")
	var got []int
	for pos := range doc.Len() {
		if lexer.AtEOL(doc, pos) {
			got = append(got, pos)
		}
	}
	assert.Equal(t, []int{2, 4, 6}, got)
}
