package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/lexer/lexertest"
)

//nolint:gochecknoglobals // test vocabulary
var sampleLines = []string{
	"",
	"# Head",
	"### Deeper",
	"Title",
	"===",
	"---",
	"* * *",
	"> quote",
	">> nested",
	"    code",
	"\tcode",
	"~~~",
	"~~~go",
	"a **b** c",
	"**open",
	"close**",
	"__u__",
	"`x` and ```y```",
	"`open",
	"~~s~~",
	"\\# escaped",
	"trailing \\",
	"text with words",
	"=",
	"-",
}

// genDocument draws a Markdown document from sampleLines.
func genDocument(t *rapid.T) string {
	lines := rapid.SliceOfN(rapid.SampledFrom(sampleLines), 1, 16).Draw(t, "lines")
	eol := rapid.SampledFrom([]string{"\n", "\r\n", "\r"}).Draw(t, "eol")
	text := strings.Join(lines, eol)
	if rapid.Bool().Draw(t, "trailingEOL") {
		text += eol
	}
	return text
}

// stateBefore is the state a window starting at pos resumes from: the
// lexer's initial state at the document start, else the style before pos.
func stateBefore(rec *lexertest.Recorder, lex lexer.Lexer, pos int) lexer.Style {
	if pos == 0 {
		return lex.InitialState()
	}
	return rec.StyleAt(pos - 1)
}

func TestLex_PartitionProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		text := genDocument(t)
		rec := lexertest.NewRecorder(text, nil)
		lex := New()

		calls := rec.Lex(lex, lexer.Window{Start: 0, Length: rec.Len(), InitState: lex.InitialState()})
		if err := lexertest.CheckPartition(calls, 0, rec.Len()); err != nil {
			t.Fatalf("full window: %v", err)
		}

		// A window starting anywhere is widened to the previous line start.
		start := rapid.IntRange(0, rec.Len()).Draw(t, "start")
		calls = rec.Lex(lex, lexer.Window{Start: start, Length: rec.Len() - start, InitState: stateBefore(rec, lex, start)})
		if start == rec.Len() {
			assert.Empty(t, calls)
			return
		}
		anchor := rec.LineStart(max(rec.LineFromPosition(start)-1, 0))
		if err := lexertest.CheckPartition(calls, anchor, rec.Len()); err != nil {
			t.Fatalf("window at %d: %v", start, err)
		}
	})
}

func TestLex_IdempotenceProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		text := genDocument(t)
		rec := lexertest.NewRecorder(text, nil)
		lex := New()
		win := lexer.Window{Start: 0, Length: rec.Len(), InitState: lex.InitialState()}

		first := rec.Lex(lex, win)
		second := rec.Lex(lex, win)
		assert.Equal(t, first, second)
	})
}

func TestLex_RestartProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		text := genDocument(t)
		lex := New()

		whole := lexertest.NewRecorder(text, nil)
		whole.LexAll(lex)
		want := whole.Styles(0, whole.Len())

		split := whole.LineStart(rapid.IntRange(0, whole.LineCount()-1).Draw(t, "line"))
		parts := lexertest.NewRecorder(text, nil)
		parts.Lex(lex, lexer.Window{Start: 0, Length: split, InitState: lex.InitialState()})
		parts.Lex(lex, lexer.Window{Start: split, Length: parts.Len() - split, InitState: stateBefore(parts, lex, split)})

		assert.Equal(t, want, parts.Styles(0, parts.Len()), "split at %d of %q", split, text)
	})
}

func TestLex_IncrementalEditsMatchFullScan(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		text := genDocument(t)
		lex := New()

		doc := lexertest.NewRecorder(text, nil)
		doc.Colourise(lex, -1)

		insert := rapid.SampledFrom(sampleLines).Draw(t, "insert") + "\n"
		line := rapid.IntRange(0, doc.LineCount()-1).Draw(t, "at")
		if err := doc.Insert(doc.LineStart(line), []byte(insert)); err != nil {
			t.Fatal(err)
		}
		// Restyle from the edit to the end, as an editor would on redraw.
		doc.Colourise(lex, -1)

		fresh := lexertest.NewRecorder(doc.String(), nil)
		fresh.LexAll(lex)
		assert.Equal(t, fresh.Styles(0, fresh.Len()), doc.Styles(0, doc.Len()))
	})
}
