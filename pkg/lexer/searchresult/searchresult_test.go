package searchresult

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/lexer/lexertest"
	"github.com/yaklabco/lexstyle/pkg/markings"
)

const (
	searchLine = "Search \"needle\" (2 hits in 1 file)\n"
	fileLine   = "  /tmp/a.txt (2 hits)\n"
	resultLine = "\tLine 1: a needle here\n"
	otherLine  = "\tLine 22: needle\n"
)

func sampleDoc() string {
	return searchLine + fileLine + resultLine + otherLine
}

func sampleMarkings() markings.Table {
	return markings.Table{
		2: {Start: 11, End: 17},
		3: {Start: 10, End: 16},
	}
}

func shift(runs []lexer.Run, offset int) []lexer.Run {
	out := make([]lexer.Run, len(runs))
	for i, run := range runs {
		out[i] = lexer.Run{Start: run.Start + offset, End: run.End + offset, Style: run.Style}
	}
	return out
}

func TestLex_ResultLine(t *testing.T) {
	t.Parallel()

	rec := lexertest.NewRecorder(sampleDoc(), nil)
	lex := New(Options{Markings: sampleMarkings()})
	rec.LexAll(lex)

	base := len(searchLine) + len(fileLine)
	want := shift([]lexer.Run{
		{Start: 0, End: 4, Style: StyleDefault},
		{Start: 4, End: 7, Style: StyleLineNumber},
		{Start: 7, End: 11, Style: StyleDefault},
		{Start: 11, End: 17, Style: StyleMatchHighlight},
		{Start: 17, End: len(resultLine), Style: StyleDefault},
	}, base)

	assert.Equal(t, want, rec.Runs(base, base+len(resultLine)))
	assert.Equal(t, "needle", rec.String()[base+11:base+17])
}

func TestLex_Headers(t *testing.T) {
	t.Parallel()

	rec := lexertest.NewRecorder(sampleDoc(), nil)
	rec.LexAll(New(Options{Markings: sampleMarkings()}))

	assert.Equal(t, []lexer.Run{
		{Start: 0, End: len(searchLine), Style: StyleSearchHeader},
	}, rec.Runs(0, len(searchLine)))

	start := len(searchLine)
	assert.Equal(t, []lexer.Run{
		{Start: start, End: start + len(fileLine), Style: StyleFileHeader},
	}, rec.Runs(start, start+len(fileLine)))
}

func TestLex_EmptyMarkingsEmitNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lookup markings.Lookup
	}{
		{"nil lookup", nil},
		{"empty table", markings.Table{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := lexertest.NewRecorder(sampleDoc(), nil)
			calls := rec.Lex(New(Options{Markings: tt.lookup}), lexer.Window{Start: 0, Length: rec.Len()})
			assert.Empty(t, calls)
		})
	}
}

func TestLex_Partition(t *testing.T) {
	t.Parallel()

	rec := lexertest.NewRecorder(sampleDoc(), nil)
	calls := rec.Lex(New(Options{Markings: sampleMarkings()}), lexer.Window{Start: 0, Length: rec.Len()})
	require.NoError(t, lexertest.CheckPartition(calls, 0, rec.Len()))
}

func TestLex_LineWithoutMarking(t *testing.T) {
	t.Parallel()

	text := searchLine + resultLine
	rec := lexertest.NewRecorder(text, nil)
	rec.LexAll(New(Options{Markings: markings.Table{0: {Start: 1, End: 2}}}))

	base := len(searchLine)
	assert.Equal(t, shift([]lexer.Run{
		{Start: 0, End: 4, Style: StyleDefault},
		{Start: 4, End: 7, Style: StyleLineNumber},
		{Start: 7, End: len(resultLine), Style: StyleDefault},
	}, base), rec.Runs(base, len(text)))
}

func TestLex_NoColon(t *testing.T) {
	t.Parallel()

	text := "\tLine without colon\n"
	rec := lexertest.NewRecorder(text, nil)
	rec.LexAll(New(Options{Markings: markings.Table{0: {Start: 2, End: 5}}}))

	assert.Equal(t, []lexer.Run{{Start: 0, End: len(text), Style: StyleDefault}}, rec.Runs(0, len(text)))
}

func TestLex_ColonScanBound(t *testing.T) {
	t.Parallel()

	// The colon sits at offset 11.
	text := "\tLine 12345: x\n"
	table := markings.Table{0: {Start: 13, End: 14}}

	tests := []struct {
		name   string
		maxLen int
		want   []lexer.Run
	}{
		{
			name:   "colon outside bound",
			maxLen: 12,
			want:   []lexer.Run{{Start: 0, End: len(text), Style: StyleDefault}},
		},
		{
			name:   "colon inside bound",
			maxLen: 13,
			want: []lexer.Run{
				{Start: 0, End: 4, Style: StyleDefault},
				{Start: 4, End: 11, Style: StyleLineNumber},
				{Start: 11, End: 13, Style: StyleDefault},
				{Start: 13, End: 14, Style: StyleMatchHighlight},
				{Start: 14, End: len(text), Style: StyleDefault},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := lexertest.NewRecorder(text, nil)
			rec.LexAll(New(Options{Markings: table, MaxLineLength: tt.maxLen}))
			assert.Equal(t, tt.want, rec.Runs(0, len(text)))
		})
	}
}

func TestLex_ShortLine(t *testing.T) {
	t.Parallel()

	text := "ab\n"
	rec := lexertest.NewRecorder(text, nil)
	rec.LexAll(New(Options{Markings: markings.Table{0: {Start: 0, End: 1}}}))
	assert.Equal(t, []lexer.Run{{Start: 0, End: 3, Style: StyleDefault}}, rec.Runs(0, 3))
}

func TestLex_MatchBeyondLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mark markings.Marking
		want []lexer.Run
	}{
		{
			name: "start past line end",
			mark: markings.Marking{Start: 40, End: 45},
			want: []lexer.Run{
				{Start: 0, End: 4, Style: StyleDefault},
				{Start: 4, End: 7, Style: StyleLineNumber},
				{Start: 7, End: len(resultLine), Style: StyleDefault},
			},
		},
		{
			name: "end past line end",
			mark: markings.Marking{Start: 11, End: 99},
			want: []lexer.Run{
				{Start: 0, End: 4, Style: StyleDefault},
				{Start: 4, End: 7, Style: StyleLineNumber},
				{Start: 7, End: 11, Style: StyleDefault},
				{Start: 11, End: len(resultLine), Style: StyleMatchHighlight},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := lexertest.NewRecorder(resultLine, nil)
			rec.LexAll(New(Options{Markings: markings.Table{0: tt.mark}}))
			assert.Equal(t, tt.want, rec.Runs(0, len(resultLine)))
		})
	}
}

func TestLex_WindowEndsInsideMatch(t *testing.T) {
	t.Parallel()

	rec := lexertest.NewRecorder(resultLine+otherLine, nil)
	lex := New(Options{Markings: markings.Table{0: {Start: 11, End: 17}}})

	calls := rec.Lex(lex, lexer.Window{Start: 0, Length: 14})
	require.NoError(t, lexertest.CheckPartition(calls, 0, 14))
	assert.Equal(t, StyleMatchHighlight, calls[len(calls)-1].Style)
	assert.Equal(t, StyleDefault, rec.StyleAt(17), "nothing styled past the window")
}

func TestLex_WindowStartingMidLineReanchors(t *testing.T) {
	t.Parallel()

	rec := lexertest.NewRecorder(sampleDoc(), nil)
	lex := New(Options{Markings: sampleMarkings()})
	full := rec.LexAll(lex)

	base := len(searchLine) + len(fileLine)
	calls := rec.Lex(lex, lexer.Window{Start: base + 9, Length: rec.Len() - base - 9, InitState: StyleDefault})
	require.NoError(t, lexertest.CheckPartition(calls, base, rec.Len()))
	assert.Equal(t, full, rec.Runs(0, rec.Len()))
}

func TestLex_LineEndings(t *testing.T) {
	t.Parallel()

	for _, eol := range []string{"\n", "\r\n", "\r"} {
		text := "  /a.txt" + eol + "\tLine 3: hit" + eol
		rec := lexertest.NewRecorder(text, nil)
		rec.LexAll(New(Options{Markings: markings.Table{1: {Start: 9, End: 12}}}))

		headerEnd := len("  /a.txt" + eol)
		assert.Equal(t, StyleFileHeader, rec.StyleAt(headerEnd-1), "eol %q", eol)
		assert.Equal(t, StyleDefault, rec.StyleAt(headerEnd), "eol %q", eol)
		assert.Equal(t, StyleMatchHighlight, rec.StyleAt(headerEnd+9), "eol %q", eol)
		assert.Equal(t, StyleDefault, rec.StyleAt(len(text)-1), "eol %q", eol)
	}
}

func TestLex_Properties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.SampledFrom([]string{
			searchLine, fileLine, resultLine, otherLine, "\n", "xy\n", "\tLine 9 no colon\n", "\tLine 4: tail",
		}), 1, 12).Draw(t, "lines")
		text := strings.Join(lines, "")

		table := markings.Table{}
		for line := range lines {
			start := rapid.IntRange(0, 30).Draw(t, "start")
			table[line] = markings.Marking{Start: start, End: start + rapid.IntRange(0, 10).Draw(t, "width")}
		}
		lex := New(Options{Markings: table})

		rec := lexertest.NewRecorder(text, nil)
		first := rec.Lex(lex, lexer.Window{Start: 0, Length: rec.Len()})
		if err := lexertest.CheckPartition(first, 0, rec.Len()); err != nil {
			t.Fatal(err)
		}
		styles := rec.Styles(0, rec.Len())

		second := rec.Lex(lex, lexer.Window{Start: 0, Length: rec.Len()})
		assert.Equal(t, first, second, "idempotent")

		// Restart at a line boundary.
		split := rec.LineStart(rapid.IntRange(0, rec.LineCount()-1).Draw(t, "split"))
		fresh := lexertest.NewRecorder(text, nil)
		fresh.Lex(lex, lexer.Window{Start: 0, Length: split})
		fresh.Lex(lex, lexer.Window{Start: split, Length: fresh.Len() - split, InitState: fresh.StyleAt(split - 1)})
		assert.Equal(t, styles, fresh.Styles(0, fresh.Len()), "restart at %d", split)
	})
}

func TestFold_FileHeaderAndResults(t *testing.T) {
	t.Parallel()

	text := fileLine + resultLine + resultLine + resultLine
	rec := lexertest.NewRecorder(text, nil)
	lex := New(Options{Markings: markings.Table{1: {Start: 11, End: 17}}})
	rec.LexAll(lex)
	lex.Fold(lexer.Window{Start: 0, Length: rec.Len()}, rec)

	levels := rec.Levels()
	require.Len(t, levels, 5)
	assert.Equal(t, lexer.LevelHeaderFlag|fileHeaderLevel, levels[0])
	assert.Equal(t, []lexer.Level{resultLevel, resultLevel, resultLevel}, levels[1:4])
	assert.Equal(t, lexer.LevelBase, levels[4])
}

func TestFold_SearchHeaderNesting(t *testing.T) {
	t.Parallel()

	rec := lexertest.NewRecorder(sampleDoc(), nil)
	lex := New(Options{Markings: sampleMarkings()})
	rec.LexAll(lex)
	lex.Fold(lexer.Window{Start: 0, Length: rec.Len()}, rec)

	search, file, result := rec.LevelAt(0), rec.LevelAt(1), rec.LevelAt(2)
	assert.True(t, search.IsHeader())
	assert.True(t, file.IsHeader())
	assert.False(t, result.IsHeader())
	assert.Less(t, search.Number(), file.Number())
	assert.Less(t, file.Number(), result.Number())
}

func TestFold_Compact(t *testing.T) {
	t.Parallel()

	text := fileLine + "\n" + resultLine
	lex := New(Options{Markings: markings.Table{2: {Start: 11, End: 17}}})

	tests := []struct {
		name      string
		props     lexer.Properties
		wantWhite bool
	}{
		{"default on", nil, true},
		{"explicit off", lexer.Properties{lexer.PropFoldCompact: "0"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := lexertest.NewRecorder(text, tt.props)
			rec.LexAll(lex)
			lex.Fold(lexer.Window{Start: 0, Length: rec.Len()}, rec)
			assert.Equal(t, tt.wantWhite, rec.LevelAt(1).IsWhite())
			assert.False(t, rec.LevelAt(2).IsWhite())
		})
	}
}

func TestRegistered(t *testing.T) {
	t.Parallel()

	lex, ok := lexer.DefaultRegistry.Get("search")
	require.True(t, ok)
	assert.Equal(t, Name, lex.Name())
	assert.Equal(t, "match", lexer.StyleName(lex, StyleMatchHighlight))
}
