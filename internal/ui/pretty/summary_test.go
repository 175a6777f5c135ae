package pretty_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/lexer/markdown"
	"github.com/yaklabco/lexstyle/pkg/lexer/searchresult"
	"github.com/yaklabco/lexstyle/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing discovered",
			stats: runner.Stats{},
			want:  "No files to style\n",
		},
		{
			name: "single file",
			stats: runner.Stats{
				FilesDiscovered: 1,
				FilesProcessed:  1,
				ByLexer:         map[string]int{"markdown": 1},
			},
			want: "1 file styled (1 markdown)\n",
		},
		{
			name: "mixed",
			stats: runner.Stats{
				FilesDiscovered: 6,
				FilesProcessed:  4,
				FilesSkipped:    1,
				FilesErrored:    1,
				ByLexer:         map[string]int{"go": 1, "markdown": 3},
				Duration:        12 * time.Millisecond,
			},
			want: "4 files styled (3 markdown, 1 go), 1 skipped, 1 failed in 12ms\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	ok := styles.FormatSummary(runner.Stats{FilesProcessed: 2, Lines: 40, Runs: 17, ByLexer: map[string]int{"markdown": 2}})
	assert.Contains(t, ok, "Summary")
	assert.Contains(t, ok, "Files styled:      2")
	assert.Contains(t, ok, "Lines:             40")
	assert.Contains(t, ok, "2 markdown")
	assert.Contains(t, ok, "All files styled")
	assert.NotContains(t, ok, "Files failed")

	failed := styles.FormatSummary(runner.Stats{FilesProcessed: 1, FilesErrored: 1})
	assert.Contains(t, failed, "Files failed:      1")
	assert.Contains(t, failed, "Some files could not be styled")
}

func TestFormatFileMessages(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "docs/a.md (markdown)", styles.FormatFileHeader("docs/a.md", "markdown"))
	assert.Equal(t, "docs/a.md", styles.FormatFileHeader("docs/a.md", ""))
	assert.Equal(t, "  a.md  error  boom\n", styles.FormatFileError("a.md", errors.New("boom")))
	assert.Equal(t, "  a.bin  skipped  binary\n", styles.FormatFileSkipped("a.bin", errors.New("binary")))
	assert.Equal(t, "warning one\nwarning two\n", styles.FormatWarnings([]string{"one", "two"}))
	assert.Equal(t, "a.md:3", styles.FormatLocation("a.md", 2))
}

func TestFormatLexerTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatLexerTable([]lexer.Lexer{markdown.New(), searchresult.New(searchresult.Options{})})

	assert.Contains(t, out, "LEXER")
	assert.Contains(t, out, "markdown")
	assert.Contains(t, out, ".md .markdown")
	assert.Contains(t, out, "searchresult")
	assert.Contains(t, out, "17")
}

func TestFormatStyleTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	lex := markdown.New()
	out := styles.FormatStyleTable(lex, pretty.NewPalette(styles, lex, nil))

	assert.Contains(t, out, "header1")
	assert.Contains(t, out, "code-block")
}
