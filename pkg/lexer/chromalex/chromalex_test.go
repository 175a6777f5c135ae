package chromalex

import (
	"strings"
	"testing"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/lexer/lexertest"
)

const goSource = `package main

// note
var s = "hi"
var n = 42
`

func TestLex_GoSource(t *testing.T) {
	t.Parallel()

	lex, err := New("go")
	require.NoError(t, err)

	rec := lexertest.NewRecorder(goSource, nil)
	calls := rec.Lex(lex, lexer.Window{Start: 0, Length: rec.Len()})
	require.NoError(t, lexertest.CheckPartition(calls, 0, rec.Len()))

	assert.Equal(t, StyleKeyword, rec.StyleAt(0))
	assert.Equal(t, StyleComment, rec.StyleAt(strings.Index(goSource, "// note")))
	assert.Equal(t, StyleString, rec.StyleAt(strings.Index(goSource, `"hi"`)+1))
	assert.Equal(t, StyleNumber, rec.StyleAt(strings.Index(goSource, "42")))
}

func TestLex_WindowOnly(t *testing.T) {
	t.Parallel()

	lex, err := New("go")
	require.NoError(t, err)

	start := strings.Index(goSource, "var s")
	end := strings.Index(goSource, "var n")

	rec := lexertest.NewRecorder(goSource, nil)
	calls := rec.Lex(lex, lexer.Window{Start: start, Length: end - start})
	require.NoError(t, lexertest.CheckPartition(calls, start, end))
	assert.Equal(t, StyleKeyword, rec.StyleAt(start))
	assert.Equal(t, StyleDefault, rec.StyleAt(0), "text before the window is untouched")
}

func TestLex_WindowInsideToken(t *testing.T) {
	t.Parallel()

	lex, err := New("go")
	require.NoError(t, err)

	start := strings.Index(goSource, "note")
	rec := lexertest.NewRecorder(goSource, nil)
	calls := rec.Lex(lex, lexer.Window{Start: start, Length: 2})
	require.NoError(t, lexertest.CheckPartition(calls, start, start+2))
	assert.Equal(t, StyleComment, calls[0].Style)
}

func TestNew_Unknown(t *testing.T) {
	t.Parallel()

	_, err := New("no-such-language")
	require.ErrorIs(t, err, ErrNoChromaLexer)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	lex, ok := Match("/src/pkg/main.go")
	require.True(t, ok)
	assert.Equal(t, "go", lex.Name())
	assert.Contains(t, lex.Extensions(), ".go")

	_, ok = Match("README.unknownext")
	assert.False(t, ok)
}

func TestStyleFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tt   chromalib.TokenType
		want lexer.Style
	}{
		{chromalib.KeywordType, StyleType},
		{chromalib.KeywordDeclaration, StyleKeyword},
		{chromalib.CommentMultiline, StyleComment},
		{chromalib.LiteralStringDouble, StyleString},
		{chromalib.LiteralNumberHex, StyleNumber},
		{chromalib.OperatorWord, StyleOperator},
		{chromalib.NameFunction, StyleFunction},
		{chromalib.NameBuiltin, StyleConstant},
		{chromalib.Punctuation, StylePunctuation},
		{chromalib.NameVariable, StyleName},
		{chromalib.GenericInserted, StyleGeneric},
		{chromalib.Text, StyleDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StyleFor(tt.tt), "token type %s", tt.tt)
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := lexer.NewRegistry()
	Register(reg, "go", "no-such-language")

	assert.Equal(t, []string{"go"}, reg.Names())
	lex, ok := reg.Get("golang")
	require.True(t, ok)
	assert.Equal(t, "go", lex.Name())

	byExt, ok := reg.ForExtension(".go")
	require.True(t, ok)
	assert.Equal(t, "go", byExt.Name())
}
