package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLexer for testing.
type mockLexer struct {
	NoFold

	name string
	exts []string
}

func (m *mockLexer) Name() string { return m.name }
func (m *mockLexer) Extensions() []string { return m.exts }
func (m *mockLexer) StyleNames() []string { return []string{"default", "Keyword"} }
func (m *mockLexer) InitialState() Style { return StyleDefault }
func (m *mockLexer) Lex(Window, Document) {}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockLexer{name: "markdown", exts: []string{".md"}})

	got, ok := reg.Get("markdown")
	assert.True(t, ok)
	assert.Equal(t, "markdown", got.Name())

	_, ok = reg.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_Alias(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockLexer{name: "markdown"})
	reg.RegisterAlias("MD", "markdown")

	got, ok := reg.Get("md")
	require.True(t, ok)
	assert.Equal(t, "markdown", got.Name())

	reg.RegisterAlias("dangling", "missing")
	_, ok = reg.Get("dangling")
	assert.False(t, ok)
}

func TestRegistry_MustGet(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.MustGet("nope")
	require.ErrorIs(t, err, ErrUnknownLexer)
}

func TestRegistry_ForExtension(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockLexer{name: "markdown", exts: []string{".md", ".Markdown"}})

	tests := []struct {
		ext    string
		wantOK bool
	}{
		{".md", true},
		{".MD", true},
		{".markdown", true},
		{".txt", false},
	}

	for _, tt := range tests {
		_, ok := reg.ForExtension(tt.ext)
		assert.Equal(t, tt.wantOK, ok, "ext: %s", tt.ext)
	}
	assert.Equal(t, []string{".markdown", ".md"}, reg.Extensions())
}

func TestRegistry_SortedListing(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockLexer{name: "zeta"})
	reg.Register(&mockLexer{name: "alpha"})
	reg.Register(&mockLexer{name: "mid"})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())

	lexers := reg.Lexers()
	require.Len(t, lexers, 3)
	assert.Equal(t, "alpha", lexers[0].Name())
	assert.Equal(t, "zeta", lexers[2].Name())
}

func TestRegistry_ReplaceSameName(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockLexer{name: "x", exts: []string{".a"}})
	reg.Register(&mockLexer{name: "x", exts: []string{".b"}})

	assert.Len(t, reg.Names(), 1)
	_, ok := reg.ForExtension(".b")
	assert.True(t, ok)
}

func TestStyleName(t *testing.T) {
	lex := &mockLexer{name: "x"}
	assert.Equal(t, "Keyword", StyleName(lex, 1))
	assert.Equal(t, "9", StyleName(lex, 9))

	style, ok := ParseStyle(lex, "keyword")
	assert.True(t, ok)
	assert.Equal(t, Style(1), style)

	_, ok = ParseStyle(lex, "bogus")
	assert.False(t, ok)
}
