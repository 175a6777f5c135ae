// Package chromalex exposes chroma lexers through the lexer engine contract.
//
// Chroma lexers are not restartable, so every scan tokenises the whole
// document and only the requested window is coloured. Token types are folded
// into a small set of coarse styles shared by all chroma-backed lexers.
package chromalex

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// ErrNoChromaLexer is returned when chroma has no lexer for a name.
var ErrNoChromaLexer = errors.New("no chroma lexer")

// Styles.
const (
	StyleDefault lexer.Style = iota
	StyleKeyword
	StyleType
	StyleComment
	StyleString
	StyleNumber
	StyleOperator
	StyleFunction
	StyleConstant
	StylePunctuation
	StyleName
	StyleGeneric
)

//nolint:gochecknoglobals // read-only lookup table
var styleNames = []string{
	"default",
	"keyword",
	"type",
	"comment",
	"string",
	"number",
	"operator",
	"function",
	"constant",
	"punctuation",
	"name",
	"generic",
}

// DefaultLanguages are the chroma lexers registered by this package.
//
//nolint:gochecknoglobals // registration list
var DefaultLanguages = []string{
	"go", "python", "javascript", "typescript", "rust", "c", "c++", "java",
	"bash", "yaml", "json", "toml", "sql", "diff", "makefile", "dockerfile",
}

// Lexer adapts one chroma lexer.
type Lexer struct {
	lexer.NoFold

	name       string
	chroma     chromalib.Lexer
	extensions []string
	aliases    []string
}

// Compile-time interface check.
var _ lexer.Lexer = (*Lexer)(nil)

// New wraps the chroma lexer registered under name.
func New(name string) (*Lexer, error) {
	chroma := lexers.Get(name)
	if chroma == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoChromaLexer, name)
	}
	return wrap(chroma), nil
}

// Match wraps the chroma lexer whose filename patterns match filename.
func Match(filename string) (*Lexer, bool) {
	chroma := lexers.Match(filepath.Base(filename))
	if chroma == nil {
		return nil, false
	}
	return wrap(chroma), true
}

func wrap(chroma chromalib.Lexer) *Lexer {
	cfg := chroma.Config()
	lex := &Lexer{
		name:   strings.ToLower(cfg.Name),
		chroma: chromalib.Coalesce(chroma),
	}
	for _, pattern := range cfg.Filenames {
		// Only plain "*.ext" patterns map onto the extension table.
		ext, ok := strings.CutPrefix(pattern, "*")
		if !ok || !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, "*?[") {
			continue
		}
		lex.extensions = append(lex.extensions, strings.ToLower(ext))
	}
	for _, alias := range cfg.Aliases {
		lex.aliases = append(lex.aliases, strings.ToLower(alias))
	}
	return lex
}

// Name implements lexer.Lexer.
func (l *Lexer) Name() string { return l.name }

// Extensions implements lexer.Lexer.
func (l *Lexer) Extensions() []string { return l.extensions }

// Aliases returns chroma's alternative names for the language.
func (l *Lexer) Aliases() []string { return l.aliases }

// StyleNames implements lexer.Lexer.
func (l *Lexer) StyleNames() []string { return styleNames }

// InitialState implements lexer.Lexer.
func (l *Lexer) InitialState() lexer.Style { return StyleDefault }

// Lex implements lexer.Lexer.
func (l *Lexer) Lex(win lexer.Window, doc lexer.Document) {
	win = win.Clamp(doc.Len())
	if win.Length == 0 {
		return
	}
	end := win.End()
	emit := lexer.NewEmitter(doc, win.Start, end)

	iterator, err := l.chroma.Tokenise(nil, documentText(doc))
	if err == nil {
		pos := 0
		for token := iterator(); token != chromalib.EOF && pos < end; token = iterator() {
			pos += len(token.Value)
			if pos > win.Start {
				emit.ColourTo(min(pos, end)-1, StyleFor(token.Type))
			}
		}
	}
	emit.ColourTo(end-1, StyleDefault)
}

// texter is implemented by hosts that can hand out their contents directly.
type texter interface {
	Text() []byte
}

func documentText(doc lexer.Document) string {
	if t, ok := doc.(texter); ok {
		return string(t.Text())
	}
	var sb strings.Builder
	sb.Grow(doc.Len())
	for pos := range doc.Len() {
		sb.WriteByte(doc.CharAt(pos))
	}
	return sb.String()
}

// StyleFor maps a chroma token type onto a coarse style.
func StyleFor(tt chromalib.TokenType) lexer.Style {
	switch {
	case tt == chromalib.KeywordType:
		return StyleType
	case tt.InCategory(chromalib.Keyword):
		return StyleKeyword
	case tt.InCategory(chromalib.Comment):
		return StyleComment
	case tt.InSubCategory(chromalib.LiteralString):
		return StyleString
	case tt.InSubCategory(chromalib.LiteralNumber):
		return StyleNumber
	case tt.InCategory(chromalib.Operator):
		return StyleOperator
	case tt == chromalib.NameFunction || tt == chromalib.NameFunctionMagic:
		return StyleFunction
	case tt == chromalib.NameConstant || tt == chromalib.NameBuiltin:
		return StyleConstant
	case tt == chromalib.Punctuation:
		return StylePunctuation
	case tt.InCategory(chromalib.Name):
		return StyleName
	case tt.InCategory(chromalib.Generic):
		return StyleGeneric
	default:
		return StyleDefault
	}
}

// Register adds the named chroma lexers and their aliases to reg, skipping
// names chroma does not know and aliases already taken.
func Register(reg *lexer.Registry, names ...string) {
	for _, name := range names {
		lex, err := New(name)
		if err != nil {
			continue
		}
		if _, taken := reg.Get(lex.Name()); taken {
			continue
		}
		reg.Register(lex)
		for _, alias := range lex.Aliases() {
			if _, taken := reg.Get(alias); !taken {
				reg.RegisterAlias(alias, lex.Name())
			}
		}
	}
}

func init() {
	Register(lexer.DefaultRegistry, DefaultLanguages...)
}
