// Package langdetect picks the lexer for a file.
//
// Detection tries, in order: a forced lexer name, the configured extension
// overrides, the registry's extension table, search-result sniffing, and
// finally go-enry's filename, shebang and content classifiers.
package langdetect

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/lexer/searchresult"
)

var (
	// ErrNoLexer is returned when no registered lexer fits a file.
	ErrNoLexer = errors.New("no lexer for file")

	// ErrBinary is returned for content that does not look like text.
	ErrBinary = errors.New("binary content")
)

// sniffLimit bounds how much content the classifiers look at.
const sniffLimit = 16 * 1024

// enryNames maps go-enry language names that do not lowercase onto a
// registry name.
//
//nolint:gochecknoglobals // read-only lookup table
var enryNames = map[string]string{
	"Shell":      "bash",
	"Emacs Lisp": "emacslisp",
	"Go Module":  "go",
	"Text":       "",
}

// Detector picks lexers. The zero value uses lexer.DefaultRegistry.
type Detector struct {
	// Registry resolves names and extensions.
	Registry *lexer.Registry

	// Forced, when set, names the lexer for every file.
	Forced string

	// Extensions maps lowercase extensions to lexer names ahead of the registry.
	Extensions map[string]string

	// Search configures the search-result lexer. Files detected as search
	// results get a fresh searchresult.Lexer built from these options, so
	// the injected markings reach it.
	Search searchresult.Options
}

func (d *Detector) registry() *lexer.Registry {
	if d.Registry == nil {
		return lexer.DefaultRegistry
	}
	return d.Registry
}

// Detect returns the lexer for path with the given content.
func (d *Detector) Detect(path string, content []byte) (lexer.Lexer, error) {
	reg := d.registry()

	if d.Forced != "" {
		lex, err := reg.MustGet(d.Forced)
		if err != nil {
			return nil, err
		}
		return d.configure(lex), nil
	}

	if sample := sniffSample(content); enry.IsBinary(sample) {
		return nil, fmt.Errorf("%w: %s", ErrBinary, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if name, ok := d.Extensions[ext]; ok {
		if lex, found := reg.Get(name); found {
			return d.configure(lex), nil
		}
	}
	if lex, ok := reg.ForExtension(ext); ok {
		return d.configure(lex), nil
	}

	if LooksLikeSearchResults(content) {
		if lex, ok := reg.Get(searchresult.Name); ok {
			return d.configure(lex), nil
		}
	}

	if name := Language(path, content); name != "" {
		if lex, ok := reg.Get(name); ok {
			return d.configure(lex), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNoLexer, path)
}

// configure swaps the registry's search-result lexer for one that carries
// the detector's markings.
func (d *Detector) configure(lex lexer.Lexer) lexer.Lexer {
	if lex.Name() == searchresult.Name {
		return searchresult.New(d.Search)
	}
	return lex
}

// Language names the language go-enry finds for a file, normalised to a
// lowercase registry name. It returns "" when go-enry has no answer.
func Language(path string, content []byte) string {
	sample := sniffSample(content)
	if lang, safe := enry.GetLanguageByShebang(sample); safe {
		return normalize(lang)
	}
	return normalize(enry.GetLanguage(filepath.Base(path), sample))
}

// LooksLikeSearchResults reports whether content starts with a search header
// followed by a file header.
func LooksLikeSearchResults(content []byte) bool {
	first, rest, found := bytes.Cut(content, []byte("\n"))
	if !found || !bytes.HasPrefix(first, []byte("Search ")) {
		return false
	}
	second, _, _ := bytes.Cut(rest, []byte("\n"))
	return bytes.HasPrefix(second, []byte(" ")) && len(bytes.TrimSpace(second)) > 0
}

func sniffSample(content []byte) []byte {
	if len(content) > sniffLimit {
		return content[:sniffLimit]
	}
	return content
}

func normalize(lang string) string {
	if name, ok := enryNames[lang]; ok {
		return name
	}
	return strings.ToLower(lang)
}
