package lexer

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds all registered lexers.
type Registry struct {
	mu          sync.RWMutex
	byName      map[string]Lexer
	aliases     map[string]string // alias -> canonical name
	byExtension map[string]string // extension -> canonical name
}

// NewRegistry creates an empty lexer registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:      make(map[string]Lexer),
		aliases:     make(map[string]string),
		byExtension: make(map[string]string),
	}
}

// Register adds a lexer to the registry.
// If a lexer with the same name already exists, it is replaced.
func (r *Registry) Register(lex Lexer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[lex.Name()] = lex
	for _, ext := range lex.Extensions() {
		r.byExtension[strings.ToLower(ext)] = lex.Name()
	}
}

// RegisterAlias maps an alias to a canonical lexer name (e.g. "md" -> "markdown").
func (r *Registry) RegisterAlias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = name
}

// Get retrieves a lexer by name or alias.
func (r *Registry) Get(key string) (Lexer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if lex, ok := r.byName[key]; ok {
		return lex, true
	}
	if name, ok := r.aliases[strings.ToLower(key)]; ok {
		lex, ok := r.byName[name]
		return lex, ok
	}
	return nil, false
}

// MustGet is like Get but returns ErrUnknownLexer for missing keys.
func (r *Registry) MustGet(key string) (Lexer, error) {
	lex, ok := r.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLexer, key)
	}
	return lex, nil
}

// ForExtension returns the lexer registered for a file extension such as ".md".
func (r *Registry) ForExtension(ext string) (Lexer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byExtension[strings.ToLower(ext)]
	if !ok {
		return nil, false
	}
	lex, ok := r.byName[name]
	return lex, ok
}

// Extensions returns every registered extension in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		result = append(result, ext)
	}
	slices.Sort(result)
	return result
}

// Lexers returns all registered lexers sorted by name.
func (r *Registry) Lexers() []Lexer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Lexer, 0, len(r.byName))
	for _, lex := range r.byName {
		result = append(result, lex)
	}

	slices.SortFunc(result, func(a, b Lexer) int {
		return cmp.Compare(a.Name(), b.Name())
	})

	return result
}

// Names returns all registered lexer names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for name := range r.byName {
		result = append(result, name)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in lexers.
// Lexer packages register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for lexer registration
var DefaultRegistry = NewRegistry()
