package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// normalizeLexerNames rewrites lexer aliases to canonical names and
// extension keys to lowercase, so "md" and "markdown" configure the same lexer.
// Names that do not resolve are left for validation to report.
func normalizeLexerNames(cfg *config.Config, registry *lexer.Registry, result *LoadResult) {
	cfg.Lexer = canonicalName(registry, cfg.Lexer)

	if len(cfg.Extensions) > 0 {
		extensions := make(map[string]string, len(cfg.Extensions))
		for ext, name := range cfg.Extensions {
			extensions[strings.ToLower(ext)] = canonicalName(registry, name)
		}
		cfg.Extensions = extensions
	}

	if len(cfg.Theme) == 0 {
		return
	}

	theme := make(config.Theme, len(cfg.Theme))
	seen := make(map[string]string, len(cfg.Theme)) // canonical -> original key
	for key, styles := range cfg.Theme {
		name := canonicalName(registry, key)
		if original, dup := seen[name]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate theme: %q and %q both refer to %s; merging", original, key, name))
		}
		seen[name] = key

		merged, ok := theme[name]
		if !ok {
			merged = make(map[string]config.StyleSpec, len(styles))
			theme[name] = merged
		}
		for style, spec := range styles {
			merged[strings.ToLower(style)] = spec
		}
	}
	cfg.Theme = theme
}

// canonicalName resolves an alias through registry, returning name unchanged
// when it is empty or unknown.
func canonicalName(registry *lexer.Registry, name string) string {
	if name == "" {
		return name
	}
	lex, ok := registry.Get(name)
	if !ok {
		return name
	}
	return lex.Name()
}
