package runner

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern is returned for ignore or include globs that do not compile.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// patternSet holds compiled path globs. Paths are matched slash-separated
// and relative to the working directory: "*" stays within one directory,
// "**" crosses directories. A pattern without a slash also matches the
// base name, so "*.txt" skips text files at any depth.
type patternSet []compiledPattern

type compiledPattern struct {
	source   string
	glob     glob.Glob
	baseName bool
}

// ValidatePattern reports whether pattern is a glob the runner accepts.
func ValidatePattern(pattern string) error {
	_, err := compilePattern(pattern)
	return err
}

func compilePattern(pattern string) (compiledPattern, error) {
	pattern = filepath.ToSlash(pattern)
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return compiledPattern{}, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
	}
	return compiledPattern{
		source:   pattern,
		glob:     g,
		baseName: !strings.Contains(pattern, "/"),
	}, nil
}

func compilePatterns(patterns []string) (patternSet, error) {
	set := make(patternSet, 0, len(patterns))
	for _, p := range patterns {
		compiled, err := compilePattern(p)
		if err != nil {
			return nil, err
		}
		set = append(set, compiled)
	}
	return set, nil
}

// match reports whether any pattern matches relPath. Directories are also
// tried with a trailing slash so "build/**" prunes the build directory itself.
func (s patternSet) match(relPath string, dir bool) bool {
	if len(s) == 0 {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	candidates := []string{relPath, "/" + relPath}
	if dir {
		candidates = append(candidates, relPath+"/", "/"+relPath+"/")
	}
	base := path.Base(relPath)

	for _, p := range s {
		for _, candidate := range candidates {
			if p.glob.Match(candidate) {
				return true
			}
		}
		if p.baseName && p.glob.Match(base) {
			return true
		}
	}
	return false
}
