// Package runner styles many files concurrently.
//
// Files are discovered under the requested paths, then handed to a fixed
// pool of workers. Each worker reads a file, picks its lexer, and lexes and
// folds it into a document that no other goroutine touches.
package runner

import (
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// DefaultMaxFileSize caps the files the runner reads.
const DefaultMaxFileSize = 32 << 20

// Options controls multi-file styling behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up while walking directories. Defaults to every extension the
	// lexer registry knows. Files named directly are always processed.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored walks vendored directories such as node_modules.
	IncludeVendored bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// MaxFileSize skips files larger than this many bytes.
	// 0 means DefaultMaxFileSize.
	MaxFileSize int64
}

// OptionsFromConfig fills the discovery options a configuration controls.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}
	opts.Jobs = cfg.Jobs
	opts.ExcludeGlobs = cfg.Ignore
	if len(cfg.Extensions) > 0 {
		opts.Extensions = lexer.DefaultRegistry.Extensions()
		for ext := range cfg.Extensions {
			opts.Extensions = append(opts.Extensions, ext)
		}
	}
	return opts
}

// DefaultExtensions returns the extensions of every registered lexer.
func DefaultExtensions() []string {
	return lexer.DefaultRegistry.Extensions()
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveMaxFileSize() int64 {
	if o.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return o.MaxFileSize
}
