package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/lexstyle/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter receives skipped files, file errors and the summary
	// (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	Color config.ColorMode

	// Theme overrides style colours in ansi output.
	Theme config.Theme

	// ShowHeaders prints a banner above each file. Output for more than one
	// file always gets banners.
	ShowHeaders bool

	// ShowSkipped lists files no lexer applied to.
	ShowSkipped bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Verbose expands the summary into one row per statistic.
	Verbose bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatANSI,
		Color:       config.ColorAuto,
		ShowSkipped: true,
		ShowSummary: false,
	}
}

// displayPath returns path relative to WorkingDir when it lies below it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
