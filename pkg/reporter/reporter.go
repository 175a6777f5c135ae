// Package reporter writes styled documents in the supported output formats.
package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes styling results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files written and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to per-file Renderers.
type reporterFacade struct {
	renderer Renderer
	opts     Options
	styles   *pretty.Styles
	errStyle *pretty.Styles
}

// Report implements Reporter.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(f.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	headers := f.opts.ShowHeaders || styledCount(result) > 1
	var written int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		path := f.opts.displayPath(file.Path)
		switch {
		case file.Skipped:
			if f.opts.ShowSkipped {
				fmt.Fprint(f.opts.ErrorWriter, f.errStyle.FormatFileSkipped(path, file.Error))
			}
			continue
		case file.Error != nil:
			fmt.Fprint(f.opts.ErrorWriter, f.errStyle.FormatFileError(path, file.Error))
			continue
		case file.Document == nil:
			continue
		}

		if headers {
			if written > 0 {
				fmt.Fprintln(bw)
			}
			fmt.Fprintln(bw, f.styles.FormatFileHeader(path, file.Lexer.Name()))
		}
		if err := f.renderer.RenderFile(ctx, bw, file); err != nil {
			return written, fmt.Errorf("render %s: %w", path, err)
		}
		written++
	}

	if f.opts.ShowSummary {
		writeSummary(f.opts.ErrorWriter, f.errStyle, result.Stats, f.opts.Verbose)
	}
	return written, nil
}

func styledCount(result *runner.Result) int {
	var n int
	for _, file := range result.Files {
		if file.Document != nil && file.Error == nil {
			n++
		}
	}
	return n
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	if opts.Color == "" {
		opts.Color = defaults.Color
	}

	format := opts.Format
	if format == "" {
		format = config.FormatANSI
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if format == config.FormatJSON {
		return NewJSONReporter(opts), nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	renderer, err := newRenderer(format, styles, opts)
	if err != nil {
		return nil, err
	}
	return &reporterFacade{
		renderer: renderer,
		opts:     opts,
		styles:   styles,
		errStyle: errorStyles(opts),
	}, nil
}

// errorStyles picks colours for the error stream on its own terminal check.
func errorStyles(opts Options) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter))
}
