package runner

import (
	"errors"
	"time"

	"github.com/yaklabco/lexstyle/pkg/document"
	"github.com/yaklabco/lexstyle/pkg/langdetect"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// FileOutcome is the result of styling one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Lexer styled the file. Nil if the file was skipped or failed.
	Lexer lexer.Lexer

	// Document holds the text with its styles and fold levels.
	Document *document.Document

	// Duration is the time spent lexing and folding.
	Duration time.Duration

	// Skipped is set when no lexer applies (binary content or an unknown
	// language). Error then says why.
	Skipped bool

	// Error is set if the file could not be processed.
	Error error
}

// Runs returns the styled runs of the whole file.
func (o FileOutcome) Runs() []lexer.Run {
	if o.Document == nil {
		return nil
	}
	return o.Document.Runs(0, o.Document.Len())
}

// isSkip reports whether err means the file has nothing to style.
func isSkip(err error) bool {
	return errors.Is(err, langdetect.ErrNoLexer) || errors.Is(err, langdetect.ErrBinary)
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files styled.
	FilesProcessed int

	// FilesSkipped is the number of files no lexer applied to.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// Bytes is the total size of the styled files.
	Bytes int

	// Lines is the total line count of the styled files.
	Lines int

	// Runs is the total number of styled runs.
	Runs int

	// ByLexer counts styled files per lexer name.
	ByLexer map[string]int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the file errors joined, or nil.
func (r *Result) Errors() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil && !f.Skipped {
			errs = append(errs, f.Error)
		}
	}
	return errors.Join(errs...)
}

// ResultOf builds a result from outcomes produced outside a run, such as
// content read from stdin.
func ResultOf(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
		result.Stats.Duration += outcome.Duration
	}
	return result
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ByLexer: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Document == nil:
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Bytes += outcome.Document.Len()
	r.Stats.Lines += outcome.Document.LineCount()
	r.Stats.Runs += len(outcome.Runs())
	r.Stats.ByLexer[outcome.Lexer.Name()]++
}
