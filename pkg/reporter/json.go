package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/runner"
)

// jsonVersion identifies the output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path    string      `json:"path"`
	Lexer   string      `json:"lexer,omitempty"`
	Styles  []string    `json:"styles,omitempty"`
	Runs    []JSONRun   `json:"runs,omitempty"`
	Levels  []JSONLevel `json:"levels,omitempty"`
	Skipped bool        `json:"skipped,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSONRun is one maximal run of a style. End is exclusive.
type JSONRun struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Style int    `json:"style"`
	Name  string `json:"name"`
}

// JSONLevel is the fold level of one line.
type JSONLevel struct {
	Line   int  `json:"line"`
	Raw    uint `json:"raw"`
	Depth  int  `json:"depth"`
	Header bool `json:"header,omitempty"`
	White  bool `json:"white,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesStyled     int            `json:"filesStyled"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	Lines           int            `json:"lines"`
	Runs            int            `json:"runs"`
	ByLexer         map[string]int `json:"byLexer"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesStyled, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByLexer: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, r.buildFile(file))
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesStyled = stats.FilesProcessed
	output.Summary.FilesSkipped = stats.FilesSkipped
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.Lines = stats.Lines
	output.Summary.Runs = stats.Runs
	for name, count := range stats.ByLexer {
		output.Summary.ByLexer[name] = count
	}

	return output
}

func (r *JSONReporter) buildFile(file runner.FileOutcome) JSONFileResult {
	fileResult := JSONFileResult{
		Path:    r.opts.displayPath(file.Path),
		Skipped: file.Skipped,
	}
	if file.Error != nil {
		fileResult.Error = file.Error.Error()
		return fileResult
	}
	if file.Document == nil {
		return fileResult
	}

	fileResult.Lexer = file.Lexer.Name()
	fileResult.Styles = file.Lexer.StyleNames()

	runs := file.Runs()
	fileResult.Runs = make([]JSONRun, 0, len(runs))
	for _, run := range runs {
		fileResult.Runs = append(fileResult.Runs, JSONRun{
			Start: run.Start,
			End:   run.End,
			Style: int(run.Style),
			Name:  lexer.StyleName(file.Lexer, run.Style),
		})
	}

	levels := file.Document.Levels()
	fileResult.Levels = make([]JSONLevel, 0, len(levels))
	for line, level := range levels {
		fileResult.Levels = append(fileResult.Levels, JSONLevel{
			Line:   line,
			Raw:    uint(level),
			Depth:  level.Number() - int(lexer.LevelBase),
			Header: level.IsHeader(),
			White:  level.IsWhite(),
		})
	}
	return fileResult
}
