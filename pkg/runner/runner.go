package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lexstyle/internal/logging"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/document"
	"github.com/yaklabco/lexstyle/pkg/fsutil"
	"github.com/yaklabco/lexstyle/pkg/langdetect"
	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/lexer/searchresult"
	"github.com/yaklabco/lexstyle/pkg/markings"
)

// Runner styles files with lexers picked by a detector.
type Runner struct {
	// Detector picks the lexer for each file.
	Detector *langdetect.Detector

	// Properties are copied into every document.
	Properties lexer.Properties

	// Logger receives per-file debug output. Nil means the logger carried
	// by the context, or the default logger.
	Logger *log.Logger
}

// New creates a runner.
func New(detector *langdetect.Detector, props lexer.Properties) *Runner {
	return &Runner{Detector: detector, Properties: props}
}

// NewFromConfig creates a runner whose detector and document properties
// follow cfg. Search results get marks as their markings.
func NewFromConfig(cfg *config.Config, marks markings.Lookup) *Runner {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	detector := &langdetect.Detector{
		Forced:     cfg.Lexer,
		Extensions: cfg.Extensions,
		Search: searchresult.Options{
			Markings:      marks,
			MaxLineLength: cfg.MaxLineLength,
		},
	}
	return New(detector, cfg.LexerProperties())
}

func (r *Runner) logger(ctx context.Context) *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.FromContext(ctx)
}

// Run discovers files under opts.Paths and styles them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Styles files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles styles the given files without discovery.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	start := time.Now()
	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	// Determine job count.
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}
	maxSize := opts.effectiveMaxFileSize()

	r.logger(ctx).Debug("styling files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, maxSize)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path and rebuild in input order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker styles files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	maxSize int64,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processFile(ctx, path, maxSize)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) processFile(ctx context.Context, path string, maxSize int64) FileOutcome {
	content, _, err := fsutil.ReadFileMax(ctx, path, maxSize)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	return r.Style(ctx, path, content)
}

// Style lexes and folds content as the file at path. The path only
// guides lexer detection; nothing is read from disk.
func (r *Runner) Style(ctx context.Context, path string, content []byte) FileOutcome {
	outcome := FileOutcome{Path: path}
	logger := r.logger(ctx)

	detector := r.Detector
	if detector == nil {
		detector = &langdetect.Detector{}
	}
	lex, err := detector.Detect(path, content)
	if err != nil {
		outcome.Error = err
		outcome.Skipped = isSkip(err)
		logger.Debug("no lexer", logging.FieldPath, path, logging.FieldError, err)
		return outcome
	}

	start := time.Now()
	doc := document.New(content, r.Properties)
	doc.Colourise(lex, -1)

	outcome.Lexer = lex
	outcome.Document = doc
	outcome.Duration = time.Since(start)

	logger.Debug("styled file",
		logging.FieldPath, path,
		logging.FieldLexer, lex.Name(),
		logging.FieldLines, doc.LineCount(),
		logging.FieldDuration, outcome.Duration,
	)
	return outcome
}
