package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexstyle/internal/logging"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/fsutil"
	"github.com/yaklabco/lexstyle/pkg/reporter"
	"github.com/yaklabco/lexstyle/pkg/runner"
)

// stdinPath is the path argument that reads the document from stdin.
const stdinPath = "-"

type styleFlags struct {
	lexer     string
	format    string
	markings  string
	output    string
	stdinName string
	jobs      int
	ignore    []string
	headers   bool
	compact   bool
	summary   bool
	verbose   bool
}

func newStyleCommand() *cobra.Command {
	flags := &styleFlags{}

	cmd := &cobra.Command{
		Use:   "style [paths...]",
		Short: "Lex files and print their styles",
		Long:    styleLongDescription,
		Example: styleExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := config.ParseFormat(flags.format)
			if err != nil {
				return usageError(err)
			}
			if !cmd.Flags().Changed("format") {
				format = ""
			}
			return runStyle(cmd, args, flags, format)
		},
	}

	addStyleFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatANSI),
		"output format: ansi, runs, json, folds")

	return cmd
}

const styleLongDescription = `Lex files and print them with their styles.

By default, styles every file under the current directory that a lexer
claims by extension. Files without a registered extension are sniffed:
search results are recognised by their headers, other languages by
go-enry's classifiers. Use "-" to read a single document from stdin.`

const styleExamples = `  lexstyle style                              # Style the current directory
  lexstyle style README.md                    # Colour one file
  lexstyle style --format runs notes.md       # List every run
  lexstyle style --markings hits.yml hits.txt # Highlight search matches
  cat doc.md | lexstyle style --lexer md -    # Style stdin
  lexstyle style --format json -o out.json .  # Write JSON to a file`

func newFoldCommand() *cobra.Command {
	flags := &styleFlags{}

	cmd := &cobra.Command{
		Use:   "fold [paths...]",
		Short: "Print the fold level of every line",
		Long: `Lex files and print the fold level of every line.

Levels are shown relative to the base level, followed by "header" for lines
that open a fold and "white" for lines with no visible characters.`,
		Example: `  lexstyle fold --markings hits.yml results.txt
  lexstyle fold --format json results.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch flags.format {
			case "text", string(config.FormatFolds):
				return runStyle(cmd, args, flags, config.FormatFolds)
			case string(config.FormatJSON):
				return runStyle(cmd, args, flags, config.FormatJSON)
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}
		},
	}

	addStyleFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func addStyleFlags(cmd *cobra.Command, flags *styleFlags) {
	cmd.Flags().StringVarP(&flags.lexer, "lexer", "l", "", "lexer name or alias for every file (default: detect)")
	cmd.Flags().StringVar(&flags.markings, "markings", "", "markings file for search results")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().StringVar(&flags.stdinName, "stdin-filename", "",
		"file name used to detect the lexer of stdin")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.headers, "headers", false, "print a banner above each file")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print statistics after the output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list skipped files and expand the summary")
}

func runStyle(cmd *cobra.Command, args []string, flags *styleFlags, format config.OutputFormat) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		Lexer:    flags.lexer,
		Format:   format,
		Jobs:     flags.jobs,
		Ignore:   flags.ignore,
		Markings: flags.markings,
		Output:   flags.output,
	}
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	marks, err := cfg.loadMarkings()
	if err != nil {
		return err
	}

	styler := runner.NewFromConfig(cfg.Config, marks)

	var result *runner.Result
	if len(args) == 1 && args[0] == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		name := flags.stdinName
		if name == "" {
			name = stdinPath
		}
		result = runner.ResultOf(styler.Style(ctx, name, content))
	} else {
		opts := runner.OptionsFromConfig(cfg.Config, args)
		opts.WorkingDir = cfg.workDir

		logger.Debug("starting run",
			logging.FieldPaths, opts.Paths,
			logging.FieldWorkingDir, opts.WorkingDir,
			logging.FieldJobs, opts.Jobs,
		)

		result, err = styler.Run(ctx, opts)
		if err != nil {
			return fmt.Errorf("style run failed: %w", err)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, result.Stats.Duration,
	)

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if cfg.Output != "" {
		out = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       cfg.Color,
		Theme:       cfg.Theme,
		ShowHeaders: flags.headers,
		ShowSkipped: flags.verbose,
		ShowSummary: flags.summary || flags.verbose,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  cfg.workDir,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Output != "" {
		written, err := fsutil.WriteAtomicIfChanged(ctx, cfg.Output, buf.Bytes(), fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Debug("output", logging.FieldOutput, cfg.Output, logging.FieldWritten, written)
	}

	if result.HasErrors() {
		return &ExitError{Code: ExitIOError, Err: errors.Join(ErrFilesFailed, result.Errors())}
	}
	return nil
}
