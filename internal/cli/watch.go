package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexstyle/internal/logging"
	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/fsutil"
	"github.com/yaklabco/lexstyle/pkg/runner"
	"github.com/yaklabco/lexstyle/pkg/watch"
)

type watchFlags struct {
	lexer    string
	markings string
	debounce time.Duration
	print    bool
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-lex a file whenever it changes",
		Long: `Keep a file styled while it is being edited.

Each change is diffed against the previous contents and applied as edits,
so only the invalidated region is lexed again. Every update reports the
window that was lexed and the lines whose styles may have changed.`,
		Example: `  lexstyle watch notes.md
  lexstyle watch --print --markings hits.yml hits.txt`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError(fmt.Errorf("watch requires exactly one file, got %d", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.lexer, "lexer", "l", "", "lexer name or alias (default: detect)")
	cmd.Flags().StringVar(&flags.markings, "markings", "", "markings file for search results")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce, "quiet period before re-lexing")
	cmd.Flags().BoolVarP(&flags.print, "print", "p", false, "print the changed lines after each update")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, flags *watchFlags) error {
	logger := logging.NewInteractive()

	cfg, err := loadConfig(cmd, &config.Config{Lexer: flags.lexer, Markings: flags.markings})
	if err != nil {
		return err
	}
	marks, err := cfg.loadMarkings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	lex, err := runner.NewFromConfig(cfg.Config, marks).Detector.Detect(path, content)
	if err != nil {
		return usageError(fmt.Errorf("%s: %w", path, err))
	}

	sess := watch.NewSession(lex, content, cfg.LexerProperties())
	logger.Info("watching",
		logging.FieldPath, path,
		logging.FieldLexer, lex.Name(),
		logging.FieldLines, sess.Document().LineCount(),
	)

	watcher, err := watch.New(watch.Config{Path: path, Debounce: flags.debounce, Logger: logger})
	if err != nil {
		return err
	}
	changes, err := watcher.Start()
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := watcher.Stop(); stopErr != nil {
			logger.Warn("stop watcher", logging.FieldError, stopErr)
		}
	}()

	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, cmd.OutOrStdout()))
	palette := pretty.NewPalette(styles, lex, cfg.Theme)

	return watch.Follow(ctx, path, sess, changes, func(update watch.Update) error {
		if !update.Changed() {
			logger.Debug("no change", logging.FieldPath, path)
			return nil
		}
		logger.Info("re-lexed",
			logging.FieldStart, update.Window.Start,
			logging.FieldLength, update.Window.Length,
			logging.FieldFirstLine, update.FirstLine+1,
			logging.FieldLastLine, update.LastLine+1,
			logging.FieldEdits, update.Edits,
			logging.FieldRuns, len(update.Runs),
		)
		if flags.print {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.FormatLocation(path, update.FirstLine))
			fmt.Fprint(out, palette.Render(sess.Document().Text(), update.Runs))
		}
		return nil
	})
}
