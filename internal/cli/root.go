// Package cli provides the Cobra command structure for lexstyle.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexstyle/internal/configloader"
	"github.com/yaklabco/lexstyle/internal/logging"
	"github.com/yaklabco/lexstyle/pkg/config"

	// Register built-in lexers.
	_ "github.com/yaklabco/lexstyle/pkg/lexer/chromalex"
	_ "github.com/yaklabco/lexstyle/pkg/lexer/markdown"
	_ "github.com/yaklabco/lexstyle/pkg/lexer/searchresult"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const rootLong = `lexstyle is an incremental, stateful lexer engine written in Go.

It classifies every character of a document into a style and computes
per-line fold levels. Lexers cover Markdown, search results with injected
match highlights, and the languages known to chroma. Edited documents are
re-lexed from the first invalidated line only.`

// environmentHelp lists the LEXSTYLE_* overrides below the long description.
func environmentHelp() string {
	vars := configloader.ListEnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var b strings.Builder
	b.WriteString("\n\nEnvironment:")
	for _, v := range vars {
		fmt.Fprintf(&b, "\n  %-*s  %s", width, v.Name, v.Description)
	}
	return b.String()
}

// NewRootCommand creates the root lexstyle command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "lexstyle",
		Short: "An incremental lexer for styling and folding text",
		Long:  rootLong + environmentHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.With(commandContext(cmd), logging.FieldCommand, cmd.Name()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newStyleCommand())
	rootCmd.AddCommand(newFoldCommand())
	rootCmd.AddCommand(newLexersCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
