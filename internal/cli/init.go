package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/lexstyle/internal/logging"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/fsutil"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force    bool
	full     bool
	resolved bool
	format   string
	output   string
}

// isInteractive reports whether in is a terminal the overwrite prompt can
// be shown on.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new lexstyle configuration file",
		Long: `Create a new .lexstyle.yml configuration file in the current directory
with sensible defaults. The file can be customized to force a lexer, map
extensions, set lexer properties and override style colours.`,
		Example: `  lexstyle init                        # Create a minimal .lexstyle.yml
  lexstyle init --full                 # Document every lexer and style
  lexstyle init --format json          # Create lexstyle.json instead
  lexstyle init --output custom.yml    # Write to a custom file path
  lexstyle init --resolved -o all.yml  # Snapshot the merged configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all lexers and styles documented")
	cmd.Flags().BoolVar(&flags.resolved, "resolved", false,
		"Write the merged configuration from every source instead of a template")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .lexstyle.yml or lexstyle.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	// Validate format
	if flags.format != "yaml" && flags.format != formatJSON {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}
	if flags.resolved && (flags.full || flags.format == formatJSON) {
		return usageError(errors.New("--resolved writes YAML and cannot be combined with --full or --format json"))
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == formatJSON {
			outputPath = "lexstyle.json"
		} else {
			outputPath = ".lexstyle.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !isInteractive(cmd.InOrStdin()) {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		overwrite, err := promptOverwrite(cmd.InOrStdin(), cmd.ErrOrStderr(), outputPath)
		if err != nil {
			return err
		}
		if !overwrite {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := initContent(cmd, flags)
	if err != nil {
		return err
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template documents every lexer and its styles")
	}
	if flags.format == formatJSON {
		logger.Info("JSON configuration is not discovered; pass it with --config", logging.FieldConfig, outputPath)
	}

	logger.Info("run 'lexstyle lexers' to see all available lexers")

	return nil
}

// initContent renders either the starter template or, with --resolved, the
// configuration currently in effect.
func initContent(cmd *cobra.Command, flags *initFlags) ([]byte, error) {
	if !flags.resolved {
		content, err := config.GenerateTemplate(config.TemplateOptions{
			Full:   flags.full,
			Format: flags.format,
			Lexers: lexerInfos(lexer.DefaultRegistry),
		})
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return content, nil
	}

	loaded, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return nil, err
	}
	header := config.DefaultTemplateHeader()
	for _, source := range loaded.sources {
		header += "\n# Merged from: " + source
	}
	content, err := loaded.ToYAMLWithHeader(header)
	if err != nil {
		return nil, fmt.Errorf("render configuration: %w", err)
	}
	return content, nil
}

// promptOverwrite asks whether an existing file may be replaced.
func promptOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// lexerInfos describes the registered lexers for the configuration template.
func lexerInfos(reg *lexer.Registry) []config.LexerInfo {
	lexers := reg.Lexers()
	infos := make([]config.LexerInfo, 0, len(lexers))
	for _, lex := range lexers {
		infos = append(infos, config.LexerInfo{
			Name:       lex.Name(),
			Extensions: lex.Extensions(),
			Styles:     lex.StyleNames(),
		})
	}
	return infos
}
