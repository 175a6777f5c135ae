package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lexstyle/internal/logging"
	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

type lexersFlags struct {
	format string
	styles string
}

const formatJSON = "json"

// lexerInfo represents a lexer in JSON output.
type lexerInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Styles     []string `json:"styles"`
}

func newLexersCommand() *cobra.Command {
	flags := &lexersFlags{}

	cmd := &cobra.Command{
		Use:   "lexers",
		Short: "List available lexers",
		Long: `List all registered lexers with their file extensions and the
number of styles they emit. Pass --styles with a lexer name to show its
styles in the configured colours.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.format != "text" && flags.format != formatJSON {
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			lexers := lexer.DefaultRegistry.Lexers()
			if flags.styles != "" {
				lex, err := lexer.DefaultRegistry.MustGet(flags.styles)
				if err != nil {
					return usageError(err)
				}
				lexers = []lexer.Lexer{lex}
			}

			if flags.format == formatJSON {
				return outputLexersJSON(cmd.OutOrStdout(), lexers)
			}

			colorMode, err := colorFlag(cmd)
			if err != nil {
				return err
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

			if flags.styles != "" {
				cfg, err := loadConfig(cmd, &config.Config{})
				if err != nil {
					return err
				}
				lex := lexers[0]
				logging.Default().Debug("listing styles",
					logging.FieldName, lex.Name(),
					logging.FieldStyles, len(lex.StyleNames()),
				)
				palette := pretty.NewPalette(styles, lex, cfg.Theme)
				fmt.Fprint(cmd.OutOrStdout(), styles.FormatStyleTable(lex, palette))
				return nil
			}

			if len(lexers) == 0 {
				logging.NewInteractive().Info("no lexers registered")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), styles.FormatLexerTable(lexers))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flags.styles, "styles", "", "show the styles of one lexer")

	return cmd
}

// outputLexersJSON writes lexers as JSON.
func outputLexersJSON(w io.Writer, lexers []lexer.Lexer) error {
	infos := make([]lexerInfo, 0, len(lexers))
	for _, lex := range lexers {
		exts := lex.Extensions()
		if exts == nil {
			exts = []string{}
		}
		infos = append(infos, lexerInfo{
			Name:       lex.Name(),
			Extensions: exts,
			Styles:     lex.StyleNames(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(infos); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
