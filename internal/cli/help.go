package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/document"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// exampleLexer colours the Examples section of help output.
const exampleLexer = "bash"

// flagGap separates the widest flag column from the descriptions.
const flagGap = 3

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles on the renderer of base, so help
// follows the same colour decision as the rest of the output.
func NewHelpStyles(base *pretty.Styles) *HelpStyles {
	r := base.Renderer()
	if !base.ColorEnabled() {
		plain := r.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Description: plain,
			Dim:         plain,
		}
	}
	return &HelpStyles{
		Command:     r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        r.NewStyle().Foreground(lipgloss.Color("12")),
		Description: r.NewStyle(),
		Dim:         base.Dim,
	}
}

// HelpFormatter renders cobra help and usage with lipgloss styles. Command
// examples are run through the shell lexer like any other document.
type HelpFormatter struct {
	styles  *HelpStyles
	example *pretty.Palette
	shell   lexer.Lexer

	usage *template.Template
	help  *template.Template
}

// NewHelpFormatter creates a help formatter for output written to writer.
func NewHelpFormatter(colorMode config.ColorMode, writer io.Writer) *HelpFormatter {
	base := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	h := &HelpFormatter{styles: NewHelpStyles(base)}

	if base.ColorEnabled() {
		if lex, ok := lexer.DefaultRegistry.Get(exampleLexer); ok {
			h.shell = lex
			h.example = pretty.NewPalette(base, lex, nil)
		}
	}

	funcs := template.FuncMap{
		"styleCommand":     h.styles.Command.Render,
		"styleHeading":     h.styles.Heading.Render,
		"styleSubcommand":  h.styles.Subcommand.Render,
		"styleDescription": h.styles.Description.Render,
		"styleDim":         h.styles.Dim.Render,
		"styleExample":     h.renderExample,
		"flagUsages":       h.flagUsages,
		"rpad":             rpad,
		"join":             strings.Join,
		"trimRight":        trimTrailingWhitespaces,
	}
	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpHeaderTemplate + usageTemplate))
	return h
}

const helpHeaderTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}`

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ flagUsages .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// renderExample lexes an example block as shell and paints the runs.
func (h *HelpFormatter) renderExample(example string) string {
	if h.shell == nil {
		return example
	}
	doc := document.FromString(example)
	doc.Colourise(h.shell, -1)
	return h.example.Render(doc.Text(), doc.Runs(0, doc.Len()))
}

type flagRow struct {
	width  int
	styled string
	usage  string
}

// flagUsages lists the visible flags of set, aligning descriptions on the
// widest "-s, --name type" column.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	var rows []flagRow
	widest := 0
	set.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		row := h.flagRow(f)
		widest = max(widest, row.width)
		rows = append(rows, row)
	})

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(row.styled)
		b.WriteString(strings.Repeat(" ", widest-row.width+flagGap))
		b.WriteString(h.styles.Description.Render(row.usage))
	}
	return b.String()
}

func (h *HelpFormatter) flagRow(f *pflag.Flag) flagRow {
	name := "--" + f.Name
	plain := "    " + name
	styled := "    " + h.styles.Flag.Render(name)
	if f.Shorthand != "" {
		short := "-" + f.Shorthand
		plain = short + ", " + name
		styled = h.styles.Flag.Render(short) + ", " + h.styles.Flag.Render(name)
	}

	varname, usage := pflag.UnquoteUsage(f)
	if varname != "" {
		plain += " " + varname
		styled += " " + h.styles.Dim.Render(varname)
	}
	if def := flagDefault(f); def != "" {
		usage += " " + h.styles.Dim.Render("(default "+def+")")
	}
	return flagRow{width: len(plain), styled: styled, usage: usage}
}

// flagDefault returns the default worth printing, or "" for zero values.
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]", "0s":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// applyHelp installs styled help and usage on cmd; subcommands inherit
// both. The colour decision waits until help is printed, when --color has
// been parsed and the destination writer is known.
func applyHelp(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		out := command.OutOrStderr()
		if err := helpFormatterFor(command, out).usage.Execute(out, command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		out := command.OutOrStdout()
		if err := helpFormatterFor(command, out).help.Execute(out, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func helpFormatterFor(cmd *cobra.Command, out io.Writer) *HelpFormatter {
	mode, err := colorFlag(cmd)
	if err != nil {
		mode = config.ColorAuto
	}
	return NewHelpFormatter(mode, out)
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
