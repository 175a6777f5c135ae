package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// maxListedExtensions keeps wide extension lists from stretching the table.
const maxListedExtensions = 6

// FormatLexerTable renders registered lexers as a table of name,
// extensions and style count.
func (s *Styles) FormatLexerTable(lexers []lexer.Lexer) string {
	rows := make([][]string, 0, len(lexers))
	for _, lex := range lexers {
		rows = append(rows, []string{
			lex.Name(),
			formatExtensions(lex.Extensions()),
			strconv.Itoa(len(lex.StyleNames())),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		Headers("LEXER", "EXTENSIONS", "STYLES").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		})

	return t.Render() + "\n"
}

// FormatStyleTable renders the styles of one lexer, each name painted with
// its palette entry.
func (s *Styles) FormatStyleTable(lex lexer.Lexer, palette *Palette) string {
	names := lex.StyleNames()
	rows := make([][]string, 0, len(names))
	for idx, name := range names {
		rows = append(rows, []string{strconv.Itoa(idx), name})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("#", "STYLE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.TableHeader
			case col == 1:
				return palette.Style(lexer.Style(row)).Padding(0, 1)
			default:
				return s.TableCell
			}
		})

	return t.Render() + "\n"
}

func formatExtensions(exts []string) string {
	if len(exts) == 0 {
		return "-"
	}
	if len(exts) > maxListedExtensions {
		return strings.Join(exts[:maxListedExtensions], " ") + " ..."
	}
	return strings.Join(exts, " ")
}
