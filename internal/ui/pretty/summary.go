package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/lexstyle/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files styled (2 markdown, 1 go), 1 skipped, 1 failed in 12ms".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to style") + "\n"
	}

	var parts []string

	styled := fmt.Sprintf("%d %s styled", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))
	if breakdown := lexerBreakdown(stats.ByLexer); breakdown != "" {
		styled += " (" + breakdown + ")"
	}
	parts = append(parts, s.Success.Render(styled))

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	line := strings.Join(parts, ", ")
	if stats.Duration > 0 {
		line += s.Dim.Render(" in " + stats.Duration.Round(time.Millisecond).String())
	}
	return line + "\n"
}

// lexerBreakdown lists file counts per lexer, most used first.
func lexerBreakdown(byLexer map[string]int) string {
	names := slices.Collect(maps.Keys(byLexer))
	slices.SortFunc(names, func(a, b string) int {
		if byLexer[a] != byLexer[b] {
			return byLexer[b] - byLexer[a]
		}
		return strings.Compare(a, b)
	})
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%d %s", byLexer[name], name))
	}
	return strings.Join(parts, ", ")
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	row("Files styled", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Lines", s.SummaryValue.Render(strconv.Itoa(stats.Lines)))
	row("Runs", s.SummaryValue.Render(strconv.Itoa(stats.Runs)))
	if breakdown := lexerBreakdown(stats.ByLexer); breakdown != "" {
		row("Lexers", s.SummaryValue.Render(breakdown))
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Some files could not be styled"))
	} else {
		builder.WriteString(s.Success.Render("All files styled"))
	}
	builder.WriteString("\n")

	return builder.String()
}
