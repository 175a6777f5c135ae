package pretty

import (
	"fmt"
	"strings"
)

// FormatFileHeader formats the banner printed above a file's styled output.
func (s *Styles) FormatFileHeader(path, lexerName string) string {
	header := s.FilePath.Render(path)
	if lexerName != "" {
		header += s.Dim.Render(" (" + lexerName + ")")
	}
	return header
}

// FormatFileError formats a file that could not be styled.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Error.Render("error"),
		s.Message.Render(err.Error()),
	)
}

// FormatFileSkipped formats a file that no lexer applied to.
func (s *Styles) FormatFileSkipped(path string, reason error) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Warning.Render("skipped"),
		s.Dim.Render(reason.Error()),
	)
}

// FormatWarnings formats configuration warnings, one per line.
func (s *Styles) FormatWarnings(warnings []string) string {
	var builder strings.Builder
	for _, w := range warnings {
		builder.WriteString(s.Warning.Render("warning") + " " + s.Message.Render(w) + "\n")
	}
	return builder.String()
}

// FormatLocation formats a path:line reference, line being zero-based.
func (s *Styles) FormatLocation(path string, line int) string {
	return s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d", line+1))
}
