package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for output formats lexstyle does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every output format in display order.
func Formats() []OutputFormat {
	return []OutputFormat{FormatANSI, FormatRuns, FormatJSON, FormatFolds}
}

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatANSI, FormatRuns, FormatJSON, FormatFolds:
		return true
	default:
		return false
	}
}

// ParseFormat parses an output format name case-insensitively.
// "text" is accepted as an alias for ansi.
func ParseFormat(name string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if format == "text" {
		return FormatANSI, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return format, nil
}

// IsValid returns true if the colour mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}
