package configloader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "theme.markdown.header1").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown lexers in a theme).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// minMaxLineLength leaves room for the four-byte prefix and a colon.
const minMaxLineLength = 6

// colourPattern matches lipgloss colour strings: an ANSI index or a hex triplet.
var colourPattern = regexp.MustCompile(`^(?:[0-9]{1,3}|#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6})$`)

// yamlLinePattern extracts the line number from yaml.v3 error messages.
var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// Validate checks a configuration for errors and warnings. Lexer names are
// resolved against registry.
func Validate(cfg *config.Config, registry *lexer.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = lexer.DefaultRegistry
	}

	if cfg.Lexer != "" {
		if _, ok := registry.Get(cfg.Lexer); !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "lexer",
				Value:   cfg.Lexer,
				Message: fmt.Sprintf("unknown lexer %q; run 'lexstyle lexers' to list them", cfg.Lexer),
			})
		}
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: ansi, runs, json, folds", cfg.Format),
		})
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	switch {
	case cfg.MaxLineLength < 0:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_line_length",
			Value:   cfg.MaxLineLength,
			Message: "max_line_length must be >= 0 (0 means the default)",
		})
	case cfg.MaxLineLength > 0 && cfg.MaxLineLength < minMaxLineLength:
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "max_line_length",
			Value:   cfg.MaxLineLength,
			Message: fmt.Sprintf("max_line_length %d is too short to find any line number", cfg.MaxLineLength),
		})
	}

	validateExtensions(cfg, registry, result)
	validateProperties(cfg, result)
	validateTheme(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateExtensions(cfg *config.Config, registry *lexer.Registry, result *ValidationResult) {
	for ext, name := range cfg.Extensions {
		field := "extensions." + ext
		if !strings.HasPrefix(ext, ".") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   ext,
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
		if _, ok := registry.Get(name); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("unknown lexer %q; the mapping will be ignored", name),
			})
		}
	}
}

func validateProperties(cfg *config.Config, result *ValidationResult) {
	value, ok := cfg.Properties[lexer.PropFoldCompact]
	if !ok {
		return
	}
	if _, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "false", "yes", "no", "on", "off":
		return
	}
	result.Warnings = append(result.Warnings, ValidationError{
		Field:   "properties." + lexer.PropFoldCompact,
		Value:   value,
		Message: fmt.Sprintf("%q is not a number or boolean; the default is used", value),
	})
}

func validateTheme(cfg *config.Config, registry *lexer.Registry, result *ValidationResult) {
	for lexerName, styles := range cfg.Theme {
		lex, ok := registry.Get(lexerName)
		if !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "theme." + lexerName,
				Value:   lexerName,
				Message: fmt.Sprintf("unknown lexer %q; its theme will be ignored", lexerName),
			})
		}

		for styleName, spec := range styles {
			field := "theme." + lexerName + "." + styleName
			if ok {
				if _, known := lexer.ParseStyle(lex, styleName); !known {
					result.Warnings = append(result.Warnings, ValidationError{
						Field:   field,
						Value:   styleName,
						Message: fmt.Sprintf("lexer %q has no style %q", lexerName, styleName),
					})
				}
			}
			for _, colour := range []string{spec.Foreground, spec.Background} {
				if colour != "" && !colourPattern.MatchString(colour) {
					result.Errors = append(result.Errors, ValidationError{
						Field:   field,
						Value:   colour,
						Message: fmt.Sprintf("invalid colour %q; use an ANSI number or #rgb/#rrggbb", colour),
					})
				}
			}
		}
	}
}

// validateIgnorePatterns compiles ignore patterns with the runner's glob rules.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if err := runner.ValidatePattern(pattern); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: err.Error(),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string, registry *lexer.Registry) *ValidationResult {
	result := Validate(cfg, registry)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// parseErrorLine returns the line number a YAML error message names, or 0.
func parseErrorLine(msg string) int {
	match := yamlLinePattern.FindStringSubmatch(msg)
	if match == nil {
		return 0
	}
	line, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return line
}
