package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/lexer"
)

// envVarPrefix is the prefix for all lexstyle environment variables.
const envVarPrefix = "LEXSTYLE_"

// envBinding ties one LEXSTYLE_* variable to the config field it sets.
type envBinding struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, raw string) error
}

// envBindings is ordered by suffix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = []envBinding{
	{
		suffix:      "FOLD_COMPACT",
		field:       "properties.fold.compact",
		description: "Mark blank lines as white in fold levels: true or false",
		apply: func(cfg *config.Config, raw string) error {
			on, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("want true/false/1/0, got %q", raw)
			}
			if cfg.Properties == nil {
				cfg.Properties = make(map[string]string)
			}
			cfg.Properties[lexer.PropFoldCompact] = "0"
			if on {
				cfg.Properties[lexer.PropFoldCompact] = "1"
			}
			return nil
		},
	},
	{
		suffix:      "FORMAT",
		field:       "format",
		description: "Output format: ansi, runs, json, or folds",
		apply: func(cfg *config.Config, raw string) error {
			cfg.Format = config.OutputFormat(raw)
			return nil
		},
	},
	{
		suffix:      "IGNORE",
		field:       "ignore",
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, raw string) error {
			cfg.Ignore = splitList(raw)
			return nil
		},
	},
	{
		suffix:      "JOBS",
		field:       "jobs",
		description: "Number of parallel workers (0 = auto)",
		apply:       intSetter(func(cfg *config.Config, n int) { cfg.Jobs = n }),
	},
	{
		suffix:      "LEXER",
		field:       "lexer",
		description: "Force a lexer by name or alias",
		apply: func(cfg *config.Config, raw string) error {
			cfg.Lexer = raw
			return nil
		},
	},
	{
		suffix:      "MAX_LINE_LENGTH",
		field:       "max_line_length",
		description: "Longest search-result line scanned for a colon",
		apply:       intSetter(func(cfg *config.Config, n int) { cfg.MaxLineLength = n }),
	},
}

func intSetter(set func(cfg *config.Config, n int)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("want an integer, got %q", raw)
		}
		set(cfg, n)
		return nil
	}
}

// LoadFromEnv applies LEXSTYLE_* overrides to cfg. Unset and empty
// variables leave the field alone.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, b := range envBindings {
		name := envVarPrefix + b.suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := b.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnvVarName returns the variable that sets field, or "" if none does.
func GetEnvVarName(field string) string {
	i := slices.IndexFunc(envBindings, func(b envBinding) bool { return b.field == field })
	if i < 0 {
		return ""
	}
	return envVarPrefix + envBindings[i].suffix
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns every supported environment variable sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, len(envBindings))
	for i, b := range envBindings {
		vars[i] = EnvVar{Name: envVarPrefix + b.suffix, Description: b.description}
	}
	return vars
}
