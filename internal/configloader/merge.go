package configloader

import (
	"maps"

	"github.com/yaklabco/lexstyle/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Lexer != "" {
		result.Lexer = override.Lexer
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxLineLength != 0 {
		result.MaxLineLength = override.MaxLineLength
	}
	if override.Markings != "" {
		result.Markings = override.Markings
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	result.Extensions = mergeStrings(base.Extensions, override.Extensions)
	result.Properties = mergeStrings(base.Properties, override.Properties)
	result.Theme = mergeTheme(base.Theme, override.Theme)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeStrings returns a new map holding base overlaid with override.
func mergeStrings(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// mergeTheme deep merges themes per lexer. A style set in override replaces
// the whole spec for that style.
func mergeTheme(base, override config.Theme) config.Theme {
	if base == nil && override == nil {
		return nil
	}
	result := base.Clone()
	if result == nil {
		result = make(config.Theme, len(override))
	}
	for lexerName, styles := range override {
		merged, ok := result[lexerName]
		if !ok {
			merged = make(map[string]config.StyleSpec, len(styles))
			result[lexerName] = merged
		}
		maps.Copy(merged, styles)
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
