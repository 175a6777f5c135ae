package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexstyle/pkg/config"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"ansi", "ansi", config.FormatANSI, false},
		{"text alias", "text", config.FormatANSI, false},
		{"case insensitive", "JSON", config.FormatJSON, false},
		{"runs", " runs ", config.FormatRuns, false},
		{"folds", "folds", config.FormatFolds, false},
		{"unknown", "sarif", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormats_AllValid(t *testing.T) {
	for _, f := range config.Formats() {
		assert.True(t, f.IsValid(), "format %s", f)
	}
}

func TestColorMode_IsValid(t *testing.T) {
	assert.True(t, config.ColorAuto.IsValid())
	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}
