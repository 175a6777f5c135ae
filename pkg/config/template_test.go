package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexstyle/pkg/config"
)

func TestGenerateTemplate_MinimalParses(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FormatANSI, cfg.Format)
	assert.Equal(t, "1", cfg.Properties["fold.compact"])
	assert.NotContains(t, string(data), "# theme:")
}

func TestGenerateTemplate_FullListsLexers(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{
		Full: true,
		Lexers: []config.LexerInfo{
			{Name: "searchresult", Styles: []string{"default", "match"}},
			{Name: "markdown", Extensions: []string{".md", ".markdown"}, Styles: []string{"header1"}},
		},
	})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "#   markdown:\n#     header1:")
	assert.Contains(t, out, "#     match:")
	assert.Contains(t, out, "Extensions: .md, .markdown")
	assert.Less(t, strings.Index(out, "markdown:"), strings.Index(out, "searchresult:"), "lexers are sorted")

	_, err = config.FromYAML(data)
	require.NoError(t, err, "commented theme section keeps the template valid")
}

func TestGenerateTemplate_JSON(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{
		Format: "json",
		Full:   true,
		Lexers: []config.LexerInfo{{Name: "markdown"}},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ansi", decoded["format"])
	assert.Contains(t, decoded["theme"], "markdown")
}
