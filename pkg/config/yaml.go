package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAML encodes the file-backed fields of c with two-space indentation.
// CLI-only fields are tagged out. A nil config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by a comment block and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return slices.Concat([]byte(strings.TrimRight(header, "\n")+"\n\n"), body), nil
}

// FromYAML decodes a config document. Unset fields stay zero so the result
// merges over defaults.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Ignore = slices.Clone(c.Ignore)
	out.Extensions = maps.Clone(c.Extensions)
	out.Properties = maps.Clone(c.Properties)
	out.Theme = c.Theme.Clone()
	return &out
}

// Clone returns a deep copy of t.
func (t Theme) Clone() Theme {
	if t == nil {
		return nil
	}
	out := make(Theme, len(t))
	for lexerName, styles := range t {
		out[lexerName] = maps.Clone(styles)
	}
	return out
}
