package lexer

import (
	"strconv"
	"strings"
)

// Well-known property keys.
const (
	// PropFoldCompact flags whitespace-only lines during folding. Defaults to on.
	PropFoldCompact = "fold.compact"
)

// Properties is a set of host properties keyed by dotted names.
type Properties map[string]string

// Get returns the value for key, or "" when unset.
func (p Properties) Get(key string) string {
	if p == nil {
		return ""
	}
	return p[key]
}

// Int parses key as an integer, returning def when unset or not numeric.
// Boolean words are accepted: true/on/yes map to 1 and false/off/no to 0.
func (p Properties) Int(key string, def int) int {
	return PropertyInt(p.Get(key), def)
}

// Clone returns a copy of the properties.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for key, val := range p {
		out[key] = val
	}
	return out
}

// PropertyInt parses a raw property value the way Properties.Int does.
func PropertyInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "true", "on", "yes":
		return 1
	case "false", "off", "no":
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// FoldCompact reads the fold.compact property of doc.
func FoldCompact(doc Document) bool {
	return PropertyInt(doc.Property(PropFoldCompact), 1) != 0
}
