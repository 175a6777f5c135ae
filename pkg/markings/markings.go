// Package markings defines the read-only match table consumed by the
// search-result lexer: for each result line, where the matched text lies.
package markings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidMarking is returned when a marking has negative or inverted offsets.
var ErrInvalidMarking = errors.New("invalid marking")

// Marking is the match inside one result line, as half-open byte offsets
// relative to the start of the line: text before Start is plain, [Start, End)
// is the match.
type Marking struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Valid reports whether the marking is well formed.
func (m Marking) Valid() bool {
	return m.Start >= 0 && m.End >= m.Start
}

// Lookup maps a zero-based document line to its marking.
// Implementations are read-only while a scan is running.
type Lookup interface {
	// Marking returns the marking for line and whether one exists.
	Marking(line int) (Marking, bool)

	// Len returns the number of lines with markings.
	Len() int
}

// Table is an in-memory Lookup.
type Table map[int]Marking

// Compile-time interface check.
var _ Lookup = Table(nil)

// Marking implements Lookup.
func (t Table) Marking(line int) (Marking, bool) {
	m, ok := t[line]
	return m, ok
}

// Len implements Lookup.
func (t Table) Len() int {
	return len(t)
}

// Lines returns the lines with markings in ascending order.
func (t Table) Lines() []int {
	lines := make([]int, 0, len(t))
	for line := range t {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// IsEmpty reports whether lookup is nil or holds no markings.
func IsEmpty(lookup Lookup) bool {
	if lookup == nil {
		return true
	}
	return lookup.Len() == 0
}

// file is the on-disk representation. Keys are kept as strings so JSON
// documents, whose object keys are always quoted, decode too.
type file struct {
	Lines map[string]Marking `yaml:"lines"`
}

// Parse decodes a YAML (or JSON) markings document:
//
//	lines:
//	  2: {start: 6, end: 9}
func Parse(data []byte) (Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMarking, err)
	}

	table := make(Table, len(f.Lines))
	for key, m := range f.Lines {
		line, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: line key %q", ErrInvalidMarking, key)
		}
		if line < 0 || !m.Valid() {
			return nil, fmt.Errorf("%w: line %d: [%d,%d)", ErrInvalidMarking, line, m.Start, m.End)
		}
		table[line] = m
	}
	return table, nil
}

// Load reads and parses markings from r.
func Load(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markings: %w", err)
	}
	return Parse(data)
}

// LoadFile reads markings from path.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markings %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes the table in the format Parse accepts.
func (t Table) Marshal() ([]byte, error) {
	lines := make(map[int]Marking, len(t))
	for line, m := range t {
		lines[line] = m
	}
	out, err := yaml.Marshal(struct {
		Lines map[int]Marking `yaml:"lines"`
	}{Lines: lines})
	if err != nil {
		return nil, fmt.Errorf("marshal markings: %w", err)
	}
	return out, nil
}
