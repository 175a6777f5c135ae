package configloader

import (
	"testing"

	"github.com/yaklabco/lexstyle/pkg/config"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &config.Config{
		Format:     config.FormatANSI,
		Jobs:       4,
		Ignore:     []string{"vendor/**"},
		Properties: map[string]string{"fold.compact": "1", "other": "x"},
		Theme: config.Theme{
			"markdown": {"header1": {Foreground: "12"}, "code": {Italic: true}},
		},
	}
	override := &config.Config{
		Format:     config.FormatRuns,
		Properties: map[string]string{"fold.compact": "0"},
		Theme: config.Theme{
			"markdown": {"header1": {Foreground: "9", Bold: true}},
		},
	}

	got := merge(base, override)

	if got.Format != config.FormatRuns {
		t.Errorf("Format = %q, want runs", got.Format)
	}
	if got.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4 (zero override keeps base)", got.Jobs)
	}
	if len(got.Ignore) != 1 {
		t.Errorf("Ignore = %v, want base list kept", got.Ignore)
	}
	if got.Properties["fold.compact"] != "0" || got.Properties["other"] != "x" {
		t.Errorf("Properties = %v", got.Properties)
	}
	if spec, _ := got.Theme.Lookup("markdown", "header1"); spec.Foreground != "9" || !spec.Bold {
		t.Errorf("header1 = %+v, want override", spec)
	}
	if _, ok := got.Theme.Lookup("markdown", "code"); !ok {
		t.Error("code style lost in merge")
	}
	if base.Properties["fold.compact"] != "1" {
		t.Error("merge modified base properties")
	}
}

func TestMerge_IgnoreReplaced(t *testing.T) {
	t.Parallel()

	got := merge(
		&config.Config{Ignore: []string{"a", "b"}},
		&config.Config{Ignore: []string{}},
	)
	if got.Ignore == nil || len(got.Ignore) != 0 {
		t.Errorf("Ignore = %v, want empty override to clear the list", got.Ignore)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}

	got := MergeAll(
		&config.Config{Lexer: "markdown", Jobs: 1},
		nil,
		&config.Config{Jobs: 2},
		&config.Config{Format: config.FormatFolds},
	)
	if got.Lexer != "markdown" || got.Jobs != 2 || got.Format != config.FormatFolds {
		t.Errorf("MergeAll() = %+v", got)
	}
}
