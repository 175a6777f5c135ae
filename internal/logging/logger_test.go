package logging_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lexstyle/internal/logging"
)

func TestNewWithWriter_Levels(t *testing.T) {
	t.Parallel()

	for level, want := range map[string]log.Level{
		"debug":     log.DebugLevel,
		"DEBUG":     log.DebugLevel,
		"Info":      log.InfoLevel,
		"warn":      log.WarnLevel,
		" warning ": log.WarnLevel,
		"error":     log.ErrorLevel,
		"verbose":   log.InfoLevel,
		"":          log.InfoLevel,
	} {
		if got := logging.NewWithWriter(io.Discard, level).GetLevel(); got != want {
			t.Errorf("level %q: got %v, want %v", level, got, want)
		}
	}
}

func TestNewWithWriter_FiltersAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")

	logger.Info("scanned", logging.FieldLines, 12)
	logger.Warn("lexer missing", logging.FieldLexer, "cobol")

	out := buf.String()
	if strings.Contains(out, "scanned") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "lexer=cobol") {
		t.Errorf("missing structured field in %q", out)
	}
}

// The tests below swap the process-wide logger and so do not run in parallel.

func TestDefaultLogger(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	if original == nil {
		t.Fatal("Default returned nil")
	}

	quiet := logging.New("error")
	logging.SetDefault(quiet)
	if logging.Default() != quiet {
		t.Fatal("SetDefault did not replace the logger")
	}

	logging.SetDefault(nil)
	if logging.Default() != quiet {
		t.Error("SetDefault(nil) must keep the current logger")
	}

	logging.SetLevel("debug")
	if quiet.GetLevel() != log.DebugLevel {
		t.Errorf("SetLevel changed nothing: %v", quiet.GetLevel())
	}
}

func TestNewInteractive_NeverQuieterThanInfo(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	logging.SetDefault(logging.NewWithWriter(io.Discard, "error"))
	if got := logging.NewInteractive().GetLevel(); got != log.InfoLevel {
		t.Errorf("interactive level under an error default = %v, want info", got)
	}

	logging.SetDefault(logging.NewWithWriter(io.Discard, "debug"))
	if got := logging.NewInteractive().GetLevel(); got != log.DebugLevel {
		t.Errorf("interactive level under a debug default = %v, want debug", got)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	logger := logging.NewWithWriter(io.Discard, "debug")
	if logging.FromContext(logging.WithLogger(context.Background(), logger)) != logger {
		t.Error("FromContext did not return the attached logger")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext without a logger returned nil")
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "info"))
	ctx = logging.With(ctx, logging.FieldCommand, "style")

	logging.FromContext(ctx).Info("styled file", logging.FieldPath, "a.md")

	out := buf.String()
	if !strings.Contains(out, "command=style") || !strings.Contains(out, "path=a.md") {
		t.Errorf("missing context fields in %q", out)
	}
}
