package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/yaklabco/lexstyle/internal/configloader"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/fsutil"
	"github.com/yaklabco/lexstyle/pkg/lexer"
	"github.com/yaklabco/lexstyle/pkg/markings"
)

// Exit codes for lexstyle, following sysexits.h.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or markings file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesFailed is returned when some files could not be read. The
// reporter has already listed them.
var ErrFilesFailed = errors.New("some files could not be styled")

// ExitError pins the exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, markings.ErrInvalidMarking):
		return ExitConfigError
	case errors.Is(err, lexer.ErrUnknownLexer),
		errors.Is(err, config.ErrUnknownFormat),
		isCobraUsageError(err):
		return ExitInvalidUsage
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// isCobraUsageError recognises the argument errors cobra builds with
// fmt.Errorf, which carry no sentinel.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "requires at least")
}
