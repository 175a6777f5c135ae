package reporter

import (
	"context"
	"io"

	"github.com/yaklabco/lexstyle/pkg/runner"
)

// Renderer writes one styled file.
// Renderers only see files that were styled; skips and errors are handled
// by the reporter around them.
type Renderer interface {
	// RenderFile writes the formatted file to w.
	RenderFile(ctx context.Context, w io.Writer, file runner.FileOutcome) error
}
