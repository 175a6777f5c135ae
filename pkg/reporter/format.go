package reporter

import (
	"fmt"

	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/config"
)

// newRenderer returns the per-file renderer for a streaming format.
func newRenderer(format config.OutputFormat, styles *pretty.Styles, opts Options) (Renderer, error) {
	switch format {
	case config.FormatANSI:
		return NewANSIRenderer(styles, opts.Theme), nil
	case config.FormatRuns:
		return NewRunsRenderer(styles), nil
	case config.FormatFolds:
		return NewFoldsRenderer(styles), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
