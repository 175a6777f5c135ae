package reporter

import (
	"fmt"
	"io"

	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/runner"
)

// writeSummary writes the run statistics: one line, or a block of rows
// when verbose.
func writeSummary(w io.Writer, styles *pretty.Styles, stats runner.Stats, verbose bool) {
	if verbose {
		fmt.Fprint(w, styles.FormatSummary(stats))
		return
	}
	fmt.Fprint(w, styles.FormatSummaryOneLine(stats))
}
