// Command lexstyle styles and folds documents with incremental lexers.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/lexstyle/internal/cli"
	"github.com/yaklabco/lexstyle/internal/logging"
)

// Set through -ldflags by the stave build and release targets.
//
//nolint:gochecknoglobals // ldflags injection target.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return cli.ExitSuccess
	case errors.Is(err, cli.ErrFilesFailed):
		// The reporter already listed the failed files.
	default:
		logger.Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
