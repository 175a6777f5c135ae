package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/lexstyle/internal/configloader"
	"github.com/yaklabco/lexstyle/internal/logging"
	"github.com/yaklabco/lexstyle/internal/ui/pretty"
	"github.com/yaklabco/lexstyle/pkg/config"
	"github.com/yaklabco/lexstyle/pkg/markings"
)

// loadedConfig is the resolved configuration of one command invocation.
type loadedConfig struct {
	*config.Config
	workDir string
	sources []string
	logger  *log.Logger
}

// loadConfig merges every configuration source with the flags in cliCfg,
// which must only hold values the user set.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	logger := logging.FromContext(commandContext(cmd))

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	colorMode, err := colorFlag(cmd)
	if err != nil {
		return nil, err
	}
	cliCfg.Color = colorMode

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, &ExitError{Code: ExitConfigError, Err: fmt.Errorf("load configuration: %w", err)}
	}

	if len(loadResult.Warnings) > 0 {
		errOut := cmd.ErrOrStderr()
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, errOut))
		fmt.Fprint(errOut, styles.FormatWarnings(loadResult.Warnings))
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldLexer, cfg.Lexer,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)
	return &loadedConfig{Config: cfg, workDir: workDir, sources: loadResult.LoadedFrom, logger: logger}, nil
}

// loadMarkings reads the markings file named in cfg, if any.
func (c *loadedConfig) loadMarkings() (markings.Lookup, error) {
	if c.Markings == "" {
		return nil, nil
	}
	table, err := markings.LoadFile(c.Markings)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("loaded markings",
		logging.FieldMarkings, c.Markings,
		logging.FieldLines, table.Len(),
	)
	return table, nil
}

func colorFlag(cmd *cobra.Command) (config.ColorMode, error) {
	value, err := cmd.Flags().GetString("color")
	if err != nil {
		return config.ColorAuto, nil
	}
	mode := config.ColorMode(value)
	if !mode.IsValid() {
		return "", usageError(fmt.Errorf("invalid color mode %q: must be auto, always or never", value))
	}
	return mode, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
