package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/lexstyle/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of lexstyle.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return err
			}
			out := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Level: log.InfoLevel})
			out.Info("lexstyle",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")

	return cmd
}
