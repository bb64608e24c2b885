package cli

import (
	"github.com/spf13/cobra"

	"nextver.dev/nextver/internal/actions"
	"nextver.dev/nextver/internal/runtime"
)

// newCurrentCmd creates the current command
func newCurrentCmd(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:          "current",
		Short:        "Print the version in the version file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx *runtime.Context) error {
				_, err := actions.CurrentAction(ctx)
				return err
			})
		},
	}
}
