package cli

import (
	"github.com/spf13/cobra"

	"nextver.dev/nextver/internal/actions"
	"nextver.dev/nextver/internal/runtime"
)

// newPromoteCmd creates the promote command
func newPromoteCmd(flags *configFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Merge the staging branch into the production branch and push it",
		Long: `Merge the staging branch into the production branch and push it.

Both branches are synced with the remote first. Production is merged into
staging, staging into production, and production is pushed. A conflicting
merge is aborted and nothing is pushed.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx *runtime.Context) error {
				return actions.PromoteAction(ctx, actions.PromoteOptions{Yes: yes})
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
