// Package cli defines the nextver command line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nextver.dev/nextver/internal/actions"
	"nextver.dev/nextver/internal/runtime"
	"nextver.dev/nextver/internal/version"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(buildVersion, commit, date string) *cobra.Command {
	var (
		flags           configFlags
		yes             bool
		skipPullRequest bool
		checkTag        bool
		promote         bool
	)

	levels := make([]string, 0, len(version.BumpLevels()))
	for _, l := range version.BumpLevels() {
		levels = append(levels, l.String())
	}

	rootCmd := &cobra.Command{
		Use:   fmt.Sprintf("nextver [%s]", strings.Join(levels, "|")),
		Short: "Bump, tag and publish the next version of a project",
		Long: `Bump, tag and publish the next version of a project.

nextver syncs the staging and production branches with the remote, writes the
next version to the version file (and the package metadata when configured),
commits, tags and pushes the result and opens a pull request for it.

The project is either read from a settings file (--settings-file, --project)
or described with the repository flags.`,
		Example: `  nextver minor -f versioning.json -p web
  nextver patch --repository-path ~/src/web --release-branch 'release/{version}'`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", buildVersion, commit, date),
		Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:    levels,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := version.ParseBumpLevel(args[0])
			if err != nil {
				return err
			}
			return run(cmd, &flags, func(ctx *runtime.Context) error {
				_, err := actions.ReleaseAction(ctx, actions.ReleaseOptions{
					Level:           level,
					Yes:             yes,
					SkipPullRequest: skipPullRequest,
					CheckTag:        checkTag,
					Promote:         promote,
				})
				return err
			})
		},
	}

	flags.register(rootCmd)
	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.Flags().BoolVar(&skipPullRequest, "no-pr", false, "Do not open a pull request for the release branch")
	rootCmd.Flags().BoolVar(&checkTag, "check-tag", false, "Fail when the tag of the next version already exists")
	rootCmd.Flags().BoolVar(&promote, "promote", false, "Merge staging into production after releasing on staging")

	rootCmd.AddCommand(newPromoteCmd(&flags))
	rootCmd.AddCommand(newCurrentCmd(&flags))

	return rootCmd
}
