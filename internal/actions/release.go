package actions

import (
	"errors"
	"fmt"

	nverrors "nextver.dev/nextver/internal/errors"
	"nextver.dev/nextver/internal/release"
	"nextver.dev/nextver/internal/runtime"
	"nextver.dev/nextver/internal/tui"
	"nextver.dev/nextver/internal/version"
)

// ErrCancelled is returned when the user declines the confirmation prompt
var ErrCancelled = errors.New("cancelled by user")

// ReleaseOptions contains options for the release command
type ReleaseOptions struct {
	Level           version.BumpLevel
	Yes             bool // skip the confirmation prompt
	SkipPullRequest bool
	CheckTag        bool
	Promote         bool // promote staging to production after the release
	UI              tui.ReleaseUI
}

// ReleaseAction bumps the version, publishes it and opens the release pull request
func ReleaseAction(ctx *runtime.Context, opts ReleaseOptions) (*release.Result, error) {
	splog := ctx.Splog
	cfg := ctx.Config

	if !opts.Yes && tui.InteractiveAllowed() {
		if err := confirmRelease(ctx, opts.Level); err != nil {
			return nil, err
		}
	}

	ui := opts.UI
	if ui == nil {
		ui = tui.NewReleaseUI(splog)
	}
	from := cfg.StagingBranch()
	if !cfg.HasReleaseBranch() {
		if active, err := ctx.Repo.ActiveBranch(); err == nil {
			from = active
		}
	}
	title := fmt.Sprintf("Releasing a %s version from %s", opts.Level, tui.ColorBranchName(from))
	p := startProgress(ui, title, release.ReleaseSteps())

	orch := ctx.Orchestrator(release.Options{
		SkipPullRequest: opts.SkipPullRequest,
		CheckTag:        opts.CheckTag,
		Observer:        p.observe,
	})
	result, err := orch.Release(ctx.Context, opts.Level)
	p.complete()

	if result != nil {
		reportRelease(splog, result)
	}
	if err != nil {
		reportAborted(splog, cfg.Remote(), err)
		return result, err
	}

	if opts.Promote {
		if result.Record.TargetBranch != cfg.StagingBranch() {
			splog.Warn("Not promoting: %s still has to be merged into %s.",
				tui.ColorBranchName(result.Record.TargetBranch), tui.ColorBranchName(cfg.StagingBranch()))
			return result, nil
		}
		if err := PromoteAction(ctx, PromoteOptions{Yes: true, UI: opts.UI}); err != nil {
			return result, err
		}
	}

	return result, nil
}

func confirmRelease(ctx *runtime.Context, level version.BumpLevel) error {
	current, err := ctx.Orchestrator(release.Options{}).CurrentVersion()
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Release %s as %s (%s bump)?",
		ctx.Config.RepoPath(), current.Next(level), level)
	ok, err := tui.PromptConfirm(message, true)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}

func reportRelease(splog *tui.Splog, result *release.Result) {
	switch {
	case result.PullRequestErr != nil:
		splog.Warn("Could not open the release pull request: %v", result.PullRequestErr)
	case result.PullRequestURL != "":
		splog.Info("Pull request: %s", tui.ColorURL(result.PullRequestURL))
	}
	splog.Info("Released version %s. Ready to deploy...", tui.ColorVersion(result.Version.String()))
}

// reportAborted names where a run stopped. A rejected push leaves the release
// commit and tag in the local repository, so the exact push to retry is shown.
func reportAborted(splog *tui.Splog, remote string, err error) {
	var aborted *release.AbortedError
	if !errors.As(err, &aborted) {
		return
	}
	if aborted.LastCompleted == release.StepNone {
		splog.Error("Stopped at %q before any step completed.", aborted.Step.Description())
	} else {
		splog.Error("Stopped at %q after %q.", aborted.Step.Description(), aborted.LastCompleted.Description())
	}

	rec := aborted.Record
	if !errors.Is(err, nverrors.ErrPushRejected) || rec == nil || rec.TargetBranch == "" {
		return
	}
	tag := rec.Next.Tag()
	splog.Newline()
	splog.Info("The commit and tag %s are kept locally on %s.",
		tui.ColorVersion(tag), tui.ColorBranchName(rec.TargetBranch))
	splog.Tip("Once %s accepts the push, run: git push %s %s:%s refs/tags/%s:refs/tags/%s",
		remote, remote, rec.TargetBranch, rec.TargetBranch, tag, tag)
}
