package actions

import (
	"fmt"

	"nextver.dev/nextver/internal/release"
	"nextver.dev/nextver/internal/runtime"
	"nextver.dev/nextver/internal/tui"
)

// PromoteOptions contains options for the promote command
type PromoteOptions struct {
	Yes bool
	UI  tui.ReleaseUI
}

// PromoteAction merges staging into production and pushes production
func PromoteAction(ctx *runtime.Context, opts PromoteOptions) error {
	splog := ctx.Splog
	cfg := ctx.Config

	if !opts.Yes && tui.InteractiveAllowed() {
		ok, err := tui.PromptConfirm(fmt.Sprintf("Merge %s into %s and push it?", cfg.StagingBranch(), cfg.ProductionBranch()), true)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	ui := opts.UI
	if ui == nil {
		ui = tui.NewReleaseUI(splog)
	}
	title := fmt.Sprintf("Promoting %s to %s",
		tui.ColorBranchName(cfg.StagingBranch()), tui.ColorBranchName(cfg.ProductionBranch()))
	p := startProgress(ui, title, release.PromoteSteps())

	err := ctx.Orchestrator(release.Options{Observer: p.observe}).Promote(ctx.Context)
	p.complete()
	if err != nil {
		reportAborted(splog, cfg.Remote(), err)
		return err
	}

	splog.Info("%s is ready to deploy.", tui.ColorBranchName(cfg.ProductionBranch()))
	return nil
}
