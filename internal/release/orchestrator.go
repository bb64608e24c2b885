// Package release drives a version release through a repository and its
// remote: clean check, branch sync, version bump, commit, tag, push, pull
// request and restoring the branch the user started on.
package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"nextver.dev/nextver/internal/config"
	nverrors "nextver.dev/nextver/internal/errors"
	"nextver.dev/nextver/internal/git"
	"nextver.dev/nextver/internal/metadata"
	"nextver.dev/nextver/internal/tui"
	"nextver.dev/nextver/internal/version"
)

// PullRequestGateway opens a pull request and returns its URL
type PullRequestGateway interface {
	Create(ctx context.Context, title, body, head, base string) (string, error)
}

// Options tune a run
type Options struct {
	// SkipPullRequest skips OpenPullRequest
	SkipPullRequest bool
	// CheckTag fails ComputeNextVersion when the next tag already exists
	CheckTag bool
	// Observer receives every step transition
	Observer Observer
}

// Result describes a finished release
type Result struct {
	Version        version.Version
	Tag            string
	Record         *Record
	Committed      []string
	PullRequestURL string
	PullRequestErr error
}

// Orchestrator runs releases for one configured project
type Orchestrator struct {
	cfg   *config.ReleaseConfiguration
	repo  git.Gateway
	prs   PullRequestGateway
	fs    afero.Fs
	splog *tui.Splog
	opts  Options
}

// NewOrchestrator creates an orchestrator. fs must be rooted at the
// repository root. prs may be nil, in which case pull request creation is
// reported as failed.
func NewOrchestrator(cfg *config.ReleaseConfiguration, repo git.Gateway, prs PullRequestGateway, fs afero.Fs, splog *tui.Splog, opts Options) *Orchestrator {
	if splog == nil {
		splog = tui.NewSplog()
	}
	return &Orchestrator{
		cfg:   cfg,
		repo:  repo,
		prs:   prs,
		fs:    fs,
		splog: splog,
		opts:  opts,
	}
}

// CurrentVersion reads the version record of the checked out branch
func (o *Orchestrator) CurrentVersion() (version.Version, error) {
	return version.NewRecord(o.fs, o.cfg.VersionFile()).Read()
}

// Release bumps the version at level and publishes it. On failure the error
// is an *AbortedError naming the failed step. When everything but restoring
// the prior branch succeeded, both the result and an *AbortedError for
// RestoreActiveBranch are returned.
func (o *Orchestrator) Release(ctx context.Context, level version.BumpLevel) (*Result, error) {
	rec := newRecord(level)
	result := &Result{Record: rec}
	r := &run{o: o}

	err := r.release(ctx, rec, result)
	restoreErr := r.restore(ctx)

	if err != nil {
		var aborted *AbortedError
		if errors.As(err, &aborted) {
			aborted.RestoreErr = restoreErr
			aborted.Record = rec
		}
		return nil, err
	}
	if restoreErr != nil {
		return result, &AbortedError{Step: StepRestoreActiveBranch, LastCompleted: r.last, Err: restoreErr, Record: rec}
	}
	return result, nil
}

func (r *run) release(ctx context.Context, rec *Record, result *Result) error {
	o := r.o

	if err := r.step(StepVerifyClean, func() (string, error) {
		return "", o.verifyClean(ctx)
	}); err != nil {
		return err
	}

	if err := r.snapshot(rec); err != nil {
		return err
	}

	if err := r.step(StepSyncBranches, func() (string, error) {
		return "", o.syncBranches(ctx, o.buildBranch(rec.PriorBranch))
	}); err != nil {
		return err
	}

	if err := r.step(StepComputeNextVersion, func() (string, error) {
		current, err := o.CurrentVersion()
		if err != nil {
			return "", err
		}
		rec.Original = current
		rec.Next = current.Next(rec.Level)

		if o.opts.CheckTag {
			exists, err := o.repo.TagExists(rec.Next.Tag())
			if err != nil {
				return "", err
			}
			if exists {
				return "", &nverrors.TagAlreadyExistsError{Tag: rec.Next.Tag()}
			}
		}
		return fmt.Sprintf("%s -> %s", rec.Original, rec.Next), nil
	}); err != nil {
		return err
	}

	if err := r.step(StepSelectTargetBranch, func() (string, error) {
		target, err := o.selectTargetBranch(ctx, rec.PriorBranch, rec.Next)
		if err != nil {
			return "", err
		}
		rec.TargetBranch = target
		return target, nil
	}); err != nil {
		return err
	}

	if err := r.step(StepBumpVersionFiles, func() (string, error) {
		return "", o.bumpVersionFiles(rec)
	}); err != nil {
		return err
	}

	if err := r.step(StepStageCommitTagPush, func() (string, error) {
		committed, err := o.stageCommitTagPush(ctx, rec)
		result.Committed = committed
		return rec.Next.Tag(), err
	}); err != nil {
		return err
	}
	result.Version = rec.Next
	result.Tag = rec.Next.Tag()

	r.openPullRequest(ctx, rec, result)
	return nil
}

func (o *Orchestrator) verifyClean(ctx context.Context) error {
	stagedEmpty, unstagedEmpty, err := o.repo.IsClean(ctx)
	if err != nil {
		return err
	}
	if !stagedEmpty || !unstagedEmpty {
		return &nverrors.DirtyRepositoryError{HasStaged: !stagedEmpty, HasUnstaged: !unstagedEmpty}
	}
	return nil
}

// buildBranch is the branch the version is read from and bumped on before a
// release branch exists: staging with a template, the prior branch without.
func (o *Orchestrator) buildBranch(prior string) string {
	if o.cfg.HasReleaseBranch() || prior == "" {
		return o.cfg.StagingBranch()
	}
	return prior
}

// syncBranches fast-forwards staging then production and leaves returnTo
// checked out
func (o *Orchestrator) syncBranches(ctx context.Context, returnTo string) error {
	remote := o.cfg.Remote()
	for _, branch := range []string{o.cfg.StagingBranch(), o.cfg.ProductionBranch()} {
		o.splog.Debug("Syncing %s with %s", branch, remote)
		if err := o.repo.Checkout(ctx, branch); err != nil {
			return err
		}
		if err := o.repo.Fetch(ctx, remote); err != nil {
			return err
		}
		if err := o.repo.Pull(ctx, remote); err != nil {
			return err
		}
	}
	return o.repo.Checkout(ctx, returnTo)
}

// selectTargetBranch returns the branch the release commit lands on. Without
// a template that is the branch the run started on.
func (o *Orchestrator) selectTargetBranch(ctx context.Context, prior string, next version.Version) (string, error) {
	if !o.cfg.HasReleaseBranch() {
		return prior, nil
	}
	if err := o.repo.Checkout(ctx, o.cfg.StagingBranch()); err != nil {
		return "", err
	}

	name := o.cfg.ReleaseBranchName(next.String())
	if err := o.repo.CreateBranch(ctx, name); err != nil {
		return "", err
	}
	if err := o.repo.Checkout(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}

func (o *Orchestrator) bumpVersionFiles(rec *Record) error {
	// Resolve the mirror first so an unusable format leaves every file untouched
	var mirror *metadata.Mirror
	if o.cfg.HasPackageMetadata() {
		m, err := metadata.NewMirror(o.fs, o.cfg.PackageMetadata(), o.cfg.MetadataFormat())
		if err != nil {
			return err
		}
		mirror = m
	}

	if err := version.NewRecord(o.fs, o.cfg.VersionFile()).Write(rec.Next); err != nil {
		return err
	}
	rec.MarkStaged(o.cfg.VersionFile())

	if mirror != nil {
		if err := mirror.Update(rec.Next); err != nil {
			return err
		}
		rec.MarkStaged(mirror.Path())
	}
	return nil
}

func (o *Orchestrator) stageCommitTagPush(ctx context.Context, rec *Record) ([]string, error) {
	paths := rec.StagedPaths()
	if err := o.repo.Stage(ctx, paths); err != nil {
		return nil, err
	}
	if err := o.repo.Commit(ctx, CommitMessage(rec.Level, rec.Original, rec.Next)); err != nil {
		return nil, err
	}
	rec.clearStaged()

	tag := rec.Next.Tag()
	if err := o.repo.CreateTag(ctx, tag, TagMessage(rec.Next)); err != nil {
		return paths, err
	}

	remote := o.cfg.Remote()
	if err := o.repo.Push(ctx, remote, rec.TargetBranch+":"+rec.TargetBranch); err != nil {
		return paths, err
	}
	if err := o.repo.Push(ctx, remote, "refs/tags/"+tag+":refs/tags/"+tag); err != nil {
		return paths, err
	}
	return paths, nil
}

// openPullRequest never aborts the run; failures end up in result
func (r *run) openPullRequest(ctx context.Context, rec *Record, result *Result) {
	o := r.o
	staging := o.cfg.StagingBranch()

	switch {
	case o.opts.SkipPullRequest:
		r.skip(StepOpenPullRequest, "disabled")
		return
	case rec.TargetBranch == staging:
		r.skip(StepOpenPullRequest, "released directly on "+staging)
		return
	}

	r.emit(Event{Step: StepOpenPullRequest, Status: StepStarted})

	var (
		url string
		err error
	)
	if o.prs == nil {
		err = &nverrors.PullRequestError{Err: errors.New("no pull request client configured")}
	} else {
		url, err = o.prs.Create(ctx,
			PullRequestTitle(rec.Next),
			PullRequestBody(rec.Level, rec.Original, rec.Next),
			rec.TargetBranch,
			staging,
		)
	}
	if err != nil {
		result.PullRequestErr = err
		r.emit(Event{Step: StepOpenPullRequest, Status: StepFailed, Err: err})
		return
	}

	result.PullRequestURL = url
	r.last = StepOpenPullRequest
	r.emit(Event{Step: StepOpenPullRequest, Status: StepDone, Detail: url})
}
