package release

import (
	"context"
	"errors"

	nverrors "nextver.dev/nextver/internal/errors"
)

// Promote merges production into staging and pushes staging, then merges
// staging into production and pushes production. A conflicting merge is aborted and reported as a
// MergeConflictError wrapped in an AbortedError.
func (o *Orchestrator) Promote(ctx context.Context) error {
	r := &run{o: o}

	err := r.promote(ctx)
	restoreErr := r.restore(ctx)

	if err != nil {
		var aborted *AbortedError
		if errors.As(err, &aborted) {
			aborted.RestoreErr = restoreErr
		}
		return err
	}
	if restoreErr != nil {
		return &AbortedError{Step: StepRestoreActiveBranch, LastCompleted: r.last, Err: restoreErr}
	}
	return nil
}

func (r *run) promote(ctx context.Context) error {
	o := r.o
	staging := o.cfg.StagingBranch()
	production := o.cfg.ProductionBranch()

	if err := r.step(StepVerifyClean, func() (string, error) {
		return "", o.verifyClean(ctx)
	}); err != nil {
		return err
	}

	if err := r.snapshot(nil); err != nil {
		return err
	}

	if err := r.step(StepSyncBranches, func() (string, error) {
		return "", o.syncBranches(ctx, staging)
	}); err != nil {
		return err
	}

	if err := r.step(StepMergeBranches, func() (string, error) {
		if err := o.mergeInto(ctx, staging, production); err != nil {
			return "", err
		}
		if err := o.repo.Push(ctx, o.cfg.Remote(), staging+":"+staging); err != nil {
			return "", err
		}
		if err := o.mergeInto(ctx, production, staging); err != nil {
			return "", err
		}
		return staging + " -> " + production, nil
	}); err != nil {
		return err
	}

	return r.step(StepPushProduction, func() (string, error) {
		return production, o.repo.Push(ctx, o.cfg.Remote(), production+":"+production)
	})
}

// mergeInto checks out branch and merges other into it
func (o *Orchestrator) mergeInto(ctx context.Context, branch, other string) error {
	if err := o.repo.Checkout(ctx, branch); err != nil {
		return err
	}
	err := o.repo.Merge(ctx, other)
	if err == nil {
		return nil
	}
	if errors.Is(err, nverrors.ErrMergeConflict) {
		if abortErr := o.repo.AbortMerge(ctx); abortErr != nil {
			o.splog.Warn("Could not abort the merge of %s into %s: %v", other, branch, abortErr)
		}
	}
	return err
}
