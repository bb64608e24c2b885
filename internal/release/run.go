package release

import (
	"context"
)

// run tracks the progress of one release or promotion
type run struct {
	o     *Orchestrator
	last  Step
	prior string
}

func (r *run) emit(ev Event) {
	switch ev.Status {
	case StepFailed:
		r.o.splog.Debug("%s failed: %v", ev.Step, ev.Err)
		r.o.splog.Record("step failed", "step", ev.Step.String(), "error", ev.Err)
	default:
		r.o.splog.Debug("%s %s %s", ev.Step, ev.Status, ev.Detail)
		r.o.splog.Record("step", "step", ev.Step.String(), "status", ev.Status.String(), "detail", ev.Detail)
	}
	if r.o.opts.Observer != nil {
		r.o.opts.Observer(ev)
	}
}

// step runs fn as step s and wraps a failure in an AbortedError
func (r *run) step(s Step, fn func() (string, error)) error {
	r.emit(Event{Step: s, Status: StepStarted})
	detail, err := fn()
	if err != nil {
		r.emit(Event{Step: s, Status: StepFailed, Err: err})
		return &AbortedError{Step: s, LastCompleted: r.last, Err: err}
	}
	r.last = s
	r.emit(Event{Step: s, Status: StepDone, Detail: detail})
	return nil
}

func (r *run) skip(s Step, reason string) {
	r.emit(Event{Step: s, Status: StepSkipped, Detail: reason})
}

func (r *run) snapshot(rec *Record) error {
	return r.step(StepSnapshotPriorBranch, func() (string, error) {
		branch, err := r.o.repo.ActiveBranch()
		if err != nil {
			return "", err
		}
		r.prior = branch
		if rec != nil {
			rec.PriorBranch = branch
		}
		return branch, nil
	})
}

// restore checks out the branch recorded by snapshot. It does nothing when
// no snapshot was taken or a merge is waiting for conflict resolution.
func (r *run) restore(ctx context.Context) error {
	if r.prior == "" {
		r.skip(StepRestoreActiveBranch, "no branch recorded")
		return nil
	}

	r.emit(Event{Step: StepRestoreActiveBranch, Status: StepStarted})

	merging, err := r.o.repo.MergeInProgress(ctx)
	if err != nil {
		r.emit(Event{Step: StepRestoreActiveBranch, Status: StepFailed, Err: err})
		return err
	}
	if merging {
		r.o.splog.Warn("A merge is in progress; staying on the current branch instead of %s.", r.prior)
		r.skip(StepRestoreActiveBranch, "merge in progress")
		return nil
	}

	if active, err := r.o.repo.ActiveBranch(); err != nil || active != r.prior {
		if err := r.o.repo.Checkout(ctx, r.prior); err != nil {
			r.emit(Event{Step: StepRestoreActiveBranch, Status: StepFailed, Err: err})
			return err
		}
	}

	r.last = StepRestoreActiveBranch
	r.emit(Event{Step: StepRestoreActiveBranch, Status: StepDone, Detail: r.prior})
	return nil
}
