package git

import (
	"context"
	"fmt"
	"strings"

	"nextver.dev/nextver/internal/errors"
)

// RemoteURL returns the URL of a remote
func (g *RepoGateway) RemoteURL(remote string) (string, error) {
	return g.repo.RemoteURL(remote)
}

// Fetch updates the remote-tracking branches of remote
func (g *RepoGateway) Fetch(ctx context.Context, remote string) error {
	if _, err := g.runner.Run(ctx, "fetch", remote); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remote, err)
	}
	return nil
}

// Pull fast-forwards the current branch to its counterpart on remote. The
// remote-tracking branch must be up to date, so call Fetch first. A branch
// that has diverged is reported as SyncConflictError and left unchanged.
func (g *RepoGateway) Pull(ctx context.Context, remote string) error {
	branch, err := g.repo.CurrentBranch()
	if err != nil {
		return err
	}

	exists, err := g.repo.RemoteBranchExists(remote, branch)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewBranchNotFoundError(remote + "/" + branch)
	}

	if _, err := g.runner.Run(ctx, "merge", "--ff-only", remote+"/"+branch); err != nil {
		return errors.NewSyncConflictError(branch, firstLine(stderrOf(err)))
	}
	return nil
}

// Push pushes refspec to remote. Any refusal is reported as PushRejectedError.
func (g *RepoGateway) Push(ctx context.Context, remote, refspec string) error {
	if _, err := g.runner.Run(ctx, "push", remote, refspec); err != nil {
		return &errors.PushRejectedError{Remote: remote, Refspec: refspec, Err: err}
	}
	return nil
}

func stderrOf(err error) string {
	if gitErr, ok := err.(*errors.GitCommandError); ok {
		return strings.TrimSpace(gitErr.Stderr)
	}
	return err.Error()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
