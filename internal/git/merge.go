package git

import (
	"context"
	"fmt"

	"nextver.dev/nextver/internal/errors"
)

// Merge merges other into the current branch. A merge that stops on conflicts
// returns MergeConflictError and leaves the repository mid-merge.
func (g *RepoGateway) Merge(ctx context.Context, other string) error {
	_, mergeErr := g.runner.Run(ctx, "merge", "--no-edit", other)
	if mergeErr == nil {
		return nil
	}

	inProgress, err := g.MergeInProgress(ctx)
	if err == nil && inProgress {
		branch, _ := g.repo.CurrentBranch()
		return &errors.MergeConflictError{BranchName: branch, Other: other}
	}
	return fmt.Errorf("failed to merge %s: %w", other, mergeErr)
}

// AbortMerge abandons a stopped merge and restores the pre-merge state
func (g *RepoGateway) AbortMerge(ctx context.Context) error {
	if _, err := g.runner.Run(ctx, "merge", "--abort"); err != nil {
		return fmt.Errorf("failed to abort merge: %w", err)
	}
	return nil
}
