package git

import (
	"context"
)

// HasStagedChanges checks if there are staged changes
func (g *RepoGateway) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := g.runner.Run(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// HasUnstagedChanges checks if tracked files have changes that are not staged
func (g *RepoGateway) HasUnstagedChanges(ctx context.Context) (bool, error) {
	output, err := g.runner.Run(ctx, "diff", "--name-only")
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// IsClean reports whether the staged and unstaged diffs are empty. Untracked
// files do not count.
func (g *RepoGateway) IsClean(ctx context.Context) (bool, bool, error) {
	staged, err := g.HasStagedChanges(ctx)
	if err != nil {
		return false, false, err
	}
	unstaged, err := g.HasUnstagedChanges(ctx)
	if err != nil {
		return false, false, err
	}
	return !staged, !unstaged, nil
}

// MergeInProgress reports whether a merge stopped and is waiting for resolution
func (g *RepoGateway) MergeInProgress(ctx context.Context) (bool, error) {
	_, err := g.runner.Run(ctx, "rev-parse", "-q", "--verify", "MERGE_HEAD")
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, err
}
