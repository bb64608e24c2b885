package git

import (
	"context"
	"fmt"
)

// Stage adds exactly the given paths to the index. Duplicates are ignored.
func (g *RepoGateway) Stage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(paths))
	args := []string{"add", "--"}
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		args = append(args, p)
	}

	if _, err := g.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return nil
}

// Commit records the index as a new commit on the current branch
func (g *RepoGateway) Commit(ctx context.Context, message string) error {
	if _, err := g.runner.Run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// CreateTag creates an annotated tag at HEAD
func (g *RepoGateway) CreateTag(ctx context.Context, name, message string) error {
	if _, err := g.runner.Run(ctx, "tag", "-a", name, "-m", message); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// TagExists reports whether a tag exists locally
func (g *RepoGateway) TagExists(name string) (bool, error) {
	return g.repo.TagExists(name)
}
