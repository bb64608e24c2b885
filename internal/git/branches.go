package git

import (
	"context"
	"fmt"

	"nextver.dev/nextver/internal/errors"
)

// ActiveBranch returns the checked out branch
func (g *RepoGateway) ActiveBranch() (string, error) {
	return g.repo.CurrentBranch()
}

// BranchExists reports whether a local branch exists
func (g *RepoGateway) BranchExists(name string) (bool, error) {
	return g.repo.BranchExists(name)
}

// Checkout switches the working tree to a branch
func (g *RepoGateway) Checkout(ctx context.Context, name string) error {
	if _, err := g.runner.Run(ctx, "checkout", name); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", name, err)
	}
	return nil
}

// CreateBranch creates a branch at HEAD without switching to it. An existing
// branch is left untouched and reported as BranchAlreadyExistsError.
func (g *RepoGateway) CreateBranch(ctx context.Context, name string) error {
	exists, err := g.repo.BranchExists(name)
	if err != nil {
		return err
	}
	if exists {
		return errors.NewBranchAlreadyExistsError(name)
	}

	if _, err := g.runner.Run(ctx, "branch", name); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}
