package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	nverrors "nextver.dev/nextver/internal/errors"
)

// Repository wraps a go-git repository
type Repository struct {
	*git.Repository
	path string
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", absPath, err)
	}

	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		path:       root,
	}, nil
}

// Root returns the root directory of the working tree
func (r *Repository) Root() string {
	return r.path
}

// CurrentBranch returns the checked out branch name
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", nverrors.ErrNotOnBranch
	}

	return head.Name().Short(), nil
}

// BranchExists reports whether a local branch exists
func (r *Repository) BranchExists(name string) (bool, error) {
	return r.referenceExists(plumbing.NewBranchReferenceName(name))
}

// RemoteBranchExists reports whether a remote-tracking branch exists
func (r *Repository) RemoteBranchExists(remote, name string) (bool, error) {
	return r.referenceExists(plumbing.NewRemoteReferenceName(remote, name))
}

// TagExists reports whether a tag exists
func (r *Repository) TagExists(name string) (bool, error) {
	return r.referenceExists(plumbing.NewTagReferenceName(name))
}

func (r *Repository) referenceExists(name plumbing.ReferenceName) (bool, error) {
	_, err := r.Reference(name, false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return true, nil
}

// RemoteURL returns the first configured URL of a remote
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.Remote(name)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}
