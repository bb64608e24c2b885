package git

import (
	"context"
)

// Gateway is the set of repository operations a release runs through.
// Every failure is returned as a distinct error kind from internal/errors.
type Gateway interface {
	// Queries
	IsClean(ctx context.Context) (stagedEmpty, unstagedEmpty bool, err error)
	ActiveBranch() (string, error)
	BranchExists(name string) (bool, error)
	TagExists(name string) (bool, error)
	MergeInProgress(ctx context.Context) (bool, error)
	RemoteURL(remote string) (string, error)

	// Mutations
	Checkout(ctx context.Context, name string) error
	CreateBranch(ctx context.Context, name string) error
	Fetch(ctx context.Context, remote string) error
	Pull(ctx context.Context, remote string) error
	Stage(ctx context.Context, paths []string) error
	Commit(ctx context.Context, message string) error
	CreateTag(ctx context.Context, name, message string) error
	Push(ctx context.Context, remote, refspec string) error
	Merge(ctx context.Context, other string) error
	AbortMerge(ctx context.Context) error
}

// RepoGateway implements Gateway on a working tree on disk
type RepoGateway struct {
	repo   *Repository
	runner *CommandRunner
}

var _ Gateway = (*RepoGateway)(nil)

// NewRepoGateway opens the repository at root
func NewRepoGateway(root string) (*RepoGateway, error) {
	repo, err := OpenRepository(root)
	if err != nil {
		return nil, err
	}
	return &RepoGateway{
		repo:   repo,
		runner: NewCommandRunner(repo.Root()),
	}, nil
}

// Root returns the working tree root
func (g *RepoGateway) Root() string {
	return g.repo.Root()
}
