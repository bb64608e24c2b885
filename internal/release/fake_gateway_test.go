package release_test

import (
	"context"
	"fmt"
	"strings"

	nverrors "nextver.dev/nextver/internal/errors"
	"nextver.dev/nextver/internal/git"
)

// fakeGateway is an in-memory repository. Only mutating calls are recorded.
type fakeGateway struct {
	stagedEmpty   bool
	unstagedEmpty bool
	active        string
	branches      map[string]int // branch -> number of commits on it
	tags          map[string]string
	commits       []string
	staged        []string
	merging       bool
	conflicts     map[string]bool // "branch<-other"
	failOn        map[string]error

	calls []string
}

var _ git.Gateway = (*fakeGateway)(nil)

func newFakeGateway(active string, branches ...string) *fakeGateway {
	g := &fakeGateway{
		stagedEmpty:   true,
		unstagedEmpty: true,
		active:        active,
		branches:      map[string]int{active: 1},
		tags:          map[string]string{},
		conflicts:     map[string]bool{},
		failOn:        map[string]error{},
	}
	for _, b := range branches {
		g.branches[b] = 1
	}
	return g
}

func (g *fakeGateway) record(call string) error {
	g.calls = append(g.calls, call)
	return g.failOn[call]
}

func (g *fakeGateway) IsClean(context.Context) (bool, bool, error) {
	return g.stagedEmpty, g.unstagedEmpty, nil
}

func (g *fakeGateway) ActiveBranch() (string, error) {
	if g.active == "" {
		return "", nverrors.ErrNotOnBranch
	}
	return g.active, nil
}

func (g *fakeGateway) BranchExists(name string) (bool, error) {
	_, ok := g.branches[name]
	return ok, nil
}

func (g *fakeGateway) TagExists(name string) (bool, error) {
	_, ok := g.tags[name]
	return ok, nil
}

func (g *fakeGateway) MergeInProgress(context.Context) (bool, error) {
	return g.merging, nil
}

func (g *fakeGateway) RemoteURL(string) (string, error) {
	return "git@github.com:owner/repo.git", nil
}

func (g *fakeGateway) Checkout(_ context.Context, name string) error {
	if err := g.record("Checkout " + name); err != nil {
		return err
	}
	if _, ok := g.branches[name]; !ok {
		return nverrors.NewBranchNotFoundError(name)
	}
	g.active = name
	return nil
}

func (g *fakeGateway) CreateBranch(_ context.Context, name string) error {
	if err := g.record("CreateBranch " + name); err != nil {
		return err
	}
	if _, ok := g.branches[name]; ok {
		return nverrors.NewBranchAlreadyExistsError(name)
	}
	g.branches[name] = g.branches[g.active]
	return nil
}

func (g *fakeGateway) Fetch(_ context.Context, remote string) error {
	return g.record("Fetch " + remote)
}

func (g *fakeGateway) Pull(_ context.Context, remote string) error {
	return g.record("Pull " + remote + " " + g.active)
}

func (g *fakeGateway) Stage(_ context.Context, paths []string) error {
	if err := g.record("Stage " + strings.Join(paths, ",")); err != nil {
		return err
	}
	g.staged = append(g.staged, paths...)
	return nil
}

func (g *fakeGateway) Commit(_ context.Context, message string) error {
	if err := g.record("Commit"); err != nil {
		return err
	}
	g.commits = append(g.commits, message)
	g.branches[g.active]++
	g.staged = nil
	return nil
}

func (g *fakeGateway) CreateTag(_ context.Context, name, message string) error {
	if err := g.record("CreateTag " + name); err != nil {
		return err
	}
	g.tags[name] = message
	return nil
}

func (g *fakeGateway) Push(_ context.Context, remote, refspec string) error {
	if err, ok := g.failOn["Push "+remote+" "+refspec]; ok {
		g.calls = append(g.calls, "Push "+remote+" "+refspec)
		return &nverrors.PushRejectedError{Remote: remote, Refspec: refspec, Err: err}
	}
	return g.record("Push " + remote + " " + refspec)
}

func (g *fakeGateway) Merge(_ context.Context, other string) error {
	if err := g.record("Merge " + other); err != nil {
		return err
	}
	if g.conflicts[g.active+"<-"+other] {
		g.merging = true
		return &nverrors.MergeConflictError{BranchName: g.active, Other: other}
	}
	g.branches[g.active]++
	return nil
}

func (g *fakeGateway) AbortMerge(context.Context) error {
	if err := g.record("AbortMerge"); err != nil {
		return err
	}
	g.merging = false
	return nil
}

// fakePullRequests records every pull request it is asked to open
type fakePullRequests struct {
	created []string
	err     error
}

func (f *fakePullRequests) Create(_ context.Context, title, body, head, base string) (string, error) {
	f.created = append(f.created, fmt.Sprintf("%s|%s|%s|%s", title, body, head, base))
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://github.com/owner/repo/pull/%d", len(f.created)), nil
}
