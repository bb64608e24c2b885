// Package testhelpers provides testing utilities for nextver, including a
// scene system, Git repository helpers, a mock GitHub server and assertions.
package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. Useful in test setup code.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	branches, err := repo.GetLocalBranches()
	require.NoError(t, err, "Failed to list branches")

	sort.Strings(branches)
	want := append([]string(nil), expected...)
	sort.Strings(want)
	require.Equal(t, want, branches, "Branches do not match")
}

// ExpectCurrentBranch asserts the checked out branch.
func ExpectCurrentBranch(t *testing.T, repo *GitRepo, expected string) {
	t.Helper()

	current, err := repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, expected, current, "Unexpected current branch")
}

// ExpectTag asserts that a tag exists and points at the same commit as rev.
func ExpectTag(t *testing.T, repo *GitRepo, tag, rev string) {
	t.Helper()

	tagCommit, err := repo.GetRevision(tag + "^{commit}")
	require.NoError(t, err, "tag %s does not exist", tag)
	revCommit, err := repo.GetRevision(rev)
	require.NoError(t, err)
	require.Equal(t, revCommit, tagCommit, "tag %s does not point at %s", tag, rev)
}

// ExpectFileContent asserts the content of a file relative to the repository root.
func ExpectFileContent(t *testing.T, repo *GitRepo, name, expected string) {
	t.Helper()

	content, err := repo.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, expected, content)
}

// ExpectCleanTree asserts there are neither staged nor unstaged changes.
func ExpectCleanTree(t *testing.T, repo *GitRepo) {
	t.Helper()

	status, err := repo.RunGitCommandAndGetOutput("status", "--porcelain", "--untracked-files=no")
	require.NoError(t, err)
	require.Empty(t, status, "working tree is not clean")
}
