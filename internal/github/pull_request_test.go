package github_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"nextver.dev/nextver/internal/errors"
	githubpkg "nextver.dev/nextver/internal/github"
	"nextver.dev/nextver/testhelpers"
)

func TestClient_Create(t *testing.T) {
	t.Run("creates a pull request and returns its URL", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		gh, owner, repo := testhelpers.NewMockGitHubClient(t, config)
		client := githubpkg.NewClientFromGitHub(gh, owner, repo)

		url, err := client.Create(context.Background(), "Release 3.1.0", "Automated minor-level version bump to 3.1.0", "release/3.1.0", "develop")
		require.NoError(t, err)
		require.Equal(t, "https://github.com/owner/repo/pull/1", url)

		created := config.Created()
		require.Len(t, created, 1)
		require.Equal(t, "Release 3.1.0", created[0].GetTitle())
		require.Equal(t, "Automated minor-level version bump to 3.1.0", created[0].GetBody())
		require.Equal(t, "release/3.1.0", created[0].GetHead().GetRef())
		require.Equal(t, "develop", created[0].GetBase().GetRef())

		require.Len(t, config.Requests, 1)
		require.Contains(t, config.Requests[0].Get("User-Agent"), "nextver")
	})

	t.Run("non-success answer becomes a pull request error", func(t *testing.T) {
		config := testhelpers.NewMockGitHubServerConfig()
		config.FailStatus = http.StatusUnprocessableEntity
		config.FailMessage = "A pull request already exists for owner:release/3.1.0."
		gh, owner, repo := testhelpers.NewMockGitHubClient(t, config)
		client := githubpkg.NewClientFromGitHub(gh, owner, repo)

		_, err := client.Create(context.Background(), "Release 3.1.0", "", "release/3.1.0", "develop")
		require.ErrorIs(t, err, errors.ErrPullRequestFailed)

		var prErr *errors.PullRequestError
		require.ErrorAs(t, err, &prErr)
		require.Equal(t, http.StatusUnprocessableEntity, prErr.StatusCode)
		require.Contains(t, prErr.Body, "already exists")
		require.Empty(t, config.Created())
	})

	t.Run("owner and repo come from the constructor", func(t *testing.T) {
		gh, _, _ := testhelpers.NewMockGitHubClient(t, nil)
		client := githubpkg.NewClientFromGitHub(gh, "acme", "web")
		owner, repo := client.OwnerRepo()
		require.Equal(t, "acme", owner)
		require.Equal(t, "web", repo)

		// The mock only serves owner/repo
		_, err := client.Create(context.Background(), "t", "b", "h", "b")
		require.ErrorIs(t, err, errors.ErrPullRequestFailed)
	})
}

func TestNewClient_UsesEnvironmentToken(t *testing.T) {
	t.Setenv("GITHUB_PERSONAL_ACCESS_TOKEN", "secret")

	client, err := githubpkg.NewClient(context.Background(), "git@github.com:acme/web.git")
	require.NoError(t, err)
	owner, repo := client.OwnerRepo()
	require.Equal(t, "acme", owner)
	require.Equal(t, "web", repo)
}

func TestNewClient_RejectsUnparsableRemote(t *testing.T) {
	_, err := githubpkg.NewClient(context.Background(), "/srv/git/web.git")
	require.Error(t, err)
}
