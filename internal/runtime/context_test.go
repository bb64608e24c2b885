package runtime_test

import (
	"context"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"nextver.dev/nextver/internal/config"
	"nextver.dev/nextver/internal/release"
	"nextver.dev/nextver/internal/runtime"
	"nextver.dev/nextver/internal/tui"
	"nextver.dev/nextver/testhelpers"
)

func TestNewContext(t *testing.T) {
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")

	t.Run("local remote leaves pull requests disabled", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.ReleaseSceneSetup("0.3.1"))
		cfg, err := config.New(config.Options{RepoPath: scene.Dir})
		require.NoError(t, err)

		ctx, err := runtime.NewContext(context.Background(), cfg, tui.NewSplogWithWriter(io.Discard))
		require.NoError(t, err)
		require.Nil(t, ctx.PullRequests)

		data, err := afero.ReadFile(ctx.FS, "VERSION")
		require.NoError(t, err)
		require.Equal(t, "0.3.1\n", string(data))

		branch, err := ctx.Repo.ActiveBranch()
		require.NoError(t, err)
		require.Equal(t, "develop", branch)

		current, err := ctx.Orchestrator(release.Options{}).CurrentVersion()
		require.NoError(t, err)
		require.Equal(t, "0.3.1", current.String())
	})

	t.Run("GitHub remote with a token enables pull requests", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "secret")
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.RunGitCommand("remote", "add", "origin", "https://github.com/acme/web.git"))

		cfg, err := config.New(config.Options{RepoPath: scene.Dir})
		require.NoError(t, err)

		ctx, err := runtime.NewContext(context.Background(), cfg, tui.NewSplogWithWriter(io.Discard))
		require.NoError(t, err)
		require.NotNil(t, ctx.PullRequests)
	})

	t.Run("missing repository", func(t *testing.T) {
		cfg, err := config.New(config.Options{RepoPath: t.TempDir()})
		require.NoError(t, err)

		_, err = runtime.NewContext(context.Background(), cfg, nil)
		require.Error(t, err)
	})
}
