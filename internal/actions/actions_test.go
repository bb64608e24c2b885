package actions_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"nextver.dev/nextver/internal/actions"
	"nextver.dev/nextver/internal/config"
	nverrors "nextver.dev/nextver/internal/errors"
	"nextver.dev/nextver/internal/git"
	"nextver.dev/nextver/internal/github"
	"nextver.dev/nextver/internal/release"
	"nextver.dev/nextver/internal/runtime"
	"nextver.dev/nextver/internal/tui"
	"nextver.dev/nextver/internal/version"
	"nextver.dev/nextver/testhelpers"
)

type actionScene struct {
	*testhelpers.Scene
	ctx    *runtime.Context
	out    *bytes.Buffer
	ui     tui.ReleaseUI
	github *testhelpers.MockGitHubServerConfig
}

func newActionScene(t *testing.T, opts config.Options) *actionScene {
	t.Helper()
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("NEXTVER_NO_INTERACTIVE", "1")
	t.Setenv("DEBUG", "")
	lipgloss.SetColorProfile(termenv.Ascii)

	scene := testhelpers.NewScene(t, testhelpers.ReleaseSceneSetup("1.4.9"))
	opts.RepoPath = scene.Dir
	cfg, err := config.New(opts)
	require.NoError(t, err)

	gw, err := git.NewRepoGateway(scene.Dir)
	require.NoError(t, err)

	ghConfig := testhelpers.NewMockGitHubServerConfig()
	client, owner, repo := testhelpers.NewMockGitHubClient(t, ghConfig)

	out := &bytes.Buffer{}
	splog := tui.NewSplogWithWriter(out)

	return &actionScene{
		Scene: scene,
		ctx: &runtime.Context{
			Context:      context.Background(),
			Splog:        splog,
			Config:       cfg,
			Repo:         gw,
			PullRequests: github.NewClientFromGitHub(client, owner, repo),
			FS:           afero.NewBasePathFs(afero.NewOsFs(), scene.Dir),
		},
		out:    out,
		ui:     tui.NewSimpleReleaseUI(splog),
		github: ghConfig,
	}
}

func TestReleaseAction(t *testing.T) {
	t.Run("releases and reports the pull request", func(t *testing.T) {
		s := newActionScene(t, config.Options{ReleaseBranch: "release/{version}"})

		result, err := actions.ReleaseAction(s.ctx, actions.ReleaseOptions{Level: version.Patch, UI: s.ui})
		require.NoError(t, err)
		require.Equal(t, "1.4.10", result.Version.String())

		output := s.out.String()
		require.Contains(t, output, "Releasing a patch version from develop")
		require.Contains(t, output, "✓ Commit, tag and push v1.4.10")
		require.Contains(t, output, "Pull request: https://github.com/owner/repo/pull/1")
		require.Contains(t, output, "Released version 1.4.10. Ready to deploy...")
		require.Len(t, s.github.Created(), 1)
		testhelpers.ExpectCurrentBranch(t, s.Repo, "develop")
	})

	t.Run("promotes after releasing on staging", func(t *testing.T) {
		s := newActionScene(t, config.Options{})

		_, err := actions.ReleaseAction(s.ctx, actions.ReleaseOptions{Level: version.Minor, Promote: true, UI: s.ui})
		require.NoError(t, err)

		develop, err := s.Repo.GetRevision("develop")
		require.NoError(t, err)
		remoteMaster, err := testhelpers.RemoteRevision(s.Remote, "refs/heads/master")
		require.NoError(t, err)
		require.Equal(t, develop, remoteMaster)
		require.Contains(t, s.out.String(), "master is ready to deploy.")
	})

	t.Run("does not promote an unmerged release branch", func(t *testing.T) {
		s := newActionScene(t, config.Options{ReleaseBranch: "release/{version}"})
		before, err := testhelpers.RemoteRevision(s.Remote, "refs/heads/master")
		require.NoError(t, err)

		_, err = actions.ReleaseAction(s.ctx, actions.ReleaseOptions{Level: version.Minor, Promote: true, UI: s.ui})
		require.NoError(t, err)

		after, err := testhelpers.RemoteRevision(s.Remote, "refs/heads/master")
		require.NoError(t, err)
		require.Equal(t, before, after)
		require.Contains(t, s.out.String(), "Not promoting: release/1.5.0 still has to be merged into develop.")
	})

	t.Run("pull request failure is a warning", func(t *testing.T) {
		s := newActionScene(t, config.Options{ReleaseBranch: "release/{version}"})
		s.github.FailStatus = 422
		s.github.FailMessage = "Validation Failed"

		result, err := actions.ReleaseAction(s.ctx, actions.ReleaseOptions{Level: version.Major, UI: s.ui})
		require.NoError(t, err)
		require.Error(t, result.PullRequestErr)
		require.Contains(t, s.out.String(), "Could not open the release pull request")
		require.Contains(t, s.out.String(), "Released version 2.0.0. Ready to deploy...")
	})

	t.Run("does not promote a release made off staging", func(t *testing.T) {
		s := newActionScene(t, config.Options{})
		require.NoError(t, s.Repo.CreateBranch("feature"))
		require.NoError(t, s.Repo.CheckoutBranch("feature"))
		before, err := testhelpers.RemoteRevision(s.Remote, "refs/heads/master")
		require.NoError(t, err)

		result, err := actions.ReleaseAction(s.ctx, actions.ReleaseOptions{Level: version.Patch, Promote: true, UI: s.ui})
		require.NoError(t, err)
		require.Equal(t, "feature", result.Record.TargetBranch)

		after, err := testhelpers.RemoteRevision(s.Remote, "refs/heads/master")
		require.NoError(t, err)
		require.Equal(t, before, after)
		require.Contains(t, s.out.String(), "Releasing a patch version from feature")
		require.Contains(t, s.out.String(), "Not promoting: feature still has to be merged into develop.")
	})

	t.Run("rejected push explains the manual retry", func(t *testing.T) {
		s := newActionScene(t, config.Options{})
		require.NoError(t, testhelpers.InstallHook(s.Remote, "pre-receive", "#!/bin/sh\nexit 1\n"))

		result, err := actions.ReleaseAction(s.ctx, actions.ReleaseOptions{Level: version.Patch, UI: s.ui})
		require.Nil(t, result)
		require.ErrorIs(t, err, nverrors.ErrPushRejected)

		output := s.out.String()
		require.Contains(t, output, `❌ Stopped at "Commit, tag and push" after "Bump version files".`)
		require.Contains(t, output, "The commit and tag v1.4.10 are kept locally on develop.")
		require.Contains(t, output,
			"💡 Once origin accepts the push, run: git push origin develop:develop refs/tags/v1.4.10:refs/tags/v1.4.10")
		testhelpers.ExpectTag(t, s.Repo, "v1.4.10", "develop")
	})

	t.Run("failure names the step", func(t *testing.T) {
		s := newActionScene(t, config.Options{})
		require.NoError(t, s.Repo.WriteFile("VERSION", "dirty\n"))

		result, err := actions.ReleaseAction(s.ctx, actions.ReleaseOptions{Level: version.Major, UI: s.ui})
		require.Nil(t, result)
		require.ErrorIs(t, err, nverrors.ErrDirtyRepository)

		var aborted *release.AbortedError
		require.ErrorAs(t, err, &aborted)
		require.Equal(t, release.StepVerifyClean, aborted.Step)
		require.Contains(t, s.out.String(), "✗ Verify clean working tree failed")
		require.Contains(t, s.out.String(), `❌ Stopped at "Verify clean working tree" before any step completed.`)
		require.NotContains(t, s.out.String(), "💡")
		require.NotContains(t, s.out.String(), "Released version")
	})
}

func TestPromoteAction_MergeConflict(t *testing.T) {
	s := newActionScene(t, config.Options{})

	require.NoError(t, s.Repo.CheckoutBranch("master"))
	require.NoError(t, s.Repo.CommitFile("NOTES", "hotfix\n", "hotfix on master"))
	require.NoError(t, s.Repo.PushBranch("origin", "master"))
	require.NoError(t, s.Repo.CheckoutBranch("develop"))
	require.NoError(t, s.Repo.CommitFile("NOTES", "feature\n", "feature on develop"))
	require.NoError(t, s.Repo.PushBranch("origin", "develop"))

	err := actions.PromoteAction(s.ctx, actions.PromoteOptions{UI: s.ui})
	require.ErrorIs(t, err, nverrors.ErrMergeConflict)

	testhelpers.ExpectCurrentBranch(t, s.Repo, "develop")
	testhelpers.ExpectCleanTree(t, s.Repo)
}

func TestCurrentAction(t *testing.T) {
	t.Run("prints the recorded version", func(t *testing.T) {
		s := newActionScene(t, config.Options{})

		current, err := actions.CurrentAction(s.ctx)
		require.NoError(t, err)
		require.Equal(t, "1.4.9", current.String())
		require.Equal(t, "1.4.9\n", s.out.String())
	})

	t.Run("warns when package metadata drifted", func(t *testing.T) {
		s := newActionScene(t, config.Options{PackageMetadata: "package.json"})
		require.NoError(t, s.Repo.CommitFile("package.json", `{"name": "web", "version": "1.4.8"}`+"\n", "add package.json"))

		_, err := actions.CurrentAction(s.ctx)
		require.NoError(t, err)
		require.Contains(t, s.out.String(), "package.json has version 1.4.8, VERSION has 1.4.9.")
	})
}
