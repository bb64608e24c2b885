package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"nextver.dev/nextver/internal/cli"
	"nextver.dev/nextver/internal/config"
	nverrors "nextver.dev/nextver/internal/errors"
	"nextver.dev/nextver/testhelpers"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("NEXTVER_NO_INTERACTIVE", "1")
	t.Setenv("NEXTVER_LOG_FILE", filepath.Join(t.TempDir(), "nextver.log"))
	t.Setenv(config.SettingsFileEnv, "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd("1.2.3", "abc123", "2026-01-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSettings(t *testing.T, projects map[string]config.ProjectRecord) string {
	t.Helper()
	data, err := json.Marshal(config.Settings{Projects: projects})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "versioning.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRootCmd_Arguments(t *testing.T) {
	setupEnv(t)

	_, err := execute(t)
	require.Error(t, err)

	_, err = execute(t, "huge")
	require.Error(t, err)

	_, err = execute(t, "minor", "patch")
	require.Error(t, err)

	out, err := execute(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, "1.2.3 (commit abc123, built 2026-01-01)")
}

func TestRootCmd_SettingsUsageError(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "--settings", "-p", "web", "patch")
	require.Error(t, err)
	require.Contains(t, out, "--settings requires both --settings-file and --project")
	require.Contains(t, out, "Usage:")

	out, err = execute(t, "--settings", "-f", "versioning.json", "patch")
	require.Error(t, err)
	require.Contains(t, out, "Usage:")
}

func TestRootCmd_UnknownProject(t *testing.T) {
	setupEnv(t)
	path := writeSettings(t, map[string]config.ProjectRecord{})

	_, err := execute(t, "-f", path, "-p", "web", "patch")
	require.ErrorIs(t, err, nverrors.ErrUnknownProject)
}

func TestRootCmd_ReleaseFromSettings(t *testing.T) {
	setupEnv(t)
	scene := testhelpers.NewScene(t, testhelpers.ReleaseSceneSetup("0.9.3"))
	path := writeSettings(t, map[string]config.ProjectRecord{
		"web": {
			Path:        scene.Dir,
			Branches:    config.BranchSettings{Staging: "develop", Production: "master"},
			VersionFile: "VERSION",
		},
	})

	_, err := execute(t, "--settings", "-f", path, "-p", "web", "--yes", "minor")
	require.NoError(t, err)

	testhelpers.ExpectCurrentBranch(t, scene.Repo, "develop")
	testhelpers.ExpectTag(t, scene.Repo, "v0.10.0", "develop")
	testhelpers.ExpectFileContent(t, scene.Repo, "VERSION", "0.10.0\n")

	remote, err := testhelpers.RemoteRevision(scene.Remote, "refs/heads/develop")
	require.NoError(t, err)
	local, err := scene.Repo.GetRevision("develop")
	require.NoError(t, err)
	require.Equal(t, local, remote)
}

func TestRootCmd_ManualReleaseAndPromote(t *testing.T) {
	setupEnv(t)
	scene := testhelpers.NewScene(t, testhelpers.ReleaseSceneSetup("2.0.0"))

	_, err := execute(t, "--repository-path", scene.Dir, "--yes", "--promote", "patch")
	require.NoError(t, err)

	testhelpers.ExpectTag(t, scene.Repo, "v2.0.1", "master")
	remote, err := testhelpers.RemoteRevision(scene.Remote, "refs/heads/master")
	require.NoError(t, err)
	local, err := scene.Repo.GetRevision("develop")
	require.NoError(t, err)
	require.Equal(t, local, remote)
}

func TestRootCmd_RelativeSettingsPathRejected(t *testing.T) {
	setupEnv(t)
	path := writeSettings(t, map[string]config.ProjectRecord{
		"web": {
			Path:        "./web",
			Branches:    config.BranchSettings{Staging: "develop", Production: "master"},
			VersionFile: "VERSION",
		},
	})

	_, err := execute(t, "-f", path, "-p", "web", "--yes", "patch")
	require.ErrorIs(t, err, nverrors.ErrUnsupportedRelativePath)
}

func TestSubcommands(t *testing.T) {
	setupEnv(t)
	scene := testhelpers.NewScene(t, testhelpers.ReleaseSceneSetup("4.1.0"))

	_, err := execute(t, "current", "--repository-path", scene.Dir)
	require.NoError(t, err)

	require.NoError(t, scene.Repo.CommitFile("CHANGELOG.md", "# 4.1.0\n", "changelog"))
	require.NoError(t, scene.Repo.PushBranch("origin", "develop"))

	_, err = execute(t, "promote", "--repository-path", scene.Dir, "--yes")
	require.NoError(t, err)

	remote, err := testhelpers.RemoteRevision(scene.Remote, "refs/heads/master")
	require.NoError(t, err)
	local, err := scene.Repo.GetRevision("develop")
	require.NoError(t, err)
	require.Equal(t, local, remote)

	_, err = execute(t, "current", "extra")
	require.Error(t, err)
}
