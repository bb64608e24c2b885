package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	Remote string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// Cleanup is registered with t.Cleanup().
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	// Resolve symlinks so paths match what git reports (macOS /var -> /private/var)
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	dir := filepath.Join(tmpDir, "repo")

	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  dir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	if os.Getenv("DEBUG") != "" {
		t.Logf("scene repository: %s", dir)
	}

	return scene
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CommitFile("README.md", "# test\n", "initial commit")
}

// ReleaseSceneSetup returns a setup that commits a VERSION file holding
// version on main, creates develop and master from it, pushes both to a bare
// origin remote and leaves develop checked out.
func ReleaseSceneSetup(version string) SceneSetup {
	return func(scene *Scene) error {
		if err := scene.Repo.CommitFile("VERSION", version+"\n", "initial commit"); err != nil {
			return err
		}
		for _, branch := range []string{"develop", "master"} {
			if err := scene.Repo.CreateBranch(branch); err != nil {
				return err
			}
		}

		remote, err := scene.Repo.CreateBareRemote("origin")
		if err != nil {
			return err
		}
		scene.Remote = remote

		for _, branch := range []string{"develop", "master"} {
			if err := scene.Repo.PushBranch("origin", branch); err != nil {
				return err
			}
		}
		return scene.Repo.CheckoutBranch("develop")
	}
}
