package runtime

import (
	"context"

	"github.com/spf13/afero"

	"nextver.dev/nextver/internal/config"
	"nextver.dev/nextver/internal/git"
	"nextver.dev/nextver/internal/github"
	"nextver.dev/nextver/internal/release"
	"nextver.dev/nextver/internal/tui"
)

// Context provides access to the repository and output for commands
type Context struct {
	Context      context.Context
	Splog        *tui.Splog
	Config       *config.ReleaseConfiguration
	Repo         git.Gateway
	PullRequests release.PullRequestGateway
	FS           afero.Fs
}

// NewContext opens the configured repository. A missing GitHub token or a
// remote that is not on GitHub leaves PullRequests nil.
func NewContext(ctx context.Context, cfg *config.ReleaseConfiguration, splog *tui.Splog) (*Context, error) {
	if splog == nil {
		splog = tui.NewSplog()
	}

	gw, err := git.NewRepoGateway(cfg.RepoPath())
	if err != nil {
		return nil, err
	}

	rc := &Context{
		Context: ctx,
		Splog:   splog,
		Config:  cfg,
		Repo:    gw,
		FS:      afero.NewBasePathFs(afero.NewOsFs(), gw.Root()),
	}

	remoteURL, err := gw.RemoteURL(cfg.Remote())
	if err != nil {
		splog.Debug("No URL for remote %s: %v", cfg.Remote(), err)
		return rc, nil
	}
	client, err := github.NewClient(ctx, remoteURL)
	if err != nil {
		splog.Debug("Pull requests disabled: %v", err)
		return rc, nil
	}
	rc.PullRequests = client

	return rc, nil
}

// Orchestrator creates a release orchestrator for this context
func (c *Context) Orchestrator(opts release.Options) *release.Orchestrator {
	return release.NewOrchestrator(c.Config, c.Repo, c.PullRequests, c.FS, c.Splog, opts)
}
