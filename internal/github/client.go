// Package github opens release pull requests through the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"nextver.dev/nextver/internal/git"
)

// userAgent identifies nextver to the GitHub API
const userAgent = "nextver"

// tokenEnvVars are checked in order before falling back to the gh CLI
var tokenEnvVars = []string{"GITHUB_PERSONAL_ACCESS_TOKEN", "GITHUB_TOKEN"}

// Client creates pull requests in one repository
type Client struct {
	client *github.Client
	owner  string
	repo   string
}

// NewClient creates a client for the repository behind remoteURL. The token
// is read from the environment or from gh.
func NewClient(ctx context.Context, remoteURL string) (*Client, error) {
	info, err := ParseGitHubRemoteURL(remoteURL)
	if err != nil {
		return nil, err
	}

	token, err := getGitHubToken(ctx)
	if err != nil {
		return nil, err
	}

	client, err := createGitHubClient(ctx, info.Hostname, token)
	if err != nil {
		return nil, err
	}

	return NewClientFromGitHub(client, info.Owner, info.Repo), nil
}

// NewClientFromGitHub wraps an already configured go-github client
func NewClientFromGitHub(client *github.Client, owner, repo string) *Client {
	client.UserAgent = userAgent
	return &Client{client: client, owner: owner, repo: repo}
}

// OwnerRepo returns the repository owner and name
func (c *Client) OwnerRepo() (string, string) {
	return c.owner, c.repo
}

// createGitHubClient creates a GitHub client configured for the given hostname
// Supports both github.com and GitHub Enterprise instances
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if hostname != "github.com" {
		// GitHub Enterprise API endpoints
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}

		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return client, nil
}

// getGitHubToken gets a GitHub token from the environment or the gh CLI
func getGitHubToken(ctx context.Context) (string, error) {
	for _, name := range tokenEnvVars {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}

	output, err := git.RunGHCommand(ctx, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("no GitHub token: set %s or log in with gh: %w", strings.Join(tokenEnvVars, " or "), err)
	}

	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}

	return token, nil
}
