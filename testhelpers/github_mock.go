package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// CreatedPRs stores PRs that were created
	CreatedPRs []*github.PullRequest
	// Requests stores the headers of every create request
	Requests []http.Header
	// FailStatus makes pull request creation answer with this status when non-zero
	FailStatus int
	// FailMessage is the message of the error body sent with FailStatus
	FailMessage string
	// Owner and Repo for the mock server
	Owner string
	Repo  string

	mu sync.Mutex
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		CreatedPRs: make([]*github.PullRequest, 0),
		Owner:      "owner",
		Repo:       "repo",
	}
}

// Created returns a snapshot of the created pull requests
func (c *MockGitHubServerConfig) Created() []*github.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*github.PullRequest(nil), c.CreatedPRs...)
}

// NewMockGitHubServer creates an httptest server that mocks the pull request creation endpoint
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()
	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/pulls"

	mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		config.mu.Lock()
		defer config.mu.Unlock()

		config.Requests = append(config.Requests, r.Header.Clone())

		if config.FailStatus != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(config.FailStatus)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"message": config.FailMessage,
			})
			return
		}

		var newPR github.NewPullRequest
		if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		prNumber := len(config.CreatedPRs) + 1
		pr := &github.PullRequest{
			Number:  github.Int(prNumber),
			Title:   newPR.Title,
			Body:    newPR.Body,
			Head:    &github.PullRequestBranch{Ref: newPR.Head},
			Base:    &github.PullRequestBranch{Ref: newPR.Base},
			HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", config.Owner, config.Repo, prNumber)),
		}
		config.CreatedPRs = append(config.CreatedPRs, pr)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(pr)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, fmt.Sprintf("Unhandled path: %s (method: %s)", r.URL.Path, r.Method), http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient creates a GitHub client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}
