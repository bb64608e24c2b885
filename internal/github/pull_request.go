package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v62/github"

	nverrors "nextver.dev/nextver/internal/errors"
)

// Create opens a pull request from head into base and returns its web URL.
// A refusal by the API is returned as PullRequestError carrying the status
// code and the message GitHub sent.
func (c *Client) Create(ctx context.Context, title, body, head, base string) (string, error) {
	pr := &github.NewPullRequest{
		Title: github.String(title),
		Head:  github.String(head),
		Base:  github.String(base),
	}
	if body != "" {
		pr.Body = github.String(body)
	}

	created, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, pr)
	if err != nil {
		return "", toPullRequestError(err)
	}

	return created.GetHTMLURL(), nil
}

func toPullRequestError(err error) error {
	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) {
		return &nverrors.PullRequestError{Err: err}
	}

	status := 0
	if errResp.Response != nil {
		status = errResp.Response.StatusCode
	}

	details := []string{}
	if errResp.Message != "" {
		details = append(details, errResp.Message)
	}
	for _, e := range errResp.Errors {
		if e.Message != "" {
			details = append(details, e.Message)
		} else if e.Code != "" {
			details = append(details, fmt.Sprintf("%s %s", e.Field, e.Code))
		}
	}

	return &nverrors.PullRequestError{
		StatusCode: status,
		Body:       strings.Join(details, ": "),
		Err:        err,
	}
}
