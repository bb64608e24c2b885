package release

import (
	"fmt"

	"nextver.dev/nextver/internal/version"
)

// CommitMessage is the message of the version bump commit
func CommitMessage(level version.BumpLevel, from, to version.Version) string {
	return fmt.Sprintf("automated %s-level version bump from %s to %s", level, from, to)
}

// TagMessage is the annotation of the release tag
func TagMessage(v version.Version) string {
	return fmt.Sprintf("Release %s", v)
}

// PullRequestTitle is the title of the release pull request
func PullRequestTitle(v version.Version) string {
	return fmt.Sprintf("Release %s", v)
}

// PullRequestBody is the description of the release pull request
func PullRequestBody(level version.BumpLevel, from, to version.Version) string {
	return fmt.Sprintf("Automated %s-level version bump from %s to %s.", level, from, to)
}
