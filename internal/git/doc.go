// Package git provides the repository operations a release needs.
//
// Queries (active branch, branch and tag existence, remote URLs) go through
// go-git. Mutations (checkout, fetch, merge, add, commit, tag, push) shell
// out to the git binary so hooks, credential helpers and user configuration
// behave exactly as on the command line.
//
// This package should be the only place where git commands are executed.
package git
