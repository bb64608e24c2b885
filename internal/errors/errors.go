// Package errors provides sentinel errors and custom error types for the nextver application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration problems. All of them are detected before
// the repository is touched.
var (
	// ErrConfig matches every configuration error
	ErrConfig = errors.New("configuration error")

	// ErrUnknownProject indicates the requested project key is not in the settings
	ErrUnknownProject = errors.New("unknown project")

	// ErrMissingField indicates a required settings field is absent
	ErrMissingField = errors.New("missing field")

	// ErrInvalidField indicates a settings field is present but unusable
	ErrInvalidField = errors.New("invalid field")

	// ErrUnsupportedRelativePath indicates a repository path that depends on the invocation directory
	ErrUnsupportedRelativePath = errors.New("relative repository paths are not supported")

	// ErrMalformedVersion indicates a version string that is not major.minor.patch
	ErrMalformedVersion = errors.New("malformed version")
)

// Sentinel errors for repository and release conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrDirtyRepository indicates staged or unstaged changes in the working tree
	ErrDirtyRepository = errors.New("repository has uncommitted changes")

	// ErrBranchAlreadyExists indicates an attempt to create a branch that exists
	ErrBranchAlreadyExists = errors.New("branch already exists")

	// ErrTagAlreadyExists indicates the release tag for the computed version exists
	ErrTagAlreadyExists = errors.New("tag already exists")

	// ErrSyncConflict indicates a branch could not be fast-forwarded to its remote
	ErrSyncConflict = errors.New("sync conflict")

	// ErrMergeConflict indicates a merge stopped on conflicts
	ErrMergeConflict = errors.New("merge conflict")

	// ErrPushRejected indicates the remote refused a push
	ErrPushRejected = errors.New("push rejected")

	// ErrPullRequestFailed indicates the hosting API did not create a pull request
	ErrPullRequestFailed = errors.New("pull request creation failed")

	// ErrUnsupportedMetadataFormat indicates a package metadata file nextver cannot rewrite
	ErrUnsupportedMetadataFormat = errors.New("unsupported metadata format")
)

// ConfigError represents a configuration problem. Kind is one of the
// configuration sentinels above.
type ConfigError struct {
	Kind    error
	Project string
	Field   string
	Value   string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Project != "" {
		fmt.Fprintf(&b, " (project %q)", e.Project)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ": %q", e.Value)
	}
	return b.String()
}

// Is returns true if the target is ErrConfig or the specific kind
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig || target == e.Kind
}

// NewUnknownProjectError creates a ConfigError for a missing project key
func NewUnknownProjectError(project string) *ConfigError {
	return &ConfigError{Kind: ErrUnknownProject, Project: project}
}

// NewMissingFieldError creates a ConfigError for an absent required field
func NewMissingFieldError(project, field string) *ConfigError {
	return &ConfigError{Kind: ErrMissingField, Project: project, Field: field}
}

// NewInvalidFieldError creates a ConfigError for an unusable field value
func NewInvalidFieldError(project, field, value string) *ConfigError {
	return &ConfigError{Kind: ErrInvalidField, Project: project, Field: field, Value: value}
}

// NewUnsupportedRelativePathError creates a ConfigError for a relative repository path
func NewUnsupportedRelativePathError(project, path string) *ConfigError {
	return &ConfigError{Kind: ErrUnsupportedRelativePath, Project: project, Field: "path", Value: path}
}

// NewMalformedVersionError creates a ConfigError for an unparsable version string
func NewMalformedVersionError(input string) *ConfigError {
	return &ConfigError{Kind: ErrMalformedVersion, Value: input}
}

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// DirtyRepositoryError reports which of the two diffs was not empty
type DirtyRepositoryError struct {
	HasStaged   bool
	HasUnstaged bool
}

func (e *DirtyRepositoryError) Error() string {
	switch {
	case e.HasStaged && e.HasUnstaged:
		return "there are staged and unstaged changes; commit or discard them first"
	case e.HasStaged:
		return "there are still changes to be committed; either commit or unstage and discard them first"
	default:
		return "there are still changes not staged for commit; either commit or discard them first"
	}
}

// Is returns true if the target error is ErrDirtyRepository
func (e *DirtyRepositoryError) Is(target error) bool {
	return target == ErrDirtyRepository
}

// BranchAlreadyExistsError represents an attempt to create an existing branch
type BranchAlreadyExistsError struct {
	BranchName string
}

func (e *BranchAlreadyExistsError) Error() string {
	return fmt.Sprintf("branch %s already exists", e.BranchName)
}

// Is returns true if the target error is ErrBranchAlreadyExists
func (e *BranchAlreadyExistsError) Is(target error) bool {
	return target == ErrBranchAlreadyExists
}

// NewBranchAlreadyExistsError creates a new BranchAlreadyExistsError
func NewBranchAlreadyExistsError(branchName string) *BranchAlreadyExistsError {
	return &BranchAlreadyExistsError{BranchName: branchName}
}

// TagAlreadyExistsError represents a release tag that was created before
type TagAlreadyExistsError struct {
	Tag string
}

func (e *TagAlreadyExistsError) Error() string {
	return fmt.Sprintf("tag %s already exists; was this version released before?", e.Tag)
}

// Is returns true if the target error is ErrTagAlreadyExists
func (e *TagAlreadyExistsError) Is(target error) bool {
	return target == ErrTagAlreadyExists
}

// SyncConflictError represents a branch that cannot be fast-forwarded to its remote
type SyncConflictError struct {
	BranchName string
	Message    string
}

func (e *SyncConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("branch %s cannot be fast-forwarded: %s", e.BranchName, e.Message)
	}
	return fmt.Sprintf("branch %s cannot be fast-forwarded", e.BranchName)
}

// Is returns true if the target error is ErrSyncConflict
func (e *SyncConflictError) Is(target error) bool {
	return target == ErrSyncConflict
}

// NewSyncConflictError creates a new SyncConflictError
func NewSyncConflictError(branchName string, message string) *SyncConflictError {
	return &SyncConflictError{
		BranchName: branchName,
		Message:    message,
	}
}

// MergeConflictError represents a merge of Other into BranchName that stopped on conflicts
type MergeConflictError struct {
	BranchName string
	Other      string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merging %s into %s stopped on conflicts", e.Other, e.BranchName)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// PushRejectedError represents a push the remote did not accept
type PushRejectedError struct {
	Remote  string
	Refspec string
	Err     error
}

func (e *PushRejectedError) Error() string {
	return fmt.Sprintf("push of %s to %s was rejected: %v", e.Refspec, e.Remote, e.Err)
}

// Is returns true if the target error is ErrPushRejected
func (e *PushRejectedError) Is(target error) bool {
	return target == ErrPushRejected
}

func (e *PushRejectedError) Unwrap() error {
	return e.Err
}

// PullRequestError represents a non-success answer from the hosting API
type PullRequestError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *PullRequestError) Error() string {
	msg := "pull request creation failed"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrPullRequestFailed
func (e *PullRequestError) Is(target error) bool {
	return target == ErrPullRequestFailed
}

func (e *PullRequestError) Unwrap() error {
	return e.Err
}

// UnsupportedMetadataFormatError represents a metadata file without a rewrite strategy
type UnsupportedMetadataFormatError struct {
	Path   string
	Format string
}

func (e *UnsupportedMetadataFormatError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("unsupported metadata format %q for %s", e.Format, e.Path)
	}
	return fmt.Sprintf("cannot determine metadata format of %s", e.Path)
}

// Is returns true if the target error is ErrUnsupportedMetadataFormat
func (e *UnsupportedMetadataFormatError) Is(target error) bool {
	return target == ErrUnsupportedMetadataFormat
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
