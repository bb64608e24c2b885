package config

import (
	"fmt"
	"regexp"
	"strings"
)

// VersionPlaceholder is replaced by the released version in a release branch template
const VersionPlaceholder = "{version}"

// maxBranchNameByteLength leaves room under git's 256 byte ref limit for the refs/heads/ prefix
const maxBranchNameByteLength = 234

var (
	// invalidBranchCharRegex matches characters that are not valid in branch names
	// Valid characters: letters, numbers, -, _, /, .
	invalidBranchCharRegex = regexp.MustCompile(`[^-_/.a-zA-Z0-9]`)

	// placeholderRegex matches any {placeholder}
	placeholderRegex = regexp.MustCompile(`\{[^}]*\}`)
)

// ReleaseBranchTemplate is a branch name with a {version} placeholder, e.g. "release/{version}"
type ReleaseBranchTemplate string

// NewReleaseBranchTemplate validates a template. The empty template is valid
// and means no release branch is created.
func NewReleaseBranchTemplate(template string) (ReleaseBranchTemplate, error) {
	if template == "" {
		return "", nil
	}

	found := placeholderRegex.FindAllString(template, -1)
	hasVersion := false
	for _, p := range found {
		if p != VersionPlaceholder {
			return "", fmt.Errorf("release branch template has unknown placeholder %s", p)
		}
		hasVersion = true
	}
	if !hasVersion {
		return "", fmt.Errorf("release branch template must contain %s placeholder", VersionPlaceholder)
	}

	t := ReleaseBranchTemplate(template)
	if sample := t.Render("0.0.0"); !IsValidBranchName(sample) {
		return "", fmt.Errorf("release branch template renders an invalid branch name %q", sample)
	}
	return t, nil
}

// String returns the raw template
func (t ReleaseBranchTemplate) String() string {
	return string(t)
}

// IsEmpty reports whether no template is configured
func (t ReleaseBranchTemplate) IsEmpty() bool {
	return t == ""
}

// Render substitutes every {version} placeholder
func (t ReleaseBranchTemplate) Render(version string) string {
	return strings.ReplaceAll(string(t), VersionPlaceholder, version)
}

// IsValidBranchName reports whether name is usable as a branch name without sanitizing
func IsValidBranchName(name string) bool {
	if name == "" || len(name) > maxBranchNameByteLength {
		return false
	}
	if invalidBranchCharRegex.MatchString(name) {
		return false
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, "/") || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return false
	}
	return !strings.Contains(name, "..") && !strings.Contains(name, "//")
}
