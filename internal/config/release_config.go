package config

import (
	"os"
	"path/filepath"
	"strings"

	"nextver.dev/nextver/internal/errors"
)

const (
	// DefaultStagingBranch is used in manual mode when no staging branch is given
	DefaultStagingBranch = "develop"
	// DefaultProductionBranch is used in manual mode when no production branch is given
	DefaultProductionBranch = "master"
	// DefaultVersionFile is used in manual mode when no version file is given
	DefaultVersionFile = "VERSION"
	// DefaultRemote is the remote releases are pushed to
	DefaultRemote = "origin"
)

// ReleaseConfiguration is the validated configuration of one release run.
// It cannot be changed after construction.
type ReleaseConfiguration struct {
	project          string
	repoPath         string
	stagingBranch    string
	productionBranch string
	releaseTemplate  ReleaseBranchTemplate
	versionFile      string
	packageMetadata  string
	metadataFormat   string
	remote           string
}

// Options are the raw values a ReleaseConfiguration is built from
type Options struct {
	RepoPath              string
	StagingBranch         string
	ProductionBranch      string
	ReleaseBranch         string
	VersionFile           string
	PackageMetadata       string
	PackageMetadataFormat string
	Remote                string
}

// FromProjectRecord builds the configuration for project from the settings records
func FromProjectRecord(records map[string]ProjectRecord, project string) (*ReleaseConfiguration, error) {
	record, ok := records[project]
	if !ok {
		return nil, errors.NewUnknownProjectError(project)
	}

	return build(project, Options{
		RepoPath:              record.Path,
		StagingBranch:         record.Branches.Staging,
		ProductionBranch:      record.Branches.Production,
		ReleaseBranch:         record.Branches.Release,
		VersionFile:           record.VersionFile,
		PackageMetadata:       record.PackageMetadata,
		PackageMetadataFormat: record.PackageMetadataFormat,
		Remote:                record.Remote,
	})
}

// New builds a configuration from manual options. Empty branch names and an
// empty version file fall back to the defaults.
func New(opts Options) (*ReleaseConfiguration, error) {
	if opts.StagingBranch == "" {
		opts.StagingBranch = DefaultStagingBranch
	}
	if opts.ProductionBranch == "" {
		opts.ProductionBranch = DefaultProductionBranch
	}
	if opts.VersionFile == "" {
		opts.VersionFile = DefaultVersionFile
	}
	return build("", opts)
}

func build(project string, opts Options) (*ReleaseConfiguration, error) {
	if opts.RepoPath == "" {
		return nil, errors.NewMissingFieldError(project, "path")
	}
	if opts.StagingBranch == "" {
		return nil, errors.NewMissingFieldError(project, "branches.staging")
	}
	if opts.ProductionBranch == "" {
		return nil, errors.NewMissingFieldError(project, "branches.production")
	}
	if opts.VersionFile == "" {
		return nil, errors.NewMissingFieldError(project, "version_file")
	}

	repoPath, err := resolveRepoPath(project, opts.RepoPath)
	if err != nil {
		return nil, err
	}

	for _, branch := range []struct{ field, name string }{
		{"branches.staging", opts.StagingBranch},
		{"branches.production", opts.ProductionBranch},
	} {
		if !IsValidBranchName(branch.name) {
			return nil, errors.NewInvalidFieldError(project, branch.field, branch.name)
		}
	}

	template, err := NewReleaseBranchTemplate(opts.ReleaseBranch)
	if err != nil {
		return nil, errors.NewInvalidFieldError(project, "branches.release", opts.ReleaseBranch)
	}

	versionFile, err := repoRelative(project, "version_file", opts.VersionFile)
	if err != nil {
		return nil, err
	}

	var packageMetadata string
	if opts.PackageMetadata != "" {
		packageMetadata, err = repoRelative(project, "package_metadata", opts.PackageMetadata)
		if err != nil {
			return nil, err
		}
	}

	remote := opts.Remote
	if remote == "" {
		remote = DefaultRemote
	}

	return &ReleaseConfiguration{
		project:          project,
		repoPath:         repoPath,
		stagingBranch:    opts.StagingBranch,
		productionBranch: opts.ProductionBranch,
		releaseTemplate:  template,
		versionFile:      versionFile,
		packageMetadata:  packageMetadata,
		metadataFormat:   strings.ToLower(strings.TrimSpace(opts.PackageMetadataFormat)),
		remote:           remote,
	}, nil
}

// resolveRepoPath expands a leading "~" segment to the home directory and
// rejects paths that would depend on the working directory.
func resolveRepoPath(project, path string) (string, error) {
	if strings.HasPrefix(path, ".") {
		return "", errors.NewUnsupportedRelativePathError(project, path)
	}

	segments := strings.Split(path, string(filepath.Separator))
	if segments[0] == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.NewInvalidFieldError(project, "path", path)
		}
		segments[0] = home
		path = filepath.Join(segments...)
	}

	if !filepath.IsAbs(path) {
		return "", errors.NewUnsupportedRelativePathError(project, path)
	}
	return filepath.Clean(path), nil
}

// repoRelative validates a path that must stay inside the repository
func repoRelative(project, field, path string) (string, error) {
	if filepath.IsAbs(path) {
		return "", errors.NewInvalidFieldError(project, field, path)
	}
	cleaned := filepath.Clean(path)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errors.NewInvalidFieldError(project, field, path)
	}
	return cleaned, nil
}

// Project returns the settings key the configuration was built from, empty in manual mode
func (c *ReleaseConfiguration) Project() string {
	return c.project
}

// RepoPath returns the absolute repository root
func (c *ReleaseConfiguration) RepoPath() string {
	return c.repoPath
}

// StagingBranch returns the branch releases are cut from
func (c *ReleaseConfiguration) StagingBranch() string {
	return c.stagingBranch
}

// ProductionBranch returns the branch deployed to production
func (c *ReleaseConfiguration) ProductionBranch() string {
	return c.productionBranch
}

// ReleaseBranchTemplate returns the release branch template, empty when releases go to the active branch
func (c *ReleaseConfiguration) ReleaseBranchTemplate() ReleaseBranchTemplate {
	return c.releaseTemplate
}

// HasReleaseBranch reports whether a release branch is created for each release
func (c *ReleaseConfiguration) HasReleaseBranch() bool {
	return !c.releaseTemplate.IsEmpty()
}

// ReleaseBranchName renders the release branch for a version string
func (c *ReleaseConfiguration) ReleaseBranchName(version string) string {
	return c.releaseTemplate.Render(version)
}

// VersionFile returns the version record path relative to the repository root
func (c *ReleaseConfiguration) VersionFile() string {
	return c.versionFile
}

// PackageMetadata returns the metadata mirror path relative to the repository root, or empty
func (c *ReleaseConfiguration) PackageMetadata() string {
	return c.packageMetadata
}

// HasPackageMetadata reports whether a metadata mirror is configured
func (c *ReleaseConfiguration) HasPackageMetadata() bool {
	return c.packageMetadata != ""
}

// MetadataFormat returns the explicit metadata format tag, empty to detect from the file name
func (c *ReleaseConfiguration) MetadataFormat() string {
	return c.metadataFormat
}

// Remote returns the remote name releases are pushed to
func (c *ReleaseConfiguration) Remote() string {
	return c.remote
}
