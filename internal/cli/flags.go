package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nextver.dev/nextver/internal/config"
)

// configFlags select the project either from a settings file or from the
// repository flags
type configFlags struct {
	settings     bool
	settingsFile string
	project      string

	repositoryPath        string
	stagingBranch         string
	productionBranch      string
	releaseBranch         string
	versionFile           string
	packageMetadata       string
	packageMetadataFormat string
	remote                string
}

func (f *configFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()

	pf.BoolVar(&f.settings, "settings", false, "Read the project from a settings file (requires --settings-file and --project)")
	pf.StringVarP(&f.settingsFile, "settings-file", "f", "", fmt.Sprintf("Settings file (default $%s or %s)", config.SettingsFileEnv, config.DefaultSettingsFile))
	pf.StringVarP(&f.project, "project", "p", "", "Project key in the settings file")

	pf.StringVar(&f.repositoryPath, "repository-path", "", "Repository to release (default: current directory)")
	pf.StringVar(&f.stagingBranch, "staging-branch", config.DefaultStagingBranch, "Staging branch")
	pf.StringVar(&f.productionBranch, "production-branch", config.DefaultProductionBranch, "Production branch")
	pf.StringVar(&f.releaseBranch, "release-branch", "", "Release branch template containing "+config.VersionPlaceholder)
	pf.StringVar(&f.versionFile, "version-file", config.DefaultVersionFile, "Version file relative to the repository root")
	pf.StringVar(&f.packageMetadata, "package-metadata", "", "Package metadata file that mirrors the version")
	pf.StringVar(&f.packageMetadataFormat, "package-metadata-format", "", "Format of the package metadata file (json, ini, toml, yaml)")
	pf.StringVar(&f.remote, "remote", config.DefaultRemote, "Remote to sync with and push to")

	cmd.MarkFlagsMutuallyExclusive("project", "repository-path")
}

func (f *configFlags) settingsMode() bool {
	return f.settings || f.project != "" || f.settingsFile != ""
}

// load builds the release configuration the flags describe
func (f *configFlags) load() (*config.ReleaseConfiguration, error) {
	if f.settingsMode() {
		if f.settings && (f.project == "" || (f.settingsFile == "" && os.Getenv(config.SettingsFileEnv) == "")) {
			return nil, &usageError{msg: "--settings requires both --settings-file and --project"}
		}
		if f.project == "" {
			return nil, &usageError{msg: "--project is required when reading a settings file"}
		}
		return config.Load(config.SettingsPath(f.settingsFile), f.project)
	}

	repoPath := f.repositoryPath
	if repoPath == "" {
		repoPath = "."
	}
	// Only settings files have to be independent of the working directory
	if !filepath.IsAbs(repoPath) && repoPath[0] != '~' {
		abs, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", repoPath, err)
		}
		repoPath = abs
	}

	return config.New(config.Options{
		RepoPath:              repoPath,
		StagingBranch:         f.stagingBranch,
		ProductionBranch:      f.productionBranch,
		ReleaseBranch:         f.releaseBranch,
		VersionFile:           f.versionFile,
		PackageMetadata:       f.packageMetadata,
		PackageMetadataFormat: f.packageMetadataFormat,
		Remote:                f.remote,
	})
}
