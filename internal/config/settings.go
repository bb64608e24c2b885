package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// DefaultSettingsFile is the settings file looked up when none is given
const DefaultSettingsFile = "versioning.json"

// SettingsFileEnv overrides DefaultSettingsFile
const SettingsFileEnv = "NEXTVER_SETTINGS"

// Settings is the parsed settings file
type Settings struct {
	Projects map[string]ProjectRecord `json:"projects"`
}

// ProjectRecord is one project entry of the settings file
type ProjectRecord struct {
	Path                  string         `json:"path"`
	Branches              BranchSettings `json:"branches"`
	VersionFile           string         `json:"version_file"`
	PackageMetadata       string         `json:"package_metadata,omitempty"`
	PackageMetadataFormat string         `json:"package_metadata_format,omitempty"`
	Remote                string         `json:"remote,omitempty"`
}

// BranchSettings names the branches a project releases through
type BranchSettings struct {
	Staging    string `json:"staging"`
	Production string `json:"production"`
	Release    string `json:"release,omitempty"`
}

// SettingsPath returns the settings file to read: the explicit path if set,
// then $NEXTVER_SETTINGS, then DefaultSettingsFile.
func SettingsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(SettingsFileEnv); env != "" {
		return env
	}
	return DefaultSettingsFile
}

// LoadSettings reads and parses a settings file
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings parses settings file content
func ParseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if settings.Projects == nil {
		settings.Projects = map[string]ProjectRecord{}
	}
	return &settings, nil
}

// ProjectKeys returns the configured project keys in sorted order
func (s *Settings) ProjectKeys() []string {
	keys := make([]string, 0, len(s.Projects))
	for k := range s.Projects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads the settings file and builds the configuration for one project
func Load(settingsPath, project string) (*ReleaseConfiguration, error) {
	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	return FromProjectRecord(settings.Projects, project)
}
