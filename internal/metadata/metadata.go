// Package metadata keeps a package manifest's version field in step with the
// version record. Each supported file format has its own Patcher.
package metadata

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"nextver.dev/nextver/internal/errors"
	"nextver.dev/nextver/internal/version"
)

// Format identifies how a metadata file is structured
type Format string

const (
	// FormatJSON covers package.json and similar manifests
	FormatJSON Format = "json"
	// FormatINI covers setup.cfg
	FormatINI Format = "ini"
	// FormatTOML covers pyproject.toml and Cargo.toml
	FormatTOML Format = "toml"
	// FormatYAML covers Chart.yaml and pubspec.yaml
	FormatYAML Format = "yaml"
)

// Formats returns the supported formats
func Formats() []Format {
	return []Format{FormatJSON, FormatINI, FormatTOML, FormatYAML}
}

var formatAliases = map[string]Format{
	"json": FormatJSON,
	"ini":  FormatINI,
	"cfg":  FormatINI,
	"toml": FormatTOML,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
}

// ParseFormat resolves an explicit format tag
func ParseFormat(tag string) (Format, bool) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(tag))]
	return f, ok
}

// DetectFormat guesses the format from the file extension
func DetectFormat(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	return ParseFormat(ext)
}

// Patcher reads and rewrites the top-level version field of one format.
// Everything else in the file is kept, modulo the format's standard formatting.
type Patcher interface {
	Format() Format
	Version(content []byte) (string, error)
	SetVersion(content []byte, v version.Version) ([]byte, error)
}

// PatcherFor returns the patcher for a format
func PatcherFor(f Format) (Patcher, bool) {
	switch f {
	case FormatJSON:
		return JSONPatcher{}, true
	case FormatINI:
		return INIPatcher{}, true
	case FormatTOML:
		return TOMLPatcher{}, true
	case FormatYAML:
		return YAMLPatcher{}, true
	default:
		return nil, false
	}
}

// Mirror is a metadata file whose version follows the version record
type Mirror struct {
	fs      afero.Fs
	path    string
	patcher Patcher
}

// NewMirror resolves the patcher for path. An empty tag detects the format
// from the extension.
func NewMirror(fs afero.Fs, path string, tag string) (*Mirror, error) {
	var (
		format Format
		ok     bool
	)
	if tag != "" {
		format, ok = ParseFormat(tag)
	} else {
		format, ok = DetectFormat(path)
	}
	if !ok {
		return nil, &errors.UnsupportedMetadataFormatError{Path: path, Format: tag}
	}

	patcher, ok := PatcherFor(format)
	if !ok {
		return nil, &errors.UnsupportedMetadataFormatError{Path: path, Format: string(format)}
	}
	return &Mirror{fs: fs, path: path, patcher: patcher}, nil
}

// Path returns the mirror path
func (m *Mirror) Path() string {
	return m.path
}

// Format returns the resolved format
func (m *Mirror) Format() Format {
	return m.patcher.Format()
}

// Version returns the version currently stored in the mirror
func (m *Mirror) Version() (string, error) {
	content, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", m.path, err)
	}
	return m.patcher.Version(content)
}

// Update overwrites the mirror's version field with v
func (m *Mirror) Update(v version.Version) error {
	content, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", m.path, err)
	}

	updated, err := m.patcher.SetVersion(content, v)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", m.path, err)
	}

	return version.WriteFileAtomic(m.fs, m.path, updated)
}
