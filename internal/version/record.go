package version

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Record is the canonical version file inside a repository. It holds exactly
// one line, "<major>.<minor>.<patch>\n".
type Record struct {
	fs   afero.Fs
	path string
}

// NewRecord returns the record stored at path on fs. Paths are interpreted by
// fs, so a BasePathFs rooted at the repository takes repository-relative paths.
func NewRecord(fs afero.Fs, path string) *Record {
	return &Record{fs: fs, path: path}
}

// Path returns the record path as given to NewRecord
func (r *Record) Path() string {
	return r.path
}

// Read returns the stored version. Surrounding whitespace is ignored.
func (r *Record) Read() (Version, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return Version{}, fmt.Errorf("failed to read version record %s: %w", r.path, err)
	}
	return Parse(strings.TrimSpace(string(data)))
}

// Write replaces the record content with v. The new content is written to a
// sibling temp file first and renamed over the record.
func (r *Record) Write(v Version) error {
	return WriteFileAtomic(r.fs, r.path, []byte(v.String()+"\n"))
}

// WriteFileAtomic writes data next to path and renames it into place, keeping
// the permission bits of an existing file.
func WriteFileAtomic(fs afero.Fs, path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := fs.Chmod(tmpName, mode); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
