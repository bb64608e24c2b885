package version_test

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"nextver.dev/nextver/internal/errors"
	"nextver.dev/nextver/internal/version"
)

func TestRecord_ReadWrite(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "VERSION", []byte("  1.4.9\n\n"), 0o600))

	record := version.NewRecord(fs, "VERSION")
	v, err := record.Read()
	require.NoError(t, err)
	require.Equal(t, version.New(1, 4, 9), v)

	require.NoError(t, record.Write(v.Next(version.Minor)))

	data, err := afero.ReadFile(fs, "VERSION")
	require.NoError(t, err)
	require.Equal(t, "1.5.0\n", string(data))

	info, err := fs.Stat("VERSION")
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// No temp files are left behind
	entries, err := afero.ReadDir(fs, ".")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRecord_ReadMalformed(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "VERSION", []byte("1.2\n"), 0o644))

	_, err := version.NewRecord(fs, "VERSION").Read()
	require.ErrorIs(t, err, errors.ErrMalformedVersion)
}

func TestRecord_ReadMissing(t *testing.T) {
	t.Parallel()

	_, err := version.NewRecord(afero.NewMemMapFs(), "nested/VERSION").Read()
	require.Error(t, err)
	require.Contains(t, err.Error(), "nested/VERSION")
}

func TestRecord_WriteNestedPath(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("pkg", 0o755))
	record := version.NewRecord(fs, "pkg/VERSION")
	require.NoError(t, record.Write(version.New(0, 1, 0)))

	got, err := record.Read()
	require.NoError(t, err)
	require.Equal(t, version.New(0, 1, 0), got)
}
