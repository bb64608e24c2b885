package version_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nextver.dev/nextver/internal/errors"
	"nextver.dev/nextver/internal/version"
)

func TestNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		from  version.Version
		level version.BumpLevel
		want  version.Version
	}{
		{"minor resets patch", version.New(1, 4, 9), version.Minor, version.New(1, 5, 0)},
		{"patch after major release", version.New(2, 0, 0), version.Patch, version.New(2, 0, 1)},
		{"major resets minor and patch", version.New(0, 9, 3), version.Major, version.New(1, 0, 0)},
		{"patch from zero", version.New(0, 0, 0), version.Patch, version.New(0, 0, 1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := version.Next(tt.from, tt.level)
			require.Equal(t, tt.want, got)
			require.True(t, tt.from.Less(got), "next version must be strictly greater")
		})
	}
}

func TestNext_UnknownLevelIsIdentity(t *testing.T) {
	t.Parallel()
	v := version.New(3, 2, 1)
	require.Equal(t, v, version.Next(v, version.BumpLevel(42)))
}

func TestNext_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()
	v := version.New(1, 2, 3)
	_ = v.Next(version.Major)
	require.Equal(t, "1.2.3", v.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trips through String", func(t *testing.T) {
		t.Parallel()
		for _, v := range []version.Version{
			version.New(0, 0, 0),
			version.New(0, 0, 1),
			version.New(1, 0, 0),
			version.New(10, 20, 30),
			version.New(1, 4, 10),
			version.New(2147483647, 65536, 999999999),
		} {
			parsed, err := version.Parse(v.String())
			require.NoError(t, err, v.String())
			require.Equal(t, v, parsed)
		}
	})

	t.Run("accepts three integers", func(t *testing.T) {
		t.Parallel()
		v, err := version.Parse("10.0.27")
		require.NoError(t, err)
		require.Equal(t, version.New(10, 0, 27), v)
		require.Equal(t, "10.0.27", v.String())
		require.Equal(t, "v10.0.27", v.Tag())
	})

	for _, input := range []string{"1.2", "1.2.x", "", "1.2.3.4", "1..3", "-1.2.3", "1.2.3-rc1", " 1.2.3"} {
		input := input
		t.Run("rejects "+input, func(t *testing.T) {
			t.Parallel()
			_, err := version.Parse(input)
			require.Error(t, err)
			require.ErrorIs(t, err, errors.ErrMalformedVersion)
			require.ErrorIs(t, err, errors.ErrConfig)
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	require.Equal(t, 0, version.New(1, 2, 3).Compare(version.New(1, 2, 3)))
	require.Equal(t, -1, version.New(1, 2, 3).Compare(version.New(1, 10, 0)))
	require.Equal(t, 1, version.New(2, 0, 0).Compare(version.New(1, 99, 99)))
}

func TestParseBumpLevel(t *testing.T) {
	t.Parallel()

	for _, l := range version.BumpLevels() {
		got, err := version.ParseBumpLevel(l.String())
		require.NoError(t, err)
		require.Equal(t, l, got)
	}

	got, err := version.ParseBumpLevel("MINOR")
	require.NoError(t, err)
	require.Equal(t, version.Minor, got)

	_, err = version.ParseBumpLevel("micro")
	require.Error(t, err)
}
