// Package version holds the semantic version value, bump arithmetic and the
// on-disk version record.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"nextver.dev/nextver/internal/errors"
)

// BumpLevel selects which component of a version is incremented
type BumpLevel int

const (
	// Major resets minor and patch
	Major BumpLevel = iota
	// Minor resets patch
	Minor
	// Patch increments patch only
	Patch
)

// String returns the lowercase level name used on the command line and in commit messages
func (l BumpLevel) String() string {
	switch l {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return fmt.Sprintf("BumpLevel(%d)", int(l))
	}
}

// BumpLevels returns all levels in order
func BumpLevels() []BumpLevel {
	return []BumpLevel{Major, Minor, Patch}
}

// ParseBumpLevel parses "major", "minor" or "patch" (case-insensitive)
func ParseBumpLevel(s string) (BumpLevel, error) {
	for _, l := range BumpLevels() {
		if strings.EqualFold(strings.TrimSpace(s), l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("invalid bump level %q: must be one of major, minor, patch", s)
}

// Version is a released version number. Values are never mutated; Next returns a new one.
type Version struct {
	Major int
	Minor int
	Patch int
}

// New creates a version from its components
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses "major.minor.patch". Anything else, including pre-release or
// build suffixes, is a malformed version.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, errors.NewMalformedVersionError(s)
	}

	var nums [3]int
	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return Version{}, errors.NewMalformedVersionError(s)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, errors.NewMalformedVersionError(s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Next returns the version that follows v at the given level. Unknown levels return v unchanged.
func Next(v Version, level BumpLevel) Version {
	switch level {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// Next is shorthand for Next(v, level)
func (v Version) Next(level BumpLevel) Version {
	return Next(v, level)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the git tag name for the version
func (v Version) Tag() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or 1 ordering versions lexicographically by component
func (v Version) Compare(other Version) int {
	for _, d := range [3]int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

// Less reports whether v sorts before other
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}
