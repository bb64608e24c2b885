package release

import (
	"sort"

	"nextver.dev/nextver/internal/version"
)

// Record is the state of one release run. It lives only as long as the run.
type Record struct {
	Level        version.BumpLevel
	Original     version.Version
	Next         version.Version
	PriorBranch  string
	TargetBranch string

	staged map[string]struct{}
}

func newRecord(level version.BumpLevel) *Record {
	return &Record{Level: level, staged: map[string]struct{}{}}
}

// MarkStaged adds path to the set committed by this run
func (r *Record) MarkStaged(path string) {
	if r.staged == nil {
		r.staged = map[string]struct{}{}
	}
	r.staged[path] = struct{}{}
}

// StagedPaths returns the staged set in a stable order
func (r *Record) StagedPaths() []string {
	paths := make([]string, 0, len(r.staged))
	for p := range r.staged {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// clearStaged empties the set once the commit has consumed it
func (r *Record) clearStaged() {
	r.staged = map[string]struct{}{}
}
