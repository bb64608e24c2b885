package actions

import (
	"nextver.dev/nextver/internal/metadata"
	"nextver.dev/nextver/internal/release"
	"nextver.dev/nextver/internal/runtime"
	"nextver.dev/nextver/internal/version"
)

// CurrentAction prints the version in the version record of the checked out
// branch and warns when the package metadata disagrees
func CurrentAction(ctx *runtime.Context) (version.Version, error) {
	splog := ctx.Splog
	cfg := ctx.Config

	current, err := ctx.Orchestrator(release.Options{}).CurrentVersion()
	if err != nil {
		return version.Version{}, err
	}
	splog.Info("%s", current)

	if cfg.HasPackageMetadata() {
		mirror, err := metadata.NewMirror(ctx.FS, cfg.PackageMetadata(), cfg.MetadataFormat())
		if err != nil {
			splog.Warn("%v", err)
			return current, nil
		}
		mirrored, err := mirror.Version()
		switch {
		case err != nil:
			splog.Warn("Could not read the version from %s: %v", mirror.Path(), err)
		case mirrored != current.String():
			splog.Warn("%s has version %s, %s has %s.", mirror.Path(), mirrored, cfg.VersionFile(), current)
		}
	}

	return current, nil
}
