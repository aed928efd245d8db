package release

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dthorpe/relcraft/internal/config"
	"github.com/dthorpe/relcraft/internal/semver"
	"github.com/dthorpe/relcraft/internal/state"
	"github.com/dthorpe/relcraft/internal/versionfile"
)

// BumpVersion applies rule to the configured package: consistency check,
// resolver, then one rewrite per versioned file through the sink. Returns the
// context updated with the prepared version.
func BumpVersion(run *state.RunType, rule semver.Rule) (*state.RunType, error) {
	pkg, err := selectPackage(run.Config)
	if err != nil {
		return run, err
	}
	current, err := CurrentVersion(run.Config.ProjectDir, pkg)
	if err != nil {
		return run, err
	}
	next, err := semver.Bump(current, rule)
	if err != nil {
		return run, err
	}
	if err := writeVersion(run, pkg, next); err != nil {
		return run, err
	}
	run.Logger.Printf("bumped %s from %s to %s", pkg.Name, current, next)
	return run.WithPreparedVersion(next.String()), nil
}

// writeVersion rewrites every versioned file in pkg to carry version. The
// consistency check has already passed, so a mid-loop failure can only come
// from IO or a serialization bug.
func writeVersion(run *state.RunType, pkg config.Package, version semver.Version) error {
	for _, rel := range pkg.VersionedFiles {
		path := filepath.Join(run.Config.ProjectDir, rel)
		format, err := versionfile.Default.FormatFor(path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("release: read %s: %w", path, err)
		}
		if _, err := format.SetVersion(run.Sink, content, version.String(), path); err != nil {
			return err
		}
	}
	return nil
}
