// Package release orchestrates version bumps: it checks that a package's
// versioned files agree, resolves the next version, and routes every rewrite
// through the dry-run sink.
package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dthorpe/relcraft/internal/config"
	"github.com/dthorpe/relcraft/internal/semver"
	"github.com/dthorpe/relcraft/internal/versionfile"
)

var (
	// ErrNoPackages indicates the configuration declares no packages.
	ErrNoPackages = errors.New("release: no packages are defined")
	// ErrTooManyPackages indicates more than one package, which bump steps
	// do not support yet.
	ErrTooManyPackages = errors.New("release: too many packages defined")
	// ErrNoCurrentVersion indicates the package's current version could not
	// be determined.
	ErrNoCurrentVersion = errors.New("release: could not determine the current version of the package")
	// ErrNoRelease indicates no classified change implies a version bump.
	ErrNoRelease = errors.New("release: no packages are ready to release")
)

// InconsistentVersionsError reports two versioned files in one package that
// disagree about the current version. It is never auto-reconciled.
type InconsistentVersionsError struct {
	First  string
	Second string
}

func (e *InconsistentVersionsError) Error() string {
	return fmt.Sprintf("release: versioned files within the same package must have the same version, found %s which does not match %s", e.Second, e.First)
}

// selectPackage returns the single configured package a bump step operates
// on.
func selectPackage(cfg *config.Config) (config.Package, error) {
	switch len(cfg.Packages) {
	case 0:
		return config.Package{}, ErrNoPackages
	case 1:
		return cfg.Packages[0], nil
	default:
		return config.Package{}, ErrTooManyPackages
	}
}

// CurrentVersion reads the version from every versioned file in pkg and
// returns it once all files agree. Disagreement is a hard error naming both
// values; an empty file set cannot produce a version at all.
func CurrentVersion(projectDir string, pkg config.Package) (semver.Version, error) {
	if len(pkg.VersionedFiles) == 0 {
		return semver.Version{}, ErrNoCurrentVersion
	}
	var current string
	for _, rel := range pkg.VersionedFiles {
		path := filepath.Join(projectDir, rel)
		format, err := versionfile.Default.FormatFor(path)
		if err != nil {
			return semver.Version{}, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return semver.Version{}, fmt.Errorf("release: read %s: %w", path, err)
		}
		version, err := format.GetVersion(content, path)
		if err != nil {
			return semver.Version{}, err
		}
		if current == "" {
			current = version
		} else if version != current {
			return semver.Version{}, &InconsistentVersionsError{First: current, Second: version}
		}
	}
	parsed, err := semver.Parse(current)
	if err != nil {
		return semver.Version{}, err
	}
	return parsed, nil
}
