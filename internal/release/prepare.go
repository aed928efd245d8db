package release

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dthorpe/relcraft/internal/changelog"
	"github.com/dthorpe/relcraft/internal/conventional"
	"github.com/dthorpe/relcraft/internal/gitrepo"
	"github.com/dthorpe/relcraft/internal/semver"
	"github.com/dthorpe/relcraft/internal/state"
)

// PrepareRelease classifies everything that changed since the last release
// (commits since the last tag plus standalone change notes), resolves the
// next version, folds the entries into the changelog, and writes the version
// to every versioned file — one logical step.
func PrepareRelease(run *state.RunType) (*state.RunType, error) {
	pkg, err := selectPackage(run.Config)
	if err != nil {
		return run, err
	}
	projectDir := run.Config.ProjectDir

	repo := gitrepo.New(projectDir)
	if err := repo.Validate(); err != nil {
		return run, err
	}
	tag, err := repo.LatestTag()
	if err != nil {
		return run, err
	}
	commits, err := repo.CommitsSince(tag)
	if err != nil {
		return run, err
	}
	entries := conventional.ClassifyCommits(commits)

	changeFiles, err := conventional.LoadChangeFiles(projectDir)
	if err != nil {
		return run, err
	}
	for _, file := range changeFiles {
		entries = append(entries, file.Entry)
	}
	if len(entries) == 0 {
		return run, ErrNoRelease
	}

	current, err := CurrentVersion(projectDir, pkg)
	if err != nil {
		return run, err
	}
	next, err := resolveNext(current, entries, run.PrereleaseLabel)
	if err != nil {
		return run, err
	}

	if pkg.Changelog != "" {
		if err := updateChangelog(run, filepath.Join(projectDir, pkg.Changelog), next, entries); err != nil {
			return run, err
		}
	}
	if err := writeVersion(run, pkg, next); err != nil {
		return run, err
	}
	for _, file := range changeFiles {
		if err := run.Sink.RemoveFile(file.Path); err != nil {
			return run, err
		}
	}
	run.Logger.Printf("prepared release %s for %s (%d entries)", next, pkg.Name, len(entries))
	return run.WithPreparedVersion(next.String()), nil
}

// resolveNext picks the next version. Without a pre-release label, an
// existing pre-release is promoted to stable and otherwise the
// commit-implied rule applies. With a label, a stable current version takes
// the implied bump and opens a series at 0, while an existing series freezes
// its pending bump and just advances the counter (a label switch restarts
// the counter on the same triple).
func resolveNext(current semver.Version, entries []changelog.Entry, label string) (semver.Version, error) {
	rule, ok := conventional.ImpliedRule(entries)
	if !ok {
		return semver.Version{}, ErrNoRelease
	}
	if label == "" {
		if current.IsPreRelease() {
			return semver.Bump(current, semver.Rule{Kind: semver.RuleRelease})
		}
		return semver.Bump(current, rule)
	}
	if current.IsPreRelease() {
		if current.Pre.Label == label {
			return semver.Version{
				Major: current.Major,
				Minor: current.Minor,
				Patch: current.Patch,
				Pre:   &semver.PreRelease{Label: label, Number: current.Pre.Number + 1},
			}, nil
		}
		return semver.Version{
			Major: current.Major,
			Minor: current.Minor,
			Patch: current.Patch,
			Pre:   &semver.PreRelease{Label: label},
		}, nil
	}
	next, err := semver.Bump(current, rule)
	if err != nil {
		return semver.Version{}, err
	}
	next.Pre = &semver.PreRelease{Label: label}
	return next, nil
}

// updateChangelog folds entries into the document at path under version and
// writes the result through the sink. A missing changelog starts empty.
func updateChangelog(run *state.RunType, path string, version semver.Version, entries []changelog.Entry) error {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("release: read %s: %w", path, err)
	}
	doc, err := changelog.Parse(content)
	if err != nil {
		return fmt.Errorf("%w (%s)", err, path)
	}
	updated := changelog.Add(doc, version, entries)
	return run.Sink.WriteFile(path, version.String(), updated.Render())
}
