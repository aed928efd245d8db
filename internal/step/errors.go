package step

import (
	"errors"
	"fmt"

	"github.com/dthorpe/relcraft/internal/changelog"
	"github.com/dthorpe/relcraft/internal/config"
	"github.com/dthorpe/relcraft/internal/conventional"
	"github.com/dthorpe/relcraft/internal/gitrepo"
	"github.com/dthorpe/relcraft/internal/release"
	"github.com/dthorpe/relcraft/internal/semver"
	"github.com/dthorpe/relcraft/internal/versionfile"
)

// Error is the terminal diagnostic for a failed workflow run: a stable code,
// a one-line summary, and a remediation hint where user action can fix the
// problem. The wrapped cause stays reachable through Unwrap.
type Error struct {
	Code    string
	Summary string
	Help    string
	Path    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Summary)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap classifies err into the closed set of diagnostic codes. projectDir is
// used to build configuration suggestions for setup errors.
func Wrap(err error, projectDir string) *Error {
	var stepErr *Error
	if errors.As(err, &stepErr) {
		return stepErr
	}
	var deser *versionfile.DeserializeError
	var ser *versionfile.SerializeError
	var inconsistent *release.InconsistentVersionsError
	switch {
	case errors.As(err, &deser):
		return &Error{
			Code:    "deserialize",
			Summary: fmt.Sprintf("could not parse %s", deser.Path),
			Help:    deser.Hint,
			Path:    deser.Path,
			Err:     err,
		}
	case errors.As(err, &ser):
		return &Error{
			Code:    "serialize",
			Summary: fmt.Sprintf("failed to rewrite %s with the new version", ser.Path),
			Help:    "This is likely a bug in relcraft rather than a problem with your project, please report it.",
			Path:    ser.Path,
			Err:     err,
		}
	case errors.As(err, &inconsistent):
		return &Error{
			Code:    "inconsistent_versions",
			Summary: fmt.Sprintf("versioned files disagree: %s does not match %s", inconsistent.Second, inconsistent.First),
			Help:    "Manually update all versioned_files to carry the same version, then re-run.",
			Err:     err,
		}
	case errors.Is(err, release.ErrNoPackages), errors.Is(err, config.ErrNotFound):
		return &Error{
			Code:    "no_defined_packages",
			Summary: "no packages are defined",
			Help:    noPackagesHelp(projectDir),
			Err:     err,
		}
	case errors.Is(err, release.ErrTooManyPackages):
		return &Error{
			Code:    "too_many_packages",
			Summary: "too many packages defined",
			Help:    "Only one package is currently supported for this step.",
			Err:     err,
		}
	case errors.Is(err, release.ErrNoCurrentVersion):
		return &Error{
			Code:    "no_current_version",
			Summary: "could not determine the current version of the package",
			Help:    "Check the versioned_files listed for the package in " + config.FileName + ".",
			Err:     err,
		}
	case errors.Is(err, release.ErrNoRelease):
		return &Error{
			Code:    "no_release",
			Summary: "no packages are ready to release",
			Help:    "PrepareRelease will not complete if no commits cause a package's version to be increased.",
			Err:     err,
		}
	case errors.Is(err, semver.ErrInvalidPreRelease), errors.Is(err, semver.ErrNoPreRelease):
		return &Error{
			Code:    "invalid_pre_release_version",
			Summary: "could not work with the pre-release component of the version",
			Help:    "The pre-release component of a version must be in the format `-<label>.N` where <label> is a string and N is an integer.",
			Err:     err,
		}
	case errors.Is(err, semver.ErrInvalidVersion):
		return &Error{
			Code:    "invalid_semantic_version",
			Summary: "found an invalid semantic version",
			Help:    "Every versioned file must carry a valid Semantic Version.",
			Err:     err,
		}
	case errors.Is(err, versionfile.ErrUnknownFormat):
		return &Error{
			Code:    "unknown_format",
			Summary: "a versioned file has no supported format",
			Help:    fmt.Sprintf("Supported file names: %v.", versionfile.Default.FileNames()),
			Err:     err,
		}
	case errors.Is(err, gitrepo.ErrNotARepo):
		return &Error{
			Code:    "not_a_git_repo",
			Summary: "not a git repository",
			Help:    "We couldn't find a git repo in the current directory. Maybe you're not running from the project root?",
			Err:     err,
		}
	case errors.Is(err, gitrepo.ErrGit):
		return &Error{
			Code:    "git",
			Summary: "something went wrong when talking to git",
			Help:    "Try performing the operation manually to get more information.",
			Err:     err,
		}
	case errors.Is(err, conventional.ErrMalformedChangeFile):
		return &Error{
			Code:    "change_file",
			Summary: "could not read a change file",
			Help:    "Change files are markdown notes in " + conventional.ChangesDir + "/ with a `type:` frontmatter of breaking, feature, fix, or other.",
			Err:     err,
		}
	case errors.Is(err, changelog.ErrMalformed):
		return &Error{
			Code:    "changelog_parse",
			Summary: "could not parse the changelog",
			Help:    "The changelog must use `## <version>` sections, `### <category>` subsections, and `- ` bullets.",
			Err:     err,
		}
	default:
		return &Error{
			Code:    "io",
			Summary: "an operation failed",
			Err:     err,
		}
	}
}

func noPackagesHelp(projectDir string) string {
	help := "Define at least one package in the packages section of " + config.FileName + "."
	if suggestion := versionfile.SuggestedConfig(projectDir); suggestion != "" {
		help += " For example:\n\n" + suggestion
	}
	return help
}
