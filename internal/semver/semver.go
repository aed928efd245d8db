// Package semver implements the version arithmetic behind every release:
// parsing, ordering, and applying bump rules (including pre-release
// sequencing). It performs no I/O so the whole rule table is unit-testable.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidVersion indicates a string that is not a semantic version.
	ErrInvalidVersion = errors.New("semver: invalid semantic version")
	// ErrInvalidPreRelease indicates a pre-release suffix that is not in the
	// `<label>.<integer>` form the resolver needs to sequence releases.
	ErrInvalidPreRelease = errors.New("semver: invalid pre-release")
)

// PreRelease is the `-<label>.<number>` component of a version. The label may
// itself contain dots; the final dotted segment must be the counter.
type PreRelease struct {
	Label  string
	Number uint64
}

func (p PreRelease) String() string {
	return fmt.Sprintf("%s.%d", p.Label, p.Number)
}

// Version is a semantic version. Pre is nil for stable releases. Build
// metadata is carried through parsing but ignored by ordering and cleared by
// every bump.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   *PreRelease
	Build string
}

// Parse reads `major.minor.patch[-pre][+build]`. A pre-release suffix must
// end in a numeric segment so it can be incremented later; anything else is
// rejected up front rather than failing mid-bump.
func Parse(input string) (Version, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrInvalidVersion)
	}
	var build string
	if idx := strings.IndexByte(s, '+'); idx >= 0 {
		build = s[idx+1:]
		s = s[:idx]
	}
	var pre string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		pre = s[idx+1:]
		s = s[:idx]
		if pre == "" {
			return Version{}, fmt.Errorf("%w: %q has an empty pre-release suffix", ErrInvalidVersion, input)
		}
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, input)
	}
	nums := make([]uint64, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, input)
		}
		nums[i] = n
	}
	v := Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Build: build}
	if pre != "" {
		parsed, err := parsePre(pre)
		if err != nil {
			return Version{}, err
		}
		v.Pre = &parsed
	}
	return v, nil
}

func parsePre(pre string) (PreRelease, error) {
	idx := strings.LastIndexByte(pre, '.')
	if idx <= 0 || idx == len(pre)-1 {
		return PreRelease{}, fmt.Errorf("%w: %q is not in the form <label>.<number>", ErrInvalidPreRelease, pre)
	}
	n, err := strconv.ParseUint(pre[idx+1:], 10, 64)
	if err != nil {
		return PreRelease{}, fmt.Errorf("%w: %q is not in the form <label>.<number>", ErrInvalidPreRelease, pre)
	}
	return PreRelease{Label: pre[:idx], Number: n}, nil
}

// String renders the canonical form of the version.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != nil {
		b.WriteByte('-')
		b.WriteString(v.Pre.String())
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// IsPreRelease reports whether the version carries a pre-release component.
func (v Version) IsPreRelease() bool {
	return v.Pre != nil
}

// Compare orders two versions: major, minor, patch, then pre-release. A
// stable version outranks a pre-release of the same triple. Build metadata
// never participates.
func Compare(a, b Version) int {
	if c := compareUint(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareUint(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := compareUint(a.Patch, b.Patch); c != 0 {
		return c
	}
	switch {
	case a.Pre == nil && b.Pre == nil:
		return 0
	case a.Pre == nil:
		return 1
	case b.Pre == nil:
		return -1
	}
	if c := strings.Compare(a.Pre.Label, b.Pre.Label); c != 0 {
		return c
	}
	return compareUint(a.Pre.Number, b.Pre.Number)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
