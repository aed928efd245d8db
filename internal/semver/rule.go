package semver

import (
	"errors"
	"fmt"
)

// ErrNoPreRelease is returned when the Release rule is applied to a version
// that has no pre-release component to promote.
var ErrNoPreRelease = errors.New("semver: no pre-release component to promote")

// RuleKind enumerates the supported ways to advance a version.
type RuleKind string

const (
	RuleMajor   RuleKind = "major"
	RuleMinor   RuleKind = "minor"
	RulePatch   RuleKind = "patch"
	RulePre     RuleKind = "pre"
	RuleRelease RuleKind = "release"
)

// Rule is one bump instruction. Label is only meaningful for RulePre.
type Rule struct {
	Kind  RuleKind
	Label string
}

// ParseRule maps a user-supplied rule name (e.g. from the CLI or a workflow
// file) onto a Rule. The pre rule is written `pre:<label>`.
func ParseRule(value string) (Rule, error) {
	switch RuleKind(value) {
	case RuleMajor, RuleMinor, RulePatch, RuleRelease:
		return Rule{Kind: RuleKind(value)}, nil
	}
	const prePrefix = "pre:"
	if len(value) > len(prePrefix) && value[:len(prePrefix)] == prePrefix {
		return Rule{Kind: RulePre, Label: value[len(prePrefix):]}, nil
	}
	return Rule{}, fmt.Errorf("semver: unknown rule %q (want major, minor, patch, release, or pre:<label>)", value)
}

// Bump applies rule to current and returns the next version. Every result is
// strictly greater than current under Compare, and never carries build
// metadata forward.
func Bump(current Version, rule Rule) (Version, error) {
	switch rule.Kind {
	case RuleMajor:
		return Version{Major: current.Major + 1}, nil
	case RuleMinor:
		return Version{Major: current.Major, Minor: current.Minor + 1}, nil
	case RulePatch:
		return Version{Major: current.Major, Minor: current.Minor, Patch: current.Patch + 1}, nil
	case RulePre:
		return bumpPre(current, rule.Label)
	case RuleRelease:
		if current.Pre == nil {
			return Version{}, fmt.Errorf("%w: %s", ErrNoPreRelease, current)
		}
		return Version{Major: current.Major, Minor: current.Minor, Patch: current.Patch}, nil
	default:
		return Version{}, fmt.Errorf("semver: unknown rule kind %q", rule.Kind)
	}
}

// bumpPre sequences pre-releases. Opening a new series on a stable version
// bumps patch first; continuing a series increments the counter; switching
// labels restarts the counter on the same triple.
func bumpPre(current Version, label string) (Version, error) {
	if label == "" {
		return Version{}, fmt.Errorf("%w: pre-release label is required", ErrInvalidPreRelease)
	}
	next := Version{Major: current.Major, Minor: current.Minor, Patch: current.Patch}
	switch {
	case current.Pre == nil:
		next.Patch++
		next.Pre = &PreRelease{Label: label}
	case current.Pre.Label == label:
		next.Pre = &PreRelease{Label: label, Number: current.Pre.Number + 1}
	default:
		next.Pre = &PreRelease{Label: label}
	}
	return next, nil
}
