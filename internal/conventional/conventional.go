// Package conventional turns commit messages and on-disk change notes into
// classified change entries, and derives the version rule a set of entries
// implies. The release engine consumes the classified entries without ever
// inspecting raw commit text itself.
package conventional

import (
	"regexp"
	"strings"

	"github.com/dthorpe/relcraft/internal/changelog"
	"github.com/dthorpe/relcraft/internal/semver"
)

var commitRe = regexp.MustCompile(`^(\w+)(\([^)]*\))?(!)?:\s*(.+)$`)

// ClassifyCommit parses one commit message in conventional-commit form. The
// second return is false for messages that do not affect the version: either
// not conventional at all, or a type (docs, chore, ...) that never bumps
// unless marked breaking.
func ClassifyCommit(message string) (changelog.Entry, bool) {
	lines := strings.Split(message, "\n")
	subject := strings.TrimSpace(lines[0])
	m := commitRe.FindStringSubmatch(subject)
	if m == nil {
		return changelog.Entry{}, false
	}
	commitType, bang, description := m[1], m[3], strings.TrimSpace(m[4])
	breaking := bang == "!"
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "BREAKING CHANGE:") {
			breaking = true
			if text := strings.TrimSpace(strings.TrimPrefix(line, "BREAKING CHANGE:")); text != "" {
				description = text
			}
		}
	}
	entry := changelog.Entry{Description: description, Source: changelog.SourceCommit}
	switch {
	case breaking:
		entry.Category = changelog.CategoryBreaking
	case commitType == "feat":
		entry.Category = changelog.CategoryFeature
	case commitType == "fix":
		entry.Category = changelog.CategoryFix
	default:
		return changelog.Entry{}, false
	}
	return entry, true
}

// ClassifyCommits classifies a commit sequence, keeping the input order so
// changelog bullets stay chronological.
func ClassifyCommits(messages []string) []changelog.Entry {
	var entries []changelog.Entry
	for _, message := range messages {
		if entry, ok := ClassifyCommit(message); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// ImpliedRule maps the strongest category across entries to a bump rule. The
// second return is false when no entry implies any version change. Pre-release
// sequencing is layered on top by the release resolver, not here.
func ImpliedRule(entries []changelog.Entry) (semver.Rule, bool) {
	if len(entries) == 0 {
		return semver.Rule{}, false
	}
	strongest := changelog.CategoryOther
	for _, entry := range entries {
		if entry.Category < strongest {
			strongest = entry.Category
		}
	}
	switch strongest {
	case changelog.CategoryBreaking:
		return semver.Rule{Kind: semver.RuleMajor}, true
	case changelog.CategoryFeature:
		return semver.Rule{Kind: semver.RuleMinor}, true
	default:
		return semver.Rule{Kind: semver.RulePatch}, true
	}
}
