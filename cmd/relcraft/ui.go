package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dthorpe/relcraft/internal/changelog"
	"github.com/dthorpe/relcraft/internal/step"
)

var (
	errorHead = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
	errorCode = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))
	helpBody = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	successHead = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	dryRunNote = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B"))
)

// renderStepError formats a workflow failure: summary, stable code, and a
// remediation hint when there is one.
func renderStepError(err *step.Error) string {
	var b strings.Builder
	b.WriteString(errorHead.Render("error: " + err.Summary))
	b.WriteString(" ")
	b.WriteString(errorCode.Render("[" + err.Code + "]"))
	if err.Help != "" {
		b.WriteString("\n")
		b.WriteString(helpBody.Render(err.Help))
	}
	return b.String()
}

func renderPreparedVersion(version string, dryRun bool) string {
	line := successHead.Render("prepared version " + version)
	if dryRun {
		line += " " + dryRunNote.Render("(dry run, nothing was written)")
	}
	return line
}

func renderCreated(path string) string {
	return successHead.Render("created " + path)
}

func renderWarning(message string) string {
	return dryRunNote.Render("warning: " + message)
}

func categoryFromName(name string) (changelog.Category, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "breaking":
		return changelog.CategoryBreaking, true
	case "feature":
		return changelog.CategoryFeature, true
	case "fix":
		return changelog.CategoryFix, true
	case "other":
		return changelog.CategoryOther, true
	default:
		return 0, false
	}
}
