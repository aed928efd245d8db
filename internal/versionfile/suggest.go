package versionfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SuggestedConfig scans projectDir for files a registered format could own
// and renders a starting `packages` block for .relcraft.yaml. It is used in
// the help text of the no-packages-defined error.
func SuggestedConfig(projectDir string) string {
	var found []string
	for _, name := range Default.FileNames() {
		if info, err := os.Stat(filepath.Join(projectDir, name)); err == nil && !info.IsDir() {
			found = append(found, name)
		}
	}
	if len(found) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("packages:\n")
	fmt.Fprintf(&b, "  - name: %s\n", filepath.Base(projectDir))
	b.WriteString("    versioned_files:\n")
	for _, name := range found {
		fmt.Fprintf(&b, "      - %s\n", name)
	}
	b.WriteString("    changelog: CHANGELOG.md\n")
	return b.String()
}
