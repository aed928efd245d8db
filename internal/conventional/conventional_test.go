package conventional

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dthorpe/relcraft/internal/changelog"
	"github.com/dthorpe/relcraft/internal/semver"
)

func TestClassifyCommit(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		want     changelog.Category
		wantDesc string
		ok       bool
	}{
		{"feature", "feat: New feature in second RC", changelog.CategoryFeature, "New feature in second RC", true},
		{"fix", "fix: stop dropping the database", changelog.CategoryFix, "stop dropping the database", true},
		{"scoped feature", "feat(parser): handle tabs", changelog.CategoryFeature, "handle tabs", true},
		{"breaking bang", "feat!: Breaking feature in new RC", changelog.CategoryBreaking, "Breaking feature in new RC", true},
		{"breaking footer", "feat: add flag\n\nBREAKING CHANGE: the old flag is gone", changelog.CategoryBreaking, "the old flag is gone", true},
		{"chore ignored", "chore: tidy imports", 0, "", false},
		{"breaking chore counts", "chore!: drop go 1.19", changelog.CategoryBreaking, "drop go 1.19", true},
		{"not conventional", "merged branch main", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := ClassifyCommit(tt.message)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if entry.Category != tt.want || entry.Description != tt.wantDesc {
				t.Fatalf("got %+v", entry)
			}
			if entry.Source != changelog.SourceCommit {
				t.Fatalf("expected commit source")
			}
		})
	}
}

func TestImpliedRule(t *testing.T) {
	feature := changelog.Entry{Category: changelog.CategoryFeature}
	fix := changelog.Entry{Category: changelog.CategoryFix}
	breaking := changelog.Entry{Category: changelog.CategoryBreaking}

	if _, ok := ImpliedRule(nil); ok {
		t.Fatal("no entries must imply no rule")
	}
	if rule, _ := ImpliedRule([]changelog.Entry{fix}); rule.Kind != semver.RulePatch {
		t.Fatalf("fix should imply patch, got %v", rule.Kind)
	}
	other := changelog.Entry{Category: changelog.CategoryOther}
	if rule, _ := ImpliedRule([]changelog.Entry{other}); rule.Kind != semver.RulePatch {
		t.Fatalf("other should imply patch, got %v", rule.Kind)
	}
	if rule, _ := ImpliedRule([]changelog.Entry{fix, feature}); rule.Kind != semver.RuleMinor {
		t.Fatalf("feature should imply minor, got %v", rule.Kind)
	}
	if rule, _ := ImpliedRule([]changelog.Entry{feature, breaking, fix}); rule.Kind != semver.RuleMajor {
		t.Fatalf("breaking should imply major, got %v", rule.Kind)
	}
}

func TestChangeFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteChangeFile(dir, changelog.CategoryFeature, "Add dry-run mode")
	if err != nil {
		t.Fatalf("WriteChangeFile returned error: %v", err)
	}
	if filepath.Base(path) != "add-dry-run-mode.md" {
		t.Fatalf("unexpected file name %s", path)
	}

	files, err := LoadChangeFiles(dir)
	if err != nil {
		t.Fatalf("LoadChangeFiles returned error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 change file, got %d", len(files))
	}
	entry := files[0].Entry
	if entry.Category != changelog.CategoryFeature || entry.Description != "Add dry-run mode" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Source != changelog.SourceChangeFile {
		t.Fatalf("expected change-file source")
	}
}

func TestLoadChangeFilesMissingDir(t *testing.T) {
	files, err := LoadChangeFiles(t.TempDir())
	if err != nil || files != nil {
		t.Fatalf("expected no files and no error, got %v %v", files, err)
	}
}

func TestLoadChangeFilesMalformed(t *testing.T) {
	dir := t.TempDir()
	changes := filepath.Join(dir, ChangesDir)
	if err := os.MkdirAll(changes, 0o755); err != nil {
		t.Fatal(err)
	}
	tests := map[string]string{
		"no-frontmatter.md": "just some text\n",
		"bad-type.md":       "---\ntype: enhancement\n---\n\nsummary\n",
		"empty-summary.md":  "---\ntype: fix\n---\n\n\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(changes, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			defer os.Remove(path)
			if _, err := LoadChangeFiles(dir); err == nil {
				t.Fatal("expected error for malformed change file")
			} else if !strings.Contains(err.Error(), name) {
				t.Fatalf("error does not name the offending file: %v", err)
			}
		})
	}
}

func TestLoadChangeFilesSortedByName(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteChangeFile(dir, changelog.CategoryFix, "b second"); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteChangeFile(dir, changelog.CategoryFix, "a first"); err != nil {
		t.Fatal(err)
	}
	files, err := LoadChangeFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0].Entry.Description != "a first" {
		t.Fatalf("unexpected order: %+v", files)
	}
}
