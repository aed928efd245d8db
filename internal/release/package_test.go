package release

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dthorpe/relcraft/internal/config"
	"github.com/dthorpe/relcraft/internal/semver"
	"github.com/dthorpe/relcraft/internal/state"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRun(t *testing.T, dir string, pkg config.Package, dryRun bool) (*state.RunType, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{ProjectDir: dir, Packages: []config.Package{pkg}}
	var captured bytes.Buffer
	return state.New(cfg, state.NewSink(dryRun, &captured), nil), &captured
}

func TestCurrentVersionAgreement(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "app", "version": "1.0.0"}`)
	writeFile(t, dir, "VERSION", "1.0.0\n")
	pkg := config.Package{Name: "app", VersionedFiles: []string{"package.json", "VERSION"}}

	got, err := CurrentVersion(dir, pkg)
	if err != nil {
		t.Fatalf("CurrentVersion returned error: %v", err)
	}
	if got.String() != "1.0.0" {
		t.Fatalf("expected 1.0.0, got %s", got)
	}
}

func TestCurrentVersionInconsistent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"version": "1.0.0"}`)
	writeFile(t, dir, "VERSION", "1.0.1\n")
	pkg := config.Package{Name: "app", VersionedFiles: []string{"package.json", "VERSION"}}

	_, err := CurrentVersion(dir, pkg)
	var inconsistent *InconsistentVersionsError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("expected InconsistentVersionsError, got %v", err)
	}
	if inconsistent.First != "1.0.0" || inconsistent.Second != "1.0.1" {
		t.Fatalf("error does not name both values: %+v", inconsistent)
	}
}

func TestCurrentVersionEmptyPackage(t *testing.T) {
	_, err := CurrentVersion(t.TempDir(), config.Package{Name: "app"})
	if !errors.Is(err, ErrNoCurrentVersion) {
		t.Fatalf("expected ErrNoCurrentVersion, got %v", err)
	}
}

func TestBumpVersionRewritesEveryFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{\n  \"name\": \"app\",\n  \"version\": \"1.2.3\"\n}\n")
	writeFile(t, dir, "VERSION", "1.2.3\n")
	pkg := config.Package{Name: "app", VersionedFiles: []string{"package.json", "VERSION"}}
	run, _ := testRun(t, dir, pkg, false)

	updated, err := BumpVersion(run, semver.Rule{Kind: semver.RuleMinor})
	if err != nil {
		t.Fatalf("BumpVersion returned error: %v", err)
	}
	if updated.PreparedVersion != "1.3.0" {
		t.Fatalf("expected prepared version 1.3.0, got %s", updated.PreparedVersion)
	}
	plain, err := os.ReadFile(filepath.Join(dir, "VERSION"))
	if err != nil {
		t.Fatal(err)
	}
	if string(plain) != "1.3.0\n" {
		t.Fatalf("VERSION not updated: %q", plain)
	}
	pkgJSON, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pkgJSON), `"version": "1.3.0"`) {
		t.Fatalf("package.json not updated:\n%s", pkgJSON)
	}
	if !strings.Contains(string(pkgJSON), `"name": "app"`) {
		t.Fatalf("package.json lost sibling keys:\n%s", pkgJSON)
	}
}

func TestBumpVersionDryRunLeavesFilesUntouched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "VERSION", "1.2.3\n")
	pkg := config.Package{Name: "app", VersionedFiles: []string{"VERSION"}}
	run, captured := testRun(t, dir, pkg, true)

	updated, err := BumpVersion(run, semver.Rule{Kind: semver.RulePatch})
	if err != nil {
		t.Fatalf("BumpVersion returned error: %v", err)
	}
	if updated.PreparedVersion != "1.2.4" {
		t.Fatalf("expected prepared version 1.2.4, got %s", updated.PreparedVersion)
	}
	content, err := os.ReadFile(filepath.Join(dir, "VERSION"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "1.2.3\n" {
		t.Fatalf("dry run mutated VERSION: %q", content)
	}
	if !strings.Contains(captured.String(), "1.2.4") {
		t.Fatalf("dry run description missing new version: %q", captured.String())
	}
}

func TestBumpVersionRefusesInconsistentPackage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"version": "1.0.0"}`)
	writeFile(t, dir, "VERSION", "2.0.0\n")
	pkg := config.Package{Name: "app", VersionedFiles: []string{"package.json", "VERSION"}}
	run, _ := testRun(t, dir, pkg, false)

	_, err := BumpVersion(run, semver.Rule{Kind: semver.RuleMajor})
	var inconsistent *InconsistentVersionsError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("expected InconsistentVersionsError, got %v", err)
	}
	// No partial bump: both files keep their original content.
	content, _ := os.ReadFile(filepath.Join(dir, "VERSION"))
	if string(content) != "2.0.0\n" {
		t.Fatalf("consistency failure must not mutate files: %q", content)
	}
}

func TestSelectPackage(t *testing.T) {
	if _, err := selectPackage(&config.Config{}); !errors.Is(err, ErrNoPackages) {
		t.Fatalf("expected ErrNoPackages, got %v", err)
	}
	two := &config.Config{Packages: []config.Package{{Name: "a"}, {Name: "b"}}}
	if _, err := selectPackage(two); !errors.Is(err, ErrTooManyPackages) {
		t.Fatalf("expected ErrTooManyPackages, got %v", err)
	}
}
