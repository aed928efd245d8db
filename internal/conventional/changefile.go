package conventional

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dthorpe/relcraft/internal/changelog"
)

// ChangesDir is the directory holding standalone change notes, relative to
// the project root.
const ChangesDir = ".changes"

// ErrMalformedChangeFile indicates a change note without the expected
// frontmatter envelope.
var ErrMalformedChangeFile = errors.New("conventional: malformed change file")

// ChangeFile is one parsed change note. Path is kept so PrepareRelease can
// consume (remove) the note once it lands in the changelog.
type ChangeFile struct {
	Path  string
	Entry changelog.Entry
}

type changeFrontmatter struct {
	Type string `yaml:"type"`
}

// LoadChangeFiles reads every markdown note under dir/.changes, sorted by
// file name for a stable order. A missing directory simply yields no notes.
func LoadChangeFiles(projectDir string) ([]ChangeFile, error) {
	dir := filepath.Join(projectDir, ChangesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("conventional: read %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	var files []ChangeFile
	for _, name := range names {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("conventional: read %s: %w", path, err)
		}
		parsed, err := parseChangeFile(content, path)
		if err != nil {
			return nil, err
		}
		files = append(files, ChangeFile{Path: path, Entry: parsed})
	}
	return files, nil
}

// parseChangeFile extracts the `---` fenced YAML frontmatter and the summary
// body.
func parseChangeFile(content []byte, path string) (changelog.Entry, error) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return changelog.Entry{}, fmt.Errorf("%w: %s: missing frontmatter", ErrMalformedChangeFile, path)
	}
	parts := bytes.SplitN(normalized[4:], []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return changelog.Entry{}, fmt.Errorf("%w: %s: unterminated frontmatter", ErrMalformedChangeFile, path)
	}
	var meta changeFrontmatter
	if err := yaml.Unmarshal(parts[0], &meta); err != nil {
		return changelog.Entry{}, fmt.Errorf("%w: %s: %v", ErrMalformedChangeFile, path, err)
	}
	category, err := parseCategory(meta.Type)
	if err != nil {
		return changelog.Entry{}, fmt.Errorf("%w: %s: %v", ErrMalformedChangeFile, path, err)
	}
	summary := strings.TrimSpace(string(parts[1]))
	if summary == "" {
		return changelog.Entry{}, fmt.Errorf("%w: %s: empty summary", ErrMalformedChangeFile, path)
	}
	return changelog.Entry{Category: category, Description: summary, Source: changelog.SourceChangeFile}, nil
}

func parseCategory(value string) (changelog.Category, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "breaking":
		return changelog.CategoryBreaking, nil
	case "feature":
		return changelog.CategoryFeature, nil
	case "fix":
		return changelog.CategoryFix, nil
	case "other":
		return changelog.CategoryOther, nil
	default:
		return 0, fmt.Errorf("unknown change type %q (want breaking, feature, fix, or other)", value)
	}
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// WriteChangeFile creates a new change note under dir/.changes named after
// the summary. Returns the created path.
func WriteChangeFile(projectDir string, category changelog.Category, summary string) (string, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("conventional: change summary is required")
	}
	dir := filepath.Join(projectDir, ChangesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("conventional: ensure %s: %w", dir, err)
	}
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(summary), "-"), "-")
	if slug == "" {
		slug = "change"
	}
	path := filepath.Join(dir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("conventional: change file %s already exists", path)
	}
	content := fmt.Sprintf("---\ntype: %s\n---\n\n%s\n", categoryName(category), summary)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("conventional: write %s: %w", path, err)
	}
	return path, nil
}

func categoryName(category changelog.Category) string {
	switch category {
	case changelog.CategoryBreaking:
		return "breaking"
	case changelog.CategoryFeature:
		return "feature"
	case changelog.CategoryFix:
		return "fix"
	default:
		return "other"
	}
}
