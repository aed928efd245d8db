// Package changelog maintains the markdown release history: version-headed
// sections (`## <version>`), category subsections (`### <category>`), and
// bullet lines, newest section first. Parsing and rendering are inverses so
// an untouched document re-renders byte-identically.
package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dthorpe/relcraft/internal/semver"
)

// ErrMalformed indicates changelog text that does not follow the
// version-heading / category-heading / bullet structure.
var ErrMalformed = errors.New("changelog: malformed document")

// Subsection is one category heading and its bullets, in chronological order.
type Subsection struct {
	Title   string
	Bullets []string
}

// Section is one released version and its grouped changes.
type Section struct {
	Version     string
	Subsections []Subsection
}

// Document is a parsed changelog: optional preamble text followed by release
// sections, newest first.
type Document struct {
	Preamble string
	Sections []Section
}

// Parse reads a changelog document. Content before the first version heading
// is kept verbatim as the preamble.
func Parse(content []byte) (Document, error) {
	var doc Document
	var preamble []string
	var section *Section
	var subsection *Subsection

	flushSubsection := func() {
		if section != nil && subsection != nil {
			section.Subsections = append(section.Subsections, *subsection)
		}
		subsection = nil
	}
	flushSection := func() {
		flushSubsection()
		if section != nil {
			doc.Sections = append(doc.Sections, *section)
		}
		section = nil
	}

	for _, line := range strings.Split(string(content), "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			flushSection()
			section = &Section{Version: strings.TrimSpace(line[3:])}
		case strings.HasPrefix(line, "### ") && section != nil:
			flushSubsection()
			subsection = &Subsection{Title: strings.TrimSpace(line[4:])}
		case strings.HasPrefix(line, "- ") && subsection != nil:
			subsection.Bullets = append(subsection.Bullets, strings.TrimSpace(line[2:]))
		case section == nil:
			preamble = append(preamble, line)
		case strings.TrimSpace(line) != "":
			return Document{}, fmt.Errorf("%w: unexpected line %q under version %s", ErrMalformed, line, section.Version)
		}
	}
	flushSection()
	doc.Preamble = strings.TrimRight(strings.Join(preamble, "\n"), "\n")
	return doc, nil
}

// Render produces the markdown text of the document. Rendering is
// deterministic: the same document always yields the same bytes.
func (d Document) Render() []byte {
	var blocks []string
	if d.Preamble != "" {
		blocks = append(blocks, d.Preamble)
	}
	for _, section := range d.Sections {
		blocks = append(blocks, "## "+section.Version)
		for _, sub := range section.Subsections {
			blocks = append(blocks, "### "+sub.Title)
			if len(sub.Bullets) > 0 {
				bullets := make([]string, len(sub.Bullets))
				for i, b := range sub.Bullets {
					bullets[i] = "- " + b
				}
				blocks = append(blocks, strings.Join(bullets, "\n"))
			}
		}
	}
	if len(blocks) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(blocks, "\n\n") + "\n")
}

// Add records entries under version and returns the updated document. If
// version continues the pre-release series of the topmost section (same
// label, same major.minor.patch) the section is merged forward: its header
// is rewritten to the new version and the new bullets are appended beneath
// the existing ones. Any other version starts a new top section; prior
// sections are never touched.
func Add(doc Document, version semver.Version, entries []Entry) Document {
	if len(entries) == 0 {
		return doc
	}
	if len(doc.Sections) > 0 && sameSeries(doc.Sections[0].Version, version) {
		top := doc.Sections[0]
		top.Version = version.String()
		for _, entry := range entries {
			top.append(entry)
		}
		top.sortSubsections()
		doc.Sections[0] = top
		return doc
	}
	section := Section{Version: version.String()}
	for _, entry := range entries {
		section.append(entry)
	}
	section.sortSubsections()
	doc.Sections = append([]Section{section}, doc.Sections...)
	return doc
}

// sameSeries reports whether the existing section header and the target
// version belong to one pre-release sequence.
func sameSeries(header string, target semver.Version) bool {
	if target.Pre == nil {
		return false
	}
	existing, err := semver.Parse(header)
	if err != nil || existing.Pre == nil {
		return false
	}
	return existing.Major == target.Major &&
		existing.Minor == target.Minor &&
		existing.Patch == target.Patch &&
		existing.Pre.Label == target.Pre.Label
}

func (s *Section) append(entry Entry) {
	title := entry.Category.Title()
	for i := range s.Subsections {
		if s.Subsections[i].Title == title {
			s.Subsections[i].Bullets = append(s.Subsections[i].Bullets, entry.Description)
			return
		}
	}
	s.Subsections = append(s.Subsections, Subsection{Title: title, Bullets: []string{entry.Description}})
}

var titleOrder = map[string]int{
	TitleBreaking: 0,
	TitleFeatures: 1,
	TitleFixes:    2,
	TitleOther:    3,
}

// sortSubsections restores the fixed category order. Titles outside the
// fixed set (from hand-edited files) sink below it, keeping their relative
// order.
func (s *Section) sortSubsections() {
	ordered := make([]Subsection, 0, len(s.Subsections))
	for rank := 0; rank < len(titleOrder); rank++ {
		for _, sub := range s.Subsections {
			if idx, known := titleOrder[sub.Title]; known && idx == rank {
				ordered = append(ordered, sub)
			}
		}
	}
	for _, sub := range s.Subsections {
		if _, known := titleOrder[sub.Title]; !known {
			ordered = append(ordered, sub)
		}
	}
	s.Subsections = ordered
}
