package changelog

// Category classifies one change for grouping inside a release section.
type Category int

const (
	CategoryBreaking Category = iota
	CategoryFeature
	CategoryFix
	CategoryOther
)

// Fixed section titles, in the order they appear inside a release section.
const (
	TitleBreaking = "Breaking Changes"
	TitleFeatures = "Features"
	TitleFixes    = "Fixes"
	TitleOther    = "Other"
)

// Title returns the changelog heading for the category.
func (c Category) Title() string {
	switch c {
	case CategoryBreaking:
		return TitleBreaking
	case CategoryFeature:
		return TitleFeatures
	case CategoryFix:
		return TitleFixes
	default:
		return TitleOther
	}
}

// Source records where a change entry came from.
type Source int

const (
	SourceCommit Source = iota
	SourceChangeFile
)

// Entry is one classified unit of release-note content. Entries are immutable
// once classified; the builder only groups and appends them.
type Entry struct {
	Category    Category
	Description string
	Source      Source
}
