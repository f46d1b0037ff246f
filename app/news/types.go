package news

import "time"

// Category is the closed set of topical buckets an item can land in.
type Category string

const (
	CategoryPoliticalFigure Category = "political-figure"
	CategoryGeopolitical    Category = "geopolitical"
	CategoryFinancial       Category = "financial"
)

// CategoryOrder fixes the rendering order of digest sections.
var CategoryOrder = []Category{CategoryPoliticalFigure, CategoryGeopolitical, CategoryFinancial}

// Item is the single domain entity flowing through the pipeline. Stages
// never mutate an Item they received; enrichment produces new values.
type Item struct {
	Title           string
	TitleTranslated string
	Description     string
	DescTranslated  string
	URL             string
	SourceName      string
	PublishedRaw    string
	PublishedAt     *time.Time
	AgeHours        float64
	HasAge          bool
	IsPriority      bool
	Category        Category
}

// DisplayTitle prefers the translated title when translation ran.
func (i Item) DisplayTitle() string {
	if i.TitleTranslated != "" {
		return i.TitleTranslated
	}
	return i.Title
}

// DisplayDescription prefers the translated description when translation ran.
func (i Item) DisplayDescription() string {
	if i.DescTranslated != "" {
		return i.DescTranslated
	}
	return i.Description
}

// Truncate cuts s to at most max code points. Truncation operates on runes,
// not bytes, so multi-byte text is never split mid-character.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
