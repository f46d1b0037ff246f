package news

import "strings"

// Classifier assigns each item exactly one category and a priority flag
// based on curated keyword sets. Matching is case-insensitive substring
// search over title and description combined.
type Classifier struct {
	politicalFigure []string
	marketImpact    []string
	geopolitical    []string
	financial       []string
	priority        []string
}

func NewClassifier(politicalFigure, marketImpact, geopolitical, financial, priority []string) *Classifier {
	return &Classifier{
		politicalFigure: lowerAll(politicalFigure),
		marketImpact:    lowerAll(marketImpact),
		geopolitical:    lowerAll(geopolitical),
		financial:       lowerAll(financial),
		priority:        lowerAll(priority),
	}
}

// Run returns a new slice with Category and IsPriority set on every item.
// A priority flag already set by an adapter is preserved.
func (c *Classifier) Run(items []Item) []Item {
	classified := make([]Item, 0, len(items))
	for _, item := range items {
		item.Category = c.Classify(item.Title, item.Description)
		item.IsPriority = item.IsPriority || c.IsPriority(item.Title, item.Description)
		classified = append(classified, item)
	}
	return classified
}

// Classify is pure: the same title and description always yield the same
// category, and every input gets one. The first rule requires both a figure
// mention and market relevance so unrelated political coverage does not
// crowd out the digest.
func (c *Classifier) Classify(title, description string) Category {
	content := strings.ToLower(title + " " + description)

	if matchesAny(content, c.politicalFigure) && matchesAny(content, c.marketImpact) {
		return CategoryPoliticalFigure
	}
	if matchesAny(content, c.geopolitical) {
		return CategoryGeopolitical
	}
	if matchesAny(content, c.financial) {
		return CategoryFinancial
	}

	return CategoryFinancial
}

// IsPriority reports whether any configured priority keyword appears in the
// combined title and description.
func (c *Classifier) IsPriority(title, description string) bool {
	content := strings.ToLower(title + " " + description)
	return matchesAny(content, c.priority)
}

func matchesAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func lowerAll(keywords []string) []string {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(kw)))
	}
	return lowered
}
