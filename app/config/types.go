package config

// Config describes the acquisition sources and keyword sets. Loaded from an
// optional YAML file; any empty section falls back to the built-in defaults.
type Config struct {
	Feeds            []FeedEndpoint   `yaml:"feeds"`
	ScrapePages      []ScrapePage     `yaml:"scrape_pages"`
	SearchKeywords   []string         `yaml:"search_keywords"`
	PriorityKeywords []string         `yaml:"priority_keywords"`
	Categories       CategoryKeywords `yaml:"categories"`
}

// FeedEndpoint is one upstream feed. Endpoints are queried in ascending
// priority order.
type FeedEndpoint struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Priority int    `yaml:"priority"`
}

// ScrapePage is one target of the scrape fallback tier.
type ScrapePage struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// CategoryKeywords holds the curated term lists driving classification.
// Political-figure requires a market-impact match as well; the other two
// sets are plain disjunctions.
type CategoryKeywords struct {
	PoliticalFigure []string `yaml:"political_figure"`
	MarketImpact    []string `yaml:"market_impact"`
	Geopolitical    []string `yaml:"geopolitical"`
	Financial       []string `yaml:"financial"`
}
