package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Load reads the sources file when a path is given, falling back to the
// built-in defaults for the whole config or any empty section. Feed
// endpoints are returned in ascending priority order.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		config = merge(config, loaded)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid sources config: %w", err)
	}

	sort.SliceStable(config.Feeds, func(i, j int) bool {
		return config.Feeds[i].Priority < config.Feeds[j].Priority
	})

	return config, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &config, nil
}

// merge keeps the defaults for any section the file leaves empty.
func merge(defaults, loaded *Config) *Config {
	merged := *defaults

	if len(loaded.Feeds) > 0 {
		merged.Feeds = loaded.Feeds
	}
	if len(loaded.ScrapePages) > 0 {
		merged.ScrapePages = loaded.ScrapePages
	}
	if len(loaded.SearchKeywords) > 0 {
		merged.SearchKeywords = loaded.SearchKeywords
	}
	if len(loaded.PriorityKeywords) > 0 {
		merged.PriorityKeywords = loaded.PriorityKeywords
	}
	if len(loaded.Categories.PoliticalFigure) > 0 {
		merged.Categories.PoliticalFigure = loaded.Categories.PoliticalFigure
	}
	if len(loaded.Categories.MarketImpact) > 0 {
		merged.Categories.MarketImpact = loaded.Categories.MarketImpact
	}
	if len(loaded.Categories.Geopolitical) > 0 {
		merged.Categories.Geopolitical = loaded.Categories.Geopolitical
	}
	if len(loaded.Categories.Financial) > 0 {
		merged.Categories.Financial = loaded.Categories.Financial
	}

	return &merged
}

func validate(config *Config) error {
	if len(config.Feeds) == 0 {
		return fmt.Errorf("at least one feed endpoint is required")
	}

	for i, feed := range config.Feeds {
		if feed.URL == "" {
			return fmt.Errorf("feed at index %d: URL is required", i)
		}
		if feed.Name == "" {
			return fmt.Errorf("feed at index %d: name is required", i)
		}
	}

	for i, page := range config.ScrapePages {
		if page.URL == "" {
			return fmt.Errorf("scrape page at index %d: URL is required", i)
		}
	}

	return nil
}
