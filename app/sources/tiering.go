package sources

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/market-brief/app/cfg"
	"github.com/lysyi3m/market-brief/app/config"
	"github.com/lysyi3m/market-brief/app/news"
)

// scrapeFloor is the combined item count below which the scrape fallback
// tier kicks in.
const scrapeFloor = 5

// Aggregator runs the acquisition tiers in order: feeds (with a
// bottom-fallback pass when they come up completely empty), the additive
// search tier, then the scrape fallback when the haul is still thin.
// It never returns an error; each tier swallows its own failures.
type Aggregator struct {
	feeds  *FeedSource
	search *SearchSource
	scrape *ScrapeSource
}

func NewAggregator(processCfg *cfg.Cfg, sourcesCfg *config.Config) *Aggregator {
	httpClient := &http.Client{}

	return &Aggregator{
		feeds: NewFeedSource(
			sourcesCfg.Feeds,
			httpClient,
			processCfg.UserAgent,
			processCfg.MaxPerSource,
			time.Duration(processCfg.RecencyHours)*time.Hour,
		),
		search: NewSearchSource(
			processCfg.SearchAPIKey,
			processCfg.SearchEndpoint,
			sourcesCfg.SearchKeywords,
			httpClient,
		),
		scrape: NewScrapeSource(
			sourcesCfg.ScrapePages,
			httpClient,
			processCfg.UserAgent,
		),
	}
}

func (a *Aggregator) Run(ctx context.Context) []news.Item {
	items := a.feeds.Run(ctx)
	slog.Info("Feed tier finished", "items", len(items))

	if len(items) == 0 {
		slog.Warn("Feed tier empty, running bottom-fallback pass")
		items = a.feeds.RunFallback(ctx)
		slog.Info("Bottom-fallback pass finished", "items", len(items))
	}

	if a.search.Enabled() {
		found := a.search.Run(ctx)
		slog.Info("Search tier finished", "items", len(found))
		items = append(items, found...)
	} else {
		slog.Info("Search API key not configured, skipping search tier")
	}

	if len(items) < scrapeFloor {
		slog.Warn("Below item floor, running scrape tier", "items", len(items), "floor", scrapeFloor)
		found := a.scrape.Run(ctx)
		slog.Info("Scrape tier finished", "items", len(found))
		items = append(items, found...)
	}

	return items
}
