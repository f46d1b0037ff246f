package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/market-brief/app/config"
	"github.com/lysyi3m/market-brief/app/news"
)

const (
	feedFetchTimeout = 20 * time.Second
	fallbackCap      = 20
	maxDescription   = 200 // code points
)

// FeedSource queries the configured feed endpoints in priority order. Each
// endpoint is independent: a timeout, connection error, or empty result set
// skips that endpoint and never aborts the tier.
type FeedSource struct {
	endpoints     []config.FeedEndpoint
	httpClient    *http.Client
	gofeedParser  *gofeed.Parser
	userAgent     string
	maxPerSource  int
	recencyWindow time.Duration
	now           func() time.Time
}

func NewFeedSource(endpoints []config.FeedEndpoint, httpClient *http.Client, userAgent string, maxPerSource int, recencyWindow time.Duration) *FeedSource {
	return &FeedSource{
		endpoints:     endpoints,
		httpClient:    httpClient,
		gofeedParser:  gofeed.NewParser(),
		userAgent:     userAgent,
		maxPerSource:  maxPerSource,
		recencyWindow: recencyWindow,
		now:           time.Now,
	}
}

// Run fetches every endpoint, applying the recency window and per-endpoint
// cap. Returns whatever was collected, possibly nothing.
func (s *FeedSource) Run(ctx context.Context) []news.Item {
	var items []news.Item

	for _, endpoint := range s.endpoints {
		feed, err := s.fetchFeed(ctx, endpoint.URL)
		if err != nil {
			slog.Warn("Feed endpoint failed, skipping", "source", endpoint.Name, "error", err)
			continue
		}
		if len(feed.Items) == 0 {
			slog.Warn("Feed endpoint returned no entries, skipping", "source", endpoint.Name)
			continue
		}

		taken := s.takeEntries(endpoint.Name, feed, s.maxPerSource, true)
		slog.Info("Feed endpoint processed", "source", endpoint.Name, "taken", len(taken))
		items = append(items, taken...)
	}

	return items
}

// RunFallback re-queries the same endpoints ignoring the recency window,
// with a raised cap, stopping at the first endpoint that returns anything.
// Used only when the regular pass yielded zero items.
func (s *FeedSource) RunFallback(ctx context.Context) []news.Item {
	for _, endpoint := range s.endpoints {
		feed, err := s.fetchFeed(ctx, endpoint.URL)
		if err != nil {
			slog.Warn("Fallback fetch failed, skipping", "source", endpoint.Name, "error", err)
			continue
		}

		taken := s.takeEntries(endpoint.Name, feed, fallbackCap, false)
		if len(taken) > 0 {
			slog.Info("Fallback pass recovered entries", "source", endpoint.Name, "taken", len(taken))
			return taken
		}
	}

	return nil
}

func (s *FeedSource) fetchFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	data, err := fetch(ctx, s.httpClient, url, s.userAgent, feedFetchTimeout)
	if err != nil {
		return nil, err
	}

	feed, err := s.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return feed, nil
}

// takeEntries normalizes up to max entries from a parsed feed. Entries with
// an empty title are rejected; entries older than the recency window are
// discarded when applyWindow is set, but an unparseable publish time keeps
// the entry (fail open).
func (s *FeedSource) takeEntries(sourceName string, feed *gofeed.Feed, max int, applyWindow bool) []news.Item {
	now := s.now()
	items := make([]news.Item, 0, max)

	for _, entry := range feed.Items {
		if len(items) >= max {
			break
		}

		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}

		publishedAt := parsePublished(entry)
		if applyWindow && publishedAt != nil && now.Sub(*publishedAt) > s.recencyWindow {
			continue
		}

		item := news.Item{
			Title:        title,
			URL:          entry.Link,
			SourceName:   sourceName,
			PublishedRaw: entry.Published,
			PublishedAt:  publishedAt,
		}

		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}
		item.Description = news.Truncate(stripMarkup(summary), maxDescription)

		if publishedAt != nil {
			item.AgeHours = now.Sub(*publishedAt).Hours()
			item.HasAge = true
		}

		items = append(items, item)
	}

	return items
}

// parsePublished uses gofeed's parsed time when available, otherwise makes
// a best-effort pass over the raw string. A nil result means the entry's
// age is unknown.
func parsePublished(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	if entry.Published == "" {
		return nil
	}

	parsed, err := dateparse.ParseAny(entry.Published)
	if err != nil {
		return nil
	}
	return &parsed
}

// stripMarkup flattens an HTML fragment to its text content and collapses
// whitespace. Plain text passes through untouched.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
