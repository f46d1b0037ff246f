package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/market-brief/app/config"
	"github.com/lysyi3m/market-brief/app/news"
)

const (
	scrapeFetchTimeout = 15 * time.Second
	scrapeMinItems     = 5
	scrapeMinTitleLen  = 5
	scrapeMaxBlocks    = 10
	scrapeMaxTitle     = 200 // code points
)

// ScrapeSource is the last-resort tier: it pulls headline links straight
// off a small list of target pages. Selector strategy cascades from the
// specific (article elements) to the generic (anchors tagged with an
// article attribute).
type ScrapeSource struct {
	pages      []config.ScrapePage
	httpClient *http.Client
	userAgent  string
}

func NewScrapeSource(pages []config.ScrapePage, httpClient *http.Client, userAgent string) *ScrapeSource {
	return &ScrapeSource{
		pages:      pages,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Run visits target pages until at least five items are accumulated.
// Per-page failures are logged and skipped.
func (s *ScrapeSource) Run(ctx context.Context) []news.Item {
	var items []news.Item

	for _, page := range s.pages {
		found, err := s.scrapePage(ctx, page)
		if err != nil {
			slog.Warn("Scrape target failed, skipping", "page", page.Name, "error", err)
			continue
		}

		items = append(items, found...)
		slog.Info("Scrape target processed", "page", page.Name, "taken", len(found))

		if len(items) >= scrapeMinItems {
			break
		}
	}

	return items
}

func (s *ScrapeSource) scrapePage(ctx context.Context, page config.ScrapePage) ([]news.Item, error) {
	data, err := fetch(ctx, s.httpClient, page.URL, s.userAgent, scrapeFetchTimeout)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	blocks := doc.Find("article")
	if blocks.Length() == 0 {
		blocks = doc.Find("a[data-article-id]")
	}

	var items []news.Item
	blocks.EachWithBreak(func(i int, block *goquery.Selection) bool {
		if i >= scrapeMaxBlocks {
			return false
		}

		title := extractTitle(block)
		if len([]rune(title)) <= scrapeMinTitleLen {
			return true
		}

		items = append(items, news.Item{
			Title:      news.Truncate(title, scrapeMaxTitle),
			URL:        extractLink(block, page.URL),
			SourceName: page.Name,
			HasAge:     true, // scraped headlines are current by construction
			IsPriority: true,
		})
		return true
	})

	return items, nil
}

// extractTitle tries the most specific heading selectors first and falls
// back to the anchor text.
func extractTitle(block *goquery.Selection) string {
	for _, selector := range []string{"h2", "h3", "a"} {
		if title := strings.TrimSpace(block.Find(selector).First().Text()); title != "" {
			return title
		}
	}
	return strings.TrimSpace(block.Text())
}

// extractLink returns a best-effort absolute URL for the block, or "".
func extractLink(block *goquery.Selection, pageURL string) string {
	href, ok := block.Attr("href")
	if !ok {
		href, ok = block.Find("a[href]").First().Attr("href")
	}
	if !ok || href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return "https://" + parsed.Host + href
}
