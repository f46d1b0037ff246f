package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/lysyi3m/market-brief/app/news"
)

const (
	searchFetchTimeout = 10 * time.Second
	searchPageSize     = 5
	searchLookback     = 24 * time.Hour
)

// SearchSource issues one date-bounded query per configured keyword against
// a NewsAPI-shaped endpoint. It runs in addition to the feed tier, never as
// a fallback, and only when an API key is configured.
type SearchSource struct {
	apiKey     string
	endpoint   string
	keywords   []string
	queryDelay time.Duration
	httpClient *http.Client
	now        func() time.Time
}

func NewSearchSource(apiKey, endpoint string, keywords []string, httpClient *http.Client) *SearchSource {
	return &SearchSource{
		apiKey:     apiKey,
		endpoint:   endpoint,
		keywords:   keywords,
		queryDelay: time.Second,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Enabled reports whether a credential is configured.
func (s *SearchSource) Enabled() bool {
	return s.apiKey != ""
}

// Run queries each keyword with a fixed inter-query delay to respect the
// upstream rate limit. Per-keyword failures are logged and skipped.
func (s *SearchSource) Run(ctx context.Context) []news.Item {
	var items []news.Item

	for i, keyword := range s.keywords {
		if i > 0 {
			select {
			case <-time.After(s.queryDelay):
			case <-ctx.Done():
				return items
			}
		}

		found, err := s.query(ctx, keyword)
		if err != nil {
			slog.Warn("Search query failed, skipping keyword", "keyword", keyword, "error", err)
			continue
		}
		items = append(items, found...)
	}

	return items
}

type searchResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (s *SearchSource) query(ctx context.Context, keyword string) ([]news.Item, error) {
	now := s.now()

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("apiKey", s.apiKey)
	params.Set("from", now.Add(-searchLookback).UTC().Format("2006-01-02T15:04:05"))
	params.Set("pageSize", strconv.Itoa(searchPageSize))

	data, err := fetch(ctx, s.httpClient, s.endpoint+"?"+params.Encode(), "", searchFetchTimeout)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("search API returned status %q: %s", resp.Status, resp.Message)
	}

	items := make([]news.Item, 0, len(resp.Articles))
	for _, article := range resp.Articles {
		if article.Title == "" {
			continue
		}

		item := news.Item{
			Title:        article.Title,
			Description:  news.Truncate(article.Description, maxDescription),
			URL:          article.URL,
			SourceName:   article.Source.Name,
			PublishedRaw: article.PublishedAt,
		}
		if item.SourceName == "" {
			item.SourceName = "NewsAPI"
		}

		if article.PublishedAt != "" {
			if published, err := dateparse.ParseAny(article.PublishedAt); err == nil {
				item.PublishedAt = &published
				item.AgeHours = now.Sub(published).Hours()
				item.HasAge = true
			}
		}

		items = append(items, item)
	}

	return items, nil
}
