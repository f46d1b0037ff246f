package news

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func testFormatter() *Formatter {
	f := NewFormatter()
	f.now = func() time.Time {
		return time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC)
	}
	return f
}

func TestFormatter_EmptyInput(t *testing.T) {
	formatter := testFormatter()

	got := formatter.Run(nil)
	if got != EmptyDigestMessage {
		t.Errorf("Expected the empty-digest message, got %q", got)
	}

	got = formatter.Run([]Item{})
	if got != EmptyDigestMessage {
		t.Errorf("Expected the empty-digest message for empty slice, got %q", got)
	}
}

func TestFormatter_Header(t *testing.T) {
	formatter := testFormatter()

	digest := formatter.Run([]Item{
		{Title: "Fed raises rates", SourceName: "CNBC", Category: CategoryFinancial, IsPriority: true},
		{Title: "Oil slides", SourceName: "IBD", Category: CategoryGeopolitical},
	})

	if !strings.Contains(digest, "Market Brief - 2026-03-15 08:30:00") {
		t.Errorf("Expected generation timestamp in header, got:\n%s", digest)
	}
	if !strings.Contains(digest, "Total: 2 | Priority: 1") {
		t.Errorf("Expected item counts in header, got:\n%s", digest)
	}
	if !strings.Contains(digest, "geopolitical: 1") || !strings.Contains(digest, "financial: 1") {
		t.Errorf("Expected per-category counts, got:\n%s", digest)
	}
}

func TestFormatter_SectionOrder(t *testing.T) {
	formatter := testFormatter()

	digest := formatter.Run([]Item{
		{Title: "Dow gains", SourceName: "CNBC", Category: CategoryFinancial},
		{Title: "Trump tariff move", SourceName: "IBD", Category: CategoryPoliticalFigure},
		{Title: "Oil slides", SourceName: "Yahoo", Category: CategoryGeopolitical},
	})

	political := strings.Index(digest, "[POLITICAL-FIGURE]")
	geo := strings.Index(digest, "[GEOPOLITICAL]")
	financial := strings.Index(digest, "[FINANCIAL]")

	if political == -1 || geo == -1 || financial == -1 {
		t.Fatalf("Expected all three section headers, got:\n%s", digest)
	}
	if !(political < geo && geo < financial) {
		t.Errorf("Expected fixed section order political-figure, geopolitical, financial, got:\n%s", digest)
	}
}

func TestFormatter_SkipsEmptySections(t *testing.T) {
	formatter := testFormatter()

	digest := formatter.Run([]Item{
		{Title: "Dow gains", SourceName: "CNBC", Category: CategoryFinancial},
	})

	if strings.Contains(digest, "[POLITICAL-FIGURE]") || strings.Contains(digest, "[GEOPOLITICAL]") {
		t.Errorf("Expected empty sections omitted, got:\n%s", digest)
	}
}

func TestFormatter_ItemRendering(t *testing.T) {
	formatter := testFormatter()

	digest := formatter.Run([]Item{
		{
			Title:       "Fed raises rates",
			Description: "Markets react to the decision",
			URL:         "https://example.com/fed",
			SourceName:  "CNBC",
			Category:    CategoryFinancial,
			AgeHours:    3.7,
			HasAge:      true,
		},
	})

	if !strings.Contains(digest, "1. [CNBC] Fed raises rates (3h ago)") {
		t.Errorf("Expected rendered item line, got:\n%s", digest)
	}
	if !strings.Contains(digest, "   Markets react to the decision") {
		t.Errorf("Expected description line, got:\n%s", digest)
	}
	if !strings.Contains(digest, "   https://example.com/fed") {
		t.Errorf("Expected URL line, got:\n%s", digest)
	}
}

func TestFormatter_MissingOptionalFields(t *testing.T) {
	formatter := testFormatter()

	// no description, no URL, no age: the item renders as a bare line
	digest := formatter.Run([]Item{
		{Title: "Fed raises rates", SourceName: "CNBC", Category: CategoryFinancial},
	})

	if !strings.Contains(digest, "1. [CNBC] Fed raises rates\n") {
		t.Errorf("Expected bare item line without age annotation, got:\n%s", digest)
	}
	if strings.Contains(digest, "ago)") || strings.Contains(digest, "just now") {
		t.Errorf("Expected no age annotation for unknown age, got:\n%s", digest)
	}
}

func TestFormatter_TranslatedTitlePreferred(t *testing.T) {
	formatter := testFormatter()

	digest := formatter.Run([]Item{
		{Title: "Fed raises rates", TitleTranslated: "美联储加息", SourceName: "CNBC", Category: CategoryFinancial},
	})

	if !strings.Contains(digest, "美联储加息") {
		t.Errorf("Expected translated title in output, got:\n%s", digest)
	}
}

func TestFormatter_CategoryLimit(t *testing.T) {
	formatter := testFormatter()

	items := make([]Item, 13)
	for i := range items {
		items[i] = Item{
			Title:      fmt.Sprintf("Story %d", i),
			SourceName: "CNBC",
			Category:   CategoryFinancial,
		}
	}

	digest := formatter.Run(items)

	if strings.Contains(digest, "11. [CNBC]") {
		t.Errorf("Expected section capped at 10 items, got:\n%s", digest)
	}
	if !strings.Contains(digest, "... and 3 more") {
		t.Errorf("Expected overflow trailer, got:\n%s", digest)
	}
}

func TestRelativeAge(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected string
	}{
		{"unknown age", Item{}, ""},
		{"just now", Item{AgeHours: 0.4, HasAge: true}, " (just now)"},
		{"hours", Item{AgeHours: 5.9, HasAge: true}, " (5h ago)"},
		{"days", Item{AgeHours: 49, HasAge: true}, " (2d ago)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relativeAge(tt.item); got != tt.expected {
				t.Errorf("relativeAge(%+v) = %q, expected %q", tt.item, got, tt.expected)
			}
		})
	}
}
