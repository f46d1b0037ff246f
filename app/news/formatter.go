package news

import (
	"fmt"
	"strings"
	"time"
)

// EmptyDigestMessage is delivered when the pipeline found nothing at all.
const EmptyDigestMessage = "No market news found, but the system is running normally. " +
	"If this persists, check that the feed endpoints are reachable."

const defaultCategoryLimit = 10

// Formatter renders the normalized, classified, ranked list into a single
// plain-text digest. Output is deterministic for a given input list apart
// from the generation timestamp in the header.
type Formatter struct {
	categoryLimit int
	now           func() time.Time
}

func NewFormatter() *Formatter {
	return &Formatter{
		categoryLimit: defaultCategoryLimit,
		now:           time.Now,
	}
}

func (f *Formatter) Run(items []Item) string {
	if len(items) == 0 {
		return EmptyDigestMessage
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Market Brief - %s\n", f.now().Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	priorityCount := 0
	grouped := make(map[Category][]Item, len(CategoryOrder))
	for _, item := range items {
		if item.IsPriority {
			priorityCount++
		}
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	fmt.Fprintf(&b, "Total: %d | Priority: %d\n", len(items), priorityCount)
	counts := make([]string, 0, len(CategoryOrder))
	for _, cat := range CategoryOrder {
		counts = append(counts, fmt.Sprintf("%s: %d", cat, len(grouped[cat])))
	}
	b.WriteString(strings.Join(counts, " | ") + "\n")

	for _, cat := range CategoryOrder {
		section := grouped[cat]
		if len(section) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n[%s]\n", strings.ToUpper(string(cat)))
		b.WriteString(strings.Repeat("-", 50) + "\n")

		shown := section
		if len(shown) > f.categoryLimit {
			shown = shown[:f.categoryLimit]
		}

		for idx, item := range shown {
			fmt.Fprintf(&b, "%d. [%s] %s%s\n", idx+1, item.SourceName, item.DisplayTitle(), relativeAge(item))
			if desc := item.DisplayDescription(); desc != "" {
				fmt.Fprintf(&b, "   %s\n", desc)
			}
			if item.URL != "" {
				fmt.Fprintf(&b, "   %s\n", item.URL)
			}
		}

		if hidden := len(section) - len(shown); hidden > 0 {
			fmt.Fprintf(&b, "... and %d more\n", hidden)
		}
	}

	return b.String()
}

// relativeAge renders the age annotation, or "" when the publish time was
// never parsed.
func relativeAge(item Item) string {
	if !item.HasAge {
		return ""
	}

	hours := int(item.AgeHours)
	switch {
	case hours < 1:
		return " (just now)"
	case hours < 24:
		return fmt.Sprintf(" (%dh ago)", hours)
	default:
		return fmt.Sprintf(" (%dd ago)", hours/24)
	}
}
