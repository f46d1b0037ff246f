package news

import (
	"context"
	"log/slog"
	"sort"
)

// unknownAgeHours sorts items without a parseable publish time after every
// item whose age is known.
const unknownAgeHours = 999.0

// TranslatorClient abstracts the translation collaborator so tests can
// substitute fakes. Satisfied by *Translator.
type TranslatorClient interface {
	Run(ctx context.Context, text string) (string, error)
	InTargetScript(text string) bool
}

// Normalizer deduplicates, optionally translates, and ranks the raw
// candidate list. Translation failures never fail the pipeline.
type Normalizer struct {
	translator TranslatorClient
}

// NewNormalizer wires an optional translator; nil disables translation.
func NewNormalizer(translator TranslatorClient) *Normalizer {
	return &Normalizer{translator: translator}
}

func (n *Normalizer) Run(ctx context.Context, items []Item) []Item {
	deduped := n.dedupe(items)

	if n.translator != nil {
		for i := range deduped {
			deduped[i].TitleTranslated = n.translate(ctx, deduped[i].Title)
			if deduped[i].Description != "" {
				deduped[i].DescTranslated = n.translate(ctx, deduped[i].Description)
			}
		}
	}

	n.rank(deduped)
	return deduped
}

// dedupe keeps the first occurrence of each distinct original title,
// preserving arrival order. Matching is case-sensitive and exact: two items
// with the same original title are the same logical article regardless of
// which source delivered them.
func (n *Normalizer) dedupe(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	unique := make([]Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Title]; ok {
			continue
		}
		seen[item.Title] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// translate returns the translated text, or "" when translation was skipped
// or failed so display falls back to the original.
func (n *Normalizer) translate(ctx context.Context, text string) string {
	if text == "" || n.translator.InTargetScript(text) {
		return ""
	}

	translated, err := n.translator.Run(ctx, text)
	if err != nil {
		slog.Warn("Translation failed, keeping original text", "error", err)
		return ""
	}
	return translated
}

// rank sorts priority items first, then more recent first within each
// group. The sort is stable so equal keys keep arrival order.
func (n *Normalizer) rank(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsPriority != items[j].IsPriority {
			return items[i].IsPriority
		}
		return effectiveAge(items[i]) < effectiveAge(items[j])
	})
}

func effectiveAge(item Item) float64 {
	if !item.HasAge {
		return unknownAgeHours
	}
	return item.AgeHours
}
