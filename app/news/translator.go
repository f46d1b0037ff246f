package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
)

const maxTranslateInput = 500 // code points

// Translator calls a LibreTranslate-shaped HTTP endpoint. Translation is
// best-effort: callers keep the original text on any failure.
type Translator struct {
	endpoint   string
	source     language.Tag
	target     language.Tag
	script     *unicode.RangeTable
	httpClient *http.Client
}

// NewTranslator validates the language codes and wires an HTTP client.
// Returns an error when either code does not parse as a BCP 47 tag.
func NewTranslator(endpoint, source, target string) (*Translator, error) {
	sourceTag, err := language.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid source language %q: %w", source, err)
	}
	targetTag, err := language.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", target, err)
	}

	return &Translator{
		endpoint:   endpoint,
		source:     sourceTag,
		target:     targetTag,
		script:     scriptTable(targetTag),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Run translates text, capped at 500 code points of input.
func (t *Translator) Run(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"q":      Truncate(text, maxTranslateInput),
		"source": t.source.String(),
		"target": t.target.String(),
		"format": "text",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translation endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("translation endpoint returned empty text")
	}

	return result.TranslatedText, nil
}

// InTargetScript reports whether text already contains runes of the target
// script, in which case translation is skipped.
func (t *Translator) InTargetScript(text string) bool {
	if t.script == nil {
		return false
	}
	for _, r := range text {
		if unicode.Is(t.script, r) {
			return true
		}
	}
	return false
}

// scriptTable maps the likely script of a language tag to a unicode range
// table. Unknown scripts disable the already-translated shortcut.
func scriptTable(tag language.Tag) *unicode.RangeTable {
	script, _ := tag.Script()
	switch script.String() {
	case "Hans", "Hant":
		return unicode.Han
	case "Cyrl":
		return unicode.Cyrillic
	case "Arab":
		return unicode.Arabic
	case "Kore":
		return unicode.Hangul
	case "Grek":
		return unicode.Greek
	case "Latn":
		return unicode.Latin
	default:
		return nil
	}
}
