package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PushChannel posts the digest to a ServerChan-compatible endpoint as a
// single form POST. The structured response code decides the outcome:
// code 0 means delivered, anything else is a failure with the upstream
// message attached.
type PushChannel struct {
	sendKey    string
	endpoint   string
	httpClient *http.Client
}

func NewPushChannel(sendKey, endpoint string) *PushChannel {
	return &PushChannel{
		sendKey:    sendKey,
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *PushChannel) Name() string {
	return "push"
}

func (c *PushChannel) Enabled() bool {
	return c.sendKey != ""
}

func (c *PushChannel) Send(ctx context.Context, subject, body string) error {
	form := url.Values{}
	form.Set("title", subject)
	form.Set("desp", body)

	endpoint := fmt.Sprintf("%s/%s.send", c.endpoint, c.sendKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push endpoint returned %d %s", resp.StatusCode, resp.Status)
	}

	var result struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode push response: %w", err)
	}

	if result.Code != 0 {
		return fmt.Errorf("push rejected with code %d: %s%s", result.Code, result.Message, pushDiagnosis(result.Code))
	}

	return nil
}

// pushDiagnosis maps well-known upstream error codes to actionable hints.
func pushDiagnosis(code int) string {
	switch code {
	case 40001:
		return " (send key may have expired, obtain a new one)"
	case 40002:
		return " (send key is malformed)"
	default:
		return ""
	}
}
