package delivery

import (
	"context"
	"errors"
	"testing"
)

type stubChannel struct {
	name    string
	enabled bool
	sendErr error
	sent    bool
}

func (c *stubChannel) Name() string  { return c.name }
func (c *stubChannel) Enabled() bool { return c.enabled }

func (c *stubChannel) Send(ctx context.Context, subject, body string) error {
	c.sent = true
	return c.sendErr
}

func TestDispatcher_Run(t *testing.T) {
	disabled := &stubChannel{name: "push"}
	failing := &stubChannel{name: "mail", enabled: true, sendErr: errors.New("authentication failed")}
	working := &stubChannel{name: "webhook", enabled: true}

	results := NewDispatcher(disabled, failing, working).Run(context.Background(), "subject", "body")

	if len(results) != 3 {
		t.Fatalf("Expected a result per channel, got %d", len(results))
	}

	if results[0].OK || results[0].Detail != "skipped: not configured" {
		t.Errorf("Unexpected result for disabled channel: %+v", results[0])
	}
	if disabled.sent {
		t.Error("Expected disabled channel left untouched")
	}

	if results[1].OK || results[1].Detail != "authentication failed" {
		t.Errorf("Unexpected result for failing channel: %+v", results[1])
	}

	if !results[2].OK || results[2].Detail != "delivered" {
		t.Errorf("Unexpected result for working channel: %+v", results[2])
	}
	if !working.sent {
		t.Error("Expected working channel to send")
	}
}

func TestDispatcher_FailureDoesNotBlockOthers(t *testing.T) {
	first := &stubChannel{name: "push", enabled: true, sendErr: errors.New("push rejected")}
	second := &stubChannel{name: "mail", enabled: true}

	results := NewDispatcher(first, second).Run(context.Background(), "subject", "body")

	if !second.sent {
		t.Error("Expected second channel attempted after first failed")
	}
	if !results[1].OK {
		t.Errorf("Expected second channel to succeed, got %+v", results[1])
	}
}
