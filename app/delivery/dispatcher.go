package delivery

import (
	"context"
	"log/slog"
)

// Channel is one independent delivery path with its own credential and
// failure domain.
type Channel interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, subject, body string) error
}

// Result is the outcome of one channel attempt. Failures carry a
// human-readable diagnosis; the dispatcher never raises.
type Result struct {
	Channel string
	OK      bool
	Detail  string
}

// Dispatcher attempts delivery on every configured channel. Outcomes are
// independent: one channel failing neither blocks nor aborts the others.
type Dispatcher struct {
	channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

func (d *Dispatcher) Run(ctx context.Context, subject, body string) []Result {
	results := make([]Result, 0, len(d.channels))

	for _, channel := range d.channels {
		if !channel.Enabled() {
			slog.Info("Channel not configured, skipping", "channel", channel.Name())
			results = append(results, Result{Channel: channel.Name(), Detail: "skipped: not configured"})
			continue
		}

		if err := channel.Send(ctx, subject, body); err != nil {
			slog.Warn("Delivery failed", "channel", channel.Name(), "error", err)
			results = append(results, Result{Channel: channel.Name(), Detail: err.Error()})
			continue
		}

		slog.Info("Delivery succeeded", "channel", channel.Name())
		results = append(results, Result{Channel: channel.Name(), OK: true, Detail: "delivered"})
	}

	return results
}
