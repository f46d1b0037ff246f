package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Search-API tier (disabled when the key is absent)
	SearchAPIKey   string `long:"news-api-key" env:"NEWS_API_KEY" description:"Search API key (tier disabled when unset)"`
	SearchEndpoint string `long:"news-api-url" env:"NEWS_API_URL" default:"https://newsapi.org/v2/everything" description:"Search API endpoint"`

	// Push channel (skipped when the send key is absent)
	PushSendKey  string `long:"push-send-key" env:"PUSH_SEND_KEY" description:"Push notification send key (channel skipped when unset)"`
	PushEndpoint string `long:"push-endpoint" env:"PUSH_ENDPOINT" default:"https://sctapi.ftqq.com" description:"Push notification endpoint base URL"`

	// Mail channel (skipped when sender or password is absent)
	EmailSender    string `long:"email-sender" env:"EMAIL_SENDER" description:"Mail sender address"`
	EmailPassword  string `long:"email-password" env:"EMAIL_PASSWORD" description:"Mail password or authorization code"`
	EmailRecipient string `long:"email-recipient" env:"EMAIL_RECIPIENT" description:"Mail recipient (defaults to sender)"`
	SMTPHost       string `long:"smtp-server" env:"SMTP_SERVER" default:"smtp.qq.com" description:"SMTP server host"`
	SMTPPort       int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port for STARTTLS"`

	// Translation (disabled when the endpoint is absent)
	TranslateURL    string `long:"translate-url" env:"TRANSLATE_URL" description:"Translation endpoint (translation disabled when unset)"`
	TranslateSource string `long:"translate-source" env:"TRANSLATE_SOURCE" default:"en" description:"Translation source language code"`
	TranslateTarget string `long:"translate-target" env:"TRANSLATE_TARGET" default:"zh" description:"Translation target language code"`

	// Acquisition policy
	RecencyHours int    `long:"recency-hours" env:"RECENCY_HOURS" default:"72" description:"Maximum item age in hours admitted by the feed tier"`
	MaxPerSource int    `long:"max-per-source" env:"MAX_PER_SOURCE" default:"15" description:"Maximum entries taken per feed endpoint"`
	SourcesFile  string `long:"sources-file" env:"SOURCES_FILE" description:"YAML file with feed endpoints and keyword sets (built-in defaults when unset)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Market Brief/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Shanghai)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SearchAPIKey:    raw.SearchAPIKey,
		SearchEndpoint:  raw.SearchEndpoint,
		PushSendKey:     raw.PushSendKey,
		PushEndpoint:    raw.PushEndpoint,
		EmailSender:     raw.EmailSender,
		EmailPassword:   raw.EmailPassword,
		EmailRecipient:  raw.EmailRecipient,
		SMTPHost:        raw.SMTPHost,
		SMTPPort:        raw.SMTPPort,
		TranslateURL:    raw.TranslateURL,
		TranslateSource: raw.TranslateSource,
		TranslateTarget: raw.TranslateTarget,
		RecencyHours:    raw.RecencyHours,
		MaxPerSource:    raw.MaxPerSource,
		SourcesFile:     raw.SourcesFile,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
