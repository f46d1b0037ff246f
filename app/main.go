package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lysyi3m/market-brief/app/cfg"
	"github.com/lysyi3m/market-brief/app/config"
	"github.com/lysyi3m/market-brief/app/delivery"
	"github.com/lysyi3m/market-brief/app/news"
	"github.com/lysyi3m/market-brief/app/sources"
)

func main() {
	// .env is optional; environment variables win either way
	godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)
	slog.Info("Starting market brief run", "version", appCfg.Version)

	sourcesCfg, err := config.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load sources configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("Sources configuration loaded",
		"feeds", len(sourcesCfg.Feeds),
		"scrape_pages", len(sourcesCfg.ScrapePages),
		"search_keywords", len(sourcesCfg.SearchKeywords))

	ctx := context.Background()

	aggregator := sources.NewAggregator(appCfg, sourcesCfg)
	items := aggregator.Run(ctx)
	slog.Info("Acquisition finished", "items", len(items))

	classifier := news.NewClassifier(
		sourcesCfg.Categories.PoliticalFigure,
		sourcesCfg.Categories.MarketImpact,
		sourcesCfg.Categories.Geopolitical,
		sourcesCfg.Categories.Financial,
		sourcesCfg.PriorityKeywords,
	)
	items = classifier.Run(items)

	normalizer := news.NewNormalizer(buildTranslator(appCfg))
	items = normalizer.Run(ctx, items)
	slog.Info("Normalization finished", "items", len(items))

	digest := news.NewFormatter().Run(items)
	subject := fmt.Sprintf("Market Brief - %s", time.Now().Format("2006-01-02"))

	dispatcher := delivery.NewDispatcher(
		delivery.NewPushChannel(appCfg.PushSendKey, appCfg.PushEndpoint),
		delivery.NewMailChannel(appCfg.EmailSender, appCfg.EmailPassword,
			appCfg.MailRecipient(), appCfg.SMTPHost, appCfg.SMTPPort),
	)

	delivered := 0
	for _, result := range dispatcher.Run(ctx, subject, digest) {
		if result.OK {
			delivered++
		}
	}

	slog.Info("Run complete", "items", len(items), "delivered_channels", delivered)
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// buildTranslator returns nil when translation is not configured, which
// disables the translation stage entirely.
func buildTranslator(appCfg *cfg.Cfg) news.TranslatorClient {
	if !appCfg.TranslateEnabled() {
		slog.Info("Translation endpoint not configured, skipping translation")
		return nil
	}

	translator, err := news.NewTranslator(appCfg.TranslateURL, appCfg.TranslateSource, appCfg.TranslateTarget)
	if err != nil {
		slog.Warn("Translator misconfigured, continuing without translation", "error", err)
		return nil
	}

	return translator
}
