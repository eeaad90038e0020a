// Package app wires the pipeline together: collect, select, render,
// send. One pass per process.
package app

import (
	"context"
	"math/rand"
	"time"

	"dingnews/internal/config"
	"dingnews/internal/dingtalk"
	"dingnews/internal/logger"
	"dingnews/internal/metrics"
	"dingnews/internal/news"
	"dingnews/internal/newsapi"
	"dingnews/internal/rss"
	"dingnews/internal/scraper"
)

// messageTitle is the fixed label DingTalk shows in the chat list.
const messageTitle = "📢最新速览"

// Webhook is the outbound message sink.
type Webhook interface {
	SendMarkdown(ctx context.Context, title, text string) error
}

type App struct {
	collector   *news.Collector
	webhook     Webhook
	freshWindow time.Duration
	maxItems    int
	rng         *rand.Rand
	now         func() time.Time
}

// New assembles the pipeline from config: one search source per
// keyword, plus RSS feed sources when a feeds file is configured. A
// broken feeds file downgrades to search-only with a warning.
func New(cfg *config.Config) *App {
	client := newsapi.NewClient(cfg.NewsAPIKey, cfg.PageSize, cfg.HTTPTimeout)

	sources := make([]news.Source, 0, len(cfg.Keywords))
	for _, keyword := range cfg.Keywords {
		sources = append(sources, client.Source(keyword))
	}

	if cfg.FeedsConfigPath != "" {
		feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
		if err != nil {
			logger.Warn("feeds config not loaded, continuing with search only",
				"path", cfg.FeedsConfigPath, "err", err)
		} else {
			sc := scraper.New(cfg.HTTPTimeout)
			for _, feedURL := range feeds {
				sources = append(sources, rss.NewFeedSource(feedURL, sc, cfg.ScrapeMaxPages))
			}
		}
	}

	return &App{
		collector:   news.NewCollector(sources, cfg.MaxAge()),
		webhook:     dingtalk.New(cfg.WebhookURL, cfg.WebhookSecret, cfg.HTTPTimeout),
		freshWindow: cfg.FreshWindow,
		maxItems:    cfg.MaxItems,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

// Run executes one full pass. A failed send is logged, never returned:
// the run itself is considered complete either way.
func (a *App) Run(ctx context.Context) {
	start := a.now()

	candidates := a.collector.Collect(ctx)
	logger.Info("candidates collected", "count", len(candidates))

	selected := news.Select(candidates, a.now(), a.freshWindow, a.maxItems, a.rng)
	metrics.Global.AddSelected(int64(len(selected)))

	if len(selected) == 0 {
		logger.Warn("no news to push")
		metrics.Global.SetLastRun()
		metrics.Global.RecordProcessingTime(time.Since(start))
		return
	}

	for i, article := range selected {
		logger.Info("selected", "n", i+1, "title", article.Title,
			"published", article.Published, "url", article.URL)
	}

	if err := a.webhook.SendMarkdown(ctx, messageTitle, FormatMessage(selected)); err != nil {
		logger.Error("webhook send failed", "err", err)
		metrics.Global.SetError(err.Error())
	} else {
		metrics.Global.IncrementWebhookMessagesSent()
		metrics.Global.SetLastRun()
	}

	metrics.Global.RecordProcessingTime(time.Since(start))
}
