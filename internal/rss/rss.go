// Package rss is the optional second news source: a YAML list of feeds
// whose items join the same candidate pipeline as the search API.
package rss

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"dingnews/internal/logger"
	"dingnews/internal/news"
	"dingnews/internal/scraper"
)

// publishedAtLayout matches the search API wire format so feed items go
// through the exact same timestamp filter as API articles.
const publishedAtLayout = "2006-01-02T15:04:05Z"

// FeedsConfig is the YAML config structure:
//
//	feeds:
//	  - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the feed URL list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse feeds config: %w", err)
	}
	return cfg.Feeds, nil
}

// FeedSource adapts one RSS feed to the collector's Source. If a page
// scraper is attached, items missing a description or image get
// enriched from their page metadata, up to maxEnrich pages per feed.
type FeedSource struct {
	url       string
	parser    *gofeed.Parser
	scraper   *scraper.Client
	maxEnrich int
}

func NewFeedSource(url string, sc *scraper.Client, maxEnrich int) *FeedSource {
	return &FeedSource{
		url:       url,
		parser:    gofeed.NewParser(),
		scraper:   sc,
		maxEnrich: maxEnrich,
	}
}

func (s *FeedSource) Name() string {
	return "rss:" + s.url
}

func (s *FeedSource) Fetch(ctx context.Context) ([]news.Raw, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	sourceName := feed.Title
	enriched := 0

	raws := make([]news.Raw, 0, len(feed.Items))
	for _, item := range feed.Items {
		raw := news.Raw{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			Source:      sourceName,
			PublishedAt: formatPublished(item.PublishedParsed),
		}
		if item.Image != nil {
			raw.Image = item.Image.URL
		}

		if s.scraper != nil && enriched < s.maxEnrich && raw.URL != "" &&
			(raw.Description == "" || raw.Image == "") {
			enriched++
			meta, err := s.scraper.PageMeta(ctx, raw.URL)
			if err != nil {
				logger.Debug("page meta fetch failed", "url", raw.URL, "err", err)
			} else {
				if raw.Description == "" {
					raw.Description = meta.Description
				}
				if raw.Image == "" {
					raw.Image = meta.Image
				}
			}
		}

		raws = append(raws, raw)
	}
	return raws, nil
}

// formatPublished normalizes a feed timestamp to the wire layout; items
// without a parseable date come out empty and get filtered downstream.
func formatPublished(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(publishedAtLayout)
}
