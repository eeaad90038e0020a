package news

import (
	"context"
	"strings"
	"time"

	"dingnews/internal/logger"
	"dingnews/internal/metrics"
)

// Source is anything that can produce raw article records: one NewsAPI
// keyword query, one RSS feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Raw, error)
}

// Collector runs every source in order and accumulates candidates.
// Sources are fetched sequentially; a failing source is logged and
// skipped, never retried within the run.
type Collector struct {
	sources []Source
	maxAge  time.Duration
	now     func() time.Time
	seen    map[string]struct{}
}

func NewCollector(sources []Source, maxAge time.Duration) *Collector {
	return &Collector{
		sources: sources,
		maxAge:  maxAge,
		now:     time.Now,
		seen:    make(map[string]struct{}),
	}
}

// Collect fetches all sources and returns the surviving candidates in
// fetch order. The seen-set spans sources, so a URL that shows up under
// two keywords is kept only where it appeared first.
func (c *Collector) Collect(ctx context.Context) []Article {
	var all []Article

	for _, src := range c.sources {
		raws, err := src.Fetch(ctx)
		if err != nil {
			logger.Warn("source fetch failed, skipping", "source", src.Name(), "err", err)
			continue
		}
		logger.Info("source fetched", "source", src.Name(), "records", len(raws))

		for _, raw := range raws {
			article, ok := c.filter(raw)
			if !ok {
				continue
			}
			all = append(all, article)
		}
	}

	metrics.Global.AddCandidates(int64(len(all)))
	return all
}

// filter applies the fetch-stage rules to a single record, in order:
// timestamp, age window, URL dedup, image format. A record that fails
// the image check has already marked its URL as seen.
func (c *Collector) filter(raw Raw) (Article, bool) {
	publishedAt, ok := ParsePublishedAt(raw.PublishedAt)
	if !ok {
		return Article{}, false
	}

	if publishedAt.Before(c.now().UTC().Add(-c.maxAge)) {
		return Article{}, false
	}

	if raw.URL == "" {
		return Article{}, false
	}
	if _, dup := c.seen[raw.URL]; dup {
		metrics.Global.IncrementDuplicatesFiltered()
		return Article{}, false
	}
	c.seen[raw.URL] = struct{}{}

	image := strings.TrimSpace(raw.Image)
	if hasWebPImage(image) {
		metrics.Global.IncrementWebPFiltered()
		return Article{}, false
	}

	return Article{
		Title:       raw.Title,
		Description: raw.Description,
		URL:         raw.URL,
		Image:       image,
		Source:      raw.Source,
		Region:      "",
		Published:   publishedAt.Format(publishedDisplayLayout),
		PublishedAt: publishedAt,
	}, true
}
