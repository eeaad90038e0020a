// Package config loads all runtime settings for a single bot run.
package config

import (
	"fmt"
	"time"

	"github.com/cristalhq/aconfig"
)

// Config holds the secrets and tuning knobs for one pipeline run. It is
// built once in main and passed down explicitly; nothing reads ambient
// globals after startup.
type Config struct {
	// Required secrets
	NewsAPIKey    string `env:"NEWSAPI_KEY" required:"true"`
	WebhookURL    string `env:"DINGTALK_WEBHOOK" required:"true"`
	WebhookSecret string `env:"DINGTALK_SECRET" required:"true"`

	// Fetch settings
	Keywords    []string      `env:"KEYWORDS" default:"sewing thread"`
	MaxAgeDays  int           `env:"MAX_AGE_DAYS" default:"360"`
	PageSize    int           `env:"PAGE_SIZE" default:"50"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" default:"30s"`

	// Selection settings
	FreshWindow time.Duration `env:"FRESH_WINDOW" default:"48h"`
	MaxItems    int           `env:"MAX_ITEMS" default:"3"`

	// Optional RSS side channel
	FeedsConfigPath string `env:"FEEDS_CONFIG_PATH"`
	ScrapeMaxPages  int    `env:"SCRAPE_MAX_PAGES" default:"10"`

	// App settings
	Debug bool `env:"DEBUG"`
}

// Load reads configuration from the environment. A missing required
// secret fails the whole run before any network activity.
func Load() (*Config, error) {
	var cfg Config

	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		SkipFiles: true,
	})
	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.NewsAPIKey == "" {
		return fmt.Errorf("NEWSAPI_KEY is required")
	}
	if c.WebhookURL == "" {
		return fmt.Errorf("DINGTALK_WEBHOOK is required")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("DINGTALK_SECRET is required")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	if c.MaxAgeDays <= 0 {
		return fmt.Errorf("MAX_AGE_DAYS must be positive, got %d", c.MaxAgeDays)
	}
	if c.MaxItems <= 0 {
		return fmt.Errorf("MAX_ITEMS must be positive, got %d", c.MaxItems)
	}
	if c.PageSize <= 0 || c.PageSize > 100 {
		return fmt.Errorf("PAGE_SIZE must be in 1..100, got %d", c.PageSize)
	}
	return nil
}

// MaxAge is the fetch-stage recency window.
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}
