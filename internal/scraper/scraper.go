// Package scraper pulls OpenGraph metadata off article pages. It backs
// the RSS side channel only; search API records already carry an image
// and description.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Meta is the page metadata we care about.
type Meta struct {
	Description string
	Image       string
}

type Client struct {
	httpClient *http.Client
}

func New(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// PageMeta fetches the page and extracts og:description / og:image,
// falling back to the plain meta description.
func (c *Client) PageMeta(ctx context.Context, pageURL string) (*Meta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	meta := &Meta{
		Description: metaContent(doc, `meta[property="og:description"]`),
		Image:       metaContent(doc, `meta[property="og:image"]`),
	}
	if meta.Description == "" {
		meta.Description = metaContent(doc, `meta[name="description"]`)
	}
	return meta, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
