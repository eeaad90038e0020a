// Package news holds the article model and the filter/select pipeline.
package news

import (
	"strings"
	"time"
)

// publishedAtLayout is the only accepted timestamp format. Anything the
// search API returns with an offset or fractional seconds is skipped.
const publishedAtLayout = "2006-01-02T15:04:05Z"

// publishedDisplayLayout is what ends up in the digest message.
const publishedDisplayLayout = "2006-01-02 15:04"

// Raw is an article record as a source returns it, before any filtering.
// All fields are optional; the collector decides what survives.
type Raw struct {
	Title       string
	Description string
	URL         string
	Image       string
	Source      string
	PublishedAt string
}

// Article is a candidate that passed the fetch-stage filters.
type Article struct {
	Title       string
	Description string
	URL         string
	Image       string
	Source      string
	// Region has no data source today; it is kept so the renderer's
	// source line format stays stable if one appears.
	Region      string
	Published   string
	PublishedAt time.Time
}

// ParsePublishedAt parses a timestamp against the exact wire format.
// The second return is false for absent or malformed values; callers
// skip those records instead of failing the run.
func ParsePublishedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(publishedAtLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// hasWebPImage reports whether the image URL mentions the webp format
// anywhere in the string, case-insensitively.
func hasWebPImage(image string) bool {
	return strings.Contains(strings.ToLower(image), "webp")
}
