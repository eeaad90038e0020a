package news

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSource struct {
	name string
	raws []Raw
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context) ([]Raw, error) {
	return s.raws, s.err
}

var testNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

func newTestCollector(maxAge time.Duration, sources ...Source) *Collector {
	c := NewCollector(sources, maxAge)
	c.now = func() time.Time { return testNow }
	return c
}

// stamp renders an offset from testNow in the wire format.
func stamp(offset time.Duration) string {
	return testNow.Add(offset).Format("2006-01-02T15:04:05Z")
}

func TestCollect_DedupKeepsFirstSeenURL(t *testing.T) {
	src := &stubSource{name: "s", raws: []Raw{
		{Title: "first", URL: "https://example.com/a", PublishedAt: stamp(-time.Hour)},
		{Title: "second", URL: "https://example.com/a", PublishedAt: stamp(-time.Hour)},
	}}

	got := newTestCollector(48*time.Hour, src).Collect(context.Background())

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Title != "first" {
		t.Errorf("kept %q, want the first-encountered article", got[0].Title)
	}
}

func TestCollect_DedupSpansSources(t *testing.T) {
	a := &stubSource{name: "a", raws: []Raw{
		{URL: "https://example.com/x", PublishedAt: stamp(-time.Hour)},
	}}
	b := &stubSource{name: "b", raws: []Raw{
		{URL: "https://example.com/x", PublishedAt: stamp(-time.Hour)},
		{URL: "https://example.com/y", PublishedAt: stamp(-time.Hour)},
	}}

	got := newTestCollector(48*time.Hour, a, b).Collect(context.Background())

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	seen := map[string]bool{}
	for _, article := range got {
		if seen[article.URL] {
			t.Errorf("duplicate url in result: %s", article.URL)
		}
		seen[article.URL] = true
	}
}

func TestCollect_SkipsWebPImages(t *testing.T) {
	src := &stubSource{name: "s", raws: []Raw{
		{URL: "https://example.com/1", Image: "https://cdn.example.com/pic.webp", PublishedAt: stamp(-time.Hour)},
		{URL: "https://example.com/2", Image: "https://cdn.example.com/pic.WEBP?w=640", PublishedAt: stamp(-time.Hour)},
		{URL: "https://example.com/3", Image: "https://cdn.example.com/pic.jpg", PublishedAt: stamp(-time.Hour)},
	}}

	got := newTestCollector(48*time.Hour, src).Collect(context.Background())

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].URL != "https://example.com/3" {
		t.Errorf("survivor = %s, want the jpg article", got[0].URL)
	}
}

func TestCollect_SkipsBadTimestamps(t *testing.T) {
	// Absent, wrong format, offset instead of a literal Z, good, too old.
	src := &stubSource{name: "s", raws: []Raw{
		{URL: "https://example.com/1"},
		{URL: "https://example.com/2", PublishedAt: "2026-08-23 10:00:00"},
		{URL: "https://example.com/3", PublishedAt: "2026-08-23T10:00:00+02:00"},
		{URL: "https://example.com/4", PublishedAt: stamp(-2 * time.Hour)},
		{URL: "https://example.com/5", PublishedAt: stamp(-100 * 24 * time.Hour)},
	}}

	got := newTestCollector(48*time.Hour, src).Collect(context.Background())

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].URL != "https://example.com/4" {
		t.Errorf("survivor = %s", got[0].URL)
	}
}

func TestCollect_SkipsMissingURL(t *testing.T) {
	src := &stubSource{name: "s", raws: []Raw{
		{Title: "no url", PublishedAt: stamp(-time.Hour)},
	}}

	if got := newTestCollector(48*time.Hour, src).Collect(context.Background()); len(got) != 0 {
		t.Fatalf("got %d candidates, want 0", len(got))
	}
}

func TestCollect_FailedSourceIsSkipped(t *testing.T) {
	broken := &stubSource{name: "broken", err: errors.New("status 500")}
	ok := &stubSource{name: "ok", raws: []Raw{
		{URL: "https://example.com/a", PublishedAt: stamp(-time.Hour)},
	}}

	got := newTestCollector(48*time.Hour, broken, ok).Collect(context.Background())

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1 from the healthy source", len(got))
	}
}

func TestCollect_FieldDefaultsAndFormatting(t *testing.T) {
	published := testNow.Add(-time.Hour)
	src := &stubSource{name: "s", raws: []Raw{
		{URL: "https://example.com/a", Image: "  https://cdn.example.com/a.png  ", PublishedAt: stamp(-time.Hour)},
	}}

	got := newTestCollector(48*time.Hour, src).Collect(context.Background())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}

	a := got[0]
	if a.Title != "" || a.Description != "" || a.Source != "" {
		t.Errorf("missing fields should default to empty strings: %+v", a)
	}
	if a.Region != "" {
		t.Errorf("region must stay empty, got %q", a.Region)
	}
	if a.Image != "https://cdn.example.com/a.png" {
		t.Errorf("image not trimmed: %q", a.Image)
	}
	if want := published.Format("2006-01-02 15:04"); a.Published != want {
		t.Errorf("published = %q, want %q", a.Published, want)
	}
	if !a.PublishedAt.Equal(published) {
		t.Errorf("raw timestamp = %v, want %v", a.PublishedAt, published)
	}
}

func TestParsePublishedAt(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2026-08-23T10:00:00Z", true},
		{"", false},
		{"2026-08-23T10:00:00", false},
		{"2026-08-23T10:00:00+00:00", false},
		{"2026-08-23 10:00:00Z", false},
	}
	for _, tt := range tests {
		if _, ok := ParsePublishedAt(tt.in); ok != tt.ok {
			t.Errorf("ParsePublishedAt(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}
