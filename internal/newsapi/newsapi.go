// Package newsapi is a minimal client for the NewsAPI "everything"
// search endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dingnews/internal/news"
)

const defaultBaseURL = "https://newsapi.org/v2/everything"

type Client struct {
	apiKey     string
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

func NewClient(apiKey string, pageSize int, timeout time.Duration) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURL overrides the endpoint, used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// searchResponse mirrors the endpoint's JSON body. Every article field
// is optional on the wire.
type searchResponse struct {
	Status   string       `json:"status"`
	Total    int          `json:"totalResults"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// Search issues one GET for the keyword, newest first.
func (c *Client) Search(ctx context.Context, keyword string) ([]news.Raw, error) {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("apiKey", c.apiKey)
	params.Set("pageSize", strconv.Itoa(c.pageSize))
	params.Set("sortBy", "publishedAt")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	raws := make([]news.Raw, 0, len(sr.Articles))
	for _, a := range sr.Articles {
		raws = append(raws, news.Raw{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Image:       a.URLToImage,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return raws, nil
}

// KeywordSource adapts one keyword query to the collector's Source.
type KeywordSource struct {
	client  *Client
	keyword string
}

func (c *Client) Source(keyword string) *KeywordSource {
	return &KeywordSource{client: c, keyword: keyword}
}

func (s *KeywordSource) Name() string {
	return "newsapi:" + s.keyword
}

func (s *KeywordSource) Fetch(ctx context.Context) ([]news.Raw, error) {
	return s.client.Search(ctx, s.keyword)
}
