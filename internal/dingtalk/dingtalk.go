// Package dingtalk sends markdown messages to a DingTalk group robot
// webhook using the timestamp+sign scheme.
package dingtalk

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dingnews/internal/logger"
)

type Client struct {
	webhookURL string
	secret     string
	httpClient *http.Client
	now        func() time.Time
}

// New builds a webhook client. The webhook URL is the full robot URL
// including its access token query parameter.
func New(webhookURL, secret string, timeout time.Duration) *Client {
	return &Client{
		webhookURL: webhookURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Sign computes the webhook signature for a millisecond timestamp: an
// HMAC-SHA256 over "{timestamp}\n{secret}" keyed with the secret,
// base64-encoded and then escaped for use as a query value. The server
// only accepts the signature together with the exact same timestamp.
func Sign(timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "\n" + secret))
	return url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))
}

// signedURL appends a fresh timestamp and signature to the webhook URL.
// Recomputed on every send; signatures are not reusable.
func (c *Client) signedURL() string {
	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	return c.webhookURL + "&timestamp=" + timestamp + "&sign=" + Sign(timestamp, c.secret)
}

type markdownPayload struct {
	MsgType  string   `json:"msgtype"`
	Markdown markdown `json:"markdown"`
}

type markdown struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// SendMarkdown posts one markdown message. The response status and body
// are always logged; a non-200 status comes back as an error for the
// caller to log, nothing retries.
func (c *Client) SendMarkdown(ctx context.Context, title, text string) error {
	body, err := json.Marshal(markdownPayload{
		MsgType:  "markdown",
		Markdown: markdown{Title: title, Text: text},
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.signedURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	logger.Info("webhook response", "status", resp.StatusCode, "body", string(respBody))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
