// Package remote calls the briefcast proxy's POST /api/summarize.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"briefcast/internal/summary"

	"github.com/sirupsen/logrus"
)

const defaultEndpoint = "http://localhost:8080/api/summarize"

// Client is a summary.Summarizer backed by the proxy endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for endpoint with a bounded request time.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type summarizeRequest struct {
	ArticleText string `json:"articleText"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error"`
}

// Summarize returns the proxy's summary. Empty input short-circuits to an
// empty result. Every failure is reported as summary.ErrCommunication; the
// cause is only logged.
func (c *Client) Summarize(ctx context.Context, articleText string) (string, error) {
	if articleText == "" {
		return "", nil
	}

	text, err := c.do(ctx, articleText)
	if err != nil {
		logrus.WithError(err).WithField("endpoint", c.endpoint).Warn("summarize request failed")
		return "", summary.ErrCommunication
	}
	return text, nil
}

func (c *Client) do(ctx context.Context, articleText string) (string, error) {
	body, err := json.Marshal(summarizeRequest{ArticleText: articleText})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var out summarizeResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, out.Error)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if strings.TrimSpace(out.Summary) == "" {
		return "", summary.ErrEmptySummary
	}

	return out.Summary, nil
}
