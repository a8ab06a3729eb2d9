// Package feed lists news headlines from RSS/Atom feeds and extracts the
// readable text of an article page.
package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"briefcast/internal/domain/article"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
)

const fetchTimeout = 30 * time.Second

var ErrNoText = errors.New("no readable text found")

// Feed is an article.Source over one RSS/Atom feed.
type Feed struct {
	name       string
	url        string
	parser     *gofeed.Parser
	httpClient *http.Client
}

// New resolves a preset name or feed URL.
func New(feed string) *Feed {
	if feed == "" {
		feed = DefaultPreset
	}
	httpClient := &http.Client{Timeout: fetchTimeout}

	parser := gofeed.NewParser()
	parser.Client = httpClient

	return &Feed{
		name:       feed,
		url:        ResolveURL(feed),
		parser:     parser,
		httpClient: httpClient,
	}
}

// ListHeadlines returns up to n items in feed order.
func (f *Feed) ListHeadlines(ctx context.Context, n int) ([]*article.Headline, error) {
	if n <= 0 {
		n = DefaultCount
	}

	parsed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(parsed.Items), n)
	headlines := make([]*article.Headline, 0, count)

	for _, item := range parsed.Items[:count] {
		id := item.GUID
		if id == "" && item.Link != "" {
			id = generateID(item.Link)
		}

		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		headlines = append(headlines, &article.Headline{
			ID:        id,
			Title:     strings.TrimSpace(item.Title),
			URL:       item.Link,
			Published: published,
			Summary:   summary,
			Source:    parsed.Title,
		})
	}

	logrus.WithFields(logrus.Fields{"feed": f.name, "count": len(headlines)}).Debug("feed loaded")
	return headlines, nil
}

// LoadArticle fetches the headline's page and extracts its article text.
func (f *Feed) LoadArticle(ctx context.Context, h *article.Headline) (*article.Article, error) {
	if h == nil {
		return nil, fmt.Errorf("nil headline")
	}
	a, err := Extract(ctx, f.httpClient, h.URL)
	if err != nil {
		return nil, err
	}
	if a.Title == "" {
		a.Title = h.Title
	}
	return a, nil
}

// Extract downloads pageURL and returns its readable text.
func Extract(ctx context.Context, client *http.Client, pageURL string) (*article.Article, error) {
	if !strings.HasPrefix(pageURL, "http") {
		return nil, fmt.Errorf("invalid url: %s", pageURL)
	}
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	extracted, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	text := strings.TrimSpace(extracted.TextContent)
	if text == "" {
		return nil, ErrNoText
	}

	return &article.Article{
		Title:    extracted.Title,
		Byline:   extracted.Byline,
		URL:      pageURL,
		Text:     text,
		Excerpt:  extracted.Excerpt,
		SiteName: extracted.SiteName,
	}, nil
}

// generateID creates a stable ID from a URL
func generateID(u string) string {
	hash := sha256.Sum256([]byte(u))
	return hex.EncodeToString(hash[:])[:16]
}
