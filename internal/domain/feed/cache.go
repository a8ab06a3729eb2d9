package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"briefcast/internal/domain/article"

	"github.com/sirupsen/logrus"
)

// Cache keeps the last headlines of a source on disk so that listing them
// again within maxAge does not refetch the feed.
type Cache struct {
	source    article.Source
	key       string
	cacheFile string
	maxAge    time.Duration
}

// cachedHeadlines is the on-disk format
type cachedHeadlines struct {
	Feed        string              `json:"feed"`
	Headlines   []*article.Headline `json:"headlines"`
	LastUpdated time.Time           `json:"last_updated"`
}

// NewCache wraps source with a cache file for key under cacheDir.
func NewCache(source article.Source, cacheDir, key string, maxAge time.Duration) *Cache {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		logrus.WithError(err).Warn("Failed to create cache directory")
	}

	sum := sha256.Sum256([]byte(key))
	return &Cache{
		source:    source,
		key:       key,
		cacheFile: filepath.Join(cacheDir, "headlines_"+hex.EncodeToString(sum[:8])+".json"),
		maxAge:    maxAge,
	}
}

// ListHeadlines returns cached headlines while fresh and enough of them,
// otherwise fetches. When a fetch fails the last cached list is returned
// instead of the error; articles are still loaded over the network.
func (c *Cache) ListHeadlines(ctx context.Context, n int) ([]*article.Headline, error) {
	if cached, err := c.load(); err == nil && c.isFresh(cached) && len(cached.Headlines) >= n {
		logrus.WithField("headlines", len(cached.Headlines)).Debug("Loading headlines from cache")
		return limit(cached.Headlines, n), nil
	}

	headlines, err := c.source.ListHeadlines(ctx, n)
	if err != nil {
		logrus.WithError(err).Warn("Feed fetch failed, trying stale cache")
		if cached, cacheErr := c.load(); cacheErr == nil {
			return limit(cached.Headlines, n), nil
		}
		return nil, fmt.Errorf("failed to fetch feed and no cache available: %w", err)
	}

	if err := c.save(headlines); err != nil {
		logrus.WithError(err).Warn("Failed to save to cache")
	}
	return headlines, nil
}

func (c *Cache) LoadArticle(ctx context.Context, h *article.Headline) (*article.Article, error) {
	return c.source.LoadArticle(ctx, h)
}

func (c *Cache) isFresh(cached *cachedHeadlines) bool {
	return time.Since(cached.LastUpdated) < c.maxAge
}

func (c *Cache) load() (*cachedHeadlines, error) {
	file, err := os.Open(c.cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	var cached cachedHeadlines
	if err := json.NewDecoder(file).Decode(&cached); err != nil {
		return nil, fmt.Errorf("failed to decode cache file: %w", err)
	}
	return &cached, nil
}

func (c *Cache) save(headlines []*article.Headline) error {
	file, err := os.Create(c.cacheFile)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cachedHeadlines{
		Feed:        c.key,
		Headlines:   headlines,
		LastUpdated: time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to encode cache data: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"headlines": len(headlines),
		"file":      c.cacheFile,
	}).Debug("Saved headlines to cache")
	return nil
}

func limit(headlines []*article.Headline, n int) []*article.Headline {
	if n > 0 && len(headlines) > n {
		return headlines[:n]
	}
	return headlines
}
