package article

import (
	"context"
	"time"
)

// Headline is one feed entry pointing at a full article.
type Headline struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
	Summary   string    `json:"summary"`
	Source    string    `json:"source"`
}

// Article is the readable text of a news page, ready to be summarized.
type Article struct {
	Title    string `json:"title"`
	Byline   string `json:"byline"`
	URL      string `json:"url"`
	Text     string `json:"text"`
	Excerpt  string `json:"excerpt"`
	SiteName string `json:"site_name"`
}

type Source interface {
	ListHeadlines(ctx context.Context, n int) ([]*Headline, error)
	LoadArticle(ctx context.Context, h *Headline) (*Article, error)
}
