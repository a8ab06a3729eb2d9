package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"briefcast/internal/domain/article"
)

type fakeSource struct {
	headlines []*article.Headline
	err       error
	calls     int
}

func (f *fakeSource) ListHeadlines(ctx context.Context, n int) ([]*article.Headline, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return limit(f.headlines, n), nil
}

func (f *fakeSource) LoadArticle(ctx context.Context, h *article.Headline) (*article.Article, error) {
	return &article.Article{Title: h.Title}, nil
}

func testHeadlines() []*article.Headline {
	return []*article.Headline{
		{ID: "1", Title: "First"},
		{ID: "2", Title: "Second"},
		{ID: "3", Title: "Third"},
	}
}

func TestCacheServesFreshHeadlines(t *testing.T) {
	src := &fakeSource{headlines: testHeadlines()}
	c := NewCache(src, t.TempDir(), "st", time.Hour)

	for i := 0; i < 2; i++ {
		got, err := c.ListHeadlines(context.Background(), 2)
		if err != nil {
			t.Fatalf("ListHeadlines() error = %v", err)
		}
		if len(got) != 2 || got[0].Title != "First" {
			t.Errorf("ListHeadlines() = %v", got)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}

	// asking for more than is cached refetches
	if _, err := c.ListHeadlines(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2", src.calls)
	}
}

func TestCacheExpires(t *testing.T) {
	src := &fakeSource{headlines: testHeadlines()}
	c := NewCache(src, t.TempDir(), "st", time.Nanosecond)

	_, _ = c.ListHeadlines(context.Background(), 3)
	time.Sleep(time.Millisecond)
	_, _ = c.ListHeadlines(context.Background(), 3)

	if src.calls != 2 {
		t.Errorf("source called %d times, want 2", src.calls)
	}
}

func TestCacheFallsBackToStale(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{headlines: testHeadlines()}
	if _, err := NewCache(src, dir, "st", time.Nanosecond).ListHeadlines(context.Background(), 3); err != nil {
		t.Fatal(err)
	}

	src.err = errors.New("offline")
	time.Sleep(time.Millisecond)
	got, err := NewCache(src, dir, "st", time.Nanosecond).ListHeadlines(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListHeadlines() error = %v, want stale headlines", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d headlines, want 3", len(got))
	}

	// a different feed has no cache to fall back to
	if _, err := NewCache(src, dir, "hn", time.Hour).ListHeadlines(context.Background(), 3); err == nil {
		t.Error("expected an error without any cache")
	}
}
