package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"briefcast/internal/domain/article"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Local Times</title>
  <link>https://example.com</link>
  <description>News</description>
  <item>
    <title> Bridge reopens after repairs </title>
    <link>https://example.com/bridge</link>
    <guid>bridge-1</guid>
    <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    <description>The bridge is open again.</description>
  </item>
  <item>
    <title>Rain expected</title>
    <link>https://example.com/rain</link>
    <description>Bring an umbrella.</description>
  </item>
  <item>
    <title>Third story</title>
    <link>https://example.com/third</link>
  </item>
</channel>
</rss>`

const pageFixture = `<!DOCTYPE html>
<html>
<head><title>Bridge reopens after repairs</title></head>
<body>
  <nav><a href="/">Home</a> <a href="/world">World</a></nav>
  <article>
    <h1>Bridge reopens after repairs</h1>
    <p>The city's main bridge reopened on Monday after eighteen months of repairs,
    restoring the fastest route between the harbour and the business district.</p>
    <p>Officials said the work came in under budget and that traffic lights at both
    ends had been retimed to ease the morning rush for commuters.</p>
    <p>Cyclists also gain a separated lane, which campaigners had requested for years,
    and buses will return to their original routes from next week.</p>
  </article>
  <footer>Copyright Local Times</footer>
</body>
</html>`

func TestResolveURL(t *testing.T) {
	if got := ResolveURL("hn"); got != "https://hnrss.org/newest" {
		t.Errorf("ResolveURL(hn) = %q", got)
	}
	if got := ResolveURL("https://example.com/rss"); got != "https://example.com/rss" {
		t.Errorf("ResolveURL(url) = %q", got)
	}
}

func TestListHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	headlines, err := New(srv.URL).ListHeadlines(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListHeadlines() error = %v", err)
	}
	if len(headlines) != 2 {
		t.Fatalf("headlines = %d, want 2", len(headlines))
	}

	first := headlines[0]
	if first.Title != "Bridge reopens after repairs" || first.ID != "bridge-1" {
		t.Errorf("first = %+v", first)
	}
	if first.Published.Year() != 2006 || first.Source != "Local Times" {
		t.Errorf("published = %v, source = %q", first.Published, first.Source)
	}
	if second := headlines[1]; second.ID == "" || len(second.ID) != 16 {
		t.Errorf("generated id = %q", second.ID)
	}
}

func TestListHeadlinesBadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).ListHeadlines(context.Background(), 5); err == nil {
		t.Error("ListHeadlines() error = nil for failing feed")
	}
}

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(pageFixture))
	}))
	defer srv.Close()

	a, err := Extract(context.Background(), srv.Client(), srv.URL+"/bridge")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(a.Text, "main bridge reopened on Monday") {
		t.Errorf("Text = %q", a.Text)
	}
	if a.URL != srv.URL+"/bridge" {
		t.Errorf("URL = %q", a.URL)
	}
}

func TestExtractErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Extract(context.Background(), nil, "ftp://example.com"); err == nil {
		t.Error("Extract() accepted non-http url")
	}
	if _, err := Extract(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("Extract() error = nil for 404")
	}
}

func TestExtractEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body></body></html>`))
	}))
	defer srv.Close()

	_, err := Extract(context.Background(), srv.Client(), srv.URL)
	if err == nil {
		t.Fatal("Extract() error = nil for empty page")
	}
	if !errors.Is(err, ErrNoText) && !strings.Contains(err.Error(), "readability") {
		t.Errorf("Extract() error = %v", err)
	}
}

func TestLoadArticleFallsBackToHeadlineTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Replace(pageFixture, "<title>Bridge reopens after repairs</title>", "", 1)))
	}))
	defer srv.Close()

	f := New(srv.URL)
	a, err := f.LoadArticle(context.Background(), &article.Headline{URL: srv.URL, Title: "From feed"})
	if err != nil {
		t.Fatalf("LoadArticle() error = %v", err)
	}
	if a.Title == "" {
		t.Error("Title empty")
	}
	if _, err := f.LoadArticle(context.Background(), nil); err == nil {
		t.Error("LoadArticle(nil) error = nil")
	}
}
