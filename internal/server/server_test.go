package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"briefcast/internal/summary"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSummarizer struct {
	calls int
	got   string
	text  string
	err   error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, articleText string) (string, error) {
	f.calls++
	f.got = articleText
	return f.text, f.err
}

func newTestRouter(apiKey string, fake *fakeSummarizer) *gin.Engine {
	s := New(Options{
		APIKey:         apiKey,
		RequestTimeout: time.Second,
		NewSummarizer: func(ctx context.Context, key string) (summary.Summarizer, error) {
			return fake, nil
		},
	})
	return s.NewRouter()
}

func doRequest(r http.Handler, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/summarize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func articleBody(n int) string {
	b, _ := json.Marshal(map[string]string{"articleText": strings.Repeat("a", n)})
	return string(b)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response not JSON: %q", w.Body.String())
	}
	return out
}

func TestSummarizeValidation(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantError  string
		wantCalls  int
	}{
		{name: "get", method: http.MethodGet, body: articleBody(200), wantStatus: 405, wantError: MessageMethodNotAllowed},
		{name: "put", method: http.MethodPut, body: "", wantStatus: 405, wantError: MessageMethodNotAllowed},
		{name: "99 chars", method: http.MethodPost, body: articleBody(99), wantStatus: 400, wantError: MessageInvalidArticle},
		{name: "missing field", method: http.MethodPost, body: `{"text":"x"}`, wantStatus: 400, wantError: MessageInvalidArticle},
		{name: "not a string", method: http.MethodPost, body: `{"articleText":12345}`, wantStatus: 400, wantError: MessageInvalidArticle},
		{name: "not json", method: http.MethodPost, body: `articleText=hello`, wantStatus: 400, wantError: MessageInvalidArticle},
		{name: "empty body", method: http.MethodPost, body: ``, wantStatus: 400, wantError: MessageInvalidArticle},
		{name: "100 chars", method: http.MethodPost, body: articleBody(100), wantStatus: 200, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSummarizer{text: "A short summary."}
			w := doRequest(newTestRouter("key", fake), tt.method, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if fake.calls != tt.wantCalls {
				t.Errorf("summarizer calls = %d, want %d", fake.calls, tt.wantCalls)
			}
			if tt.wantError != "" {
				if got := decodeBody(t, w)["error"]; got != tt.wantError {
					t.Errorf("error = %q, want %q", got, tt.wantError)
				}
			}
		})
	}
}

func TestSummarizeCountsCharactersNotBytes(t *testing.T) {
	fake := &fakeSummarizer{text: "ok"}
	b, _ := json.Marshal(map[string]string{"articleText": strings.Repeat("é", 100)})

	w := doRequest(newTestRouter("key", fake), http.MethodPost, string(b))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	b, _ = json.Marshal(map[string]string{"articleText": strings.Repeat("é", 60)})
	w = doRequest(newTestRouter("key", fake), http.MethodPost, string(b))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for 60 two-byte characters", w.Code)
	}
}

func TestSummarizeMissingAPIKey(t *testing.T) {
	fake := &fakeSummarizer{text: "ok"}
	w := doRequest(newTestRouter("", fake), http.MethodPost, articleBody(150))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != MessageMissingAPIKey {
		t.Errorf("error = %q", got)
	}
	if fake.calls != 0 {
		t.Error("model called without API key")
	}
}

func TestSummarizeModelOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		fake        *fakeSummarizer
		wantStatus  int
		wantSummary string
	}{
		{name: "success", fake: &fakeSummarizer{text: "Spoken summary."}, wantStatus: 200, wantSummary: "Spoken summary."},
		{name: "empty output", fake: &fakeSummarizer{text: ""}, wantStatus: 500},
		{name: "upstream error", fake: &fakeSummarizer{err: errors.New("quota exceeded")}, wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(newTestRouter("key", tt.fake), http.MethodPost, articleBody(120))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decodeBody(t, w)
			if tt.wantStatus == 200 {
				if body["summary"] != tt.wantSummary {
					t.Errorf("summary = %q", body["summary"])
				}
				if tt.fake.got != strings.Repeat("a", 120) {
					t.Errorf("article forwarded = %q", tt.fake.got)
				}
				return
			}
			if body["error"] != MessageModelFailure {
				t.Errorf("error = %q", body["error"])
			}
			if strings.Contains(w.Body.String(), "quota") {
				t.Error("upstream detail leaked to caller")
			}
		})
	}
}

func TestSummarizerFactoryFailure(t *testing.T) {
	s := New(Options{
		APIKey: "key",
		NewSummarizer: func(ctx context.Context, key string) (summary.Summarizer, error) {
			return nil, errors.New("bad key")
		},
	})
	w := doRequest(s.NewRouter(), http.MethodPost, articleBody(120))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter("key", &fakeSummarizer{text: "ok"})

	w := doRequest(r, http.MethodPost, articleBody(120))
	if id := w.Header().Get("X-Request-ID"); len(id) != 36 {
		t.Errorf("X-Request-ID = %q, want a uuid", id)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("X-Request-ID = %q, want caller-id", got)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter("", &fakeSummarizer{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeBody(t, w)["status"]; got != "ok" {
		t.Errorf("status = %q", got)
	}
}
