// Package server exposes the summarization proxy: it validates article text
// and forwards it to the language model while keeping the API key server side.
package server

import (
	"context"
	"net/http"
	"time"

	"briefcast/internal/summary"
	"briefcast/internal/summary/gemini"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MessageMethodNotAllowed = "Method Not Allowed"
	MessageInvalidArticle   = "A valid article text with at least 100 characters is required."
	MessageMissingAPIKey    = "Server configuration error: Missing API key."
	MessageModelFailure     = "Failed to communicate with the AI model."

	requestIDHeader = "X-Request-ID"
)

// SummarizerFactory builds a summarizer for a request. It is only called once
// the request is valid and an API key is configured.
type SummarizerFactory func(ctx context.Context, apiKey string) (summary.Summarizer, error)

type Options struct {
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	// NewSummarizer defaults to a Gemini client for Model.
	NewSummarizer SummarizerFactory
}

type Server struct {
	apiKey         string
	requestTimeout time.Duration
	newSummarizer  SummarizerFactory
}

func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.NewSummarizer == nil {
		opts.NewSummarizer = GeminiFactory(opts.Model)
	}
	if opts.APIKey == "" {
		logrus.Warn("API_KEY is not set; summarize requests will fail")
	}
	return &Server{
		apiKey:         opts.APIKey,
		requestTimeout: opts.RequestTimeout,
		newSummarizer:  opts.NewSummarizer,
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": MessageMethodNotAllowed})
	})

	s.RegisterSummarizeRoutes(r)
	RegisterHealthRoutes(r)
	return r
}

// Run serves until ctx is cancelled, then drains open requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.NewRouter(),
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("summarize proxy listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logrus.Info("shutting down summarize proxy")
	return srv.Shutdown(shutdownCtx)
}

// GeminiFactory returns a factory creating Gemini summarizers for model.
func GeminiFactory(model string) SummarizerFactory {
	return func(ctx context.Context, apiKey string) (summary.Summarizer, error) {
		s, err := gemini.New(ctx, gemini.Config{APIKey: apiKey, Model: model})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}).Info("request")
	}
}
