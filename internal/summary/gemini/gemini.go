// Package gemini summarizes articles with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"briefcast/internal/summary"

	"google.golang.org/genai"
)

var ErrMissingAPIKey = errors.New("gemini api key is not configured")

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API host, used against local test servers.
	BaseURL    string
	HTTPClient *http.Client
}

// Summarizer implements summary.Summarizer on a genai client.
type Summarizer struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = summary.DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &Summarizer{client: client, model: cfg.Model}, nil
}

// Summarize sends the commuter briefing prompt followed by the article and
// returns the model's text.
func (s *Summarizer) Summarize(ctx context.Context, articleText string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(summary.BuildPrompt(articleText)), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var text strings.Builder
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}

	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", summary.ErrEmptySummary
	}
	return out, nil
}
