// Package summary defines the article summarization contract shared by the
// proxy server, its HTTP client and the direct Gemini adapter.
package summary

import (
	"context"
	"errors"
)

const DefaultModel = "gemini-2.5-flash"

// MinArticleLength is the shortest article, in characters, the endpoint
// accepts.
const MinArticleLength = 100

// Prompt precedes the article text in every model request.
const Prompt = "Summarize the following news article for a commuter who wants a quick audio briefing. " +
	"The summary should be concise, easy to understand when spoken aloud, and capture the main points of the article. " +
	"Focus on clarity and flow. Avoid complex sentences and jargon. Here is the article:\n\n---\n\n"

var (
	// ErrCommunication hides every transport or upstream failure behind one error.
	ErrCommunication = errors.New("failed to communicate with the summarization service")
	ErrEmptySummary  = errors.New("model returned an empty summary")
)

type Summarizer interface {
	Summarize(ctx context.Context, articleText string) (string, error)
}

// Func adapts a plain function to Summarizer.
type Func func(ctx context.Context, articleText string) (string, error)

func (f Func) Summarize(ctx context.Context, articleText string) (string, error) {
	return f(ctx, articleText)
}

func BuildPrompt(articleText string) string {
	return Prompt + articleText
}
