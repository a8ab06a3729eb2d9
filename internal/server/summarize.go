package server

import (
	"context"
	"net/http"
	"unicode/utf8"

	"briefcast/internal/summary"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type summarizeRequest struct {
	ArticleText *string `json:"articleText"`
}

// RegisterSummarizeRoutes registers the summarization endpoint.
func (s *Server) RegisterSummarizeRoutes(r *gin.Engine) {
	r.POST("/api/summarize", s.handleSummarize)
}

// handleSummarize validates articleText, then forwards it to the model.
// POST /api/summarize {"articleText": "..."} -> {"summary": "..."}
func (s *Server) handleSummarize(c *gin.Context) {
	log := logrus.WithField("request_id", c.GetString("request_id"))

	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ArticleText == nil ||
		utf8.RuneCountInString(*req.ArticleText) < summary.MinArticleLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": MessageInvalidArticle})
		return
	}

	if s.apiKey == "" {
		log.Error("API_KEY environment variable not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": MessageMissingAPIKey})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	summarizer, err := s.newSummarizer(ctx, s.apiKey)
	if err != nil {
		log.WithError(err).Error("failed to create model client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": MessageModelFailure})
		return
	}

	text, err := summarizer.Summarize(ctx, *req.ArticleText)
	if err != nil {
		log.WithError(err).Error("error calling model")
		c.JSON(http.StatusInternalServerError, gin.H{"error": MessageModelFailure})
		return
	}
	if text == "" {
		log.Error("model returned an empty summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": MessageModelFailure})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": text})
}
