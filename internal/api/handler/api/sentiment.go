// internal/api/handler/api/sentiment.go
package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/sentiment"
)

// SentimentHandler scores text on request.
type SentimentHandler struct {
	engine  *sentiment.Engine
	metrics Recorder
}

// NewSentimentHandler creates a sentiment handler; a nil engine uses sentiment.Default.
func NewSentimentHandler(engine *sentiment.Engine, metrics Recorder) *SentimentHandler {
	if engine == nil {
		engine = sentiment.Default()
	}
	return &SentimentHandler{engine: engine, metrics: orNop(metrics)}
}

// SentimentRequest carries either free text or a headline title/summary pair.
type SentimentRequest struct {
	Text    string `json:"text,omitempty"`
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// SentimentResponse is a scored text ready for display.
type SentimentResponse struct {
	sentiment.Result
	Kind      string         `json:"kind"` // "text" or "financial"
	Formatted string         `json:"formatted"`
	Icon      sentiment.Icon `json:"icon"`
}

// Score scores free text with ScoreText, or a title/summary pair with ScoreFinancialText.
func (h *SentimentHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req SentimentRequest
	if err := decodeBody(r, &req); err != nil {
		response.Fail(w, err)
		return
	}

	hasText := strings.TrimSpace(req.Text) != ""
	hasHeadline := strings.TrimSpace(req.Title) != "" || strings.TrimSpace(req.Summary) != ""
	if hasText == hasHeadline {
		response.Fail(w, core.WrapError(core.ErrInvalidRequest,
			errors.New("provide either text or title/summary")))
		return
	}

	start := time.Now()
	var result sentiment.Result
	kind := "text"
	if hasText {
		result = h.engine.ScoreText(req.Text)
	} else {
		kind = "financial"
		result = h.engine.ScoreFinancialText(req.Title, req.Summary)
	}
	h.metrics.RecordSentiment(kind, string(result.Label), time.Since(start))

	response.JSON(w, http.StatusOK, SentimentResponse{
		Result:    result,
		Kind:      kind,
		Formatted: sentiment.FormatScore(result.Compound),
		Icon:      sentiment.IconFor(result),
	})
}
