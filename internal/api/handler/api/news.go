// internal/api/handler/api/news.go
package api

import (
	"net/http"
	"time"

	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/news"
)

// NewsHandler serves news scored for sentiment.
type NewsHandler struct {
	provider news.Provider
	scorer   *news.Scorer
	metrics  Recorder
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(provider news.Provider, scorer *news.Scorer, metrics Recorder) *NewsHandler {
	if scorer == nil {
		scorer = news.NewScorer(nil)
	}
	return &NewsHandler{provider: provider, scorer: scorer, metrics: orNop(metrics)}
}

// List returns scored news for ?symbol=, or market news when symbol is empty,
// over the last ?days= days (default 7).
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 7, 1, 365)
	if err != nil {
		response.Fail(w, err)
		return
	}
	symbol := r.URL.Query().Get("symbol")

	var items []news.Item
	if symbol == "" {
		items, err = h.provider.GetMarketNews(r.Context(), days)
	} else {
		items, err = h.provider.GetNews(r.Context(), symbol, days)
	}
	if err != nil {
		response.Fail(w, err)
		return
	}

	start := time.Now()
	scored := h.scorer.Score(items)
	if len(scored) > 0 {
		per := time.Since(start) / time.Duration(len(scored))
		for _, item := range scored {
			h.metrics.RecordSentiment("financial", string(item.Sentiment.Label), per)
		}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol":  symbol,
		"days":    days,
		"items":   scored,
		"summary": news.Aggregate(scored),
	})
}
