// internal/api/handler/api/trades.go
package api

import (
	"net/http"

	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/journal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TradesHandler handles trade API requests.
type TradesHandler struct {
	store   journal.Store
	metrics Recorder
	logger  *zap.Logger
}

// NewTradesHandler creates a trades handler.
func NewTradesHandler(store journal.Store, metrics Recorder, logger *zap.Logger) *TradesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TradesHandler{store: store, metrics: orNop(metrics), logger: logger}
}

// TradeRequest is the request body for recording or replacing a trade.
type TradeRequest struct {
	ID         string           `json:"id,omitempty"`
	Symbol     string           `json:"symbol,omitempty"`
	Position   string           `json:"position"`
	EntryPrice decimal.Decimal  `json:"entry_price"`
	ExitPrice  *decimal.Decimal `json:"exit_price,omitempty"`
	PnL        *decimal.Decimal `json:"pnl,omitempty"`
	Date       string           `json:"date"`
	Notes      string           `json:"notes,omitempty"`
}

func (req TradeRequest) trade(accountID string) (core.Trade, error) {
	pos, err := core.ParsePosition(req.Position)
	if err != nil {
		return core.Trade{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Trade{}, err
	}
	return core.Trade{
		ID:         req.ID,
		AccountID:  accountID,
		Symbol:     req.Symbol,
		Position:   pos,
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		PnL:        req.PnL,
		Date:       date,
		Notes:      req.Notes,
	}, nil
}

// List returns an account's trades, optionally bounded by from/to dates and limit.
func (h *TradesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter journal.ListFilter

	if from := q.Get("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			response.Fail(w, err)
			return
		}
		filter.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			response.Fail(w, err)
			return
		}
		filter.To = t
	}
	limit, err := queryInt(r, "limit", 0, 0, 10000)
	if err != nil {
		response.Fail(w, err)
		return
	}
	filter.Limit = limit

	trades, err := h.store.ListTrades(r.Context(), r.PathValue("id"), filter)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"trades": trades,
		"count":  len(trades),
	})
}

// Add records a trade for the account in the path.
func (h *TradesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := decodeBody(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	t, err := req.trade(r.PathValue("id"))
	if err != nil {
		response.Fail(w, err)
		return
	}

	added, err := h.store.AddTrade(r.Context(), t)
	if err != nil {
		response.Fail(w, err)
		return
	}

	h.metrics.RecordTrade("add")
	h.logger.Debug("trade recorded",
		zap.String("trade_id", added.ID),
		zap.String("account_id", added.AccountID),
		zap.Bool("completed", added.IsCompleted()))

	response.JSON(w, http.StatusCreated, added)
}

// Get returns a single trade.
func (h *TradesHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.GetTrade(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, t)
}

// Update replaces a trade, keeping its account.
func (h *TradesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.store.GetTrade(r.Context(), id)
	if err != nil {
		response.Fail(w, err)
		return
	}

	var req TradeRequest
	if err := decodeBody(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	req.ID = id
	t, err := req.trade(existing.AccountID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	if err := h.store.UpdateTrade(r.Context(), t); err != nil {
		response.Fail(w, err)
		return
	}

	h.metrics.RecordTrade("update")
	response.JSON(w, http.StatusOK, t)
}

// Delete removes a trade.
func (h *TradesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteTrade(r.Context(), id); err != nil {
		response.Fail(w, err)
		return
	}

	h.metrics.RecordTrade("delete")
	response.JSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"deleted": true,
	})
}
