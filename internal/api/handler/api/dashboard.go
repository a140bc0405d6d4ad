// internal/api/handler/api/dashboard.go
package api

import (
	"net/http"
	"time"

	"github.com/newthinker/journal/internal/analytics"
	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/journal"
	"go.uber.org/zap"
)

// DashboardHandler serves the analytics computed over an account's trades.
type DashboardHandler struct {
	store            journal.Store
	defaultTimeframe core.Timeframe
	metrics          Recorder
	logger           *zap.Logger
	now              func() time.Time
}

// NewDashboardHandler creates a dashboard handler. defaultTimeframe applies
// when a request has no timeframe parameter.
func NewDashboardHandler(store journal.Store, defaultTimeframe core.Timeframe, metrics Recorder, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultTimeframe == "" {
		defaultTimeframe = core.TimeframeAll
	}
	return &DashboardHandler{
		store:            store,
		defaultTimeframe: defaultTimeframe,
		metrics:          orNop(metrics),
		logger:           logger,
		now:              time.Now,
	}
}

// load resolves the account, its trades and the requested timeframe
func (h *DashboardHandler) load(r *http.Request) (*core.Account, []core.Trade, core.Timeframe, error) {
	tf := h.defaultTimeframe
	if raw := r.URL.Query().Get("timeframe"); raw != "" {
		parsed, err := core.ParseTimeframe(raw)
		if err != nil {
			return nil, nil, "", err
		}
		tf = parsed
	}

	id := r.PathValue("id")
	acc, err := h.store.GetAccount(r.Context(), id)
	if err != nil {
		return nil, nil, "", err
	}
	trades, err := h.store.ListTrades(r.Context(), id, journal.ListFilter{})
	if err != nil {
		return nil, nil, "", err
	}
	return acc, trades, tf, nil
}

// Dashboard returns metrics, equity curve and daily P&L for one timeframe.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	acc, trades, tf, err := h.load(r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	start := time.Now()
	d := analytics.Summarize(trades, acc.InitialBalance, tf, h.now())
	elapsed := time.Since(start)
	h.metrics.RecordDashboard(string(tf), elapsed)

	h.logger.Debug("dashboard computed",
		zap.String("account_id", acc.ID),
		zap.String("timeframe", string(tf)),
		zap.Int("trades", len(trades)),
		zap.Duration("elapsed", elapsed))

	response.JSON(w, http.StatusOK, map[string]any{
		"account":   acc,
		"dashboard": d,
	})
}

// Equity returns the equity curve for the requested timeframe.
func (h *DashboardHandler) Equity(w http.ResponseWriter, r *http.Request) {
	acc, trades, tf, err := h.load(r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	cutoff := analytics.Cutoff(tf, h.now())
	curve := analytics.GenerateEquityCurve(analytics.FilterSince(trades, cutoff), acc.InitialBalance, cutoff)

	response.JSON(w, http.StatusOK, map[string]any{
		"timeframe": tf,
		"points":    curve,
	})
}

// Daily returns realized P&L per calendar day, oldest first.
func (h *DashboardHandler) Daily(w http.ResponseWriter, r *http.Request) {
	_, trades, tf, err := h.load(r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	cutoff := analytics.Cutoff(tf, h.now())
	days := analytics.SortDaily(analytics.ComputeDailyPnL(analytics.FilterSince(trades, cutoff)))

	response.JSON(w, http.StatusOK, map[string]any{
		"timeframe": tf,
		"days":      days,
	})
}
