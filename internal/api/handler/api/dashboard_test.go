// internal/api/handler/api/dashboard_test.go
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newthinker/journal/internal/analytics"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/journal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardHandler(t *testing.T, rec Recorder) *DashboardHandler {
	t.Helper()
	store, _ := seededStore(t)
	h := NewDashboardHandler(store, core.TimeframeAll, rec, nil)
	h.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	return h
}

func dashboardRequest(path, query string) *http.Request {
	req := httptest.NewRequest("GET", "/api/accounts/acc-1/"+path+query, nil)
	req.SetPathValue("id", "acc-1")
	return req
}

func TestDashboardHandler_AllTime(t *testing.T) {
	rec := &fakeRecorder{}
	handler := newDashboardHandler(t, rec)

	w := httptest.NewRecorder()
	handler.Dashboard(w, dashboardRequest("dashboard", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Account   core.Account        `json:"account"`
		Dashboard analytics.Dashboard `json:"dashboard"`
	}
	decodeData(t, w, &body)

	m := body.Dashboard.Metrics
	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 2, m.WinningTrades)
	assert.InDelta(t, 250, m.TotalPnL, 1e-9)
	assert.InDelta(t, 6, m.ProfitFactor, 1e-9)
	assert.Nil(t, body.Dashboard.Since)

	require.Len(t, body.Dashboard.EquityCurve, 4)
	assert.InDelta(t, 10250, body.Dashboard.EquityCurve[3].Balance, 1e-9)

	require.Len(t, body.Dashboard.Daily, 2)
	assert.Equal(t, "2024-03-01", body.Dashboard.Daily[0].Date)
	assert.InDelta(t, 50, body.Dashboard.Daily[0].PnL, 1e-9)
	assert.Equal(t, 2, body.Dashboard.Daily[0].TradeCount)

	assert.Equal(t, []string{"all"}, rec.dashboards)
}

func TestDashboardHandler_Timeframe(t *testing.T) {
	handler := newDashboardHandler(t, nil)

	w := httptest.NewRecorder()
	handler.Dashboard(w, dashboardRequest("dashboard", "?timeframe=7d"))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Dashboard analytics.Dashboard `json:"dashboard"`
	}
	decodeData(t, w, &body)

	assert.Equal(t, 1, body.Dashboard.Metrics.TotalTrades)
	require.NotNil(t, body.Dashboard.Since)
	assert.Equal(t, "2024-03-03", body.Dashboard.Since.Format(core.DateLayout))
	require.Len(t, body.Dashboard.EquityCurve, 2)
	assert.Equal(t, "2024-03-04", body.Dashboard.EquityCurve[0].Date.Format(core.DateLayout))
	assert.InDelta(t, 10000, body.Dashboard.EquityCurve[0].Balance, 1e-9)
}

func TestDashboardHandler_InvalidTimeframe(t *testing.T) {
	handler := newDashboardHandler(t, nil)

	w := httptest.NewRecorder()
	handler.Dashboard(w, dashboardRequest("dashboard", "?timeframe=1y"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TIMEFRAME", decodeError(t, w).Code)
}

func TestDashboardHandler_UnknownAccount(t *testing.T) {
	handler := newDashboardHandler(t, nil)

	req := httptest.NewRequest("GET", "/api/accounts/ghost/dashboard", nil)
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()
	handler.Dashboard(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardHandler_Equity(t *testing.T) {
	handler := newDashboardHandler(t, nil)

	w := httptest.NewRecorder()
	handler.Equity(w, dashboardRequest("equity", "?timeframe=30d"))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Timeframe core.Timeframe         `json:"timeframe"`
		Points    []analytics.ChartPoint `json:"points"`
	}
	decodeData(t, w, &body)

	assert.Equal(t, core.Timeframe30D, body.Timeframe)
	require.Len(t, body.Points, 4)
	assert.Nil(t, body.Points[0].PnL)
	assert.Equal(t, "2024-02-29", body.Points[0].Date.Format(core.DateLayout))
	assert.InDelta(t, 10100, body.Points[1].Balance, 1e-9)
	assert.InDelta(t, 10050, body.Points[2].Balance, 1e-9)
}

func TestDashboardHandler_Daily(t *testing.T) {
	handler := newDashboardHandler(t, nil)

	w := httptest.NewRecorder()
	handler.Daily(w, dashboardRequest("daily", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Days []analytics.DailyPnL `json:"days"`
	}
	decodeData(t, w, &body)

	require.Len(t, body.Days, 2)
	assert.Equal(t, "2024-03-05", body.Days[1].Date)
	assert.InDelta(t, 200, body.Days[1].PnL, 1e-9)
}

func TestDashboardHandler_DailyNoTrades(t *testing.T) {
	store := journal.NewMemoryStore()
	_, err := store.CreateAccount(context.Background(), core.Account{ID: "acc-1", Name: "Empty", InitialBalance: decimal.NewFromInt(500)})
	require.NoError(t, err)
	handler := NewDashboardHandler(store, core.TimeframeAll, nil, nil)

	w := httptest.NewRecorder()
	handler.Daily(w, dashboardRequest("daily", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"days":[]`)

	w = httptest.NewRecorder()
	handler.Dashboard(w, dashboardRequest("dashboard", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"daily":[]`)
}
