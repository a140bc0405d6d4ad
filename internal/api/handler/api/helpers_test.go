// internal/api/handler/api/helpers_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/journal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// envelope mirrors response.SuccessResponse with the data left raw
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta response.Meta   `json:"meta"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func seededStore(t *testing.T) (*journal.MemoryStore, core.Account) {
	t.Helper()
	ctx := context.Background()
	store := journal.NewMemoryStore()

	acc, err := store.CreateAccount(ctx, core.Account{ID: "acc-1", Name: "Main", InitialBalance: decimal.NewFromInt(10000)})
	require.NoError(t, err)

	for _, tr := range []struct {
		date string
		pnl  float64
	}{
		{"2024-03-01", 100},
		{"2024-03-01", -50},
		{"2024-03-05", 200},
	} {
		d, _ := time.Parse(core.DateLayout, tr.date)
		_, err := store.AddTrade(ctx, core.Trade{
			AccountID:  acc.ID,
			Symbol:     "AAPL",
			Position:   core.PositionLong,
			EntryPrice: decimal.NewFromInt(150),
			ExitPrice:  core.Dec(155),
			PnL:        core.Dec(tr.pnl),
			Date:       d,
		})
		require.NoError(t, err)
	}
	return store, acc
}

// fakeRecorder captures emitted metrics
type fakeRecorder struct {
	mu         sync.Mutex
	trades     []string
	accounts   int
	dashboards []string
	sentiments []string
	snapshots  []string
}

func (f *fakeRecorder) RecordTrade(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trades = append(f.trades, op)
}

func (f *fakeRecorder) SetAccounts(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = n
}

func (f *fakeRecorder) RecordDashboard(tf string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dashboards = append(f.dashboards, tf)
}

func (f *fakeRecorder) RecordSentiment(kind, label string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentiments = append(f.sentiments, kind+":"+label)
}

func (f *fakeRecorder) RecordSnapshot(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status := "ok"
	if err != nil {
		status = "error"
	}
	f.snapshots = append(f.snapshots, op+":"+status)
}
