// internal/api/server_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/archive"
	"github.com/newthinker/journal/internal/storage/journal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	fs, err := archive.NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}

	srv, err := NewServer(cfg, Dependencies{
		Store:   journal.NewMemoryStore(),
		Archive: fs,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func do(srv *Server, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, Config{Host: "localhost", Port: 0, APIKey: "secret"})

	w := do(srv, "GET", "/api/health", "", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestServer_APIAuth_Required(t *testing.T) {
	srv := newTestServer(t, Config{APIKey: "secret"})

	w := do(srv, "GET", "/api/accounts", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", w.Code)
	}

	w = do(srv, "GET", "/api/accounts", "", map[string]string{"X-API-Key": "secret"})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with key, got %d", w.Code)
	}
}

func TestServer_APIAuth_Disabled(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(srv, "GET", "/api/accounts", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 when auth disabled, got %d", w.Code)
	}
}

func TestServer_JournalFlow(t *testing.T) {
	srv := newTestServer(t, Config{DefaultInitialBalance: decimal.NewFromInt(1000)})

	w := do(srv, "POST", "/api/accounts", `{"id":"acc-1","name":"Main"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create account: %d %s", w.Code, w.Body.String())
	}

	for _, body := range []string{
		`{"position":"long","entry_price":10,"exit_price":12,"pnl":20,"date":"2024-01-02"}`,
		`{"position":"short","entry_price":10,"exit_price":11,"pnl":-10,"date":"2024-01-03"}`,
	} {
		w = do(srv, "POST", "/api/accounts/acc-1/trades", body, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("add trade: %d %s", w.Code, w.Body.String())
		}
	}

	w = do(srv, "GET", "/api/accounts/acc-1/dashboard?timeframe=all", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Account struct {
				CurrentBalance decimal.Decimal `json:"current_balance"`
			} `json:"account"`
			Dashboard struct {
				Metrics struct {
					TotalTrades int     `json:"total_trades"`
					WinRate     float64 `json:"win_rate"`
				} `json:"metrics"`
			} `json:"dashboard"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Data.Account.CurrentBalance.String() != "1010" {
		t.Errorf("expected balance 1010, got %s", resp.Data.Account.CurrentBalance)
	}
	if resp.Data.Dashboard.Metrics.TotalTrades != 2 || resp.Data.Dashboard.Metrics.WinRate != 50 {
		t.Errorf("unexpected metrics %+v", resp.Data.Dashboard.Metrics)
	}
}

func TestServer_Sentiment(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(srv, "POST", "/api/sentiment", `{"title":"Stocks climb"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"formatted":"+20.0%"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(srv, "GET", "/api/nothing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	var resp response.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != core.ErrNotFound.Code {
		t.Errorf("expected NOT_FOUND, got %s", resp.Error.Code)
	}
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t, Config{MetricsEnabled: true})

	do(srv, "GET", "/api/health", "", nil)
	w := do(srv, "GET", "/metrics", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Error("expected http_requests_total in metrics output")
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(srv, "GET", "/metrics", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 when metrics disabled, got %d", w.Code)
	}
}

func TestNewServer_RequiresStore(t *testing.T) {
	if _, err := NewServer(Config{}, Dependencies{}, nil); err == nil {
		t.Error("expected error without a store")
	}
}
