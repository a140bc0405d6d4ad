// internal/api/handler/api/accounts.go
package api

import (
	"net/http"

	"github.com/newthinker/journal/internal/api/response"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/journal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AccountsHandler handles account API requests.
type AccountsHandler struct {
	store          journal.Store
	defaultBalance decimal.Decimal
	metrics        Recorder
	logger         *zap.Logger
}

// NewAccountsHandler creates an accounts handler. defaultBalance is used when a
// create request omits initial_balance.
func NewAccountsHandler(store journal.Store, defaultBalance decimal.Decimal, metrics Recorder, logger *zap.Logger) *AccountsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountsHandler{store: store, defaultBalance: defaultBalance, metrics: orNop(metrics), logger: logger}
}

// CreateAccountRequest is the request body for creating an account.
type CreateAccountRequest struct {
	ID             string           `json:"id,omitempty"`
	Name           string           `json:"name"`
	InitialBalance *decimal.Decimal `json:"initial_balance,omitempty"`
}

// List returns every account.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.ListAccounts(r.Context())
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"accounts": accounts,
		"count":    len(accounts),
	})
}

// Create creates an account.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := decodeBody(r, &req); err != nil {
		response.Fail(w, err)
		return
	}

	balance := h.defaultBalance
	if req.InitialBalance != nil {
		balance = *req.InitialBalance
	}

	acc, err := h.store.CreateAccount(r.Context(), core.Account{
		ID:             req.ID,
		Name:           req.Name,
		InitialBalance: balance,
	})
	if err != nil {
		response.Fail(w, err)
		return
	}

	if accounts, err := h.store.ListAccounts(r.Context()); err == nil {
		h.metrics.SetAccounts(len(accounts))
	}
	h.logger.Info("account created", zap.String("account_id", acc.ID), zap.String("initial_balance", balance.String()))

	response.JSON(w, http.StatusCreated, acc)
}

// Get returns a single account.
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	acc, err := h.store.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, acc)
}
