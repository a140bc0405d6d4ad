// internal/storage/journal/interface.go
package journal

import (
	"context"
	"time"

	"github.com/newthinker/journal/internal/core"
)

// Store persists accounts and their trades. Every trade mutation recomputes the
// owning account's current balance from its recorded P&L.
type Store interface {
	// CreateAccount persists an account, assigning an ID when empty.
	CreateAccount(ctx context.Context, account core.Account) (core.Account, error)

	GetAccount(ctx context.Context, id string) (*core.Account, error)
	ListAccounts(ctx context.Context) ([]core.Account, error)

	// AddTrade persists a trade for an existing account, assigning an ID when empty.
	AddTrade(ctx context.Context, trade core.Trade) (core.Trade, error)

	GetTrade(ctx context.Context, id string) (*core.Trade, error)
	UpdateTrade(ctx context.Context, trade core.Trade) error
	DeleteTrade(ctx context.Context, id string) error

	// ListTrades returns an account's trades ordered by date, then insertion.
	ListTrades(ctx context.Context, accountID string, filter ListFilter) ([]core.Trade, error)

	Close() error
}

// ListFilter restricts ListTrades to an inclusive date range
type ListFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}

func (f ListFilter) matches(t core.Trade) bool {
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}
