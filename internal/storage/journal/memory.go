// internal/storage/journal/memory.go
package journal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/journal/internal/analytics"
	"github.com/newthinker/journal/internal/core"
)

// MemoryStore is an in-memory Store
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*core.Account
	order    []string // account insertion order
	trades   []core.Trade
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*core.Account)}
}

func (m *MemoryStore) CreateAccount(ctx context.Context, account core.Account) (core.Account, error) {
	if err := account.Validate(); err != nil {
		return core.Account{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if _, exists := m.accounts[account.ID]; exists {
		return core.Account{}, core.Errorf(core.ErrInvalidAccount, "account %s already exists", account.ID)
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	account.CurrentBalance = account.InitialBalance

	stored := account
	m.accounts[account.ID] = &stored
	m.order = append(m.order, account.ID)
	return account, nil
}

func (m *MemoryStore) GetAccount(ctx context.Context, id string) (*core.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, core.Errorf(core.ErrAccountNotFound, "account %s", id)
	}
	acc := *a
	return &acc, nil
}

func (m *MemoryStore) ListAccounts(ctx context.Context) ([]core.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]core.Account, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.accounts[id])
	}
	return result, nil
}

func (m *MemoryStore) AddTrade(ctx context.Context, trade core.Trade) (core.Trade, error) {
	if err := trade.Validate(); err != nil {
		return core.Trade{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[trade.AccountID]; !ok {
		return core.Trade{}, core.Errorf(core.ErrAccountNotFound, "account %s", trade.AccountID)
	}
	if trade.ID == "" {
		trade.ID = core.NewTradeID()
	}
	if m.indexOf(trade.ID) >= 0 {
		return core.Trade{}, core.Errorf(core.ErrInvalidTrade, "trade %s already exists", trade.ID)
	}

	trade.Date = truncateDay(trade.Date)
	m.trades = append(m.trades, trade.Clone())
	m.rebalance(trade.AccountID)
	return trade, nil
}

func (m *MemoryStore) GetTrade(ctx context.Context, id string) (*core.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, core.Errorf(core.ErrTradeNotFound, "trade %s", id)
	}
	t := m.trades[i].Clone()
	return &t, nil
}

func (m *MemoryStore) UpdateTrade(ctx context.Context, trade core.Trade) error {
	if err := trade.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(trade.ID)
	if i < 0 {
		return core.Errorf(core.ErrTradeNotFound, "trade %s", trade.ID)
	}
	if _, ok := m.accounts[trade.AccountID]; !ok {
		return core.Errorf(core.ErrAccountNotFound, "account %s", trade.AccountID)
	}

	previous := m.trades[i].AccountID
	trade.Date = truncateDay(trade.Date)
	m.trades[i] = trade.Clone()
	m.rebalance(trade.AccountID)
	if previous != trade.AccountID {
		m.rebalance(previous)
	}
	return nil
}

func (m *MemoryStore) DeleteTrade(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return core.Errorf(core.ErrTradeNotFound, "trade %s", id)
	}
	accountID := m.trades[i].AccountID
	m.trades = append(m.trades[:i], m.trades[i+1:]...)
	m.rebalance(accountID)
	return nil
}

func (m *MemoryStore) ListTrades(ctx context.Context, accountID string, filter ListFilter) ([]core.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.accounts[accountID]; !ok {
		return nil, core.Errorf(core.ErrAccountNotFound, "account %s", accountID)
	}

	result := m.accountTrades(accountID)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	filtered := result[:0]
	for _, t := range result {
		if filter.matches(t) {
			filtered = append(filtered, t)
		}
	}
	if filter.Limit > 0 && filter.Limit < len(filtered) {
		filtered = filtered[:filter.Limit]
	}
	return filtered, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) indexOf(id string) int {
	for i := range m.trades {
		if m.trades[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) accountTrades(accountID string) []core.Trade {
	result := []core.Trade{}
	for _, t := range m.trades {
		if t.AccountID == accountID {
			result = append(result, t.Clone())
		}
	}
	return result
}

// rebalance must be called with the write lock held
func (m *MemoryStore) rebalance(accountID string) {
	a, ok := m.accounts[accountID]
	if !ok {
		return
	}
	a.CurrentBalance = analytics.CurrentBalance(a.InitialBalance, m.accountTrades(accountID))
}
