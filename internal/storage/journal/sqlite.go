// internal/storage/journal/sqlite.go
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/newthinker/journal/internal/analytics"
	"github.com/newthinker/journal/internal/core"
	"github.com/shopspring/decimal"
)

// timestampLayout has a fixed width so created_at sorts lexically
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is a Store backed by a SQLite database. Trade dates are kept at
// calendar-day resolution.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dsn and applies the schema.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if !strings.Contains(dsn, "_foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("applying schema: %w", err))
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) CreateAccount(ctx context.Context, account core.Account) (core.Account, error) {
	if err := account.Validate(); err != nil {
		return core.Account{}, err
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	account.CurrentBalance = account.InitialBalance

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, initial_balance, current_balance, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		account.ID, account.Name, account.InitialBalance, account.CurrentBalance,
		account.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return core.Account{}, core.Errorf(core.ErrInvalidAccount, "account %s already exists", account.ID)
		}
		return core.Account{}, core.WrapError(core.ErrStorageFailed, err)
	}
	return account, nil
}

func (s *SQLiteStore) GetAccount(ctx context.Context, id string) (*core.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, initial_balance, current_balance, created_at
		FROM accounts WHERE id = ?`, id)

	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.Errorf(core.ErrAccountNotFound, "account %s", id)
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return &a, nil
}

func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, initial_balance, current_balance, created_at
		FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	defer rows.Close()

	result := []core.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, core.WrapError(core.ErrStorageFailed, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return result, nil
}

func (s *SQLiteStore) AddTrade(ctx context.Context, trade core.Trade) (core.Trade, error) {
	if err := trade.Validate(); err != nil {
		return core.Trade{}, err
	}
	if trade.ID == "" {
		trade.ID = core.NewTradeID()
	}
	trade.Date = truncateDay(trade.Date)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := accountExists(ctx, tx, trade.AccountID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO trades (id, account_id, symbol, position, entry_price, exit_price, pnl, trade_date, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			trade.ID, trade.AccountID, trade.Symbol, string(trade.Position), trade.EntryPrice,
			nullable(trade.ExitPrice), nullable(trade.PnL), trade.DateKey(), trade.Notes,
		)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				return core.Errorf(core.ErrInvalidTrade, "trade %s already exists", trade.ID)
			}
			return core.WrapError(core.ErrStorageFailed, err)
		}
		return rebalance(ctx, tx, trade.AccountID)
	})
	if err != nil {
		return core.Trade{}, err
	}
	return trade, nil
}

func (s *SQLiteStore) GetTrade(ctx context.Context, id string) (*core.Trade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, account_id, symbol, position, entry_price, exit_price, pnl, trade_date, notes
		FROM trades WHERE id = ?`, id)

	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.Errorf(core.ErrTradeNotFound, "trade %s", id)
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return &t, nil
}

func (s *SQLiteStore) UpdateTrade(ctx context.Context, trade core.Trade) error {
	if err := trade.Validate(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var previous string
		err := tx.QueryRowContext(ctx, `SELECT account_id FROM trades WHERE id = ?`, trade.ID).Scan(&previous)
		if errors.Is(err, sql.ErrNoRows) {
			return core.Errorf(core.ErrTradeNotFound, "trade %s", trade.ID)
		}
		if err != nil {
			return core.WrapError(core.ErrStorageFailed, err)
		}
		if err := accountExists(ctx, tx, trade.AccountID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE trades SET account_id = ?, symbol = ?, position = ?, entry_price = ?,
				exit_price = ?, pnl = ?, trade_date = ?, notes = ?
			WHERE id = ?`,
			trade.AccountID, trade.Symbol, string(trade.Position), trade.EntryPrice,
			nullable(trade.ExitPrice), nullable(trade.PnL), trade.DateKey(), trade.Notes, trade.ID,
		)
		if err != nil {
			return core.WrapError(core.ErrStorageFailed, err)
		}
		if err := rebalance(ctx, tx, trade.AccountID); err != nil {
			return err
		}
		if previous != trade.AccountID {
			return rebalance(ctx, tx, previous)
		}
		return nil
	})
}

func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var accountID string
		err := tx.QueryRowContext(ctx, `SELECT account_id FROM trades WHERE id = ?`, id).Scan(&accountID)
		if errors.Is(err, sql.ErrNoRows) {
			return core.Errorf(core.ErrTradeNotFound, "trade %s", id)
		}
		if err != nil {
			return core.WrapError(core.ErrStorageFailed, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id); err != nil {
			return core.WrapError(core.ErrStorageFailed, err)
		}
		return rebalance(ctx, tx, accountID)
	})
}

func (s *SQLiteStore) ListTrades(ctx context.Context, accountID string, filter ListFilter) ([]core.Trade, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	query := `SELECT id, account_id, symbol, position, entry_price, exit_price, pnl, trade_date, notes
		FROM trades WHERE account_id = ?`
	args := []any{accountID}
	if !filter.From.IsZero() {
		query += ` AND trade_date >= ?`
		args = append(args, filter.From.Format(core.DateLayout))
	}
	if !filter.To.IsZero() {
		query += ` AND trade_date <= ?`
		args = append(args, filter.To.Format(core.DateLayout))
	}
	query += ` ORDER BY trade_date, seq`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	defer rows.Close()

	result := []core.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, core.WrapError(core.ErrStorageFailed, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return result, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}

func accountExists(ctx context.Context, tx *sql.Tx, id string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Errorf(core.ErrAccountNotFound, "account %s", id)
	}
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}

// rebalance recomputes the account's current balance from its recorded P&L
func rebalance(ctx context.Context, tx *sql.Tx, accountID string) error {
	var initial decimal.Decimal
	err := tx.QueryRowContext(ctx, `SELECT initial_balance FROM accounts WHERE id = ?`, accountID).Scan(&initial)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT pnl FROM trades WHERE account_id = ? AND pnl IS NOT NULL`, accountID)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	var trades []core.Trade
	for rows.Next() {
		var pnl decimal.Decimal
		if err := rows.Scan(&pnl); err != nil {
			rows.Close()
			return core.WrapError(core.ErrStorageFailed, err)
		}
		trades = append(trades, core.Trade{PnL: &pnl})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}

	balance := analytics.CurrentBalance(initial, trades)
	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET current_balance = ? WHERE id = ?`, balance, accountID); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (core.Account, error) {
	var a core.Account
	var created string
	if err := row.Scan(&a.ID, &a.Name, &a.InitialBalance, &a.CurrentBalance, &created); err != nil {
		return core.Account{}, err
	}
	t, err := time.Parse(timestampLayout, created)
	if err != nil {
		return core.Account{}, fmt.Errorf("parsing created_at: %w", err)
	}
	a.CreatedAt = t
	return a, nil
}

func scanTrade(row scanner) (core.Trade, error) {
	var t core.Trade
	var position, date string
	var exit, pnl decimal.NullDecimal
	if err := row.Scan(&t.ID, &t.AccountID, &t.Symbol, &position, &t.EntryPrice, &exit, &pnl, &date, &t.Notes); err != nil {
		return core.Trade{}, err
	}
	t.Position = core.Position(position)
	if exit.Valid {
		t.ExitPrice = &exit.Decimal
	}
	if pnl.Valid {
		t.PnL = &pnl.Decimal
	}
	d, err := time.Parse(core.DateLayout, date)
	if err != nil {
		return core.Trade{}, fmt.Errorf("parsing trade_date: %w", err)
	}
	t.Date = d
	return t, nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
