package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for trade dates.
const DateLayout = "2006-01-02"

// Position is the side of a trade
type Position string

const (
	PositionLong  Position = "long"
	PositionShort Position = "short"
)

// ParsePosition accepts "long"/"short" in any case
func ParsePosition(s string) (Position, error) {
	switch Position(strings.ToLower(strings.TrimSpace(s))) {
	case PositionLong:
		return PositionLong, nil
	case PositionShort:
		return PositionShort, nil
	}
	return "", Errorf(ErrInvalidTrade, "unknown position %q", s)
}

// Trade is one journal entry. PnL is recorded independently of the prices and
// is never reconciled against them.
type Trade struct {
	ID         string           `json:"id"`
	AccountID  string           `json:"account_id"`
	Symbol     string           `json:"symbol,omitempty"`
	Position   Position         `json:"position"`
	EntryPrice decimal.Decimal  `json:"entry_price"`
	ExitPrice  *decimal.Decimal `json:"exit_price,omitempty"` // nil while open
	PnL        *decimal.Decimal `json:"pnl,omitempty"`        // nil until recorded
	Date       time.Time        `json:"date"`
	Notes      string           `json:"notes,omitempty"`
}

// Clone returns a copy of t that shares no pointers with it
func (t Trade) Clone() Trade {
	if t.ExitPrice != nil {
		v := *t.ExitPrice
		t.ExitPrice = &v
	}
	if t.PnL != nil {
		v := *t.PnL
		t.PnL = &v
	}
	return t
}

// IsCompleted reports whether the trade has a recorded P&L
func (t Trade) IsCompleted() bool {
	return t.PnL != nil
}

// IsOpen reports whether the trade has no exit price yet
func (t Trade) IsOpen() bool {
	return t.ExitPrice == nil
}

// DateKey returns the calendar date of the trade as YYYY-MM-DD
func (t Trade) DateKey() string {
	return t.Date.Format(DateLayout)
}

// Validate checks the fields the analytics rely on
func (t Trade) Validate() error {
	if t.Position != PositionLong && t.Position != PositionShort {
		return Errorf(ErrInvalidTrade, "unknown position %q", t.Position)
	}
	if !t.EntryPrice.IsPositive() {
		return Errorf(ErrInvalidTrade, "entry price must be positive, got %s", t.EntryPrice)
	}
	if t.ExitPrice != nil && t.ExitPrice.IsNegative() {
		return Errorf(ErrInvalidTrade, "exit price cannot be negative, got %s", t.ExitPrice)
	}
	if t.Date.IsZero() {
		return Errorf(ErrInvalidTrade, "date is required")
	}
	return nil
}

// Account is a trading account whose trades are journaled
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Validate checks the account has a name and a non-negative starting balance
func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return Errorf(ErrInvalidAccount, "name is required")
	}
	if a.InitialBalance.IsNegative() {
		return Errorf(ErrInvalidAccount, "initial balance cannot be negative, got %s", a.InitialBalance)
	}
	return nil
}

// Timeframe is a dashboard lookback window
type Timeframe string

const (
	Timeframe7D  Timeframe = "7d"
	Timeframe30D Timeframe = "30d"
	Timeframe90D Timeframe = "90d"
	TimeframeAll Timeframe = "all"
)

// ParseTimeframe maps a query value onto a Timeframe; empty means all time
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case Timeframe7D, Timeframe30D, Timeframe90D, TimeframeAll:
		return tf, nil
	case "":
		return TimeframeAll, nil
	}
	return "", WrapError(ErrInvalidTimeframe, fmt.Errorf("%q (want 7d, 30d, 90d or all)", s))
}

// Days returns the lookback length, or 0 for all time
func (tf Timeframe) Days() int {
	switch tf {
	case Timeframe7D:
		return 7
	case Timeframe30D:
		return 30
	case Timeframe90D:
		return 90
	}
	return 0
}

// Dec is shorthand for a decimal pointer, used for optional prices and P&L.
func Dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
