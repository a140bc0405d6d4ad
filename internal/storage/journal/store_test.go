package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newthinker/journal/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite exercises the Store contract against any implementation
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("CreateAndGetAccount", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		acc, err := s.CreateAccount(ctx, core.Account{Name: "Main", InitialBalance: decimal.NewFromInt(10000)})
		require.NoError(t, err)
		assert.NotEmpty(t, acc.ID)
		assert.False(t, acc.CreatedAt.IsZero())
		assert.True(t, acc.CurrentBalance.Equal(decimal.NewFromInt(10000)))

		got, err := s.GetAccount(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Main", got.Name)
		assert.True(t, got.InitialBalance.Equal(acc.InitialBalance))
	})

	t.Run("DuplicateAccount", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.CreateAccount(ctx, core.Account{ID: "a1", Name: "One"})
		require.NoError(t, err)
		_, err = s.CreateAccount(ctx, core.Account{ID: "a1", Name: "Again"})
		assert.True(t, errors.Is(err, core.ErrInvalidAccount))
	})

	t.Run("InvalidAccount", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateAccount(context.Background(), core.Account{Name: " "})
		assert.True(t, errors.Is(err, core.ErrInvalidAccount))
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetAccount(context.Background(), "missing")
		assert.True(t, errors.Is(err, core.ErrAccountNotFound))

		_, err = s.ListTrades(context.Background(), "missing", ListFilter{})
		assert.True(t, errors.Is(err, core.ErrAccountNotFound))
	})

	t.Run("ListAccountsInCreationOrder", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		for i, name := range []string{"first", "second", "third"} {
			_, err := s.CreateAccount(ctx, core.Account{Name: name, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
			require.NoError(t, err)
		}

		accounts, err := s.ListAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, accounts, 3)
		assert.Equal(t, "first", accounts[0].Name)
		assert.Equal(t, "third", accounts[2].Name)
	})

	t.Run("AddTradeRebalances", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		acc := mustAccount(t, s, 1000)

		_, err := s.AddTrade(ctx, trade(acc.ID, "2024-03-01", 150.25))
		require.NoError(t, err)
		_, err = s.AddTrade(ctx, trade(acc.ID, "2024-03-02", -50.1))
		require.NoError(t, err)

		open := trade(acc.ID, "2024-03-03", 0)
		open.PnL = nil
		open.ExitPrice = nil
		_, err = s.AddTrade(ctx, open)
		require.NoError(t, err)

		got, err := s.GetAccount(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, "1100.15", got.CurrentBalance.String())
	})

	t.Run("AddTradeUnknownAccount", func(t *testing.T) {
		s := newStore(t)
		_, err := s.AddTrade(context.Background(), trade("nobody", "2024-03-01", 10))
		assert.True(t, errors.Is(err, core.ErrAccountNotFound))
	})

	t.Run("AddTradeInvalid", func(t *testing.T) {
		s := newStore(t)
		acc := mustAccount(t, s, 1000)
		bad := trade(acc.ID, "2024-03-01", 10)
		bad.EntryPrice = decimal.Zero
		_, err := s.AddTrade(context.Background(), bad)
		assert.True(t, errors.Is(err, core.ErrInvalidTrade))
	})

	t.Run("GetTradeRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		acc := mustAccount(t, s, 1000)

		in := trade(acc.ID, "2024-03-01", 12.5)
		in.Symbol = "AAPL"
		in.Notes = "breakout"
		added, err := s.AddTrade(ctx, in)
		require.NoError(t, err)

		got, err := s.GetTrade(ctx, added.ID)
		require.NoError(t, err)
		assert.Equal(t, "AAPL", got.Symbol)
		assert.Equal(t, "breakout", got.Notes)
		assert.Equal(t, core.PositionLong, got.Position)
		assert.Equal(t, "2024-03-01", got.DateKey())
		require.NotNil(t, got.PnL)
		assert.Equal(t, "12.5", got.PnL.String())
		require.NotNil(t, got.ExitPrice)
		assert.True(t, got.ExitPrice.Equal(decimal.NewFromInt(110)))

		_, err = s.GetTrade(ctx, "missing")
		assert.True(t, errors.Is(err, core.ErrTradeNotFound))
	})

	t.Run("UpdateTrade", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		acc := mustAccount(t, s, 1000)

		added, err := s.AddTrade(ctx, trade(acc.ID, "2024-03-01", 100))
		require.NoError(t, err)

		added.PnL = core.Dec(-40)
		require.NoError(t, s.UpdateTrade(ctx, added))

		got, _ := s.GetAccount(ctx, acc.ID)
		assert.Equal(t, "960", got.CurrentBalance.String())

		added.ID = "missing"
		err = s.UpdateTrade(ctx, added)
		assert.True(t, errors.Is(err, core.ErrTradeNotFound))
	})

	t.Run("UpdateTradeMovesAccount", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		a := mustAccount(t, s, 1000)
		b := mustAccount(t, s, 500)

		added, err := s.AddTrade(ctx, trade(a.ID, "2024-03-01", 100))
		require.NoError(t, err)

		added.AccountID = b.ID
		require.NoError(t, s.UpdateTrade(ctx, added))

		gotA, _ := s.GetAccount(ctx, a.ID)
		gotB, _ := s.GetAccount(ctx, b.ID)
		assert.Equal(t, "1000", gotA.CurrentBalance.String())
		assert.Equal(t, "600", gotB.CurrentBalance.String())
	})

	t.Run("DeleteTrade", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		acc := mustAccount(t, s, 1000)

		added, err := s.AddTrade(ctx, trade(acc.ID, "2024-03-01", 100))
		require.NoError(t, err)
		require.NoError(t, s.DeleteTrade(ctx, added.ID))

		got, _ := s.GetAccount(ctx, acc.ID)
		assert.Equal(t, "1000", got.CurrentBalance.String())

		err = s.DeleteTrade(ctx, added.ID)
		assert.True(t, errors.Is(err, core.ErrTradeNotFound))
	})

	t.Run("ListTradesOrderAndFilter", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		acc := mustAccount(t, s, 1000)

		for _, tr := range []core.Trade{
			withNotes(trade(acc.ID, "2024-03-05", 1), "c"),
			withNotes(trade(acc.ID, "2024-03-01", 2), "a"),
			withNotes(trade(acc.ID, "2024-03-05", 3), "d"),
			withNotes(trade(acc.ID, "2024-03-03", 4), "b"),
		} {
			_, err := s.AddTrade(ctx, tr)
			require.NoError(t, err)
		}

		all, err := s.ListTrades(ctx, acc.ID, ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, notes(all))

		ranged, err := s.ListTrades(ctx, acc.ID, ListFilter{From: day("2024-03-02"), To: day("2024-03-05")})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "d"}, notes(ranged))

		limited, err := s.ListTrades(ctx, acc.ID, ListFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, notes(limited))
	})

	t.Run("ListTradesEmpty", func(t *testing.T) {
		s := newStore(t)
		acc := mustAccount(t, s, 1000)

		trades, err := s.ListTrades(context.Background(), acc.ID, ListFilter{})
		require.NoError(t, err)
		assert.NotNil(t, trades)
		assert.Empty(t, trades)
	})
}

func mustAccount(t *testing.T, s Store, balance int64) core.Account {
	t.Helper()
	acc, err := s.CreateAccount(context.Background(), core.Account{Name: "acc", InitialBalance: decimal.NewFromInt(balance)})
	require.NoError(t, err)
	return acc
}

func day(s string) time.Time {
	d, err := time.Parse(core.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func trade(accountID, date string, pnl float64) core.Trade {
	return core.Trade{
		AccountID:  accountID,
		Position:   core.PositionLong,
		EntryPrice: decimal.NewFromInt(100),
		ExitPrice:  core.Dec(110),
		PnL:        core.Dec(pnl),
		Date:       day(date),
	}
}

func withNotes(t core.Trade, n string) core.Trade {
	t.Notes = n
	return t
}

func notes(trades []core.Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.Notes
	}
	return out
}
