package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/archive"
	"github.com/shopspring/decimal"
)

// tradeFile is a set of trades read from disk. InitialBalance is set when the
// file is an account snapshot.
type tradeFile struct {
	Trades         []core.Trade
	InitialBalance *decimal.Decimal
}

// csvTrade is one row of a trades CSV. Empty exit_price or pnl cells mean the
// trade is still open or has no recorded result.
type csvTrade struct {
	ID         string `csv:"id"`
	Symbol     string `csv:"symbol"`
	Position   string `csv:"position"`
	EntryPrice string `csv:"entry_price"`
	ExitPrice  string `csv:"exit_price"`
	PnL        string `csv:"pnl"`
	Date       string `csv:"date"`
	Notes      string `csv:"notes"`
}

type jsonTrade struct {
	ID         string           `json:"id"`
	Symbol     string           `json:"symbol"`
	Position   string           `json:"position"`
	EntryPrice decimal.Decimal  `json:"entry_price"`
	ExitPrice  *decimal.Decimal `json:"exit_price"`
	PnL        *decimal.Decimal `json:"pnl"`
	Date       string           `json:"date"`
	Notes      string           `json:"notes"`
}

// loadTradeFile reads a .csv trade list, a .json trade array or a .json account snapshot
func loadTradeFile(path string) (tradeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tradeFile{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		trades, err := parseCSVTrades(data)
		return tradeFile{Trades: trades}, err
	case ".json":
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
			snap, err := archive.DecodeSnapshot(trimmed)
			if err != nil {
				return tradeFile{}, err
			}
			return tradeFile{Trades: snap.Trades, InitialBalance: &snap.Account.InitialBalance}, nil
		}
		trades, err := parseJSONTrades(data)
		return tradeFile{Trades: trades}, err
	}
	return tradeFile{}, core.Errorf(core.ErrInvalidRequest, "unsupported trade file %q (want .csv or .json)", path)
}

func parseCSVTrades(data []byte) ([]core.Trade, error) {
	var rows []*csvTrade
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, core.WrapError(core.ErrInvalidRequest, fmt.Errorf("decoding csv: %w", err))
	}

	trades := make([]core.Trade, 0, len(rows))
	for i, row := range rows {
		t, err := row.trade()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func (row csvTrade) trade() (core.Trade, error) {
	entry, err := decimal.NewFromString(strings.TrimSpace(row.EntryPrice))
	if err != nil {
		return core.Trade{}, core.Errorf(core.ErrInvalidTrade, "entry_price %q is not a number", row.EntryPrice)
	}
	exit, err := optionalDecimal("exit_price", row.ExitPrice)
	if err != nil {
		return core.Trade{}, err
	}
	pnl, err := optionalDecimal("pnl", row.PnL)
	if err != nil {
		return core.Trade{}, err
	}

	return buildTrade(row.ID, row.Symbol, row.Position, entry, exit, pnl, row.Date, row.Notes)
}

func parseJSONTrades(data []byte) ([]core.Trade, error) {
	var rows []jsonTrade
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, core.WrapError(core.ErrInvalidRequest, fmt.Errorf("decoding json: %w", err))
	}

	trades := make([]core.Trade, 0, len(rows))
	for i, row := range rows {
		t, err := buildTrade(row.ID, row.Symbol, row.Position, row.EntryPrice, row.ExitPrice, row.PnL, row.Date, row.Notes)
		if err != nil {
			return nil, fmt.Errorf("trade %d: %w", i+1, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func buildTrade(id, symbol, position string, entry decimal.Decimal, exit, pnl *decimal.Decimal, date, notes string) (core.Trade, error) {
	pos, err := core.ParsePosition(position)
	if err != nil {
		return core.Trade{}, err
	}
	day, err := parseDay(date)
	if err != nil {
		return core.Trade{}, err
	}

	t := core.Trade{
		ID:         id,
		Symbol:     symbol,
		Position:   pos,
		EntryPrice: entry,
		ExitPrice:  exit,
		PnL:        pnl,
		Date:       day,
		Notes:      notes,
	}
	return t, t.Validate()
}

func optionalDecimal(field, s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, core.Errorf(core.ErrInvalidTrade, "%s %q is not a number", field, s)
	}
	return &d, nil
}

// parseDay accepts YYYY-MM-DD or RFC 3339
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(core.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, core.Errorf(core.ErrInvalidTrade, "date %q (want YYYY-MM-DD)", s)
	}
	return t.UTC(), nil
}
