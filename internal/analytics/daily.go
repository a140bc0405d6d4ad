package analytics

import (
	"sort"
	"time"

	"github.com/newthinker/journal/internal/core"
	"github.com/shopspring/decimal"
)

// ComputeDailyPnL groups completed trades by calendar date. Days appear in the
// order their first trade appears in the input, not chronologically.
func ComputeDailyPnL(trades []core.Trade) []DailyPnL {
	index := make(map[string]int)
	var sums []decimal.Decimal
	days := []DailyPnL{}

	for _, t := range trades {
		if !t.IsCompleted() {
			continue
		}
		key := t.DateKey()
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, DailyPnL{Date: key})
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(*t.PnL)
		days[i].TradeCount++
	}

	for i := range days {
		days[i].PnL = sums[i].InexactFloat64()
	}
	return days
}

// SortDaily returns a chronologically ordered copy of days
func SortDaily(days []DailyPnL) []DailyPnL {
	out := make([]DailyPnL, len(days))
	copy(out, days)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Summarize computes the dashboard for the trades inside tf, counted back from now.
// Metrics and daily P&L use the same filtered set as the equity curve.
func Summarize(trades []core.Trade, initialBalance decimal.Decimal, tf core.Timeframe, now time.Time) Dashboard {
	cutoff := Cutoff(tf, now)
	included := FilterSince(trades, cutoff)

	d := Dashboard{
		Timeframe:   tf,
		Metrics:     ComputeMetrics(included),
		EquityCurve: GenerateEquityCurve(included, initialBalance, cutoff),
		Daily:       SortDaily(ComputeDailyPnL(included)),
	}
	if !cutoff.IsZero() {
		d.Since = &cutoff
	}
	return d
}
