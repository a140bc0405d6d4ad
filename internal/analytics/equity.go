package analytics

import (
	"sort"
	"time"

	"github.com/newthinker/journal/internal/core"
	"github.com/shopspring/decimal"
)

// Cutoff returns the first calendar day included by tf, counted back from now's
// calendar date. It is UTC midnight, matching how trade dates are stored.
// All time returns the zero time.
func Cutoff(tf core.Timeframe, now time.Time) time.Time {
	days := tf.Days()
	if days == 0 {
		return time.Time{}
	}
	y, m, d := now.Date()
	return time.Date(y, m, d-days, 0, 0, 0, 0, time.UTC)
}

// FilterSince keeps trades dated on or after cutoff, preserving order.
// A zero cutoff keeps everything.
func FilterSince(trades []core.Trade, cutoff time.Time) []core.Trade {
	if cutoff.IsZero() {
		return append([]core.Trade(nil), trades...)
	}
	out := make([]core.Trade, 0, len(trades))
	for _, t := range trades {
		if !t.Date.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// GenerateEquityCurve builds the balance series of trades dated on or after
// cutoff. The first point is a synthetic start at initialBalance, dated the day
// before the earliest included trade (or at cutoff when nothing is included).
// Trades without a recorded P&L emit no point.
func GenerateEquityCurve(trades []core.Trade, initialBalance decimal.Decimal, cutoff time.Time) []ChartPoint {
	included := FilterSince(trades, cutoff)
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].Date.Before(included[j].Date)
	})

	start := cutoff
	if len(included) > 0 {
		start = included[0].Date.AddDate(0, 0, -1)
	}

	points := make([]ChartPoint, 0, len(included)+1)
	points = append(points, ChartPoint{
		Date:    start,
		Balance: initialBalance.InexactFloat64(),
	})

	cumulative := decimal.Zero
	for _, t := range included {
		if !t.IsCompleted() {
			continue
		}
		cumulative = cumulative.Add(*t.PnL)
		pnl := t.PnL.InexactFloat64()
		points = append(points, ChartPoint{
			Date:          t.Date,
			Balance:       initialBalance.Add(cumulative).InexactFloat64(),
			PnL:           &pnl,
			CumulativePnL: cumulative.InexactFloat64(),
		})
	}

	return points
}

// CurrentBalance is the initial balance plus every recorded P&L
func CurrentBalance(initialBalance decimal.Decimal, trades []core.Trade) decimal.Decimal {
	balance := initialBalance
	for _, t := range trades {
		if t.IsCompleted() {
			balance = balance.Add(*t.PnL)
		}
	}
	return balance
}
