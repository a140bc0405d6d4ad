package analytics

import (
	"math"

	"github.com/newthinker/journal/internal/core"
	"github.com/shopspring/decimal"
)

// ComputeMetrics computes performance statistics from the completed trades.
// Trades without a recorded P&L are ignored. An empty set yields zero Metrics.
func ComputeMetrics(trades []core.Trade) Metrics {
	pnls := completedPnL(trades)
	if len(pnls) == 0 {
		return Metrics{}
	}

	var winning, losing int
	total := decimal.Zero
	grossWin := decimal.Zero
	grossLoss := decimal.Zero
	best, worst := pnls[0], pnls[0]

	for _, p := range pnls {
		total = total.Add(p)
		switch {
		case p.IsPositive():
			winning++
			grossWin = grossWin.Add(p)
		case p.IsNegative():
			losing++
			grossLoss = grossLoss.Add(p.Neg())
		}
		if p.GreaterThan(best) {
			best = p
		}
		if p.LessThan(worst) {
			worst = p
		}
	}

	n := len(pnls)
	m := Metrics{
		TotalTrades:   n,
		WinningTrades: winning,
		LosingTrades:  losing,
		WinRate:       float64(winning) / float64(n) * 100,
		TotalPnL:      total.InexactFloat64(),
		AveragePnL:    total.Div(decimal.NewFromInt(int64(n))).InexactFloat64(),
		BestTrade:     best.InexactFloat64(),
		WorstTrade:    worst.InexactFloat64(),
		ProfitFactor:  profitFactor(grossWin, grossLoss),
		SharpeRatio:   sharpeRatio(pnls),
	}
	if winning > 0 {
		m.AverageWin = grossWin.Div(decimal.NewFromInt(int64(winning))).InexactFloat64()
	}
	if losing > 0 {
		m.AverageLoss = grossLoss.Div(decimal.NewFromInt(int64(losing))).InexactFloat64()
	}
	return m
}

func completedPnL(trades []core.Trade) []decimal.Decimal {
	var pnls []decimal.Decimal
	for _, t := range trades {
		if t.IsCompleted() {
			pnls = append(pnls, *t.PnL)
		}
	}
	return pnls
}

// profitFactor is gross wins over gross losses (both positive magnitudes)
func profitFactor(grossWin, grossLoss decimal.Decimal) float64 {
	switch {
	case grossLoss.IsPositive():
		return grossWin.InexactFloat64() / grossLoss.InexactFloat64()
	case grossWin.IsPositive():
		return ProfitFactorNoLosses
	}
	return 0
}

// sharpeRatio uses the sample standard deviation of per-trade P&L with a risk-free
// rate of 0. Mean and deviations are kept in decimal so identical values give an
// exactly zero variance.
func sharpeRatio(pnls []decimal.Decimal) float64 {
	if len(pnls) < 2 {
		return 0
	}

	n := decimal.NewFromInt(int64(len(pnls)))
	sum := decimal.Zero
	for _, p := range pnls {
		sum = sum.Add(p)
	}
	mean := sum.Div(n)

	variance := decimal.Zero
	for _, p := range pnls {
		d := p.Sub(mean)
		variance = variance.Add(d.Mul(d))
	}
	if variance.IsZero() {
		return 0
	}

	stdDev := math.Sqrt(variance.InexactFloat64() / float64(len(pnls)-1))
	if stdDev == 0 {
		return 0
	}

	return mean.InexactFloat64() / stdDev * math.Sqrt(TradingDaysPerYear)
}
