package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/newthinker/journal/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func closedTrade(pnl float64, date string) core.Trade {
	d, _ := time.Parse(core.DateLayout, date)
	return core.Trade{
		Position:   core.PositionLong,
		EntryPrice: decimal.NewFromInt(100),
		ExitPrice:  core.Dec(100 + pnl),
		PnL:        core.Dec(pnl),
		Date:       d,
	}
}

func openTrade(date string) core.Trade {
	d, _ := time.Parse(core.DateLayout, date)
	return core.Trade{
		Position:   core.PositionShort,
		EntryPrice: decimal.NewFromInt(100),
		Date:       d,
	}
}

func tradesWithPnL(pnls ...float64) []core.Trade {
	trades := make([]core.Trade, len(pnls))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range pnls {
		trades[i] = closedTrade(p, start.AddDate(0, 0, i).Format(core.DateLayout))
	}
	return trades
}

func TestComputeMetrics_Empty(t *testing.T) {
	assert.Equal(t, Metrics{}, ComputeMetrics(nil))
	assert.Equal(t, Metrics{}, ComputeMetrics([]core.Trade{openTrade("2024-01-01")}))
}

func TestComputeMetrics_MixedTrades(t *testing.T) {
	m := ComputeMetrics(tradesWithPnL(500, -200, 300, -100, 400))

	assert.Equal(t, 5, m.TotalTrades)
	assert.Equal(t, 3, m.WinningTrades)
	assert.Equal(t, 2, m.LosingTrades)
	assert.InDelta(t, 60.0, m.WinRate, 1e-9)
	assert.InDelta(t, 900.0, m.TotalPnL, 1e-9)
	assert.InDelta(t, 180.0, m.AveragePnL, 1e-9)
	assert.InDelta(t, 500.0, m.BestTrade, 1e-9)
	assert.InDelta(t, -200.0, m.WorstTrade, 1e-9)
	assert.InDelta(t, 1200.0/300.0, m.ProfitFactor, 1e-9)
	assert.InDelta(t, 400.0, m.AverageWin, 1e-9)
	assert.InDelta(t, 150.0, m.AverageLoss, 1e-9)
}

func TestComputeMetrics_ProfitFactor(t *testing.T) {
	tests := []struct {
		name string
		pnls []float64
		want float64
	}{
		{"wins and losses", []float64{600, 400, -200, -100}, 1000.0 / 300.0},
		{"no losses", []float64{500, 300}, ProfitFactorNoLosses},
		{"only losses", []float64{-50, -25}, 0},
		{"only breakeven", []float64{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(tradesWithPnL(tt.pnls...))
			assert.InDelta(t, tt.want, m.ProfitFactor, 1e-9)
		})
	}

	assert.True(t, ComputeMetrics(tradesWithPnL(500, 300)).HasInfiniteProfitFactor())
	assert.False(t, ComputeMetrics(tradesWithPnL(500, -300)).HasInfiniteProfitFactor())
}

func TestComputeMetrics_BreakevenCountsOnlyInTotal(t *testing.T) {
	m := ComputeMetrics(tradesWithPnL(100, 0, -50))

	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 1, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
	assert.InDelta(t, 100.0/3.0, m.WinRate, 1e-9)
}

func TestComputeMetrics_SingleTrade(t *testing.T) {
	m := ComputeMetrics(tradesWithPnL(-75))

	assert.Equal(t, -75.0, m.BestTrade)
	assert.Equal(t, -75.0, m.WorstTrade)
	assert.Equal(t, 0.0, m.SharpeRatio)
	assert.Equal(t, 0.0, m.AverageWin)
	assert.Equal(t, 75.0, m.AverageLoss)
}

func TestComputeMetrics_IgnoresOpenTrades(t *testing.T) {
	trades := append(tradesWithPnL(100, -40), openTrade("2024-02-01"), openTrade("2024-02-02"))
	m := ComputeMetrics(trades)

	if m.TotalTrades != 2 {
		t.Errorf("TotalTrades = %d, want 2", m.TotalTrades)
	}
}

func TestSharpeRatio(t *testing.T) {
	// mean 150, sample stddev = sqrt(((50)^2 + (50)^2)/1) = 70.71
	m := ComputeMetrics(tradesWithPnL(100, 200))
	want := 150 / math.Sqrt(5000) * math.Sqrt(252)
	if math.Abs(m.SharpeRatio-want) > 1e-9 {
		t.Errorf("SharpeRatio = %f, want %f", m.SharpeRatio, want)
	}
}

func TestSharpeRatio_ZeroVariance(t *testing.T) {
	for _, pnls := range [][]float64{
		{100, 100, 100},
		{0.1, 0.1, 0.1},
		{-33.33, -33.33},
	} {
		m := ComputeMetrics(tradesWithPnL(pnls...))
		if m.SharpeRatio != 0 {
			t.Errorf("SharpeRatio(%v) = %f, want 0", pnls, m.SharpeRatio)
		}
	}
}

func TestSharpeRatio_NegativeMean(t *testing.T) {
	m := ComputeMetrics(tradesWithPnL(-100, -300, 50))
	assert.Less(t, m.SharpeRatio, 0.0)
}
