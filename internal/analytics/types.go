package analytics

import (
	"time"

	"github.com/newthinker/journal/internal/core"
)

const (
	// ProfitFactorNoLosses stands in for an infinite profit factor when there
	// are winning trades but no losing ones.
	ProfitFactorNoLosses = 999.0

	// TradingDaysPerYear annualizes the per-trade Sharpe ratio. Each trade is
	// treated as one daily sample, which overstates the ratio when several
	// trades close on the same day.
	TradingDaysPerYear = 252
)

// Metrics holds aggregate statistics over completed trades
type Metrics struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"` // Percentage of completed trades with pnl > 0
	TotalPnL      float64 `json:"total_pnl"`
	AveragePnL    float64 `json:"average_pnl"`
	BestTrade     float64 `json:"best_trade"`
	WorstTrade    float64 `json:"worst_trade"`
	ProfitFactor  float64 `json:"profit_factor"` // ProfitFactorNoLosses when nothing was lost
	AverageWin    float64 `json:"average_win"`
	AverageLoss   float64 `json:"average_loss"` // Positive magnitude
	SharpeRatio   float64 `json:"sharpe_ratio"`
}

// HasInfiniteProfitFactor reports whether ProfitFactor is the no-loss sentinel
func (m Metrics) HasInfiniteProfitFactor() bool {
	return m.ProfitFactor == ProfitFactorNoLosses && m.LosingTrades == 0 && m.WinningTrades > 0
}

// ChartPoint is one point of the equity curve
type ChartPoint struct {
	Date          time.Time `json:"date"`
	Balance       float64   `json:"balance"`
	PnL           *float64  `json:"pnl"` // nil on the synthetic starting point
	CumulativePnL float64   `json:"cumulative_pnl"`
}

// DailyPnL is the realized P&L of one calendar date
type DailyPnL struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	PnL        float64 `json:"pnl"`
	TradeCount int     `json:"trade_count"`
}

// Dashboard bundles every series the dashboard renders for one timeframe
type Dashboard struct {
	Timeframe   core.Timeframe `json:"timeframe"`
	Since       *time.Time     `json:"since,omitempty"`
	Metrics     Metrics        `json:"metrics"`
	EquityCurve []ChartPoint   `json:"equity_curve"`
	Daily       []DailyPnL     `json:"daily"`
}
