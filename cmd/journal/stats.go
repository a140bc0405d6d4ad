package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/newthinker/journal/internal/analytics"
	"github.com/newthinker/journal/internal/core"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type statsOptions struct {
	initialBalance float64
	timeframe      string
	tail           int
	now            func() time.Time
}

func newStatsCmd() *cobra.Command {
	so := &statsOptions{now: time.Now}

	cmd := &cobra.Command{
		Use:   "stats <trades.csv|trades.json>",
		Short: "Print performance statistics for a trade file",
		Long: `Compute win rate, profit factor, Sharpe ratio, the equity curve and daily P&L
for trades read from a CSV file, a JSON array or an exported account snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, so, args[0])
		},
	}

	cmd.Flags().Float64Var(&so.initialBalance, "initial-balance", 10000, "starting balance (snapshots use their own)")
	cmd.Flags().StringVar(&so.timeframe, "timeframe", "all", "lookback window: 7d, 30d, 90d or all")
	cmd.Flags().IntVar(&so.tail, "tail", 10, "equity curve points to print")
	return cmd
}

func runStats(cmd *cobra.Command, so *statsOptions, path string) error {
	tf, err := core.ParseTimeframe(so.timeframe)
	if err != nil {
		return err
	}

	file, err := loadTradeFile(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	initial := decimal.NewFromFloat(so.initialBalance)
	if file.InitialBalance != nil && !cmd.Flags().Changed("initial-balance") {
		initial = *file.InitialBalance
	}

	d := analytics.Summarize(file.Trades, initial, tf, so.now())
	printDashboard(cmd.OutOrStdout(), d, initial, so.tail)
	return nil
}

func printDashboard(out io.Writer, d analytics.Dashboard, initial decimal.Decimal, tail int) {
	m := d.Metrics

	fmt.Fprintf(out, "=== Performance (%s) ===\n", d.Timeframe)
	if d.Since != nil {
		fmt.Fprintf(out, "Since:         %s\n", d.Since.Format(core.DateLayout))
	}
	fmt.Fprintf(out, "Trades:        %d (%d won, %d lost)\n", m.TotalTrades, m.WinningTrades, m.LosingTrades)
	fmt.Fprintf(out, "Win rate:      %.1f%%\n", m.WinRate)
	fmt.Fprintf(out, "Total P&L:     %.2f\n", m.TotalPnL)
	fmt.Fprintf(out, "Average P&L:   %.2f\n", m.AveragePnL)
	fmt.Fprintf(out, "Best trade:    %.2f\n", m.BestTrade)
	fmt.Fprintf(out, "Worst trade:   %.2f\n", m.WorstTrade)
	fmt.Fprintf(out, "Average win:   %.2f\n", m.AverageWin)
	fmt.Fprintf(out, "Average loss:  %.2f\n", m.AverageLoss)
	if m.HasInfiniteProfitFactor() {
		fmt.Fprintln(out, "Profit factor: ∞ (no losses)")
	} else {
		fmt.Fprintf(out, "Profit factor: %.2f\n", m.ProfitFactor)
	}
	fmt.Fprintf(out, "Sharpe ratio:  %.2f\n", m.SharpeRatio)

	final := initial.InexactFloat64()
	if n := len(d.EquityCurve); n > 0 {
		final = d.EquityCurve[n-1].Balance
	}
	fmt.Fprintf(out, "Balance:       %s -> %.2f\n", initial.StringFixed(2), final)

	points := d.EquityCurve
	if tail > 0 && len(points) > tail {
		points = points[len(points)-tail:]
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Equity Curve ===")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tBALANCE\tPNL\tCUMULATIVE")
	for _, p := range points {
		pnl := "-"
		if p.PnL != nil {
			pnl = fmt.Sprintf("%.2f", *p.PnL)
		}
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%.2f\n", p.Date.Format(core.DateLayout), p.Balance, pnl, p.CumulativePnL)
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Daily P&L ===")
	if len(d.Daily) == 0 {
		fmt.Fprintln(out, "No completed trades")
		return
	}
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPNL\tTRADES")
	for _, day := range d.Daily {
		fmt.Fprintf(w, "%s\t%.2f\t%d\n", day.Date, day.PnL, day.TradeCount)
	}
	w.Flush()
}
