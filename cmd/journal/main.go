package main

import (
	"os"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command
type options struct {
	configFile string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "journal",
		Short: "Trading journal analytics and news sentiment",
		Long: `journal records trades per account, computes performance dashboards
(win rate, profit factor, Sharpe ratio, equity curve, daily P&L) and scores
news headlines for market sentiment.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug mode")

	root.AddCommand(
		newServeCmd(opts),
		newStatsCmd(),
		newSentimentCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
