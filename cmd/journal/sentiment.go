package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/newthinker/journal/internal/sentiment"
	"github.com/spf13/cobra"
)

type sentimentOptions struct {
	title        string
	summary      string
	wordBoundary bool
}

func newSentimentCmd(opts *options) *cobra.Command {
	so := &sentimentOptions{}

	cmd := &cobra.Command{
		Use:   "sentiment [text...]",
		Short: "Score text or a headline for market sentiment",
		Long: `Score free text, or a news headline given as --title and --summary.
Headlines count the title twice and apply the financial keyword boost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSentiment(cmd, opts, so, args)
		},
	}

	cmd.Flags().StringVar(&so.title, "title", "", "headline title")
	cmd.Flags().StringVar(&so.summary, "summary", "", "headline summary")
	cmd.Flags().BoolVar(&so.wordBoundary, "word-boundary", false, "match financial keywords as whole words")
	return cmd
}

func runSentiment(cmd *cobra.Command, opts *options, so *sentimentOptions, args []string) error {
	text := strings.Join(args, " ")
	headline := so.title != "" || so.summary != ""
	if headline && text != "" {
		return errors.New("give either text or --title/--summary, not both")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("word-boundary") {
		cfg.Sentiment.WordBoundary = so.wordBoundary
	}
	engine, err := newEngine(cfg.Sentiment)
	if err != nil {
		return err
	}

	var r sentiment.Result
	if headline {
		r = engine.ScoreFinancialText(so.title, so.summary)
	} else {
		r = engine.ScoreText(text)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s %s\n", sentiment.IconFor(r), sentiment.FormatScore(r.Compound), r.Label)
	fmt.Fprintf(out, "compound=%.4f positive=%.3f negative=%.3f neutral=%.3f\n",
		r.Compound, r.Positive, r.Negative, r.Neutral)
	return nil
}
