// internal/news/scorer.go
package news

import (
	"github.com/newthinker/journal/internal/sentiment"
)

// Scorer attaches financial sentiment to news items
type Scorer struct {
	engine *sentiment.Engine
}

// NewScorer creates a scorer; a nil engine uses sentiment.Default.
func NewScorer(engine *sentiment.Engine) *Scorer {
	if engine == nil {
		engine = sentiment.Default()
	}
	return &Scorer{engine: engine}
}

// Score returns copies of items with Sentiment set from title and summary
func (s *Scorer) Score(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		r := s.engine.ScoreFinancialText(item.Title, item.Summary)
		item.Sentiment = &r
		out[i] = item
	}
	return out
}

// Summary aggregates the sentiment of a set of scored items
type Summary struct {
	Count        int             `json:"count"`
	MeanCompound float64         `json:"mean_compound"`
	Bullish      int             `json:"bullish"`
	Bearish      int             `json:"bearish"`
	Neutral      int             `json:"neutral"`
	Label        sentiment.Label `json:"label"`
	Formatted    string          `json:"formatted"`
}

// Aggregate summarizes scored items; unscored items are skipped.
func Aggregate(items []Item) Summary {
	var sum Summary
	var total float64
	for _, item := range items {
		if item.Sentiment == nil {
			continue
		}
		sum.Count++
		total += item.Sentiment.Compound
		switch item.Sentiment.Label {
		case sentiment.LabelBullish:
			sum.Bullish++
		case sentiment.LabelBearish:
			sum.Bearish++
		default:
			sum.Neutral++
		}
	}
	if sum.Count > 0 {
		sum.MeanCompound = total / float64(sum.Count)
	}
	sum.Label, _ = sentiment.Classify(sum.MeanCompound)
	sum.Formatted = sentiment.FormatScore(sum.MeanCompound)
	return sum
}
