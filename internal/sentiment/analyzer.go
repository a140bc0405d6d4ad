package sentiment

import (
	"maps"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
)

// Scores are the raw polarity scores of a text
type Scores struct {
	Compound float64
	Positive float64
	Negative float64
	Neutral  float64
}

// Analyzer runs VADER over normalized text. Only reads happen after
// construction, so one Analyzer may serve many goroutines.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// stock parses the bundled VADER lexicon once per process.
var stock = sync.OnceValue(govader.NewSentimentIntensityAnalyzer)

// NewAnalyzer returns an analyzer over the full VADER lexicon. Entries in
// overrides replace or extend it; nil means no overrides.
func NewAnalyzer(overrides *Lexicon) *Analyzer {
	base := stock()
	if overrides.Len() == 0 {
		return &Analyzer{sia: base}
	}

	merged := make(map[string]float64, len(base.Lexicon)+overrides.Len())
	maps.Copy(merged, base.Lexicon)
	maps.Copy(merged, overrides.valence)
	return &Analyzer{sia: &govader.SentimentIntensityAnalyzer{
		Lexicon:   merged,
		EmojiDict: base.EmojiDict,
		Constants: base.Constants,
	}}
}

// PolarityScores scores text. Blank input scores zero everywhere.
func (a *Analyzer) PolarityScores(text string) Scores {
	if strings.TrimSpace(text) == "" {
		return Scores{}
	}
	s := a.sia.PolarityScores(text)
	return Scores{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}

// Valence reports the lexicon valence of token, overrides included
func (a *Analyzer) Valence(token string) (float64, bool) {
	v, ok := a.sia.Lexicon[strings.ToLower(token)]
	return v, ok
}
