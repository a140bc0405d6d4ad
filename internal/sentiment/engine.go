// Package sentiment scores free text into a bounded polarity signal, with an
// optional financial keyword pass for news headlines.
package sentiment

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// Label is the market reading of a compound score
type Label string

const (
	LabelBullish Label = "Bullish"
	LabelBearish Label = "Bearish"
	LabelNeutral Label = "Neutral"
)

// Color is the display tone of a label
type Color string

const (
	ColorPositive Color = "positive"
	ColorNegative Color = "negative"
	ColorNeutral  Color = "neutral"
)

// Icon is the glyph rendered next to a score
type Icon string

const (
	IconUp   Icon = "↑"
	IconDown Icon = "↓"
	IconFlat Icon = "–"
)

// Compound scores inside (-Threshold, Threshold) are Neutral.
const Threshold = 0.05

// Result is the outcome of scoring a text
type Result struct {
	Compound float64 `json:"compound"` // [-1, 1]
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Label    Label   `json:"label"`
	Color    Color   `json:"color"`
}

// Classify maps a compound score onto its label and color
func Classify(compound float64) (Label, Color) {
	switch {
	case compound >= Threshold:
		return LabelBullish, ColorPositive
	case compound <= -Threshold:
		return LabelBearish, ColorNegative
	}
	return LabelNeutral, ColorNeutral
}

// Config configures an Engine
type Config struct {
	// Lexicon adds to or replaces entries of the stock VADER lexicon
	Lexicon *Lexicon
	// WordBoundary counts financial keywords as whole words instead of substrings
	WordBoundary bool
}

// Engine scores text. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	analyzer     *Analyzer
	wordBoundary bool
}

// NewEngine creates an engine from cfg
func NewEngine(cfg Config) *Engine {
	return &Engine{
		analyzer:     NewAnalyzer(cfg.Lexicon),
		wordBoundary: cfg.WordBoundary,
	}
}

var disallowed = regexp.MustCompile(`[^\pL\pM\pN_ .,!?-]`)

// Normalize folds every Unicode space to a single ASCII space, then drops runes
// other than letters, digits, underscore and . , ! ? -
func Normalize(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)
	text = disallowed.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// ScoreText scores general text
func (e *Engine) ScoreText(text string) Result {
	s := e.analyzer.PolarityScores(Normalize(text))
	label, color := Classify(s.Compound)
	return Result{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Label:    label,
		Color:    color,
	}
}

// ScoreFinancialText scores a headline: the title is counted twice, then every
// financial keyword occurrence shifts the compound by KeywordWeight. The
// positive/negative/neutral proportions stay those of the baseline score.
func (e *Engine) ScoreFinancialText(title, summary string) Result {
	combined := title + " " + title + " " + summary
	r := e.ScoreText(combined)

	bull, bear := e.countKeywords(combined)
	boost := KeywordWeight*float64(bull) - KeywordWeight*float64(bear)

	r.Compound = clamp(r.Compound+boost, -1, 1)
	r.Label, r.Color = Classify(r.Compound)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatScore renders a compound score as a signed percentage, e.g. "+50.0%".
func FormatScore(compound float64) string {
	pct := compound * 100
	if pct == 0 {
		pct = 0 // drop the sign of negative zero
	}
	return fmt.Sprintf("%+.1f%%", pct)
}

// IconFor returns the glyph for r's color
func IconFor(r Result) Icon {
	switch r.Color {
	case ColorPositive:
		return IconUp
	case ColorNegative:
		return IconDown
	}
	return IconFlat
}

var defaultEngine = sync.OnceValue(func() *Engine {
	return NewEngine(Config{})
})

// Default returns the engine over the stock VADER lexicon with substring keyword matching
func Default() *Engine {
	return defaultEngine()
}

// ScoreText scores text with the default engine
func ScoreText(text string) Result {
	return Default().ScoreText(text)
}

// ScoreFinancialText scores a title/summary pair with the default engine
func ScoreFinancialText(title, summary string) Result {
	return Default().ScoreFinancialText(title, summary)
}
