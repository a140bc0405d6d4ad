package sentiment

import (
	"strings"
	"unicode"
)

// KeywordWeight is the compound shift per financial keyword occurrence.
const KeywordWeight = 0.1

var (
	BullishKeywords = []string{
		"profit", "gain", "rise", "surge", "rally", "bull", "bullish", "growth",
		"increase", "up", "positive", "strong", "beat", "exceed", "outperform",
		"breakthrough", "success", "record", "high", "soar", "climb",
	}

	BearishKeywords = []string{
		"loss", "fall", "drop", "crash", "bear", "bearish", "decline", "decrease",
		"down", "negative", "weak", "miss", "underperform", "concern", "worry",
		"risk", "threat", "low", "plunge", "tumble", "slide",
	}
)

// countKeywords counts bullish and bearish keyword hits in text, case-insensitively.
// Substring mode counts "bull" inside "bullish" as well as "bullish" itself.
func (e *Engine) countKeywords(text string) (bull, bear int) {
	text = strings.ToLower(text)
	if e.wordBoundary {
		counts := make(map[string]int)
		for _, w := range strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			counts[w]++
		}
		for _, k := range BullishKeywords {
			bull += counts[k]
		}
		for _, k := range BearishKeywords {
			bear += counts[k]
		}
		return bull, bear
	}

	for _, k := range BullishKeywords {
		bull += strings.Count(text, k)
	}
	for _, k := range BearishKeywords {
		bear += strings.Count(text, k)
	}
	return bull, bear
}
