// internal/news/types.go
package news

import (
	"context"
	"time"

	"github.com/newthinker/journal/internal/sentiment"
)

// Item is a news article or announcement
type Item struct {
	Title       string            `json:"title" yaml:"title"`
	Summary     string            `json:"summary,omitempty" yaml:"summary"`
	Source      string            `json:"source" yaml:"source"`
	URL         string            `json:"url,omitempty" yaml:"url"`
	Symbols     []string          `json:"symbols,omitempty" yaml:"symbols"` // empty means market-wide
	PublishedAt time.Time         `json:"published_at" yaml:"published_at"`
	Sentiment   *sentiment.Result `json:"sentiment,omitempty" yaml:"-"`
}

// Provider supplies news for symbols and for the market as a whole.
type Provider interface {
	GetNews(ctx context.Context, symbol string, days int) ([]Item, error)
	GetMarketNews(ctx context.Context, days int) ([]Item, error)
}
