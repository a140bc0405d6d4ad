// internal/news/cached.go
package news

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type cacheEntry struct {
	items []Item
	at    time.Time
}

// CachedProvider memoizes another provider for ttl
type CachedProvider struct {
	provider Provider
	ttl      time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewCachedProvider wraps provider with a ttl cache
func NewCachedProvider(provider Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		ttl:      ttl,
		cache:    make(map[string]cacheEntry),
	}
}

func (p *CachedProvider) lookup(key string) ([]Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.cache[key]
	if !ok || time.Since(e.at) >= p.ttl {
		return nil, false
	}
	return e.items, true
}

func (p *CachedProvider) store(key string, items []Item) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[key] = cacheEntry{items: items, at: time.Now()}
}

// GetNews returns cached news or fetches from the underlying provider.
func (p *CachedProvider) GetNews(ctx context.Context, symbol string, days int) ([]Item, error) {
	key := fmt.Sprintf("symbol:%s:%d", symbol, days)
	if items, ok := p.lookup(key); ok {
		return items, nil
	}

	items, err := p.provider.GetNews(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	p.store(key, items)
	return items, nil
}

// GetMarketNews returns cached market news or fetches from the underlying provider.
func (p *CachedProvider) GetMarketNews(ctx context.Context, days int) ([]Item, error) {
	key := fmt.Sprintf("market:%d", days)
	if items, ok := p.lookup(key); ok {
		return items, nil
	}

	items, err := p.provider.GetMarketNews(ctx, days)
	if err != nil {
		return nil, err
	}
	p.store(key, items)
	return items, nil
}
