// internal/news/static.go
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StaticProvider serves a fixed set of items
type StaticProvider struct {
	items []Item
	now   func() time.Time
}

// NewStaticProvider creates a provider over items
func NewStaticProvider(items []Item) *StaticProvider {
	return &StaticProvider{items: items, now: time.Now}
}

// LoadStatic reads a JSON array of items
func LoadStatic(r io.Reader) (*StaticProvider, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding news items: %w", err)
	}
	return NewStaticProvider(items), nil
}

// LoadStaticYAML reads a YAML list of items
func LoadStaticYAML(r io.Reader) (*StaticProvider, error) {
	var items []Item
	if err := yaml.NewDecoder(r).Decode(&items); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding news items: %w", err)
	}
	return NewStaticProvider(items), nil
}

// LoadStaticFile reads items from path: YAML for .yaml/.yml, JSON otherwise
func LoadStaticFile(path string) (*StaticProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening news file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadStaticYAML(f)
	}
	return LoadStatic(f)
}

// GetNews returns items tagged with symbol published in the last days days.
func (p *StaticProvider) GetNews(ctx context.Context, symbol string, days int) ([]Item, error) {
	cutoff := p.now().AddDate(0, 0, -days)
	var result []Item

	for _, item := range p.items {
		if item.PublishedAt.Before(cutoff) {
			continue
		}
		for _, s := range item.Symbols {
			if strings.EqualFold(s, symbol) {
				result = append(result, item)
				break
			}
		}
	}

	return result, nil
}

// GetMarketNews returns untagged items published in the last days days.
func (p *StaticProvider) GetMarketNews(ctx context.Context, days int) ([]Item, error) {
	cutoff := p.now().AddDate(0, 0, -days)
	var result []Item

	for _, item := range p.items {
		if item.PublishedAt.Before(cutoff) {
			continue
		}
		if len(item.Symbols) == 0 {
			result = append(result, item)
		}
	}

	return result, nil
}
