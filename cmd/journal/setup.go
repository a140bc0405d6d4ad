package main

import (
	"fmt"

	"github.com/newthinker/journal/internal/config"
	"github.com/newthinker/journal/internal/logger"
	"github.com/newthinker/journal/internal/news"
	"github.com/newthinker/journal/internal/sentiment"
	"github.com/newthinker/journal/internal/storage/journal"
	"go.uber.org/zap"
)

// loadConfig reads the config file when one is given, otherwise the defaults
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Defaults()
	if opts.configFile != "" {
		var err error
		cfg, err = config.Load(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func newLogger(opts *options, cfg *config.Config) (*zap.Logger, error) {
	development := opts.debug || logger.IsDebugMode(cfg.Server.Mode)
	return logger.NewWithFile(development, cfg.Log.FileConfig())
}

func openStore(cfg config.TradeStorageConfig) (journal.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		store, err := journal.NewSQLite(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return journal.NewMemoryStore(), nil
	}
}

func newEngine(cfg config.SentimentConfig) (*sentiment.Engine, error) {
	ecfg := sentiment.Config{WordBoundary: cfg.WordBoundary}
	if cfg.LexiconPath != "" {
		lex, err := sentiment.LoadLexiconFile(cfg.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("loading lexicon: %w", err)
		}
		ecfg.Lexicon = lex
	}
	return sentiment.NewEngine(ecfg), nil
}

func newNewsProvider(cfg config.NewsConfig) (news.Provider, error) {
	var provider news.Provider = news.NewStaticProvider(nil)
	if cfg.File != "" {
		static, err := news.LoadStaticFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("loading news: %w", err)
		}
		provider = static
	}

	if cfg.CacheTTL > 0 {
		provider = news.NewCachedProvider(provider, cfg.CacheTTL)
	}
	return provider, nil
}
