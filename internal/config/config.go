package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/logger"
	"github.com/newthinker/journal/internal/storage/archive"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	News      NewsConfig      `mapstructure:"news"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Mode   string `mapstructure:"mode"` // "debug" enables the development logger
	APIKey string `mapstructure:"api_key"`
}

type StorageConfig struct {
	Trades  TradeStorageConfig   `mapstructure:"trades"`
	Archive ArchiveStorageConfig `mapstructure:"archive"`
}

type TradeStorageConfig struct {
	Driver string `mapstructure:"driver"` // "memory" or "sqlite"
	DSN    string `mapstructure:"dsn"`
}

type ArchiveStorageConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// AnalyticsConfig holds dashboard defaults.
type AnalyticsConfig struct {
	DefaultTimeframe      string  `mapstructure:"default_timeframe"`
	DefaultInitialBalance float64 `mapstructure:"default_initial_balance"`
}

// SentimentConfig holds scoring settings.
type SentimentConfig struct {
	// WordBoundary matches financial keywords as whole words; the default counts substrings.
	WordBoundary bool   `mapstructure:"word_boundary"`
	LexiconPath  string `mapstructure:"lexicon_path"`
}

// NewsConfig holds the news provider settings.
type NewsConfig struct {
	File     string        `mapstructure:"file"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig adds a rotating log file; an empty file logs to the console only.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads configuration from file, layered over Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("reading config: %w", err))
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unmarshaling config: %w", err))
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("storage.trades.driver", d.Storage.Trades.Driver)
	v.SetDefault("storage.archive.type", d.Storage.Archive.Type)
	v.SetDefault("storage.archive.path", d.Storage.Archive.Path)
	v.SetDefault("analytics.default_timeframe", d.Analytics.DefaultTimeframe)
	v.SetDefault("analytics.default_initial_balance", d.Analytics.DefaultInitialBalance)
	v.SetDefault("news.cache_ttl", d.News.CacheTTL)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",
		},
		Storage: StorageConfig{
			Trades: TradeStorageConfig{
				Driver: "memory",
			},
			Archive: ArchiveStorageConfig{
				Type: "localfs",
				Path: "data/archive",
			},
		},
		Analytics: AnalyticsConfig{
			DefaultTimeframe:      string(core.TimeframeAll),
			DefaultInitialBalance: 10000,
		},
		News: NewsConfig{
			CacheTTL: 5 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: LogConfig{
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Storage.Trades.Driver {
	case "memory":
	case "sqlite":
		if c.Storage.Trades.DSN == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.trades.dsn required when driver is sqlite"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown trade storage driver %q", c.Storage.Trades.Driver))
	}

	switch c.Storage.Archive.Type {
	case "localfs":
		if c.Storage.Archive.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.archive.path required when type is localfs"))
		}
	case "s3":
		if c.Storage.Archive.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.archive.s3.bucket required when type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type %q", c.Storage.Archive.Type))
	}

	if _, err := core.ParseTimeframe(c.Analytics.DefaultTimeframe); err != nil {
		return core.WrapError(core.ErrConfigInvalid, err)
	}
	if c.Analytics.DefaultInitialBalance < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("default_initial_balance cannot be negative, got %f", c.Analytics.DefaultInitialBalance))
	}
	if c.News.CacheTTL < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("news.cache_ttl cannot be negative, got %s", c.News.CacheTTL))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("log rotation limits cannot be negative"))
	}

	return nil
}

// Timeframe returns the parsed default timeframe
func (c AnalyticsConfig) Timeframe() core.Timeframe {
	tf, err := core.ParseTimeframe(c.DefaultTimeframe)
	if err != nil {
		return core.TimeframeAll
	}
	return tf
}

// InitialBalance returns the default starting balance as a decimal
func (c AnalyticsConfig) InitialBalance() decimal.Decimal {
	return decimal.NewFromFloat(c.DefaultInitialBalance)
}

// FileConfig converts the log section for logger.NewWithFile
func (c LogConfig) FileConfig() logger.FileConfig {
	return logger.FileConfig{
		Path:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}

// ArchiveConfig converts the archive section for archive.Open
func (c StorageConfig) ArchiveConfig() archive.Config {
	s3 := c.Archive.S3
	return archive.Config{
		Backend: c.Archive.Type,
		Path:    c.Archive.Path,
		S3: archive.S3Config{
			Bucket:    s3.Bucket,
			Endpoint:  s3.Endpoint,
			Region:    s3.Region,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Prefix:    s3.Prefix,
		},
	}
}
