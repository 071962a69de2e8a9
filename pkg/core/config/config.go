// Package config loads runtime configuration from an Hjson file plus
// environment overrides, and builds the shared zap logger.
package config

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"filinglens/pkg/core/sections"
)

// RetrievalConfig bounds the lexical fallback ranking.
type RetrievalConfig struct {
	TopK     int     `json:"top_k"`
	MinScore float64 `json:"min_score"`
}

// Config holds all runtime settings. Hjson is used so local config files
// can carry comments and loose syntax.
type Config struct {
	// LogLevel is a zap level string: debug, info, warn, error.
	LogLevel string `json:"log_level"`

	// CacheDir is the file-cache root for analysis results. Empty
	// disables the file cache.
	CacheDir string `json:"cache_dir"`

	// DatabaseURL enables the Postgres cache when set. The DATABASE_URL
	// environment variable overrides it.
	DatabaseURL string `json:"database_url"`

	Retrieval RetrievalConfig `json:"retrieval"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		CacheDir: ".cache/filinglens",
		Retrieval: RetrievalConfig{
			TopK:     sections.DefaultTopK,
			MinScore: sections.DefaultMinScore,
		},
	}
}

// Load reads an Hjson config file and applies environment overrides.
// An empty path returns defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := hjson.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = sections.DefaultTopK
	}
	if cfg.Retrieval.MinScore <= 0 {
		cfg.Retrieval.MinScore = sections.DefaultMinScore
	}
	return cfg, nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
