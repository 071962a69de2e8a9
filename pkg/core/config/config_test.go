package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.InDelta(t, 0.15, cfg.Retrieval.MinScore, 1e-9)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadHjsonFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	path := filepath.Join(t.TempDir(), "config.hjson")
	content := `{
  # local overrides
  log_level: debug
  cache_dir: /tmp/lens-cache
  retrieval: {
    top_k: 3
    min_score: 0.25
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/lens-cache", cfg.CacheDir)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.InDelta(t, 0.25, cfg.Retrieval.MinScore, 1e-9)
}

func TestLoadEnvOverridesDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-wins")

	path := filepath.Join(t.TempDir(), "config.hjson")
	require.NoError(t, os.WriteFile(path, []byte(`{database_url: "postgres://from-file"}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env-wins", cfg.DatabaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hjson"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)

	cfg.LogLevel = "not-a-level"
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}
