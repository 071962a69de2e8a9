package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"filinglens/pkg/models"
)

// AnalysisCache caches full filing analyses keyed by document fingerprint.
// Hybrid vault: DB (primary) + file system (fallback/local). Extraction is
// deterministic, so a fingerprint hit can skip re-parsing entirely.
type AnalysisCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// Schema is the DDL for the Postgres side of the cache.
const Schema = `
CREATE TABLE IF NOT EXISTS filing_analyses (
	id          UUID PRIMARY KEY,
	fingerprint TEXT UNIQUE NOT NULL,
	cik         TEXT,
	ticker      TEXT,
	company     TEXT,
	data        JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// CacheEntry is the file-cache envelope around one analysis.
type CacheEntry struct {
	ID          string                 `json:"id"`
	Fingerprint string                 `json:"fingerprint"`
	CIK         string                 `json:"cik"`
	Ticker      string                 `json:"ticker"`
	CompanyName string                 `json:"company_name"`
	Analysis    *models.FilingAnalysis `json:"analysis"`
	CachedAt    time.Time              `json:"cached_at"`
}

// NewAnalysisCache creates a cache. If pool is nil the cache is file-only;
// if dir is also empty a default local directory is used.
func NewAnalysisCache(pool *pgxpool.Pool, dir string) *AnalysisCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "filinglens", "analyses")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] check AnalysisCache dir: %v\n", err)
		}
	}
	return &AnalysisCache{pool: pool, fileDir: dir}
}

// Fingerprint derives the cache key for a raw filing document.
func Fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached analysis by fingerprint. A miss is (nil, nil).
func (c *AnalysisCache) Get(ctx context.Context, fingerprint string) (*models.FilingAnalysis, error) {
	if c.pool != nil {
		query := `
			SELECT data
			FROM filing_analyses
			WHERE fingerprint = $1
			LIMIT 1
		`
		var dataJSON []byte
		err := c.pool.QueryRow(ctx, query, fingerprint).Scan(&dataJSON)
		if err != nil {
			return nil, nil // cache miss
		}
		var analysis models.FilingAnalysis
		if err := json.Unmarshal(dataJSON, &analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal db cached analysis: %w", err)
		}
		return &analysis, nil
	}

	if c.fileDir != "" {
		return c.loadFromFile(c.entryPath(fingerprint))
	}
	return nil, nil
}

// Save stores an analysis under its fingerprint in every configured layer.
func (c *AnalysisCache) Save(ctx context.Context, fingerprint string, analysis *models.FilingAnalysis) error {
	dataJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if c.pool != nil {
		query := `
			INSERT INTO filing_analyses (
				id, fingerprint, cik, ticker, company, data
			) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (fingerprint)
			DO UPDATE SET
				data = EXCLUDED.data,
				updated_at = NOW()
		`
		_, err = c.pool.Exec(ctx, query,
			uuid.NewString(), fingerprint,
			analysis.Metadata.CIK, analysis.Metadata.TradingSymbol, analysis.Metadata.CompanyName,
			dataJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to save to db cache: %w", err)
		}
	}

	if c.fileDir != "" {
		entry := CacheEntry{
			ID:          uuid.NewString(),
			Fingerprint: fingerprint,
			CIK:         analysis.Metadata.CIK,
			Ticker:      analysis.Metadata.TradingSymbol,
			CompanyName: analysis.Metadata.CompanyName,
			Analysis:    analysis,
			CachedAt:    time.Now(),
		}
		fileBytes, _ := json.MarshalIndent(entry, "", "  ")
		if err := os.WriteFile(c.entryPath(fingerprint), fileBytes, 0644); err != nil {
			return fmt.Errorf("failed to save to file cache: %w", err)
		}
	}

	return nil
}

// Exists checks whether an analysis is cached for the fingerprint.
func (c *AnalysisCache) Exists(ctx context.Context, fingerprint string) bool {
	if c.pool != nil {
		query := `SELECT 1 FROM filing_analyses WHERE fingerprint = $1 LIMIT 1`
		var exists int
		if err := c.pool.QueryRow(ctx, query, fingerprint).Scan(&exists); err == nil {
			return true
		}
	}

	if c.fileDir != "" {
		if _, err := os.Stat(c.entryPath(fingerprint)); err == nil {
			return true
		}
	}
	return false
}

func (c *AnalysisCache) entryPath(fingerprint string) string {
	return filepath.Join(c.fileDir, fingerprint+".json")
}

func (c *AnalysisCache) loadFromFile(path string) (*models.FilingAnalysis, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // cache miss
	}
	var entry CacheEntry
	if err := json.Unmarshal(bytes, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal file cached analysis: %w", err)
	}
	return entry.Analysis, nil
}
