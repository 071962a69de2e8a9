// Package models defines the aggregate output types shared between the
// analysis pipeline, the cache layer and report rendering.
package models

import (
	"time"

	"filinglens/pkg/core/document"
	"filinglens/pkg/core/metrics"
	"filinglens/pkg/core/sections"
	"filinglens/pkg/core/xbrl"
)

// FilingAnalysis is the complete deterministic output for one 10-K: filer
// identity, the canonical fact table, derived metrics, the section index
// and (when a price was supplied) a valuation snapshot.
type FilingAnalysis struct {
	Metadata document.Metadata `json:"metadata"`

	Facts    xbrl.FactTable    `json:"facts"`
	Analysis *metrics.Analysis `json:"analysis"`
	Sections *sections.Index   `json:"sections_index"`

	// Valuation is nil when no market price was supplied.
	Valuation *metrics.ValuationSnapshot `json:"valuation,omitempty"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}
