// Package contract provides interfaces and shared utilities for acqscore's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/acqscore/schema"
)

// TargetLoader produces the company records to be scored.
type TargetLoader interface {
	// Load returns every target the loader knows about, in a stable order.
	Load(ctx context.Context) ([]schema.CompanyRecord, error)
}

// DataSource supplies supplementary data about a company.
// The scorer never calls a DataSource; enrichment is merged into the record beforehand.
type DataSource interface {
	// Kind identifies the variant, e.g. stub or live.
	Kind() schema.SourceKind

	// Enrich returns whatever the source knows about the company.
	Enrich(ctx context.Context, company schema.CompanyRecord) (schema.Enrichment, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetEnrichmentStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking scoring runs and their results.
type AnalysisStore interface {
	// BeginAnalysis creates a new scoring run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the scoring run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalTargets int) error

	// RecordTargetScore stores the score and signals for one target
	RecordTargetScore(analysisID int64, analysisTime time.Time, result schema.TargetResult) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns retrieves all scoring runs
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllTargetScores retrieves all recorded target scores
	GetAllTargetScores() ([]schema.TargetScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
