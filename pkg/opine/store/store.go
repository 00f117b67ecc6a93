// Package store persists analysis run history. The pipeline itself is
// stateless across runs; the store only records reports so past runs
// can be listed and compared.
package store

import (
	"context"
	"time"

	"github.com/opinelab/opine/pkg/opine/report"
)

// Run is one stored analysis run.
type Run struct {
	ID        string
	StartedAt time.Time
	Source    string
	Report    report.Report
}

// Store is the interface for persisting and querying run history.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns runs newest first, at most limit.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	// SentimentBreakdown sums label counts across all stored runs.
	SentimentBreakdown(ctx context.Context) (Breakdown, error)
}

// Breakdown is the label → record count rollup across runs.
type Breakdown struct {
	Runs     int64
	Positive int64
	Neutral  int64
	Negative int64
}
