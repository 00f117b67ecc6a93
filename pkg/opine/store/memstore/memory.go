// Package memstore is an in-memory store.Store used by tests and
// interactive sessions.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/opinelab/opine/pkg/opine/internalerr"
	"github.com/opinelab/opine/pkg/opine/sentiment"
	"github.com/opinelab/opine/pkg/opine/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun implements store.Store.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("%w: run id required", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

// GetRun implements store.Store.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if run, ok := s.runs[id]; ok {
		return run, nil
	}
	return store.Run{}, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
}

// ListRuns implements store.Store.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]store.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// SentimentBreakdown implements store.Store.
func (s *Store) SentimentBreakdown(ctx context.Context) (store.Breakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b store.Breakdown
	for _, run := range s.runs {
		b.Runs++
		for _, res := range run.Report.Sentiments {
			switch res.Label {
			case sentiment.Positive:
				b.Positive++
			case sentiment.Negative:
				b.Negative++
			default:
				b.Neutral++
			}
		}
	}
	return b, nil
}
