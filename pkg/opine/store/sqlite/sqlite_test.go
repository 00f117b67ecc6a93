package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opinelab/opine/pkg/opine/internalerr"
	"github.com/opinelab/opine/pkg/opine/report"
	"github.com/opinelab/opine/pkg/opine/sentiment"
	"github.com/opinelab/opine/pkg/opine/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "opine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, at time.Time, labels ...sentiment.Label) store.Run {
	sentiments := make([]sentiment.Result, len(labels))
	for i, l := range labels {
		sentiments[i] = sentiment.Result{RecordID: id + "-r", Label: l}
	}
	return store.Run{
		ID:        id,
		StartedAt: at,
		Source:    "test",
		Report:    report.Build(id, at, sentiments, nil, nil, nil),
	}
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	run := sampleRun("run1", at, sentiment.Positive, sentiment.Negative)
	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.GetRun(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, "run1", got.ID)
	assert.Equal(t, "test", got.Source)
	assert.True(t, got.StartedAt.Equal(at))
	assert.Equal(t, run.Report, got.Report)
}

func TestSaveRunUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	at := time.Now().UTC()
	require.NoError(t, s.SaveRun(ctx, sampleRun("run1", at, sentiment.Positive)))
	require.NoError(t, s.SaveRun(ctx, sampleRun("run1", at, sentiment.Negative, sentiment.Negative)))

	got, err := s.GetRun(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Report.Stats.TotalRecords)

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveRun(ctx, sampleRun("old", base)))
	require.NoError(t, s.SaveRun(ctx, sampleRun("mid", base.Add(time.Hour))))
	require.NoError(t, s.SaveRun(ctx, sampleRun("new", base.Add(2*time.Hour))))

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
}

func TestSentimentBreakdown(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, sampleRun("run1", time.Now(), sentiment.Positive, sentiment.Positive)))
	require.NoError(t, s.SaveRun(ctx, sampleRun("run2", time.Now(), sentiment.Negative, sentiment.Neutral)))

	b, err := s.SentimentBreakdown(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.Runs)
	assert.Equal(t, int64(2), b.Positive)
	assert.Equal(t, int64(1), b.Negative)
	assert.Equal(t, int64(1), b.Neutral)
}

func TestBreakdownEmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	b, err := s.SentimentBreakdown(context.Background())
	require.NoError(t, err)
	assert.Zero(t, b.Runs)
	assert.Zero(t, b.Positive)
}
