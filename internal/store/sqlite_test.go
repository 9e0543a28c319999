package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagoandino/capture-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "capture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleResult() *model.RunResult {
	return &model.RunResult{
		Results: model.ResultSet{
			"rut_comercio": {
				Match:      true,
				Value:      model.StringValue("76123456-7"),
				Confidence: 100,
			},
		},
		Iterations: 2,
		Sufficient: true,
		Documents:  3,
		TokenUsage: model.TokenUsage{InputTokens: 1200, OutputTokens: 300},
	}
}

func TestSQLiteCreateAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "/data/sources")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "/data/sources", got.SourceDir)
	assert.Nil(t, got.Result)
}

func TestSQLiteCompleteRunRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "/data/sources")
	require.NoError(t, err)

	require.NoError(t, s.CompleteRun(ctx, run.ID, sampleResult()))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	assert.True(t, got.Result.Sufficient)
	assert.Equal(t, 2, got.Result.Iterations)
	assert.Equal(t, "76123456-7", got.Result.Results["rut_comercio"].Value.Single())
}

func TestSQLiteFailRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "/data/sources")
	require.NoError(t, err)

	require.NoError(t, s.FailRun(ctx, run.ID, eris.New("extraction interrupted")))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	require.NotNil(t, got.Result)
	assert.Contains(t, got.Result.Error, "extraction interrupted")
}

func TestSQLiteMarkPublished(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "/data/sources")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, run.ID, sampleResult()))
	require.NoError(t, s.MarkPublished(ctx, run.ID))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusPublished, got.Status)
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestSQLiteUpdateMissingRun(t *testing.T) {
	s := newTestStore(t)

	err := s.MarkPublished(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestSQLiteListRunsFilterByStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateRun(ctx, "/a")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "/b")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, first.ID, sampleResult()))

	complete, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, first.ID, complete[0].ID)

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLiteListRunsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for range 5 {
		_, err := s.CreateRun(ctx, "/data")
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, RunFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
