package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "propflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func sampleResponse(parsedAt time.Time) model.ParseResponse {
	budget := 8000.0
	return model.ParseResponse{
		Success: true,
		Projects: []model.ParsedProject{
			{Title: "Website Redesign", Description: "Modern responsive site.", EstimatedBudget: &budget},
			{Title: "Mobile App", Description: "Companion shopping app."},
		},
		Metadata: model.ParseMetadata{
			Source:     model.SourceTabular,
			ParsedAt:   parsedAt,
			ItemCount:  2,
			Language:   "en",
			Confidence: 0.9,
		},
	}
}

func TestSQLiteStorage_SaveAndGetRun(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	saved, err := store.SaveRun(ctx, sampleResponse(time.Now().UTC()))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, "tabular", saved.Source)
	assert.Equal(t, 2, saved.ItemCount)

	run, projects, err := store.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, run.ID)
	assert.Equal(t, "en", run.Language)
	assert.InDelta(t, 0.9, run.Confidence, 1e-9)

	require.Len(t, projects, 2)
	// Stored order matches input order.
	assert.Equal(t, "Website Redesign", projects[0].Title)
	assert.Equal(t, "Mobile App", projects[1].Title)
	require.NotNil(t, projects[0].EstimatedBudget)
	assert.InDelta(t, 8000, *projects[0].EstimatedBudget, 1e-9)
}

func TestSQLiteStorage_ListRuns(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		run, err := store.SaveRun(ctx, sampleResponse(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[0], runs[2].ID)

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteStorage_ListRuns_DefaultLimit(t *testing.T) {
	store := newTestStorage(t)

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLiteStorage_GetRun_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, _, err := store.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	require.Error(t, err)
}
