package results_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mineerr "github.com/KirkDiggler/mine/internal/errors"
	"github.com/KirkDiggler/mine/internal/repositories/results"
)

func record(id string, at time.Time, winners ...string) *results.Record {
	return &results.Record{
		ID:        id,
		Scenario:  "skirmish",
		Seed:      7,
		Winners:   winners,
		Events:    12,
		CreatedAt: at,
	}
}

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := results.NewInMemoryRepository()
	now := time.Now().UTC()

	original := record("r1", now, "rebels")
	require.NoError(t, repo.Create(ctx, original))

	original.Winners[0] = "tampered"

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"rebels"}, got.Winners, "stored records are copies")
	assert.False(t, got.Draw())

	err = repo.Create(ctx, record("r1", now))
	assert.True(t, mineerr.IsAlreadyExists(err))

	_, err = repo.Get(ctx, "missing")
	assert.True(t, mineerr.IsNotFound(err))

	assert.True(t, mineerr.IsInvalidArgument(repo.Create(ctx, nil)))
	assert.True(t, mineerr.IsInvalidArgument(repo.Create(ctx, &results.Record{})))
}

func TestInMemoryRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := results.NewInMemoryRepository()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, record("old", base, "rebels")))
	require.NoError(t, repo.Create(ctx, record("new", base.Add(2*time.Minute), "autoarmy")))
	require.NoError(t, repo.Create(ctx, record("mid", base.Add(time.Minute), "rebels", "mercs")))
	require.NoError(t, repo.Create(ctx, record("draw", base.Add(-time.Minute))))

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old", "draw"}, ids(all))

	top, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid"}, ids(top))

	won, err := repo.ListByWinner(ctx, "rebels")
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "old"}, ids(won))

	none, err := repo.ListByWinner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func ids(records []*results.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
