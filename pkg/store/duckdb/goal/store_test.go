package goal

import (
	"context"
	"testing"

	"github.com/rev-tools/revenue-atlas/pkg/models/store"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) Store {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return s
}

func TestGoalStore_ReplaceAllAndGetAll(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	rows := []store.GoalRow{
		{Line: "LOJA CENTRO", Group: "RETAIL SOUTH", Targets: [12]float64{31000, 29000, 31000}},
		{Line: "MARKETPLACE A", Group: "DIGITAL", Targets: [12]float64{10000, 10000, 10000, 10000}},
	}
	require.NoError(t, s.ReplaceAll(ctx, rows))

	got, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by line name.
	assert.Equal(t, "LOJA CENTRO", got[0].Line)
	assert.InDelta(t, 31000, got[0].Targets[0], 1e-9)
	assert.InDelta(t, 29000, got[0].Targets[1], 1e-9)
	assert.Zero(t, got[0].Targets[3])
	assert.Equal(t, "MARKETPLACE A", got[1].Line)
}

func TestGoalStore_ReplaceAllIsWholesale(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, []store.GoalRow{
		{Line: "OLD LINE", Group: "G", Targets: [12]float64{1}},
	}))
	require.NoError(t, s.ReplaceAll(ctx, []store.GoalRow{
		{Line: "NEW LINE", Group: "G", Targets: [12]float64{2}},
	}))

	got, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NEW LINE", got[0].Line)
}

func TestGoalStore_ReplaceAllEmptyClearsTable(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, []store.GoalRow{
		{Line: "LINE", Group: "G", Targets: [12]float64{1}},
	}))
	require.NoError(t, s.ReplaceAll(ctx, nil))

	got, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
