package revenue

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/models/store"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func row(id string, date time.Time, line string, amount float64) store.RevenueRow {
	return store.RevenueRow{
		ID:      id,
		Date:    date,
		Line:    line,
		Group:   "RETAIL",
		Segment: "OTHER",
		Amount:  amount,
	}
}

func TestRevenueStore_AddAndGetAll(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	records := []store.RevenueRow{
		row("r2", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "LOJA CENTRO", 200),
		row("r1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "LOJA CENTRO", 100),
	}
	require.NoError(t, f.store.Add(ctx, records))

	got, err := f.store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered ascending by date.
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r2", got[1].ID)
	assert.InDelta(t, 100, got[0].Amount, 1e-9)
}

func TestRevenueStore_AddEmptyIsNoop(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, f.store.Add(context.Background(), nil))

	got, err := f.store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRevenueStore_Upsert(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	r := row("r1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "LOJA CENTRO", 100)
	require.NoError(t, f.store.Upsert(ctx, r))

	r.Amount = 150
	require.NoError(t, f.store.Upsert(ctx, r))

	got, err := f.store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 150, got[0].Amount, 1e-9)
}

func TestRevenueStore_Delete(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Upsert(ctx, row("r1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "LOJA CENTRO", 100)))
	require.NoError(t, f.store.Delete(ctx, "r1"))

	got, err := f.store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRevenueStore_GetRange(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, []store.RevenueRow{
		row("r1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "A", 100),
		row("r2", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "A", 200),
		row("r3", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "A", 400),
	}))

	got, err := f.store.GetRange(ctx,
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r2", got[0].ID)
}

func TestRevenueStore_GetStats(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		stats, err := f.store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.RecordsCount)
		assert.Nil(t, stats.FirstRecordTime)
		assert.Nil(t, stats.LastRecordTime)
	})

	t.Run("populated store", func(t *testing.T) {
		require.NoError(t, f.store.Add(ctx, []store.RevenueRow{
			row("r1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "A", 100),
			row("r2", time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), "A", 200),
		}))

		stats, err := f.store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.RecordsCount)
		require.NotNil(t, stats.FirstRecordTime)
		require.NotNil(t, stats.LastRecordTime)
		assert.Equal(t, 1, stats.FirstRecordTime.Day())
		assert.Equal(t, 7, stats.LastRecordTime.Day())
	})
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
