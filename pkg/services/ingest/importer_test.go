package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/models/store"
	"github.com/rev-tools/revenue-atlas/pkg/services/registry"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb/revenue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) CollectRecords(ctx context.Context, startDate, endDate time.Time) ([]store.RevenueRow, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.RevenueRow), args.Error(1)
}

func setupImporter(t *testing.T, source *mockSource) (*Importer, revenue.Store) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	records, err := revenue.NewStore(db)
	require.NoError(t, err)

	reg := registry.NewStaticRegistry(map[string][2]string{
		"LOJA CENTRO": {"RETAIL SOUTH", "AIR CONDITIONING"},
	})

	return NewImporter(db, records, source, reg), records
}

func TestImporter_Import(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	source := new(mockSource)
	source.On("CollectRecords", mock.Anything, mock.Anything, mock.Anything).Return([]store.RevenueRow{
		{Date: start, Line: "LOJA CENTRO", Amount: 100},
		{ID: "ext-2", Date: end, Line: "LOJA NORTE", Group: "RETAIL NORTH", Segment: "FURNITURE", Amount: 200},
	}, nil)

	importer, records := setupImporter(t, source)

	count, err := importer.Import(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := records.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Registry fills the blanks, unfilled ids get assigned.
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "RETAIL SOUTH", got[0].Group)
	assert.Equal(t, "AIR CONDITIONING", got[0].Segment)

	// Fully specified source rows pass through untouched.
	assert.Equal(t, "ext-2", got[1].ID)
	assert.Equal(t, "RETAIL NORTH", got[1].Group)
	assert.Equal(t, "FURNITURE", got[1].Segment)

	source.AssertExpectations(t)
}

func TestImporter_EmptySource(t *testing.T) {
	source := new(mockSource)
	source.On("CollectRecords", mock.Anything, mock.Anything, mock.Anything).
		Return([]store.RevenueRow{}, nil)

	importer, records := setupImporter(t, source)

	count, err := importer.Import(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := records.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImporter_SourceFailure(t *testing.T) {
	source := new(mockSource)
	source.On("CollectRecords", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	importer, _ := setupImporter(t, source)

	_, err := importer.Import(context.Background(), time.Now(), time.Now())
	assert.Error(t, err)
}
