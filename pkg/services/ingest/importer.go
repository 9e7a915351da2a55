// Package ingest copies revenue rows from an external SQL source into the
// embedded store. Each batch lands inside one transaction so a failed pull
// never leaves a partial day behind.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/services/registry"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb/revenue"
	sqlstore "github.com/rev-tools/revenue-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
)

type Importer struct {
	db       *sql.DB
	records  revenue.Store
	source   sqlstore.RevenueReader
	registry registry.LineRegistry
}

func NewImporter(
	db *sql.DB,
	records revenue.Store,
	source sqlstore.RevenueReader,
	reg registry.LineRegistry,
) *Importer {
	return &Importer{db: db, records: records, source: source, registry: reg}
}

// Import pulls the source rows for [start, end] and inserts them in one
// transaction. Rows without an id get one assigned; empty group/segment
// fields are resolved through the line registry.
func (i *Importer) Import(ctx context.Context, start, end time.Time) (int, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := i.source.CollectRecords(ctx, calendar.StartOfDay(start), calendar.EndOfDay(end))
	if err != nil {
		return 0, fmt.Errorf("collect source records: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	for idx := range rows {
		if rows[idx].ID == "" {
			rows[idx].ID = uuid.NewString()
		}
		if rows[idx].Group == "" || rows[idx].Segment == "" {
			group, segment, _ := i.registry.Lookup(rows[idx].Line)
			if rows[idx].Group == "" {
				rows[idx].Group = group
			}
			if rows[idx].Segment == "" {
				rows[idx].Segment = segment
			}
		}
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	ctxWithTx := duckdb.WithTransaction(ctx, tx)
	if err := i.records.Add(ctxWithTx, rows); err != nil {
		return 0, fmt.Errorf("store imported records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	logger.Info().
		Int("records", len(rows)).
		Str("start", calendar.DayKey(start)).
		Str("end", calendar.DayKey(end)).
		Msg("imported revenue records")

	return len(rows), nil
}
