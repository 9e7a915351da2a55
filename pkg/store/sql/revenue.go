// Package sql reads revenue records out of an arbitrary database/sql
// source. It is the import path for teams that keep revenue in an external
// warehouse instead of the embedded store; the dashboard only ever sees
// the resulting in-memory rows.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// RevenueReader collects revenue rows from an external SQL source.
type RevenueReader interface {
	CollectRecords(ctx context.Context, startDate, endDate time.Time) ([]store.RevenueRow, error)
}

type reader struct {
	db    *sql.DB
	table string
}

// NewRevenueReader wraps a database handle and a source table. The table
// must expose id, record_date, line, line_group, segment and amount
// columns.
func NewRevenueReader(db *sql.DB, table string) RevenueReader {
	return &reader{db: db, table: table}
}

func (r *reader) CollectRecords(ctx context.Context, startDate, endDate time.Time) ([]store.RevenueRow, error) {
	logger := zerolog.Ctx(ctx)

	query := fmt.Sprintf(`
		SELECT id, record_date, line, line_group, segment, amount
		FROM %s
		WHERE record_date >= ? AND record_date <= ?
		ORDER BY record_date ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("query revenue source %s: %w", r.table, err)
	}
	defer rows.Close()

	records := make([]store.RevenueRow, 0)
	for rows.Next() {
		var rec store.RevenueRow
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Line, &rec.Group, &rec.Segment, &rec.Amount); err != nil {
			return nil, fmt.Errorf("scan revenue row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("records", len(records)).
		Str("table", r.table).
		Msg("collected revenue records")

	return records, nil
}
