// Package revenue persists daily revenue records in DuckDB.
package revenue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/models/store"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb"
)

// Store supports ingestion (Add/Upsert), manual-entry corrections (Delete)
// and snapshot reads for the metrics pipeline.
type Store interface {
	Add(ctx context.Context, records []store.RevenueRow) error
	Upsert(ctx context.Context, record store.RevenueRow) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]store.RevenueRow, error)
	GetRange(ctx context.Context, startDate, endDate time.Time) ([]store.RevenueRow, error)
	GetStats(ctx context.Context) (*store.RevenueStats, error)
}

type revenueStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &revenueStore{db: db}, nil
}

func (s *revenueStore) Add(ctx context.Context, records []store.RevenueRow) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO revenue_records (id, record_date, line, line_group, segment, amount)
		VALUES (?, ?, ?, ?, ?, ?)`

	tx := duckdb.GetTransaction(ctx)
	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err = stmt.ExecContext(ctx,
			record.ID,
			record.Date,
			record.Line,
			record.Group,
			record.Segment,
			record.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert record %s: %w", record.ID, err)
		}
	}

	return nil
}

func (s *revenueStore) Upsert(ctx context.Context, record store.RevenueRow) error {
	query := `
		INSERT INTO revenue_records (id, record_date, line, line_group, segment, amount)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			record_date = excluded.record_date,
			line = excluded.line,
			line_group = excluded.line_group,
			segment = excluded.segment,
			amount = excluded.amount`

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.Date, record.Line, record.Group, record.Segment, record.Amount)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", record.ID, err)
	}
	return nil
}

func (s *revenueStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM revenue_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

func (s *revenueStore) GetAll(ctx context.Context) ([]store.RevenueRow, error) {
	query := `
		SELECT id, record_date, line, line_group, segment, amount
		FROM revenue_records
		ORDER BY record_date ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query revenue records: %w", err)
	}
	defer rows.Close()
	return scanRevenueRows(rows)
}

func (s *revenueStore) GetRange(ctx context.Context, startDate, endDate time.Time) ([]store.RevenueRow, error) {
	query := `
		SELECT id, record_date, line, line_group, segment, amount
		FROM revenue_records
		WHERE record_date >= ? AND record_date <= ?
		ORDER BY record_date ASC
	`
	rows, err := s.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("query revenue range: %w", err)
	}
	defer rows.Close()
	return scanRevenueRows(rows)
}

func (s *revenueStore) GetStats(ctx context.Context) (*store.RevenueStats, error) {
	query := `
		SELECT COUNT(*), MIN(record_date), MAX(record_date)
		FROM revenue_records
	`
	var total int64
	var earliest, latest sql.NullTime
	if err := s.db.QueryRowContext(ctx, query).Scan(&total, &earliest, &latest); err != nil {
		return nil, fmt.Errorf("get revenue stats: %w", err)
	}

	stats := &store.RevenueStats{RecordsCount: total}
	if earliest.Valid {
		t := earliest.Time
		stats.FirstRecordTime = &t
	}
	if latest.Valid {
		t := latest.Time
		stats.LastRecordTime = &t
	}
	return stats, nil
}

func scanRevenueRows(rows *sql.Rows) ([]store.RevenueRow, error) {
	records := make([]store.RevenueRow, 0)
	for rows.Next() {
		var (
			id, line, group, segment string
			date                     time.Time
			amount                   float64
		)
		if err := rows.Scan(&id, &date, &line, &group, &segment, &amount); err != nil {
			return nil, err
		}
		records = append(records, store.RevenueRow{
			ID:      id,
			Date:    date,
			Line:    line,
			Group:   group,
			Segment: segment,
			Amount:  amount,
		})
	}
	return records, rows.Err()
}
