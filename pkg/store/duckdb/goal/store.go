// Package goal persists the per-line monthly target table in DuckDB. Goal
// edits arrive as a wholesale table replace, never as row patches.
package goal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rev-tools/revenue-atlas/pkg/models/store"
)

type Store interface {
	// ReplaceAll swaps the entire goal table for the given rows inside one
	// transaction.
	ReplaceAll(ctx context.Context, rows []store.GoalRow) error
	GetAll(ctx context.Context) ([]store.GoalRow, error)
}

type goalStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &goalStore{db: db}, nil
}

func (s *goalStore) ReplaceAll(ctx context.Context, rows []store.GoalRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin goal replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM line_goals`); err != nil {
		return fmt.Errorf("clear goal table: %w", err)
	}

	query := `
		INSERT INTO line_goals (
			line, line_group,
			m01, m02, m03, m04, m05, m06, m07, m08, m09, m10, m11, m12
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare goal insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		args := make([]any, 0, 14)
		args = append(args, row.Line, row.Group)
		for _, target := range row.Targets {
			args = append(args, target)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert goal for %s: %w", row.Line, err)
		}
	}

	return tx.Commit()
}

func (s *goalStore) GetAll(ctx context.Context) ([]store.GoalRow, error) {
	query := `
		SELECT line, line_group,
			m01, m02, m03, m04, m05, m06, m07, m08, m09, m10, m11, m12
		FROM line_goals
		ORDER BY line ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query line goals: %w", err)
	}
	defer rows.Close()

	result := make([]store.GoalRow, 0)
	for rows.Next() {
		var row store.GoalRow
		dest := make([]any, 0, 14)
		dest = append(dest, &row.Line, &row.Group)
		for i := range row.Targets {
			dest = append(dest, &row.Targets[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
