package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const revenueTableSchema = `
	CREATE TABLE IF NOT EXISTS revenue_records (
		id VARCHAR NOT NULL,
		record_date DATE NOT NULL,
		line VARCHAR NOT NULL,
		line_group VARCHAR,
		segment VARCHAR,
		amount DOUBLE NOT NULL,
		PRIMARY KEY (id)
	);
`

const goalTableSchema = `
	CREATE TABLE IF NOT EXISTS line_goals (
		line VARCHAR NOT NULL,
		line_group VARCHAR,
		m01 DOUBLE DEFAULT 0, m02 DOUBLE DEFAULT 0, m03 DOUBLE DEFAULT 0,
		m04 DOUBLE DEFAULT 0, m05 DOUBLE DEFAULT 0, m06 DOUBLE DEFAULT 0,
		m07 DOUBLE DEFAULT 0, m08 DOUBLE DEFAULT 0, m09 DOUBLE DEFAULT 0,
		m10 DOUBLE DEFAULT 0, m11 DOUBLE DEFAULT 0, m12 DOUBLE DEFAULT 0,
		PRIMARY KEY (line)
	);
`

var bootQueries = []string{
	revenueTableSchema,
	goalTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens (or creates) the DuckDB database and bootstraps the revenue
// and goal schemas.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}

// Open opens a DuckDB file as-is, without bootstrapping any schema. Used
// for external source databases the importer pulls from.
func Open(path string) (*sql.DB, error) {
	return sql.Open("duckdb", path)
}
