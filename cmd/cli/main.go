package main

import (
	"fmt"
	"os"

	"github.com/rev-tools/revenue-atlas/pkg/runtime/terminal"
	"github.com/rev-tools/revenue-atlas/pkg/services/config"
	"github.com/rev-tools/revenue-atlas/pkg/services/dashboard"
	"github.com/rev-tools/revenue-atlas/pkg/services/ingest"
	"github.com/rev-tools/revenue-atlas/pkg/services/registry"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb"
	goalstore "github.com/rev-tools/revenue-atlas/pkg/store/duckdb/goal"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb/revenue"
	sqlstore "github.com/rev-tools/revenue-atlas/pkg/store/sql"
)

func main() {
	cli, err := buildCLI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildCLI() (*terminal.CLI, error) {
	cfg, err := config.Load(os.Getenv("REVENUE_ATLAS_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	reg, err := registry.NewLineRegistry(cfg.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load line registry %s: %w", cfg.RegistryPath, err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB at %s: %w", cfg.DBPath, err)
	}

	revenueStore, err := revenue.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create revenue store: %w", err)
	}
	goals, err := goalstore.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal store: %w", err)
	}

	return terminal.NewCLI(terminal.Options{
		Service:  dashboard.NewService(revenueStore, goals, reg),
		Currency: cfg.Currency,
		Output:   os.Stdout,
		NewImporter: func(sourcePath, table string) (*ingest.Importer, error) {
			sourceDB, err := duckdb.Open(sourcePath)
			if err != nil {
				return nil, err
			}
			source := sqlstore.NewRevenueReader(sourceDB, table)
			return ingest.NewImporter(db, revenueStore, source, reg), nil
		},
	}), nil
}
