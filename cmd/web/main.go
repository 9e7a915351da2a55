package main

import (
	"fmt"
	"net"
	"os"

	"github.com/rev-tools/revenue-atlas/pkg/server"
	"github.com/rev-tools/revenue-atlas/pkg/services/config"
	"github.com/rev-tools/revenue-atlas/pkg/services/dashboard"
	"github.com/rev-tools/revenue-atlas/pkg/services/registry"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb"
	goalstore "github.com/rev-tools/revenue-atlas/pkg/store/duckdb/goal"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb/revenue"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the revenue dashboard server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the revenue-atlas.yaml config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg, err := registry.NewLineRegistry(cfg.RegistryPath)
	if err != nil {
		return fmt.Errorf("failed to load line registry %s: %w", cfg.RegistryPath, err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to open DuckDB at %s: %w", cfg.DBPath, err)
	}

	revenueStore, err := revenue.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create revenue store: %w", err)
	}
	goals, err := goalstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create goal store: %w", err)
	}

	service := dashboard.NewService(revenueStore, goals, reg)

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	api := server.NewWebAPI(server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Dashboard: service,
			Logger:    logger,
		},
	})

	return api.Start()
}
