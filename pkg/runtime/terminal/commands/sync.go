package commands

import (
	"fmt"

	"github.com/rev-tools/revenue-atlas/pkg/services/ingest"
	"github.com/spf13/cobra"
)

// ImporterFactory builds an importer bound to an external source database
// and table. The CLI entrypoint supplies the store wiring.
type ImporterFactory func(sourcePath, table string) (*ingest.Importer, error)

type SyncCmd struct {
	sourcePath string
	table      string
	start      string
	end        string
	factory    ImporterFactory
}

func NewSyncCmd(factory ImporterFactory) *cobra.Command {
	sc := &SyncCmd{factory: factory}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import revenue records from an external database",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.sourcePath, "source", "", "Path to the source DuckDB file")
	cmd.Flags().StringVar(&sc.table, "table", "revenue_records", "Source table name")
	cmd.Flags().StringVar(&sc.start, "start", "", "Import range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sc.end, "end", "", "Import range end (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (sc *SyncCmd) run(cmd *cobra.Command, _ []string) error {
	start, err := parseDate(sc.start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := parseDate(sc.end)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	importer, err := sc.factory(sc.sourcePath, sc.table)
	if err != nil {
		return fmt.Errorf("failed to open source %s: %w", sc.sourcePath, err)
	}

	count, err := importer.Import(cmd.Context(), *start, *end)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from %s\n", count, sc.sourcePath)
	return nil
}
