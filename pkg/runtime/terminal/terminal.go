package terminal

import (
	"io"
	"os"

	"github.com/rev-tools/revenue-atlas/pkg/runtime/terminal/commands"
	"github.com/rev-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/rev-tools/revenue-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	service       dashboard.Service
	currency      string
	tableReporter *export.Reporter
	textReporter  *Reporter
	newImporter   commands.ImporterFactory
	rootCmd       *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Service  dashboard.Service
	Currency string
	Output   io.Writer

	// NewImporter enables the sync command when set.
	NewImporter commands.ImporterFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Currency == "" {
		opts.Currency = "EUR"
	}

	cli := &CLI{
		service:       opts.Service,
		currency:      opts.Currency,
		tableReporter: export.NewReporter(opts.Output),
		textReporter:  NewReporter(opts.Output),
		newImporter:   opts.NewImporter,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Revenue goal and forecast reporting",
	}

	cmd.AddCommand(commands.NewReportCmd(cli.service, cli.tableReporter, cli.currency))
	cmd.AddCommand(commands.NewForecastCmd(cli.service, cli.textReporter, cli.currency))
	if cli.newImporter != nil {
		cmd.AddCommand(commands.NewSyncCmd(cli.newImporter))
	}

	return cmd
}
