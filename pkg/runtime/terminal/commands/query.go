package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
	"github.com/rev-tools/revenue-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

// Reporter is what the commands render through. Both terminal reporters
// satisfy it.
type Reporter interface {
	Handle(report *domain.Report) error
}

// queryFlags are the selection flags shared by the report and forecast
// commands. They mirror the HTTP API query parameters.
type queryFlags struct {
	lines        string
	groups       string
	segments     string
	preset       string
	start        string
	end          string
	compare      bool
	compareStart string
	compareEnd   string
	today        string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.lines, "lines", "", "Comma-separated line names to include")
	cmd.Flags().StringVar(&f.groups, "groups", "", "Comma-separated group names to include")
	cmd.Flags().StringVar(&f.segments, "segments", "", "Comma-separated segment names to include")
	cmd.Flags().StringVar(&f.preset, "preset", string(domain.PresetMTD), "Date preset: yesterday, wtd, mtd or all")
	cmd.Flags().StringVar(&f.start, "start", "", "Custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Custom range end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.compare, "compare", false, "Include the previous comparison period")
	cmd.Flags().StringVar(&f.compareStart, "compare-start", "", "Custom comparison range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.compareEnd, "compare-end", "", "Custom comparison range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.today, "today", "", "Override the reference date (YYYY-MM-DD)")
}

func (f *queryFlags) toQuery() (dashboard.Query, error) {
	q := dashboard.Query{
		Filters: domain.Filters{
			Lines:    splitList(f.lines),
			Groups:   splitList(f.groups),
			Segments: splitList(f.segments),
		},
		Preset:     domain.DatePreset(f.preset),
		Comparison: domain.ComparisonOptions{Enabled: f.compare},
	}

	var err error
	if q.Filters.DateStart, err = parseDate(f.start); err != nil {
		return q, fmt.Errorf("invalid --start: %w", err)
	}
	if q.Filters.DateEnd, err = parseDate(f.end); err != nil {
		return q, fmt.Errorf("invalid --end: %w", err)
	}
	if q.Comparison.CustomStart, err = parseDate(f.compareStart); err != nil {
		return q, fmt.Errorf("invalid --compare-start: %w", err)
	}
	if q.Comparison.CustomEnd, err = parseDate(f.compareEnd); err != nil {
		return q, fmt.Errorf("invalid --compare-end: %w", err)
	}

	if f.today != "" {
		today, err := parseDate(f.today)
		if err != nil {
			return q, fmt.Errorf("invalid --today: %w", err)
		}
		q.Today = *today
	}

	return q, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(calendar.DayKeyLayout, value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
