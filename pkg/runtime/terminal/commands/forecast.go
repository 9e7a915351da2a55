package commands

import (
	"fmt"

	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
	"github.com/rev-tools/revenue-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

type ForecastCmd struct {
	flags    queryFlags
	currency string
	service  dashboard.Service
	reporter Reporter
}

func NewForecastCmd(service dashboard.Service, reporter Reporter, currency string) *cobra.Command {
	fc := &ForecastCmd{service: service, reporter: reporter, currency: currency}
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project week, month and year totals from the seasonality model",
		RunE:  fc.run,
	}

	fc.flags.register(cmd)

	return cmd
}

func (fc *ForecastCmd) run(cmd *cobra.Command, _ []string) error {
	query, err := fc.flags.toQuery()
	if err != nil {
		return err
	}

	projection, err := fc.service.Forecast(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to compute forecast: %w", err)
	}

	return fc.reporter.Handle(buildForecastReport(projection, fc.currency))
}

func buildForecastReport(p *domain.Projection, currency string) *domain.Report {
	report := &domain.Report{
		Title: "Revenue Forecast",
		Period: domain.TimePeriod{
			Start:    p.Year.Start,
			End:      p.Year.End,
			Duration: calendar.DayDiff(p.Year.Start, p.Year.End) + 1,
		},
		TotalAmount: p.Year.Projected,
		Currency:    currency,
	}

	report.Sections = append(report.Sections,
		projectionSection("Week", p.Week, currency),
		projectionSection("Month", p.Month, currency),
		projectionSection("Year", p.Year, currency),
	)

	return report
}

func projectionSection(name string, w domain.WindowProjection, currency string) domain.ReportSection {
	attainment := 0.0
	if w.Goal > 0 {
		attainment = w.Projected / w.Goal * 100
	}

	return domain.ReportSection{
		Title: name,
		Summary: map[string]string{
			"Range": fmt.Sprintf("%s to %s", calendar.DayKey(w.Start), calendar.DayKey(w.End)),
		},
		Details: []domain.ReportDetail{
			{Name: "Realized", Value: amount(w.Realized), Unit: currency},
			{Name: "Projected", Value: amount(w.Projected), Unit: currency},
			{Name: "Goal", Value: amount(w.Goal), Unit: currency,
				Description: fmt.Sprintf("%.1f%% projected attainment", attainment)},
		},
	}
}
