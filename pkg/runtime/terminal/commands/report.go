package commands

import (
	"fmt"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
	"github.com/rev-tools/revenue-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	flags    queryFlags
	currency string
	service  dashboard.Service
	reporter Reporter
}

func NewReportCmd(service dashboard.Service, reporter Reporter, currency string) *cobra.Command {
	rc := &ReportCmd{service: service, reporter: reporter, currency: currency}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the goal attainment report for a selection",
		RunE:  rc.run,
	}

	rc.flags.register(cmd)

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	query, err := rc.flags.toQuery()
	if err != nil {
		return err
	}

	snap, err := rc.service.Snapshot(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to compute snapshot: %w", err)
	}

	return rc.reporter.Handle(buildSnapshotReport(snap, rc.currency))
}

func buildSnapshotReport(snap *domain.Snapshot, currency string) *domain.Report {
	gm := snap.GoalMetrics

	report := &domain.Report{
		Title:       "Revenue Report",
		Period:      reportPeriod(snap),
		TotalAmount: snap.KPIs.RealizedFiltered,
		Currency:    currency,
	}

	report.Sections = append(report.Sections, domain.ReportSection{
		Title: "Goal Attainment",
		Summary: map[string]string{
			"Monthly Goal":      money(gm.MonthlyGoal, currency),
			"Proportional Goal": money(gm.ProportionalGoal, currency),
			"Realized (month)":  money(gm.RealizedMonth, currency),
			"Gap":               money(gm.GapProportional, currency),
			"% of Goal":         fmt.Sprintf("%.1f%%", gm.PercentOfGoal),
		},
		Details: []domain.ReportDetail{
			{Name: "Weekly Goal", Value: amount(gm.WeeklyGoal), Unit: currency},
			{Name: "Realized (week)", Value: amount(gm.RealizedWeek), Unit: currency},
			{Name: "Daily Goal (adjusted)", Value: amount(gm.DailyGoalAdjusted), Unit: currency},
			{Name: "Realized (day)", Value: amount(gm.RealizedDay), Unit: currency},
			{Name: "Yearly Goal", Value: amount(gm.YearlyGoal), Unit: currency},
			{Name: "Realized (year)", Value: amount(gm.RealizedYear), Unit: currency},
		},
	})

	report.Sections = append(report.Sections, domain.ReportSection{
		Title: "Data Coverage",
		Details: []domain.ReportDetail{
			coverageDetail("Day", gm.Coverage.Day),
			coverageDetail("Week", gm.Coverage.Week),
			coverageDetail("Month", gm.Coverage.Month),
			coverageDetail("Year", gm.Coverage.Year),
		},
	})

	if len(snap.CompanyGoalData) > 0 {
		details := make([]domain.ReportDetail, 0, len(snap.CompanyGoalData))
		for _, row := range snap.CompanyGoalData {
			details = append(details, domain.ReportDetail{
				Name:        row.Line,
				Value:       amount(row.Realized),
				Unit:        currency,
				Description: fmt.Sprintf("goal %s, %.1f%% attained", amount(row.MonthlyGoal), row.PercentOfGoal),
			})
		}
		report.Sections = append(report.Sections, domain.ReportSection{
			Title:   "Line Standings",
			Details: details,
		})
	}

	if snap.Comparison != nil {
		report.Sections = append(report.Sections, domain.ReportSection{
			Title: "Comparison",
			Summary: map[string]string{
				"Label": snap.Comparison.Label,
				"Range": fmt.Sprintf("%s to %s",
					calendar.DayKey(snap.Comparison.Start),
					calendar.DayKey(snap.Comparison.End)),
			},
		})
	}

	return report
}

func reportPeriod(snap *domain.Snapshot) domain.TimePeriod {
	start, end := snap.EffectiveRange.Start, snap.EffectiveRange.End

	// Unbounded ranges fall back to the observed daily series.
	if start == nil && len(snap.DailyData) > 0 {
		if t, err := time.ParseInLocation(calendar.DayKeyLayout, snap.DailyData[0].Date, time.Local); err == nil {
			start = &t
		}
	}
	if end == nil && len(snap.DailyData) > 0 {
		last := snap.DailyData[len(snap.DailyData)-1]
		if t, err := time.ParseInLocation(calendar.DayKeyLayout, last.Date, time.Local); err == nil {
			end = &t
		}
	}

	if start == nil || end == nil {
		return domain.TimePeriod{}
	}
	return domain.TimePeriod{
		Start:    *start,
		End:      *end,
		Duration: calendar.DayDiff(*start, *end) + 1,
	}
}

func coverageDetail(name string, wc domain.WindowCoverage) domain.ReportDetail {
	return domain.ReportDetail{
		Name:        name,
		Value:       fmt.Sprintf("%d/%d", wc.Observed, wc.Expected),
		Unit:        "days",
		Description: fmt.Sprintf("%.1f%% complete", wc.Percent*100),
	}
}

func amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func money(v float64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, v)
}
