// Package dashboard wires the stores, the line registry and the metrics
// core together. It is the only stateful seam: every query loads one
// consistent (records, goals) pair and runs the pure recomputation over
// it, so consumers never observe a half-updated snapshot.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
	storemodels "github.com/rev-tools/revenue-atlas/pkg/models/store"
	"github.com/rev-tools/revenue-atlas/pkg/services/forecast"
	goalcalc "github.com/rev-tools/revenue-atlas/pkg/services/goal"
	"github.com/rev-tools/revenue-atlas/pkg/services/metrics"
	"github.com/rev-tools/revenue-atlas/pkg/services/registry"
	goalstore "github.com/rev-tools/revenue-atlas/pkg/store/duckdb/goal"
	"github.com/rev-tools/revenue-atlas/pkg/store/duckdb/revenue"
	"github.com/rs/zerolog"
)

// Query carries everything a recomputation depends on. A zero Today means
// the current wall clock.
type Query struct {
	Filters    domain.Filters
	Preset     domain.DatePreset
	Comparison domain.ComparisonOptions
	Today      time.Time
}

// Service is the contract the handlers and the CLI consume.
type Service interface {
	Snapshot(ctx context.Context, q Query) (*domain.Snapshot, error)
	Forecast(ctx context.Context, q Query) (*domain.Projection, error)
	UpsertRecord(ctx context.Context, record domain.RevenueRecord) (domain.RevenueRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	ReplaceGoals(ctx context.Context, goals []domain.LineGoal) error
}

type service struct {
	records  revenue.Store
	goals    goalstore.Store
	registry registry.LineRegistry
}

func NewService(records revenue.Store, goals goalstore.Store, reg registry.LineRegistry) Service {
	return &service{records: records, goals: goals, registry: reg}
}

func (s *service) Snapshot(ctx context.Context, q Query) (*domain.Snapshot, error) {
	in, err := s.loadInputs(ctx, q)
	if err != nil {
		return nil, err
	}
	snap := metrics.Compute(*in)
	return &snap, nil
}

// Forecast builds the seasonality model from the entity-filtered history
// through D-1 and projects the current week, month and year to their ends.
func (s *service) Forecast(ctx context.Context, q Query) (*domain.Projection, error) {
	in, err := s.loadInputs(ctx, q)
	if err != nil {
		return nil, err
	}
	snap := metrics.Compute(*in)
	gm := snap.GoalMetrics

	refDay := calendar.AddDays(calendar.NormalizeToNoon(in.Today), -1)

	observations, fallback := dailyHistory(metrics.FilterByEntity(in.Records, in.Filters), refDay)
	model := forecast.NewModel(observations, forecast.Options{
		Reference: refDay,
		Fallback:  fallback,
	})

	lines := in.Lines
	monthEnd := calendar.AddDays(calendar.StartOfMonth(refDay), calendar.DaysInMonth(refDay)-1)
	yearStart := calendar.StartOfYear(refDay)
	yearEnd := time.Date(refDay.Year(), 12, 31, 12, 0, 0, 0, refDay.Location())

	projection := &domain.Projection{
		Week: domain.WindowProjection{
			Start:     gm.WeekStart,
			End:       gm.WeekEnd,
			Realized:  gm.RealizedWeek,
			Projected: model.ProjectWindow(gm.RealizedWeek, refDay, gm.WeekEnd),
			Goal:      gm.WeeklyGoal,
		},
		Month: domain.WindowProjection{
			Start:     calendar.StartOfMonth(refDay),
			End:       monthEnd,
			Realized:  gm.RealizedMonth,
			Projected: model.ProjectWindow(gm.RealizedMonth, refDay, monthEnd),
			Goal:      goalcalc.TotalMonthlyGoal(lines, int(refDay.Month())),
		},
		Year: domain.WindowProjection{
			Start:     yearStart,
			End:       yearEnd,
			Realized:  gm.RealizedYear,
			Projected: model.ProjectWindow(gm.RealizedYear, refDay, yearEnd),
			Goal:      gm.YearlyGoal,
		},
	}
	return projection, nil
}

func (s *service) UpsertRecord(ctx context.Context, record domain.RevenueRecord) (domain.RevenueRecord, error) {
	if record.Line == "" {
		return domain.RevenueRecord{}, fmt.Errorf("record line is required")
	}
	if record.Amount < 0 {
		return domain.RevenueRecord{}, fmt.Errorf("record amount must be non-negative")
	}
	if record.Date.IsZero() {
		return domain.RevenueRecord{}, fmt.Errorf("record date is required")
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.Date = calendar.NormalizeToNoon(record.Date)

	// Fill group/segment from the registry when the caller left them out.
	if record.Group == "" || record.Segment == "" {
		group, segment, _ := s.registry.Lookup(record.Line)
		if record.Group == "" {
			record.Group = group
		}
		if record.Segment == "" {
			record.Segment = segment
		}
	}

	if err := s.records.Upsert(ctx, toStoreRow(record)); err != nil {
		return domain.RevenueRecord{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("id", record.ID).
		Str("line", record.Line).
		Str("date", calendar.DayKey(record.Date)).
		Msg("revenue record upserted")

	return record, nil
}

func (s *service) DeleteRecord(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("record id is required")
	}
	return s.records.Delete(ctx, id)
}

func (s *service) ReplaceGoals(ctx context.Context, goals []domain.LineGoal) error {
	rows := make([]storemodels.GoalRow, 0, len(goals))
	for _, g := range goals {
		row := storemodels.GoalRow{Line: g.Line, Group: g.Group}
		for month, target := range g.MonthlyTargets {
			if month < 1 || month > 12 {
				return fmt.Errorf("goal for %s has invalid month %d", g.Line, month)
			}
			row.Targets[month-1] = target
		}
		rows = append(rows, row)
	}
	return s.goals.ReplaceAll(ctx, rows)
}

// loadInputs reads records and goals in one pass and resolves segments, so
// the aggregator always sees a mutually consistent triple.
func (s *service) loadInputs(ctx context.Context, q Query) (*metrics.Inputs, error) {
	rows, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load revenue records: %w", err)
	}
	goalRows, err := s.goals.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load line goals: %w", err)
	}

	records := make([]domain.RevenueRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toDomainRecord(row))
	}

	goals := make([]domain.LineGoal, 0, len(goalRows))
	for _, row := range goalRows {
		goals = append(goals, toDomainGoal(row))
	}

	today := q.Today
	if today.IsZero() {
		today = time.Now()
	}

	return &metrics.Inputs{
		Records:    records,
		Lines:      s.registry.ResolveMeta(goals),
		Filters:    q.Filters,
		Preset:     q.Preset,
		Comparison: q.Comparison,
		Today:      today,
	}, nil
}

// dailyHistory collapses records on or before refDay into daily totals and
// returns them with their mean as the forecast fallback.
func dailyHistory(records []domain.RevenueRecord, refDay time.Time) ([]forecast.Observation, float64) {
	totals := make(map[string]float64)
	days := make(map[string]time.Time)
	for _, r := range records {
		d := calendar.NormalizeToNoon(r.Date)
		if d.After(refDay) {
			continue
		}
		key := calendar.DayKey(d)
		totals[key] += r.Amount
		days[key] = d
	}

	observations := make([]forecast.Observation, 0, len(totals))
	var sum float64
	for key, total := range totals {
		observations = append(observations, forecast.Observation{Date: days[key], Amount: total})
		sum += total
	}

	var fallback float64
	if len(observations) > 0 {
		fallback = sum / float64(len(observations))
	}
	return observations, fallback
}

func toDomainRecord(row storemodels.RevenueRow) domain.RevenueRecord {
	return domain.RevenueRecord{
		ID:      row.ID,
		Date:    calendar.NormalizeToNoon(row.Date),
		Line:    row.Line,
		Group:   row.Group,
		Segment: row.Segment,
		Amount:  row.Amount,
	}
}

func toStoreRow(record domain.RevenueRecord) storemodels.RevenueRow {
	return storemodels.RevenueRow{
		ID:      record.ID,
		Date:    record.Date,
		Line:    record.Line,
		Group:   record.Group,
		Segment: record.Segment,
		Amount:  record.Amount,
	}
}

func toDomainGoal(row storemodels.GoalRow) domain.LineGoal {
	targets := make(map[int]float64)
	for i, target := range row.Targets {
		if target != 0 {
			targets[i+1] = target
		}
	}
	return domain.LineGoal{Line: row.Line, Group: row.Group, MonthlyTargets: targets}
}
