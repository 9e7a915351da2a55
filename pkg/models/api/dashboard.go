// Package api defines the JSON shapes of the dashboard endpoints. Field
// names mirror what the presentation layer already consumes and must not
// drift.
package api

import (
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
)

type KPIs struct {
	RealizedFiltered float64 `json:"realizedFiltered"`
	RealizedTotal    float64 `json:"realizedTotal"`
	PercentOfTotal   float64 `json:"percentOfTotal"`
}

type WindowCoverage struct {
	Observed int     `json:"observed"`
	Expected int     `json:"expected"`
	Percent  float64 `json:"percent"`
}

type Coverage struct {
	Day   WindowCoverage `json:"day"`
	Week  WindowCoverage `json:"week"`
	Month WindowCoverage `json:"month"`
	Year  WindowCoverage `json:"year"`
}

type GoalMetrics struct {
	MonthlyGoal           float64 `json:"monthlyGoal"`
	ProportionalGoal      float64 `json:"proportionalGoal"`
	Realized              float64 `json:"realized"`
	RealizedMonth         float64 `json:"realizedMonth"`
	GapProportional       float64 `json:"gapProportional"`
	GapTotal              float64 `json:"gapTotal"`
	PercentOfGoal         float64 `json:"percentOfGoal"`
	PercentOfProportional float64 `json:"percentOfProportional"`
	DaysInMonth           int     `json:"daysInMonth"`
	CurrentDay            int     `json:"currentDay"`

	WeekStart      string  `json:"weekStart"`
	WeekEnd        string  `json:"weekEnd"`
	DaysInWeek     int     `json:"daysInWeek"`
	WeeklyGoal     float64 `json:"weeklyGoal"`
	ExpectedWeekly float64 `json:"expectedWeekly"`
	RealizedWeek   float64 `json:"realizedWeek"`

	DailyGoalBase     float64 `json:"dailyGoalBase"`
	DailyGoalAdjusted float64 `json:"dailyGoalAdjusted"`
	RealizedDay       float64 `json:"realizedDay"`

	YearlyGoal   float64     `json:"yearlyGoal"`
	MonthlyGoals [12]float64 `json:"monthlyGoals"`
	RealizedYear float64     `json:"realizedYear"`

	IsSingleSegment bool `json:"isSingleSegment"`

	Coverage Coverage `json:"coverage"`
}

type CompanyGoalRow struct {
	Line             string  `json:"line"`
	Group            string  `json:"group"`
	Segment          string  `json:"segment"`
	Realized         float64 `json:"realized"`
	MonthlyGoal      float64 `json:"monthlyGoal"`
	ProportionalGoal float64 `json:"proportionalGoal"`
	PercentOfGoal    float64 `json:"percentOfGoal"`
	Gap              float64 `json:"gap"`
}

type DailyPoint struct {
	Date    string             `json:"date"`
	Total   float64            `json:"total"`
	Goal    *float64           `json:"goal,omitempty"`
	ByLine  map[string]float64 `json:"byLine,omitempty"`
	ByGroup map[string]float64 `json:"byGroup,omitempty"`
}

type BreakdownEntry struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type ComparisonPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type DateRange struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

type Dashboard struct {
	KPIs           KPIs        `json:"kpis"`
	EffectiveRange DateRange   `json:"effectiveRange"`
	GoalMetrics    GoalMetrics `json:"goalMetrics"`

	CompanyGoalData []CompanyGoalRow `json:"companyGoalData"`

	DailyData           []DailyPoint      `json:"dailyData"`
	Comparison          *ComparisonPeriod `json:"comparison,omitempty"`
	ComparisonDailyData []DailyPoint      `json:"comparisonDailyData,omitempty"`

	GroupBreakdown   []BreakdownEntry `json:"groupBreakdown"`
	SegmentBreakdown []BreakdownEntry `json:"segmentBreakdown"`
	LineBreakdown    []BreakdownEntry `json:"lineBreakdown"`
}

type WindowProjection struct {
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Realized  float64 `json:"realized"`
	Projected float64 `json:"projected"`
	Goal      float64 `json:"goal"`
}

type Projection struct {
	Week  WindowProjection `json:"week"`
	Month WindowProjection `json:"month"`
	Year  WindowProjection `json:"year"`
}

type RevenueRecord struct {
	ID      string  `json:"id,omitempty"`
	Date    string  `json:"date"`
	Line    string  `json:"line"`
	Group   string  `json:"group,omitempty"`
	Segment string  `json:"segment,omitempty"`
	Amount  float64 `json:"amount"`
}

type LineGoal struct {
	Line           string          `json:"line"`
	Group          string          `json:"group,omitempty"`
	MonthlyTargets map[int]float64 `json:"monthlyTargets"`
}

type Error struct {
	Error string `json:"error"`
}

// FromSnapshot converts the domain snapshot to its wire form.
func FromSnapshot(snap *domain.Snapshot) Dashboard {
	d := Dashboard{
		KPIs: KPIs(snap.KPIs),
		EffectiveRange: DateRange{
			Start: dayKeyPtr(snap.EffectiveRange.Start),
			End:   dayKeyPtr(snap.EffectiveRange.End),
		},
		GoalMetrics:         fromGoalMetrics(snap.GoalMetrics),
		CompanyGoalData:     make([]CompanyGoalRow, 0, len(snap.CompanyGoalData)),
		DailyData:           fromDailyPoints(snap.DailyData),
		ComparisonDailyData: fromDailyPoints(snap.ComparisonDailyData),
		GroupBreakdown:      fromBreakdown(snap.GroupBreakdown),
		SegmentBreakdown:    fromBreakdown(snap.SegmentBreakdown),
		LineBreakdown:       fromBreakdown(snap.LineBreakdown),
	}

	for _, row := range snap.CompanyGoalData {
		d.CompanyGoalData = append(d.CompanyGoalData, CompanyGoalRow(row))
	}

	if snap.Comparison != nil {
		d.Comparison = &ComparisonPeriod{
			Start: calendar.DayKey(snap.Comparison.Start),
			End:   calendar.DayKey(snap.Comparison.End),
			Label: snap.Comparison.Label,
		}
	}

	return d
}

// FromProjection converts the forecast projection to its wire form.
func FromProjection(p *domain.Projection) Projection {
	return Projection{
		Week:  fromWindowProjection(p.Week),
		Month: fromWindowProjection(p.Month),
		Year:  fromWindowProjection(p.Year),
	}
}

func fromGoalMetrics(gm domain.GoalMetrics) GoalMetrics {
	return GoalMetrics{
		MonthlyGoal:           gm.MonthlyGoal,
		ProportionalGoal:      gm.ProportionalGoal,
		Realized:              gm.Realized,
		RealizedMonth:         gm.RealizedMonth,
		GapProportional:       gm.GapProportional,
		GapTotal:              gm.GapTotal,
		PercentOfGoal:         gm.PercentOfGoal,
		PercentOfProportional: gm.PercentOfProportional,
		DaysInMonth:           gm.DaysInMonth,
		CurrentDay:            gm.CurrentDay,
		WeekStart:             calendar.DayKey(gm.WeekStart),
		WeekEnd:               calendar.DayKey(gm.WeekEnd),
		DaysInWeek:            gm.DaysInWeek,
		WeeklyGoal:            gm.WeeklyGoal,
		ExpectedWeekly:        gm.ExpectedWeekly,
		RealizedWeek:          gm.RealizedWeek,
		DailyGoalBase:         gm.DailyGoalBase,
		DailyGoalAdjusted:     gm.DailyGoalAdjusted,
		RealizedDay:           gm.RealizedDay,
		YearlyGoal:            gm.YearlyGoal,
		MonthlyGoals:          gm.MonthlyGoals,
		RealizedYear:          gm.RealizedYear,
		IsSingleSegment:       gm.IsSingleSegment,
		Coverage: Coverage{
			Day:   WindowCoverage(gm.Coverage.Day),
			Week:  WindowCoverage(gm.Coverage.Week),
			Month: WindowCoverage(gm.Coverage.Month),
			Year:  WindowCoverage(gm.Coverage.Year),
		},
	}
}

func fromDailyPoints(points []domain.DailyPoint) []DailyPoint {
	out := make([]DailyPoint, 0, len(points))
	for _, p := range points {
		out = append(out, DailyPoint(p))
	}
	return out
}

func fromBreakdown(entries []domain.BreakdownEntry) []BreakdownEntry {
	out := make([]BreakdownEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, BreakdownEntry(e))
	}
	return out
}

func fromWindowProjection(w domain.WindowProjection) WindowProjection {
	return WindowProjection{
		Start:     calendar.DayKey(w.Start),
		End:       calendar.DayKey(w.End),
		Realized:  w.Realized,
		Projected: w.Projected,
		Goal:      w.Goal,
	}
}

func dayKeyPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	key := calendar.DayKey(*t)
	return &key
}
