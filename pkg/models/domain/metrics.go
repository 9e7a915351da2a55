package domain

import "time"

// KPIs are the headline numbers for the active filter selection.
type KPIs struct {
	RealizedFiltered float64
	RealizedTotal    float64
	PercentOfTotal   float64
}

// WindowCoverage measures data-entry completeness for one window: how many
// of the expected calendar days have at least one record. This is distinct
// from goal attainment.
type WindowCoverage struct {
	Observed int
	Expected int
	Percent  float64
}

// Coverage groups the per-window completeness figures.
type Coverage struct {
	Day   WindowCoverage
	Week  WindowCoverage
	Month WindowCoverage
	Year  WindowCoverage
}

// GoalMetrics is the central derived structure of the dashboard. All
// "where we should be" figures use D-1 (yesterday relative to the supplied
// today) as the reference day, since a day's revenue is only entered on the
// following day.
type GoalMetrics struct {
	MonthlyGoal           float64
	ProportionalGoal      float64
	Realized              float64
	RealizedMonth         float64
	GapProportional       float64
	GapTotal              float64
	PercentOfGoal         float64
	PercentOfProportional float64
	DaysInMonth           int
	CurrentDay            int

	WeekStart      time.Time
	WeekEnd        time.Time
	DaysInWeek     int
	WeeklyGoal     float64
	ExpectedWeekly float64
	RealizedWeek   float64

	DailyGoalBase     float64
	DailyGoalAdjusted float64
	RealizedDay       float64

	YearlyGoal   float64
	MonthlyGoals [12]float64
	RealizedYear float64

	IsSingleSegment bool

	Coverage Coverage
}

// CompanyGoalRow is the per-line attainment breakdown for D-1's month.
type CompanyGoalRow struct {
	Line             string
	Group            string
	Segment          string
	Realized         float64
	MonthlyGoal      float64
	ProportionalGoal float64
	PercentOfGoal    float64
	Gap              float64
}

// DailyPoint is one chart point: the total for one calendar day, with the
// adjusted goal for that day when one exists, plus per-line and per-group
// contributions.
type DailyPoint struct {
	Date    string
	Total   float64
	Goal    *float64
	ByLine  map[string]float64
	ByGroup map[string]float64
}

// BreakdownEntry is one row of a dimension breakdown, sorted descending by
// total at construction.
type BreakdownEntry struct {
	Name  string
	Total float64
}

// ComparisonPeriod is the resolved previous period overlaid on the charts.
type ComparisonPeriod struct {
	Start time.Time
	End   time.Time
	Label string
}

// Snapshot is the full recomputation output consumed by the presentation
// layer. It is a pure function of (records, goals, filters, preset,
// comparison options, today) and is rebuilt wholesale on any input change.
type Snapshot struct {
	FilteredData     []RevenueRecord
	DateFilteredData []RevenueRecord

	KPIs           KPIs
	EffectiveRange DateRange
	GoalMetrics    GoalMetrics

	CompanyGoalData []CompanyGoalRow

	DailyData           []DailyPoint
	Comparison          *ComparisonPeriod
	ComparisonDailyData []DailyPoint

	GroupBreakdown   []BreakdownEntry
	SegmentBreakdown []BreakdownEntry
	LineBreakdown    []BreakdownEntry
}

// WindowProjection is the forecast view of one period: what has been
// realized through D-1, what the remaining days are expected to add, and
// the period goal for reference.
type WindowProjection struct {
	Start     time.Time
	End       time.Time
	Realized  float64
	Projected float64
	Goal      float64
}

// Projection bundles the end-of-period forecasts.
type Projection struct {
	Week  WindowProjection
	Month WindowProjection
	Year  WindowProjection
}
