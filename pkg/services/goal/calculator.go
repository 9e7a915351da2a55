// Package goal converts monthly per-line targets into daily and period goal
// amounts, applying the segment adjustment rules.
package goal

import (
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
)

// SegmentAirConditioning is the only segment with an adjustment rule today.
// Weekday demand runs well above weekend demand for this segment, so its
// daily goals are skewed accordingly. The factors are intentionally not
// normalized to average 1.0 over a week.
const SegmentAirConditioning = "AIR CONDITIONING"

type adjustmentRule struct {
	weekday float64
	weekend float64
}

// segmentRules maps segment names to their daily adjustment factors.
// Extending this to other segments is a rule-table addition, not a new
// conditional.
var segmentRules = map[string]adjustmentRule{
	SegmentAirConditioning: {weekday: 1.2, weekend: 0.5},
}

// DailyBaseGoal is the unadjusted daily goal for one line on one date:
// the month's target spread evenly over the month's days.
func DailyBaseGoal(line domain.LineMetaInfo, date time.Time) float64 {
	target, ok := line.MonthlyTargets[int(date.Month())]
	if !ok || target == 0 {
		return 0
	}
	days := calendar.DaysInMonth(date)
	if days == 0 {
		return 0
	}
	return target / float64(days)
}

// AdjustmentFactor returns the segment multiplier for the given date.
// Segments without a rule get 1.
func AdjustmentFactor(segment string, date time.Time) float64 {
	rule, ok := segmentRules[segment]
	if !ok {
		return 1
	}
	if calendar.IsWeekend(date) {
		return rule.weekend
	}
	return rule.weekday
}

// AdjustedDailyGoal is the daily goal for one line with its segment
// adjustment applied.
func AdjustedDailyGoal(line domain.LineMetaInfo, date time.Time) float64 {
	return DailyBaseGoal(line, date) * AdjustmentFactor(line.Segment, date)
}

// TotalAdjustedDailyGoal sums the adjusted daily goal over all lines for
// one date. Returns 0 for an empty line set.
func TotalAdjustedDailyGoal(lines []domain.LineMetaInfo, date time.Time) float64 {
	date = calendar.NormalizeToNoon(date)
	var total float64
	for _, line := range lines {
		total += AdjustedDailyGoal(line, date)
	}
	return total
}

// TotalBaseDailyGoal sums the unadjusted daily goal over all lines for one
// date.
func TotalBaseDailyGoal(lines []domain.LineMetaInfo, date time.Time) float64 {
	date = calendar.NormalizeToNoon(date)
	var total float64
	for _, line := range lines {
		total += DailyBaseGoal(line, date)
	}
	return total
}

// TotalMonthlyGoal sums the targets of the given month (1-12) over all
// lines.
func TotalMonthlyGoal(lines []domain.LineMetaInfo, month int) float64 {
	var total float64
	for _, line := range lines {
		total += line.MonthlyTargets[month]
	}
	return total
}

// TotalYearlyGoal sums every monthly target over all lines.
func TotalYearlyGoal(lines []domain.LineMetaInfo) float64 {
	var total float64
	for _, line := range lines {
		for _, target := range line.MonthlyTargets {
			total += target
		}
	}
	return total
}

// SumAdjustedDailyGoalsForRange walks every calendar day from start to end
// inclusive and accumulates the total adjusted daily goal. Each day uses
// its own month's target and its own weekday factor, so multi-month spans
// are handled per-day rather than by any closed-form shortcut. Returns 0
// when start is after end or lines is empty.
func SumAdjustedDailyGoalsForRange(lines []domain.LineMetaInfo, start, end time.Time) float64 {
	if len(lines) == 0 {
		return 0
	}
	start = calendar.NormalizeToNoon(start)
	end = calendar.NormalizeToNoon(end)
	if start.After(end) {
		return 0
	}
	var total float64
	for d := start; !d.After(end); d = calendar.AddDays(d, 1) {
		total += TotalAdjustedDailyGoal(lines, d)
	}
	return total
}

// BuildDailyGoalMap returns the total adjusted daily goal per input date,
// keyed by ISO day, for chart consumption.
func BuildDailyGoalMap(lines []domain.LineMetaInfo, dates []time.Time) map[string]float64 {
	goals := make(map[string]float64, len(dates))
	for _, d := range dates {
		d = calendar.NormalizeToNoon(d)
		goals[calendar.DayKey(d)] = TotalAdjustedDailyGoal(lines, d)
	}
	return goals
}
