// Package metrics is the recomputation core of the dashboard: it turns the
// full record set, the goal table and the active filters into the derived
// Snapshot consumed by the presentation layer. Compute is a pure function;
// callers hand it a mutually consistent set of inputs and a fixed "today"
// and get the whole snapshot back in one pass.
package metrics

import (
	"sort"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
	"github.com/rev-tools/revenue-atlas/pkg/services/goal"
	"github.com/rev-tools/revenue-atlas/pkg/services/period"
)

// Inputs is everything a recomputation depends on. Today is explicit so
// D-1 semantics are reproducible without wall-clock access.
type Inputs struct {
	Records    []domain.RevenueRecord
	Lines      []domain.LineMetaInfo
	Filters    domain.Filters
	Preset     domain.DatePreset
	Comparison domain.ComparisonOptions
	Today      time.Time
}

// Compute rebuilds the full snapshot. The reference day for every "where
// we should be" figure is D-1: a day's revenue is only entered on the
// following day, so today is never treated as closed.
func Compute(in Inputs) domain.Snapshot {
	today := calendar.NormalizeToNoon(in.Today)
	refDay := calendar.AddDays(today, -1)

	effectiveRange := period.EffectiveRange(in.Preset, in.Filters, today)

	entityFiltered := FilterByEntity(in.Records, in.Filters)
	dateFiltered := filterByRange(in.Records, effectiveRange)
	filtered := filterByRange(entityFiltered, effectiveRange)

	filteredLines := filterLines(in.Lines, in.Filters)

	snap := domain.Snapshot{
		FilteredData:     filtered,
		DateFilteredData: dateFiltered,
		EffectiveRange:   effectiveRange,
	}

	snap.KPIs = computeKPIs(filtered, dateFiltered)
	snap.GoalMetrics = computeGoalMetrics(in.Preset, effectiveRange, filtered, entityFiltered, filteredLines, refDay, today)
	snap.CompanyGoalData = computeCompanyGoalData(entityFiltered, filteredLines, refDay)
	snap.DailyData = buildDailySeries(filtered, filteredLines)

	snap.GroupBreakdown = breakdown(filtered, func(r domain.RevenueRecord) string { return r.Group })
	snap.SegmentBreakdown = breakdown(filtered, func(r domain.RevenueRecord) string { return r.Segment })
	snap.LineBreakdown = breakdown(filtered, func(r domain.RevenueRecord) string { return r.Line })

	if cp := period.ResolveComparison(in.Comparison, effectiveRange); cp != nil {
		snap.Comparison = cp
		comparisonRecords := filterByRange(entityFiltered, domain.DateRange{Start: &cp.Start, End: &cp.End})
		snap.ComparisonDailyData = buildDailySeries(comparisonRecords, filteredLines)
	}

	return snap
}

func computeKPIs(filtered, dateFiltered []domain.RevenueRecord) domain.KPIs {
	kpis := domain.KPIs{
		RealizedFiltered: sumAmounts(filtered),
		RealizedTotal:    sumAmounts(dateFiltered),
	}
	kpis.PercentOfTotal = ratio(kpis.RealizedFiltered, kpis.RealizedTotal) * 100
	return kpis
}

func computeGoalMetrics(
	preset domain.DatePreset,
	effectiveRange domain.DateRange,
	filtered, entityFiltered []domain.RevenueRecord,
	lines []domain.LineMetaInfo,
	refDay, today time.Time,
) domain.GoalMetrics {
	gm := domain.GoalMetrics{
		DaysInMonth: calendar.DaysInMonth(refDay),
		CurrentDay:  refDay.Day(),
	}

	monthStart := calendar.StartOfMonth(refDay)

	customRange := preset == domain.PresetAll && effectiveRange.Start != nil && effectiveRange.End != nil

	switch {
	case customRange:
		// The period boundary is the proration: the goal for the literal
		// range is both the total and the expected-to-date figure.
		gm.MonthlyGoal = goal.SumAdjustedDailyGoalsForRange(lines, *effectiveRange.Start, *effectiveRange.End)
		gm.ProportionalGoal = gm.MonthlyGoal
	case preset == domain.PresetAll && len(filtered) > 0:
		// Unbounded view: accrue the goal only over the days that actually
		// carry data. Each day uses its own month's target and weekday
		// factor, so multi-month spans stay correct.
		var total float64
		for _, d := range uniqueDays(filtered) {
			total += goal.TotalAdjustedDailyGoal(lines, d)
		}
		gm.MonthlyGoal = total
		gm.ProportionalGoal = total
	default:
		gm.MonthlyGoal = goal.TotalMonthlyGoal(lines, int(refDay.Month()))
		gm.ProportionalGoal = goal.SumAdjustedDailyGoalsForRange(lines, monthStart, refDay)
	}

	gm.Realized = sumAmounts(filtered)
	gm.RealizedMonth = sumWindow(entityFiltered, calendar.StartOfDay(monthStart), calendar.EndOfDay(refDay))

	gm.GapProportional = gm.Realized - gm.ProportionalGoal
	gm.GapTotal = gm.Realized - gm.MonthlyGoal
	gm.PercentOfGoal = ratio(gm.Realized, gm.MonthlyGoal) * 100
	gm.PercentOfProportional = ratio(gm.Realized, gm.ProportionalGoal) * 100

	weekStart := calendar.StartOfWeek(refDay)
	gm.WeekStart = weekStart
	gm.WeekEnd = calendar.AddDays(weekStart, 6)
	gm.DaysInWeek = clamp(calendar.DayDiff(weekStart, refDay)+1, 0, 7)
	gm.WeeklyGoal = goal.SumAdjustedDailyGoalsForRange(lines, weekStart, gm.WeekEnd)
	gm.ExpectedWeekly = goal.SumAdjustedDailyGoalsForRange(lines, weekStart, refDay)
	gm.RealizedWeek = sumWindow(entityFiltered, calendar.StartOfDay(weekStart), calendar.EndOfDay(refDay))

	gm.DailyGoalBase = goal.TotalBaseDailyGoal(lines, refDay)
	gm.DailyGoalAdjusted = goal.TotalAdjustedDailyGoal(lines, refDay)
	gm.RealizedDay = sumWindow(entityFiltered, calendar.StartOfDay(refDay), calendar.EndOfDay(refDay))

	gm.YearlyGoal = goal.TotalYearlyGoal(lines)
	for month := 1; month <= 12; month++ {
		gm.MonthlyGoals[month-1] = goal.TotalMonthlyGoal(lines, month)
	}
	yearStart := calendar.StartOfYear(refDay)
	gm.RealizedYear = sumWindow(entityFiltered, calendar.StartOfDay(yearStart), calendar.EndOfDay(refDay))

	gm.IsSingleSegment = isSingleSegment(lines)

	gm.Coverage = computeCoverage(filtered, entityFiltered, effectiveRange, today)

	return gm
}

// coverageReference picks the day coverage windows end at: the latest date
// present in the filtered data, else the end of the effective range, else
// today.
func coverageReference(filtered []domain.RevenueRecord, effectiveRange domain.DateRange, today time.Time) time.Time {
	var latest time.Time
	for _, r := range filtered {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	if !latest.IsZero() {
		return calendar.NormalizeToNoon(latest)
	}
	if effectiveRange.End != nil {
		return calendar.NormalizeToNoon(*effectiveRange.End)
	}
	return today
}

func computeCoverage(filtered, entityFiltered []domain.RevenueRecord, effectiveRange domain.DateRange, today time.Time) domain.Coverage {
	ref := coverageReference(filtered, effectiveRange, today)

	observedDays := make(map[string]time.Time, len(entityFiltered))
	for _, r := range entityFiltered {
		d := calendar.NormalizeToNoon(r.Date)
		observedDays[calendar.DayKey(d)] = d
	}

	window := func(start time.Time) domain.WindowCoverage {
		expected := calendar.DayDiff(start, ref) + 1
		if expected < 0 {
			expected = 0
		}
		observed := 0
		for _, d := range observedDays {
			if !d.Before(start) && !d.After(ref) {
				observed++
			}
		}
		return domain.WindowCoverage{
			Observed: observed,
			Expected: expected,
			Percent:  ratio(float64(observed), float64(expected)),
		}
	}

	return domain.Coverage{
		Day:   window(ref),
		Week:  window(calendar.StartOfWeek(ref)),
		Month: window(calendar.StartOfMonth(ref)),
		Year:  window(calendar.StartOfYear(ref)),
	}
}

func computeCompanyGoalData(entityFiltered []domain.RevenueRecord, lines []domain.LineMetaInfo, refDay time.Time) []domain.CompanyGoalRow {
	monthStart := calendar.StartOfMonth(refDay)
	windowStart := calendar.StartOfDay(monthStart)
	windowEnd := calendar.EndOfDay(refDay)

	realizedByLine := make(map[string]float64)
	for _, r := range entityFiltered {
		if r.Date.Before(windowStart) || r.Date.After(windowEnd) {
			continue
		}
		realizedByLine[r.Line] += r.Amount
	}

	var rows []domain.CompanyGoalRow
	for _, line := range lines {
		monthlyGoal := line.MonthlyTargets[int(refDay.Month())]
		realized := realizedByLine[line.Line]
		if monthlyGoal <= 0 && realized <= 0 {
			continue
		}
		proportional := goal.SumAdjustedDailyGoalsForRange([]domain.LineMetaInfo{line}, monthStart, refDay)
		rows = append(rows, domain.CompanyGoalRow{
			Line:             line.Line,
			Group:            line.Group,
			Segment:          line.Segment,
			Realized:         realized,
			MonthlyGoal:      monthlyGoal,
			ProportionalGoal: proportional,
			PercentOfGoal:    ratio(realized, monthlyGoal) * 100,
			Gap:              realized - proportional,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Realized > rows[j].Realized })
	return rows
}

func buildDailySeries(records []domain.RevenueRecord, lines []domain.LineMetaInfo) []domain.DailyPoint {
	if len(records) == 0 {
		return nil
	}

	byDay := make(map[string]*domain.DailyPoint)
	for _, r := range records {
		key := calendar.DayKey(calendar.NormalizeToNoon(r.Date))
		point, ok := byDay[key]
		if !ok {
			point = &domain.DailyPoint{
				Date:    key,
				ByLine:  make(map[string]float64),
				ByGroup: make(map[string]float64),
			}
			byDay[key] = point
		}
		point.Total += r.Amount
		point.ByLine[r.Line] += r.Amount
		point.ByGroup[r.Group] += r.Amount
	}

	goalMap := goal.BuildDailyGoalMap(lines, uniqueDays(records))

	points := make([]domain.DailyPoint, 0, len(byDay))
	for key, point := range byDay {
		if g, ok := goalMap[key]; ok && g > 0 {
			value := g
			point.Goal = &value
		}
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

func breakdown(records []domain.RevenueRecord, dimension func(domain.RevenueRecord) string) []domain.BreakdownEntry {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[dimension(r)] += r.Amount
	}
	entries := make([]domain.BreakdownEntry, 0, len(totals))
	for name, total := range totals {
		entries = append(entries, domain.BreakdownEntry{Name: name, Total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// FilterByEntity keeps the records passing the line/group/segment filters:
// OR within each dimension, AND across dimensions, empty set means no
// restriction.
func FilterByEntity(records []domain.RevenueRecord, f domain.Filters) []domain.RevenueRecord {
	lines := toSet(f.Lines)
	groups := toSet(f.Groups)
	segments := toSet(f.Segments)

	if len(lines) == 0 && len(groups) == 0 && len(segments) == 0 {
		return records
	}

	var out []domain.RevenueRecord
	for _, r := range records {
		if len(lines) > 0 && !lines[r.Line] {
			continue
		}
		if len(groups) > 0 && !groups[r.Group] {
			continue
		}
		if len(segments) > 0 && !segments[r.Segment] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func filterByRange(records []domain.RevenueRecord, r domain.DateRange) []domain.RevenueRecord {
	if !r.Bounded() {
		return records
	}
	var out []domain.RevenueRecord
	for _, rec := range records {
		if r.Start != nil && rec.Date.Before(*r.Start) {
			continue
		}
		if r.End != nil && rec.Date.After(*r.End) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func filterLines(lines []domain.LineMetaInfo, f domain.Filters) []domain.LineMetaInfo {
	names := toSet(f.Lines)
	groups := toSet(f.Groups)
	segments := toSet(f.Segments)

	if len(names) == 0 && len(groups) == 0 && len(segments) == 0 {
		return lines
	}

	var out []domain.LineMetaInfo
	for _, line := range lines {
		if len(names) > 0 && !names[line.Line] {
			continue
		}
		if len(groups) > 0 && !groups[line.Group] {
			continue
		}
		if len(segments) > 0 && !segments[line.Segment] {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isSingleSegment(lines []domain.LineMetaInfo) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if line.Segment != goal.SegmentAirConditioning {
			return false
		}
	}
	return true
}

// uniqueDays returns the distinct calendar days present in the records,
// normalized to noon, in ascending order.
func uniqueDays(records []domain.RevenueRecord) []time.Time {
	seen := make(map[string]time.Time, len(records))
	for _, r := range records {
		d := calendar.NormalizeToNoon(r.Date)
		seen[calendar.DayKey(d)] = d
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func sumAmounts(records []domain.RevenueRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

func sumWindow(records []domain.RevenueRecord, start, end time.Time) float64 {
	var total float64
	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		total += r.Amount
	}
	return total
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
