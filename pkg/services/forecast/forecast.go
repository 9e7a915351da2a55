// Package forecast builds a deterministic seasonality model from historical
// daily totals and projects the unobserved remainder of a period. The model
// is a point estimate (P50), not a distribution: same inputs, same output.
package forecast

import (
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/calendar"
)

// Minimum history before a seasonality factor is trusted. Below these the
// model degrades to the flat fallback average.
const (
	minWeekdaySamples  = 2
	minDistinctMonths  = 2
	minTargetMonthDays = 1
)

// Observation is one historical daily total.
type Observation struct {
	Date   time.Time
	Amount float64
}

// Point is the forecast for a single date.
type Point struct {
	P50 float64
}

// Options configures model construction. Reference is the last day
// considered closed; observations after it are ignored. Fallback is the
// average daily amount used when seasonality cannot be derived. Pre-supplied
// factors, when present, override the derived ones.
type Options struct {
	Reference      time.Time
	Fallback       float64
	WeekdayFactors map[time.Weekday]float64
	MonthFactors   map[time.Month]float64
}

// Model is a stateless date → estimate function. Rebuild it whenever the
// underlying series or reference date changes.
type Model struct {
	fallback       float64
	weekdayFactors map[time.Weekday]float64
	monthFactors   map[time.Month]float64
}

// NewModel derives weekday and month-of-year seasonality factors from the
// observations on or before the reference date. A weekday factor is the
// ratio of that weekday's historical average to the overall average; month
// factors are analogous. Factors with insufficient history stay at 1.
func NewModel(observations []Observation, opts Options) *Model {
	m := &Model{
		fallback:       opts.Fallback,
		weekdayFactors: make(map[time.Weekday]float64, 7),
		monthFactors:   make(map[time.Month]float64, 12),
	}

	reference := calendar.NormalizeToNoon(opts.Reference)

	var (
		overallSum    float64
		overallCount  int
		weekdaySum    [7]float64
		weekdayCount  [7]int
		monthSum      [13]float64
		monthCount    [13]int
		monthsPresent = make(map[time.Month]struct{})
	)

	for _, obs := range observations {
		d := calendar.NormalizeToNoon(obs.Date)
		if d.After(reference) {
			continue
		}
		overallSum += obs.Amount
		overallCount++
		wd := d.Weekday()
		weekdaySum[wd] += obs.Amount
		weekdayCount[wd]++
		mo := d.Month()
		monthSum[mo] += obs.Amount
		monthCount[mo]++
		monthsPresent[mo] = struct{}{}
	}

	if overallCount > 0 && overallSum != 0 {
		overallAvg := overallSum / float64(overallCount)

		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if weekdayCount[wd] >= minWeekdaySamples {
				m.weekdayFactors[wd] = (weekdaySum[wd] / float64(weekdayCount[wd])) / overallAvg
			}
		}

		if len(monthsPresent) >= minDistinctMonths {
			for mo := time.January; mo <= time.December; mo++ {
				if monthCount[mo] >= minTargetMonthDays {
					m.monthFactors[mo] = (monthSum[mo] / float64(monthCount[mo])) / overallAvg
				}
			}
		}
	}

	for wd, f := range opts.WeekdayFactors {
		m.weekdayFactors[wd] = f
	}
	for mo, f := range opts.MonthFactors {
		m.monthFactors[mo] = f
	}

	return m
}

// WeekdayFactor returns the seasonality factor for a weekday, 1 when
// history was insufficient.
func (m *Model) WeekdayFactor(wd time.Weekday) float64 {
	if f, ok := m.weekdayFactors[wd]; ok {
		return f
	}
	return 1
}

// MonthFactor returns the seasonality factor for a month, 1 when history
// was insufficient.
func (m *Model) MonthFactor(mo time.Month) float64 {
	if f, ok := m.monthFactors[mo]; ok {
		return f
	}
	return 1
}

// ForecastForDate estimates the daily total for a future date.
func (m *Model) ForecastForDate(date time.Time) Point {
	date = calendar.NormalizeToNoon(date)
	return Point{
		P50: m.fallback * m.WeekdayFactor(date.Weekday()) * m.MonthFactor(date.Month()),
	}
}

// SumRange sums the daily forecasts from start to end inclusive. Returns 0
// when start is after end.
func (m *Model) SumRange(start, end time.Time) float64 {
	start = calendar.NormalizeToNoon(start)
	end = calendar.NormalizeToNoon(end)
	if start.After(end) {
		return 0
	}
	var total float64
	for d := start; !d.After(end); d = calendar.AddDays(d, 1) {
		total += m.ForecastForDate(d).P50
	}
	return total
}

// ProjectWindow extends a cumulative realized total to the end of a window:
// realized through lastClosed plus the summed forecasts of the remaining
// days. When lastClosed is already past end, the realized total is returned
// unchanged.
func (m *Model) ProjectWindow(realized float64, lastClosed, end time.Time) float64 {
	return realized + m.SumRange(calendar.AddDays(calendar.NormalizeToNoon(lastClosed), 1), end)
}
