package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func flatSeries(start time.Time, days int, amount float64) []Observation {
	obs := make([]Observation, days)
	for i := range obs {
		obs[i] = Observation{Date: start.AddDate(0, 0, i), Amount: amount}
	}
	return obs
}

func TestNewModel_NoHistoryFallsBack(t *testing.T) {
	m := NewModel(nil, Options{
		Reference: day(2024, time.March, 10),
		Fallback:  500,
	})

	p := m.ForecastForDate(day(2024, time.March, 12))
	assert.InDelta(t, 500, p.P50, 1e-9)
	assert.Equal(t, 1.0, m.WeekdayFactor(time.Monday))
	assert.Equal(t, 1.0, m.MonthFactor(time.March))
}

func TestNewModel_WeekdayFactors(t *testing.T) {
	// Two full weeks starting Monday 2024-03-04: Mondays earn 200, every
	// other day 100.
	start := day(2024, time.March, 4)
	var obs []Observation
	for i := 0; i < 14; i++ {
		d := start.AddDate(0, 0, i)
		amount := 100.0
		if d.Weekday() == time.Monday {
			amount = 200.0
		}
		obs = append(obs, Observation{Date: d, Amount: amount})
	}

	m := NewModel(obs, Options{
		Reference: day(2024, time.March, 17),
		Fallback:  100,
	})

	overallAvg := (2*200.0 + 12*100.0) / 14.0
	assert.InDelta(t, 200.0/overallAvg, m.WeekdayFactor(time.Monday), 1e-9)
	assert.InDelta(t, 100.0/overallAvg, m.WeekdayFactor(time.Tuesday), 1e-9)

	// Monday forecast scales the fallback by the Monday factor.
	p := m.ForecastForDate(day(2024, time.March, 18))
	assert.InDelta(t, 100*200.0/overallAvg, p.P50, 1e-9)
}

func TestNewModel_SingleWeekdaySampleIgnored(t *testing.T) {
	// One observation per weekday is below the sample threshold, so every
	// factor stays at 1 and the flat fallback wins.
	obs := flatSeries(day(2024, time.March, 4), 7, 100)

	m := NewModel(obs, Options{
		Reference: day(2024, time.March, 10),
		Fallback:  80,
	})

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		assert.Equal(t, 1.0, m.WeekdayFactor(wd))
	}
	assert.InDelta(t, 80, m.ForecastForDate(day(2024, time.March, 12)).P50, 1e-9)
}

func TestNewModel_ObservationsAfterReferenceIgnored(t *testing.T) {
	obs := flatSeries(day(2024, time.March, 1), 31, 100)
	// Spike after the reference date must not leak into the averages.
	obs = append(obs, Observation{Date: day(2024, time.April, 5), Amount: 100000})

	m := NewModel(obs, Options{
		Reference: day(2024, time.March, 31),
		Fallback:  100,
	})

	// A flat series derives factors of exactly 1 for every weekday.
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		assert.InDelta(t, 1.0, m.WeekdayFactor(wd), 1e-9)
	}
}

func TestNewModel_MonthFactors(t *testing.T) {
	// January averages 100/day, February 200/day: two distinct months of
	// history unlock month factors.
	obs := flatSeries(day(2024, time.January, 1), 31, 100)
	obs = append(obs, flatSeries(day(2024, time.February, 1), 29, 200)...)

	m := NewModel(obs, Options{
		Reference: day(2024, time.February, 29),
		Fallback:  150,
	})

	overallAvg := (31*100.0 + 29*200.0) / 60.0
	assert.InDelta(t, 100.0/overallAvg, m.MonthFactor(time.January), 1e-9)
	assert.InDelta(t, 200.0/overallAvg, m.MonthFactor(time.February), 1e-9)
	assert.Equal(t, 1.0, m.MonthFactor(time.July))
}

func TestNewModel_SingleMonthNoMonthFactors(t *testing.T) {
	obs := flatSeries(day(2024, time.March, 1), 20, 100)

	m := NewModel(obs, Options{
		Reference: day(2024, time.March, 20),
		Fallback:  100,
	})

	assert.Equal(t, 1.0, m.MonthFactor(time.March))
}

func TestNewModel_PreSuppliedFactorsOverride(t *testing.T) {
	m := NewModel(nil, Options{
		Reference:      day(2024, time.March, 10),
		Fallback:       100,
		WeekdayFactors: map[time.Weekday]float64{time.Saturday: 0.4},
		MonthFactors:   map[time.Month]float64{time.December: 1.8},
	})

	// 2024-03-16 is a Saturday; 2024-12-14 a December Saturday.
	assert.InDelta(t, 40, m.ForecastForDate(day(2024, time.March, 16)).P50, 1e-9)
	assert.InDelta(t, 100*0.4*1.8, m.ForecastForDate(day(2024, time.December, 14)).P50, 1e-9)
}

func TestSumRange(t *testing.T) {
	m := NewModel(nil, Options{
		Reference: day(2024, time.March, 10),
		Fallback:  100,
	})

	t.Run("inclusive day count", func(t *testing.T) {
		got := m.SumRange(day(2024, time.March, 11), day(2024, time.March, 15))
		assert.InDelta(t, 500, got, 1e-9)
	})
	t.Run("start after end is zero", func(t *testing.T) {
		assert.Zero(t, m.SumRange(day(2024, time.March, 15), day(2024, time.March, 11)))
	})
}

func TestProjectWindow(t *testing.T) {
	m := NewModel(nil, Options{
		Reference: day(2024, time.March, 10),
		Fallback:  100,
	})

	t.Run("adds remaining days onto the realized total", func(t *testing.T) {
		// Closed through the 10th, window ends the 15th: 5 forecast days.
		got := m.ProjectWindow(2000, day(2024, time.March, 10), day(2024, time.March, 15))
		assert.InDelta(t, 2500, got, 1e-9)
	})
	t.Run("window already closed returns realized unchanged", func(t *testing.T) {
		got := m.ProjectWindow(2000, day(2024, time.March, 31), day(2024, time.March, 15))
		assert.InDelta(t, 2000, got, 1e-9)
	})
}

func TestModelDeterminism(t *testing.T) {
	obs := flatSeries(day(2024, time.January, 1), 60, 100)
	opts := Options{Reference: day(2024, time.February, 29), Fallback: 97}

	a := NewModel(obs, opts)
	b := NewModel(obs, opts)

	for i := 0; i < 30; i++ {
		d := day(2024, time.March, 1).AddDate(0, 0, i)
		assert.Equal(t, a.ForecastForDate(d), b.ForecastForDate(d))
	}
}
