package goal

import (
	"testing"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func line(name, segment string, targets map[int]float64) domain.LineMetaInfo {
	return domain.LineMetaInfo{
		LineGoal: domain.LineGoal{
			Line:           name,
			Group:          "G1",
			MonthlyTargets: targets,
		},
		Segment: segment,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestDailyBaseGoal(t *testing.T) {
	x := line("X", domain.SegmentOther, map[int]float64{1: 31000})

	t.Run("spreads the month target evenly", func(t *testing.T) {
		assert.InDelta(t, 1000, DailyBaseGoal(x, day(2024, time.January, 15)), 1e-9)
	})

	t.Run("sums back to the month target", func(t *testing.T) {
		var sum float64
		for d := 1; d <= 31; d++ {
			sum += DailyBaseGoal(x, day(2024, time.January, d))
		}
		assert.InDelta(t, 31000, sum, 1e-6)
	})

	t.Run("month without a target contributes zero", func(t *testing.T) {
		assert.Zero(t, DailyBaseGoal(x, day(2024, time.February, 10)))
	})
}

func TestAdjustmentFactor(t *testing.T) {
	saturday := day(2024, time.January, 6)
	tuesday := day(2024, time.January, 9)

	t.Run("air conditioning weekend", func(t *testing.T) {
		assert.Equal(t, 0.5, AdjustmentFactor(SegmentAirConditioning, saturday))
	})
	t.Run("air conditioning weekday", func(t *testing.T) {
		assert.Equal(t, 1.2, AdjustmentFactor(SegmentAirConditioning, tuesday))
	})
	t.Run("other segments always 1", func(t *testing.T) {
		assert.Equal(t, 1.0, AdjustmentFactor("FURNITURE", saturday))
		assert.Equal(t, 1.0, AdjustmentFactor("", tuesday))
		assert.Equal(t, 1.0, AdjustmentFactor(domain.SegmentOther, saturday))
	})
}

func TestAdjustedDailyGoal(t *testing.T) {
	y := line("Y", SegmentAirConditioning, map[int]float64{1: 31000})

	t.Run("Saturday halves the base", func(t *testing.T) {
		assert.InDelta(t, 500, AdjustedDailyGoal(y, day(2024, time.January, 6)), 1e-9)
	})
	t.Run("Tuesday takes 1.2x", func(t *testing.T) {
		assert.InDelta(t, 1200, AdjustedDailyGoal(y, day(2024, time.January, 9)), 1e-9)
	})
	t.Run("unadjusted segment stays at base", func(t *testing.T) {
		x := line("X", "FURNITURE", map[int]float64{1: 31000})
		assert.InDelta(t, 1000, AdjustedDailyGoal(x, day(2024, time.January, 6)), 1e-9)
	})
}

func TestTotals(t *testing.T) {
	lines := []domain.LineMetaInfo{
		line("A", domain.SegmentOther, map[int]float64{1: 3100, 2: 2900}),
		line("B", domain.SegmentOther, map[int]float64{1: 6200}),
	}

	t.Run("total adjusted daily goal", func(t *testing.T) {
		assert.InDelta(t, 300, TotalAdjustedDailyGoal(lines, day(2024, time.January, 10)), 1e-9)
	})
	t.Run("total monthly goal", func(t *testing.T) {
		assert.InDelta(t, 9300, TotalMonthlyGoal(lines, 1), 1e-9)
		assert.InDelta(t, 2900, TotalMonthlyGoal(lines, 2), 1e-9)
		assert.Zero(t, TotalMonthlyGoal(lines, 3))
	})
	t.Run("total yearly goal", func(t *testing.T) {
		assert.InDelta(t, 12200, TotalYearlyGoal(lines), 1e-9)
	})
	t.Run("empty input sums to zero", func(t *testing.T) {
		assert.Zero(t, TotalAdjustedDailyGoal(nil, day(2024, time.January, 1)))
		assert.Zero(t, TotalYearlyGoal(nil))
	})
}

func TestSumAdjustedDailyGoalsForRange(t *testing.T) {
	lines := []domain.LineMetaInfo{
		line("Y", SegmentAirConditioning, map[int]float64{1: 31000, 2: 29000}),
		line("X", domain.SegmentOther, map[int]float64{1: 31000}),
	}

	t.Run("equals the day-by-day sum", func(t *testing.T) {
		start := day(2024, time.January, 1)
		end := day(2024, time.January, 14)
		var expected float64
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			expected += TotalAdjustedDailyGoal(lines, d)
		}
		assert.InDelta(t, expected, SumAdjustedDailyGoalsForRange(lines, start, end), 1e-9)
	})

	t.Run("start after end yields zero", func(t *testing.T) {
		assert.Zero(t, SumAdjustedDailyGoalsForRange(lines, day(2024, time.January, 10), day(2024, time.January, 5)))
	})

	t.Run("empty lines yields zero", func(t *testing.T) {
		assert.Zero(t, SumAdjustedDailyGoalsForRange(nil, day(2024, time.January, 1), day(2024, time.January, 31)))
	})

	t.Run("single day equals the day total", func(t *testing.T) {
		d := day(2024, time.January, 6) // Saturday
		assert.InDelta(t, TotalAdjustedDailyGoal(lines, d), SumAdjustedDailyGoalsForRange(lines, d, d), 1e-9)
	})

	t.Run("crosses month boundaries per day", func(t *testing.T) {
		// Jan 31 2024 is a Wednesday, Feb 1 a Thursday. The AC line uses
		// January's target on the 31st and February's on the 1st; X has no
		// February target.
		got := SumAdjustedDailyGoalsForRange(lines, day(2024, time.January, 31), day(2024, time.February, 1))
		expected := 1000*1.2 + 1000 + (29000.0/29.0)*1.2
		assert.InDelta(t, expected, got, 1e-9)
	})
}

func TestBuildDailyGoalMap(t *testing.T) {
	lines := []domain.LineMetaInfo{
		line("X", domain.SegmentOther, map[int]float64{3: 3100}),
	}
	dates := []time.Time{day(2024, time.March, 1), day(2024, time.March, 2)}

	goals := BuildDailyGoalMap(lines, dates)
	assert.Len(t, goals, 2)
	assert.InDelta(t, 100, goals["2024-03-01"], 1e-9)
	assert.InDelta(t, 100, goals["2024-03-02"], 1e-9)
}
