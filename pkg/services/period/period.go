// Package period resolves date-range presets and derives comparison
// periods. "Today" is always an explicit argument so D-1 semantics stay
// reproducible in tests.
package period

import (
	"fmt"
	"time"

	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
)

// EffectiveRange resolves the active preset into a concrete date range.
// Custom start/end filters only apply under PresetAll; the other presets
// compute their own window from today.
func EffectiveRange(preset domain.DatePreset, filters domain.Filters, today time.Time) domain.DateRange {
	today = calendar.NormalizeToNoon(today)

	switch preset {
	case domain.PresetYesterday:
		y := calendar.AddDays(today, -1)
		start := calendar.StartOfDay(y)
		end := calendar.EndOfDay(y)
		return domain.DateRange{Start: &start, End: &end}
	case domain.PresetWTD:
		start := calendar.StartOfDay(calendar.StartOfWeek(today))
		end := calendar.EndOfDay(today)
		return domain.DateRange{Start: &start, End: &end}
	case domain.PresetMTD:
		start := calendar.StartOfDay(calendar.StartOfMonth(today))
		end := calendar.EndOfDay(today)
		return domain.DateRange{Start: &start, End: &end}
	default:
		var r domain.DateRange
		if filters.DateStart != nil {
			start := calendar.StartOfDay(*filters.DateStart)
			r.Start = &start
		}
		if filters.DateEnd != nil {
			end := calendar.EndOfDay(*filters.DateEnd)
			r.End = &end
		}
		return r
	}
}

// ResolveComparison derives the period immediately preceding the current
// one, of equal length. A custom comparison range wins when fully
// specified. Without a bounded current period there is nothing to compare
// against and the result is nil.
func ResolveComparison(opts domain.ComparisonOptions, current domain.DateRange) *domain.ComparisonPeriod {
	if !opts.Enabled {
		return nil
	}

	if opts.CustomStart != nil && opts.CustomEnd != nil {
		return &domain.ComparisonPeriod{
			Start: calendar.StartOfDay(*opts.CustomStart),
			End:   calendar.EndOfDay(*opts.CustomEnd),
			Label: "Custom Period",
		}
	}

	if current.Start == nil || current.End == nil {
		return nil
	}

	durationDays := calendar.DayDiff(*current.Start, *current.End) + 1
	if durationDays < 1 {
		return nil
	}

	end := calendar.EndOfDay(calendar.AddDays(calendar.NormalizeToNoon(*current.Start), -1))
	start := calendar.StartOfDay(calendar.AddDays(calendar.NormalizeToNoon(end), -(durationDays - 1)))

	return &domain.ComparisonPeriod{
		Start: start,
		End:   end,
		Label: comparisonLabel(durationDays),
	}
}

func comparisonLabel(durationDays int) string {
	switch {
	case durationDays == 1:
		return "Previous Day"
	case durationDays <= 7:
		return fmt.Sprintf("%d previous days", durationDays)
	default:
		return "Previous Period"
	}
}
