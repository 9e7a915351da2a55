package domain

import "time"

// DatePreset selects how the effective date range is derived.
type DatePreset string

const (
	PresetYesterday DatePreset = "yesterday"
	PresetWTD       DatePreset = "wtd"
	PresetMTD       DatePreset = "mtd"
	PresetAll       DatePreset = "all"
)

// Filters narrows the record set. Empty slices mean no restriction for that
// dimension; values within a dimension are OR'ed, dimensions are AND'ed.
// DateStart/DateEnd only apply under PresetAll; any other preset computes
// its own range and ignores them.
type Filters struct {
	Lines    []string
	Groups   []string
	Segments []string

	DateStart *time.Time
	DateEnd   *time.Time
}

// DateRange is a closed interval. A nil bound means open-ended.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Bounded reports whether at least one bound is set.
func (r DateRange) Bounded() bool {
	return r.Start != nil || r.End != nil
}

// ComparisonOptions controls the previous-period overlay.
type ComparisonOptions struct {
	Enabled     bool
	CustomStart *time.Time
	CustomEnd   *time.Time
}
