package domain

import "time"

// RevenueRecord is one day of revenue for one business line. Records are
// immutable once loaded; Date is always normalized to noon local time so
// day arithmetic survives DST shifts.
type RevenueRecord struct {
	ID      string
	Date    time.Time
	Line    string
	Group   string
	Segment string
	Amount  float64
}

// LineGoal holds the monthly revenue targets for one line for one year.
// MonthlyTargets is keyed by month number (1-12); missing months mean a
// zero target.
type LineGoal struct {
	Line           string
	Group          string
	MonthlyTargets map[int]float64
}

// LineMetaInfo is a LineGoal with the segment resolved from the line
// registry. Lines absent from the registry resolve to SegmentOther.
type LineMetaInfo struct {
	LineGoal
	Segment string
}

// SegmentOther is the sentinel segment for lines the registry does not know.
const SegmentOther = "OTHER"
