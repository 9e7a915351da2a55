package domain

import "time"

// Report is the renderable form of a dashboard query, consumed by the
// terminal reporters.
type Report struct {
	Title       string
	Period      TimePeriod
	Sections    []ReportSection
	TotalAmount float64
	Currency    string
}

// TimePeriod is the report's effective date range.
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection groups related figures, one per dashboard block
// (goal attainment, coverage, per-line standings).
type ReportSection struct {
	Title   string
	Summary map[string]string
	Details []ReportDetail
}

// ReportDetail is a single labeled figure within a section.
type ReportDetail struct {
	Name        string
	Value       string
	Unit        string
	Description string
}
