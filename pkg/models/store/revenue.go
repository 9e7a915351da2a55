package store

import "time"

// RevenueRow is a revenue record as persisted.
type RevenueRow struct {
	ID      string
	Date    time.Time
	Line    string
	Group   string
	Segment string
	Amount  float64
}

// GoalRow is one line's goal table for one year as persisted: twelve
// monthly targets.
type GoalRow struct {
	Line    string
	Group   string
	Targets [12]float64
}

// RevenueStats summarizes the stored record set.
type RevenueStats struct {
	RecordsCount    int64
	FirstRecordTime *time.Time
	LastRecordTime  *time.Time
}
