package stats

import "time"

// Windows holds the reporting boundaries derived once per report. Two
// different "month" boundaries coexist on purpose: StartOfCurrentMonth and
// StartOfLastMonth are calendar months driving revenue comparisons, while
// OneMonthAgo is a rolling 30-day boundary driving customer and newsletter
// recency. They must not be unified.
type Windows struct {
	Now                 time.Time
	StartOfCurrentMonth time.Time
	StartOfLastMonth    time.Time
	OneWeekAgo          time.Time
	OneMonthAgo         time.Time
}

// ComputeWindows derives all boundaries from a single "now".
func ComputeWindows(now time.Time) Windows {
	startOfCurrentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Windows{
		Now:                 now,
		StartOfCurrentMonth: startOfCurrentMonth,
		StartOfLastMonth:    startOfCurrentMonth.AddDate(0, -1, 0),
		OneWeekAgo:          now.AddDate(0, 0, -7),
		OneMonthAgo:         now.AddDate(0, 0, -30),
	}
}

// InCurrentMonth reports whether t falls in the current calendar month.
func (w Windows) InCurrentMonth(t time.Time) bool {
	return !t.Before(w.StartOfCurrentMonth)
}

// InLastMonth reports whether t falls in the previous calendar month.
func (w Windows) InLastMonth(t time.Time) bool {
	return !t.Before(w.StartOfLastMonth) && t.Before(w.StartOfCurrentMonth)
}

// InTrailingWeek reports whether t falls inside the rolling 7-day window.
func (w Windows) InTrailingWeek(t time.Time) bool {
	return t.After(w.OneWeekAgo)
}

// InTrailingMonth reports whether t falls inside the rolling 30-day window.
func (w Windows) InTrailingMonth(t time.Time) bool {
	return t.After(w.OneMonthAgo)
}
