// Package timeseries builds calendar buckets and decides whether dated
// records fall inside them. All arithmetic is UTC; callers never hand us a
// local time.
package timeseries

import "time"

// Month is one calendar-month bucket. End is the last representable instant
// of the month so inclusive comparisons work on both bounds.
type Month struct {
	Label string
	Start time.Time
	End   time.Time
}

// Months returns the last n calendar months including the current one,
// oldest first. n <= 0 yields an empty series.
func Months(now time.Time, n int) []Month {
	if n <= 0 {
		return nil
	}

	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]Month, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := first.AddDate(0, -i, 0)
		months = append(months, Month{
			Label: start.Format("2006-01"),
			Start: start,
			End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
		})
	}
	return months
}

// Day is one calendar-day bucket for ad-hoc drill-downs.
type Day struct {
	Label string
	Start time.Time
	End   time.Time
}

// Days returns the last n calendar days including today, oldest first.
func Days(now time.Time, n int) []Day {
	if n <= 0 {
		return nil
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	days := make([]Day, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		days = append(days, Day{
			Label: start.Format("2006-01-02"),
			Start: start,
			End:   start.AddDate(0, 0, 1).Add(-time.Nanosecond),
		})
	}
	return days
}

// Window returns the [start, end] pair covering the trailing days ending at
// now. The window is inclusive of now.
func Window(now time.Time, days int) (time.Time, time.Time) {
	end := now.UTC()
	return end.AddDate(0, 0, -days), end
}

// ActiveDuring reports whether a record created at createdAt with an optional
// period end overlaps [start, end]. A nil periodEnd means the record never
// expires.
func ActiveDuring(createdAt time.Time, periodEnd *time.Time, start, end time.Time) bool {
	if createdAt.After(end) {
		return false
	}
	if periodEnd != nil && periodEnd.Before(start) {
		return false
	}
	return true
}

// Within reports whether t falls inside [start, end], bounds inclusive.
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
