package service

import "time"

// Calendar helpers shared by the history, growth, and projection services.
// All dates are day-granular in UTC; time-of-day never participates.

// endOfMonth returns the last day of t's month.
func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// addMonthsClamped shifts t by the given number of months, clamping the day
// to the target month's last day instead of letting it roll over (Jan 31 +
// 1 month is Feb 28, not Mar 3). This keeps generated projection dates in
// the month they are meant to represent.
func addMonthsClamped(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	if total%12 < 0 {
		year--
	}
	month := time.Month(((total%12)+12)%12 + 1)

	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// truncateToDate strips the time-of-day component in UTC.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// floorDiv divides a by b rounding toward negative infinity, matching the
// "floor of the average" rule for even-count medians.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// absInt64 returns |v|.
func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
