package report

import "time"

// MonthStart returns the first day of t's month at midnight UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonthStart returns the first day of the month after t's.
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// PreviousMonthStart steps back one day from the start of t's month and
// returns the first day of the month it lands in.
func PreviousMonthStart(t time.Time) time.Time {
	return MonthStart(MonthStart(t).AddDate(0, 0, -1))
}

// EndOfToday returns the start of the day after t, capped at the start of the
// next month. Spending "this month" counts dates before it.
func EndOfToday(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if monthEnd := NextMonthStart(t); next.After(monthEnd) {
		return monthEnd
	}
	return next
}
