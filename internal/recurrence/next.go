package recurrence

import "time"

// Next returns the occurrence that follows from. It uses calendar arithmetic
// (AddDate), so a DST change or a leap day never shifts the wall-clock time.
func Next(r Rule, from time.Time) time.Time {
	return Nth(r, from, 1)
}

// Nth returns the n-th occurrence after start (n=0 is start itself). Each
// occurrence is computed from start, not from its predecessor, so monthly
// rules anchored on the 31st do not drift after a short month.
func Nth(r Rule, start time.Time, n int) time.Time {
	k := n * r.Interval
	switch r.Freq {
	case Daily:
		return start.AddDate(0, 0, k)
	case Weekly:
		return start.AddDate(0, 0, 7*k)
	case Monthly:
		return addMonthsClamped(start, k)
	case Yearly:
		return addMonthsClamped(start, 12*k)
	}
	return start
}

// addMonthsClamped moves t by n months, clamping the day to the last day of
// the target month instead of overflowing into the next one.
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysInMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
