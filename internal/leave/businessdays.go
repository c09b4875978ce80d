package leave

import "time"

// BusinessDays returns the number of weekdays in the inclusive range
// [start, end]. Time-of-day and timezone offsets are ignored; both bounds are
// treated as plain calendar dates. A start after end yields 0.
func BusinessDays(start, end time.Time) int {
	start = dateOnly(start)
	end = dateOnly(end)

	if start.After(end) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
