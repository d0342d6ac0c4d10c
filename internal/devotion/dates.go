// Package devotion holds the pure calendar logic behind check-ins: streak
// computation over date strings and the midnight split of a logged interval.
//
// Dates are exchanged as YYYY-MM-DD and clock times as HH:MM (24-hour,
// zero-padded), so lexicographic comparison matches chronological order.
// Day arithmetic runs on decomposed (year, month, day) integers in a fixed
// UTC calendar; the caller's timezone only matters when resolving "today".
package devotion

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

func splitDate(date string) (year, month, day int) {
	fmt.Sscanf(date, "%04d-%02d-%02d", &year, &month, &day)
	return year, month, day
}

// AddDays returns date shifted by n calendar days. Malformed input is a
// caller contract violation; the result is then undefined, not an error.
func AddDays(date string, n int) string {
	y, m, d := splitDate(date)
	return time.Date(y, time.Month(m), d+n, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// NextDay returns the calendar day after date.
func NextDay(date string) string {
	return AddDays(date, 1)
}

// DaysBetween returns the whole days from a to b (positive when b is later).
func DaysBetween(a, b string) int {
	ay, am, ad := splitDate(a)
	by, bm, bd := splitDate(b)
	at := time.Date(ay, time.Month(am), ad, 0, 0, 0, 0, time.UTC)
	bt := time.Date(by, time.Month(bm), bd, 0, 0, 0, 0, time.UTC)
	return int(bt.Sub(at).Hours() / 24)
}

// MonthStart returns the first day of date's month.
func MonthStart(date string) string {
	return date[:8] + "01"
}

// WeekStart returns the Monday of date's week.
func WeekStart(date string) string {
	y, m, d := splitDate(date)
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return AddDays(date, -offset)
}
