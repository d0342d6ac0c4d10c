package validation

import (
	"regexp"
	"time"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidateDate checks the YYYY-MM-DD wire format, including calendar
// validity (2026-02-30 is rejected).
func ValidateDate(date string) error {
	if date == "" {
		return NewError("date is required")
	}
	if !dateRe.MatchString(date) {
		return NewError("date must be in YYYY-MM-DD format")
	}
	_, err := time.Parse("2006-01-02", date)
	if err != nil {
		return NewError("invalid calendar date")
	}
	return nil
}

// ValidateClockTime checks the HH:MM wire format (24-hour, zero-padded).
// The 24:00 end-of-day sentinel is written by the server, never accepted
// as input.
func ValidateClockTime(clock string) error {
	if !timeRe.MatchString(clock) {
		return NewError("time must be in HH:MM format")
	}
	return nil
}
