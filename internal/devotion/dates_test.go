package devotion

import (
	"testing"
	"time"
)

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2026-03-01", 1, "2026-03-02"},
		{"2026-02-28", 1, "2026-03-01"},
		{"2028-02-28", 1, "2028-02-29"}, // leap year
		{"2026-12-31", 1, "2027-01-01"},
		{"2026-03-01", -1, "2026-02-28"},
		{"2026-01-01", -1, "2025-12-31"},
	}

	for _, tt := range tests {
		if got := AddDays(tt.date, tt.n); got != tt.want {
			t.Errorf("AddDays(%s, %d) = %s, want %s", tt.date, tt.n, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2026-03-01", "2026-03-01", 0},
		{"2026-03-01", "2026-03-02", 1},
		{"2026-03-02", "2026-03-01", -1},
		{"2026-02-01", "2026-03-01", 28},
		{"2025-12-31", "2026-01-01", 1},
	}

	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-03-09", "2026-03-09"}, // Monday maps to itself
		{"2026-03-10", "2026-03-09"},
		{"2026-03-14", "2026-03-09"}, // Saturday
		{"2026-03-15", "2026-03-09"}, // Sunday belongs to the week before
	}

	for _, tt := range tests {
		if got := WeekStart(tt.date); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestClockToday(t *testing.T) {
	// 23:30 UTC on March 1st is already March 2nd in Seoul.
	at := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	seoul, err := NewClockAt("Asia/Seoul", at)
	if err != nil {
		t.Fatal(err)
	}
	if got := seoul.Today(); got != "2026-03-02" {
		t.Errorf("Seoul Today() = %s, want 2026-03-02", got)
	}

	utc, err := NewClockAt("UTC", at)
	if err != nil {
		t.Fatal(err)
	}
	if got := utc.Today(); got != "2026-03-01" {
		t.Errorf("UTC Today() = %s, want 2026-03-01", got)
	}
}

func TestNewClockRejectsBadZone(t *testing.T) {
	_, err := NewClock("Nowhere/Invalid")
	if err == nil {
		t.Error("expected error for invalid zone")
	}
}
