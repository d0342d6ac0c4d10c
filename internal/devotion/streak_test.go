package devotion

import "testing"

const today = "2026-03-10"

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"only today", []string{"2026-03-10"}, 1},
		{"three days ending today", []string{"2026-03-10", "2026-03-09", "2026-03-08"}, 3},
		{"unsorted input", []string{"2026-03-08", "2026-03-10", "2026-03-09"}, 3},
		{"ends yesterday", []string{"2026-03-09", "2026-03-08"}, 2},
		{"gap of two breaks streak", []string{"2026-03-08"}, 0},
		{"hole inside run", []string{"2026-03-10", "2026-03-09", "2026-03-07"}, 2},
		{"duplicates collapse", []string{"2026-03-10", "2026-03-10", "2026-03-09"}, 2},
		{"old history ignored", []string{"2026-03-10", "2026-01-01", "2026-01-02"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentStreak(tt.dates, today)
			if got != tt.want {
				t.Errorf("CurrentStreak(%v, %s) = %d, want %d", tt.dates, today, got, tt.want)
			}
		})
	}
}

func TestCurrentStreakAcrossMonthBoundary(t *testing.T) {
	dates := []string{"2026-02-28", "2026-03-01", "2026-03-02"}
	got := CurrentStreak(dates, "2026-03-02")
	if got != 3 {
		t.Errorf("streak across month boundary = %d, want 3", got)
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single", []string{"2026-01-05"}, 1},
		{"run of three then gap", []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-10"}, 3},
		{"later run is longer", []string{"2026-01-01", "2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08"}, 4},
		{"duplicates do not break a run", []string{"2026-01-01", "2026-01-02", "2026-01-02", "2026-01-03"}, 3},
		{"year boundary", []string{"2025-12-30", "2025-12-31", "2026-01-01"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LongestStreak(tt.dates)
			if got != tt.want {
				t.Errorf("LongestStreak(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}

func TestCurrentNeverExceedsLongest(t *testing.T) {
	inputs := [][]string{
		nil,
		{"2026-03-10"},
		{"2026-03-10", "2026-03-09", "2026-03-08"},
		{"2026-03-08", "2026-03-07", "2026-01-01", "2026-01-02", "2026-01-03"},
		{"2025-12-31", "2026-01-01", "2026-03-09", "2026-03-10"},
	}

	for _, dates := range inputs {
		current := CurrentStreak(dates, today)
		longest := LongestStreak(dates)
		if current > longest {
			t.Errorf("CurrentStreak %d > LongestStreak %d for %v", current, longest, dates)
		}
	}
}

func TestStreaksAreIdempotent(t *testing.T) {
	dates := []string{"2026-03-10", "2026-03-08", "2026-03-09"}

	first := CurrentStreak(dates, today)
	second := CurrentStreak(dates, today)
	if first != second {
		t.Errorf("CurrentStreak not stable: %d then %d", first, second)
	}

	if dates[0] != "2026-03-10" || dates[1] != "2026-03-08" {
		t.Error("CurrentStreak mutated its input")
	}

	if LongestStreak(dates) != LongestStreak(dates) {
		t.Error("LongestStreak not stable")
	}
}

func TestCountHelpers(t *testing.T) {
	dates := []string{
		"2026-03-01", "2026-03-02", "2026-03-08", "2026-03-09", "2026-03-10",
		"2026-02-27",
	}

	// 2026-03-10 is a Tuesday; the week starts Monday 2026-03-09.
	if got := CountThisWeek(dates, today); got != 2 {
		t.Errorf("CountThisWeek = %d, want 2", got)
	}

	if got := CountThisMonth(dates, today); got != 5 {
		t.Errorf("CountThisMonth = %d, want 5", got)
	}

	if got := CountInRange(dates, "2026-03-02", "2026-03-09"); got != 3 {
		t.Errorf("CountInRange = %d, want 3", got)
	}
}
