package devotion

import "slices"

// CurrentStreak computes the run of consecutive check-in days ending at
// today or yesterday. A latest check-in older than yesterday breaks the
// streak. dates may be unsorted and may contain duplicates.
func CurrentStreak(dates []string, today string) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := slices.Clone(dates)
	slices.Sort(sorted)
	slices.Reverse(sorted)

	latest := sorted[0]
	gap := DaysBetween(latest, today)
	if gap > 1 {
		return 0
	}

	// Anchor the walk at today, or at yesterday when today has no
	// check-in yet.
	anchor := today
	if gap == 1 {
		anchor = AddDays(today, -1)
	}

	seen := make(map[string]struct{}, len(sorted))
	for _, d := range sorted {
		seen[d] = struct{}{}
	}

	streak := 0
	for {
		if _, ok := seen[anchor]; !ok {
			break
		}
		streak++
		anchor = AddDays(anchor, -1)
	}

	return streak
}

// LongestStreak computes the longest run of consecutive days ever observed.
func LongestStreak(dates []string) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := slices.Clone(dates)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	longest := 1
	run := 1

	for i := 1; i < len(sorted); i++ {
		if DaysBetween(sorted[i-1], sorted[i]) == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}

	return longest
}

// CountInRange counts dates within [start, end], inclusive.
func CountInRange(dates []string, start, end string) int {
	n := 0
	for _, d := range dates {
		if d >= start && d <= end {
			n++
		}
	}
	return n
}

// CountThisWeek counts check-ins since Monday of today's week.
func CountThisWeek(dates []string, today string) int {
	return CountInRange(dates, WeekStart(today), today)
}

// CountThisMonth counts check-ins since the first of today's month.
func CountThisMonth(dates []string, today string) int {
	return CountInRange(dates, MonthStart(today), today)
}
