package devotion

import (
	"fmt"

	"github.com/sarangchurch/quiettime/internal/model"
)

const midnight = "00:00"

// DurationMinutes returns the interval length in minutes for a start/end
// clock-time pair, wrapping across midnight when end precedes start.
func DurationMinutes(start, end string) int {
	var sh, sm, eh, em int
	fmt.Sscanf(start, "%02d:%02d", &sh, &sm)
	fmt.Sscanf(end, "%02d:%02d", &eh, &em)

	minutes := (eh*60 + em) - (sh*60 + sm)
	if minutes < 0 {
		minutes += 24 * 60
	}
	return minutes
}

// SpansMidnight reports whether a logged start/end pair crosses midnight,
// i.e. the end clock time is earlier than the start. HH:MM strings compare
// lexicographically.
func SpansMidnight(start, end *string) bool {
	return start != nil && *start != "" && end != nil && *end != "" && *start > *end
}

// SplitPlan is the write set for one check-in submission: the primary
// record as it must be stored, and at most one child record holding the
// next-day half of a midnight-spanning interval. A nil Child means any
// existing child keyed by the primary's id must be removed.
type SplitPlan struct {
	Primary model.Checkin
	Child   *model.Checkin
}

// PlanSplit decides the midnight-span transition for a primary check-in.
// When the interval spans midnight the stored end time is clamped to the
// end-of-day sentinel and the remainder is projected onto a child record
// dated the next calendar day, starting at 00:00 and ending at the
// original end time, with duration and memo carried over.
func PlanSplit(primary model.Checkin) SplitPlan {
	if !SpansMidnight(primary.StartTime, primary.EndTime) {
		return SplitPlan{Primary: primary}
	}

	originalEnd := *primary.EndTime
	sentinel := model.EndOfDay
	primary.EndTime = &sentinel

	childStart := midnight
	childEnd := originalEnd
	child := model.Checkin{
		UserID:          primary.UserID,
		PlanID:          primary.PlanID,
		ParentID:        &primary.ID,
		CheckinDate:     NextDay(primary.CheckinDate),
		StartTime:       &childStart,
		EndTime:         &childEnd,
		DurationMinutes: primary.DurationMinutes,
		Memo:            primary.Memo,
	}

	return SplitPlan{Primary: primary, Child: &child}
}
