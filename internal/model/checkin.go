package model

import "time"

// EndOfDay is the sentinel end time stored on a check-in whose logged
// interval crosses midnight. The remainder of the interval lives on the
// child record dated the next calendar day.
const EndOfDay = "24:00"

// Checkin is one entry of devotional time for a user on a calendar date.
// Dates are YYYY-MM-DD strings, clock times HH:MM (24-hour, zero-padded).
type Checkin struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	PlanID           *string   `db:"plan_id"`
	ParentID         *string   `db:"parent_id"`
	CheckinDate      string    `db:"checkin_date"`
	PlannedStartTime *string   `db:"planned_start_time"`
	PlannedEndTime   *string   `db:"planned_end_time"`
	StartTime        *string   `db:"start_time"`
	EndTime          *string   `db:"end_time"`
	DurationMinutes  *int      `db:"duration_minutes"`
	Memo             *string   `db:"memo"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// IsChild reports whether this record is the next-day half of a
// midnight-spanning check-in.
func (c *Checkin) IsChild() bool {
	return c.ParentID != nil && *c.ParentID != ""
}
