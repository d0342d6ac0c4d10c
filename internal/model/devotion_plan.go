package model

import "time"

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

type DevotionPlan struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Year        int       `db:"year"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Frequency   string    `db:"frequency"`
	TargetCount int       `db:"target_count"`
	StartDate   string    `db:"start_date"`
	EndDate     string    `db:"end_date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
