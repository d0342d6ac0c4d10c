package model

import "time"

const (
	ReadingPlanNotStarted = "not_started"
	ReadingPlanInProgress = "in_progress"
	ReadingPlanCompleted  = "completed"
	ReadingPlanAbandoned  = "abandoned"
)

type ReadingTemplate struct {
	ID          string    `db:"id"`
	Year        int       `db:"year"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type ReadingTemplateItem struct {
	ID         string    `db:"id"`
	TemplateID string    `db:"template_id"`
	Date       string    `db:"date"`
	DayNumber  int       `db:"day_number"`
	Passages   string    `db:"passages"`
	Notes      *string   `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}

type ReadingPlan struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	TemplateID  string     `db:"template_id"`
	Year        int        `db:"year"`
	Status      string     `db:"status"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type ReadingCompletion struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	PlanID      string    `db:"plan_id"`
	Date        string    `db:"date"`
	CompletedAt time.Time `db:"completed_at"`
	Memo        *string   `db:"memo"`
}
