package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sarangchurch/quiettime/internal/model"
)

var (
	ErrTemplateNotFound    = errors.New("reading template not found")
	ErrReadingPlanNotFound = errors.New("reading plan not found")
	ErrDuplicatePlan       = errors.New("reading plan already exists for this template and year")
	ErrCompletionNotFound  = errors.New("reading completion not found")
)

type ReadingRepository interface {
	CreateTemplate(template *model.ReadingTemplate, items []*model.ReadingTemplateItem) error
	Templates() ([]*model.ReadingTemplate, error)
	TemplateByID(id string) (*model.ReadingTemplate, error)
	TemplateItems(templateID string) ([]*model.ReadingTemplateItem, error)
	CountTemplateItems(templateID string) (int, error)

	CreatePlan(plan *model.ReadingPlan) error
	PlanByID(userID, id string) (*model.ReadingPlan, error)
	PlansByUser(userID string) ([]*model.ReadingPlan, error)
	UpdatePlan(plan *model.ReadingPlan) error

	CreateCompletion(completion *model.ReadingCompletion) error
	DeleteCompletion(userID, planID, date string) error
	Completions(userID, planID string) ([]*model.ReadingCompletion, error)
	CountCompletions(planID string) (int, error)
}

type readingRepository struct {
	db *sqlx.DB
}

func NewReadingRepository(db *sqlx.DB) ReadingRepository {
	return &readingRepository{db: db}
}

// CreateTemplate inserts the template and its daily items in one
// transaction; a template without its items is useless.
func (r *readingRepository) CreateTemplate(template *model.ReadingTemplate, items []*model.ReadingTemplateItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO reading_plan_templates
	          (id, year, title, description, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		template.ID, template.Year, template.Title, template.Description,
		template.CreatedBy, template.CreatedAt, template.UpdatedAt)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, item := range items {
		_, err = tx.Exec(`INSERT INTO reading_plan_template_items
		          (id, template_id, date, day_number, passages, notes, created_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New().String(), template.ID, item.Date, item.DayNumber, item.Passages, item.Notes, now)
		if err != nil {
			return fmt.Errorf("failed to insert template item %d: %w", item.DayNumber, err)
		}
	}

	return tx.Commit()
}

func (r *readingRepository) Templates() ([]*model.ReadingTemplate, error) {
	var templates []*model.ReadingTemplate
	query := `SELECT * FROM reading_plan_templates ORDER BY year DESC, created_at DESC`

	err := r.db.Select(&templates, query)
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *readingRepository) TemplateByID(id string) (*model.ReadingTemplate, error) {
	template := &model.ReadingTemplate{}
	query := `SELECT * FROM reading_plan_templates WHERE id = $1`

	err := r.db.Get(template, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}

	return template, err
}

func (r *readingRepository) TemplateItems(templateID string) ([]*model.ReadingTemplateItem, error) {
	var items []*model.ReadingTemplateItem
	query := `SELECT * FROM reading_plan_template_items
	          WHERE template_id = $1 ORDER BY day_number ASC`

	err := r.db.Select(&items, query, templateID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *readingRepository) CountTemplateItems(templateID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM reading_plan_template_items WHERE template_id = $1`, templateID)
	return count, err
}

func (r *readingRepository) CreatePlan(plan *model.ReadingPlan) error {
	query := `INSERT INTO user_reading_plans
	          (id, user_id, template_id, year, status, started_at, completed_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		plan.ID, plan.UserID, plan.TemplateID, plan.Year, plan.Status,
		plan.StartedAt, plan.CompletedAt, plan.CreatedAt, plan.UpdatedAt)
	if err != nil {
		errStr := err.Error()
		if containsUniqueViolation(errStr) {
			return ErrDuplicatePlan
		}
		return err
	}

	return nil
}

func (r *readingRepository) PlanByID(userID, id string) (*model.ReadingPlan, error) {
	plan := &model.ReadingPlan{}
	query := `SELECT * FROM user_reading_plans WHERE user_id = $1 AND id = $2`

	err := r.db.Get(plan, query, userID, id)
	if err == sql.ErrNoRows {
		return nil, ErrReadingPlanNotFound
	}

	return plan, err
}

func (r *readingRepository) PlansByUser(userID string) ([]*model.ReadingPlan, error) {
	var plans []*model.ReadingPlan
	query := `SELECT * FROM user_reading_plans WHERE user_id = $1 ORDER BY year DESC`

	err := r.db.Select(&plans, query, userID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *readingRepository) UpdatePlan(plan *model.ReadingPlan) error {
	query := `UPDATE user_reading_plans
	          SET status = $1, started_at = $2, completed_at = $3, updated_at = $4
	          WHERE user_id = $5 AND id = $6`

	result, err := r.db.Exec(query,
		plan.Status, plan.StartedAt, plan.CompletedAt, plan.UpdatedAt, plan.UserID, plan.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReadingPlanNotFound
	}

	return nil
}

func (r *readingRepository) CreateCompletion(completion *model.ReadingCompletion) error {
	query := `INSERT INTO user_reading_completions
	          (id, user_id, plan_id, date, completed_at, memo)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		completion.ID, completion.UserID, completion.PlanID, completion.Date,
		completion.CompletedAt, completion.Memo)
	return err
}

func (r *readingRepository) DeleteCompletion(userID, planID, date string) error {
	query := `DELETE FROM user_reading_completions
	          WHERE user_id = $1 AND plan_id = $2 AND date = $3`

	result, err := r.db.Exec(query, userID, planID, date)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCompletionNotFound
	}

	return nil
}

func (r *readingRepository) Completions(userID, planID string) ([]*model.ReadingCompletion, error) {
	var completions []*model.ReadingCompletion
	query := `SELECT * FROM user_reading_completions
	          WHERE user_id = $1 AND plan_id = $2 ORDER BY date ASC`

	err := r.db.Select(&completions, query, userID, planID)
	if err != nil {
		return nil, err
	}

	return completions, nil
}

func (r *readingRepository) CountCompletions(planID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM user_reading_completions WHERE plan_id = $1`, planID)
	return count, err
}
