package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sarangchurch/quiettime/internal/model"
)

var ErrDevotionPlanNotFound = errors.New("devotion plan not found")

type DevotionPlanRepository interface {
	Create(plan *model.DevotionPlan) error
	ByID(userID, id string) (*model.DevotionPlan, error)
	ByUserAndYear(userID string, year int) ([]*model.DevotionPlan, error)
	Update(plan *model.DevotionPlan) error
	Delete(userID, id string) error
}

type devotionPlanRepository struct {
	db *sqlx.DB
}

func NewDevotionPlanRepository(db *sqlx.DB) DevotionPlanRepository {
	return &devotionPlanRepository{db: db}
}

func (r *devotionPlanRepository) Create(plan *model.DevotionPlan) error {
	query := `INSERT INTO devotion_plans
	          (id, user_id, year, title, description, frequency, target_count,
	           start_date, end_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		plan.ID, plan.UserID, plan.Year, plan.Title, plan.Description, plan.Frequency,
		plan.TargetCount, plan.StartDate, plan.EndDate, plan.CreatedAt, plan.UpdatedAt)
	return err
}

func (r *devotionPlanRepository) ByID(userID, id string) (*model.DevotionPlan, error) {
	plan := &model.DevotionPlan{}
	query := `SELECT * FROM devotion_plans WHERE user_id = $1 AND id = $2`

	err := r.db.Get(plan, query, userID, id)
	if err == sql.ErrNoRows {
		return nil, ErrDevotionPlanNotFound
	}

	return plan, err
}

func (r *devotionPlanRepository) ByUserAndYear(userID string, year int) ([]*model.DevotionPlan, error) {
	var plans []*model.DevotionPlan
	query := `SELECT * FROM devotion_plans WHERE user_id = $1 AND year = $2 ORDER BY created_at ASC`

	err := r.db.Select(&plans, query, userID, year)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *devotionPlanRepository) Update(plan *model.DevotionPlan) error {
	query := `UPDATE devotion_plans
	          SET title = $1, description = $2, frequency = $3, target_count = $4,
	              start_date = $5, end_date = $6, updated_at = $7
	          WHERE user_id = $8 AND id = $9`

	result, err := r.db.Exec(query,
		plan.Title, plan.Description, plan.Frequency, plan.TargetCount,
		plan.StartDate, plan.EndDate, plan.UpdatedAt, plan.UserID, plan.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDevotionPlanNotFound
	}

	return nil
}

func (r *devotionPlanRepository) Delete(userID, id string) error {
	query := `DELETE FROM devotion_plans WHERE user_id = $1 AND id = $2`

	result, err := r.db.Exec(query, userID, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDevotionPlanNotFound
	}

	return nil
}
