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

var ErrCheckinNotFound = errors.New("checkin not found")

type CheckinRepository interface {
	ByID(userID, id string) (*model.Checkin, error)
	PrimaryByDate(userID, date string) (*model.Checkin, error)
	ChildOf(parentID string) (*model.Checkin, error)
	Between(userID, from, to string) ([]*model.Checkin, error)
	Dates(userID string) ([]string, error)
	SaveSplit(primary *model.Checkin, child *model.Checkin, isNew bool) error
	Delete(userID, id string) error
	CountByUser(userID string) (int, error)
}

type checkinRepository struct {
	db *sqlx.DB
}

func NewCheckinRepository(db *sqlx.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) ByID(userID, id string) (*model.Checkin, error) {
	checkin := &model.Checkin{}
	query := `SELECT * FROM devotion_checkins WHERE user_id = $1 AND id = $2`

	err := r.db.Get(checkin, query, userID, id)
	if err == sql.ErrNoRows {
		return nil, ErrCheckinNotFound
	}

	return checkin, err
}

// PrimaryByDate returns the parentless record for the given date. Child
// rows are excluded: they are addressable only through their parent.
func (r *checkinRepository) PrimaryByDate(userID, date string) (*model.Checkin, error) {
	checkin := &model.Checkin{}
	query := `SELECT * FROM devotion_checkins
	          WHERE user_id = $1 AND checkin_date = $2 AND parent_id IS NULL
	          ORDER BY created_at ASC LIMIT 1`

	err := r.db.Get(checkin, query, userID, date)
	if err == sql.ErrNoRows {
		return nil, ErrCheckinNotFound
	}

	return checkin, err
}

func (r *checkinRepository) ChildOf(parentID string) (*model.Checkin, error) {
	checkin := &model.Checkin{}
	query := `SELECT * FROM devotion_checkins WHERE parent_id = $1`

	err := r.db.Get(checkin, query, parentID)
	if err == sql.ErrNoRows {
		return nil, ErrCheckinNotFound
	}

	return checkin, err
}

func (r *checkinRepository) Between(userID, from, to string) ([]*model.Checkin, error) {
	var checkins []*model.Checkin
	query := `SELECT * FROM devotion_checkins
	          WHERE user_id = $1 AND checkin_date >= $2 AND checkin_date <= $3
	          ORDER BY checkin_date ASC`

	err := r.db.Select(&checkins, query, userID, from, to)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}

// Dates returns the distinct calendar dates with at least one check-in.
// Child rows count for their own date, which is what keeps a
// midnight-spanning evening in the next day's streak.
func (r *checkinRepository) Dates(userID string) ([]string, error) {
	var dates []string
	query := `SELECT DISTINCT checkin_date FROM devotion_checkins
	          WHERE user_id = $1 ORDER BY checkin_date ASC`

	err := r.db.Select(&dates, query, userID)
	if err != nil {
		return nil, err
	}

	return dates, nil
}

// SaveSplit persists one check-in submission as a single transaction:
// the primary write plus the child upsert (child != nil) or child removal
// (child == nil). Either everything lands or nothing does.
func (r *checkinRepository) SaveSplit(primary *model.Checkin, child *model.Checkin, isNew bool) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if isNew {
		_, err = tx.Exec(`INSERT INTO devotion_checkins
		          (id, user_id, plan_id, parent_id, checkin_date, planned_start_time, planned_end_time,
		           start_time, end_time, duration_minutes, memo, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			primary.ID, primary.UserID, primary.PlanID, nil, primary.CheckinDate,
			primary.PlannedStartTime, primary.PlannedEndTime, primary.StartTime, primary.EndTime,
			primary.DurationMinutes, primary.Memo, primary.CreatedAt, primary.UpdatedAt)
	} else {
		var result sql.Result
		result, err = tx.Exec(`UPDATE devotion_checkins
		          SET plan_id = $1, checkin_date = $2, planned_start_time = $3, planned_end_time = $4,
		              start_time = $5, end_time = $6, duration_minutes = $7, memo = $8, updated_at = $9
		          WHERE user_id = $10 AND id = $11`,
			primary.PlanID, primary.CheckinDate, primary.PlannedStartTime, primary.PlannedEndTime,
			primary.StartTime, primary.EndTime, primary.DurationMinutes, primary.Memo, primary.UpdatedAt,
			primary.UserID, primary.ID)
		if err == nil {
			var rows int64
			rows, err = result.RowsAffected()
			if err == nil && rows == 0 {
				err = ErrCheckinNotFound
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write primary checkin: %w", err)
	}

	existing := &model.Checkin{}
	getErr := tx.Get(existing, `SELECT * FROM devotion_checkins WHERE parent_id = $1`, primary.ID)
	if getErr != nil && getErr != sql.ErrNoRows {
		return getErr
	}
	hasChild := getErr == nil

	switch {
	case child != nil && hasChild:
		_, err = tx.Exec(`UPDATE devotion_checkins
		          SET checkin_date = $1, start_time = $2, end_time = $3,
		              duration_minutes = $4, memo = $5, plan_id = $6, updated_at = $7
		          WHERE id = $8`,
			child.CheckinDate, child.StartTime, child.EndTime,
			child.DurationMinutes, child.Memo, child.PlanID, time.Now(), existing.ID)
	case child != nil:
		now := time.Now()
		_, err = tx.Exec(`INSERT INTO devotion_checkins
		          (id, user_id, plan_id, parent_id, checkin_date, planned_start_time, planned_end_time,
		           start_time, end_time, duration_minutes, memo, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			uuid.New().String(), child.UserID, child.PlanID, child.ParentID, child.CheckinDate,
			nil, nil, child.StartTime, child.EndTime, child.DurationMinutes, child.Memo, now, now)
	case hasChild:
		_, err = tx.Exec(`DELETE FROM devotion_checkins WHERE id = $1`, existing.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to write child checkin: %w", err)
	}

	return tx.Commit()
}

// Delete removes a check-in and, when it is a parent, its child record in
// the same transaction. The FK cascade would catch the child anyway; the
// explicit delete keeps the invariant independent of driver pragmas.
func (r *checkinRepository) Delete(userID, id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM devotion_checkins WHERE parent_id = $1`, id)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM devotion_checkins WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCheckinNotFound
	}

	return tx.Commit()
}

func (r *checkinRepository) CountByUser(userID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM devotion_checkins WHERE user_id = $1`, userID)
	return count, err
}
