package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sarangchurch/quiettime/internal/model"
)

type ProfileRepository interface {
	Create(profile *model.Profile) error
	ByUserID(userID string) (*model.Profile, error)
	Update(profile *model.Profile) error
	IncrementReadthrough(userID string, by int) (int, error)
	Members(search string, limit, offset int) ([]*model.Member, error)
	CountMembers(search string) (int, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	query := `INSERT INTO user_profiles
	          (id, user_id, full_name, role, share_with_leaders, cumulative_readthrough_count,
	           is_locked, first_login, last_password_change, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		profile.ID, profile.UserID, profile.FullName, profile.Role, profile.ShareWithLeaders,
		profile.ReadthroughCount, profile.IsLocked, profile.FirstLogin, profile.LastPasswordChange,
		profile.CreatedAt, profile.UpdatedAt)
	return err
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	query := `SELECT * FROM user_profiles WHERE user_id = $1`

	err := r.db.Get(profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}

	return profile, err
}

func (r *profileRepository) Update(profile *model.Profile) error {
	query := `UPDATE user_profiles
	          SET full_name = $1, role = $2, share_with_leaders = $3,
	              cumulative_readthrough_count = $4, is_locked = $5, first_login = $6,
	              last_password_change = $7, updated_at = $8
	          WHERE user_id = $9`

	result, err := r.db.Exec(query,
		profile.FullName, profile.Role, profile.ShareWithLeaders,
		profile.ReadthroughCount, profile.IsLocked, profile.FirstLogin,
		profile.LastPasswordChange, profile.UpdatedAt, profile.UserID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// IncrementReadthrough bumps the cumulative readthrough counter atomically
// and returns the new value.
func (r *profileRepository) IncrementReadthrough(userID string, by int) (int, error) {
	query := `UPDATE user_profiles
	          SET cumulative_readthrough_count = cumulative_readthrough_count + $1
	          WHERE user_id = $2`

	result, err := r.db.Exec(query, by, userID)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrProfileNotFound
	}

	var count int
	err = r.db.Get(&count, `SELECT cumulative_readthrough_count FROM user_profiles WHERE user_id = $1`, userID)
	return count, err
}

// Members returns one page of accounts with their check-in aggregates,
// ordered by signup time. search matches name or email substrings.
func (r *profileRepository) Members(search string, limit, offset int) ([]*model.Member, error) {
	var members []*model.Member
	query := `SELECT p.*, u.email,
	                 COUNT(c.id) AS checkin_count,
	                 MAX(c.checkin_date) AS last_checkin
	          FROM user_profiles p
	          JOIN users u ON u.id = p.user_id
	          LEFT JOIN devotion_checkins c ON c.user_id = p.user_id
	          WHERE $1 = '' OR p.full_name LIKE $2 OR u.email LIKE $2
	          GROUP BY p.id, u.email
	          ORDER BY p.created_at ASC
	          LIMIT $3 OFFSET $4`

	pattern := fmt.Sprintf("%%%s%%", search)
	err := r.db.Select(&members, query, search, pattern, limit, offset)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *profileRepository) CountMembers(search string) (int, error) {
	var count int
	query := `SELECT COUNT(*)
	          FROM user_profiles p
	          JOIN users u ON u.id = p.user_id
	          WHERE $1 = '' OR p.full_name LIKE $2 OR u.email LIKE $2`

	pattern := fmt.Sprintf("%%%s%%", search)
	err := r.db.Get(&count, query, search, pattern)
	return count, err
}
