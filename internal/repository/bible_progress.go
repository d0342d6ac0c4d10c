package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sarangchurch/quiettime/internal/model"
)

var ErrProgressNotFound = errors.New("bible progress not found")

type BibleProgressRepository interface {
	ByKey(userID string, bookID, chapter, year int) (*model.BibleProgress, error)
	ByBook(userID string, bookID, year int) ([]*model.BibleProgress, error)
	LiveByYear(userID string, year int) ([]*model.BibleProgress, error)
	LiveByUser(userID string) ([]*model.BibleProgress, error)
	Insert(progress *model.BibleProgress) error
	SetDeleted(id string, deletedAt *time.Time) error
	BulkMark(inserts []*model.BibleProgress, restoreIDs []string) error
	SoftDeleteBook(userID string, bookID, year int, deletedAt time.Time) error
}

type bibleProgressRepository struct {
	db *sqlx.DB
}

func NewBibleProgressRepository(db *sqlx.DB) BibleProgressRepository {
	return &bibleProgressRepository{db: db}
}

// ByKey returns the row for the logical key, live or tombstoned. A toggle
// must see tombstones to restore them instead of inserting duplicates.
func (r *bibleProgressRepository) ByKey(userID string, bookID, chapter, year int) (*model.BibleProgress, error) {
	progress := &model.BibleProgress{}
	query := `SELECT * FROM user_bible_progress
	          WHERE user_id = $1 AND book_id = $2 AND chapter = $3 AND year = $4`

	err := r.db.Get(progress, query, userID, bookID, chapter, year)
	if err == sql.ErrNoRows {
		return nil, ErrProgressNotFound
	}

	return progress, err
}

func (r *bibleProgressRepository) ByBook(userID string, bookID, year int) ([]*model.BibleProgress, error) {
	var rows []*model.BibleProgress
	query := `SELECT * FROM user_bible_progress
	          WHERE user_id = $1 AND book_id = $2 AND year = $3
	          ORDER BY chapter ASC`

	err := r.db.Select(&rows, query, userID, bookID, year)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *bibleProgressRepository) LiveByYear(userID string, year int) ([]*model.BibleProgress, error) {
	var rows []*model.BibleProgress
	query := `SELECT * FROM user_bible_progress
	          WHERE user_id = $1 AND year = $2 AND deleted_at IS NULL
	          ORDER BY book_id ASC, chapter ASC`

	err := r.db.Select(&rows, query, userID, year)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *bibleProgressRepository) LiveByUser(userID string) ([]*model.BibleProgress, error) {
	var rows []*model.BibleProgress
	query := `SELECT * FROM user_bible_progress
	          WHERE user_id = $1 AND deleted_at IS NULL
	          ORDER BY year ASC, book_id ASC, chapter ASC`

	err := r.db.Select(&rows, query, userID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *bibleProgressRepository) Insert(progress *model.BibleProgress) error {
	query := `INSERT INTO user_bible_progress
	          (id, user_id, book_id, chapter, year, completed_at, deleted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		progress.ID, progress.UserID, progress.BookID, progress.Chapter,
		progress.Year, progress.CompletedAt, progress.DeletedAt)
	return err
}

// SetDeleted tombstones (deletedAt set) or restores (deletedAt nil) one
// row. completed_at is deliberately untouched so the original completion
// timestamp survives a deactivate/reactivate cycle.
func (r *bibleProgressRepository) SetDeleted(id string, deletedAt *time.Time) error {
	query := `UPDATE user_bible_progress SET deleted_at = $1 WHERE id = $2`

	result, err := r.db.Exec(query, deletedAt, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProgressNotFound
	}

	return nil
}

// BulkMark fills in a book in one transaction: new chapters inserted,
// tombstoned ones restored.
func (r *bibleProgressRepository) BulkMark(inserts []*model.BibleProgress, restoreIDs []string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range inserts {
		_, err = tx.Exec(`INSERT INTO user_bible_progress
		          (id, user_id, book_id, chapter, year, completed_at, deleted_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.UserID, p.BookID, p.Chapter, p.Year, p.CompletedAt, p.DeletedAt)
		if err != nil {
			return err
		}
	}

	for _, id := range restoreIDs {
		_, err = tx.Exec(`UPDATE user_bible_progress SET deleted_at = NULL WHERE id = $1`, id)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *bibleProgressRepository) SoftDeleteBook(userID string, bookID, year int, deletedAt time.Time) error {
	query := `UPDATE user_bible_progress SET deleted_at = $1
	          WHERE user_id = $2 AND book_id = $3 AND year = $4 AND deleted_at IS NULL`

	_, err := r.db.Exec(query, deletedAt, userID, bookID, year)
	return err
}
