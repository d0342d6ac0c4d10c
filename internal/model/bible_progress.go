package model

import "time"

// BibleProgress marks one (book, chapter, year) as read. Rows are never
// hard-deleted on toggle: DeletedAt set means tombstoned, cleared means
// live, and CompletedAt keeps its original value across the cycle.
type BibleProgress struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	BookID      int        `db:"book_id"`
	Chapter     int        `db:"chapter"`
	Year        int        `db:"year"`
	CompletedAt time.Time  `db:"completed_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (p *BibleProgress) Live() bool {
	return p.DeletedAt == nil
}
