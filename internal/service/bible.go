package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sarangchurch/quiettime/internal/bible"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
)

var (
	ErrUnknownBook           = errors.New("unknown bible book")
	ErrInvalidChapter        = errors.New("invalid chapter")
	ErrReadthroughIncomplete = errors.New("readthrough incomplete")
)

// BibleService tracks annual readthrough progress. Chapters toggle
// between read and unread with tombstones, so a chapter unmarked by
// mistake keeps its original completion timestamp when re-marked.
type BibleService struct {
	progressRepository repository.BibleProgressRepository
	profileRepository  repository.ProfileRepository
}

func NewBibleService(
	progressRepository repository.BibleProgressRepository,
	profileRepository repository.ProfileRepository,
) *BibleService {
	return &BibleService{
		progressRepository: progressRepository,
		profileRepository:  profileRepository,
	}
}

func (s *BibleService) validateChapter(bookID, chapter int) (*bible.Book, error) {
	book := bible.ByID(bookID)
	if book == nil {
		return nil, ErrUnknownBook
	}
	if chapter < 1 || chapter > book.Chapters {
		return nil, fmt.Errorf("%w: %s has %d chapters, got chapter %d", ErrInvalidChapter, book.Name, book.Chapters, chapter)
	}
	return book, nil
}

// ToggleChapter flips one chapter's read state. Marking an unseen chapter
// inserts a live row; unmarking tombstones it; re-marking clears the
// tombstone without touching completed_at.
func (s *BibleService) ToggleChapter(userID string, bookID, chapter, year int) (*model.BibleProgress, error) {
	_, err := s.validateChapter(bookID, chapter)
	if err != nil {
		return nil, err
	}

	existing, err := s.progressRepository.ByKey(userID, bookID, chapter, year)
	if err != nil && !errors.Is(err, repository.ErrProgressNotFound) {
		return nil, err
	}

	if errors.Is(err, repository.ErrProgressNotFound) {
		progress := &model.BibleProgress{
			ID:          uuid.New().String(),
			UserID:      userID,
			BookID:      bookID,
			Chapter:     chapter,
			Year:        year,
			CompletedAt: time.Now(),
		}
		err = s.progressRepository.Insert(progress)
		if err != nil {
			return nil, err
		}
		return progress, nil
	}

	if existing.Live() {
		now := time.Now()
		err = s.progressRepository.SetDeleted(existing.ID, &now)
		if err != nil {
			return nil, err
		}
		existing.DeletedAt = &now
		return existing, nil
	}

	err = s.progressRepository.SetDeleted(existing.ID, nil)
	if err != nil {
		return nil, err
	}
	existing.DeletedAt = nil
	return existing, nil
}

// MarkBook toggles a whole book in one transaction. Chapters already
// live are left alone, tombstoned ones are restored, and missing ones
// are inserted. A book that is already fully read has nothing to fill,
// so marking it again unmarks the whole book instead.
func (s *BibleService) MarkBook(userID string, bookID, year int) error {
	book, err := s.validateChapter(bookID, 1)
	if err != nil {
		return err
	}

	existing, err := s.progressRepository.ByBook(userID, bookID, year)
	if err != nil {
		return err
	}

	byChapter := make(map[int]*model.BibleProgress, len(existing))
	for _, p := range existing {
		byChapter[p.Chapter] = p
	}

	now := time.Now()
	var inserts []*model.BibleProgress
	var restoreIDs []string

	for chapter := 1; chapter <= book.Chapters; chapter++ {
		p, ok := byChapter[chapter]
		switch {
		case !ok:
			inserts = append(inserts, &model.BibleProgress{
				ID:          uuid.New().String(),
				UserID:      userID,
				BookID:      bookID,
				Chapter:     chapter,
				Year:        year,
				CompletedAt: now,
			})
		case !p.Live():
			restoreIDs = append(restoreIDs, p.ID)
		}
	}

	// Every chapter live: the toggle flips to a full unmark.
	if len(inserts) == 0 && len(restoreIDs) == 0 {
		return s.progressRepository.SoftDeleteBook(userID, bookID, year, now)
	}

	return s.progressRepository.BulkMark(inserts, restoreIDs)
}

// UnmarkBook tombstones every live chapter of a book.
func (s *BibleService) UnmarkBook(userID string, bookID, year int) error {
	_, err := s.validateChapter(bookID, 1)
	if err != nil {
		return err
	}

	return s.progressRepository.SoftDeleteBook(userID, bookID, year, time.Now())
}

// BookProgress is the per-book slice of the annual grid.
type BookProgress struct {
	Book         bible.Book
	ReadChapters []int
	ReadCount    int
	Complete     bool
}

// YearProgress is the annual readthrough summary.
type YearProgress struct {
	Year          int
	ChaptersRead  int
	TotalChapters int
	Percent       float64
	Books         []BookProgress
}

// Progress assembles the annual grid from the user's live rows.
func (s *BibleService) Progress(userID string, year int) (*YearProgress, error) {
	rows, err := s.progressRepository.LiveByYear(userID, year)
	if err != nil {
		return nil, err
	}

	readByBook := make(map[int][]int)
	for _, p := range rows {
		readByBook[p.BookID] = append(readByBook[p.BookID], p.Chapter)
	}

	progress := &YearProgress{
		Year:          year,
		ChaptersRead:  len(rows),
		TotalChapters: bible.TotalChapters,
		Books:         make([]BookProgress, 0, len(bible.Books)),
	}
	if progress.TotalChapters > 0 {
		progress.Percent = float64(progress.ChaptersRead) / float64(progress.TotalChapters) * 100
	}

	for _, book := range bible.Books {
		read := readByBook[book.ID]
		progress.Books = append(progress.Books, BookProgress{
			Book:         book,
			ReadChapters: read,
			ReadCount:    len(read),
			Complete:     len(read) == book.Chapters,
		})
	}

	return progress, nil
}

// CompleteReadthrough bumps the member's cumulative readthrough count
// once the whole year reaches 1189 chapters.
func (s *BibleService) CompleteReadthrough(userID string, year int) (*model.Profile, error) {
	rows, err := s.progressRepository.LiveByYear(userID, year)
	if err != nil {
		return nil, err
	}
	if len(rows) < bible.TotalChapters {
		return nil, fmt.Errorf("%w: %d of %d chapters", ErrReadthroughIncomplete, len(rows), bible.TotalChapters)
	}

	_, err = s.profileRepository.IncrementReadthrough(userID, 1)
	if err != nil {
		return nil, err
	}

	return s.profileRepository.ByUserID(userID)
}
