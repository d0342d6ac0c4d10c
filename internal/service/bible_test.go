package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sarangchurch/quiettime/internal/bible"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
)

type fakeProgressRepo struct {
	rows map[string]*model.BibleProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[string]*model.BibleProgress)}
}

func (r *fakeProgressRepo) ByKey(userID string, bookID, chapter, year int) (*model.BibleProgress, error) {
	for _, p := range r.rows {
		if p.UserID == userID && p.BookID == bookID && p.Chapter == chapter && p.Year == year {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrProgressNotFound
}

func (r *fakeProgressRepo) ByBook(userID string, bookID, year int) ([]*model.BibleProgress, error) {
	var out []*model.BibleProgress
	for _, p := range r.rows {
		if p.UserID == userID && p.BookID == bookID && p.Year == year {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) LiveByYear(userID string, year int) ([]*model.BibleProgress, error) {
	var out []*model.BibleProgress
	for _, p := range r.rows {
		if p.UserID == userID && p.Year == year && p.Live() {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) LiveByUser(userID string) ([]*model.BibleProgress, error) {
	var out []*model.BibleProgress
	for _, p := range r.rows {
		if p.UserID == userID && p.Live() {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) Insert(progress *model.BibleProgress) error {
	clone := *progress
	r.rows[progress.ID] = &clone
	return nil
}

func (r *fakeProgressRepo) SetDeleted(id string, deletedAt *time.Time) error {
	p, ok := r.rows[id]
	if !ok {
		return repository.ErrProgressNotFound
	}
	p.DeletedAt = deletedAt
	return nil
}

func (r *fakeProgressRepo) BulkMark(inserts []*model.BibleProgress, restoreIDs []string) error {
	for _, p := range inserts {
		clone := *p
		r.rows[p.ID] = &clone
	}
	for _, id := range restoreIDs {
		if p, ok := r.rows[id]; ok {
			p.DeletedAt = nil
		}
	}
	return nil
}

func (r *fakeProgressRepo) SoftDeleteBook(userID string, bookID, year int, deletedAt time.Time) error {
	for _, p := range r.rows {
		if p.UserID == userID && p.BookID == bookID && p.Year == year && p.Live() {
			at := deletedAt
			p.DeletedAt = &at
		}
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (r *fakeProfileRepo) Create(profile *model.Profile) error {
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) ByUserID(userID string) (*model.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) Update(profile *model.Profile) error {
	if _, ok := r.profiles[profile.UserID]; !ok {
		return repository.ErrProfileNotFound
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) IncrementReadthrough(userID string, by int) (int, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return 0, repository.ErrProfileNotFound
	}
	p.ReadthroughCount += by
	return p.ReadthroughCount, nil
}

func (r *fakeProfileRepo) Members(search string, limit, offset int) ([]*model.Member, error) {
	return nil, nil
}

func (r *fakeProfileRepo) CountMembers(search string) (int, error) {
	return len(r.profiles), nil
}

func newBibleService() (*BibleService, *fakeProgressRepo, *fakeProfileRepo) {
	progress := newFakeProgressRepo()
	profiles := newFakeProfileRepo()
	return NewBibleService(progress, profiles), progress, profiles
}

func TestToggleChapterInsertsLiveRow(t *testing.T) {
	svc, _, _ := newBibleService()

	p, err := svc.ToggleChapter("u1", 1, 3, 2025)
	if err != nil {
		t.Fatalf("ToggleChapter: %v", err)
	}
	if !p.Live() {
		t.Error("first toggle must produce a live row")
	}
	if p.CompletedAt.IsZero() {
		t.Error("completed_at must be set")
	}
}

func TestToggleChapterPreservesCompletedAt(t *testing.T) {
	svc, _, _ := newBibleService()

	first, err := svc.ToggleChapter("u1", 1, 3, 2025)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}

	off, err := svc.ToggleChapter("u1", 1, 3, 2025)
	if err != nil {
		t.Fatalf("unmark: %v", err)
	}
	if off.Live() {
		t.Fatal("second toggle must tombstone the row")
	}

	on, err := svc.ToggleChapter("u1", 1, 3, 2025)
	if err != nil {
		t.Fatalf("remark: %v", err)
	}
	if !on.Live() {
		t.Fatal("third toggle must restore the row")
	}
	if !on.CompletedAt.Equal(first.CompletedAt) {
		t.Errorf("completed_at changed across the cycle: %v != %v", on.CompletedAt, first.CompletedAt)
	}
	if on.ID != first.ID {
		t.Error("restore must reuse the original row, not insert a new one")
	}
}

func TestToggleChapterRejectsBadInput(t *testing.T) {
	svc, _, _ := newBibleService()

	if _, err := svc.ToggleChapter("u1", 99, 1, 2025); err == nil {
		t.Error("unknown book must be rejected")
	}
	if _, err := svc.ToggleChapter("u1", 1, 51, 2025); err == nil {
		t.Error("Genesis has 50 chapters; 51 must be rejected")
	}
	if _, err := svc.ToggleChapter("u1", 1, 0, 2025); err == nil {
		t.Error("chapter 0 must be rejected")
	}
}

func TestMarkBookFillsAndRestores(t *testing.T) {
	svc, progress, _ := newBibleService()

	// 1 John: chapter 2 live, chapter 3 tombstoned, the rest missing
	_, err := svc.ToggleChapter("u1", 62, 2, 2025)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}

	deleted := time.Now()
	tombstoned := &model.BibleProgress{
		ID:          uuid.New().String(),
		UserID:      "u1",
		BookID:      62,
		Chapter:     3,
		Year:        2025,
		CompletedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		DeletedAt:   &deleted,
	}
	progress.rows[tombstoned.ID] = tombstoned

	err = svc.MarkBook("u1", 62, 2025)
	if err != nil {
		t.Fatalf("MarkBook: %v", err)
	}

	book := bible.ByID(62)
	live, _ := progress.LiveByYear("u1", 2025)
	if len(live) != book.Chapters {
		t.Fatalf("live rows = %d, want %d", len(live), book.Chapters)
	}

	restored, err := progress.ByKey("u1", 62, 3, 2025)
	if err != nil {
		t.Fatalf("ByKey: %v", err)
	}
	if restored.ID != tombstoned.ID {
		t.Error("restore must reuse the tombstoned row")
	}
	if !restored.CompletedAt.Equal(tombstoned.CompletedAt) {
		t.Error("restore must not touch completed_at")
	}
}

func TestMarkBookOnFullBookUnmarksIt(t *testing.T) {
	svc, progress, _ := newBibleService()

	err := svc.MarkBook("u1", 62, 2025)
	if err != nil {
		t.Fatalf("MarkBook: %v", err)
	}

	book := bible.ByID(62)
	live, _ := progress.LiveByYear("u1", 2025)
	if len(live) != book.Chapters {
		t.Fatalf("live rows = %d, want %d", len(live), book.Chapters)
	}

	// marking an already fully-read book toggles it off
	err = svc.MarkBook("u1", 62, 2025)
	if err != nil {
		t.Fatalf("MarkBook on full book: %v", err)
	}

	live, _ = progress.LiveByYear("u1", 2025)
	if len(live) != 0 {
		t.Fatalf("live rows after toggle-off = %d, want 0", len(live))
	}
	all, _ := progress.ByBook("u1", 62, 2025)
	if len(all) != book.Chapters {
		t.Errorf("stored rows = %d, want %d", len(all), book.Chapters)
	}

	// a third mark restores the tombstones rather than inserting
	err = svc.MarkBook("u1", 62, 2025)
	if err != nil {
		t.Fatalf("MarkBook after toggle-off: %v", err)
	}
	live, _ = progress.LiveByYear("u1", 2025)
	if len(live) != book.Chapters {
		t.Errorf("live rows after re-mark = %d, want %d", len(live), book.Chapters)
	}
	all, _ = progress.ByBook("u1", 62, 2025)
	if len(all) != book.Chapters {
		t.Errorf("re-mark must reuse tombstoned rows, stored = %d, want %d", len(all), book.Chapters)
	}
}

func TestUnmarkBookTombstonesLiveRows(t *testing.T) {
	svc, progress, _ := newBibleService()

	err := svc.MarkBook("u1", 1, 2025)
	if err != nil {
		t.Fatalf("MarkBook: %v", err)
	}

	err = svc.UnmarkBook("u1", 1, 2025)
	if err != nil {
		t.Fatalf("UnmarkBook: %v", err)
	}

	live, _ := progress.LiveByYear("u1", 2025)
	if len(live) != 0 {
		t.Errorf("live rows = %d, want 0", len(live))
	}
	// tombstones survive for later restore
	all, _ := progress.ByBook("u1", 1, 2025)
	if len(all) != bible.ByID(1).Chapters {
		t.Errorf("stored rows = %d, want %d", len(all), bible.ByID(1).Chapters)
	}
}

func TestProgressCountsOnlyLiveRows(t *testing.T) {
	svc, _, _ := newBibleService()

	if _, err := svc.ToggleChapter("u1", 1, 1, 2025); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ToggleChapter("u1", 1, 2, 2025); err != nil {
		t.Fatal(err)
	}
	// unmark chapter 2
	if _, err := svc.ToggleChapter("u1", 1, 2, 2025); err != nil {
		t.Fatal(err)
	}

	yp, err := svc.Progress("u1", 2025)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if yp.ChaptersRead != 1 {
		t.Errorf("chapters read = %d, want 1", yp.ChaptersRead)
	}
	if yp.TotalChapters != bible.TotalChapters {
		t.Errorf("total = %d, want %d", yp.TotalChapters, bible.TotalChapters)
	}
	if yp.Books[0].ReadCount != 1 {
		t.Errorf("genesis read count = %d, want 1", yp.Books[0].ReadCount)
	}
}

func TestCompleteReadthroughRequiresFullYear(t *testing.T) {
	svc, progress, profiles := newBibleService()

	err := profiles.Create(&model.Profile{UserID: "u1", Role: model.RoleMember})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.CompleteReadthrough("u1", 2025); err == nil {
		t.Fatal("incomplete year must not bump the readthrough count")
	}

	now := time.Now()
	for _, book := range bible.Books {
		for ch := 1; ch <= book.Chapters; ch++ {
			id := uuid.New().String()
			progress.rows[id] = &model.BibleProgress{
				ID: id, UserID: "u1", BookID: book.ID, Chapter: ch, Year: 2025, CompletedAt: now,
			}
		}
	}

	profile, err := svc.CompleteReadthrough("u1", 2025)
	if err != nil {
		t.Fatalf("CompleteReadthrough: %v", err)
	}
	if profile.ReadthroughCount != 1 {
		t.Errorf("readthrough count = %d, want 1", profile.ReadthroughCount)
	}
}
