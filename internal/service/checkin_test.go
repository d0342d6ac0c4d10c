package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
)

type fakeCheckinRepo struct {
	checkins map[string]*model.Checkin
}

func newFakeCheckinRepo() *fakeCheckinRepo {
	return &fakeCheckinRepo{checkins: make(map[string]*model.Checkin)}
}

func (r *fakeCheckinRepo) ByID(userID, id string) (*model.Checkin, error) {
	c, ok := r.checkins[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrCheckinNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCheckinRepo) PrimaryByDate(userID, date string) (*model.Checkin, error) {
	for _, c := range r.checkins {
		if c.UserID == userID && c.CheckinDate == date && !c.IsChild() {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repository.ErrCheckinNotFound
}

func (r *fakeCheckinRepo) ChildOf(parentID string) (*model.Checkin, error) {
	for _, c := range r.checkins {
		if c.ParentID != nil && *c.ParentID == parentID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repository.ErrCheckinNotFound
}

func (r *fakeCheckinRepo) Between(userID, from, to string) ([]*model.Checkin, error) {
	var out []*model.Checkin
	for _, c := range r.checkins {
		if c.UserID == userID && c.CheckinDate >= from && c.CheckinDate <= to {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeCheckinRepo) Dates(userID string) ([]string, error) {
	seen := make(map[string]struct{})
	var dates []string
	for _, c := range r.checkins {
		if c.UserID != userID {
			continue
		}
		if _, ok := seen[c.CheckinDate]; ok {
			continue
		}
		seen[c.CheckinDate] = struct{}{}
		dates = append(dates, c.CheckinDate)
	}
	return dates, nil
}

func (r *fakeCheckinRepo) SaveSplit(primary *model.Checkin, child *model.Checkin, isNew bool) error {
	if !isNew {
		if _, ok := r.checkins[primary.ID]; !ok {
			return repository.ErrCheckinNotFound
		}
	}
	clone := *primary
	r.checkins[primary.ID] = &clone

	existing, err := r.ChildOf(primary.ID)
	hasChild := err == nil

	switch {
	case child != nil && hasChild:
		updated := *child
		updated.ID = existing.ID
		r.checkins[existing.ID] = &updated
	case child != nil:
		inserted := *child
		inserted.ID = uuid.New().String()
		r.checkins[inserted.ID] = &inserted
	case hasChild:
		delete(r.checkins, existing.ID)
	}
	return nil
}

func (r *fakeCheckinRepo) Delete(userID, id string) error {
	c, ok := r.checkins[id]
	if !ok || c.UserID != userID {
		return repository.ErrCheckinNotFound
	}
	for childID, cc := range r.checkins {
		if cc.ParentID != nil && *cc.ParentID == id {
			delete(r.checkins, childID)
		}
	}
	delete(r.checkins, id)
	return nil
}

func (r *fakeCheckinRepo) CountByUser(userID string) (int, error) {
	n := 0
	for _, c := range r.checkins {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSaveCreatesPlainCheckin(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	saved, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("06:00"),
		EndTime:     strPtr("06:30"),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if *saved.EndTime != "06:30" {
		t.Errorf("end time = %q, want 06:30", *saved.EndTime)
	}
	if *saved.DurationMinutes != 30 {
		t.Errorf("duration = %d, want 30", *saved.DurationMinutes)
	}
	if _, err := repo.ChildOf(saved.ID); !errors.Is(err, repository.ErrCheckinNotFound) {
		t.Error("plain checkin must not have a child")
	}
}

func TestSaveSplitsMidnightSpan(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	saved, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("23:30"),
		EndTime:     strPtr("00:45"),
		Memo:        strPtr("late night"),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if *saved.EndTime != model.EndOfDay {
		t.Errorf("primary end = %q, want %q", *saved.EndTime, model.EndOfDay)
	}

	child, err := repo.ChildOf(saved.ID)
	if err != nil {
		t.Fatalf("expected child record: %v", err)
	}
	if child.CheckinDate != "2025-03-11" {
		t.Errorf("child date = %q, want 2025-03-11", child.CheckinDate)
	}
	if *child.StartTime != "00:00" || *child.EndTime != "00:45" {
		t.Errorf("child times = %q-%q, want 00:00-00:45", *child.StartTime, *child.EndTime)
	}
	if *child.Memo != "late night" {
		t.Errorf("child memo = %q, want carried over", *child.Memo)
	}
	if *saved.DurationMinutes != 75 {
		t.Errorf("duration = %d, want 75", *saved.DurationMinutes)
	}
}

func TestSaveEditRemovesChildWhenSpanGone(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	saved, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("23:30"),
		EndTime:     strPtr("00:45"),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = svc.Save("u1", &saved.ID, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("21:00"),
		EndTime:     strPtr("22:00"),
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	if _, err := repo.ChildOf(saved.ID); !errors.Is(err, repository.ErrCheckinNotFound) {
		t.Error("child must be removed once the interval no longer spans midnight")
	}

	got, err := repo.ByID("u1", saved.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if *got.EndTime != "22:00" {
		t.Errorf("end = %q, want 22:00", *got.EndTime)
	}
}

func TestSaveEditKeepsSingleChildAcrossResubmits(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	saved, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("23:30"),
		EndTime:     strPtr("00:45"),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// still spanning, different remainder
	_, err = svc.Save("u1", &saved.ID, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("23:00"),
		EndTime:     strPtr("01:15"),
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	count, _ := repo.CountByUser("u1")
	if count != 2 {
		t.Fatalf("record count = %d, want 2 (primary + one child)", count)
	}

	child, err := repo.ChildOf(saved.ID)
	if err != nil {
		t.Fatalf("ChildOf: %v", err)
	}
	if *child.EndTime != "01:15" {
		t.Errorf("child end = %q, want 01:15", *child.EndTime)
	}
}

func TestSaveWithoutIDUpdatesExistingDate(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	first, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("06:00"),
		EndTime:     strPtr("06:30"),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	second, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("07:00"),
		EndTime:     strPtr("07:45"),
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	if second.ID != first.ID {
		t.Error("same-day resubmit must update the existing record, not create a second one")
	}
	count, _ := repo.CountByUser("u1")
	if count != 1 {
		t.Errorf("record count = %d, want 1", count)
	}
}

func TestSaveRejectsChildEdit(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	saved, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("23:30"),
		EndTime:     strPtr("00:45"),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	child, err := repo.ChildOf(saved.ID)
	if err != nil {
		t.Fatalf("ChildOf: %v", err)
	}

	_, err = svc.Save("u1", &child.ID, CheckinInput{
		CheckinDate: "2025-03-11",
		StartTime:   strPtr("00:00"),
		EndTime:     strPtr("01:00"),
	})
	if !errors.Is(err, ErrChildCheckinEdit) {
		t.Errorf("err = %v, want ErrChildCheckinEdit", err)
	}

	if err := svc.Delete("u1", child.ID); !errors.Is(err, ErrChildCheckinEdit) {
		t.Errorf("delete err = %v, want ErrChildCheckinEdit", err)
	}
}

func TestSaveRejectsEndOfDaySentinelInput(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	_, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("23:00"),
		EndTime:     strPtr("24:00"),
	})
	if !errors.Is(err, ErrEndOfDayInput) {
		t.Errorf("err = %v, want ErrEndOfDayInput", err)
	}
}

func TestDeleteRemovesChildWithParent(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	saved, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("23:30"),
		EndTime:     strPtr("00:45"),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	err = svc.Delete("u1", saved.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}

	count, _ := repo.CountByUser("u1")
	if count != 0 {
		t.Errorf("record count = %d, want 0", count)
	}
}

func TestStatsCountsChildDates(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	// evening of the 10th spilling into the 11th
	_, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate: "2025-03-10",
		StartTime:   strPtr("23:30"),
		EndTime:     strPtr("00:45"),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	stats, err := svc.Stats("u1", "2025-03-11")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2 (child date counts)", stats.CurrentStreak)
	}
	if stats.Total != 2 {
		t.Errorf("total = %d, want 2", stats.Total)
	}
}

func TestSaveExplicitDurationWins(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := NewCheckinService(repo)

	saved, err := svc.Save("u1", nil, CheckinInput{
		CheckinDate:     "2025-03-10",
		StartTime:       strPtr("06:00"),
		EndTime:         strPtr("07:00"),
		DurationMinutes: intPtr(45),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if *saved.DurationMinutes != 45 {
		t.Errorf("duration = %d, want the submitted 45", *saved.DurationMinutes)
	}
}
