package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
)

type fakeReadingRepo struct {
	templates   map[string]*model.ReadingTemplate
	items       map[string][]*model.ReadingTemplateItem
	plans       map[string]*model.ReadingPlan
	completions map[string]*model.ReadingCompletion
}

func newFakeReadingRepo() *fakeReadingRepo {
	return &fakeReadingRepo{
		templates:   make(map[string]*model.ReadingTemplate),
		items:       make(map[string][]*model.ReadingTemplateItem),
		plans:       make(map[string]*model.ReadingPlan),
		completions: make(map[string]*model.ReadingCompletion),
	}
}

func (r *fakeReadingRepo) CreateTemplate(template *model.ReadingTemplate, items []*model.ReadingTemplateItem) error {
	clone := *template
	r.templates[template.ID] = &clone
	for _, item := range items {
		c := *item
		c.ID = uuid.New().String()
		r.items[template.ID] = append(r.items[template.ID], &c)
	}
	return nil
}

func (r *fakeReadingRepo) Templates() ([]*model.ReadingTemplate, error) {
	var out []*model.ReadingTemplate
	for _, t := range r.templates {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeReadingRepo) TemplateByID(id string) (*model.ReadingTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, repository.ErrTemplateNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeReadingRepo) TemplateItems(templateID string) ([]*model.ReadingTemplateItem, error) {
	return r.items[templateID], nil
}

func (r *fakeReadingRepo) CountTemplateItems(templateID string) (int, error) {
	return len(r.items[templateID]), nil
}

func (r *fakeReadingRepo) CreatePlan(plan *model.ReadingPlan) error {
	for _, p := range r.plans {
		if p.UserID == plan.UserID && p.TemplateID == plan.TemplateID {
			return repository.ErrDuplicatePlan
		}
	}
	clone := *plan
	r.plans[plan.ID] = &clone
	return nil
}

func (r *fakeReadingRepo) PlanByID(userID, id string) (*model.ReadingPlan, error) {
	p, ok := r.plans[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrReadingPlanNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeReadingRepo) PlansByUser(userID string) ([]*model.ReadingPlan, error) {
	var out []*model.ReadingPlan
	for _, p := range r.plans {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeReadingRepo) UpdatePlan(plan *model.ReadingPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrReadingPlanNotFound
	}
	clone := *plan
	r.plans[plan.ID] = &clone
	return nil
}

func (r *fakeReadingRepo) CreateCompletion(completion *model.ReadingCompletion) error {
	clone := *completion
	r.completions[completion.ID] = &clone
	return nil
}

func (r *fakeReadingRepo) DeleteCompletion(userID, planID, date string) error {
	for id, c := range r.completions {
		if c.UserID == userID && c.PlanID == planID && c.Date == date {
			delete(r.completions, id)
			return nil
		}
	}
	return repository.ErrCompletionNotFound
}

func (r *fakeReadingRepo) Completions(userID, planID string) ([]*model.ReadingCompletion, error) {
	var out []*model.ReadingCompletion
	for _, c := range r.completions {
		if c.UserID == userID && c.PlanID == planID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeReadingRepo) CountCompletions(planID string) (int, error) {
	n := 0
	for _, c := range r.completions {
		if c.PlanID == planID {
			n++
		}
	}
	return n, nil
}

func TestSeedTemplateCoversYearAndBible(t *testing.T) {
	repo := newFakeReadingRepo()
	svc := NewReadingService(repo)

	tests := []struct {
		year     int
		wantDays int
	}{
		{2025, 365},
		{2024, 366},
	}

	for _, tt := range tests {
		template, err := svc.SeedTemplate("admin", tt.year, "", nil)
		if err != nil {
			t.Fatalf("SeedTemplate(%d): %v", tt.year, err)
		}

		items := repo.items[template.ID]
		if len(items) != tt.wantDays {
			t.Errorf("year %d: items = %d, want %d", tt.year, len(items), tt.wantDays)
		}

		if items[0].Date != time.Date(tt.year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02") {
			t.Errorf("year %d: first date = %s", tt.year, items[0].Date)
		}
		last := items[len(items)-1]
		if last.Date[5:] != "12-31" {
			t.Errorf("year %d: last date = %s, want Dec 31", tt.year, last.Date)
		}
		if last.DayNumber != tt.wantDays {
			t.Errorf("year %d: last day number = %d, want %d", tt.year, last.DayNumber, tt.wantDays)
		}

		for i, item := range items {
			if item.Passages == "" {
				t.Fatalf("year %d: day %d has no passage", tt.year, i+1)
			}
		}
		if !strings.HasPrefix(last.Passages, "Revelation") || !strings.HasSuffix(last.Passages, "22") {
			t.Errorf("year %d: last passage = %q, want the end of Revelation", tt.year, last.Passages)
		}
	}
}

func TestStartPlanRejectsDuplicate(t *testing.T) {
	repo := newFakeReadingRepo()
	svc := NewReadingService(repo)

	template, err := svc.SeedTemplate("admin", 2025, "Test", nil)
	if err != nil {
		t.Fatalf("SeedTemplate: %v", err)
	}

	plan, err := svc.StartPlan("u1", template.ID)
	if err != nil {
		t.Fatalf("StartPlan: %v", err)
	}
	if plan.Status != model.ReadingPlanInProgress {
		t.Errorf("status = %s, want in_progress", plan.Status)
	}

	_, err = svc.StartPlan("u1", template.ID)
	if !errors.Is(err, repository.ErrDuplicatePlan) {
		t.Errorf("err = %v, want ErrDuplicatePlan", err)
	}
}

func TestCompleteDateClosesFullPlan(t *testing.T) {
	repo := newFakeReadingRepo()
	svc := NewReadingService(repo)

	// tiny hand-built template, two days
	template := &model.ReadingTemplate{ID: uuid.New().String(), Year: 2025, Title: "Mini"}
	err := repo.CreateTemplate(template, []*model.ReadingTemplateItem{
		{TemplateID: template.ID, Date: "2025-01-01", DayNumber: 1, Passages: "Genesis 1"},
		{TemplateID: template.ID, Date: "2025-01-02", DayNumber: 2, Passages: "Genesis 2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	plan, err := svc.StartPlan("u1", template.ID)
	if err != nil {
		t.Fatalf("StartPlan: %v", err)
	}

	_, err = svc.CompleteDate("u1", plan.ID, "2025-01-01", nil)
	if err != nil {
		t.Fatalf("CompleteDate: %v", err)
	}

	progress, err := svc.Progress("u1", plan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if progress.Percent != 50 {
		t.Errorf("percent = %v, want 50", progress.Percent)
	}
	if progress.Plan.Status != model.ReadingPlanInProgress {
		t.Errorf("status = %s, want in_progress", progress.Plan.Status)
	}

	_, err = svc.CompleteDate("u1", plan.ID, "2025-01-02", nil)
	if err != nil {
		t.Fatalf("CompleteDate: %v", err)
	}

	got, err := repo.PlanByID("u1", plan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.ReadingPlanCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("completed_at must be set on the closed plan")
	}
}

func TestUncompleteDateReopensPlan(t *testing.T) {
	repo := newFakeReadingRepo()
	svc := NewReadingService(repo)

	template := &model.ReadingTemplate{ID: uuid.New().String(), Year: 2025, Title: "Mini"}
	err := repo.CreateTemplate(template, []*model.ReadingTemplateItem{
		{TemplateID: template.ID, Date: "2025-01-01", DayNumber: 1, Passages: "Genesis 1"},
	})
	if err != nil {
		t.Fatal(err)
	}

	plan, err := svc.StartPlan("u1", template.ID)
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.CompleteDate("u1", plan.ID, "2025-01-01", nil)
	if err != nil {
		t.Fatal(err)
	}

	got, _ := repo.PlanByID("u1", plan.ID)
	if got.Status != model.ReadingPlanCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}

	err = svc.UncompleteDate("u1", plan.ID, "2025-01-01")
	if err != nil {
		t.Fatalf("UncompleteDate: %v", err)
	}

	got, _ = repo.PlanByID("u1", plan.ID)
	if got.Status != model.ReadingPlanInProgress {
		t.Errorf("status = %s, want reopened in_progress", got.Status)
	}
	if got.CompletedAt != nil {
		t.Error("completed_at must be cleared on reopen")
	}
}

func TestCompleteDateRejectsInactivePlan(t *testing.T) {
	repo := newFakeReadingRepo()
	svc := NewReadingService(repo)

	template := &model.ReadingTemplate{ID: uuid.New().String(), Year: 2025, Title: "Mini"}
	err := repo.CreateTemplate(template, []*model.ReadingTemplateItem{
		{TemplateID: template.ID, Date: "2025-01-01", DayNumber: 1, Passages: "Genesis 1"},
	})
	if err != nil {
		t.Fatal(err)
	}

	plan, err := svc.StartPlan("u1", template.ID)
	if err != nil {
		t.Fatal(err)
	}
	err = svc.AbandonPlan("u1", plan.ID)
	if err != nil {
		t.Fatalf("AbandonPlan: %v", err)
	}

	_, err = svc.CompleteDate("u1", plan.ID, "2025-01-01", nil)
	if !errors.Is(err, ErrPlanNotActive) {
		t.Errorf("err = %v, want ErrPlanNotActive", err)
	}
}
