package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sarangchurch/quiettime/internal/bible"
	"github.com/sarangchurch/quiettime/internal/devotion"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/validation"
)

var ErrPlanNotActive = errors.New("reading plan is not in progress")

// ReadingService manages the shared annual reading plan: admin-seeded
// templates with one passage per calendar day, per-member plans started
// from a template, and per-day completions.
type ReadingService struct {
	readingRepository repository.ReadingRepository
}

func NewReadingService(readingRepository repository.ReadingRepository) *ReadingService {
	return &ReadingService{readingRepository: readingRepository}
}

// chapterRef is a cursor into the canonical book order.
type chapterRef struct {
	bookIdx int
	chapter int
}

func (c chapterRef) label() string {
	return fmt.Sprintf("%s %d", bible.Books[c.bookIdx].Name, c.chapter)
}

func (c chapterRef) advance(n int) chapterRef {
	for n > 0 {
		remaining := bible.Books[c.bookIdx].Chapters - c.chapter
		if n <= remaining {
			c.chapter += n
			return c
		}
		n -= remaining + 1
		c.bookIdx++
		c.chapter = 1
	}
	return c
}

func passageLabel(start, end chapterRef) string {
	if start == end {
		return start.label()
	}
	if start.bookIdx == end.bookIdx {
		return fmt.Sprintf("%s %d-%d", bible.Books[start.bookIdx].Name, start.chapter, end.chapter)
	}
	return fmt.Sprintf("%s - %s", start.label(), end.label())
}

// SeedTemplate creates the template for a year with one generated item
// per calendar day, spreading the whole Bible's chapters evenly over the
// year in canonical book order.
func (s *ReadingService) SeedTemplate(createdBy string, year int, title string, description *string) (*model.ReadingTemplate, error) {
	if title == "" {
		title = fmt.Sprintf("%d One-Year Bible Reading", year)
	}

	now := time.Now()
	template := &model.ReadingTemplate{
		ID:          uuid.New().String(),
		Year:        year,
		Title:       title,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	first := fmt.Sprintf("%04d-01-01", year)
	last := fmt.Sprintf("%04d-12-31", year)
	days := devotion.DaysBetween(first, last) + 1

	items := make([]*model.ReadingTemplateItem, 0, days)
	cursor := chapterRef{bookIdx: 0, chapter: 1}
	remaining := bible.TotalChapters
	date := first

	for day := 1; day <= days; day++ {
		count := remaining / (days - day + 1)
		if remaining%(days-day+1) != 0 {
			count++
		}
		if count < 1 {
			count = 1
		}
		if count > remaining {
			count = remaining
		}

		end := cursor.advance(count - 1)
		items = append(items, &model.ReadingTemplateItem{
			TemplateID: template.ID,
			Date:       date,
			DayNumber:  day,
			Passages:   passageLabel(cursor, end),
		})

		cursor = end.advance(1)
		remaining -= count
		date = devotion.NextDay(date)
	}

	err := s.readingRepository.CreateTemplate(template, items)
	if err != nil {
		return nil, err
	}

	return template, nil
}

func (s *ReadingService) Templates() ([]*model.ReadingTemplate, error) {
	return s.readingRepository.Templates()
}

func (s *ReadingService) TemplateItems(templateID string) ([]*model.ReadingTemplateItem, error) {
	_, err := s.readingRepository.TemplateByID(templateID)
	if err != nil {
		return nil, err
	}
	return s.readingRepository.TemplateItems(templateID)
}

// StartPlan enrolls the member in a template. One plan per template per
// member; the unique index turns a repeat into ErrDuplicatePlan.
func (s *ReadingService) StartPlan(userID, templateID string) (*model.ReadingPlan, error) {
	template, err := s.readingRepository.TemplateByID(templateID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan := &model.ReadingPlan{
		ID:         uuid.New().String(),
		UserID:     userID,
		TemplateID: template.ID,
		Year:       template.Year,
		Status:     model.ReadingPlanInProgress,
		StartedAt:  &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.readingRepository.CreatePlan(plan)
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// CompleteDate marks one calendar day of the plan as read and closes the
// plan when every day is done.
func (s *ReadingService) CompleteDate(userID, planID, date string, memo *string) (*model.ReadingCompletion, error) {
	err := validation.ValidateDate(date)
	if err != nil {
		return nil, err
	}

	plan, err := s.readingRepository.PlanByID(userID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status != model.ReadingPlanInProgress {
		return nil, ErrPlanNotActive
	}

	completion := &model.ReadingCompletion{
		ID:          uuid.New().String(),
		UserID:      userID,
		PlanID:      planID,
		Date:        date,
		CompletedAt: time.Now(),
		Memo:        memo,
	}

	err = s.readingRepository.CreateCompletion(completion)
	if err != nil {
		return nil, err
	}

	err = s.closeIfComplete(plan)
	if err != nil {
		return nil, err
	}

	return completion, nil
}

// UncompleteDate undoes a day. A plan that had been closed reopens.
func (s *ReadingService) UncompleteDate(userID, planID, date string) error {
	plan, err := s.readingRepository.PlanByID(userID, planID)
	if err != nil {
		return err
	}

	err = s.readingRepository.DeleteCompletion(userID, planID, date)
	if err != nil {
		return err
	}

	if plan.Status == model.ReadingPlanCompleted {
		plan.Status = model.ReadingPlanInProgress
		plan.CompletedAt = nil
		plan.UpdatedAt = time.Now()
		return s.readingRepository.UpdatePlan(plan)
	}

	return nil
}

func (s *ReadingService) closeIfComplete(plan *model.ReadingPlan) error {
	total, err := s.readingRepository.CountTemplateItems(plan.TemplateID)
	if err != nil {
		return err
	}

	done, err := s.readingRepository.CountCompletions(plan.ID)
	if err != nil {
		return err
	}

	if total == 0 || done < total {
		return nil
	}

	now := time.Now()
	plan.Status = model.ReadingPlanCompleted
	plan.CompletedAt = &now
	plan.UpdatedAt = now
	return s.readingRepository.UpdatePlan(plan)
}

// PlanProgress is the member-facing view of one plan.
type PlanProgress struct {
	Plan        *model.ReadingPlan
	TotalDays   int
	DoneDays    int
	Percent     float64
	Completions []*model.ReadingCompletion
}

func (s *ReadingService) Progress(userID, planID string) (*PlanProgress, error) {
	plan, err := s.readingRepository.PlanByID(userID, planID)
	if err != nil {
		return nil, err
	}

	total, err := s.readingRepository.CountTemplateItems(plan.TemplateID)
	if err != nil {
		return nil, err
	}

	completions, err := s.readingRepository.Completions(userID, planID)
	if err != nil {
		return nil, err
	}

	progress := &PlanProgress{
		Plan:        plan,
		TotalDays:   total,
		DoneDays:    len(completions),
		Completions: completions,
	}
	if total > 0 {
		progress.Percent = float64(len(completions)) / float64(total) * 100
	}

	return progress, nil
}

func (s *ReadingService) Plans(userID string) ([]*model.ReadingPlan, error) {
	return s.readingRepository.PlansByUser(userID)
}

// AbandonPlan lets a member stop a plan without deleting its history.
func (s *ReadingService) AbandonPlan(userID, planID string) error {
	plan, err := s.readingRepository.PlanByID(userID, planID)
	if err != nil {
		return err
	}
	if plan.Status != model.ReadingPlanInProgress {
		return ErrPlanNotActive
	}

	plan.Status = model.ReadingPlanAbandoned
	plan.UpdatedAt = time.Now()
	return s.readingRepository.UpdatePlan(plan)
}
