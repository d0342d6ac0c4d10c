package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/validation"
)

type DevotionPlanInput struct {
	Year        int
	Title       string
	Description *string
	Frequency   string
	TargetCount int
	StartDate   string
	EndDate     string
}

type DevotionPlanService struct {
	planRepository repository.DevotionPlanRepository
}

func NewDevotionPlanService(planRepository repository.DevotionPlanRepository) *DevotionPlanService {
	return &DevotionPlanService{planRepository: planRepository}
}

func (s *DevotionPlanService) validate(input DevotionPlanInput) error {
	if input.Title == "" {
		return validation.NewError("title is required")
	}
	if input.Year < 2000 || input.Year > 2100 {
		return validation.NewError("year is out of range")
	}

	switch input.Frequency {
	case model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly:
	default:
		return validation.NewError("frequency must be daily, weekly, or monthly")
	}

	if input.TargetCount <= 0 {
		return validation.NewError("target count must be positive")
	}

	err := validation.ValidateDate(input.StartDate)
	if err != nil {
		return err
	}
	err = validation.ValidateDate(input.EndDate)
	if err != nil {
		return err
	}
	if input.EndDate < input.StartDate {
		return validation.NewError("end date must not precede start date")
	}

	return nil
}

func (s *DevotionPlanService) Create(userID string, input DevotionPlanInput) (*model.DevotionPlan, error) {
	err := s.validate(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan := &model.DevotionPlan{
		ID:          uuid.New().String(),
		UserID:      userID,
		Year:        input.Year,
		Title:       input.Title,
		Description: input.Description,
		Frequency:   input.Frequency,
		TargetCount: input.TargetCount,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.planRepository.Create(plan)
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *DevotionPlanService) Update(userID, id string, input DevotionPlanInput) (*model.DevotionPlan, error) {
	err := s.validate(input)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepository.ByID(userID, id)
	if err != nil {
		return nil, err
	}

	plan.Title = input.Title
	plan.Description = input.Description
	plan.Frequency = input.Frequency
	plan.TargetCount = input.TargetCount
	plan.StartDate = input.StartDate
	plan.EndDate = input.EndDate
	plan.UpdatedAt = time.Now()

	err = s.planRepository.Update(plan)
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *DevotionPlanService) ByYear(userID string, year int) ([]*model.DevotionPlan, error) {
	return s.planRepository.ByUserAndYear(userID, year)
}

func (s *DevotionPlanService) Delete(userID, id string) error {
	return s.planRepository.Delete(userID, id)
}
