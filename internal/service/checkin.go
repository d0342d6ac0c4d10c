package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sarangchurch/quiettime/internal/devotion"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/validation"
)

var (
	ErrChildCheckinEdit = errors.New("the continuation of a midnight-spanning check-in cannot be edited directly")
	ErrEndOfDayInput    = errors.New("end time 24:00 is reserved for midnight-spanning records")
)

// CheckinInput carries one check-in submission. Clock times are HH:MM
// strings; an end earlier than the start means the quiet time ran past
// midnight and the record will be split.
type CheckinInput struct {
	CheckinDate      string
	PlanID           *string
	PlannedStartTime *string
	PlannedEndTime   *string
	StartTime        *string
	EndTime          *string
	DurationMinutes  *int
	Memo             *string
}

type CheckinService struct {
	checkinRepository repository.CheckinRepository
}

func NewCheckinService(checkinRepository repository.CheckinRepository) *CheckinService {
	return &CheckinService{checkinRepository: checkinRepository}
}

func (s *CheckinService) validate(input CheckinInput) error {
	err := validation.ValidateDate(input.CheckinDate)
	if err != nil {
		return err
	}

	for _, t := range []*string{input.PlannedStartTime, input.PlannedEndTime, input.StartTime, input.EndTime} {
		if t == nil || *t == "" {
			continue
		}
		if *t == model.EndOfDay {
			return ErrEndOfDayInput
		}
		err = validation.ValidateClockTime(*t)
		if err != nil {
			return err
		}
	}

	if input.DurationMinutes != nil && *input.DurationMinutes < 0 {
		return validation.NewError("duration must not be negative")
	}

	return nil
}

// Save creates or updates the check-in for one submission. With an id the
// submission targets that record; without one it updates the existing
// primary record for the date when there is one, otherwise it creates a
// new record. Midnight-spanning intervals are split into the stored
// primary plus a next-day child, and a previously split record whose
// times no longer span midnight has its child removed. The whole write is
// one transaction.
func (s *CheckinService) Save(userID string, id *string, input CheckinInput) (*model.Checkin, error) {
	err := s.validate(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var primary model.Checkin
	isNew := false

	switch {
	case id != nil && *id != "":
		existing, err := s.checkinRepository.ByID(userID, *id)
		if err != nil {
			return nil, err
		}
		if existing.IsChild() {
			return nil, ErrChildCheckinEdit
		}
		primary = *existing
	default:
		existing, err := s.checkinRepository.PrimaryByDate(userID, input.CheckinDate)
		if err != nil && !errors.Is(err, repository.ErrCheckinNotFound) {
			return nil, err
		}
		if err == nil {
			primary = *existing
		} else {
			isNew = true
			primary = model.Checkin{
				ID:        uuid.New().String(),
				UserID:    userID,
				CreatedAt: now,
			}
		}
	}

	primary.PlanID = input.PlanID
	primary.CheckinDate = input.CheckinDate
	primary.PlannedStartTime = input.PlannedStartTime
	primary.PlannedEndTime = input.PlannedEndTime
	primary.StartTime = input.StartTime
	primary.EndTime = input.EndTime
	primary.DurationMinutes = input.DurationMinutes
	primary.Memo = input.Memo
	primary.UpdatedAt = now

	if primary.DurationMinutes == nil &&
		primary.StartTime != nil && *primary.StartTime != "" &&
		primary.EndTime != nil && *primary.EndTime != "" {
		minutes := devotion.DurationMinutes(*primary.StartTime, *primary.EndTime)
		primary.DurationMinutes = &minutes
	}

	plan := devotion.PlanSplit(primary)

	err = s.checkinRepository.SaveSplit(&plan.Primary, plan.Child, isNew)
	if err != nil {
		return nil, fmt.Errorf("failed to save checkin: %w", err)
	}

	return &plan.Primary, nil
}

func (s *CheckinService) ByID(userID, id string) (*model.Checkin, error) {
	return s.checkinRepository.ByID(userID, id)
}

func (s *CheckinService) ByDate(userID, date string) (*model.Checkin, error) {
	err := validation.ValidateDate(date)
	if err != nil {
		return nil, err
	}
	return s.checkinRepository.PrimaryByDate(userID, date)
}

// Month returns every check-in, children included, within the calendar
// month containing the given date.
func (s *CheckinService) Month(userID, date string) ([]*model.Checkin, error) {
	err := validation.ValidateDate(date)
	if err != nil {
		return nil, err
	}

	from := devotion.MonthStart(date)
	to := devotion.AddDays(devotion.MonthStart(devotion.AddDays(from, 31)), -1)

	return s.checkinRepository.Between(userID, from, to)
}

// Delete removes a check-in and its child. Child rows are rejected the
// same way edits are: they follow their parent.
func (s *CheckinService) Delete(userID, id string) error {
	existing, err := s.checkinRepository.ByID(userID, id)
	if err != nil {
		return err
	}
	if existing.IsChild() {
		return ErrChildCheckinEdit
	}

	return s.checkinRepository.Delete(userID, id)
}

// CheckinStats is the dashboard summary for one member.
type CheckinStats struct {
	CurrentStreak int
	LongestStreak int
	ThisWeek      int
	ThisMonth     int
	Total         int
}

// Stats derives the streaks and period counts from the member's distinct
// check-in dates, evaluated against the given day.
func (s *CheckinService) Stats(userID, today string) (*CheckinStats, error) {
	dates, err := s.checkinRepository.Dates(userID)
	if err != nil {
		return nil, err
	}

	total, err := s.checkinRepository.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &CheckinStats{
		CurrentStreak: devotion.CurrentStreak(dates, today),
		LongestStreak: devotion.LongestStreak(dates),
		ThisWeek:      devotion.CountThisWeek(dates, today),
		ThisMonth:     devotion.CountThisMonth(dates, today),
		Total:         total,
	}, nil
}

// StreakFor is the cheap variant used by the admin member list.
func (s *CheckinService) StreakFor(userID, today string) (int, error) {
	dates, err := s.checkinRepository.Dates(userID)
	if err != nil {
		return 0, err
	}
	return devotion.CurrentStreak(dates, today), nil
}
