package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/validation"
)

var (
	ErrSelfDemotion = errors.New("admins cannot change their own role")
	ErrSelfLock     = errors.New("admins cannot lock their own account")
	ErrSelfDeletion = errors.New("admins cannot delete their own account")
	ErrInvalidRole  = errors.New("invalid role")
)

// UserService covers the admin console operations. Accounts are
// provisioned by admins, never self-registered, so every new account
// starts with a temporary password and the first-login flag set.
type UserService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
	authService       *AuthService
	emailService      *EmailService
}

func NewUserService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	authService *AuthService,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		authService:       authService,
		emailService:      emailService,
	}
}

func (s *UserService) ByID(userID string) (*model.User, error) {
	return s.userRepository.ByID(userID)
}

func (s *UserService) ProfileByUserID(userID string) (*model.Profile, error) {
	return s.profileRepository.ByUserID(userID)
}

// Provision creates a user plus profile and emails the temporary
// password. Returns the password as well so the admin console can show
// it once when email delivery is not configured.
func (s *UserService) Provision(email, fullName, role string) (*model.Profile, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, "", err
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, "", validation.NewError("full name is required")
	}

	if !model.ValidRole(role) {
		return nil, "", ErrInvalidRole
	}

	password, err := s.authService.GenerateTemporaryPassword()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate password: %w", err)
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		return nil, "", err
	}

	profile := &model.Profile{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		FullName:         fullName,
		Role:             role,
		ShareWithLeaders: true,
		FirstLogin:       true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.profileRepository.Create(profile)
	if err != nil {
		// roll back the orphaned user so the email can be reused
		deleteErr := s.userRepository.Delete(user.ID)
		if deleteErr != nil {
			slog.Error("failed to clean up orphaned user", "user_id", user.ID, "error", deleteErr)
		}
		return nil, "", err
	}

	err = s.emailService.SendWelcomeEmail(email, fullName, password)
	if err != nil {
		slog.Error("failed to send welcome email", "user_id", user.ID, "error", err)
	}

	slog.Info("user provisioned", "user_id", user.ID, "role", role)
	return profile, password, nil
}

// ResetPassword assigns a fresh temporary password and forces a change
// on the next login.
func (s *UserService) ResetPassword(userID string) (string, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return "", err
	}

	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return "", err
	}

	password, err := s.authService.GenerateTemporaryPassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepository.UpdatePassword(userID, hash)
	if err != nil {
		return "", err
	}

	profile.FirstLogin = true
	profile.UpdatedAt = time.Now()
	err = s.profileRepository.Update(profile)
	if err != nil {
		return "", err
	}

	err = s.emailService.SendPasswordResetEmail(user.Email, profile.FullName, password)
	if err != nil {
		slog.Error("failed to send reset email", "user_id", userID, "error", err)
	}

	slog.Info("password reset", "user_id", userID)
	return password, nil
}

func (s *UserService) SetRole(actorUserID, targetUserID, role string) error {
	if actorUserID == targetUserID {
		return ErrSelfDemotion
	}
	if !model.ValidRole(role) {
		return ErrInvalidRole
	}

	profile, err := s.profileRepository.ByUserID(targetUserID)
	if err != nil {
		return err
	}

	profile.Role = role
	profile.UpdatedAt = time.Now()
	return s.profileRepository.Update(profile)
}

func (s *UserService) SetLocked(actorUserID, targetUserID string, locked bool) error {
	if actorUserID == targetUserID && locked {
		return ErrSelfLock
	}

	profile, err := s.profileRepository.ByUserID(targetUserID)
	if err != nil {
		return err
	}

	profile.IsLocked = locked
	profile.UpdatedAt = time.Now()
	err = s.profileRepository.Update(profile)
	if err != nil {
		return err
	}

	slog.Info("account lock changed", "user_id", targetUserID, "locked", locked)
	return nil
}

// Delete removes the user row. Check-ins, progress, and reading plans
// go with it via ON DELETE CASCADE.
func (s *UserService) Delete(actorUserID, targetUserID string) error {
	if actorUserID == targetUserID {
		return ErrSelfDeletion
	}

	err := s.userRepository.Delete(targetUserID)
	if err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", targetUserID)
	return nil
}

// UpdateProfile handles the member-facing profile edits, which are
// limited to the display name and the leader-sharing consent.
func (s *UserService) UpdateProfile(userID, fullName string, shareWithLeaders bool) (*model.Profile, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, validation.NewError("full name is required")
	}

	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	profile.FullName = fullName
	profile.ShareWithLeaders = shareWithLeaders
	profile.UpdatedAt = time.Now()

	err = s.profileRepository.Update(profile)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *UserService) Members(search string, limit, offset int) ([]*model.Member, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	members, err := s.profileRepository.Members(search, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.profileRepository.CountMembers(search)
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}
