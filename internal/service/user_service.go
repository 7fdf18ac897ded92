package service

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	UpdatePreferences(ctx context.Context, userID primitive.ObjectID, prefs domain.NotificationPreferences) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdatePreferences replaces the notification opt-ins. An empty summary
// frequency means none.
func (s *userService) UpdatePreferences(ctx context.Context, userID primitive.ObjectID, prefs domain.NotificationPreferences) (*domain.User, error) {
	if prefs.SummaryFrequency == "" {
		prefs.SummaryFrequency = domain.SummaryNone
	}
	if !prefs.SummaryFrequency.Valid() {
		return nil, fmt.Errorf("%w: unknown summary frequency %q", ErrValidationFailed, prefs.SummaryFrequency)
	}

	if err := s.userRepo.UpdatePreferences(ctx, userID, prefs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
