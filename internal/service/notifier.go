package service

import (
	"context"

	"alcyxob/fittrack/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notifier receives the events that can raise notifications. notify.Engine
// implements it; every method is best-effort and callers only log errors.
type Notifier interface {
	OnLogin(ctx context.Context, user *domain.User) ([]domain.Notification, error)
	OnMealCreated(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
	OnWorkoutCreated(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
	RunChecks(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
}
