package repository

import (
	"alcyxob/fittrack/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdatePreferences(ctx context.Context, id primitive.ObjectID, prefs domain.NotificationPreferences) error
}

// MealRepository stores nutrition log entries. Date ranges are inclusive
// calendar days.
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error)
	ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Meal, error)
	ListRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Meal, error)
	CountByUserAndDate(ctx context.Context, userID primitive.ObjectID, day time.Time) (int64, error)
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// WorkoutRepository stores exercise log entries.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Workout, error)
	ListRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error)
	CountByUserAndDate(ctx context.Context, userID primitive.ObjectID, day time.Time) (int64, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// BodyWeightRepository stores weight measurements.
type BodyWeightRepository interface {
	Create(ctx context.Context, bw *domain.BodyWeight) (primitive.ObjectID, error)
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.BodyWeight, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.BodyWeight, error)
}

// NotificationRepository stores inbox messages.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, error)
	// FindOneContaining returns a notification of the user whose message
	// contains substr and whose creation time is in [from, to), or ErrNotFound.
	FindOneContaining(ctx context.Context, userID primitive.ObjectID, substr string, from, to time.Time) (*domain.Notification, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
	ListUnread(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
	// MarkRead sets the read flag once; already-read messages are left alone.
	MarkRead(ctx context.Context, id, userID primitive.ObjectID, at time.Time) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID, at time.Time) (int64, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	// DeleteMany removes the given ids, or every notification of the user
	// when ids is empty.
	DeleteMany(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error)
}

// TemplateRepository stores saved meals and workouts.
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.LogTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.LogTemplate, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, kind domain.TemplateKind) ([]domain.LogTemplate, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}
