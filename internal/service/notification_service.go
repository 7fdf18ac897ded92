package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	// List returns the inbox as it was before viewing, then marks all read.
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
	// Get returns one message and marks it read.
	Get(ctx context.Context, userID, notificationID primitive.ObjectID) (*domain.Notification, error)
	UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, userID, notificationID primitive.ObjectID) error
	// DeleteMany removes the given ids, or the whole inbox when ids is empty.
	DeleteMany(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error)
	// Check runs the on-demand rules and returns what was created.
	Check(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	notifier         Notifier
	now              func() time.Time
}

func NewNotificationService(notificationRepo repository.NotificationRepository, notifier Notifier, now func() time.Time) NotificationService {
	if now == nil {
		now = time.Now
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		notifier:         notifier,
		now:              now,
	}
}

func (s *notificationService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.notificationRepo.MarkAllRead(ctx, userID, s.now()); err != nil {
		// the inbox is still returned; unread flags catch up on the next view
		log.WithField("user_id", userID.Hex()).Warnf("mark notifications read: %s", err)
	}
	return notifications, nil
}

func (s *notificationService) Get(ctx context.Context, userID, notificationID primitive.ObjectID) (*domain.Notification, error) {
	n, err := s.notificationRepo.GetByID(ctx, notificationID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if n.Read {
		return n, nil
	}

	at := s.now().UTC()
	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID, at); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	n.Read = true
	n.ReadAt = &at
	return n, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID primitive.ObjectID) error {
	if err := s.notificationRepo.Delete(ctx, notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) DeleteMany(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	return s.notificationRepo.DeleteMany(ctx, userID, ids)
}

func (s *notificationService) Check(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	if s.notifier == nil {
		return []domain.Notification{}, nil
	}
	created, err := s.notifier.RunChecks(ctx, userID)
	if err != nil {
		log.WithField("user_id", userID.Hex()).Debugf("explicit check: %s", err)
	}
	if created == nil {
		created = []domain.Notification{}
	}
	return created, nil
}
