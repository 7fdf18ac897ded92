package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fittrack/internal/analytics"
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/metrics"
	"alcyxob/fittrack/internal/repository"
	"alcyxob/fittrack/internal/worker"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
)

// Rule names, used in logs and as the metrics "rule" label.
const (
	RuleLowProtein      = "low_protein"
	RuleVolumeDrop      = "volume_drop"
	RuleMealReminder    = "meal_reminder"
	RuleWorkoutReminder = "workout_reminder"
	RuleSummary         = "summary"
)

const (
	DefaultReminderDelay = 10 * time.Second
	reminderTaskName     = "daily_reminders"
)

// UserReader loads the user fresh, so deferred checks see current preferences.
type UserReader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

type WeightReader interface {
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.BodyWeight, error)
}

// EntryCounter counts a user's log entries on one calendar day.
type EntryCounter interface {
	CountByUserAndDate(ctx context.Context, userID primitive.ObjectID, day time.Time) (int64, error)
}

// NotificationStore is the subset of the notification repository the engine
// writes through.
type NotificationStore interface {
	FindOneContaining(ctx context.Context, userID primitive.ObjectID, substr string, from, to time.Time) (*domain.Notification, error)
	Create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, error)
}

type Scheduler interface {
	Schedule(delay time.Duration, name string, task worker.Task) (string, error)
}

type Deps struct {
	Aggregator    *analytics.Aggregator
	Users         UserReader
	Weights       WeightReader
	Meals         EntryCounter
	Workouts      EntryCounter
	Notifications NotificationStore
	Scheduler     Scheduler
	Metrics       *metrics.Manager
	Location      *time.Location
	Now           func() time.Time
	ReminderDelay time.Duration
}

// Engine decides when to write a notification. Every rule checks for an
// equivalent message in its window before creating one; writes are
// best-effort and a failing rule never stops the others.
type Engine struct {
	agg           *analytics.Aggregator
	users         UserReader
	weights       WeightReader
	meals         EntryCounter
	workouts      EntryCounter
	notifications NotificationStore
	scheduler     Scheduler
	metrics       *metrics.Manager
	loc           *time.Location
	now           func() time.Time
	reminderDelay time.Duration
}

func NewEngine(d Deps) *Engine {
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ReminderDelay <= 0 {
		d.ReminderDelay = DefaultReminderDelay
	}
	return &Engine{
		agg:           d.Aggregator,
		users:         d.Users,
		weights:       d.Weights,
		meals:         d.Meals,
		workouts:      d.Workouts,
		notifications: d.Notifications,
		scheduler:     d.Scheduler,
		metrics:       d.Metrics,
		loc:           d.Location,
		now:           d.Now,
		reminderDelay: d.ReminderDelay,
	}
}

type rule struct {
	name string
	run  func(ctx context.Context) (*domain.Notification, error)
}

// OnLogin runs the protein, volume and summary rules and arms the deferred
// reminder check.
func (e *Engine) OnLogin(ctx context.Context, user *domain.User) ([]domain.Notification, error) {
	created, err := e.evaluate(ctx, user.ID,
		e.lowProtein(user.ID),
		e.volumeDrop(user.ID),
		e.summary(user),
	)
	e.ScheduleReminders(user.ID)
	return created, err
}

func (e *Engine) OnMealCreated(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	return e.evaluate(ctx, userID, e.lowProtein(userID))
}

func (e *Engine) OnWorkoutCreated(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	return e.evaluate(ctx, userID, e.volumeDrop(userID))
}

// RunChecks is the explicit, user-requested check.
func (e *Engine) RunChecks(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	return e.evaluate(ctx, userID, e.lowProtein(userID), e.volumeDrop(userID))
}

// ScheduleReminders hands the "nothing logged today" check to the executor.
// The task runs detached from the caller and is lost if it fails.
func (e *Engine) ScheduleReminders(userID primitive.ObjectID) {
	if e.scheduler == nil {
		return
	}
	_, err := e.scheduler.Schedule(e.reminderDelay, reminderTaskName, func(ctx context.Context) error {
		_, err := e.CheckReminders(ctx, userID)
		return err
	})
	if err != nil {
		log.WithField("user_id", userID.Hex()).Warnf("schedule reminders: %s", err)
	}
}

// CheckReminders re-reads the user and runs the meal and workout reminders.
func (e *Engine) CheckReminders(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	user, err := e.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return e.evaluate(ctx, userID, e.mealReminder(user), e.workoutReminder(user))
}

func (e *Engine) evaluate(ctx context.Context, userID primitive.ObjectID, rules ...rule) ([]domain.Notification, error) {
	var (
		created []domain.Notification
		errs    error
	)
	for _, r := range rules {
		n, err := e.runRule(ctx, r)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.name, err))
			continue
		}
		if n != nil {
			created = append(created, *n)
		}
	}
	if errs != nil {
		log.WithField("user_id", userID.Hex()).Warnf("notification rules failed: %s", errs)
	}
	return created, errs
}

func (e *Engine) runRule(ctx context.Context, r rule) (n *domain.Notification, err error) {
	defer func() {
		if p := recover(); p != nil {
			e.metrics.NotificationOutcome(r.name, metrics.OutcomeFailed)
			n, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	return r.run(ctx)
}

// emit writes message unless a notification containing marker was created in
// [from, to).
func (e *Engine) emit(ctx context.Context, ruleName string, userID primitive.ObjectID, marker, message string, from, to time.Time) (*domain.Notification, error) {
	existing, err := e.notifications.FindOneContaining(ctx, userID, marker, from, to)
	switch {
	case err == nil && existing != nil:
		e.metrics.NotificationOutcome(ruleName, metrics.OutcomeDeduplicated)
		return nil, nil
	case err == nil, errors.Is(err, repository.ErrNotFound):
	default:
		e.metrics.NotificationOutcome(ruleName, metrics.OutcomeFailed)
		return nil, fmt.Errorf("dedup lookup: %w", err)
	}

	n := &domain.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: e.now().UTC(),
	}
	if _, err := e.notifications.Create(ctx, n); err != nil {
		e.metrics.NotificationOutcome(ruleName, metrics.OutcomeFailed)
		return nil, fmt.Errorf("create notification: %w", err)
	}

	e.metrics.NotificationOutcome(ruleName, metrics.OutcomeCreated)
	log.WithFields(log.Fields{
		"user_id": userID.Hex(),
		"rule":    ruleName,
	}).Debug("notification created")
	return n, nil
}

func (e *Engine) skip(ruleName string) (*domain.Notification, error) {
	e.metrics.NotificationOutcome(ruleName, metrics.OutcomeSkipped)
	return nil, nil
}

func (e *Engine) fail(ruleName string, err error) (*domain.Notification, error) {
	e.metrics.NotificationOutcome(ruleName, metrics.OutcomeFailed)
	return nil, err
}

// dayWindow is the instant range covering calendar days first..last in the
// engine's zone.
func (e *Engine) dayWindow(first, last time.Time) (time.Time, time.Time) {
	from, _ := domain.DayBounds(first, e.loc)
	_, to := domain.DayBounds(last, e.loc)
	return from, to
}
