package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fittrack/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultWindowDays is the trailing window used when no range is given.
const DefaultWindowDays = 7

var ErrInvalidRange = errors.New("start date must not be after end date")

// PeriodMetrics are nutrition and exercise totals over an inclusive range of
// calendar days. They are computed on demand and never stored.
type PeriodMetrics struct {
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	CaloriesConsumed int       `json:"caloriesConsumed"`
	ProteinG         float64   `json:"proteinG"`
	CarbsG           float64   `json:"carbsG"`
	FatsG            float64   `json:"fatsG"`
	CaloriesBurned   int       `json:"caloriesBurned"`
	WorkoutVolume    float64   `json:"workoutVolume"`
	MealCount        int       `json:"mealCount"`
	WorkoutCount     int       `json:"workoutCount"`
}

// Days is the number of calendar days covered.
func (m PeriodMetrics) Days() int {
	return domain.DaysInRange(m.StartDate, m.EndDate)
}

// LogReader fetches a user's entries whose date falls in [start, end].
type LogReader interface {
	ListMeals(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Meal, error)
	ListWorkouts(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Workout, error)
}

// Aggregator sums log entries into PeriodMetrics.
type Aggregator struct {
	logs LogReader
	loc  *time.Location
	now  func() time.Time
}

func NewAggregator(logs LogReader, loc *time.Location, now func() time.Time) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Aggregator{logs: logs, loc: loc, now: now}
}

// Today is the current calendar day in the configured zone.
func (a *Aggregator) Today() time.Time {
	return domain.DateOf(a.now(), a.loc)
}

// Aggregate sums the user's meals and workouts dated within [start, end].
// A zero start or end selects the trailing 7 days ending today.
func (a *Aggregator) Aggregate(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (PeriodMetrics, error) {
	if start.IsZero() || end.IsZero() {
		end = a.Today()
		start = domain.AddDays(end, -(DefaultWindowDays - 1))
	}
	if start.After(end) {
		return PeriodMetrics{}, ErrInvalidRange
	}

	meals, err := a.logs.ListMeals(ctx, userID, start, end)
	if err != nil {
		return PeriodMetrics{}, fmt.Errorf("list meals: %w", err)
	}
	workouts, err := a.logs.ListWorkouts(ctx, userID, start, end)
	if err != nil {
		return PeriodMetrics{}, fmt.Errorf("list workouts: %w", err)
	}

	return Sum(start, end, meals, workouts), nil
}

// Sum folds already-fetched entries into PeriodMetrics.
func Sum(start, end time.Time, meals []domain.Meal, workouts []domain.Workout) PeriodMetrics {
	m := PeriodMetrics{StartDate: start, EndDate: end}
	for i := range meals {
		m.CaloriesConsumed += meals[i].Calories
		m.ProteinG += meals[i].ProteinG
		m.CarbsG += meals[i].CarbsG
		m.FatsG += meals[i].FatsG
	}
	for i := range workouts {
		m.CaloriesBurned += workouts[i].CaloriesBurned
		m.WorkoutVolume += workouts[i].Volume()
	}
	m.MealCount = len(meals)
	m.WorkoutCount = len(workouts)
	return m
}

// ProteinForDay sums protein across the user's meals on a single day.
func (a *Aggregator) ProteinForDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (float64, error) {
	metrics, err := a.Aggregate(ctx, userID, day, day)
	if err != nil {
		return 0, err
	}
	return metrics.ProteinG, nil
}

// LoggedDays counts the distinct days in [start, end] with at least one meal
// or workout.
func (a *Aggregator) LoggedDays(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (int, error) {
	meals, err := a.logs.ListMeals(ctx, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("list meals: %w", err)
	}
	workouts, err := a.logs.ListWorkouts(ctx, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("list workouts: %w", err)
	}

	days := make(map[time.Time]struct{})
	for i := range meals {
		days[meals[i].Date] = struct{}{}
	}
	for i := range workouts {
		days[workouts[i].Date] = struct{}{}
	}
	return len(days), nil
}
