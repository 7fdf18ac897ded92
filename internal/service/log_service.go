package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/fittrack/internal/analytics"
	"alcyxob/fittrack/internal/catalog"
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/metrics"
	"alcyxob/fittrack/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrMealNotFound     = errors.New("meal not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
)

// recentLimit bounds listings requested without a date range.
const recentLimit = 50

// MealInput carries a new or edited meal. A zero Date means today.
type MealInput struct {
	Name     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatsG    float64
	Date     time.Time
}

// WorkoutInput carries a new workout. Category and MuscleGroups fall back to
// the exercise catalog; a nil CaloriesBurned is estimated.
type WorkoutInput struct {
	Exercise        string
	Category        domain.ExerciseCategory
	MuscleGroups    string
	DurationMinutes int
	Sets            int
	Reps            int
	Weight          float64
	Intensity       float64
	CaloriesBurned  *int
	Date            time.Time
}

// CalorieEstimate is the catalog entry used and the resulting estimate.
type CalorieEstimate struct {
	Exercise domain.ExerciseInfo `json:"exercise"`
	Calories int                 `json:"calories"`
}

type LogService interface {
	CreateMeal(ctx context.Context, userID primitive.ObjectID, in MealInput) (*domain.Meal, error)
	ListMeals(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Meal, error)
	UpdateMeal(ctx context.Context, userID, mealID primitive.ObjectID, in MealInput) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, userID, mealID primitive.ObjectID) error

	CreateWorkout(ctx context.Context, userID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error

	CreateBodyWeight(ctx context.Context, userID primitive.ObjectID, weightKg float64, date time.Time) (*domain.BodyWeight, error)
	ListBodyWeights(ctx context.Context, userID primitive.ObjectID) ([]domain.BodyWeight, error)

	LookupExercise(name string) domain.ExerciseInfo
	EstimateCalories(name string, durationMinutes, sets, reps int, intensity float64) CalorieEstimate
}

type logService struct {
	mealRepo    repository.MealRepository
	workoutRepo repository.WorkoutRepository
	weightRepo  repository.BodyWeightRepository
	exercises   catalog.Lookup
	notifier    Notifier
	metrics     *metrics.Manager
	loc         *time.Location
	now         func() time.Time
}

func NewLogService(
	mealRepo repository.MealRepository,
	workoutRepo repository.WorkoutRepository,
	weightRepo repository.BodyWeightRepository,
	exercises catalog.Lookup,
	notifier Notifier,
	metricsManager *metrics.Manager,
	loc *time.Location,
	now func() time.Time,
) LogService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &logService{
		mealRepo:    mealRepo,
		workoutRepo: workoutRepo,
		weightRepo:  weightRepo,
		exercises:   exercises,
		notifier:    notifier,
		metrics:     metricsManager,
		loc:         loc,
		now:         now,
	}
}

func (s *logService) today() time.Time {
	return domain.DateOf(s.now(), s.loc)
}

func (s *logService) dayOrToday(d time.Time) time.Time {
	if d.IsZero() {
		return s.today()
	}
	return domain.DateOf(d, time.UTC)
}

// --- Meals ---

func validateMeal(in MealInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: meal name is required", ErrValidationFailed)
	}
	if err := domain.CheckMealNumbers(in.Calories, in.ProteinG, in.CarbsG, in.FatsG); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}
	return nil
}

func (s *logService) CreateMeal(ctx context.Context, userID primitive.ObjectID, in MealInput) (*domain.Meal, error) {
	if err := validateMeal(in); err != nil {
		return nil, err
	}
	meal := &domain.Meal{
		UserID:   userID,
		Name:     strings.TrimSpace(in.Name),
		Calories: in.Calories,
		ProteinG: in.ProteinG,
		CarbsG:   in.CarbsG,
		FatsG:    in.FatsG,
		Date:     s.dayOrToday(in.Date),
	}
	if _, err := s.mealRepo.Create(ctx, meal); err != nil {
		return nil, err
	}
	s.metrics.LogEntryCreated("meal")

	if s.notifier != nil {
		if _, err := s.notifier.OnMealCreated(ctx, userID); err != nil {
			log.WithField("user_id", userID.Hex()).Debugf("meal triggers: %s", err)
		}
	}
	return meal, nil
}

func (s *logService) ListMeals(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Meal, error) {
	if start.IsZero() && end.IsZero() {
		return s.mealRepo.ListRecentByUser(ctx, userID, recentLimit)
	}
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.mealRepo.ListByUserAndDateRange(ctx, userID, start, end)
}

func (s *logService) UpdateMeal(ctx context.Context, userID, mealID primitive.ObjectID, in MealInput) (*domain.Meal, error) {
	if err := validateMeal(in); err != nil {
		return nil, err
	}
	existing, err := s.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrMealNotFound
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Calories = in.Calories
	existing.ProteinG = in.ProteinG
	existing.CarbsG = in.CarbsG
	existing.FatsG = in.FatsG
	if err := s.mealRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	existing.UpdatedAt = s.now().UTC()
	return existing, nil
}

func (s *logService) DeleteMeal(ctx context.Context, userID, mealID primitive.ObjectID) error {
	if err := s.mealRepo.Delete(ctx, mealID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMealNotFound
		}
		return err
	}
	return nil
}

// --- Workouts ---

func (s *logService) CreateWorkout(ctx context.Context, userID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error) {
	name := strings.TrimSpace(in.Exercise)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise is required", ErrValidationFailed)
	}
	info := s.LookupExercise(name)

	category := in.Category
	if category == "" {
		category = info.Category
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, category)
	}
	if err := validateWorkoutNumbers(category, in); err != nil {
		return nil, err
	}

	var burned int
	if in.CaloriesBurned != nil {
		burned = *in.CaloriesBurned
	} else {
		burned = analytics.EstimateCalories(analytics.ExerciseParams{
			Category:             category,
			CaloriesPer30Minutes: info.CaloriesPer30Minutes,
			DurationMinutes:      in.DurationMinutes,
			Sets:                 in.Sets,
			Reps:                 in.Reps,
			Intensity:            in.Intensity,
		})
	}

	muscles := strings.TrimSpace(in.MuscleGroups)
	if muscles == "" {
		muscles = info.MuscleGroups
	}

	workout := &domain.Workout{
		UserID:          userID,
		Exercise:        name,
		Category:        category,
		MuscleGroups:    muscles,
		DurationMinutes: in.DurationMinutes,
		Sets:            in.Sets,
		Reps:            in.Reps,
		Weight:          in.Weight,
		Intensity:       in.Intensity,
		CaloriesBurned:  burned,
		Date:            s.dayOrToday(in.Date),
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	s.metrics.LogEntryCreated("workout")

	if s.notifier != nil {
		if _, err := s.notifier.OnWorkoutCreated(ctx, userID); err != nil {
			log.WithField("user_id", userID.Hex()).Debugf("workout triggers: %s", err)
		}
	}
	return workout, nil
}

func validateWorkoutNumbers(category domain.ExerciseCategory, in WorkoutInput) error {
	if err := domain.CheckWorkoutNumbers(category, in.DurationMinutes, in.Sets, in.Reps, in.Weight, in.Intensity); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}
	if in.CaloriesBurned != nil && *in.CaloriesBurned < 0 {
		return fmt.Errorf("%w: calories burned must not be negative", ErrValidationFailed)
	}
	return nil
}

func (s *logService) ListWorkouts(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Workout, error) {
	if start.IsZero() && end.IsZero() {
		return s.workoutRepo.ListRecentByUser(ctx, userID, recentLimit)
	}
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.workoutRepo.ListByUserAndDateRange(ctx, userID, start, end)
}

func (s *logService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// --- Body weight ---

func (s *logService) CreateBodyWeight(ctx context.Context, userID primitive.ObjectID, weightKg float64, date time.Time) (*domain.BodyWeight, error) {
	if weightKg <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrValidationFailed)
	}
	bw := &domain.BodyWeight{
		UserID:   userID,
		WeightKg: weightKg,
		Date:     s.dayOrToday(date),
	}
	if _, err := s.weightRepo.Create(ctx, bw); err != nil {
		return nil, err
	}
	s.metrics.LogEntryCreated("body_weight")
	return bw, nil
}

func (s *logService) ListBodyWeights(ctx context.Context, userID primitive.ObjectID) ([]domain.BodyWeight, error) {
	return s.weightRepo.ListByUser(ctx, userID, recentLimit)
}

// --- Exercise catalog ---

func (s *logService) LookupExercise(name string) domain.ExerciseInfo {
	if s.exercises == nil {
		return domain.DefaultExerciseInfo(name)
	}
	return s.exercises.Lookup(name)
}

func (s *logService) EstimateCalories(name string, durationMinutes, sets, reps int, intensity float64) CalorieEstimate {
	info := s.LookupExercise(name)
	return CalorieEstimate{
		Exercise: info,
		Calories: analytics.EstimateCalories(analytics.ExerciseParams{
			Category:             info.Category,
			CaloriesPer30Minutes: info.CaloriesPer30Minutes,
			DurationMinutes:      durationMinutes,
			Sets:                 sets,
			Reps:                 reps,
			Intensity:            intensity,
		}),
	}
}

// normalizeRange requires both bounds and orders them.
func normalizeRange(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: both start and end dates are required", ErrValidationFailed)
	}
	start, end = domain.DateOf(start, time.UTC), domain.DateOf(end, time.UTC)
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrValidationFailed, analytics.ErrInvalidRange)
	}
	return start, end, nil
}
