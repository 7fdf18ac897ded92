package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"alcyxob/fittrack/internal/analytics"
	"alcyxob/fittrack/internal/catalog"
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/metrics"
	"alcyxob/fittrack/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type logFixture struct {
	meals    *fakeMeals
	workouts *fakeWorkouts
	weights  *fakeWeights
	notifier *recordingNotifier
	metrics  *metrics.Manager
	svc      service.LogService
}

func newLogFixture() *logFixture {
	f := &logFixture{
		meals:    &fakeMeals{},
		workouts: &fakeWorkouts{},
		weights:  &fakeWeights{},
		notifier: &recordingNotifier{},
		metrics:  metrics.NewTestManager(),
	}
	exercises := catalog.New([]domain.ExerciseInfo{
		{Name: "Running", Category: domain.CategoryCardio, MuscleGroups: "legs", CaloriesPer30Minutes: 300},
		{Name: "Bench Press", Category: domain.CategoryStrength, MuscleGroups: "chest", CaloriesPer30Minutes: 120},
	})
	f.svc = service.NewLogService(f.meals, f.workouts, f.weights, exercises, f.notifier, f.metrics, time.UTC, clock)
	return f
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	users := newFakeUsers()
	notifier := &recordingNotifier{}
	auth := service.NewAuthService(users, notifier, "secret", time.Hour)
	ctx := context.Background()

	user, err := auth.Register(ctx, "Ann", " Ann@Example.com ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, domain.DefaultPreferences(), user.Preferences)

	_, err = auth.Register(ctx, "Ann", "ann@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)

	_, err = auth.Register(ctx, "Bob", "not-an-email", "hunter22")
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	token, loggedIn, err := auth.Login(ctx, "ann@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Equal(t, 1, notifier.logins)

	_, _, err = auth.Login(ctx, "ann@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	_, _, err = auth.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	assert.Equal(t, 1, notifier.logins)
}

func TestUserService_UpdatePreferences(t *testing.T) {
	users := newFakeUsers()
	ctx := context.Background()
	id, err := users.Create(ctx, &domain.User{Email: "a@b.c", PasswordHash: "x", Preferences: domain.DefaultPreferences()})
	require.NoError(t, err)
	svc := service.NewUserService(users)

	updated, err := svc.UpdatePreferences(ctx, id, domain.NotificationPreferences{MealReminder: true, SummaryFrequency: domain.SummaryWeekly})
	require.NoError(t, err)
	assert.Equal(t, domain.SummaryWeekly, updated.Preferences.SummaryFrequency)
	assert.False(t, updated.Preferences.WorkoutReminder)
	assert.Empty(t, updated.PasswordHash)

	_, err = svc.UpdatePreferences(ctx, id, domain.NotificationPreferences{SummaryFrequency: "hourly"})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = svc.GetProfile(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestLogService_CreateMeal(t *testing.T) {
	f := newLogFixture()
	userID := primitive.NewObjectID()

	meal, err := f.svc.CreateMeal(context.Background(), userID, service.MealInput{Name: " Oats ", Calories: 350, ProteinG: 12})
	require.NoError(t, err)
	assert.Equal(t, "Oats", meal.Name)
	assert.Equal(t, day(2026, 10, 18), meal.Date)
	assert.Equal(t, 1, f.notifier.meals)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterLogEntries.WithLabelValues("meal")))

	_, err = f.svc.CreateMeal(context.Background(), userID, service.MealInput{Name: "Bad", Calories: -1})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
	_, err = f.svc.CreateMeal(context.Background(), userID, service.MealInput{Calories: 100})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
	_, err = f.svc.CreateMeal(context.Background(), userID, service.MealInput{Name: "Bad", Calories: 100, FatsG: math.NaN()})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
	assert.Len(t, f.meals.meals, 1)
}

func TestLogService_UpdateMealOwnership(t *testing.T) {
	f := newLogFixture()
	owner := primitive.NewObjectID()
	meal, err := f.svc.CreateMeal(context.Background(), owner, service.MealInput{Name: "Rice", Calories: 200})
	require.NoError(t, err)

	_, err = f.svc.UpdateMeal(context.Background(), primitive.NewObjectID(), meal.ID, service.MealInput{Name: "Rice", Calories: 1})
	assert.ErrorIs(t, err, service.ErrMealNotFound)

	updated, err := f.svc.UpdateMeal(context.Background(), owner, meal.ID, service.MealInput{Name: "Rice", Calories: 250, CarbsG: 55})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.Calories)
	assert.Equal(t, 55.0, f.meals.meals[0].CarbsG)

	assert.ErrorIs(t, f.svc.DeleteMeal(context.Background(), owner, primitive.NewObjectID()), service.ErrMealNotFound)
	require.NoError(t, f.svc.DeleteMeal(context.Background(), owner, meal.ID))
	assert.Empty(t, f.meals.meals)
}

func TestLogService_CreateWorkout(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("cardio estimated from catalog", func(t *testing.T) {
		f := newLogFixture()
		w, err := f.svc.CreateWorkout(ctx, userID, service.WorkoutInput{Exercise: "running", DurationMinutes: 30})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryCardio, w.Category)
		assert.Equal(t, "legs", w.MuscleGroups)
		assert.Equal(t, 300, w.CaloriesBurned)
		assert.Equal(t, 1, f.notifier.workouts)
	})

	t.Run("unknown strength exercise uses defaults", func(t *testing.T) {
		f := newLogFixture()
		w, err := f.svc.CreateWorkout(ctx, userID, service.WorkoutInput{Exercise: "Zercher Carry", Sets: 3, Reps: 10, Weight: 40})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryStrength, w.Category)
		assert.Equal(t, "various", w.MuscleGroups)
		// 3 synthetic minutes at 150 kcal/30 min
		assert.Equal(t, 15, w.CaloriesBurned)
		assert.Equal(t, 1200.0, w.Volume())
	})

	t.Run("explicit calories are kept", func(t *testing.T) {
		f := newLogFixture()
		burned := 77
		w, err := f.svc.CreateWorkout(ctx, userID, service.WorkoutInput{Exercise: "Bench Press", Sets: 3, Reps: 8, Weight: 60, CaloriesBurned: &burned})
		require.NoError(t, err)
		assert.Equal(t, 77, w.CaloriesBurned)
	})

	invalid := map[string]service.WorkoutInput{
		"cardio with sets":      {Exercise: "Running", DurationMinutes: 20, Sets: 3},
		"cardio no duration":    {Exercise: "Running"},
		"negative weight":       {Exercise: "Bench Press", Sets: 3, Reps: 8, Weight: -5},
		"nan intensity":         {Exercise: "Bench Press", Sets: 3, Reps: 8, Intensity: math.NaN()},
		"infinite intensity":    {Exercise: "Running", DurationMinutes: 30, Intensity: math.Inf(1)},
		"infinite weight":       {Exercise: "Bench Press", Sets: 3, Reps: 8, Weight: math.Inf(1)},
		"unknown category":      {Exercise: "Yoga", Category: "flexibility", DurationMinutes: 30},
		"missing exercise name": {DurationMinutes: 10},
	}
	for name, in := range invalid {
		t.Run(name, func(t *testing.T) {
			f := newLogFixture()
			_, err := f.svc.CreateWorkout(ctx, userID, in)
			assert.ErrorIs(t, err, service.ErrValidationFailed)
			assert.Empty(t, f.workouts.workouts)
			assert.Equal(t, 0, f.notifier.workouts)
		})
	}
}

func TestLogService_ListRanges(t *testing.T) {
	f := newLogFixture()
	userID := primitive.NewObjectID()
	ctx := context.Background()
	for _, d := range []time.Time{day(2026, 10, 1), day(2026, 10, 10), day(2026, 10, 18)} {
		_, err := f.svc.CreateMeal(ctx, userID, service.MealInput{Name: "m", Date: d})
		require.NoError(t, err)
	}

	meals, err := f.svc.ListMeals(ctx, userID, day(2026, 10, 5), day(2026, 10, 18))
	require.NoError(t, err)
	assert.Len(t, meals, 2)

	meals, err = f.svc.ListMeals(ctx, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, meals, 3)

	_, err = f.svc.ListMeals(ctx, userID, day(2026, 10, 18), day(2026, 10, 1))
	assert.ErrorIs(t, err, service.ErrValidationFailed)
	_, err = f.svc.ListWorkouts(ctx, userID, day(2026, 10, 18), time.Time{})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestLogService_BodyWeightAndEstimate(t *testing.T) {
	f := newLogFixture()
	userID := primitive.NewObjectID()

	_, err := f.svc.CreateBodyWeight(context.Background(), userID, 0, time.Time{})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	bw, err := f.svc.CreateBodyWeight(context.Background(), userID, 82.5, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, day(2026, 10, 18), bw.Date)

	est := f.svc.EstimateCalories("Running", 45, 0, 0, 1.5)
	// floor(300*45/30)=450, x1.5 = 675
	assert.Equal(t, 675, est.Calories)
	assert.Equal(t, "Running", est.Exercise.Name)

	assert.Equal(t, domain.DefaultCaloriesPer30Minutes, f.svc.LookupExercise("Unknown").CaloriesPer30Minutes)
}

func TestNotificationService_ReadFlags(t *testing.T) {
	repo := &fakeNotifications{}
	notifier := &recordingNotifier{}
	svc := service.NewNotificationService(repo, notifier, clock)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	first, _ := repo.Create(ctx, &domain.Notification{UserID: userID, Message: "one"})
	_, _ = repo.Create(ctx, &domain.Notification{UserID: userID, Message: "two"})

	count, err := svc.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	n, err := svc.Get(ctx, userID, first)
	require.NoError(t, err)
	assert.True(t, n.Read)
	require.NotNil(t, n.ReadAt)
	assert.True(t, n.ReadAt.Equal(testNow))

	count, _ = svc.UnreadCount(ctx, userID)
	assert.EqualValues(t, 1, count)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	count, _ = svc.UnreadCount(ctx, userID)
	assert.EqualValues(t, 0, count)

	_, err = svc.Get(ctx, primitive.NewObjectID(), first)
	assert.ErrorIs(t, err, service.ErrNotificationNotFound)

	created, err := svc.Check(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, 1, notifier.checks)

	deleted, err := svc.DeleteMany(ctx, userID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
	assert.ErrorIs(t, svc.Delete(ctx, userID, first), service.ErrNotificationNotFound)
}

func TestTemplateService(t *testing.T) {
	f := newLogFixture()
	templates := &fakeTemplates{}
	svc := service.NewTemplateService(templates, f.svc)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := svc.Create(ctx, userID, &domain.LogTemplate{
		Label: "Shake", Kind: domain.TemplateMeal,
		Workout: &domain.WorkoutTemplate{Exercise: "Running", Category: domain.CategoryCardio},
	})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	shake, err := svc.Create(ctx, userID, &domain.LogTemplate{
		Label: "Shake", Kind: domain.TemplateMeal,
		Meal: &domain.MealTemplate{Name: "Protein shake", Calories: 180, ProteinG: 30},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, userID, &domain.LogTemplate{
		Label: "Shake", Kind: domain.TemplateMeal,
		Meal: &domain.MealTemplate{Name: "Another shake"},
	})
	assert.ErrorIs(t, err, service.ErrTemplateExists)

	run, err := svc.Create(ctx, userID, &domain.LogTemplate{
		Label: "5k", Kind: domain.TemplateWorkout,
		Workout: &domain.WorkoutTemplate{Exercise: "Running", Category: domain.CategoryCardio, DurationMinutes: 25, CaloriesBurned: 260},
	})
	require.NoError(t, err)

	meals, err := svc.List(ctx, userID, domain.TemplateMeal)
	require.NoError(t, err)
	assert.Len(t, meals, 1)
	_, err = svc.List(ctx, userID, "snack")
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	entry, err := svc.Log(ctx, userID, shake.ID, day(2026, 10, 17))
	require.NoError(t, err)
	require.NotNil(t, entry.Meal)
	assert.Nil(t, entry.Workout)
	assert.Equal(t, 30.0, entry.Meal.ProteinG)
	assert.Equal(t, day(2026, 10, 17), entry.Meal.Date)
	assert.Equal(t, 1, f.notifier.meals)

	entry, err = svc.Log(ctx, userID, run.ID, time.Time{})
	require.NoError(t, err)
	require.NotNil(t, entry.Workout)
	assert.Equal(t, 260, entry.Workout.CaloriesBurned)
	assert.Equal(t, day(2026, 10, 18), entry.Workout.Date)

	_, err = svc.Log(ctx, primitive.NewObjectID(), run.ID, time.Time{})
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)

	require.NoError(t, svc.Delete(ctx, userID, run.ID))
	assert.ErrorIs(t, svc.Delete(ctx, userID, run.ID), service.ErrTemplateNotFound)
}

func TestTemplateService_InvalidWorkoutShapes(t *testing.T) {
	f := newLogFixture()
	templates := &fakeTemplates{}
	svc := service.NewTemplateService(templates, f.svc)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	invalid := map[string]domain.WorkoutTemplate{
		"cardio with sets and no duration": {Exercise: "Running", Category: domain.CategoryCardio, Sets: 3},
		"negative duration":                {Exercise: "Running", Category: domain.CategoryCardio, DurationMinutes: -10},
		"negative calories":                {Exercise: "Running", Category: domain.CategoryCardio, DurationMinutes: 30, CaloriesBurned: -5},
		"nan intensity":                    {Exercise: "Bench Press", Category: domain.CategoryStrength, Sets: 3, Reps: 8, Intensity: math.NaN()},
	}
	for name, w := range invalid {
		t.Run(name, func(t *testing.T) {
			w := w
			_, err := svc.Create(ctx, userID, &domain.LogTemplate{Label: name, Kind: domain.TemplateWorkout, Workout: &w})
			assert.ErrorIs(t, err, service.ErrValidationFailed)
		})
	}

	_, err := svc.Create(ctx, userID, &domain.LogTemplate{
		Label: "Shake", Kind: domain.TemplateMeal,
		Meal: &domain.MealTemplate{Name: "Protein shake", Calories: -180},
	})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
	assert.Empty(t, templates.items)
}

func TestTemplateService_LogEstimatesMissingCalories(t *testing.T) {
	f := newLogFixture()
	svc := service.NewTemplateService(&fakeTemplates{}, f.svc)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	run, err := svc.Create(ctx, userID, &domain.LogTemplate{
		Label: "Easy run", Kind: domain.TemplateWorkout,
		Workout: &domain.WorkoutTemplate{Exercise: "Running", Category: domain.CategoryCardio, DurationMinutes: 30},
	})
	require.NoError(t, err)

	entry, err := svc.Log(ctx, userID, run.ID, time.Time{})
	require.NoError(t, err)
	require.NotNil(t, entry.Workout)
	// Running is 300 kcal per 30 minutes in the fixture catalog.
	assert.Equal(t, 300, entry.Workout.CaloriesBurned)
	assert.Equal(t, 1, f.notifier.workouts)
}

func TestInsightsService(t *testing.T) {
	meals := &fakeMeals{}
	workouts := &fakeWorkouts{}
	agg := analytics.NewAggregator(service.NewLogReader(meals, workouts), time.UTC, clock)
	svc := service.NewInsightsService(agg)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, _ = meals.Create(ctx, &domain.Meal{UserID: userID, Name: "a", Calories: 500, ProteinG: 25, CarbsG: 25, Date: day(2026, 10, 15)})
	_, _ = meals.Create(ctx, &domain.Meal{UserID: userID, Name: "b", Calories: 100, Date: day(2026, 10, 1)})
	_, _ = workouts.Create(ctx, &domain.Workout{UserID: userID, Sets: 3, Reps: 10, Weight: 20, CaloriesBurned: 40, Date: day(2026, 10, 16)})

	report, err := svc.Metrics(ctx, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, day(2026, 10, 12), report.StartDate)
	assert.Equal(t, 7, report.Days)
	assert.Equal(t, 500, report.CaloriesConsumed)
	assert.Equal(t, 40, report.CaloriesBurned)
	assert.Equal(t, 600.0, report.WorkoutVolume)
	assert.Equal(t, 50.0, report.Macros.ProteinPct)

	_, err = svc.Metrics(ctx, userID, day(2026, 10, 18), day(2026, 10, 1))
	assert.ErrorIs(t, err, service.ErrValidationFailed)
	_, err = svc.Metrics(ctx, userID, day(2026, 10, 1), time.Time{})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	trends, err := svc.Trends(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, analytics.TrendIncreased, trends.Weekly.Volume)
	// 3 of 18 days this month, nothing in September
	assert.Equal(t, 16.7, trends.Consistency.CurrentPct)
	assert.Equal(t, analytics.TrendIncreased, trends.Consistency.Trend)
}
