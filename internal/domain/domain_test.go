package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	instant := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC) // 05:00 on the 18th in Tokyo
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), DateOf(instant, time.UTC))
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), DateOf(instant, tokyo))
}

func TestDayBounds(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	start, end := DayBounds(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), tokyo)
	assert.Equal(t, time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestDaysInRange(t *testing.T) {
	d := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysInRange(d, d))
	assert.Equal(t, 31, DaysInRange(d, AddDays(d, 30)))
	assert.Equal(t, 0, DaysInRange(d, AddDays(d, -1)))
}

func TestLogTemplate_Validate(t *testing.T) {
	meal := &MealTemplate{Name: "Oats", Calories: 350, ProteinG: 12}
	workout := &WorkoutTemplate{Exercise: "Squat", Category: CategoryStrength, Sets: 3, Reps: 8, Weight: 80}

	tests := []struct {
		name    string
		tmpl    LogTemplate
		wantErr bool
	}{
		{"meal ok", LogTemplate{Label: "breakfast", Kind: TemplateMeal, Meal: meal}, false},
		{"workout ok", LogTemplate{Label: "legs", Kind: TemplateWorkout, Workout: workout}, false},
		{"meal without payload", LogTemplate{Label: "x", Kind: TemplateMeal}, true},
		{"meal with both payloads", LogTemplate{Label: "x", Kind: TemplateMeal, Meal: meal, Workout: workout}, true},
		{"workout with meal payload", LogTemplate{Label: "x", Kind: TemplateWorkout, Meal: meal}, true},
		{"bad category", LogTemplate{Label: "x", Kind: TemplateWorkout, Workout: &WorkoutTemplate{Exercise: "Run", Category: "yoga"}}, true},
		{"missing label", LogTemplate{Kind: TemplateMeal, Meal: meal}, true},
		{"unknown kind", LogTemplate{Label: "x", Kind: "snack"}, true},
		{"cardio with sets and no duration", LogTemplate{Label: "x", Kind: TemplateWorkout, Workout: &WorkoutTemplate{Exercise: "Run", Category: CategoryCardio, Sets: 3}}, true},
		{"cardio ok", LogTemplate{Label: "x", Kind: TemplateWorkout, Workout: &WorkoutTemplate{Exercise: "Run", Category: CategoryCardio, DurationMinutes: 30}}, false},
		{"negative reps", LogTemplate{Label: "x", Kind: TemplateWorkout, Workout: &WorkoutTemplate{Exercise: "Squat", Category: CategoryStrength, Sets: 3, Reps: -8}}, true},
		{"negative calories burned", LogTemplate{Label: "x", Kind: TemplateWorkout, Workout: &WorkoutTemplate{Exercise: "Run", Category: CategoryCardio, DurationMinutes: 30, CaloriesBurned: -1}}, true},
		{"negative meal calories", LogTemplate{Label: "x", Kind: TemplateMeal, Meal: &MealTemplate{Name: "Oats", Calories: -350}}, true},
		{"nan meal macros", LogTemplate{Label: "x", Kind: TemplateMeal, Meal: &MealTemplate{Name: "Oats", ProteinG: math.NaN()}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tmpl.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckWorkoutNumbers(t *testing.T) {
	assert.NoError(t, CheckWorkoutNumbers(CategoryCardio, 30, 0, 0, 0, 1.5))
	assert.NoError(t, CheckWorkoutNumbers(CategoryStrength, 0, 3, 8, 60, 0))

	assert.Error(t, CheckWorkoutNumbers(CategoryCardio, 0, 0, 0, 0, 0))
	assert.Error(t, CheckWorkoutNumbers(CategoryCardio, 30, 0, 0, 20, 0))
	assert.Error(t, CheckWorkoutNumbers(CategoryStrength, 0, 3, 8, 60, math.NaN()))
	assert.Error(t, CheckWorkoutNumbers(CategoryStrength, 0, 3, 8, math.Inf(1), 0))
	assert.Error(t, CheckWorkoutNumbers(CategoryStrength, -1, 3, 8, 60, 0))
}

func TestSummaryFrequency_Valid(t *testing.T) {
	assert.True(t, SummaryWeekly.Valid())
	assert.True(t, SummaryNone.Valid())
	assert.False(t, SummaryFrequency("hourly").Valid())
}
